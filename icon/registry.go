package icon

// Icon identifies a UI symbol.
type Icon int

const (
	Play Icon = iota
	Pause
	Expand
	Compress
	VolumeUp
	VolumeMute
	Settings
	Like
	Dislike
	Search
	Mark
	Progress
	Success
	Fail
)

var icons = map[Icon]*iconDef{
	Play:       {emoji: "▶️", nerd: "", plain: ">", kaomoji: "ᕕ( ᐛ )ᕗ", squares: "▶"},
	Pause:      {emoji: "⏸️", nerd: "", plain: "||", kaomoji: "( ˘ω˘ )", squares: "⏸"},
	Expand:     {emoji: "⛶", nerd: "", plain: "[ ]", kaomoji: "(ﾉ◕ヮ◕)ﾉ", squares: "⬜"},
	Compress:   {emoji: "🗗", nerd: "", plain: "][", kaomoji: "(つ﹏⊂)", squares: "▫"},
	VolumeUp:   {emoji: "🔊", nerd: "", plain: "vol", kaomoji: "ヽ(°〇°)ﾉ", squares: "▮"},
	VolumeMute: {emoji: "🔇", nerd: "", plain: "mute", kaomoji: "(￣ー￣)", squares: "▯"},
	Settings:   {emoji: "⚙️", nerd: "", plain: "*", kaomoji: "(・_・ヾ", squares: "▣"},
	Like:       {emoji: "👍", nerd: "", plain: "+", kaomoji: "(b ᵔ▽ᵔ)b", squares: "▲"},
	Dislike:    {emoji: "👎", nerd: "", plain: "-", kaomoji: "(╯︵╰,)", squares: "▼"},
	Search:     {emoji: "🔍", nerd: "", plain: "/", kaomoji: "(・・ ) ?", squares: "◫"},
	Mark:       {emoji: "🎬", nerd: "", plain: "*", kaomoji: "(☞ﾟヮﾟ)☞", squares: "■"},
	Progress:   {emoji: "⏳", nerd: "", plain: "...", kaomoji: "( ・_・)ノ", squares: "◧"},
	Success:    {emoji: "🎉", nerd: "", plain: "ok", kaomoji: "(ᵔᴥᵔ)", squares: "■"},
	Fail:       {emoji: "💀", nerd: "", plain: "x", kaomoji: "(ಥ﹏ಥ)", squares: "□"},
}

package tui

import (
	"fmt"
	"strings"

	"github.com/castdeck/castdeck/color"
	"github.com/castdeck/castdeck/constant"
	"github.com/castdeck/castdeck/icon"
	"github.com/castdeck/castdeck/key"
	"github.com/castdeck/castdeck/playback"
	"github.com/castdeck/castdeck/reaction"
	"github.com/castdeck/castdeck/style"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
	"github.com/spf13/viper"
)

// nowPlayingHeight is the number of rows reserved above the catalog list.
const nowPlayingHeight = 12

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
	menuStyle             = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(style.BorderColor).Padding(0, 1)
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case errorState:
		output = b.viewError()
	default:
		output = b.viewPlayer()
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewPlayer() string {
	lines := b.nowPlaying()

	if b.state == filterState || b.snapshot.Selection.FilterQuery != "" {
		lines = append(lines, b.inputC.View())
	}
	if len(b.suggestions) > 0 {
		lines = append(lines, style.Faint(icon.Get(icon.Search)+" did you mean: ")+style.Fg(color.Purple)(strings.Join(b.suggestions, ", ")))
	}

	title := "Catalog"
	if sel := b.snapshot.Selection; sel.Activating || sel.Pending > 0 {
		title += " " + b.spinnerC.View()
	}
	b.catalogC.Title = title

	lines = append(lines, listExtraPaddingStyle.Render(b.catalogC.View()))
	return b.renderLines(true, lines)
}

func (b *statefulBubble) nowPlaying() []string {
	pb := b.snapshot.Playback

	item, ok := pb.Item.Get()
	if !ok {
		return []string{
			style.Title(constant.App),
			"",
			style.Faint("Nothing playing yet"),
			"",
		}
	}

	state := icon.Get(icon.Pause)
	if pb.Playing {
		state = icon.Get(icon.Play)
	}

	lines := []string{
		style.Title(constant.App),
		"",
		style.Truncate(b.width)(fmt.Sprintf("%s %s", state, style.Bold(style.Fg(color.Purple)(item.Title)))),
	}
	if item.Subtitle != "" {
		lines = append(lines, style.Faint(item.Subtitle))
	}
	if item.Description != "" && viper.GetBool(key.TUIShowDescriptions) {
		lines = append(lines, style.Faint(wrap.String(firstSentences(item.Description, 200), b.width)))
	}

	lines = append(lines,
		"",
		b.progressC.ViewAs(pb.Progress())+"  "+pb.Clock(),
		b.statusLine(pb),
	)

	if pb.ShowSettingsMenu {
		lines = append(lines, b.viewSpeedMenu(pb))
	}
	if pb.ShowVolumeSlider {
		lines = append(lines, icon.Get(icon.VolumeUp)+" "+b.volumeC.ViewAs(pb.Volume))
	}

	return append(lines, "")
}

func (b *statefulBubble) statusLine(pb playback.State) string {
	volume := fmt.Sprintf("%s %d%%", icon.Get(icon.VolumeUp), int(pb.Volume*100+0.5))
	if pb.Muted {
		volume = icon.Get(icon.VolumeMute) + " muted"
	}

	screen := icon.Get(icon.Expand) + " window"
	if pb.Fullscreen {
		screen = icon.Get(icon.Compress) + " fullscreen"
	}

	r := b.snapshot.Reactions
	like := fmt.Sprintf("%s %d", icon.Get(icon.Like), r.Likes)
	dislike := fmt.Sprintf("%s %d", icon.Get(icon.Dislike), r.Dislikes)
	switch r.Opinion {
	case reaction.Liked:
		like = style.Fg(style.LikeColor)(like)
	case reaction.Disliked:
		dislike = style.Fg(style.DislikeColor)(dislike)
	}

	return strings.Join([]string{
		icon.Get(icon.Settings) + " " + playback.SpeedLabel(pb.Speed),
		volume,
		screen,
		like,
		dislike,
	}, style.Faint("  •  "))
}

func (b *statefulBubble) viewSpeedMenu(pb playback.State) string {
	var entries []string
	for _, v := range playback.Speeds() {
		label := playback.SpeedLabel(v)
		if v == pb.Speed {
			label = style.Fg(style.AccentColor)(style.Bold("[" + label + "]"))
		} else {
			label = style.Faint(label)
		}
		entries = append(entries, label)
	}
	return menuStyle.Render("Speed  " + strings.Join(entries, " "))
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(style.HiRed).Bold(true)
	errorMsg := wrap.String(errorStyle.Render(b.lastError.Error()), b.width)
	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
			errorMsg,
		},
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := lipgloss.Height(strings.Join(lines, "\n"))
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}

// firstSentences shortens s to roughly limit characters at a sentence boundary.
func firstSentences(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	cut := string(runes[:limit])
	if i := strings.LastIndex(cut, ". "); i > 0 {
		return cut[:i+1]
	}
	return strings.TrimSpace(cut) + "…"
}

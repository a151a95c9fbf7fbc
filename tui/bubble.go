package tui

import (
	"time"

	"github.com/castdeck/castdeck/internal/ui"
	"github.com/castdeck/castdeck/key"
	"github.com/castdeck/castdeck/session"
	"github.com/castdeck/castdeck/style"
	"github.com/castdeck/castdeck/util"
	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"
)

// statefulBubble is the application model: the session snapshot it renders
// plus the component models.
type statefulBubble struct {
	state  state
	keymap *statefulKeymap

	session  *session.Session
	snapshot session.Snapshot
	// query is the filter the list items were last built for.
	query string

	spinnerC  spinner.Model
	inputC    textinput.Model
	catalogC  list.Model
	progressC progress.Model
	volumeC   progress.Model
	helpC     help.Model

	suggestions []string
	volumeStep  float64
	lastError   error

	width, height int
	notifier      *ui.Model
}

func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.setState(errorState)
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, _ := listExtraPaddingStyle.GetFrameSize()

	b.width = width - x
	b.height = height - y

	listWidth := width - xx
	b.catalogC.SetSize(listWidth, max(b.height-nowPlayingHeight, 4))
	b.catalogC.Help.Width = listWidth
	b.progressC.Width = min(listWidth, 60)
	b.volumeC.Width = min(listWidth, 30)
	b.inputC.Width = listWidth
	b.helpC.Width = listWidth
}

func newBubble(options *Options) *statefulBubble {
	keymap := newStatefulKeymap()
	bubble := statefulBubble{
		keymap:     keymap,
		session:    options.Session,
		notifier:   &ui.Model{},
		volumeStep: viper.GetFloat64(key.VolumeStep),
	}
	if bubble.volumeStep <= 0 {
		bubble.volumeStep = 0.05
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	bubble.inputC = textinput.New()
	bubble.inputC.Placeholder = "Filter by title"
	bubble.inputC.CharLimit = 60
	bubble.inputC.Prompt = viper.GetString(key.TUISearchPromptString)

	bubble.progressC = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bubble.volumeC = progress.New(progress.WithSolidFill(string(style.Teal)))

	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(viper.GetInt(key.TUIItemSpacing))
	delegate.ShowDescription = viper.GetBool(key.TUIShowDescriptions)
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(style.AccentColor).
		Foreground(style.AccentColor).
		Padding(0, 0, 0, 1)
	delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("7"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

	bubble.catalogC = list.New([]list.Item{}, delegate, 0, 0)
	bubble.catalogC.KeyMap = keymap.forList()
	bubble.catalogC.AdditionalShortHelpKeys = keymap.ShortHelp
	bubble.catalogC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
		return keymap.FullHelp()[0]
	}
	bubble.catalogC.Title = "Catalog"
	bubble.catalogC.Styles.Title = lipgloss.NewStyle().Foreground(style.Base).Background(style.Lavender).Padding(0, 1)
	bubble.catalogC.Styles.NoItems = paddingStyle
	bubble.catalogC.StatusMessageLifetime = time.Hour * 999
	bubble.catalogC.SetFilteringEnabled(false)
	bubble.catalogC.SetShowPagination(false)
	bubble.catalogC.SetShowHelp(false)
	bubble.catalogC.SetStatusBarItemName("video", "videos")

	bubble.setState(browseState)
	bubble.snapshot = options.Session.Latest()
	bubble.applySnapshot(bubble.snapshot)

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	return &bubble
}

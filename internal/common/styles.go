package common

import (
	_ "embed"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	ColorPrimary    = lipgloss.Color("#6366f1")
	ColorSuccess    = lipgloss.Color("#10B981")
	ColorDanger     = lipgloss.Color("#EF4444")
	ColorMuted      = lipgloss.Color("#4B5563")
	ColorText       = lipgloss.Color("#E5E7EB")
	ColorSubtext    = lipgloss.Color("#9CA3AF")
	ColorBorder     = lipgloss.Color("#374151")
	ColorBackground = lipgloss.Color("#0D1117")
	ColorSurface    = lipgloss.Color("#161B22")
	ColorHighlight  = lipgloss.Color("#1C2333")
)

// Layouts and borders
var (
	AppStyle = lipgloss.NewStyle().
			Padding(0, 1)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ActiveTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBackground).
			Background(ColorPrimary).
			Padding(0, 2)

	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Padding(0, 2)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorSubtext).
			Background(ColorSurface).
			Padding(0, 1)

	FocusedBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(ColorPrimary).
				Padding(0, 1)

	CursorStyle = lipgloss.NewStyle().Foreground(ColorPrimary)

	TagStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(ColorHighlight).
			Padding(0, 1)

	ToastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSuccess).
			Foreground(ColorText).
			Padding(0, 2)

	InputErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)
)

// Typography
var (
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	LabelStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorText)
	ValueStyle   = lipgloss.NewStyle().Foreground(ColorSubtext)
	HelpStyle    = lipgloss.NewStyle().Foreground(ColorMuted)
	QuoteStyle   = HelpStyle.Italic(true)
	SuccessStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess)
	ErrorStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorDanger)
)

// ASCII Logo at Setup
var (
	//go:embed banner.txt
	Logo      string
	LogoStyle = TitleStyle
)

// Help or Keybindings
func HelpStyles() help.Styles {
	return help.Styles{
		ShortKey:       lipgloss.NewStyle().Foreground(ColorPrimary),
		ShortDesc:      lipgloss.NewStyle().Foreground(ColorMuted),
		ShortSeparator: lipgloss.NewStyle().Foreground(ColorBorder),
		FullKey:        lipgloss.NewStyle().Foreground(ColorPrimary),
		FullDesc:       lipgloss.NewStyle().Foreground(ColorSubtext),
		FullSeparator:  lipgloss.NewStyle().Foreground(ColorBorder),
		Ellipsis:       lipgloss.NewStyle().Foreground(ColorMuted),
	}
}

func NewHelp() help.Model {
	h := help.New()
	h.ShortSeparator = " • "
	h.FullSeparator = "    "
	h.Styles = HelpStyles()
	return h
}

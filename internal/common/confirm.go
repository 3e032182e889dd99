package common

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	confirmTitle = "확인"
	confirmYes   = "예"
	confirmNo    = "아니오"
)

type confirmKeyMap struct {
	Yes    key.Binding
	No     key.Binding
	Left   key.Binding
	Right  key.Binding
	Accept key.Binding
}

var confirmKeys = confirmKeyMap{
	Yes:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", confirmYes)),
	No:     key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n/esc", confirmNo)),
	Left:   key.NewBinding(key.WithKeys("left", "h")),
	Right:  key.NewBinding(key.WithKeys("right", "l")),
	Accept: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "선택")),
}

// Confirm is a yes/no prompt drawn over the current screen. The cursor
// starts on "no".
type Confirm struct {
	Active  bool
	Message string
	Action  string
	onYes   bool
}

func NewConfirm(message, action string) Confirm {
	return Confirm{Active: true, Message: message, Action: action}
}

// HandleKey applies a key press and reports whether the action was accepted.
// The prompt closes on y, n, esc and enter. Other keys are swallowed.
func (c *Confirm) HandleKey(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, confirmKeys.Yes):
		c.Active = false
		return true
	case key.Matches(msg, confirmKeys.No):
		c.Active = false
	case key.Matches(msg, confirmKeys.Left):
		c.onYes = true
	case key.Matches(msg, confirmKeys.Right):
		c.onYes = false
	case key.Matches(msg, confirmKeys.Accept):
		c.Active = false
		return c.onYes
	}
	return false
}

func (c Confirm) button(label string, selected bool, bg lipgloss.Color) string {
	if !selected {
		return lipgloss.NewStyle().Foreground(ColorMuted).Padding(0, 2).Render(label)
	}
	return lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(bg).
		Bold(true).
		Padding(0, 2).
		Render(label)
}

// View renders the prompt as an active panel between 30 and 50 cells wide.
func (c Confirm) View(w int) string {
	w = min(max(w, 30), 50)
	inner := lipgloss.NewStyle().Width(w - 6).Align(lipgloss.Center)

	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		c.button(confirmYes, c.onYes, ColorDanger),
		"  ",
		c.button(confirmNo, !c.onYes, ColorSuccess),
	)

	help := NewHelp()
	content := inner.Foreground(ColorText).Render(c.Message) + "\n\n" +
		inner.Render(buttons) + "\n\n" +
		inner.Render(help.ShortHelpView([]key.Binding{confirmKeys.Yes, confirmKeys.No, confirmKeys.Accept}))

	return RenderActivePanel(confirmTitle, content, w)
}

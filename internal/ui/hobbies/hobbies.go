package hobbies

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/NotMugil/profile-tui/internal/common"
	"github.com/NotMugil/profile-tui/internal/ui/tags"
)

// Model is the hobbies screen. It loads the tag list once when first shown.
type Model struct {
	tags    *tags.Model
	started bool
	width   int
	height  int
}

func New(source tags.ProfileSource, logger *zap.Logger, timeout time.Duration) *Model {
	return &Model{tags: tags.New(source, logger, timeout)}
}

func (m *Model) Init() tea.Cmd {
	m.started = true
	return m.tags.Init()
}

// SetSize updates the available terminal dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.tags.SetSize(max(w-6, 10))
}

// Loaded reports whether the tag fetch has finished.
func (m *Model) Loaded() bool {
	return m.started && !m.tags.Loading()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.tags, cmd = m.tags.Update(msg)
	return m, cmd
}

func (m *Model) View() string {
	w := m.width - 2
	if w < 40 {
		w = 80
	}
	title := "Hobbies"
	if n := len(m.tags.Tags()); n > 0 {
		title = fmt.Sprintf("Hobbies (%d)", n)
	}
	return common.AppStyle.Render(common.RenderPanel(title, m.tags.View(), w))
}

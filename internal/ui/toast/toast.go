// Package toast presents the notification store as a dismissible toast in
// the top-right corner of the screen.
package toast

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/NotMugil/profile-tui/internal/common"
	"github.com/NotMugil/profile-tui/internal/notify"
)

const (
	zoneID          = "toast"
	DefaultDuration = 3 * time.Second
	maxWidth        = 48
)

// StateMsg carries a store state into the update loop.
type StateMsg notify.State

type expireMsg struct {
	version uint64
}

// Model mirrors a notify.Store. Store changes reach it through a Watcher read
// by a tea.Cmd, so mutations made outside the update loop are picked up too.
type Model struct {
	store    *notify.Store
	watcher  *notify.Watcher
	state    notify.State
	duration time.Duration

	// hit reports whether a mouse event landed on the toast.
	hit func(tea.MouseMsg) bool
}

// New binds a presenter to store. Call Close when it is no longer used.
func New(store *notify.Store, duration time.Duration) *Model {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Model{
		store:    store,
		watcher:  store.Watch(),
		state:    store.State(),
		duration: duration,
		hit: func(msg tea.MouseMsg) bool {
			return zone.Get(zoneID).InBounds(msg)
		},
	}
}

func (m *Model) Init() tea.Cmd {
	return m.listen()
}

// Close detaches the presenter from the store.
func (m *Model) Close() {
	m.watcher.Close()
}

func (m *Model) Visible() bool   { return m.state.Visible }
func (m *Model) Message() string { return m.state.Message }

func (m *Model) listen() tea.Cmd {
	ch := m.watcher.C()
	return func() tea.Msg {
		st, ok := <-ch
		if !ok {
			return nil
		}
		return StateMsg(st)
	}
}

// Update handles store states, expiry and dismissal input. handled is true
// when the message was consumed by the toast and should not reach the screen
// beneath it.
func (m *Model) Update(msg tea.Msg) (cmd tea.Cmd, handled bool) {
	switch msg := msg.(type) {
	case StateMsg:
		m.state = notify.State(msg)
		if !m.state.Visible {
			return m.listen(), true
		}
		version := m.state.Version
		expire := tea.Tick(m.duration, func(time.Time) tea.Msg {
			return expireMsg{version: version}
		})
		return tea.Batch(m.listen(), expire), true

	case expireMsg:
		// a newer Show restarted the timer
		if st := m.store.State(); st.Visible && st.Version == msg.version {
			m.store.Hide()
		}
		return nil, true

	case tea.KeyMsg:
		if m.state.Visible && key.Matches(msg, common.Keys.Cancel) {
			m.store.Hide()
			return nil, true
		}

	case tea.MouseMsg:
		if m.state.Visible &&
			msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft &&
			m.hit(msg) {
			m.store.Hide()
			return nil, true
		}
	}
	return nil, false
}

// View renders the toast box, or nothing while hidden.
func (m *Model) View() string {
	if !m.state.Visible {
		return ""
	}
	text := m.state.Message
	if text == "" {
		text = " "
	}
	box := common.ToastStyle.Render(common.Truncate(text, maxWidth))
	return zone.Mark(zoneID, box)
}

// Overlay draws the toast over the top-right corner of bg.
func (m *Model) Overlay(bg string) string {
	fg := m.View()
	if fg == "" {
		return bg
	}
	return overlay.Composite(fg, bg, overlay.Right, overlay.Top, -1, 1)
}

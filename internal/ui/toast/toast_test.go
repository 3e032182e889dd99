package toast

import (
	"os"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NotMugil/profile-tui/internal/notify"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

// pump delivers the next pending store state to the presenter.
func pump(t *testing.T, m *Model) tea.Cmd {
	t.Helper()
	msg := m.listen()()
	require.IsType(t, StateMsg{}, msg)
	cmd, handled := m.Update(msg)
	assert.True(t, handled)
	return cmd
}

func TestHiddenByDefault(t *testing.T) {
	m := New(notify.New(), time.Second)
	defer m.Close()
	assert.False(t, m.Visible())
	assert.Empty(t, m.View())
	assert.Equal(t, "background", m.Overlay("background"))
}

func TestShowsStoreMessage(t *testing.T) {
	store := notify.New()
	m := New(store, time.Second)
	defer m.Close()

	store.Show("닉네임이 변경되었습니다.")
	pump(t, m)

	assert.True(t, m.Visible())
	assert.Equal(t, "닉네임이 변경되었습니다.", m.Message())
	assert.Contains(t, zone.Scan(m.View()), "닉네임이 변경되었습니다.")
}

func TestExpiryHidesMatchingVersion(t *testing.T) {
	store := notify.New()
	m := New(store, time.Second)
	defer m.Close()

	store.Show("first")
	pump(t, m)
	v := store.State().Version

	_, handled := m.Update(expireMsg{version: v})
	assert.True(t, handled)
	assert.False(t, store.State().Visible)

	pump(t, m)
	assert.False(t, m.Visible())
}

func TestExpiryIgnoredAfterNewerShow(t *testing.T) {
	store := notify.New()
	m := New(store, time.Second)
	defer m.Close()

	store.Show("first")
	old := store.State().Version
	store.Show("second")

	m.Update(expireMsg{version: old})
	st := store.State()
	assert.True(t, st.Visible)
	assert.Equal(t, "second", st.Message)
}

func TestEscDismisses(t *testing.T) {
	store := notify.New()
	m := New(store, time.Second)
	defer m.Close()

	_, handled := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, handled, "esc passes through while hidden")

	store.Show("hello")
	pump(t, m)
	_, handled = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, handled)
	assert.False(t, store.State().Visible)
}

func TestClickOnToastDismisses(t *testing.T) {
	store := notify.New()
	m := New(store, time.Second)
	defer m.Close()

	inside := false
	m.hit = func(tea.MouseMsg) bool { return inside }

	store.Show("hello")
	pump(t, m)

	click := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	_, handled := m.Update(click)
	assert.False(t, handled)
	assert.True(t, store.State().Visible)

	inside = true
	_, handled = m.Update(click)
	assert.True(t, handled)
	assert.False(t, store.State().Visible)
}

func TestExternalHideIsMirrored(t *testing.T) {
	store := notify.New()
	m := New(store, time.Second)
	defer m.Close()

	store.Show("hello")
	pump(t, m)
	store.Hide()
	pump(t, m)
	assert.False(t, m.Visible())
}

func TestListenAfterCloseReturnsNil(t *testing.T) {
	m := New(notify.New(), time.Second)
	m.Close()
	assert.Nil(t, m.listen()())
}

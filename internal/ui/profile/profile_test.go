package profile

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NotMugil/profile-tui/internal/api"
	"github.com/NotMugil/profile-tui/internal/notify"
	"github.com/NotMugil/profile-tui/internal/ui/nickname"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

type fakeClient struct {
	profile    *api.Profile
	profileErr error
	loads      int
}

func (f *fakeClient) Profile(context.Context) (*api.Profile, error) {
	f.loads++
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	p := *f.profile
	return &p, nil
}

func (f *fakeClient) CheckNickname(context.Context, string) (*api.NicknameCheck, error) {
	return &api.NicknameCheck{}, nil
}

func (f *fakeClient) UpdateNickname(context.Context, string) error { return nil }

func sampleProfile() *api.Profile {
	email := "alice@example.com"
	return &api.Profile{
		ID:        7,
		Nickname:  "alice",
		Email:     &email,
		HobbyTags: []string{"등산", "독서"},
		CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func loaded(t *testing.T, client *fakeClient, store *notify.Store) *Model {
	t.Helper()
	m := New(client, store, nil, nil, time.Second)
	m.SetSize(100, 30)
	msg := m.loadProfile()()
	m.Update(msg)
	require.True(t, m.Loaded())
	return m
}

func TestLoadProfile(t *testing.T) {
	client := &fakeClient{profile: sampleProfile()}
	m := loaded(t, client, notify.New())

	assert.Equal(t, 1, client.loads)
	view := zone.Scan(m.View())
	assert.Contains(t, view, "alice")
	assert.Contains(t, view, "alice@example.com")
	assert.Contains(t, view, "등산")
	assert.Contains(t, view, "March 2024")
}

func TestLoadFailureShownInline(t *testing.T) {
	client := &fakeClient{profileErr: &api.Error{Op: "query", Kind: api.KindNetwork, Err: errors.New("dial tcp")}}
	m := loaded(t, client, notify.New())
	assert.Contains(t, m.View(), "Error:")
	assert.Contains(t, m.View(), "r: retry")
}

func TestReloadKey(t *testing.T) {
	client := &fakeClient{profile: sampleProfile()}
	m := loaded(t, client, notify.New())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	require.NotNil(t, cmd)
	assert.False(t, m.Loaded())
}

func TestNicknameChangeUpdatesProfileAndShowsToast(t *testing.T) {
	store := notify.New()
	m := loaded(t, &fakeClient{profile: sampleProfile()}, store)

	m.Update(nickname.ChangedMsg{Nickname: "alice2"})
	assert.Equal(t, "alice2", m.Profile().Nickname)

	st := store.State()
	assert.True(t, st.Visible)
	assert.Equal(t, ChangedToast, st.Message)
}

func TestEditorOwnsKeysWhileEditing(t *testing.T) {
	client := &fakeClient{profile: sampleProfile()}
	m := loaded(t, client, notify.New())

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}})
	require.True(t, m.InputFocused())

	// r is typed into the editor instead of reloading
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	assert.True(t, m.Loaded())
	assert.Equal(t, 1, client.loads)

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.InputFocused())
}

func TestSeededProfileSkipsSpinner(t *testing.T) {
	m := New(&fakeClient{profile: sampleProfile()}, notify.New(), sampleProfile(), nil, time.Second)
	assert.True(t, m.Loaded())
	assert.Contains(t, zone.Scan(m.View()), "독서")
}

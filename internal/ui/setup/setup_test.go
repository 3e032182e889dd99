package setup

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/NotMugil/profile-tui/internal/api"
	"github.com/NotMugil/profile-tui/internal/keystore"
)

func typeToken(m *Model, token string) {
	for _, r := range token {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestBlankTokenIsIgnored(t *testing.T) {
	keyring.MockInit()
	called := false
	m := New(keystore.New("setup-test"), func(context.Context, string) error {
		called = true
		return nil
	}, 0, nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, called)
	assert.True(t, m.InputFocused())
}

func TestAcceptedTokenIsSaved(t *testing.T) {
	keyring.MockInit()
	keys := keystore.New("setup-test")
	var got string
	m := New(keys, func(_ context.Context, token string) error {
		got = token
		return nil
	}, 0, nil)

	typeToken(m, "Bearer abc")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.False(t, m.InputFocused())

	msg := m.validateToken("Bearer abc")()
	assert.Equal(t, "Bearer abc", got)

	_, cmd = m.Update(msg)
	require.NotNil(t, cmd)
	done, ok := cmd().(SetupCompleteMsg)
	require.True(t, ok)
	assert.Equal(t, "Bearer abc", done.Token)

	stored, err := keys.Load()
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", stored)
}

func TestRejectedTokenShowsError(t *testing.T) {
	keyring.MockInit()
	keys := keystore.New("setup-test")
	m := New(keys, nil, 0, nil)

	typeToken(m, "bad")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(validateMsg{err: &api.Error{Op: "query", Kind: api.KindServer, Err: errors.New("401")}})

	assert.Contains(t, m.View(), "Authentication failed")
	assert.Contains(t, m.View(), "not accepted")
	_, err := keys.Load()
	assert.ErrorIs(t, err, keystore.ErrNotFound)

	// enter returns to input
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.InputFocused())
}

func TestNetworkFailureIsDescribed(t *testing.T) {
	err := describe(&api.Error{Op: "query", Kind: api.KindNetwork, Err: errors.New("dial tcp")})
	assert.Contains(t, err.Error(), "could not reach")
}

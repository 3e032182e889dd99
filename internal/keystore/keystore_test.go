package keystore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestSaveLoadDelete(t *testing.T) {
	keyring.MockInit()
	s := New("profile-tui-test")

	_, err := s.Load()
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Save("secret"))
	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "secret", got)

	require.NoError(t, s.Delete())
	_, err = s.Load()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteMissingIsNoop(t *testing.T) {
	keyring.MockInit()
	assert.NoError(t, New("profile-tui-test").Delete())
}

func TestServicesAreIsolated(t *testing.T) {
	keyring.MockInit()
	a, b := New("svc-a"), New("svc-b")
	require.NoError(t, a.Save("a-token"))

	_, err := b.Load()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDefaultService(t *testing.T) {
	assert.Equal(t, DefaultService, New("").Service())
}

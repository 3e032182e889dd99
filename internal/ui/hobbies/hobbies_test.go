package hobbies

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NotMugil/profile-tui/internal/api"
	"github.com/NotMugil/profile-tui/internal/ui/tags"
)

type fakeSource struct {
	tags []string
	err  error
}

func (f fakeSource) Profile(context.Context) (*api.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &api.Profile{HobbyTags: f.tags}, nil
}

func TestLoadsOnInit(t *testing.T) {
	m := New(fakeSource{tags: []string{"캠핑", "요리"}}, nil, time.Second)
	assert.False(t, m.Loaded())

	cmd := m.Init()
	require.NotNil(t, cmd)
	assert.False(t, m.Loaded())

	m.Update(cmd())
	assert.True(t, m.Loaded())
	assert.Contains(t, m.View(), "Hobbies (2)")
	assert.Contains(t, m.View(), "캠핑")
}

func TestEmptyState(t *testing.T) {
	m := New(fakeSource{}, nil, time.Second)
	m.Update(m.Init()())
	assert.Contains(t, m.View(), tags.EmptyText)
}

func TestFailureLooksEmpty(t *testing.T) {
	m := New(fakeSource{err: errors.New("offline")}, nil, time.Second)
	m.Update(m.Init()())
	assert.True(t, m.Loaded())
	assert.Contains(t, m.View(), tags.EmptyText)
	assert.NotContains(t, m.View(), "offline")
}

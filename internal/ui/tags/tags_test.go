package tags

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/NotMugil/profile-tui/internal/api"
)

type fakeSource struct {
	tags  []string
	err   error
	calls int
}

func (f *fakeSource) Profile(context.Context) (*api.Profile, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &api.Profile{Nickname: "alice", HobbyTags: f.tags}, nil
}

func TestFetchesOnceOnInit(t *testing.T) {
	src := &fakeSource{tags: []string{"등산", "독서"}}
	m := New(src, nil, 0)

	cmd := m.Init()
	require.NotNil(t, cmd)
	assert.True(t, m.Loading())
	assert.Nil(t, m.Init(), "second Init must not fetch again")

	m.Update(cmd())
	assert.Equal(t, 1, src.calls)
	assert.False(t, m.Loading())
	assert.Equal(t, []string{"등산", "독서"}, m.Tags())
	assert.Contains(t, m.View(), "등산")
	assert.Contains(t, m.View(), "독서")
}

func TestEmptyListShowsEmptyState(t *testing.T) {
	m := New(&fakeSource{tags: []string{}}, nil, 0)
	m.Update(m.Init()())
	assert.Contains(t, m.View(), EmptyText)
}

func TestFetchFailureIsLoggedAndLeavesListEmpty(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	src := &fakeSource{err: &api.Error{Op: "query", Kind: api.KindServer, Err: errors.New("500")}}
	m := New(src, zap.New(core), 0)

	m.Update(m.Init()())
	assert.Empty(t, m.Tags())
	assert.Contains(t, m.View(), EmptyText)
	assert.Equal(t, 1, logs.FilterMessage("loading hobby tags failed").Len())
}

func TestResultsForOtherListsAreIgnored(t *testing.T) {
	a := New(&fakeSource{tags: []string{"a"}}, nil, 0)
	b := New(&fakeSource{tags: []string{"b"}}, nil, 0)

	msg := a.Init()()
	b.Init()
	b.Update(msg)
	assert.True(t, b.Loading())
	assert.Empty(t, b.Tags())
}

func TestStaticList(t *testing.T) {
	m := NewStatic([]string{"chess"})
	assert.Nil(t, m.Init())
	assert.Equal(t, []string{"chess"}, m.Tags())

	m.SetTags(nil)
	assert.Contains(t, m.View(), EmptyText)
}

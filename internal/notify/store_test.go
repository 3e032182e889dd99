package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNewStoreIsHidden(t *testing.T) {
	s := New()
	st := s.State()
	assert.False(t, st.Visible)
	assert.Empty(t, st.Message)
	assert.Zero(t, st.Version)
}

func TestShowLastWriteWins(t *testing.T) {
	s := New()
	msgs := []string{"저장되었습니다.", "", "닉네임이 변경되었습니다.", "로그아웃되었습니다."}
	for _, m := range msgs {
		s.Show(m)
	}

	st := s.State()
	assert.True(t, st.Visible)
	assert.Equal(t, "로그아웃되었습니다.", st.Message)
	assert.Equal(t, uint64(len(msgs)), st.Version)
}

func TestShowAcceptsEmptyMessage(t *testing.T) {
	s := New()
	s.Show("")
	st := s.State()
	assert.True(t, st.Visible)
	assert.Empty(t, st.Message)
}

func TestHideAlwaysResets(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*Store)
	}{
		{"fresh", func(*Store) {}},
		{"after show", func(s *Store) { s.Show("hello") }},
		{"after hide", func(s *Store) { s.Show("hello"); s.Hide() }},
		{"after many", func(s *Store) { s.Show("a"); s.Show("b"); s.Hide(); s.Show("c") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			tt.setup(s)
			s.Hide()
			st := s.State()
			assert.False(t, st.Visible)
			assert.Empty(t, st.Message)
		})
	}
}

func TestSubscribersSeeChangeSynchronously(t *testing.T) {
	s := New()

	var got []State
	unsub := s.Subscribe(func(st State) { got = append(got, st) })
	defer unsub()

	s.Show("hello")
	require.Len(t, got, 1)
	assert.Equal(t, State{Visible: true, Message: "hello", Version: 1}, got[0])

	s.Hide()
	require.Len(t, got, 2)
	assert.Equal(t, State{Visible: false, Message: "", Version: 2}, got[1])
}

func TestEveryListenerIsCalled(t *testing.T) {
	s := New()
	var a, b int
	unsubA := s.Subscribe(func(State) { a++ })
	unsubB := s.Subscribe(func(State) { b++ })
	defer unsubB()

	s.Show("x")
	unsubA()
	s.Show("y")

	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
	assert.Equal(t, 1, s.Subscribers())
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	s := New()
	unsub := s.Subscribe(func(State) {})
	other := s.Subscribe(func(State) {})
	unsub()
	unsub()
	assert.Equal(t, 1, s.Subscribers())
	other()
	assert.Zero(t, s.Subscribers())
}

func TestListenerMayMutateStore(t *testing.T) {
	s := New()
	unsub := s.Subscribe(func(st State) {
		if st.Visible && st.Message == "transient" {
			s.Hide()
		}
	})
	defer unsub()

	s.Show("transient")
	assert.False(t, s.State().Visible)
}

func TestIndependentStores(t *testing.T) {
	a, b := New(), New()
	a.Show("only a")
	assert.True(t, a.State().Visible)
	assert.False(t, b.State().Visible)
}

func TestConcurrentShowHide(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() { defer wg.Done(); s.Show("m") }()
		go func() { defer wg.Done(); s.Hide() }()
	}
	wg.Wait()

	st := s.State()
	assert.Equal(t, uint64(100), st.Version)
	if !st.Visible {
		assert.Empty(t, st.Message)
	}
}

func TestWatcherKeepsLatest(t *testing.T) {
	s := New()
	w := s.Watch()
	defer w.Close()

	s.Show("first")
	s.Show("second")
	s.Show("third")

	select {
	case st := <-w.C():
		assert.Equal(t, "third", st.Message)
		assert.Equal(t, uint64(3), st.Version)
	case <-time.After(time.Second):
		t.Fatal("no state delivered")
	}

	select {
	case st := <-w.C():
		t.Fatalf("unexpected extra state %+v", st)
	default:
	}
}

func TestWatcherCloseStopsDelivery(t *testing.T) {
	s := New()
	w := s.Watch()
	require.Equal(t, 1, s.Subscribers())

	w.Close()
	w.Close()
	assert.Zero(t, s.Subscribers())

	s.Show("after close")
	_, ok := <-w.C()
	assert.False(t, ok)
}

func TestWatcherReaderGoroutine(t *testing.T) {
	s := New()
	w := s.Watch()

	done := make(chan []string)
	go func() {
		var seen []string
		for st := range w.C() {
			seen = append(seen, st.Message)
			if st.Message == "stop" {
				break
			}
		}
		done <- seen
	}()

	s.Show("stop")
	seen := <-done
	w.Close()

	require.NotEmpty(t, seen)
	assert.Equal(t, "stop", seen[len(seen)-1])
}

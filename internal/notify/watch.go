package notify

import "sync"

// Watcher delivers store states over a channel. Only the most recent state
// is kept: if the reader falls behind, an unread state is replaced rather
// than blocking Show or Hide.
type Watcher struct {
	ch          chan State
	mu          sync.Mutex
	closed      bool
	unsubscribe func()
}

// Watch subscribes a new Watcher to the store.
func (s *Store) Watch() *Watcher {
	w := &Watcher{ch: make(chan State, 1)}
	w.unsubscribe = s.Subscribe(w.offer)
	return w
}

// C returns the channel of states. It is closed by Close.
func (w *Watcher) C() <-chan State {
	return w.ch
}

// Close unsubscribes the watcher and closes its channel.
func (w *Watcher) Close() {
	w.unsubscribe()

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.closed = true
	close(w.ch)
}

func (w *Watcher) offer(st State) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	select {
	case <-w.ch:
	default:
	}
	w.ch <- st
}

package server

import (
	"sync"
)

// ReloadNotifier fans out dev-reload notifications to any number of open
// browser connections. Each subscriber gets a buffered channel that receives a
// single empty struct whenever templates or static files change on disk.
type ReloadNotifier struct {
	mutex   sync.Mutex
	closed  bool
	nextID  int
	clients map[int]chan struct{}
}

func NewReloadNotifier() *ReloadNotifier {
	return &ReloadNotifier{
		clients: make(map[int]chan struct{}),
	}
}

// Subscribe registers a new listener and returns an unsubscribe function along
// with the channel delivering reload signals. If the notifier has already been
// closed the returned channel is nil so callers can fail fast.
func (n *ReloadNotifier) Subscribe() (func(), <-chan struct{}) {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	if n.closed {
		return func() {}, nil
	}

	id := n.nextID
	n.nextID++

	ch := make(chan struct{}, 1)
	n.clients[id] = ch

	return func() {
		n.unsubscribe(id)
	}, ch
}

func (n *ReloadNotifier) unsubscribe(id int) {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	if ch, ok := n.clients[id]; ok {
		close(ch)
		delete(n.clients, id)
	}
}

// Notify broadcasts a reload signal without blocking on slow readers. A
// listener with a pending notification is skipped; it reloads on its next poll
// anyway.
func (n *ReloadNotifier) Notify() {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	if n.closed {
		return
	}

	for _, ch := range n.clients {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Close tears down the notifier and closes every subscriber channel,
// signalling that no further reload events will arrive.
func (n *ReloadNotifier) Close() {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	if n.closed {
		return
	}

	n.closed = true

	for id, ch := range n.clients {
		close(ch)
		delete(n.clients, id)
	}
}

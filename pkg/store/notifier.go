package store

import "sync"

// Notifier broadcasts valueless change events.
// Unlike Observable, it does not hold a value; hosts use it for
// refresh-style signals.
type Notifier struct {
	mu        sync.Mutex
	listeners map[int]func()
	nextID    int
}

// NewNotifier creates a new Notifier.
func NewNotifier() *Notifier {
	return &Notifier{listeners: make(map[int]func())}
}

// AddListener adds a callback that fires on every Notify.
// Returns an unsubscribe function.
func (n *Notifier) AddListener(fn func()) func() {
	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.listeners[id] = fn
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		delete(n.listeners, id)
		n.mu.Unlock()
	}
}

// Notify calls all registered listeners.
func (n *Notifier) Notify() {
	n.mu.Lock()
	listeners := make([]func(), 0, len(n.listeners))
	for _, fn := range n.listeners {
		listeners = append(listeners, fn)
	}
	n.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// ListenerCount returns the number of registered listeners.
func (n *Notifier) ListenerCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.listeners)
}

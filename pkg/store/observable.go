package store

import "sync"

// Observable holds a value and notifies listeners when it changes.
// All methods are safe for concurrent use.
//
// Observable satisfies Source, so it can back selector watchers and the
// binding layer's subscription hooks directly.
type Observable[T any] struct {
	mu        sync.RWMutex
	value     T
	listeners map[int]func(T)
	nextID    int
	equals    func(a, b T) bool
}

// NewObservable creates an observable with an initial value.
// Every Set notifies listeners; use NewObservableWithEquality to suppress
// notifications for values considered equal.
func NewObservable[T any](initial T) *Observable[T] {
	return &Observable[T]{
		value:     initial,
		listeners: make(map[int]func(T)),
	}
}

// NewObservableWithEquality creates an observable that only notifies
// listeners when the new value is not equal to the old one according to eq.
func NewObservableWithEquality[T any](initial T, eq func(a, b T) bool) *Observable[T] {
	return &Observable[T]{
		value:     initial,
		listeners: make(map[int]func(T)),
		equals:    eq,
	}
}

// Value returns the current value.
func (o *Observable[T]) Value() T {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.value
}

// Read returns the current value. It implements Source.
func (o *Observable[T]) Read() T {
	return o.Value()
}

// Set updates the value and notifies listeners.
func (o *Observable[T]) Set(value T) {
	o.mu.Lock()
	old := o.value
	o.value = value
	if o.equals != nil && o.equals(old, value) {
		o.mu.Unlock()
		return
	}
	listeners := o.snapshotListeners()
	o.mu.Unlock()

	for _, fn := range listeners {
		fn(value)
	}
}

// Update applies a transformation to the current value and notifies listeners.
func (o *Observable[T]) Update(transform func(T) T) {
	o.mu.Lock()
	old := o.value
	o.value = transform(o.value)
	next := o.value
	if o.equals != nil && o.equals(old, next) {
		o.mu.Unlock()
		return
	}
	listeners := o.snapshotListeners()
	o.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
}

// AddListener adds a callback that fires whenever the value changes.
// Returns an unsubscribe function.
func (o *Observable[T]) AddListener(fn func(T)) func() {
	o.mu.Lock()
	id := o.nextID
	o.nextID++
	o.listeners[id] = fn
	o.mu.Unlock()

	return func() {
		o.mu.Lock()
		delete(o.listeners, id)
		o.mu.Unlock()
	}
}

// Subscribe registers a change callback. It implements Source.
func (o *Observable[T]) Subscribe(fn func(T)) func() {
	return o.AddListener(fn)
}

// ListenerCount returns the number of registered listeners.
func (o *Observable[T]) ListenerCount() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.listeners)
}

// snapshotListeners copies the listener set; callers must hold o.mu.
func (o *Observable[T]) snapshotListeners() []func(T) {
	listeners := make([]func(T), 0, len(o.listeners))
	for _, fn := range o.listeners {
		listeners = append(listeners, fn)
	}
	return listeners
}

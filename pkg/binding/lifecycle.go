package binding

import "sync"

// Host schedules a re-render of the component that owns a hook.
// It is the binding layer's only contact point with the UI framework.
type Host interface {
	Invalidate()
}

// Lifecycle tracks the mount/unmount state of a single component instance.
// Hooks register cleanup through OnDispose and guard late asynchronous
// continuations through Tokens.
type Lifecycle struct {
	mu         sync.Mutex
	disposers  []func()
	destroyed  bool
	generation uint64
}

// NewLifecycle creates a live Lifecycle.
func NewLifecycle() *Lifecycle {
	return &Lifecycle{}
}

// OnDispose registers a cleanup function to be called when the lifecycle is
// disposed. Returns an unregister function. Registering after disposal runs
// the cleanup immediately.
func (l *Lifecycle) OnDispose(cleanup func()) func() {
	if cleanup == nil {
		return func() {}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.destroyed {
		cleanup()
		return func() {}
	}

	index := len(l.disposers)
	l.disposers = append(l.disposers, cleanup)

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if index < len(l.disposers) {
			l.disposers[index] = nil
		}
	}
}

// Dispose marks the lifecycle destroyed and runs all registered cleanups in
// reverse order. Calling Dispose again is a no-op.
func (l *Lifecycle) Dispose() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.destroyed {
		return
	}
	l.destroyed = true
	l.generation++

	for i := len(l.disposers) - 1; i >= 0; i-- {
		if l.disposers[i] != nil {
			l.disposers[i]()
		}
	}
	l.disposers = nil
}

// Destroyed returns true if the lifecycle has been disposed.
func (l *Lifecycle) Destroyed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.destroyed
}

// Reset re-arms a disposed lifecycle for hosts that recycle component
// instances. Tokens issued before the reset stay dead.
func (l *Lifecycle) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.destroyed {
		return
	}
	l.destroyed = false
	l.generation++
}

// Token returns a guard bound to the lifecycle's current generation.
func (l *Lifecycle) Token() Token {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Token{lc: l, generation: l.generation}
}

// Token is a generation-stamped guard checked before applying results that
// arrive after a suspension point. A token from a disposed or reset
// lifecycle reports not alive.
type Token struct {
	lc         *Lifecycle
	generation uint64
}

// Alive reports whether the owning lifecycle is still live and has not been
// disposed or reset since the token was issued.
func (t Token) Alive() bool {
	if t.lc == nil {
		return false
	}
	t.lc.mu.Lock()
	defer t.lc.mu.Unlock()
	return !t.lc.destroyed && t.lc.generation == t.generation
}

// invalidate schedules a host re-render, tolerating a nil host.
func invalidate(host Host) {
	if host != nil {
		host.Invalidate()
	}
}

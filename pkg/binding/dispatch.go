package binding

import "sync"

var (
	dispatchMu   sync.RWMutex
	dispatchFunc func(callback func())
)

// RegisterDispatch sets the function used to schedule callbacks on the UI
// thread. The host framework should call this once during initialization.
// Pass nil to restore inline execution.
func RegisterDispatch(fn func(callback func())) {
	dispatchMu.Lock()
	dispatchFunc = fn
	dispatchMu.Unlock()
}

// dispatch schedules a callback through the registered dispatcher, or runs
// it inline when no dispatcher is registered.
func dispatch(callback func()) {
	if callback == nil {
		return
	}
	dispatchMu.RLock()
	fn := dispatchFunc
	dispatchMu.RUnlock()
	if fn == nil {
		callback()
		return
	}
	fn(callback)
}

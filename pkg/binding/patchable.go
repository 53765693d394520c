package binding

import (
	"fmt"
	"sync"

	"github.com/go-drift/statebind/pkg/errors"
)

// Record is the keyed record shape managed by Patchable.
type Record = map[string]any

// Patchable wraps a keyed record with partial-update, nested-entry-update
// and two-way field-binding operations.
//
// Every write commits to an internal mirror before the host re-render is
// scheduled, so synchronous logic that runs between renders (debounced
// chained updates, for example) always observes the latest committed value
// rather than a stale snapshot. The record is owned exclusively by its
// constructing component and must not be shared across components.
type Patchable struct {
	mu     sync.RWMutex
	latest Record
	token  Token
	host   Host
}

// NewPatchable creates a Patchable seeded with a shallow copy of initial.
func NewPatchable(lc *Lifecycle, host Host, initial Record) *Patchable {
	return &Patchable{
		latest: cloneRecord(initial),
		token:  lc.Token(),
		host:   host,
	}
}

// Set replaces the whole record. The mirror is updated before Set returns.
func (p *Patchable) Set(next Record) {
	p.mu.Lock()
	p.latest = cloneRecord(next)
	p.mu.Unlock()
	p.invalidate()
}

// Update shallow-merges a partial record into the mirror's current value and
// commits the result. Merging reads from the mirror, not the last-rendered
// value, so same-tick sequential updates compose without losing fields.
func (p *Patchable) Update(patch Record) {
	p.mu.Lock()
	merged := cloneRecord(p.latest)
	for key, value := range patch {
		merged[key] = value
	}
	p.latest = merged
	p.mu.Unlock()
	p.invalidate()
}

// SetItem replaces a single entry inside the nested record held by field,
// leaving the rest of the nested record and all other top-level fields
// unchanged. A missing field starts a new nested record; a field holding
// anything other than a Record is rejected with an error.
func (p *Patchable) SetItem(field, key string, value any) error {
	p.mu.Lock()
	current, exists := p.latest[field]
	var dict Record
	if exists {
		typed, ok := current.(Record)
		if !ok {
			p.mu.Unlock()
			err := &errors.BindError{
				Op:   "binding.Patchable.SetItem",
				Kind: errors.KindPatch,
				Err:  fmt.Errorf("field %q holds %T, not a nested record", field, current),
			}
			errors.Report(err)
			return err
		}
		dict = typed
	}

	next := make(Record, len(dict)+1)
	for k, v := range dict {
		next[k] = v
	}
	next[key] = value

	merged := cloneRecord(p.latest)
	merged[field] = next
	p.latest = merged
	p.mu.Unlock()
	p.invalidate()
	return nil
}

// Binding two-way-binds a single record field to an input control.
type Binding struct {
	// Name is the bound field name.
	Name string
	// Value is the field's value at the time Bind was called.
	Value any
	// OnChange commits a new value for the field.
	OnChange func(any)
}

// Bind returns a descriptor for two-way-binding the given field.
// OnChange(v) is equivalent to Update(Record{field: v}).
func (p *Patchable) Bind(field string) Binding {
	value, _ := p.Get(field)
	return Binding{
		Name:  field,
		Value: value,
		OnChange: func(v any) {
			p.Update(Record{field: v})
		},
	}
}

// Latest returns a shallow copy of the most recently committed record,
// independent of the host's re-render cycle.
func (p *Patchable) Latest() Record {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return cloneRecord(p.latest)
}

// Get reads a single field from the mirror.
func (p *Patchable) Get(field string) (any, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	value, ok := p.latest[field]
	return value, ok
}

func (p *Patchable) invalidate() {
	if p.token.Alive() {
		invalidate(p.host)
	}
}

func cloneRecord(record Record) Record {
	next := make(Record, len(record))
	for key, value := range record {
		next[key] = value
	}
	return next
}

// Package registry holds the roots confirmed during a run in discovery order.
// Its capacity is fixed at construction to the number of roots requested.
package registry

import (
	"errors"
	"fmt"

	"github.com/rootfind/rootfind/internal/types"
)

// ErrCapacity is returned when a root is recorded after every slot is filled.
var ErrCapacity = errors.New("registry capacity exceeded")

// Registry is a fixed-capacity, append-only list of confirmed roots.
// It is not safe for concurrent use; each search owns its own registry.
type Registry struct {
	slots []types.RootRecord
	count int
}

// New reserves capacity slots, all unconfirmed.
func New(capacity int) *Registry {
	if capacity < 0 {
		capacity = 0
	}
	return &Registry{slots: make([]types.RootRecord, capacity)}
}

// Record stores rec in the next free slot and marks it confirmed.
func (r *Registry) Record(rec types.RootRecord) error {
	if r.count >= len(r.slots) {
		return fmt.Errorf("%w: %d slots already filled", ErrCapacity, len(r.slots))
	}
	rec.Confirmed = true
	r.slots[r.count] = rec
	r.count++
	return nil
}

// Confirmed returns a copy of the confirmed roots in discovery order.
func (r *Registry) Confirmed() []types.RootRecord {
	out := make([]types.RootRecord, r.count)
	copy(out, r.slots[:r.count])
	return out
}

// Count is the number of confirmed roots.
func (r *Registry) Count() int { return r.count }

// Capacity is the number of reserved slots.
func (r *Registry) Capacity() int { return len(r.slots) }

// Full reports whether every reserved slot holds a confirmed root.
func (r *Registry) Full() bool { return r.count == len(r.slots) }

// Each calls fn for every confirmed root value without copying the records.
func (r *Registry) Each(fn func(value float64)) {
	for i := 0; i < r.count; i++ {
		fn(r.slots[i].Value)
	}
}

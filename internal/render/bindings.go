// internal/render/bindings.go
package render

import (
	"knife-arena/internal/sim"
	"knife-arena/internal/types"
)

// Bindings maps knife IDs to whatever a renderer attaches to them (a model
// instance, a trail, a sprite). The simulation never sees these.
type Bindings[T any] struct {
	create  func(sim.ProjectilePose) T
	release func(T)
	items   map[types.EntityID]T
}

// NewBindings creates an empty map. release may be nil.
func NewBindings[T any](create func(sim.ProjectilePose) T, release func(T)) *Bindings[T] {
	return &Bindings[T]{
		create:  create,
		release: release,
		items:   make(map[types.EntityID]T),
	}
}

// Sync creates bindings for new knives and releases the ones that were
// removed this frame or are no longer listed.
func (b *Bindings[T]) Sync(poses []sim.ProjectilePose) {
	live := make(map[types.EntityID]bool, len(poses))
	for _, p := range poses {
		if p.Removed {
			continue
		}
		live[p.ID] = true
		if _, ok := b.items[p.ID]; !ok {
			b.items[p.ID] = b.create(p)
		}
	}
	for id, item := range b.items {
		if !live[id] {
			b.drop(id, item)
		}
	}
}

// Get returns the binding of a knife.
func (b *Bindings[T]) Get(id types.EntityID) (T, bool) {
	item, ok := b.items[id]
	return item, ok
}

func (b *Bindings[T]) Len() int { return len(b.items) }

// Clear releases every binding.
func (b *Bindings[T]) Clear() {
	for id, item := range b.items {
		b.drop(id, item)
	}
}

func (b *Bindings[T]) drop(id types.EntityID, item T) {
	delete(b.items, id)
	if b.release != nil {
		b.release(item)
	}
}

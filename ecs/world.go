package ecs

import (
	"sort"

	"github.com/radmars/ld54/ecs/component"
)

// World owns entities, component storage, the event queue and the delta of
// the tick currently being simulated.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	events   EventQueue

	// pending holds entities marked for destruction during a batch. They are
	// invisible to lookups until FlushDestroyed frees them.
	pending  map[Entity]struct{}
	parents  map[Entity]Entity
	children map[Entity][]Entity

	delta float64
	ticks uint64
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		stores:   make(map[component.ComponentID]*SparseSet),
		pending:  make(map[Entity]struct{}),
		parents:  make(map[Entity]Entity),
		children: make(map[Entity][]Entity),
	}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// IsAlive reports whether an entity handle is valid and not marked for
// destruction.
func (w *World) IsAlive(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	_, marked := w.pending[e]
	return !marked
}

// DestroyEntity frees an entity, its components and all of its children
// immediately. It returns false if the entity was not alive.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	// Children detach themselves while being destroyed, so walk a copy.
	for _, child := range append([]Entity(nil), w.children[e]...) {
		w.DestroyEntity(child)
	}
	delete(w.children, e)
	if parent, ok := w.parents[e]; ok {
		w.detach(parent, e)
		delete(w.parents, e)
	}
	for _, store := range w.stores {
		store.Remove(int(e.id()))
	}
	delete(w.pending, e)
	return w.entities.destroy(e)
}

// MarkDestroyed hides e and its children from every lookup right away and
// defers freeing them to FlushDestroyed. Marking an entity twice is a no-op.
func (w *World) MarkDestroyed(e Entity) bool {
	if !w.IsAlive(e) {
		return false
	}
	w.pending[e] = struct{}{}
	for _, child := range w.children[e] {
		w.MarkDestroyed(child)
	}
	return true
}

// FlushDestroyed frees every entity marked since the last flush and returns
// how many were freed.
func (w *World) FlushDestroyed() int {
	if w == nil || len(w.pending) == 0 {
		return 0
	}
	marked := make([]Entity, 0, len(w.pending))
	for e := range w.pending {
		marked = append(marked, e)
	}
	sort.Slice(marked, func(i, j int) bool { return marked[i] < marked[j] })
	freed := 0
	for _, e := range marked {
		if w.DestroyEntity(e) {
			freed++
		}
	}
	w.pending = make(map[Entity]struct{})
	return freed
}

// SetParent links child to parent so that destroying the parent cascades.
func (w *World) SetParent(child, parent Entity) error {
	if !w.IsAlive(child) || !w.IsAlive(parent) {
		return component.ErrEntityNotAlive
	}
	if old, ok := w.parents[child]; ok {
		w.detach(old, child)
	}
	w.parents[child] = parent
	w.children[parent] = append(w.children[parent], child)
	return nil
}

// Parent returns the parent of e, if any.
func (w *World) Parent(e Entity) (Entity, bool) {
	if !w.IsAlive(e) {
		return 0, false
	}
	p, ok := w.parents[e]
	return p, ok
}

// Children returns a copy of the children of e.
func (w *World) Children(e Entity) []Entity {
	if !w.IsAlive(e) {
		return nil
	}
	return append([]Entity(nil), w.children[e]...)
}

func (w *World) detach(parent, child Entity) {
	kids := w.children[parent]
	for i, k := range kids {
		if k == child {
			w.children[parent] = append(kids[:i], kids[i+1:]...)
			break
		}
	}
	if len(w.children[parent]) == 0 {
		delete(w.children, parent)
	}
}

// AddComponent stores value for e under the component id.
func (w *World) AddComponent(e Entity, id component.ComponentID, value any) error {
	if id == 0 {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !w.IsAlive(e) {
		return component.ErrEntityNotAlive
	}
	store, ok := w.stores[id]
	if !ok {
		store = &SparseSet{}
		w.stores[id] = store
	}
	store.Set(int(e.id()), value)
	return nil
}

// RemoveComponent removes a component from e and reports whether it existed.
func (w *World) RemoveComponent(e Entity, id component.ComponentID) bool {
	if !w.IsAlive(e) {
		return false
	}
	store, ok := w.stores[id]
	if !ok || !store.Has(int(e.id())) {
		return false
	}
	store.Remove(int(e.id()))
	return true
}

// GetComponent returns the raw component value stored for e.
func (w *World) GetComponent(e Entity, id component.ComponentID) (any, bool) {
	if !w.IsAlive(e) {
		return nil, false
	}
	store, ok := w.stores[id]
	if !ok {
		return nil, false
	}
	v := store.Get(int(e.id()))
	return v, v != nil
}

// HasComponent reports whether e carries the component.
func (w *World) HasComponent(e Entity, id component.ComponentID) bool {
	if !w.IsAlive(e) {
		return false
	}
	store, ok := w.stores[id]
	return ok && store.Has(int(e.id()))
}

// Query returns the live entities carrying every listed component, in slot
// order.
func (w *World) Query(ids ...component.ComponentID) []Entity {
	if w == nil || len(ids) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(ids))
	for _, id := range ids {
		store, ok := w.stores[id]
		if !ok {
			return nil
		}
		sets = append(sets, store)
	}
	slots := IntersectEntities(sets...)
	sort.Ints(slots)
	out := make([]Entity, 0, len(slots))
	for _, slot := range slots {
		e, ok := w.entities.entityFor(slot)
		if !ok || !w.IsAlive(e) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// First returns the lowest live entity carrying the component.
func (w *World) First(id component.ComponentID) (Entity, bool) {
	ents := w.Query(id)
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}

// Entities returns every live entity.
func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, w.entities.count)
	for slot := 1; slot <= len(w.entities.gen); slot++ {
		e, ok := w.entities.entityFor(slot)
		if ok && w.IsAlive(e) {
			out = append(out, e)
		}
	}
	return out
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// Delta returns the elapsed seconds of the tick being simulated.
func (w *World) Delta() float64 {
	if w == nil {
		return 0
	}
	return w.delta
}

// SetDelta sets the elapsed seconds for the next systems run.
func (w *World) SetDelta(dt float64) {
	if w == nil {
		return
	}
	if dt < 0 {
		dt = 0
	}
	w.delta = dt
}

// Ticks returns how many scheduler ticks have completed.
func (w *World) Ticks() uint64 {
	if w == nil {
		return 0
	}
	return w.ticks
}

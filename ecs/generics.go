package ecs

import "github.com/radmars/ld54/ecs/component"

func CreateEntity(w *World) Entity {
	return w.CreateEntity()
}

func DestroyEntity(w *World, e Entity) bool {
	return w.DestroyEntity(e)
}

// MarkDestroyed defers destruction of e (and its children) to the end of the
// current batch.
func MarkDestroyed(w *World, e Entity) bool {
	return w.MarkDestroyed(e)
}

func FlushDestroyed(w *World) int {
	return w.FlushDestroyed()
}

func IsAlive(w *World, e Entity) bool {
	return w.IsAlive(e)
}

func Entities(w *World) []Entity {
	return w.Entities()
}

func SetParent(w *World, child, parent Entity) error {
	return w.SetParent(child, parent)
}

func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if value == nil {
		return component.ErrNilComponent
	}
	return w.AddComponent(e, kind.ID(), value)
}

// With returns an add step for Build.
func With[T any](w *World, kind component.ComponentKind[T], value *T) func(Entity) error {
	return func(e Entity) error {
		return Add(w, e, kind, value)
	}
}

// Build creates an entity and runs each step on it. If a step fails the
// entity is destroyed and the error returned.
func Build(w *World, steps ...func(Entity) error) (Entity, error) {
	e := w.CreateEntity()
	for _, step := range steps {
		if err := step(e); err != nil {
			w.DestroyEntity(e)
			return 0, err
		}
	}
	return e, nil
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w.RemoveComponent(e, kind.ID())
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w.HasComponent(e, kind.ID())
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	value, ok := w.GetComponent(e, kind.ID())
	if !ok {
		return nil, false
	}
	cast, ok := value.(*T)
	if !ok {
		return nil, false
	}
	return cast, true
}

func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	return w.First(kind.ID())
}

// Single returns the only live entity carrying kind. Zero or several matches
// report false so callers can skip the tick.
func Single[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	ents := w.Query(kind.ID())
	if len(ents) != 1 {
		return 0, false
	}
	return ents[0], true
}

// ForEach visits live entities carrying kind. Entities marked for destruction
// during the walk are skipped.
func ForEach[A any](w *World, ka component.ComponentKind[A], fn func(Entity, *A)) {
	for _, e := range w.Query(ka.ID()) {
		a, ok := Get(w, e, ka)
		if !ok {
			continue
		}
		fn(e, a)
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	for _, e := range w.Query(ka.ID(), kb.ID()) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		if !okA || !okB {
			continue
		}
		fn(e, a, b)
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	for _, e := range w.Query(ka.ID(), kb.ID(), kc.ID()) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		c, okC := Get(w, e, kc)
		if !okA || !okB || !okC {
			continue
		}
		fn(e, a, b, c)
	}
}

func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	for _, e := range w.Query(ka.ID(), kb.ID(), kc.ID(), kd.ID()) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		c, okC := Get(w, e, kc)
		d, okD := Get(w, e, kd)
		if !okA || !okB || !okC || !okD {
			continue
		}
		fn(e, a, b, c, d)
	}
}

package system

import (
	"log"
	"math/rand/v2"

	"github.com/radmars/ld54/ecs"
	"github.com/radmars/ld54/ecs/component"
)

type contactKey struct {
	ball  ecs.Entity
	other ecs.Entity
}

// CollisionSystem routes ball contacts published by the physics step to
// their gameplay effect. Each begin fires once until the matching end.
// Destruction is deferred and applied after the whole batch.
type CollisionSystem struct {
	rng    *rand.Rand
	active map[contactKey]struct{}
}

func NewCollisionSystem(rng *rand.Rand) *CollisionSystem {
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 2))
	}
	return &CollisionSystem{
		rng:    rng,
		active: make(map[contactKey]struct{}),
	}
}

func (s *CollisionSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	for _, evt := range w.Events().DrainType(ecs.EventContact) {
		contact, ok := evt.Data.(ecs.ContactEvent)
		if !ok {
			continue
		}
		s.route(w, contact)
	}

	ecs.FlushDestroyed(w)
	s.prune(w)
}

func (s *CollisionSystem) route(w *ecs.World, contact ecs.ContactEvent) {
	ball, other, ok := splitBallContact(w, contact)
	key := contactKey{ball: ball, other: other}

	if contact.Phase == ecs.ContactEnd {
		if ok {
			delete(s.active, key)
		} else {
			delete(s.active, contactKey{ball: contact.A, other: contact.B})
			delete(s.active, contactKey{ball: contact.B, other: contact.A})
		}
		return
	}
	if !ok {
		return
	}
	if _, seen := s.active[key]; seen {
		return
	}
	s.active[key] = struct{}{}

	// One entity may carry several roles; each fires on its own.
	if ecs.Has(w, other, component.RockSensorComponent.Kind()) {
		s.breakRock(w, other)
	}
	if wall, ok := ecs.Get(w, other, component.WallComponent.Kind()); ok {
		if wall.Lethal {
			ecs.MarkDestroyed(w, ball)
		} else {
			TriggerSound(w, component.SoundWall)
		}
	}
	if ecs.Has(w, other, component.PlayerTagComponent.Kind()) {
		s.hitPlayer(w, other)
	}
	if ecs.Has(w, other, component.PaddleComponent.Kind()) {
		TriggerSound(w, component.SoundPaddle)
	}
}

// splitBallContact orders a contact as (ball, other). Contacts without a live
// ball on either side report false.
func splitBallContact(w *ecs.World, contact ecs.ContactEvent) (ecs.Entity, ecs.Entity, bool) {
	if !w.IsAlive(contact.A) || !w.IsAlive(contact.B) {
		return 0, 0, false
	}
	if ecs.Has(w, contact.A, component.BallComponent.Kind()) {
		return contact.A, contact.B, true
	}
	if ecs.Has(w, contact.B, component.BallComponent.Kind()) {
		return contact.B, contact.A, true
	}
	return 0, 0, false
}

func (s *CollisionSystem) breakRock(w *ecs.World, sensorEntity ecs.Entity) {
	sensor, ok := ecs.Get(w, sensorEntity, component.RockSensorComponent.Kind())
	if !ok {
		return
	}
	target := ecs.Entity(sensor.Target)
	if !w.IsAlive(target) {
		return
	}
	// The sensor is a child of the rock, so it goes with it.
	ecs.MarkDestroyed(w, target)
	ecs.MarkDestroyed(w, sensorEntity)
	TriggerSound(w, component.SoundBreak)
}

func (s *CollisionSystem) hitPlayer(w *ecs.World, player ecs.Entity) {
	name := component.SoundHit1
	if s.rng.IntN(2) == 1 {
		name = component.SoundHit2
	}
	TriggerSound(w, name)

	health, ok := ecs.Get(w, player, component.HealthComponent.Kind())
	if !ok || health.Invulnerable > 0 || health.Current <= 0 {
		return
	}
	health.Current--
	health.Invulnerable = health.InvulnerableTime
	log.Printf("player hit: %d/%d health left", health.Current, health.Max)
}

// prune forgets contacts whose participants no longer exist; their end
// events may never arrive.
func (s *CollisionSystem) prune(w *ecs.World) {
	for key := range s.active {
		if !w.IsAlive(key.ball) || !w.IsAlive(key.other) {
			delete(s.active, key)
		}
	}
}

// ActiveContacts reports how many ball contacts are currently open.
func (s *CollisionSystem) ActiveContacts() int {
	if s == nil {
		return 0
	}
	return len(s.active)
}

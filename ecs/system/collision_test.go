package system

import (
	"math/rand/v2"
	"testing"

	"github.com/radmars/ld54/ecs"
	"github.com/radmars/ld54/ecs/component"
)

func pushContact(w *ecs.World, phase ecs.ContactPhase, a, b ecs.Entity) {
	w.Events().Push(ecs.Event{Type: ecs.EventContact, Data: ecs.ContactEvent{Phase: phase, A: a, B: b}})
}

func addRockWithSensor(t *testing.T, w *ecs.World) (ecs.Entity, ecs.Entity) {
	t.Helper()
	rock := addEntity(t, w, with(w, component.RockComponent, component.Rock{}))
	sensor := addEntity(t, w, with(w, component.RockSensorComponent, component.RockSensor{Target: uint64(rock)}))
	if err := ecs.SetParent(w, sensor, rock); err != nil {
		t.Fatalf("set parent: %v", err)
	}
	return rock, sensor
}

func TestCollisionSystemRouting(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T, w *ecs.World, sys *CollisionSystem, ball ecs.Entity)
	}{
		{
			name: "rock_sensor_breaks_rock",
			run: func(t *testing.T, w *ecs.World, sys *CollisionSystem, ball ecs.Entity) {
				rock, sensor := addRockWithSensor(t, w)
				pushContact(w, ecs.ContactBegin, ball, sensor)
				sys.Update(w)

				if ecs.IsAlive(w, rock) || ecs.IsAlive(w, sensor) {
					t.Fatalf("rock and sensor should be destroyed")
				}
				if !ecs.IsAlive(w, ball) {
					t.Fatalf("ball should survive a rock break")
				}
				if names := soundNames(w); len(names) != 1 || names[0] != component.SoundBreak {
					t.Fatalf("expected one break effect, got %v", names)
				}
			},
		},
		{
			name: "two_balls_same_sensor_one_break",
			run: func(t *testing.T, w *ecs.World, sys *CollisionSystem, ball ecs.Entity) {
				other := addEntity(t, w, with(w, component.BallComponent, component.Ball{}))
				_, sensor := addRockWithSensor(t, w)
				pushContact(w, ecs.ContactBegin, ball, sensor)
				pushContact(w, ecs.ContactBegin, sensor, other)
				sys.Update(w)

				if names := soundNames(w); len(names) != 1 {
					t.Fatalf("expected exactly one break effect, got %v", names)
				}
			},
		},
		{
			name: "lethal_wall_removes_ball",
			run: func(t *testing.T, w *ecs.World, sys *CollisionSystem, ball ecs.Entity) {
				wall := addEntity(t, w, with(w, component.WallComponent, component.Wall{Lethal: true}))
				pushContact(w, ecs.ContactBegin, wall, ball)
				sys.Update(w)

				if ecs.IsAlive(w, ball) {
					t.Fatalf("ball should be removed by lethal wall")
				}
				if !ecs.IsAlive(w, wall) {
					t.Fatalf("wall should stay")
				}
				if names := soundNames(w); len(names) != 0 {
					t.Fatalf("lethal wall should be silent, got %v", names)
				}
			},
		},
		{
			name: "wall_bounce_once_per_contact",
			run: func(t *testing.T, w *ecs.World, sys *CollisionSystem, ball ecs.Entity) {
				wall := addEntity(t, w, with(w, component.WallComponent, component.Wall{}))
				pushContact(w, ecs.ContactBegin, ball, wall)
				pushContact(w, ecs.ContactBegin, ball, wall)
				sys.Update(w)

				if names := soundNames(w); len(names) != 1 || names[0] != component.SoundWall {
					t.Fatalf("expected one wall effect, got %v", names)
				}

				pushContact(w, ecs.ContactEnd, ball, wall)
				pushContact(w, ecs.ContactBegin, ball, wall)
				sys.Update(w)
				if names := soundNames(w); len(names) != 2 {
					t.Fatalf("expected a second wall effect after separation, got %v", names)
				}
			},
		},
		{
			name: "player_hit_sound_and_damage",
			run: func(t *testing.T, w *ecs.World, sys *CollisionSystem, ball ecs.Entity) {
				player := addEntity(t, w,
					with(w, component.PlayerTagComponent, component.PlayerTag{}),
					with(w, component.HealthComponent, component.Health{Current: 3, Max: 3, InvulnerableTime: 1}),
				)
				pushContact(w, ecs.ContactBegin, ball, player)
				sys.Update(w)

				names := soundNames(w)
				if len(names) != 1 || (names[0] != component.SoundHit1 && names[0] != component.SoundHit2) {
					t.Fatalf("expected one hit effect, got %v", names)
				}
				h, _ := ecs.Get(w, player, component.HealthComponent.Kind())
				if h.Current != 2 || h.Invulnerable != 1 {
					t.Fatalf("expected 2 health and invulnerability, got %+v", h)
				}

				second := addEntity(t, w, with(w, component.BallComponent, component.Ball{}))
				pushContact(w, ecs.ContactBegin, second, player)
				sys.Update(w)
				if h.Current != 2 {
					t.Fatalf("invulnerable player should not take damage, got %d", h.Current)
				}
			},
		},
		{
			name: "paddle_sound",
			run: func(t *testing.T, w *ecs.World, sys *CollisionSystem, ball ecs.Entity) {
				paddle := addEntity(t, w, with(w, component.PaddleComponent, component.Paddle{}))
				pushContact(w, ecs.ContactBegin, ball, paddle)
				sys.Update(w)
				if names := soundNames(w); len(names) != 1 || names[0] != component.SoundPaddle {
					t.Fatalf("expected paddle effect, got %v", names)
				}
			},
		},
		{
			name: "every_role_fires",
			run: func(t *testing.T, w *ecs.World, sys *CollisionSystem, ball ecs.Entity) {
				rock := addEntity(t, w, with(w, component.RockComponent, component.Rock{}))
				other := addEntity(t, w,
					with(w, component.PlayerTagComponent, component.PlayerTag{}),
					with(w, component.HealthComponent, component.Health{Current: 3, Max: 3, InvulnerableTime: 1}),
					with(w, component.RockSensorComponent, component.RockSensor{Target: uint64(rock)}),
				)
				h, _ := ecs.Get(w, other, component.HealthComponent.Kind())
				pushContact(w, ecs.ContactBegin, ball, other)
				sys.Update(w)

				if ecs.IsAlive(w, rock) {
					t.Fatalf("rock should be destroyed")
				}
				names := soundNames(w)
				if len(names) != 2 {
					t.Fatalf("expected break and hit effects, got %v", names)
				}
				var broke, hit bool
				for _, name := range names {
					switch name {
					case component.SoundBreak:
						broke = true
					case component.SoundHit1, component.SoundHit2:
						hit = true
					}
				}
				if !broke || !hit {
					t.Fatalf("expected break and hit effects, got %v", names)
				}
				if h.Current != 2 {
					t.Fatalf("expected player damage, got %d", h.Current)
				}
			},
		},
		{
			name: "lethal_wall_keeps_dispatching",
			run: func(t *testing.T, w *ecs.World, sys *CollisionSystem, ball ecs.Entity) {
				other := addEntity(t, w,
					with(w, component.WallComponent, component.Wall{Lethal: true}),
					with(w, component.PaddleComponent, component.Paddle{}),
				)
				pushContact(w, ecs.ContactBegin, ball, other)
				sys.Update(w)

				if ecs.IsAlive(w, ball) {
					t.Fatalf("ball should be removed by lethal wall")
				}
				if names := soundNames(w); len(names) != 1 || names[0] != component.SoundPaddle {
					t.Fatalf("expected paddle effect after lethal wall, got %v", names)
				}
			},
		},
		{
			name: "dead_entity_ignored",
			run: func(t *testing.T, w *ecs.World, sys *CollisionSystem, ball ecs.Entity) {
				wall := addEntity(t, w, with(w, component.WallComponent, component.Wall{}))
				ecs.DestroyEntity(w, wall)
				pushContact(w, ecs.ContactBegin, ball, wall)
				sys.Update(w)
				if names := soundNames(w); len(names) != 0 {
					t.Fatalf("expected no effects, got %v", names)
				}
			},
		},
		{
			name: "no_ball_ignored",
			run: func(t *testing.T, w *ecs.World, sys *CollisionSystem, ball ecs.Entity) {
				wall := addEntity(t, w, with(w, component.WallComponent, component.Wall{}))
				paddle := addEntity(t, w, with(w, component.PaddleComponent, component.Paddle{}))
				pushContact(w, ecs.ContactBegin, wall, paddle)
				sys.Update(w)
				if names := soundNames(w); len(names) != 0 {
					t.Fatalf("expected no effects, got %v", names)
				}
				if sys.ActiveContacts() != 0 {
					t.Fatalf("expected no tracked contacts")
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			addSoundBank(t, w)
			ball := addEntity(t, w, with(w, component.BallComponent, component.Ball{}))
			sys := NewCollisionSystem(rand.New(rand.NewPCG(7, 7)))
			tc.run(t, w, sys, ball)
		})
	}
}

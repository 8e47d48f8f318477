package entity

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/radmars/ld54/ecs"
	"github.com/radmars/ld54/ecs/component"
	"github.com/radmars/ld54/prefabs"
)

type nopPlayback struct{}

func (nopPlayback) Play()             {}
func (nopPlayback) Pause()            {}
func (nopPlayback) SetVolume(float64) {}
func (nopPlayback) Close() error      { return nil }

func loadSpecs(t *testing.T) (prefabs.GameSpec, PlayerAnimations) {
	t.Helper()
	game, err := prefabs.LoadGameSpec()
	if err != nil {
		t.Fatalf("load game spec: %v", err)
	}
	animSpec, err := prefabs.LoadAnimationsSpec()
	if err != nil {
		t.Fatalf("load animations spec: %v", err)
	}
	anims, err := NewPlayerAnimations(animSpec)
	if err != nil {
		t.Fatalf("player animations: %v", err)
	}
	return game, anims
}

func TestRockGrid(t *testing.T) {
	arena := component.Arena{Right: 800, Bottom: 600}
	spec := prefabs.RocksSpec{Width: 64, Height: 52, Gap: 6, SideGap: 30, BottomGap: 30, BelowPaddle: 200}

	tests := []struct {
		name     string
		paddleY  float64
		wantCols int
		wantRows int
		wantX0   float64
		wantY0   float64
	}{
		{"default", 80, 10, 5, 85, 306},
		{"paddle_low", 300, 10, 1, 85, 526},
		{"no_room", 400, 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols, rows, x0, y0 := RockGrid(arena, tt.paddleY, spec)
			if cols != tt.wantCols || rows != tt.wantRows {
				t.Fatalf("grid %dx%d, want %dx%d", cols, rows, tt.wantCols, tt.wantRows)
			}
			if x0 != tt.wantX0 || y0 != tt.wantY0 {
				t.Fatalf("origin (%v, %v), want (%v, %v)", x0, y0, tt.wantX0, tt.wantY0)
			}
		})
	}
}

func TestRockLayoutScript(t *testing.T) {
	src, err := prefabs.LoadScript("rocks.tengo")
	if err != nil {
		t.Fatalf("load script: %v", err)
	}
	cells, err := RockLayout(src, 3, 2, 2, 7)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if len(cells) != 6 {
		t.Fatalf("expected 6 cells, got %d", len(cells))
	}
	for i, c := range cells {
		if c.Col != i%3 || c.Row != i/3 {
			t.Fatalf("cell %d at (%d, %d)", i, c.Col, c.Row)
		}
		if c.Variant < 0 || c.Variant > 1 {
			t.Fatalf("cell %d variant %d", i, c.Variant)
		}
	}

	again, err := RockLayout(src, 3, 2, 2, 7)
	if err != nil {
		t.Fatalf("second layout: %v", err)
	}
	for i := range cells {
		if cells[i] != again[i] {
			t.Fatalf("layout not deterministic at %d: %v vs %v", i, cells[i], again[i])
		}
	}
}

func TestRockLayoutErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"missing_output", `x := 1`},
		{"out_of_bounds", `rocks := [{col: 5, row: 0, variant: 0}]`},
		{"not_a_map", `rocks := [1, 2]`},
		{"compile_error", `rocks := [`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := RockLayout([]byte(tt.src), 2, 2, 1, 0); err == nil {
				t.Fatalf("expected error")
			}
		})
	}

	if _, err := RockLayout([]byte(`x := 1`), 2, 2, 1, 0); !errors.Is(err, errNoRockLayout) {
		t.Fatalf("expected errNoRockLayout, got %v", err)
	}
}

func TestDefaultRockLayout(t *testing.T) {
	cells := DefaultRockLayout(4, 3, 2, rand.New(rand.NewPCG(1, 2)))
	if len(cells) != 12 {
		t.Fatalf("expected 12 cells, got %d", len(cells))
	}
	for _, c := range cells {
		if c.Variant < 0 || c.Variant > 1 {
			t.Fatalf("variant %d out of range", c.Variant)
		}
	}
}

func TestNewRockSensorFollowsRock(t *testing.T) {
	w := ecs.NewWorld()
	spec := prefabs.RocksSpec{Width: 64, Height: 52, FrameW: 64, FrameH: 64, Variants: 2}
	rock, sensor, err := NewRock(w, spec, nil, 100, 200, 1)
	if err != nil {
		t.Fatalf("new rock: %v", err)
	}

	rs, ok := ecs.Get(w, sensor, component.RockSensorComponent.Kind())
	if !ok || ecs.Entity(rs.Target) != rock {
		t.Fatalf("sensor should target the rock")
	}
	body, _ := ecs.Get(w, sensor, component.PhysicsBodyComponent.Kind())
	if !body.Sensor || body.Width != 64 || body.Height != 52 {
		t.Fatalf("unexpected sensor body %+v", body)
	}
	if ecs.Has(w, rock, component.SpriteComponent.Kind()) {
		t.Fatalf("nil sheet should not add a sprite")
	}

	ecs.MarkDestroyed(w, rock)
	if ecs.FlushDestroyed(w) != 2 {
		t.Fatalf("expected rock and sensor to be freed together")
	}
}

func TestNewArenaWalls(t *testing.T) {
	w := ecs.NewWorld()
	walls, err := NewArenaWalls(w, component.Arena{Right: 800, Bottom: 600}, 40)
	if err != nil {
		t.Fatalf("walls: %v", err)
	}
	if len(walls) != 4 {
		t.Fatalf("expected 4 walls, got %d", len(walls))
	}

	lethal := 0
	for _, e := range walls {
		wall, _ := ecs.Get(w, e, component.WallComponent.Kind())
		if !wall.Lethal {
			continue
		}
		lethal++
		tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		if tr.Y != 620 {
			t.Fatalf("lethal wall should sit below the floor, got y=%v", tr.Y)
		}
	}
	if lethal != 1 {
		t.Fatalf("expected exactly one lethal wall, got %d", lethal)
	}
}

func TestNewPlayerAnimations(t *testing.T) {
	clip := prefabs.ClipSpec{First: 0, Last: 0, FrameDuration: 0.125, Loop: true}

	tests := []struct {
		name    string
		spec    prefabs.AnimationsSpec
		wantErr bool
	}{
		{
			name: "complete",
			spec: prefabs.AnimationsSpec{FrameW: 64, FrameH: 70, Columns: 9, Clips: map[string]prefabs.ClipSpec{
				"idle":      clip,
				"walk":      {First: 1, Last: 2, FrameDuration: 0.125, Loop: true},
				"jump_up":   {First: 4, Last: 5, FrameDuration: 0.125},
				"jump_down": {First: 6, Last: 6, FrameDuration: 0.125},
			}},
		},
		{
			name:    "missing_walk",
			spec:    prefabs.AnimationsSpec{FrameW: 64, FrameH: 70, Clips: map[string]prefabs.ClipSpec{"idle": clip}},
			wantErr: true,
		},
		{
			name: "duplicate_first_frame",
			spec: prefabs.AnimationsSpec{FrameW: 64, FrameH: 70, Clips: map[string]prefabs.ClipSpec{
				"idle": clip,
				"walk": clip,
			}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPlayerAnimations(tt.spec)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewSoundBank(t *testing.T) {
	var opened []string
	open := func(file string) (component.Playback, error) {
		opened = append(opened, file)
		return nopPlayback{}, nil
	}
	bank, err := NewSoundBank(prefabs.SoundsSpec{Sounds: map[string]prefabs.SoundSpec{
		"wall": {File: "wall.wav", Duration: 0.25},
	}}, open)
	if err != nil {
		t.Fatalf("sound bank: %v", err)
	}

	src, ok := bank.Sources["wall"]
	if !ok {
		t.Fatalf("wall source missing")
	}
	if src.Volume != 1 || src.Duration != 0.25 {
		t.Fatalf("unexpected source %+v", src)
	}
	if len(opened) != 0 {
		t.Fatalf("sources should open lazily")
	}
	if _, err := src.New(); err != nil {
		t.Fatalf("open: %v", err)
	}
	if len(opened) != 1 || opened[0] != "wall.wav" {
		t.Fatalf("unexpected opens %v", opened)
	}

	if _, err := NewSoundBank(prefabs.SoundsSpec{}, nil); err == nil {
		t.Fatalf("expected error for nil opener")
	}
}

func TestBuildArena(t *testing.T) {
	game, anims := loadSpecs(t)
	script, err := prefabs.LoadScript(game.Rocks.Script)
	if err != nil {
		t.Fatalf("load script: %v", err)
	}

	w := ecs.NewWorld()
	out, err := BuildArena(w, ArenaConfig{
		Game:       game,
		Animations: anims,
		Sounds:     component.SoundBank{Sources: map[string]component.SoundSource{}},
		RockScript: script,
		Seed:       3,
	})
	if err != nil {
		t.Fatalf("build arena: %v", err)
	}

	if len(out.Walls) != 4 {
		t.Fatalf("expected 4 walls, got %d", len(out.Walls))
	}
	if len(out.Rocks) != 50 {
		t.Fatalf("expected 50 rocks, got %d", len(out.Rocks))
	}
	if got := len(w.Query(component.RockSensorComponent.Kind().ID())); got != 50 {
		t.Fatalf("expected 50 rock sensors, got %d", got)
	}
	if p, ok := ecs.Single(w, component.PaddleComponent.Kind()); !ok || p != out.Paddle {
		t.Fatalf("expected a single paddle")
	}
	if p, ok := ecs.Single(w, component.PlayerTagComponent.Kind()); !ok || p != out.Player {
		t.Fatalf("expected a single player")
	}

	timer, ok := ecs.Get(w, out.State, component.BallSpawnTimerComponent.Kind())
	if !ok || timer.Interval != 3 {
		t.Fatalf("unexpected spawn timer %+v", timer)
	}
	clock, _ := ecs.Get(w, out.State, component.SurvivalClockComponent.Kind())
	if !clock.Running || clock.GameOver {
		t.Fatalf("clock should start running")
	}
	ctrl, _ := ecs.Get(w, out.Paddle, component.PaddleControllerComponent.Kind())
	if ctrl.RestingY != 80 {
		t.Fatalf("paddle resting line %v, want 80", ctrl.RestingY)
	}
}

func TestBuildArenaFallsBackToFullGrid(t *testing.T) {
	game, anims := loadSpecs(t)
	w := ecs.NewWorld()
	out, err := BuildArena(w, ArenaConfig{
		Game:       game,
		Animations: anims,
		RockScript: []byte(`rocks := "nope"`),
	})
	if err != nil {
		t.Fatalf("build arena: %v", err)
	}
	if len(out.Rocks) != 50 {
		t.Fatalf("expected full grid of 50, got %d", len(out.Rocks))
	}
}

func TestApplyTuning(t *testing.T) {
	game, anims := loadSpecs(t)
	w := ecs.NewWorld()
	out, err := BuildArena(w, ArenaConfig{Game: game, Animations: anims})
	if err != nil {
		t.Fatalf("build arena: %v", err)
	}

	game.Ball.SpawnInterval = 1.5
	game.Paddle.Speed = 500
	game.Player.MoveSpeed = 123
	ApplyTuning(w, game)

	timer, _ := ecs.Get(w, out.State, component.BallSpawnTimerComponent.Kind())
	ctrl, _ := ecs.Get(w, out.Paddle, component.PaddleControllerComponent.Kind())
	player, _ := ecs.Get(w, out.Player, component.PlayerComponent.Kind())
	if timer.Interval != 1.5 || ctrl.Speed != 500 || player.MoveSpeed != 123 {
		t.Fatalf("tuning not applied: interval=%v speed=%v move=%v", timer.Interval, ctrl.Speed, player.MoveSpeed)
	}
}

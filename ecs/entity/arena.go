package entity

import (
	"fmt"
	"log"
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/radmars/ld54/ecs"
	"github.com/radmars/ld54/ecs/component"
	"github.com/radmars/ld54/prefabs"
)

// Art holds the images used by the arena builders. Any of them may be nil,
// which leaves the matching entities invisible.
type Art struct {
	Background *ebiten.Image
	Player     *ebiten.Image
	Rocks      *ebiten.Image
	Ball       *ebiten.Image
	Paddle     *ebiten.Image
}

// ArenaConfig is everything BuildArena needs.
type ArenaConfig struct {
	Game       prefabs.GameSpec
	Animations PlayerAnimations
	Sounds     component.SoundBank
	Art        Art
	// RockScript is the tengo layout script. Empty or failing scripts fall
	// back to a full grid.
	RockScript []byte
	Seed       int64
}

// Arena lists the entities BuildArena created.
type Arena struct {
	State  ecs.Entity
	Player ecs.Entity
	Paddle ecs.Entity
	Walls  []ecs.Entity
	Rocks  []ecs.Entity
}

// RockGrid fits as many rocks as possible between the side gaps, starting
// BelowPaddle under the paddle and stopping BottomGap above the floor. It
// returns the grid size and the centre of the top-left rock.
func RockGrid(arena component.Arena, paddleY float64, spec prefabs.RocksSpec) (cols, rows int, x0, y0 float64) {
	pitchX := spec.Width + spec.Gap
	pitchY := spec.Height + spec.Gap
	if pitchX <= 0 || pitchY <= 0 {
		return 0, 0, 0, 0
	}

	availW := arena.Width() - 2*spec.SideGap + spec.Gap
	top := paddleY + spec.BelowPaddle
	availH := arena.Bottom - spec.BottomGap - top + spec.Gap
	cols = int(math.Floor(availW / pitchX))
	rows = int(math.Floor(availH / pitchY))
	if cols <= 0 || rows <= 0 {
		return 0, 0, 0, 0
	}

	gridW := float64(cols)*pitchX - spec.Gap
	x0 = arena.Left + (arena.Width()-gridW)/2 + spec.Width/2
	y0 = top + spec.Height/2
	return cols, rows, x0, y0
}

// BuildArena populates w with a fresh round: game state, walls, paddle,
// rocks and the player.
func BuildArena(w *ecs.World, cfg ArenaConfig) (Arena, error) {
	var out Arena
	spec := cfg.Game
	arena := ArenaFromSpec(spec.Arena)

	if cfg.Art.Background != nil {
		bg := ecs.CreateEntity(w)
		if err := ecs.Add(w, bg, component.TransformComponent.Kind(), &component.Transform{X: arena.Left, Y: arena.Top, ScaleX: 1, ScaleY: 1}); err != nil {
			return out, fmt.Errorf("arena: background transform: %w", err)
		}
		if err := ecs.Add(w, bg, component.SpriteComponent.Kind(), &component.Sprite{Image: cfg.Art.Background}); err != nil {
			return out, fmt.Errorf("arena: background sprite: %w", err)
		}
		if err := ecs.Add(w, bg, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: -100}); err != nil {
			return out, fmt.Errorf("arena: background layer: %w", err)
		}
	}

	state, err := NewGameState(w, spec, cfg.Sounds)
	if err != nil {
		return out, fmt.Errorf("arena: %w", err)
	}
	out.State = state

	walls, err := NewArenaWalls(w, arena, spec.Arena.WallThickness)
	if err != nil {
		return out, fmt.Errorf("arena: %w", err)
	}
	out.Walls = walls

	paddle, err := NewPaddle(w, spec.Paddle, arena, cfg.Art.Paddle)
	if err != nil {
		return out, fmt.Errorf("arena: %w", err)
	}
	out.Paddle = paddle

	cols, rows, x0, y0 := RockGrid(arena, arena.Top+spec.Paddle.Gap, spec.Rocks)
	cells := layoutRocks(cfg, cols, rows)
	for _, cell := range cells {
		x := x0 + float64(cell.Col)*(spec.Rocks.Width+spec.Rocks.Gap)
		y := y0 + float64(cell.Row)*(spec.Rocks.Height+spec.Rocks.Gap)
		rock, _, err := NewRock(w, spec.Rocks, cfg.Art.Rocks, x, y, cell.Variant)
		if err != nil {
			return out, fmt.Errorf("arena: %w", err)
		}
		out.Rocks = append(out.Rocks, rock)
	}

	player, err := NewPlayer(w, spec.Player, cfg.Animations, cfg.Art.Player)
	if err != nil {
		return out, fmt.Errorf("arena: %w", err)
	}
	out.Player = player

	log.Printf("arena: %dx%d rock grid, %d rocks", cols, rows, len(out.Rocks))
	return out, nil
}

func layoutRocks(cfg ArenaConfig, cols, rows int) []RockCell {
	variants := cfg.Game.Rocks.Variants
	if len(cfg.RockScript) > 0 {
		cells, err := RockLayout(cfg.RockScript, cols, rows, variants, cfg.Seed)
		if err == nil {
			return cells
		}
		log.Printf("arena: %v, using full grid", err)
	}
	rng := rand.New(rand.NewPCG(uint64(cfg.Seed), uint64(cfg.Seed)^0x9e3779b97f4a7c15))
	return DefaultRockLayout(cols, rows, variants, rng)
}

// LoadArt loads every image named by the specs.
func LoadArt(spec prefabs.GameSpec, anims prefabs.AnimationsSpec, load func(string) (*ebiten.Image, error)) (Art, error) {
	var art Art
	for _, item := range []struct {
		name string
		dst  **ebiten.Image
	}{
		{spec.Arena.Background, &art.Background},
		{anims.Sheet, &art.Player},
		{spec.Rocks.Image, &art.Rocks},
		{spec.Ball.Image, &art.Ball},
		{spec.Paddle.Image, &art.Paddle},
	} {
		if item.name == "" {
			continue
		}
		img, err := load(item.name)
		if err != nil {
			return art, fmt.Errorf("art: load %s: %w", item.name, err)
		}
		*item.dst = img
	}
	return art, nil
}

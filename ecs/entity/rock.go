package entity

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/radmars/ld54/ecs"
	"github.com/radmars/ld54/ecs/component"
	"github.com/radmars/ld54/prefabs"
)

var errNoRockLayout = errors.New("script did not define a 'rocks' array")

// RockCell is one rock slot chosen by the layout script.
type RockCell struct {
	Col, Row int
	Variant  int
}

// NewRock builds a solid rock and its sensor child. Destroying the rock
// takes the sensor with it.
func NewRock(w *ecs.World, spec prefabs.RocksSpec, sheet *ebiten.Image, x, y float64, variant int) (ecs.Entity, ecs.Entity, error) {
	rock := ecs.CreateEntity(w)
	if err := ecs.Add(w, rock, component.RockComponent.Kind(), &component.Rock{Variant: variant}); err != nil {
		return 0, 0, fmt.Errorf("rock: add tag: %w", err)
	}
	if err := ecs.Add(w, rock, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, 0, fmt.Errorf("rock: add transform: %w", err)
	}
	if err := ecs.Add(w, rock, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:       component.BodyStatic,
		Width:      spec.Width,
		Height:     spec.Height,
		Elasticity: 1,
	}); err != nil {
		return 0, 0, fmt.Errorf("rock: add physics body: %w", err)
	}
	if err := ecs.Add(w, rock, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{Category: component.LayerRock}); err != nil {
		return 0, 0, fmt.Errorf("rock: add collision layer: %w", err)
	}

	if sheet != nil {
		grid := component.SpriteSheet{FrameW: spec.FrameW, FrameH: spec.FrameH, Columns: spec.Variants}
		if err := ecs.Add(w, rock, component.SpriteComponent.Kind(), &component.Sprite{
			Image:     sheet,
			Source:    grid.Rect(uint(variant)),
			UseSource: true,
			OriginX:   float64(spec.FrameW) / 2,
			OriginY:   float64(spec.FrameH) / 2,
		}); err != nil {
			return 0, 0, fmt.Errorf("rock: add sprite: %w", err)
		}
		if err := ecs.Add(w, rock, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.RenderLayer}); err != nil {
			return 0, 0, fmt.Errorf("rock: add render layer: %w", err)
		}
	}

	sensor := ecs.CreateEntity(w)
	if err := ecs.Add(w, sensor, component.RockSensorComponent.Kind(), &component.RockSensor{Target: uint64(rock)}); err != nil {
		return 0, 0, fmt.Errorf("rock sensor: add tag: %w", err)
	}
	if err := ecs.Add(w, sensor, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, 0, fmt.Errorf("rock sensor: add transform: %w", err)
	}
	if err := ecs.Add(w, sensor, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:   component.BodyStatic,
		Width:  spec.Width + 2*spec.SensorMargin,
		Height: spec.Height + 2*spec.SensorMargin,
		Sensor: true,
	}); err != nil {
		return 0, 0, fmt.Errorf("rock sensor: add physics body: %w", err)
	}
	if err := ecs.Add(w, sensor, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{
		Category: component.LayerRock,
		Mask:     component.LayerBall,
	}); err != nil {
		return 0, 0, fmt.Errorf("rock sensor: add collision layer: %w", err)
	}
	if err := ecs.SetParent(w, sensor, rock); err != nil {
		return 0, 0, fmt.Errorf("rock sensor: set parent: %w", err)
	}

	return rock, sensor, nil
}

// RockLayout runs a tengo layout script. The script sees cols, rows,
// variants and seed and must leave an array named rocks whose elements are
// maps with col, row and variant.
func RockLayout(src []byte, cols, rows, variants int, seed int64) ([]RockCell, error) {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	for name, v := range map[string]any{"cols": cols, "rows": rows, "variants": variants, "seed": seed} {
		if err := script.Add(name, v); err != nil {
			return nil, fmt.Errorf("rock layout: add %s: %w", name, err)
		}
	}

	compiled, err := script.Run()
	if err != nil {
		return nil, fmt.Errorf("rock layout: %w", err)
	}

	v := compiled.Get("rocks")
	if v == nil || v.IsUndefined() {
		return nil, fmt.Errorf("rock layout: %w", errNoRockLayout)
	}
	raw, ok := v.Value().([]any)
	if !ok {
		return nil, fmt.Errorf("rock layout: %w", errNoRockLayout)
	}

	cells := make([]RockCell, 0, len(raw))
	for i, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("rock layout: entry %d is not a map", i)
		}
		cell := RockCell{Col: toInt(m["col"]), Row: toInt(m["row"]), Variant: toInt(m["variant"])}
		if cell.Col < 0 || cell.Col >= cols || cell.Row < 0 || cell.Row >= rows {
			return nil, fmt.Errorf("rock layout: entry %d at (%d, %d) outside %dx%d grid", i, cell.Col, cell.Row, cols, rows)
		}
		if variants > 0 && (cell.Variant < 0 || cell.Variant >= variants) {
			cell.Variant = 0
		}
		cells = append(cells, cell)
	}
	return cells, nil
}

// DefaultRockLayout fills the whole grid with random variants.
func DefaultRockLayout(cols, rows, variants int, rng *rand.Rand) []RockCell {
	cells := make([]RockCell, 0, cols*rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			variant := 0
			if variants > 1 {
				variant = rng.IntN(variants)
			}
			cells = append(cells, RockCell{Col: col, Row: row, Variant: variant})
		}
	}
	return cells
}

func toInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	default:
		return 0
	}
}

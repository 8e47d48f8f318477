package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	GameFile       = "game.yaml"
	AnimationsFile = "animations.yaml"
	SoundsFile     = "sounds.yaml"
	RocksScript    = "rocks.tengo"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// GameSpec is the tuning in game.yaml.
type GameSpec struct {
	TPS     int         `yaml:"tps"`
	Arena   ArenaSpec   `yaml:"arena"`
	Physics PhysicsSpec `yaml:"physics"`
	Player  PlayerSpec  `yaml:"player"`
	Paddle  PaddleSpec  `yaml:"paddle"`
	Ball    BallSpec    `yaml:"ball"`
	Rocks   RocksSpec   `yaml:"rocks"`
	HUD     HUDSpec     `yaml:"hud"`
}

type ArenaSpec struct {
	Left          float64 `yaml:"left"`
	Top           float64 `yaml:"top"`
	Right         float64 `yaml:"right"`
	Bottom        float64 `yaml:"bottom"`
	WallThickness float64 `yaml:"wall_thickness"`
	Background    string  `yaml:"background"`
}

type PhysicsSpec struct {
	Gravity float64 `yaml:"gravity"`
}

type PlayerSpec struct {
	X                   float64 `yaml:"x"`
	Y                   float64 `yaml:"y"`
	Width               float64 `yaml:"width"`
	Height              float64 `yaml:"height"`
	MoveSpeed           float64 `yaml:"move_speed"`
	JumpSpeed           float64 `yaml:"jump_speed"`
	Health              int     `yaml:"health"`
	InvulnerableSeconds float64 `yaml:"invulnerable_seconds"`
	RenderLayer         int     `yaml:"render_layer"`
}

type PaddleSpec struct {
	Gap         float64 `yaml:"gap"`
	Speed       float64 `yaml:"speed"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	Image       string  `yaml:"image"`
	RenderLayer int     `yaml:"render_layer"`
}

type BallSpec struct {
	Radius        float64 `yaml:"radius"`
	Speed         float64 `yaml:"speed"`
	ConeDegrees   float64 `yaml:"cone_degrees"`
	SpawnInterval float64 `yaml:"spawn_interval"`
	OffsetY       float64 `yaml:"offset_y"`
	CleanupMargin float64 `yaml:"cleanup_margin"`
	Image         string  `yaml:"image"`
	RenderLayer   int     `yaml:"render_layer"`
}

type RocksSpec struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Gap          float64 `yaml:"gap"`
	SideGap      float64 `yaml:"side_gap"`
	BottomGap    float64 `yaml:"bottom_gap"`
	BelowPaddle  float64 `yaml:"below_paddle"`
	SensorMargin float64 `yaml:"sensor_margin"`
	Variants     int     `yaml:"variants"`
	Image        string  `yaml:"image"`
	FrameW       int     `yaml:"frame_w"`
	FrameH       int     `yaml:"frame_h"`
	Script       string  `yaml:"script"`
	RenderLayer  int     `yaml:"render_layer"`
}

type HUDSpec struct {
	Color  YAMLColor `yaml:"color"`
	Shadow YAMLColor `yaml:"shadow"`
}

// AnimationsSpec is the player clip table in animations.yaml.
type AnimationsSpec struct {
	Sheet   string              `yaml:"sheet"`
	FrameW  int                 `yaml:"frame_w"`
	FrameH  int                 `yaml:"frame_h"`
	Columns int                 `yaml:"columns"`
	Clips   map[string]ClipSpec `yaml:"clips"`
}

type ClipSpec struct {
	First         uint    `yaml:"first"`
	Last          uint    `yaml:"last"`
	FrameDuration float64 `yaml:"frame_duration"`
	Loop          bool    `yaml:"loop"`
}

// SoundsSpec lists the sound effects in sounds.yaml. Duration is how long a
// triggered effect lives and should match the file length.
type SoundsSpec struct {
	Sounds map[string]SoundSpec `yaml:"sounds"`
}

type SoundSpec struct {
	File     string  `yaml:"file"`
	Duration float64 `yaml:"duration"`
	Volume   float64 `yaml:"volume"`
}

func LoadGameSpec() (GameSpec, error) {
	return LoadSpec[GameSpec](GameFile)
}

func LoadAnimationsSpec() (AnimationsSpec, error) {
	spec, err := LoadSpec[AnimationsSpec](AnimationsFile)
	if err != nil {
		return spec, err
	}
	if len(spec.Clips) == 0 {
		return spec, fmt.Errorf("prefabs: %s: no clips", AnimationsFile)
	}
	return spec, nil
}

func LoadSoundsSpec() (SoundsSpec, error) {
	spec, err := LoadSpec[SoundsSpec](SoundsFile)
	if err != nil {
		return spec, err
	}
	for name, s := range spec.Sounds {
		if s.File == "" {
			return spec, fmt.Errorf("prefabs: %s: sound %q has no file", SoundsFile, name)
		}
		if s.Duration <= 0 {
			return spec, fmt.Errorf("prefabs: %s: sound %q needs a positive duration", SoundsFile, name)
		}
	}
	return spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// Or returns c's color, or fallback when unset.
func (c YAMLColor) Or(fallback color.Color) color.Color {
	if c.Color == nil {
		return fallback
	}
	return c.Color
}

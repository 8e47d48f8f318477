package component

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

type Sprite struct {
	Image      *ebiten.Image
	Source     image.Rectangle
	UseSource  bool
	OriginX    float64
	OriginY    float64
	FacingLeft bool
}

var SpriteComponent = NewComponent[Sprite]()

// SpriteSheet describes how frame indices map to cells of a sprite sheet.
type SpriteSheet struct {
	FrameW  int
	FrameH  int
	Columns int
}

// Rect returns the source rectangle of frame.
func (s SpriteSheet) Rect(frame uint) image.Rectangle {
	cols := s.Columns
	if cols <= 0 {
		cols = 1
	}
	col := int(frame) % cols
	row := int(frame) / cols
	x := col * s.FrameW
	y := row * s.FrameH
	return image.Rect(x, y, x+s.FrameW, y+s.FrameH)
}

var SpriteSheetComponent = NewComponent[SpriteSheet]()

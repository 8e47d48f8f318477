package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/radmars/ld54/ecs/component"
	"github.com/radmars/ld54/prefabs"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const (
	hudMargin = 12
	hudPip    = 10
)

// HUD draws the survival time and remaining health over the arena.
type HUD struct {
	face   ebtext.Face
	color  color.Color
	shadow color.Color
}

func NewHUD(spec prefabs.HUDSpec) *HUD {
	return &HUD{
		face:   ebtext.NewGoXFace(basicfont.Face7x13),
		color:  spec.Color.Or(colornames.White),
		shadow: spec.Shadow.Or(color.NRGBA{A: 0x99}),
	}
}

func (h *HUD) Draw(screen *ebiten.Image, clock component.SurvivalClock, health component.Health) {
	h.drawText(screen, fmt.Sprintf("TIME %6.1f", clock.Elapsed), hudMargin, hudMargin, ebtext.AlignStart)

	w := float32(screen.Bounds().Dx())
	for i := 0; i < health.Max; i++ {
		x := w - float32(hudMargin+(i+1)*(hudPip+4))
		c := colornames.Dimgray
		if i < health.Current {
			c = colornames.Crimson
		}
		vector.DrawFilledRect(screen, x, hudMargin, hudPip, hudPip, c, false)
	}
}

// DrawBanner centres msg on screen.
func (h *HUD) DrawBanner(screen *ebiten.Image, msg string) {
	b := screen.Bounds()
	h.drawText(screen, msg, float64(b.Dx())/2, float64(b.Dy())/2, ebtext.AlignCenter)
}

func (h *HUD) drawText(screen *ebiten.Image, msg string, x, y float64, align ebtext.Align) {
	for _, pass := range []struct {
		dx, dy float64
		c      color.Color
	}{
		{1, 1, h.shadow},
		{0, 0, h.color},
	} {
		op := &ebtext.DrawOptions{}
		op.GeoM.Translate(x+pass.dx, y+pass.dy)
		op.ColorScale.ScaleWithColor(pass.c)
		op.PrimaryAlign = align
		ebtext.Draw(screen, msg, h.face, op)
	}
}

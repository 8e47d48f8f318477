// Command clipview plays the player clips from animations.yaml so frame
// ranges and timings can be checked without running the game. Left and
// right switch clips; -slow divides playback speed.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/radmars/ld54/assets"
	"github.com/radmars/ld54/ecs/component"
	"github.com/radmars/ld54/ecs/entity"
	"github.com/radmars/ld54/ecs/system"
	"github.com/radmars/ld54/prefabs"
)

const (
	viewSize = 256
	zoom     = 3
)

type viewer struct {
	sheet *ebiten.Image
	anims entity.PlayerAnimations
	names []string
	index int
	state component.AnimationState
	loops int
	slow  float64
}

func (v *viewer) selectClip(i int) {
	v.index = (i + len(v.names)) % len(v.names)
	v.state = component.NewAnimationState(v.anims.Table.MustClip(v.names[v.index]))
	v.loops = 0
}

func (v *viewer) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		v.selectClip(v.index + 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		v.selectClip(v.index - 1)
	}
	v.loops += system.AdvanceAnimation(&v.state, 1/float64(ebiten.TPS())/v.slow)
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x20, 0x20, 0x28, 0xff})

	grid := v.anims.Sheet
	frame := v.sheet.SubImage(grid.Rect(v.state.Frame)).(*ebiten.Image)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(zoom, zoom)
	op.GeoM.Translate(float64(viewSize*zoom-grid.FrameW*zoom)/2, float64(viewSize*zoom-grid.FrameH*zoom)/2)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(frame, op)

	clip := v.state.Clip
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  frames %d-%d  frame %d  loops %d\n%.3fs/frame  loop=%v",
		v.names[v.index], clip.FirstFrame, clip.LastFrame, v.state.Frame, v.loops, clip.FrameDuration, clip.Loop))
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return viewSize * zoom, viewSize * zoom
}

func main() {
	slow := flag.Float64("slow", 1, "playback slowdown factor")
	flag.Parse()
	if *slow <= 0 {
		*slow = 1
	}

	spec, err := prefabs.LoadAnimationsSpec()
	if err != nil {
		log.Fatal(err)
	}
	anims, err := entity.NewPlayerAnimations(spec)
	if err != nil {
		log.Fatal(err)
	}
	sheet, err := assets.LoadImage(spec.Sheet)
	if err != nil {
		log.Fatal(err)
	}

	names := anims.Table.Names()
	sort.Strings(names)
	v := &viewer{sheet: sheet, anims: anims, names: names, slow: *slow}
	v.selectClip(0)

	ebiten.SetWindowSize(viewSize*zoom, viewSize*zoom)
	ebiten.SetWindowTitle("clipview")
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}

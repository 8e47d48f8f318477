package main

import (
	"fmt"
	"image/color"
	"log"
	"sync"

	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
)

var (
	clipboardOnce sync.Once
	clipboardOK   bool
)

// copyToClipboard writes s to the system clipboard. Platforms without one
// log once and ignore later calls.
func copyToClipboard(s string) {
	clipboardOnce.Do(func() {
		if err := clipboard.Init(); err != nil {
			log.Printf("clipboard unavailable: %v", err)
			return
		}
		clipboardOK = true
	})
	if !clipboardOK {
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(s))
}

type overlayButton struct {
	label   string
	onClick func()
}

// NewPauseUI builds the pause menu.
func NewPauseUI(g *Game) *ebitenui.UI {
	return newOverlayUI("Paused",
		overlayButton{"Resume", g.resume},
		overlayButton{"Restart", func() {
			if err := g.newRound(); err != nil {
				log.Printf("restart: %v", err)
			}
		}},
		overlayButton{"Quit", func() { g.quit = true }},
	)
}

// NewGameOverUI builds the game over menu showing the survival time.
func NewGameOverUI(g *Game, survived float64) *ebitenui.UI {
	score := fmt.Sprintf("Survived %.1f seconds", survived)
	return newOverlayUI("Game over\n"+score,
		overlayButton{"Play again", func() {
			if err := g.newRound(); err != nil {
				log.Printf("restart: %v", err)
			}
		}},
		overlayButton{"Copy score", func() { copyToClipboard(score) }},
		overlayButton{"Quit", func() { g.quit = true }},
	)
}

// newOverlayUI builds a centered panel with a title and a column of buttons.
// Buttons use colored nine-slices and the built-in basic font, so no theme
// assets are needed.
func newOverlayUI(title string, buttons ...overlayButton) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnHover := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}
	centered := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(240, 160),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(widget.NewText(
		widget.TextOpts.Text(title, &face, white),
		widget.TextOpts.WidgetOpts(centered),
	))

	for _, b := range buttons {
		onClick := b.onClick
		panel.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: btnHover, Pressed: btnImg}),
			widget.ButtonOpts.Text(b.label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(centered),
			widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
				onClick()
			}),
		))
	}

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}

package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	debug := flag.Bool("debug", false, "outline physics shapes and show counters")
	seed := flag.Int64("seed", 0, "random seed (0 picks one from the clock)")
	watch := flag.Bool("watch", false, "reload prefabs/ from disk when they change")
	mute := flag.Bool("mute", false, "start with sound muted")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	game, err := NewGame(Options{
		Debug: *debug,
		Seed:  *seed,
		Watch: *watch,
		Mute:  *mute,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	w, h := game.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("ld54")
	ebiten.SetTPS(game.TPS())

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

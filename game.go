package main

import (
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/radmars/ld54/assets"
	"github.com/radmars/ld54/ecs"
	"github.com/radmars/ld54/ecs/component"
	"github.com/radmars/ld54/ecs/entity"
	"github.com/radmars/ld54/ecs/system"
	"github.com/radmars/ld54/prefabs"

	"github.com/ebitenui/ebitenui"
)

type gameState int

const (
	stateSplash gameState = iota
	statePlaying
	statePaused
	stateGameOver
)

type Options struct {
	Debug bool
	Seed  int64
	Watch bool
	Mute  bool
}

type Game struct {
	opts Options

	spec       prefabs.GameSpec
	anims      entity.PlayerAnimations
	sounds     component.SoundBank
	art        entity.Art
	rockScript []byte

	world     *ecs.World
	scheduler *ecs.Scheduler
	physics   *system.PhysicsSystem
	audio     *system.AudioSystem
	debug     *system.PhysicsDebugSystem
	arena     entity.Arena
	round     uint64

	state   gameState
	watcher *prefabs.Watcher
	hud     *HUD
	overlay *ebitenui.UI
	quit    bool
}

func NewGame(opts Options) (*Game, error) {
	g := &Game{opts: opts}
	if err := g.loadSpecs(); err != nil {
		return nil, err
	}

	animSpec, err := prefabs.LoadAnimationsSpec()
	if err != nil {
		return nil, err
	}
	art, err := entity.LoadArt(g.spec, animSpec, assets.LoadImage)
	if err != nil {
		return nil, err
	}
	g.art = art
	g.hud = NewHUD(g.spec.HUD)

	if opts.Watch {
		w, err := prefabs.NewWatcher()
		if err != nil {
			log.Printf("prefab watch disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	if err := g.restart(); err != nil {
		return nil, err
	}
	return g, nil
}

// loadSpecs reads every prefab file. Nothing is replaced unless all of them
// load.
func (g *Game) loadSpecs() error {
	spec, err := prefabs.LoadGameSpec()
	if err != nil {
		return err
	}
	animSpec, err := prefabs.LoadAnimationsSpec()
	if err != nil {
		return err
	}
	anims, err := entity.NewPlayerAnimations(animSpec)
	if err != nil {
		return err
	}
	soundSpec, err := prefabs.LoadSoundsSpec()
	if err != nil {
		return err
	}
	sounds, err := entity.NewSoundBank(soundSpec, entity.OpenAssetPlayback)
	if err != nil {
		return err
	}
	script, err := prefabs.LoadScript(spec.Rocks.Script)
	if err != nil {
		log.Printf("rock script %q: %v", spec.Rocks.Script, err)
		script = nil
	}

	g.spec = spec
	g.anims = anims
	g.sounds = sounds
	g.rockScript = script
	return nil
}

// restart throws the current world away and builds a new round.
func (g *Game) restart() error {
	if g.world != nil {
		system.StopSounds(g.world)
	}
	g.round++

	rng := rand.New(rand.NewPCG(uint64(g.opts.Seed), g.round))
	g.world = ecs.NewWorld()
	g.physics = system.NewPhysicsSystem(g.spec.Physics.Gravity)
	collision := system.NewCollisionSystem(rng)
	g.audio = system.NewAudioSystem()
	g.audio.Muted = g.opts.Mute
	g.debug = system.NewPhysicsDebugSystem(g.physics, collision)
	g.debug.Enabled = g.opts.Debug

	g.scheduler = ecs.NewScheduler(
		system.NewInputSystem(),
		system.NewPlayerControllerSystem(),
		system.NewPaddleSystem(),
		system.NewBallSpawnSystem(entity.BallSpawner(g.spec.Ball, g.art.Ball), rng),
		g.physics,
		collision,
		system.NewBallCleanupSystem(g.spec.Ball.CleanupMargin),
		system.NewPlayerAnimationSystem(),
		system.NewAnimationSystem(),
		system.NewAnimationStatsSystem(),
		system.NewTimedEffectSystem(),
		g.audio,
		system.NewSurvivalSystem(),
		system.NewRenderSystem(),
		g.debug,
	)

	arena, err := entity.BuildArena(g.world, entity.ArenaConfig{
		Game:       g.spec,
		Animations: g.anims,
		Sounds:     g.sounds,
		Art:        g.art,
		RockScript: g.rockScript,
		Seed:       g.opts.Seed + int64(g.round),
	})
	if err != nil {
		return fmt.Errorf("round %d: %w", g.round, err)
	}
	g.arena = arena
	g.overlay = nil
	return nil
}

func (g *Game) TPS() int {
	if g.spec.TPS <= 0 {
		return ebiten.DefaultTPS
	}
	return g.spec.TPS
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.applyReloads()

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug.Enabled = !g.debug.Enabled
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.opts.Mute = !g.opts.Mute
		g.audio.Muted = g.opts.Mute
	}

	switch g.state {
	case stateSplash:
		if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.state = statePlaying
		}
	case statePlaying:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
			g.pause()
			return nil
		}
		g.scheduler.Update(g.world, 1/float64(ebiten.TPS()))
		if clock, ok := g.clock(); ok && clock.GameOver {
			g.state = stateGameOver
			g.overlay = NewGameOverUI(g, clock.Elapsed)
		}
	case statePaused:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
			g.resume()
			return nil
		}
		g.overlay.Update()
	case stateGameOver:
		if inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			return g.newRound()
		}
		g.overlay.Update()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scheduler.Draw(g.world, screen)

	clock, _ := g.clock()
	g.hud.Draw(screen, clock, g.playerHealth())

	switch g.state {
	case stateSplash:
		g.hud.DrawBanner(screen, "Press SPACE to start")
	case statePaused, stateGameOver:
		if g.overlay != nil {
			g.overlay.Draw(screen)
		}
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	arena := entity.ArenaFromSpec(g.spec.Arena)
	return int(arena.Width()), int(arena.Height())
}

func (g *Game) Close() {
	if g.world != nil {
		system.StopSounds(g.world)
	}
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("prefab watch: %v", err)
		}
	}
}

func (g *Game) pause() {
	g.state = statePaused
	g.overlay = NewPauseUI(g)
}

func (g *Game) resume() {
	g.state = statePlaying
	g.overlay = nil
}

func (g *Game) newRound() error {
	if err := g.restart(); err != nil {
		return err
	}
	g.state = statePlaying
	return nil
}

func (g *Game) clock() (component.SurvivalClock, bool) {
	e, ok := ecs.First(g.world, component.SurvivalClockComponent.Kind())
	if !ok {
		return component.SurvivalClock{}, false
	}
	clock, ok := ecs.Get(g.world, e, component.SurvivalClockComponent.Kind())
	if !ok {
		return component.SurvivalClock{}, false
	}
	return *clock, true
}

func (g *Game) playerHealth() component.Health {
	health, ok := ecs.Get(g.world, g.arena.Player, component.HealthComponent.Kind())
	if !ok {
		return component.Health{}
	}
	return *health
}

// applyReloads picks up prefab edits. Tuning in game.yaml applies to the
// running round; layout, clips and sounds apply from the next round.
func (g *Game) applyReloads() {
	if g.watcher == nil {
		return
	}
	changed := g.watcher.Drain()
	if len(changed) == 0 {
		return
	}
	if err := g.loadSpecs(); err != nil {
		log.Printf("reload %v: %v", changed, err)
		return
	}
	entity.ApplyTuning(g.world, g.spec)
	g.physics.SetGravity(g.spec.Physics.Gravity)
	g.hud = NewHUD(g.spec.HUD)
	log.Printf("reloaded %v", changed)
}

package sprig

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// TPS sets ebiten's ticks per second. Zero keeps ebiten's default.
	TPS int
	// Clock supplies the per-update elapsed time. Nil uses FixedClock{}.
	Clock FrameClock
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene *Scene
	clock FrameClock
	w, h  int
}

func (g *game) Update() error {
	err := g.scene.Update(g.clock.Tick())
	if errors.Is(err, ErrQuit) {
		return ebiten.Termination
	}
	return err
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.scene.ClearColor != (Color{}) {
		screen.Fill(g.scene.ClearColor.toRGBA())
	}
	g.scene.DrawImage(screen)
	g.scene.flushScreenshots(screen)
}

func (g *game) Layout(int, int) (int, int) {
	return g.w, g.h
}

// Run opens a window and drives scene with ebiten's game loop until the window
// is closed, a frame script quits, or the scene's update func returns an
// error. Queued screenshots are captured after each frame is drawn.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	clock := cfg.Clock
	if clock == nil {
		clock = FixedClock{}
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	return ebiten.RunGame(&game{scene: scene, clock: clock, w: cfg.Width, h: cfg.Height})
}

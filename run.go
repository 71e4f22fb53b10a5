package refraction

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title      string
	Width      int
	Height     int
	Resizable  bool
	ClearColor *Color
}

// gameShell adapts a Scene to ebiten.Game.
type gameShell struct {
	scene     *Scene
	w, h      int
	resizable bool
}

func (g *gameShell) Update() error {
	if g.scene.updateFunc != nil {
		if err := g.scene.updateFunc(); err != nil {
			return err
		}
	}
	g.scene.Update()
	return nil
}

func (g *gameShell) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *gameShell) Layout(outsideW, outsideH int) (int, int) {
	if g.w > 0 && g.h > 0 && !g.resizable {
		return g.w, g.h
	}
	return outsideW, outsideH
}

// Run opens a window and drives scene until the window closes or the update
// callback returns an error.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if cfg.ClearColor != nil {
		scene.ClearColor = *cfg.ClearColor
	}
	return ebiten.RunGame(&gameShell{scene: scene, w: cfg.Width, h: cfg.Height, resizable: cfg.Resizable})
}

// SetUpdateFunc sets a callback run once per tick before the scene updates.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

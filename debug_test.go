package refraction

import (
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestDebugLogDisabled(t *testing.T) {
	buf := captureLogs(t)
	s := NewScene()
	cam := s.NewCamera(Rect{Width: 10, Height: 10})
	s.debugLog(cam, debugStats{commandCount: 5})
	if buf.Len() != 0 {
		t.Errorf("debugLog with debug off wrote %q", buf.String())
	}
}

func TestDebugLogFields(t *testing.T) {
	buf := captureLogs(t)
	s := NewScene()
	s.SetDebugMode(true)
	cam := s.NewCamera(Rect{Width: 10, Height: 10})
	cam.Name = "main"
	s.debugLog(cam, debugStats{listCount: 2, commandCount: 7, blitCount: 3, drawCallCount: 4})

	out := buf.String()
	for _, want := range []string{"name=main", "lists=2", "commands=7", "blits=3", "draws=4"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
}

func TestDrawStatsCountDraws(t *testing.T) {
	buf := captureLogs(t)
	s := NewScene()
	s.SetDebugMode(true)
	cam := s.NewCamera(Rect{Width: 64, Height: 64})
	cam.X, cam.Y = 32, 32

	// A material without published tiers falls back to a plain draw.
	mat, _ := NewMaterial(RefractionShader())
	glass := NewSprite("glass", ebiten.NewImage(8, 8))
	glass.Layer = LayerTransparent
	glass.Material = mat
	sky := NewSprite("sky", ebiten.NewImage(64, 64))
	sky.Layer = LayerSkybox
	s.Root().AddChild(glass)
	s.Root().AddChild(sky)

	s.Draw(ebiten.NewImage(64, 64))

	if !strings.Contains(buf.String(), "draws=2") {
		t.Errorf("output = %s, want draws=2", buf.String())
	}
	if s.rtPool.live != 0 || s.rtPool.idle() != 0 {
		t.Errorf("fallback draw should not touch the pool: live/idle = %d/%d", s.rtPool.live, s.rtPool.idle())
	}
}

package refraction

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Capture queues a labeled capture taken at the end of the current frame's
// Draw call. The composited frame and every texture published in the scene
// globals at that point (the blur tiers among them) are written to
// CaptureDir as timestamped PNG files. Safe to call from Update or Draw.
func (s *Scene) Capture(label string) {
	s.captureQueue = append(s.captureQueue, label)
}

// flushCaptures writes every queued capture. Called at the end of Scene.Draw.
func (s *Scene) flushCaptures(screen *ebiten.Image) {
	if len(s.captureQueue) == 0 {
		return
	}
	defer func() { s.captureQueue = s.captureQueue[:0] }()

	if err := os.MkdirAll(s.CaptureDir, 0o755); err != nil {
		Logger().Warn("capture skipped", slog.String("dir", s.CaptureDir), slog.Any("error", err))
		return
	}

	frame := readNRGBA(screen)
	names := s.globals.TextureNames()
	sort.Strings(names)
	textures := make([]*image.NRGBA, len(names))
	for i, name := range names {
		textures[i] = readNRGBA(s.globals.Texture(name))
	}

	stamp := time.Now().Format("20060102_150405")
	for _, label := range s.captureQueue {
		base := filepath.Join(s.CaptureDir, stamp+"_"+sanitizeLabel(label))
		if err := writePNG(base+".png", frame); err != nil {
			Logger().Warn("capture failed", slog.Any("error", err))
			continue
		}
		for i, name := range names {
			if err := writePNG(base+"_"+sanitizeLabel(name)+".png", textures[i]); err != nil {
				Logger().Warn("capture failed", slog.String("texture", name), slog.Any("error", err))
			}
		}
		Logger().Info("capture written", slog.String("path", base+".png"), slog.Int("textures", len(names)))
	}
}

// readNRGBA reads img back and converts premultiplied RGBA to straight-alpha
// NRGBA.
func readNRGBA(img *ebiten.Image) *image.NRGBA {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	img.ReadPixels(pixels)

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(pixels); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		out.Pix[i] = r
		out.Pix[i+1] = g
		out.Pix[i+2] = b
		out.Pix[i+3] = a
	}
	return out
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img *image.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings. Leading
// underscores from shader-property names are kept.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

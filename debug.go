package refraction

import (
	"log/slog"
	"time"
)

// debugStats holds per-camera frame timing and command metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	frameTime     time.Duration
	listCount     int
	commandCount  int
	blitCount     int
	drawCallCount int
}

// debugLog reports one camera frame at debug level.
func (s *Scene) debugLog(cam *Camera, stats debugStats) {
	if !s.debug {
		return
	}
	Logger().Debug("camera frame",
		slog.Uint64("camera", uint64(cam.ID())),
		slog.String("name", cam.Name),
		slog.Duration("total", stats.frameTime),
		slog.Int("lists", stats.listCount),
		slog.Int("commands", stats.commandCount),
		slog.Int("blits", stats.blitCount),
		slog.Int("draws", stats.drawCallCount),
		slog.Int("pooled", s.rtPool.idle()),
		slog.Int("live", s.rtPool.live),
	)
}

package refraction

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

// captureLogs installs a debug-level text logger for the duration of the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })
	return &buf
}

func TestLoggerSilentByDefault(t *testing.T) {
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger should be disabled at every level")
	}
}

func TestSetLoggerNilRestoresDefault(t *testing.T) {
	captureLogs(t)
	SetLogger(nil)
	if Logger() == nil {
		t.Fatal("Logger() returned nil")
	}
	if Logger().Enabled(context.Background(), slog.LevelWarn) {
		t.Error("SetLogger(nil) should restore the silent logger")
	}
}

func TestInstallLogsAtDebug(t *testing.T) {
	buf := captureLogs(t)
	s := NewScene()
	cam := s.NewCamera(Rect{Width: 64, Height: 64})
	r := newObserverRegistry(StageAfterSkybox)
	r.install(cam, NewCommandList(BlurCommandListTag))

	out := buf.String()
	if !strings.Contains(out, "level=DEBUG") || !strings.Contains(out, "command list installed") {
		t.Errorf("log output = %q", out)
	}
	if !strings.Contains(out, "stage=after-skybox") {
		t.Errorf("log output missing stage: %q", out)
	}
}

func TestNilShaderLogsWarning(t *testing.T) {
	buf := captureLogs(t)
	_, cam, _, fx := newTestEffect(t, DefaultConfig())
	fx.SetBlurShader(nil)
	fx.OnWillRenderObject(cam)

	out := buf.String()
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "nil shader") {
		t.Errorf("log output = %q", out)
	}
}

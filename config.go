package refraction

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// RunMode selects where the effect writes its blur strength.
type RunMode uint8

const (
	// ModeInteractive writes the blur strength onto the owning node's
	// material, so only that object is affected.
	ModeInteractive RunMode = iota
	// ModeStatic writes the blur strength as a scene-wide shader global.
	// Intended for previews where a single instance is visible.
	ModeStatic
)

// String returns the mode name accepted by UnmarshalText.
func (m RunMode) String() string {
	if m == ModeStatic {
		return "static"
	}
	return "interactive"
}

// UnmarshalText parses "interactive" or "static" (case-insensitive).
func (m *RunMode) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "interactive":
		*m = ModeInteractive
	case "static":
		*m = ModeStatic
	default:
		return fmt.Errorf("unknown run mode %q", text)
	}
	return nil
}

// Config is the configuration surface of a BlurRefraction effect. It is set
// once before the effect is activated.
type Config struct {
	// BlurShader is the blur-kernel program. Nil selects BlurShader().
	BlurShader *Shader `env:"-"`
	// BlurPower is the unitless blur-strength multiplier handed to the
	// refraction shader as _BlurPower.
	BlurPower float64 `env:"REFRACTION_BLUR_POWER" envDefault:"1.0"`
	// Mode selects the blur-strength sink.
	Mode RunMode `env:"REFRACTION_MODE" envDefault:"interactive"`
	// Debug is meant for Scene.SetDebugMode.
	Debug bool `env:"REFRACTION_DEBUG"`
	// CaptureDir is where Scene.Capture writes PNG files.
	CaptureDir string `env:"REFRACTION_CAPTURE_DIR" envDefault:"captures"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		BlurPower:  1.0,
		Mode:       ModeInteractive,
		CaptureDir: "captures",
	}
}

// LoadConfig reads the configuration from REFRACTION_* environment variables.
// Unset variables keep their defaults.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

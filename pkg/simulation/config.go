package simulation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/behavior"
)

//go:embed config.schema.json
var configSchema string

// ErrInvalidConfig is wrapped by every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Mode selects the flat or the volumetric flock.
type Mode int

const (
	Mode2D Mode = iota
	Mode3D
)

func (m Mode) String() string {
	if m == Mode3D {
		return "3d"
	}
	return "2d"
}

// ParseMode converts "2d" or "3d" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "2d":
		return Mode2D, nil
	case "3d":
		return Mode3D, nil
	}
	return Mode2D, fmt.Errorf("unknown mode %q", s)
}

// CameraConfig tunes the 3D camera controller.
type CameraConfig struct {
	MoveSpeed  float64 `json:"moveSpeed"`
	LookSpeed  float64 `json:"lookSpeed"`
	FovDegrees float64 `json:"fovDegrees"`
}

type Config struct {
	Mode        string `json:"mode"`        // "2d" or "3d"
	Timing      string `json:"timing"`      // "variable" or "fixed"
	UpdateOrder string `json:"updateOrder"` // "sequential" or "snapshot"

	// Population
	NumBoids int    `json:"numBoids"`
	Seed     uint64 `json:"seed"` // 0 draws a random seed at startup

	// Window
	WindowWidth  int `json:"windowWidth"`
	WindowHeight int `json:"windowHeight"`

	// Fixed timestep
	FixedStep       float64 `json:"fixedStep"`       // seconds per step
	MaxCatchUpSteps int     `json:"maxCatchUpSteps"` // 0 disables the cap

	// 2D trails
	Trails      bool `json:"trails"`
	TrailLength int  `json:"trailLength"`

	Flat   behavior.Settings2D `json:"flat"`
	Volume behavior.Settings3D `json:"volume"`
	Camera CameraConfig        `json:"camera"`
}

// DefaultConfig reproduces the classic 1024x720 flock of 100 boids.
func DefaultConfig() *Config {
	return &Config{
		Mode:            "2d",
		Timing:          "fixed",
		UpdateOrder:     "sequential",
		NumBoids:        100,
		WindowWidth:     1024,
		WindowHeight:    720,
		FixedStep:       behavior.DefaultFixedStep,
		MaxCatchUpSteps: 8,
		Trails:          true,
		TrailLength:     behavior.DefaultTrailLength,
		Flat:            behavior.DefaultSettings2D(),
		Volume:          behavior.DefaultSettings3D(),
		Camera: CameraConfig{
			MoveSpeed:  0.3,
			LookSpeed:  0.14,
			FovDegrees: 45,
		},
	}
}

// LoadConfig loads configuration from a JSON file, validates it against the
// embedded schema and applies it on top of DefaultConfig. Keys absent from the
// file keep their default value.
func LoadConfig(configFile string) (*Config, error) {
	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(b)
}

// ParseConfig is LoadConfig for an in-memory document.
func ParseConfig(b []byte) (*Config, error) {
	sch, err := jsonschema.CompileString("config.schema.json", configSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	cfg := DefaultConfig()
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the cross-field constraints the schema cannot express and
// the values set from the command line.
func (c *Config) Validate() error {
	if _, err := ParseMode(c.Mode); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := behavior.ParseTiming(c.Timing); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := behavior.ParseUpdateOrder(c.UpdateOrder); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	switch {
	case c.NumBoids < 0:
		return fmt.Errorf("%w: numBoids must not be negative, got %d", ErrInvalidConfig, c.NumBoids)
	case c.WindowWidth <= 0 || c.WindowHeight <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.WindowWidth, c.WindowHeight)
	case c.FixedStep <= 0:
		return fmt.Errorf("%w: fixedStep must be positive, got %g", ErrInvalidConfig, c.FixedStep)
	case c.MaxCatchUpSteps < 0:
		return fmt.Errorf("%w: maxCatchUpSteps must not be negative", ErrInvalidConfig)
	case c.TrailLength < 2:
		return fmt.Errorf("%w: trailLength must be at least 2, got %d", ErrInvalidConfig, c.TrailLength)
	case c.Flat.SeparationRadius > c.Flat.CohesionRadius:
		return fmt.Errorf("%w: flat separationRadius %g exceeds cohesionRadius %g",
			ErrInvalidConfig, c.Flat.SeparationRadius, c.Flat.CohesionRadius)
	case c.Volume.SeparationRadius > c.Volume.CohesionRadius:
		return fmt.Errorf("%w: volume separationRadius %g exceeds cohesionRadius %g",
			ErrInvalidConfig, c.Volume.SeparationRadius, c.Volume.CohesionRadius)
	case c.Volume.Margin >= c.Volume.HalfExtent:
		return fmt.Errorf("%w: volume margin %g leaves no room inside halfExtent %g",
			ErrInvalidConfig, c.Volume.Margin, c.Volume.HalfExtent)
	case 2*c.Flat.Margin >= float64(min(c.WindowWidth, c.WindowHeight)):
		return fmt.Errorf("%w: flat margin %g does not fit a %dx%d window",
			ErrInvalidConfig, c.Flat.Margin, c.WindowWidth, c.WindowHeight)
	}
	return nil
}

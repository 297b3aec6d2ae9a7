package infra

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"invention_go/internal/domain"

	"gopkg.in/yaml.v3"
)

// Config holds all application settings. Deploy-specific values can be
// overridden through environment variables after loading.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	Server struct {
		Addr      string `yaml:"addr"`
		StaticDir string `yaml:"static_dir"`
	} `yaml:"server"`

	Engine struct {
		Seed        int64 `yaml:"seed"`
		HeartbeatMS int   `yaml:"heartbeat_ms"`

		FastOpen    float64 `yaml:"fast_open"`
		SlowOpen    float64 `yaml:"slow_open"`
		FastStepPct float64 `yaml:"fast_step_pct"`
		SlowStepPct float64 `yaml:"slow_step_pct"`

		Sensitivity   float64 `yaml:"sensitivity"`
		PriceNoise    float64 `yaml:"price_noise"`
		SopranoRhythm int     `yaml:"soprano_rhythm"`

		RootMidi         int    `yaml:"root_midi"`
		RegimeMode       string `yaml:"regime_mode"` // "locked" or "clock"
		RegimeLock       string `yaml:"regime_lock"` // "MAJOR" or "MINOR"
		EnableRootMotion bool   `yaml:"enable_root_motion"`
		MaxRootOffset    int    `yaml:"max_root_offset"`
	} `yaml:"engine"`

	Storage struct {
		Path string `yaml:"path"` // empty = per-user config directory
	} `yaml:"storage"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// LoadConfig reads and parses the configuration file, applies environment
// overrides, and validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrConfigNotFound, path)
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	overrideWithEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks configuration validity
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return &domain.ConfigError{Field: "server.addr", Err: errors.New("address is required")}
	}
	if c.Engine.HeartbeatMS < 0 {
		return &domain.ConfigError{Field: "engine.heartbeat_ms", Err: errors.New("must not be negative")}
	}
	switch c.Engine.SopranoRhythm {
	case 0, 4, 8, 16:
	default:
		return &domain.ConfigError{Field: "engine.soprano_rhythm", Err: fmt.Errorf("must be 4, 8 or 16, got %d", c.Engine.SopranoRhythm)}
	}
	if c.Engine.FastStepPct < 0 || c.Engine.SlowStepPct < 0 {
		return &domain.ConfigError{Field: "engine.fast_step_pct", Err: errors.New("step percentages must not be negative")}
	}
	switch c.Engine.RegimeLock {
	case "", "MAJOR", "MINOR":
	default:
		return &domain.ConfigError{Field: "engine.regime_lock", Err: fmt.Errorf("must be MAJOR or MINOR, got %q", c.Engine.RegimeLock)}
	}
	return nil
}

// overrideWithEnv applies environment variables over the file values.
func overrideWithEnv(cfg *Config) {
	if addr := os.Getenv("INVENTION_ADDR"); addr != "" {
		cfg.Server.Addr = addr
	}
	if path := os.Getenv("INVENTION_DB_PATH"); path != "" {
		cfg.Storage.Path = path
	}
	if seed := os.Getenv("INVENTION_SEED"); seed != "" {
		if v, err := strconv.ParseInt(seed, 10, 64); err == nil {
			cfg.Engine.Seed = v
		}
	}
	if level := os.Getenv("INVENTION_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
}

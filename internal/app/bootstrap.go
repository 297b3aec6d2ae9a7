package app

import (
	"log/slog"
	"strconv"
	"time"

	"invention_go/internal/domain"
	"invention_go/internal/engine"
	"invention_go/internal/infra"
	"invention_go/internal/infra/storage"
	"invention_go/internal/regime"
	"invention_go/internal/stream"

	"github.com/joho/godotenv"
)

// Bootstrap orchestrates the application startup sequence
type Bootstrap struct {
	Config    *infra.Config
	Storage   *storage.Storage
	Engine    *engine.Engine
	Hub       *stream.Hub
	Scheduler *stream.Scheduler
	Server    *infra.Server
}

// NewBootstrap creates a new Bootstrap instance
func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize performs core system initialization (config, logger, storage,
// engine, stream wiring).
func (b *Bootstrap) Initialize() error {
	// .env is optional
	_ = godotenv.Load()

	slog.Info("🚀 Bootstrapping Invention Stream...")

	// 1. Load Config
	cfg, err := infra.LoadConfig("configs/config.yaml")
	if err != nil {
		return err // Let main handle the error
	}
	b.Config = cfg

	// 2. Setup Logger
	logger := infra.NewLogger(cfg)
	slog.SetDefault(logger)

	// 3. Initialize Storage (DB). The stream works without it, so failure
	// only disables persistence.
	store, err := storage.NewStorage(cfg.Storage.Path)
	if err != nil {
		slog.Warn("Settings persistence disabled", slog.Any("error", err))
	} else {
		b.Storage = store
		slog.Info("✅ Database initialized")
	}

	// 4. Build the engine. Seed 0 means non-reproducible.
	seed := cfg.Engine.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	b.Engine = engine.New(engine.Options{
		BuildID:          cfg.App.Version,
		Seed:             seed,
		Regime:           regime.FromConfig(cfg.Engine.RegimeMode, domain.Regime(cfg.Engine.RegimeLock)),
		FastOpen:         cfg.Engine.FastOpen,
		SlowOpen:         cfg.Engine.SlowOpen,
		FastStepPct:      cfg.Engine.FastStepPct,
		SlowStepPct:      cfg.Engine.SlowStepPct,
		RootMidi:         cfg.Engine.RootMidi,
		EnableRootMotion: cfg.Engine.EnableRootMotion,
		MaxRootOffset:    cfg.Engine.MaxRootOffset,
	})
	b.applyTuning()
	slog.Info("✅ Engine ready", slog.Int64("seed", seed), slog.String("regime_mode", cfg.Engine.RegimeMode))

	// 5. Stream wiring
	b.Hub = stream.NewHub()
	b.Scheduler = stream.NewScheduler(b.Engine, b.Hub, time.Duration(cfg.Engine.HeartbeatMS)*time.Millisecond)

	var settings domain.SettingsStore
	if b.Storage != nil {
		settings = b.Storage
	}
	b.Server = infra.NewServer(cfg, b.Engine, b.Hub, settings)

	return nil
}

// applyTuning layers YAML defaults, then persisted user settings, over the
// engine's built-in defaults. All values clamp inside the engine.
func (b *Bootstrap) applyTuning() {
	cfg := b.Config
	if cfg.Engine.Sensitivity > 0 {
		b.Engine.SetSensitivity(cfg.Engine.Sensitivity)
	}
	if cfg.Engine.PriceNoise > 0 {
		b.Engine.SetPriceNoise(cfg.Engine.PriceNoise)
	}
	if cfg.Engine.SopranoRhythm > 0 {
		b.Engine.SetSopranoRhythm(cfg.Engine.SopranoRhythm)
	}

	if b.Storage == nil {
		return
	}
	saved, err := b.Storage.LoadSettings()
	if err != nil {
		slog.Warn("Failed to load persisted settings", slog.Any("error", err))
		return
	}
	if v, ok := saved[domain.SettingSensitivity]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			b.Engine.SetSensitivity(f)
		}
	}
	if v, ok := saved[domain.SettingPriceNoise]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			b.Engine.SetPriceNoise(f)
		}
	}
	if v, ok := saved[domain.SettingSopranoRhythm]; ok {
		if r, err := strconv.Atoi(v); err == nil {
			b.Engine.SetSopranoRhythm(r)
		}
	}
}

package domain

// RegimeProvider decides the active scale mode for a harmonic clock step.
// Implementations must be pure functions of the step unless explicitly locked.
type RegimeProvider interface {
	Regime(step int) Regime
}

// BundleSink receives finished bundles for delivery to subscribers
type BundleSink interface {
	Broadcast(b *Bundle)
}

// SettingsStore persists user-tuned engine settings (for boot-time reapply)
type SettingsStore interface {
	SaveSetting(key, value string) error
	LoadSettings() (map[string]string, error)
}

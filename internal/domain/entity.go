package domain

import (
	"time"
)

// Setting represents a user-tuned engine parameter persisted across restarts (Key-Value)
type Setting struct {
	Key       string    `gorm:"primaryKey" json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Well-known setting keys. Values are stored in string form and re-parsed at
// boot; unparseable values fall back to the YAML defaults.
const (
	SettingSensitivity   = "sensitivity"
	SettingPriceNoise    = "price_noise"
	SettingSopranoRhythm = "soprano_rhythm"
)

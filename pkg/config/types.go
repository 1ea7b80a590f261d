package config

import "time"

// Config is the root configuration structure for the Lurelight application.
type Config struct {
	Log    LogConfig    `koanf:"log"`
	Engine EngineConfig `koanf:"engine" validate:"required"`
	Server ServerConfig `koanf:"server"`
}

// LogConfig holds logging related configuration.
type LogConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // json | text
}

// EngineConfig holds the decision engine tunables. Every threshold the
// engine uses lives here as a named value so it can be tested and tuned
// without touching the decision logic.
type EngineConfig struct {
	// ScreenshotDir is the directory of known-brand reference screenshots.
	// File base names double as fingerprint identifiers; the stem (base name
	// minus extension) is the brand's official registered domain.
	ScreenshotDir string `koanf:"screenshot_dir" validate:"required"`

	// HashThreshold is the maximum Hamming distance at which a probe image
	// is still declared a visual match.
	HashThreshold int `koanf:"hash_threshold" validate:"gte=0"`

	// HighCutoff and MediumCutoff bucket a match distance into the
	// High/Medium/Low confidence tiers. HighCutoff must not exceed
	// MediumCutoff.
	HighCutoff   int `koanf:"high_cutoff" validate:"gte=0,ltefield=MediumCutoff"`
	MediumCutoff int `koanf:"medium_cutoff" validate:"gte=0"`

	// EntropyThreshold is the Shannon entropy (bits per character) above
	// which a registered domain is treated as algorithmically generated.
	EntropyThreshold float64 `koanf:"entropy_threshold" validate:"gt=0"`

	// NormalizeSize is the side length of the canonical square every image
	// is resized to before hashing.
	NormalizeSize uint `koanf:"normalize_size" validate:"gt=0"`
}

// ServerConfig holds configuration for the HTTP serving layer.
type ServerConfig struct {
	Addr         string        `koanf:"addr"`
	Port         int           `koanf:"port" validate:"gte=0,lte=65535"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
}

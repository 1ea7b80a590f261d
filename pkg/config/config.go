// Package config loads and validates application configuration from
// defaults, an optional YAML file, and command-line flags, in that order of
// precedence (later wins).
package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	koanfyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

var (
	k    *koanf.Koanf
	once sync.Once
)

// InitGlobalConfig initializes the global koanf instance. Safe to call more
// than once.
func InitGlobalConfig() {
	once.Do(func() {
		k = koanf.New(".")
	})
}

// Manager handles loading and accessing application configuration.
type Manager struct {
	koanfInstance *koanf.Koanf
	currentConfig Config
	mu            sync.RWMutex
}

// NewManager creates a new configuration manager backed by the global koanf
// instance.
func NewManager() *Manager {
	InitGlobalConfig()
	return &Manager{koanfInstance: k}
}

// DefaultConfig returns a Config populated with the baseline values. The
// engine thresholds mirror the trained reference pipeline: 64-bit pHash with
// a match cutoff of 10 bits and an entropy cutoff of 3.5 bits/char.
func DefaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Engine: EngineConfig{
			ScreenshotDir:    "datasets/screenshots",
			HashThreshold:    10,
			HighCutoff:       5,
			MediumCutoff:     10,
			EntropyThreshold: 3.5,
			NormalizeSize:    256,
		},
		Server: ServerConfig{
			Addr:         "0.0.0.0",
			Port:         5000,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
	}
}

// DefaultConfigAsMap flattens DefaultConfig into the koanf key space.
func DefaultConfigAsMap() map[string]interface{} {
	def := DefaultConfig()
	return map[string]interface{}{
		"log.level":                def.Log.Level,
		"log.format":               def.Log.Format,
		"engine.screenshot_dir":    def.Engine.ScreenshotDir,
		"engine.hash_threshold":    def.Engine.HashThreshold,
		"engine.high_cutoff":       def.Engine.HighCutoff,
		"engine.medium_cutoff":     def.Engine.MediumCutoff,
		"engine.entropy_threshold": def.Engine.EntropyThreshold,
		"engine.normalize_size":    def.Engine.NormalizeSize,
		"server.addr":              def.Server.Addr,
		"server.port":              def.Server.Port,
		"server.read_timeout":      def.Server.ReadTimeout,
		"server.write_timeout":     def.Server.WriteTimeout,
	}
}

// BindFlags registers the configuration flags shared by all commands.
func BindFlags(fs *pflag.FlagSet) {
	def := DefaultConfig()
	fs.String("log.level", def.Log.Level, "Log level (debug|info|warn|error)")
	fs.String("log.format", def.Log.Format, "Log format (json|text)")
	fs.String("engine.screenshot_dir", def.Engine.ScreenshotDir, "Directory of known-brand reference screenshots")
	fs.Int("engine.hash_threshold", def.Engine.HashThreshold, "Maximum Hamming distance for a visual match")
	fs.Int("engine.high_cutoff", def.Engine.HighCutoff, "Distance cutoff for High confidence")
	fs.Int("engine.medium_cutoff", def.Engine.MediumCutoff, "Distance cutoff for Medium confidence")
	fs.Float64("engine.entropy_threshold", def.Engine.EntropyThreshold, "Shannon entropy cutoff for random-looking domains")
	fs.Uint("engine.normalize_size", def.Engine.NormalizeSize, "Canonical square resolution images are normalized to before hashing")
	fs.String("server.addr", def.Server.Addr, "Server listen address")
	fs.Int("server.port", def.Server.Port, "Server listen port")
}

// Load merges defaults, the optional YAML config file, and flags into the
// manager's current configuration and validates the result.
func (m *Manager) Load(flags *pflag.FlagSet, configFilePath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.koanfInstance.Load(confmap.Provider(DefaultConfigAsMap(), "."), nil); err != nil {
		return fmt.Errorf("load defaults: %w", err)
	}

	if configFilePath != "" {
		if err := m.koanfInstance.Load(file.Provider(configFilePath), koanfyaml.Parser()); err != nil {
			return fmt.Errorf("load config file %s: %w", configFilePath, err)
		}
	}

	if flags != nil {
		if err := m.koanfInstance.Load(posflag.Provider(flags, ".", m.koanfInstance), nil); err != nil {
			return fmt.Errorf("load command-line flags: %w", err)
		}
	}

	var newCfg Config
	if err := m.koanfInstance.UnmarshalWithConf("", &newCfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return fmt.Errorf("unmarshal final config: %w", err)
	}
	if err := Validate(newCfg); err != nil {
		return err
	}
	m.currentConfig = newCfg
	return nil
}

// Config returns a copy of the current configuration.
func (m *Manager) Config() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentConfig
}

// Validate checks cross-field constraints on a configuration.
func Validate(cfg Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Package brand maps visual-fingerprint identifiers to the registered
// domains that legitimately own them, and arbitrates whether a visited URL
// is that owner or a deceptive lookalike.
package brand

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/idna"
	"gopkg.in/yaml.v3"
)

// OverrideFile is the optional YAML file, placed next to the reference
// screenshots, that overrides or extends the filename-derived brand map.
const OverrideFile = "brands.yaml"

// Map resolves a reference-screenshot identifier (its file name, e.g.
// "paypal.com.png") to the brand's official registered domain (the file
// stem, e.g. "paypal.com"). The stem-as-domain convention is the on-disk
// contract with the reference directory.
type Map map[string]string

// Load derives the brand map from the reference directory's file names and
// applies entries from brands.yaml when present.
func Load(dir string) (Map, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read reference directory %s: %w", dir, err)
	}

	m := Map{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || name == OverrideFile {
			continue
		}
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		if stem == "" {
			continue
		}
		m[name] = NormalizeDomain(stem)
	}

	overridePath := filepath.Join(dir, OverrideFile)
	data, err := os.ReadFile(overridePath)
	if os.IsNotExist(err) {
		return m, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", overridePath, err)
	}
	var overrides map[string]string
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parse %s: %w", overridePath, err)
	}
	for id, domain := range overrides {
		m[id] = NormalizeDomain(domain)
	}
	log.Debug().
		Str("component", "brand").
		Int("overrides", len(overrides)).
		Msg("Applied brand map overrides")

	return m, nil
}

// NormalizeDomain lower-cases a domain and converts internationalized names
// to their ASCII (punycode) form, falling back to the lower-cased input when
// the conversion fails.
func NormalizeDomain(domain string) string {
	lower := strings.ToLower(strings.TrimSpace(domain))
	ascii, err := idna.Lookup.ToASCII(lower)
	if err != nil {
		return lower
	}
	return ascii
}

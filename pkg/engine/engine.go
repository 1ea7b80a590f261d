// Package engine wires the URL feature extractor, fingerprint store and
// domain arbiter into the decision surface consumed by the CLI and the HTTP
// layer. External classifiers are collaborators behind interfaces; the
// engine never loads models itself.
package engine

import (
	"encoding/base64"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cast"

	"github.com/lurelight/lurelight/pkg/brand"
	"github.com/lurelight/lurelight/pkg/config"
	"github.com/lurelight/lurelight/pkg/urlfeat"
	"github.com/lurelight/lurelight/pkg/visual"
)

// Engine is the decision engine. Construct it with New; the fingerprint
// store is built lazily on first visual query, the brand map eagerly at
// construction.
type Engine struct {
	cfg      config.EngineConfig
	provider *visual.Provider
	arbiter  *brand.Arbiter

	text TextClassifier
	urls URLClassifier
}

// Option customizes engine construction.
type Option func(*Engine)

// WithTextClassifier attaches the external e-mail text classifier.
func WithTextClassifier(tc TextClassifier) Option {
	return func(e *Engine) { e.text = tc }
}

// WithURLClassifier attaches the external URL classifier.
func WithURLClassifier(uc URLClassifier) Option {
	return func(e *Engine) { e.urls = uc }
}

// New builds an engine from configuration. The brand map is derived from
// the reference directory once, at startup; it is read-only afterwards.
func New(cfg config.EngineConfig, opts ...Option) (*Engine, error) {
	brands, err := brand.Load(cfg.ScreenshotDir)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:      cfg,
		provider: visual.NewProvider(cfg.ScreenshotDir, cfg.NormalizeSize),
		arbiter: &brand.Arbiter{
			Brands:           brands,
			EntropyThreshold: cfg.EntropyThreshold,
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Warmup builds the fingerprint store eagerly so the first probe does not
// pay for it. A failed build is logged, not fatal: visual queries then
// degrade to no-match while the rest of the pipeline keeps working.
func (e *Engine) Warmup() {
	if _, err := e.provider.Store(); err != nil {
		log.Warn().Str("component", "engine").Err(err).Msg("Fingerprint store warm-up failed")
	}
}

func (e *Engine) matchConfig() visual.MatchConfig {
	return visual.MatchConfig{
		Threshold:    e.cfg.HashThreshold,
		HighCutoff:   e.cfg.HighCutoff,
		MediumCutoff: e.cfg.MediumCutoff,
	}
}

// ExtractURLFeatures returns the fixed 49-element feature vector for a URL,
// in the contractual column order. Deterministic and total.
func (e *Engine) ExtractURLFeatures(rawURL string) [urlfeat.NumFeatures]float64 {
	return urlfeat.Extract(rawURL).Values()
}

// FindVisualMatch decodes a base64-encoded screenshot and matches it
// against the fingerprint store. Undecodable input, a missing reference
// directory, or an empty store all yield a no-match result rather than an
// error: a failed probe must never read as a positive or a fault.
func (e *Engine) FindVisualMatch(imageBase64 string) visual.MatchResult {
	cfg := e.matchConfig()
	noMatch := visual.MatchResult{MatchFound: false, Distance: -1, Threshold: cfg.Threshold}

	data, err := decodeBase64Image(imageBase64)
	if err != nil {
		log.Warn().Str("component", "engine").Err(err).Msg("Probe image is not valid base64")
		return noMatch
	}

	store, err := e.provider.Store()
	if err != nil {
		log.Warn().Str("component", "engine").Err(err).Msg("Fingerprint store unavailable")
		return noMatch
	}

	res, err := store.MatchBytes(data, cfg)
	if err != nil {
		log.Warn().Str("component", "engine").Err(err).Msg("Probe image could not be decoded")
	}
	return res
}

// CheckURLLegitimacy arbitrates whether visitedURL legitimately owns the
// visual identity matchedID resolved to. Unparseable URLs and unknown
// identifiers surface as errors, not verdicts.
func (e *Engine) CheckURLLegitimacy(matchedID, visitedURL string) (brand.Verdict, error) {
	return e.arbiter.Arbitrate(matchedID, visitedURL)
}

func decodeBase64Image(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	// Tolerate data URLs from browser extensions: data:image/png;base64,...
	if strings.HasPrefix(s, "data:") {
		if _, rest, ok := strings.Cut(s, ","); ok {
			s = rest
		}
	}
	return base64.StdEncoding.DecodeString(s)
}

// suspicionSignals are the evidence keys the URL heuristics check sums.
var suspicionSignals = []string{
	"url.brand_hijack",
	"url.suspicious_tld",
	"url.has_ip_address",
	"url.shortening_service",
	"url.many_subdomains",
	"url.hacked_terms",
	"url.suspicious_extension",
}

func urlEvidence(v urlfeat.FeatureVector) map[string]interface{} {
	return map[string]interface{}{
		"url.brand_hijack":         v.BrandHijack,
		"url.suspicious_tld":       v.SuspiciousTLD,
		"url.has_ip_address":       v.HasIPAddress,
		"url.shortening_service":   v.ShorteningService,
		"url.many_subdomains":      v.ManySubdomains,
		"url.hacked_terms":         v.HackedTerms,
		"url.suspicious_extension": v.SuspiciousExtension,
		"url.urgency_words":        v.UrgencyWords,
		"url.security_words":       v.SecurityWords,
		"url.abnormal":             v.AbnormalURL,
	}
}

func suspicionScore(evidence map[string]interface{}) int {
	total := 0
	for _, key := range suspicionSignals {
		total += cast.ToInt(evidence[key])
	}
	return total
}

package visual

import (
	"image"

	"github.com/rs/zerolog/log"
)

// Confidence buckets a match distance for human-readable reporting.
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// MatchConfig holds the named distance thresholds the matcher applies.
// These are fixed configuration values, not learned.
type MatchConfig struct {
	// Threshold is the maximum Hamming distance still declared a visual match.
	Threshold int
	// HighCutoff and MediumCutoff bound the High and Medium confidence tiers.
	HighCutoff   int
	MediumCutoff int
}

// DefaultMatchConfig accepts matches up to 10 bits of the 64-bit hash.
// Distances past the High cutoff of 5 still match but only at Medium
// confidence, so a stricter deployment can cut at the tier instead of
// retuning the threshold.
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{Threshold: 10, HighCutoff: 5, MediumCutoff: 10}
}

// MatchResult is the outcome of matching one probe image against the store.
// When MatchFound is false (undecodable probe or empty store) the remaining
// fields carry no signal: Distance is -1 and Confidence is empty.
type MatchResult struct {
	MatchFound    bool       `json:"match_found"`
	IsVisualMatch bool       `json:"is_visual_match"`
	ClosestMatch  string     `json:"closest_match,omitempty"`
	Distance      int        `json:"distance"`
	Threshold     int        `json:"threshold"`
	Confidence    Confidence `json:"confidence,omitempty"`
}

func noMatch(cfg MatchConfig) MatchResult {
	return MatchResult{MatchFound: false, Distance: -1, Threshold: cfg.Threshold}
}

// Match scans the store linearly for the record nearest to img by Hamming
// distance. A distance of zero short-circuits the scan (bit-identical
// hashes). An empty store yields a no-match result, never a false positive.
func (s *Store) Match(img image.Image, cfg MatchConfig) MatchResult {
	if s.Len() == 0 {
		return noMatch(cfg)
	}

	probe, err := HashImage(img, s.normalizeSize)
	if err != nil {
		log.Warn().Str("component", "visual").Err(err).Msg("Failed to hash probe image")
		return noMatch(cfg)
	}

	best := -1
	bestID := ""
	for _, rec := range s.records {
		d, err := probe.Distance(rec.Hash)
		if err != nil {
			// Only possible on hash-width mismatch, which the shared
			// normalization rules out; skip defensively.
			log.Warn().Str("component", "visual").Str("id", rec.ID).Err(err).Msg("Hash comparison failed")
			continue
		}
		if best < 0 || d < best {
			best = d
			bestID = rec.ID
		}
		if d == 0 {
			break
		}
	}
	if best < 0 {
		return noMatch(cfg)
	}

	return MatchResult{
		MatchFound:    true,
		IsVisualMatch: best <= cfg.Threshold,
		ClosestMatch:  bestID,
		Distance:      best,
		Threshold:     cfg.Threshold,
		Confidence:    cfg.confidence(best),
	}
}

// MatchBytes decodes encoded image bytes and matches them against the
// store. Undecodable input is absorbed into a no-match result and the
// decode error is returned alongside it for callers that want to log it.
func (s *Store) MatchBytes(data []byte, cfg MatchConfig) (MatchResult, error) {
	img, err := DecodeImage(data)
	if err != nil {
		return noMatch(cfg), err
	}
	return s.Match(img, cfg), nil
}

func (cfg MatchConfig) confidence(distance int) Confidence {
	switch {
	case distance <= cfg.HighCutoff:
		return ConfidenceHigh
	case distance <= cfg.MediumCutoff:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

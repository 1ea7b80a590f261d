package brand

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/publicsuffix"
)

// Status is the outcome of a legitimacy arbitration.
type Status string

const (
	StatusSafe     Status = "SAFE"
	StatusPhishing Status = "PHISHING"
)

var (
	// ErrUnknownBrand means the matched identifier has no brand-map entry;
	// no verdict can be produced.
	ErrUnknownBrand = errors.New("matched identifier not in brand map")
	// ErrDomainParse means the visited URL has no extractable registrable
	// domain; this is a processing failure, not a phishing verdict.
	ErrDomainParse = errors.New("cannot extract registered domain")
)

// Verdict is the outcome of arbitrating one visual match against the URL
// actually visited.
type Verdict struct {
	Status Status `json:"status"`
	Reason string `json:"reason"`
}

// Arbiter decides whether the domain serving a matched visual identity is
// its legitimate owner. The zero value is unusable; populate Brands and
// EntropyThreshold (3.5 bits/char in the reference pipeline).
type Arbiter struct {
	Brands           Map
	EntropyThreshold float64
}

// Arbitrate resolves matchedID to its official registered domain and walks
// the decision tree: exact registered-domain equality is the only SAFE
// outcome. Any other visual match to a known brand is unauthorized
// impersonation; the reason distinguishes deceptive brand-string placement,
// algorithmically generated (high-entropy) domains, and close lookalikes
// from the generic case.
func (a *Arbiter) Arbitrate(matchedID, visitedURL string) (Verdict, error) {
	expected, ok := a.Brands[matchedID]
	if !ok {
		return Verdict{}, fmt.Errorf("%w: %q", ErrUnknownBrand, matchedID)
	}

	actual, err := RegisteredDomain(visitedURL)
	if err != nil {
		return Verdict{}, err
	}

	log.Debug().
		Str("component", "brand").
		Str("expected", expected).
		Str("visiting", actual).
		Msg("Arbitrating visual match")

	if actual == expected {
		return Verdict{Status: StatusSafe, Reason: "Visuals match the official domain."}, nil
	}

	// The brand's own domain string appearing anywhere else in the URL
	// (subdomain, path segment) is the classic deception shape, e.g.
	// paypal.com.secure-update.xyz. This also fires on benign mentions such
	// as article slugs; callers should treat the reason as heuristic.
	if strings.Contains(strings.ToLower(visitedURL), expected) {
		return Verdict{
			Status: StatusPhishing,
			Reason: fmt.Sprintf("Deceptive URL: %s found in subdomain of %s.", expected, actual),
		}, nil
	}

	if Entropy(actual) > a.EntropyThreshold {
		return Verdict{Status: StatusPhishing, Reason: "High entropy (random) domain detected."}, nil
	}

	if lookalike(actual, expected) {
		return Verdict{
			Status: StatusPhishing,
			Reason: fmt.Sprintf("Domain %s is a close lookalike of %s.", actual, expected),
		}, nil
	}

	return Verdict{Status: StatusPhishing, Reason: "Visual match found but domain is unauthorized."}, nil
}

// RegisteredDomain extracts the registrable (eTLD+1) domain of a URL. A
// missing scheme is tolerated; anything without a public-suffix-parsable
// host is ErrDomainParse.
func RegisteredDomain(rawURL string) (string, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty URL", ErrDomainParse)
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Hostname() == "" {
		return "", fmt.Errorf("%w: %q", ErrDomainParse, rawURL)
	}

	host := NormalizeDomain(parsed.Hostname())
	registered, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrDomainParse, rawURL, err)
	}
	return registered, nil
}

// Entropy computes the Shannon entropy (log base 2) of the character
// distribution of s, in bits per character. A single repeated character
// yields 0; the empty string is defined as 0.
func Entropy(s string) float64 {
	if len(s) == 0 {
		return 0
	}
	counts := map[rune]int{}
	total := 0
	for _, r := range s {
		counts[r]++
		total++
	}
	entropy := 0.0
	for _, c := range counts {
		p := float64(c) / float64(total)
		entropy -= p * math.Log2(p)
	}
	return entropy
}

// lookalike reports whether actual is within a length-scaled Levenshtein
// distance of expected: 1 edit for short names, 2 for medium, 15% of the
// length for long ones.
func lookalike(actual, expected string) bool {
	var thresh int
	switch l := len(expected); {
	case l <= 11:
		thresh = 1
	case l <= 15:
		thresh = 2
	default:
		thresh = int(math.Ceil(float64(len(expected)) * 0.15))
	}
	return fuzzy.LevenshteinDistance(actual, expected) <= thresh
}

// Package urlfeat extracts the fixed structural feature vector a URL
// classifier consumes. Extraction is a total function: malformed input
// degrades to the abnormal-URL flag, never to an error.
package urlfeat

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

// NumFeatures is the arity of the serialized feature vector. The downstream
// classifier was trained against exactly this many columns; any deviation is
// a silent dimension mismatch, not a recoverable error.
const NumFeatures = 49

var ipv4Pattern = regexp.MustCompile(`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}`)

// FeatureVector is the strongly typed feature record for one URL. It holds
// every computed feature, including a handful that the training pipeline
// computed but never serialized (EqualCount, PercentCount, DoubleSlashCount,
// LetterCount, BrandMentions); those are kept for parity and exposed to
// callers, but excluded from Values.
type FeatureVector struct {
	// Raw character-class counts over the full URL string.
	URLLen           int
	AtCount          int
	QuestionCount    int
	HyphenCount      int
	EqualCount       int // computed, not serialized
	DotCount         int
	HashCount        int
	PercentCount     int // computed, not serialized ("%" feeds EncodedChars instead)
	PlusCount        int
	DollarCount      int
	BangCount        int
	StarCount        int
	CommaCount       int
	DoubleSlashCount int // computed, not serialized
	DigitCount       int
	LetterCount      int // computed, not serialized

	// Structural flags.
	AbnormalURL       int
	HTTPS             int
	ShorteningService int
	HasIPAddress      int

	// Live-content placeholders. These require fetching and inspecting the
	// page, which this extractor never does; they are fixed zeros carried
	// only to keep the vector width stable for the trained classifier.
	WebExtRatio       int
	WebUniqueDomains  int
	WebFavicon        int
	WebCSP            int
	WebXFrame         int
	WebHSTS           int
	WebXContent       int
	WebSecurityScore  int
	WebFormsCount     int
	WebPasswordFields int
	WebHiddenInputs   int
	WebHasLogin       int
	WebSSLValid       int

	// Phishing indicators.
	UrgencyWords  int
	SecurityWords int
	BrandMentions int // computed, not serialized
	BrandHijack   int
	LongPath      int

	// Advanced brand signals.
	ExactBrandMatch   int
	BrandInSubdomain  int
	BrandInPath       int
	DomainHyphenCount int
	DomainDigitCount  int
	SuspiciousTLD     int
	LongDomain        int
	ManySubdomains    int
	EncodedChars      int
	PathKeywords      int
	HasRedirect       int
	ManyParams        int

	// Additional signals.
	HackedTerms         int
	SuspiciousExtension int
	PathUnderscoreCount int
	GovEduTLD           int
}

// Extract computes the feature vector for rawURL. It never fails: inputs
// without a scheme or host are flagged abnormal and every host- or
// path-derived feature degrades to its zero value.
func Extract(rawURL string) FeatureVector {
	var v FeatureVector

	v.URLLen = len(rawURL)
	v.AtCount = strings.Count(rawURL, "@")
	v.QuestionCount = strings.Count(rawURL, "?")
	v.HyphenCount = strings.Count(rawURL, "-")
	v.EqualCount = strings.Count(rawURL, "=")
	v.DotCount = strings.Count(rawURL, ".")
	v.HashCount = strings.Count(rawURL, "#")
	v.PercentCount = strings.Count(rawURL, "%")
	v.PlusCount = strings.Count(rawURL, "+")
	v.DollarCount = strings.Count(rawURL, "$")
	v.BangCount = strings.Count(rawURL, "!")
	v.StarCount = strings.Count(rawURL, "*")
	v.CommaCount = strings.Count(rawURL, ",")
	v.DoubleSlashCount = strings.Count(rawURL, "//")
	for _, r := range rawURL {
		switch {
		case unicode.IsDigit(r):
			v.DigitCount++
		case unicode.IsLetter(r):
			v.LetterCount++
		}
	}

	var scheme, host, path, query string
	if parsed, err := url.Parse(rawURL); err == nil {
		scheme = parsed.Scheme
		host = parsed.Host
		path = parsed.Path
		query = parsed.RawQuery
	}
	hostLower := strings.ToLower(host)
	pathLower := strings.ToLower(path)
	urlLower := strings.ToLower(rawURL)

	if scheme == "" || host == "" {
		v.AbnormalURL = 1
	}
	if scheme == "https" {
		v.HTTPS = 1
	}
	v.ShorteningService = boolFeature(containsAny(hostLower, shortenerDomains))
	v.HasIPAddress = boolFeature(ipv4Pattern.MatchString(host))

	v.UrgencyWords = countHits(urlLower, urgencyWords)
	v.SecurityWords = countHits(urlLower, securityWords)
	v.BrandMentions = countHits(urlLower, brandNames)

	// A brand mentioned anywhere in the URL while the host does not start
	// with that brand distinguishes lookalikes from the brand's own site.
	brandInURL := v.BrandMentions > 0
	brandIsDomain := false
	for _, b := range brandNames {
		if strings.HasPrefix(hostLower, b) {
			brandIsDomain = true
			break
		}
	}
	v.BrandHijack = boolFeature(brandInURL && !brandIsDomain)

	v.LongPath = boolFeature(len(path) > 75)

	for _, b := range brandNames {
		if hostLower == b {
			v.ExactBrandMatch = 1
			break
		}
	}
	firstLabel, _, _ := strings.Cut(hostLower, ".")
	for _, b := range brandNames {
		if strings.Contains(firstLabel, b) {
			v.BrandInSubdomain = 1
			break
		}
	}
	v.BrandInPath = boolFeature(containsAny(pathLower, brandNames))
	v.DomainHyphenCount = strings.Count(host, "-")
	for _, r := range host {
		if unicode.IsDigit(r) {
			v.DomainDigitCount++
		}
	}
	v.SuspiciousTLD = boolFeature(hasAnySuffix(hostLower, suspiciousTLDs))
	v.LongDomain = boolFeature(len(host) > 30)
	v.ManySubdomains = boolFeature(strings.Count(host, ".") > 3)
	v.EncodedChars = strings.Count(rawURL, "%")
	v.PathKeywords = countHits(pathLower, pathKeywords)
	v.HasRedirect = boolFeature(strings.Contains(path, "//"))
	v.ManyParams = boolFeature(strings.Count(query, "&") > 3)

	v.HackedTerms = boolFeature(containsAny(pathLower, hackedTerms))
	v.SuspiciousExtension = boolFeature(hasAnySuffix(pathLower, suspiciousExtensions))
	v.PathUnderscoreCount = strings.Count(path, "_")
	v.GovEduTLD = boolFeature(strings.HasSuffix(hostLower, ".gov") || strings.HasSuffix(hostLower, ".edu"))

	return v
}

func boolFeature(b bool) int {
	if b {
		return 1
	}
	return 0
}

// countHits counts how many vocabulary entries occur in s (one hit per
// entry, regardless of how often it repeats).
func countHits(s string, vocab []string) int {
	n := 0
	for _, w := range vocab {
		if strings.Contains(s, w) {
			n++
		}
	}
	return n
}

func containsAny(s string, vocab []string) bool {
	for _, w := range vocab {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}

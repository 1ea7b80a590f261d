package engine

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/lurelight/lurelight/pkg/brand"
	"github.com/lurelight/lurelight/pkg/urlfeat"
	"github.com/lurelight/lurelight/pkg/visual"
)

// ReportStatus is the combined outcome of an analysis run.
type ReportStatus string

const (
	ReportSafe       ReportStatus = "SAFE"
	ReportSuspicious ReportStatus = "SUSPICIOUS"
	ReportPhishing   ReportStatus = "PHISHING"
)

// Score ratios that bound the combined status when no arbiter verdict is
// available to decide it outright.
const (
	safeRatio     = 0.8
	phishingRatio = 0.5
)

// AnalyzeInput carries the signals for one analysis run. URL is required;
// ImageBase64 and EmailText are optional and simply skip their checks when
// empty.
type AnalyzeInput struct {
	URL         string `json:"url"`
	ImageBase64 string `json:"image_base64,omitempty"`
	EmailText   string `json:"email_text,omitempty"`
}

// CheckResult records one evaluated check. Skipped checks (absent signal or
// collaborator) do not appear in the report at all.
type CheckResult struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Impact int    `json:"impact"`
	Detail string `json:"detail,omitempty"`
}

// Report is the combined analysis outcome.
type Report struct {
	Status      ReportStatus                 `json:"status"`
	Score       int                          `json:"score"`
	MaxScore    int                          `json:"max_score"`
	Checks      []CheckResult                `json:"checks"`
	Visual      visual.MatchResult           `json:"visual"`
	Legitimacy  *brand.Verdict               `json:"legitimacy,omitempty"`
	URLFeatures [urlfeat.NumFeatures]float64 `json:"url_features"`
	Evidence    map[string]interface{}       `json:"evidence,omitempty"`
}

// Analyze runs the full pipeline: URL heuristics always, visual matching
// when a screenshot is supplied, domain arbitration when the screenshot
// matches a known brand, and the external classifiers when attached. An
// arbiter error (unknown brand, unparseable URL) aborts the run: a verdict
// built on it would be meaningless.
func (e *Engine) Analyze(ctx context.Context, in AnalyzeInput) (Report, error) {
	features := urlfeat.Extract(in.URL)

	report := Report{
		URLFeatures: features.Values(),
		Evidence:    urlEvidence(features),
		MaxScore:    MaxScore(),
	}

	report.Visual = visual.MatchResult{MatchFound: false, Distance: -1, Threshold: e.cfg.HashThreshold}
	if in.ImageBase64 != "" {
		report.Visual = e.FindVisualMatch(in.ImageBase64)
	}

	if report.Visual.IsVisualMatch {
		verdict, err := e.CheckURLLegitimacy(report.Visual.ClosestMatch, in.URL)
		if err != nil {
			return Report{}, fmt.Errorf("arbitrating %q against %q: %w", in.URL, report.Visual.ClosestMatch, err)
		}
		report.Legitimacy = &verdict
	}

	earned := 0
	achievable := 0
	addCheck := func(name string, passed bool, detail string) {
		check := checkByName(name)
		achievable += check.Impact
		if passed {
			earned += check.Impact
		}
		report.Checks = append(report.Checks, CheckResult{
			Name:   check.Name,
			Passed: passed,
			Impact: check.Impact,
			Detail: detail,
		})
	}

	impersonation := report.Visual.IsVisualMatch && (report.Legitimacy == nil || report.Legitimacy.Status != brand.StatusSafe)
	addCheck(CheckNoVisualImpersonation, !impersonation, visualDetail(report.Visual))

	authorized := report.Legitimacy == nil || report.Legitimacy.Status == brand.StatusSafe
	addCheck(CheckDomainAuthorized, authorized, legitimacyDetail(report.Legitimacy))

	suspicion := suspicionScore(report.Evidence)
	addCheck(CheckURLHeuristicsClean, suspicion == 0, fmt.Sprintf("%d suspicious signals", suspicion))

	if e.text != nil && in.EmailText != "" {
		label, err := e.text.ClassifyText(ctx, in.EmailText)
		if err != nil {
			log.Warn().Str("component", "engine").Err(err).Msg("Text classifier unavailable, skipping check")
		} else {
			report.Evidence["text.label"] = label.LabelName
			report.Evidence["text.confidence"] = label.Confidence
			addCheck(CheckTextClassifierClean, label.Label == 0, label.LabelName)
		}
	}

	if e.urls != nil {
		label, err := e.urls.ClassifyURL(ctx, report.URLFeatures)
		if err != nil {
			log.Warn().Str("component", "engine").Err(err).Msg("URL classifier unavailable, skipping check")
		} else {
			report.Evidence["url.label"] = label.LabelName
			report.Evidence["url.confidence"] = label.Confidence
			addCheck(CheckURLClassifierClean, label.Label == 0, label.LabelName)
		}
	}

	report.Score = earned
	report.Status = combinedStatus(report.Legitimacy, earned, achievable)
	return report, nil
}

// combinedStatus prefers the arbiter verdict when one exists; otherwise the
// score ratio over the checks that actually ran decides.
func combinedStatus(verdict *brand.Verdict, earned, achievable int) ReportStatus {
	if verdict != nil {
		if verdict.Status == brand.StatusSafe {
			return ReportSafe
		}
		return ReportPhishing
	}
	if achievable == 0 {
		return ReportSuspicious
	}
	ratio := float64(earned) / float64(achievable)
	switch {
	case ratio >= safeRatio:
		return ReportSafe
	case ratio < phishingRatio:
		return ReportPhishing
	default:
		return ReportSuspicious
	}
}

func visualDetail(m visual.MatchResult) string {
	if !m.MatchFound {
		return "no reference within threshold"
	}
	return fmt.Sprintf("closest %s at distance %d", m.ClosestMatch, m.Distance)
}

func legitimacyDetail(v *brand.Verdict) string {
	if v == nil {
		return "no visual match to arbitrate"
	}
	return v.Reason
}

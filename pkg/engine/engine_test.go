package engine

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lurelight/lurelight/pkg/brand"
	"github.com/lurelight/lurelight/pkg/config"
)

func gradientPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 96, 96))
	for y := 0; y < 96; y++ {
		for x := 0; x < 96; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 2), G: uint8(y * 2), B: 64, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestEngine(t *testing.T, opts ...Option) (*Engine, []byte) {
	t.Helper()
	dir := t.TempDir()
	ref := gradientPNG(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "paypal.com.png"), ref, 0o644))

	cfg := config.DefaultConfig().Engine
	cfg.ScreenshotDir = dir
	e, err := New(cfg, opts...)
	require.NoError(t, err)
	return e, ref
}

func TestNewMissingDirectory(t *testing.T) {
	cfg := config.DefaultConfig().Engine
	cfg.ScreenshotDir = filepath.Join(t.TempDir(), "absent")
	_, err := New(cfg)
	require.Error(t, err)
}

func TestFindVisualMatch(t *testing.T) {
	e, ref := newTestEngine(t)
	encoded := base64.StdEncoding.EncodeToString(ref)

	res := e.FindVisualMatch(encoded)
	require.True(t, res.MatchFound)
	require.True(t, res.IsVisualMatch)
	require.Equal(t, "paypal.com.png", res.ClosestMatch)
	require.Equal(t, 0, res.Distance)

	// ClosestMatch is the reference file name, which the brand map accepts
	// as-is: the matcher output feeds arbitration without translation.
	verdict, err := e.CheckURLLegitimacy(res.ClosestMatch, "https://paypal.com/signin")
	require.NoError(t, err)
	require.Equal(t, brand.StatusSafe, verdict.Status)

	dataURL := "data:image/png;base64," + encoded
	require.Equal(t, res, e.FindVisualMatch(dataURL))
}

func TestFindVisualMatchBadInput(t *testing.T) {
	e, _ := newTestEngine(t)

	for _, probe := range []string{"not&&base64", base64.StdEncoding.EncodeToString([]byte("not an image"))} {
		res := e.FindVisualMatch(probe)
		require.False(t, res.MatchFound)
		require.False(t, res.IsVisualMatch)
		require.Equal(t, -1, res.Distance)
	}
}

func TestAnalyzeURLOnlyClean(t *testing.T) {
	e, _ := newTestEngine(t)

	report, err := e.Analyze(context.Background(), AnalyzeInput{URL: "https://example.com/about"})
	require.NoError(t, err)
	require.Equal(t, ReportSafe, report.Status)
	require.Equal(t, 80, report.Score)
	require.Equal(t, MaxScore(), report.MaxScore)
	require.Len(t, report.Checks, 3)
	require.False(t, report.Visual.MatchFound)
	require.Nil(t, report.Legitimacy)
}

func TestAnalyzeURLOnlySuspicious(t *testing.T) {
	e, _ := newTestEngine(t)

	report, err := e.Analyze(context.Background(), AnalyzeInput{URL: "http://bit.ly/secure-login"})
	require.NoError(t, err)
	require.Equal(t, ReportSuspicious, report.Status)
	require.Equal(t, 60, report.Score)

	var heuristics CheckResult
	for _, c := range report.Checks {
		if c.Name == CheckURLHeuristicsClean {
			heuristics = c
		}
	}
	require.False(t, heuristics.Passed)
}

func TestAnalyzeVisualMatchAuthorized(t *testing.T) {
	e, ref := newTestEngine(t)

	report, err := e.Analyze(context.Background(), AnalyzeInput{
		URL:         "https://www.paypal.com/signin",
		ImageBase64: base64.StdEncoding.EncodeToString(ref),
	})
	require.NoError(t, err)
	require.Equal(t, ReportSafe, report.Status)
	require.NotNil(t, report.Legitimacy)
	require.Equal(t, brand.StatusSafe, report.Legitimacy.Status)
	// The hijack heuristic flags www.paypal.com (host does not start with
	// the brand), so only the visual and arbitration checks pass.
	require.Equal(t, 60, report.Score)
}

func TestAnalyzeVisualMatchUnauthorized(t *testing.T) {
	e, ref := newTestEngine(t)

	report, err := e.Analyze(context.Background(), AnalyzeInput{
		URL:         "https://example.com/login",
		ImageBase64: base64.StdEncoding.EncodeToString(ref),
	})
	require.NoError(t, err)
	require.Equal(t, ReportPhishing, report.Status)
	require.NotNil(t, report.Legitimacy)
	require.Equal(t, brand.StatusPhishing, report.Legitimacy.Status)

	for _, c := range report.Checks {
		if c.Name == CheckNoVisualImpersonation || c.Name == CheckDomainAuthorized {
			require.False(t, c.Passed, c.Name)
		}
	}
}

func TestAnalyzeArbiterErrorAborts(t *testing.T) {
	e, ref := newTestEngine(t)

	_, err := e.Analyze(context.Background(), AnalyzeInput{
		URL:         "http://localhost/x",
		ImageBase64: base64.StdEncoding.EncodeToString(ref),
	})
	require.ErrorIs(t, err, brand.ErrDomainParse)
}

type stubTextClassifier struct {
	label Label
	err   error
}

func (s stubTextClassifier) ClassifyText(context.Context, string) (Label, error) {
	return s.label, s.err
}

type stubURLClassifier struct {
	label Label
	err   error
}

func (s stubURLClassifier) ClassifyURL(context.Context, [49]float64) (Label, error) {
	return s.label, s.err
}

func TestAnalyzeWithClassifiers(t *testing.T) {
	e, _ := newTestEngine(t,
		WithTextClassifier(stubTextClassifier{label: Label{Label: 1, LabelName: "phishing", Confidence: 0.97}}),
		WithURLClassifier(stubURLClassifier{label: Label{Label: 0, LabelName: "benign", Confidence: 0.88}}),
	)

	report, err := e.Analyze(context.Background(), AnalyzeInput{
		URL:       "https://example.com/",
		EmailText: "Your account will be suspended, verify now.",
	})
	require.NoError(t, err)
	require.Len(t, report.Checks, 5)
	require.Equal(t, "phishing", report.Evidence["text.label"])
	require.Equal(t, "benign", report.Evidence["url.label"])

	byName := map[string]CheckResult{}
	for _, c := range report.Checks {
		byName[c.Name] = c
	}
	require.False(t, byName[CheckTextClassifierClean].Passed)
	require.True(t, byName[CheckURLClassifierClean].Passed)
	require.Equal(t, 90, report.Score)
	require.Equal(t, ReportSafe, report.Status)
}

func TestAnalyzeClassifierErrorSkipsCheck(t *testing.T) {
	e, _ := newTestEngine(t,
		WithTextClassifier(stubTextClassifier{err: errors.New("model server down")}),
	)

	report, err := e.Analyze(context.Background(), AnalyzeInput{
		URL:       "https://example.com/",
		EmailText: "hello",
	})
	require.NoError(t, err)
	require.Len(t, report.Checks, 3)
	require.NotContains(t, report.Evidence, "text.label")
}

func TestScoreNeverExceedsMaxScore(t *testing.T) {
	e, ref := newTestEngine(t,
		WithTextClassifier(stubTextClassifier{label: Label{Label: 0, LabelName: "legitimate", Confidence: 0.9}}),
		WithURLClassifier(stubURLClassifier{label: Label{Label: 0, LabelName: "benign", Confidence: 0.9}}),
	)

	inputs := []AnalyzeInput{
		{URL: "https://paypal.com/"},
		{URL: "https://paypal.com/", ImageBase64: base64.StdEncoding.EncodeToString(ref), EmailText: "invoice attached"},
		{URL: "http://185.12.8.1/paypal/login.php?cmd=verify"},
	}
	for _, in := range inputs {
		report, err := e.Analyze(context.Background(), in)
		require.NoError(t, err)
		require.LessOrEqual(t, report.Score, report.MaxScore)
		require.Equal(t, MaxScore(), report.MaxScore)
	}
}

func TestCombinedStatusRatios(t *testing.T) {
	safe := brand.Verdict{Status: brand.StatusSafe}
	phish := brand.Verdict{Status: brand.StatusPhishing}

	require.Equal(t, ReportSafe, combinedStatus(&safe, 0, 100))
	require.Equal(t, ReportPhishing, combinedStatus(&phish, 100, 100))
	require.Equal(t, ReportSafe, combinedStatus(nil, 80, 100))
	require.Equal(t, ReportSuspicious, combinedStatus(nil, 60, 100))
	require.Equal(t, ReportPhishing, combinedStatus(nil, 40, 100))
	require.Equal(t, ReportSuspicious, combinedStatus(nil, 0, 0))
}

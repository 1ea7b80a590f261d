package brand

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func testArbiter() *Arbiter {
	return &Arbiter{
		Brands: Map{
			"paypal.com.png": "paypal.com",
			"github.com.png": "github.com",
		},
		EntropyThreshold: 3.5,
	}
}

func TestArbitrateExactDomainIsSafe(t *testing.T) {
	v, err := testArbiter().Arbitrate("paypal.com.png", "https://paypal.com/login")
	require.NoError(t, err)
	require.Equal(t, StatusSafe, v.Status)
	require.Equal(t, "Visuals match the official domain.", v.Reason)
}

func TestArbitrateSubdomainOfOfficialDomainIsNotSafe(t *testing.T) {
	// www.paypal.com still registers as paypal.com: SAFE.
	v, err := testArbiter().Arbitrate("paypal.com.png", "https://www.paypal.com/login")
	require.NoError(t, err)
	require.Equal(t, StatusSafe, v.Status)
}

func TestArbitrateDeceptiveSubdomain(t *testing.T) {
	v, err := testArbiter().Arbitrate("paypal.com.png", "https://paypal.com.secure-update.xyz/login")
	require.NoError(t, err)
	require.Equal(t, StatusPhishing, v.Status)
	require.Contains(t, v.Reason, "Deceptive URL")
	require.Contains(t, v.Reason, "paypal.com")
	require.Contains(t, v.Reason, "secure-update.xyz")
}

func TestArbitrateDeceptivePathSegment(t *testing.T) {
	v, err := testArbiter().Arbitrate("paypal.com.png", "https://evil-updates.example/paypal.com/login")
	require.NoError(t, err)
	require.Equal(t, StatusPhishing, v.Status)
	require.Contains(t, v.Reason, "Deceptive URL")
}

func TestArbitrateHighEntropyDomain(t *testing.T) {
	v, err := testArbiter().Arbitrate("paypal.com.png", "https://x7qz9f2k1d8w.tk/login")
	require.NoError(t, err)
	require.Equal(t, StatusPhishing, v.Status)
	require.Equal(t, "High entropy (random) domain detected.", v.Reason)
}

func TestArbitrateLookalikeDomain(t *testing.T) {
	v, err := testArbiter().Arbitrate("paypal.com.png", "https://paypa1.com/login")
	require.NoError(t, err)
	require.Equal(t, StatusPhishing, v.Status)
	require.Contains(t, v.Reason, "lookalike")
}

func TestArbitrateDefaultDeny(t *testing.T) {
	// No deception marker, low entropy, not a lookalike: still PHISHING.
	// A visual match served off the brand's exact registered domain has no
	// residual SAFE fallback.
	v, err := testArbiter().Arbitrate("paypal.com.png", "https://example.com/review")
	require.NoError(t, err)
	require.Equal(t, StatusPhishing, v.Status)
	require.Equal(t, "Visual match found but domain is unauthorized.", v.Reason)
}

func TestArbitrateUnknownBrand(t *testing.T) {
	_, err := testArbiter().Arbitrate("unknown.png", "https://example.com")
	require.ErrorIs(t, err, ErrUnknownBrand)
}

func TestArbitrateUnparseableURL(t *testing.T) {
	for _, raw := range []string{"", "   ", "http://localhost/x"} {
		_, err := testArbiter().Arbitrate("paypal.com.png", raw)
		require.ErrorIs(t, err, ErrDomainParse, "input %q", raw)
	}
}

func TestRegisteredDomain(t *testing.T) {
	got, err := RegisteredDomain("https://www.example.co.uk/path?q=1")
	require.NoError(t, err)
	require.Equal(t, "example.co.uk", got)

	// Scheme-less input is tolerated.
	got, err = RegisteredDomain("paypal.com/login")
	require.NoError(t, err)
	require.Equal(t, "paypal.com", got)

	got, err = RegisteredDomain("https://deep.sub.paypal.com")
	require.NoError(t, err)
	require.Equal(t, "paypal.com", got)
}

func TestEntropy(t *testing.T) {
	require.Zero(t, Entropy(""))
	require.Zero(t, Entropy("aaaa"))
	require.InDelta(t, 2.0, Entropy("abcd"), 1e-9)
	// Uniform distribution over n characters is log2(n).
	require.InDelta(t, math.Log2(8), Entropy("abcdefgh"), 1e-9)
	require.Greater(t, Entropy("x7qz9f2k1d8w.tk"), 3.5)
}

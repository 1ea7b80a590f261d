package brand

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadDerivesDomainsFromFilenames(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "paypal.com.png", "fake image")
	writeFile(t, dir, "github.com.jpg", "fake image")
	writeFile(t, dir, ".DS_Store", "junk")

	m, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, Map{
		"paypal.com.png": "paypal.com",
		"github.com.jpg": "github.com",
	}, m)
}

func TestLoadAppliesOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "paypal.com.png", "fake image")
	writeFile(t, dir, "legacy-shot.png", "fake image")
	writeFile(t, dir, OverrideFile, "legacy-shot.png: amazon.com\n")

	m, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, "paypal.com", m["paypal.com.png"])
	require.Equal(t, "amazon.com", m["legacy-shot.png"])
	_, hasOverrideFile := m[OverrideFile]
	require.False(t, hasOverrideFile)
}

func TestLoadMissingDir(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestNormalizeDomain(t *testing.T) {
	require.Equal(t, "paypal.com", NormalizeDomain("PayPal.COM"))
	require.Equal(t, "xn--mnchen-3ya.de", NormalizeDomain("münchen.de"))
	require.Equal(t, "example.com", NormalizeDomain("  example.com "))
}

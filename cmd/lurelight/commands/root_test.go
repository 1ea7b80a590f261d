package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestFeaturesCommandJSON(t *testing.T) {
	out, err := runCommand(t, "features", "https://example.com/login", "--json")
	require.NoError(t, err)

	var got map[string]float64
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 49)
	require.Contains(t, got, "url_len")
	require.Contains(t, got, "https")
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	require.Contains(t, out, "Lurelight")
}

func TestCheckCommandJSON(t *testing.T) {
	dir := t.TempDir()
	out, err := runCommand(t,
		"--engine.screenshot_dir", dir,
		"check", "https://example.com/about", "--json",
	)
	require.NoError(t, err)

	var report struct {
		Status string `json:"status"`
		Score  int    `json:"score"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Equal(t, "SAFE", report.Status)
}

func TestCheckCommandRequiresURL(t *testing.T) {
	_, err := runCommand(t, "check")
	require.Error(t, err)
}

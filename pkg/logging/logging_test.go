package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	require.Equal(t, zerolog.DebugLevel, parseLogLevel("debug"))
	require.Equal(t, zerolog.WarnLevel, parseLogLevel("WARN"))
	require.Equal(t, zerolog.InfoLevel, parseLogLevel(""))
	require.Equal(t, zerolog.InfoLevel, parseLogLevel("chatty"))
}

func TestConfigureGlobalLogging_Level(t *testing.T) {
	var buf bytes.Buffer
	SetLogWriter(&buf)
	t.Cleanup(func() { SetLogWriter(nil) })

	require.NoError(t, ConfigureGlobalLogging("warn", "text"))

	log.Info().Msg("should be filtered")
	log.Warn().Msg("should appear")

	out := buf.String()
	require.NotContains(t, out, "should be filtered")
	require.True(t, strings.Contains(out, "should appear"))
}

package commands

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveOutputDir(t *testing.T) {
	tests := []struct {
		name       string
		cliOutput  string
		configured string
		want       string
	}{
		{"explicit flag wins", "./public", "./dist-from-config", "./public"},
		{"default flag defers to config", "./dist", "./dist-from-config", "./dist-from-config"},
		{"default flag, no config", "./dist", "", "./dist"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ResolveOutputDir(tt.cliOutput, tt.configured))
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, parseLogLevel(true))

	t.Setenv("BLOGSMITH_LOG_LEVEL", "warn")
	require.Equal(t, slog.LevelWarn, parseLogLevel(false))
	// Verbose flag beats the environment.
	require.Equal(t, slog.LevelDebug, parseLogLevel(true))

	t.Setenv("BLOGSMITH_LOG_LEVEL", "error")
	require.Equal(t, slog.LevelError, parseLogLevel(false))

	t.Setenv("BLOGSMITH_LOG_LEVEL", "bogus")
	require.Equal(t, slog.LevelInfo, parseLogLevel(false))
}

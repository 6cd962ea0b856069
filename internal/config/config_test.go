package config

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, 1024, cfg.WSBufferSize)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.LogPretty)
	assert.Empty(t, cfg.LogFile)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CHECKERS_ADDR", ":8080")
	t.Setenv("CHECKERS_ALLOWED_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("CHECKERS_LOG_PRETTY", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.True(t, cfg.LogPretty)
}

func TestLoadErrors(t *testing.T) {
	t.Setenv("CHECKERS_WS_BUFFER_SIZE", "not-an-int")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")

	t.Setenv("CHECKERS_WS_BUFFER_SIZE", "0")
	_, err = Load()
	require.Error(t, err)
}

func TestSetupLogging(t *testing.T) {
	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})

	var buf bytes.Buffer
	require.NoError(t, SetupLogging(Config{LogLevel: "warn"}, &buf))

	log.Info().Msg("hidden")
	log.Warn().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"message":"shown"`)

	require.Error(t, SetupLogging(Config{LogLevel: "loud"}, &buf))
}

func TestOpenLogFile(t *testing.T) {
	w, closeFn, err := OpenLogFile(Config{})
	require.NoError(t, err)
	assert.Equal(t, io.Discard, w)
	require.NoError(t, closeFn())

	path := filepath.Join(t.TempDir(), "checkers.log")
	w, closeFn, err = OpenLogFile(Config{LogFile: path})
	require.NoError(t, err)
	_, err = w.Write([]byte("line\n"))
	require.NoError(t, err)
	require.NoError(t, closeFn())
	assert.FileExists(t, path)
}

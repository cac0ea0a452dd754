package logging_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Rrens/content-creator-bot/internal/config"
	"github.com/Rrens/content-creator-bot/internal/logging"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_ConsoleOnly(t *testing.T) {
	closer, err := logging.Setup(config.LoggingConfig{Level: "debug"}, false)
	require.NoError(t, err)
	defer closer.Close()

	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestSetup_InvalidLevelFallsBackToInfo(t *testing.T) {
	closer, err := logging.Setup(config.LoggingConfig{Level: "loud"}, true)
	require.NoError(t, err)
	defer closer.Close()

	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestSetup_FileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")

	closer, err := logging.Setup(config.LoggingConfig{Level: "info", Format: "json", File: path}, true)
	require.NoError(t, err)

	log.Info().Str("component", "test").Msg("hello file")
	require.NoError(t, closer.Close())

	matches, err := filepath.Glob(path + ".*")
	require.NoError(t, err)
	require.NotEmpty(t, matches)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello file")
}

package cmd

import (
	"bluebgg/internal/config"
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "bluebgg dev (commit none")
}

func TestRootFailsWithoutToken(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")
	rootCmd.SetArgs([]string{})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()

	assert.ErrorContains(t, err, "DISCORD_TOKEN is not set")
}

func TestSetupLoggingJson(t *testing.T) {
	previousLogger, previousLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = previousLogger
		zerolog.SetGlobalLevel(previousLevel)
	})
	out := &bytes.Buffer{}

	setupLoggingTo(out, config.Log{Level: zerolog.WarnLevel, Format: config.LOG_FORMAT_JSON})
	log.Info().Msg("hidden")
	log.Warn().Str("command", "top10").Msg("shown")

	var line map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "shown", line["message"])
	assert.Equal(t, "top10", line["command"])
	assert.Contains(t, line, "time")
}

func TestSetupLoggingConsole(t *testing.T) {
	previousLogger, previousLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = previousLogger
		zerolog.SetGlobalLevel(previousLevel)
	})
	out := &bytes.Buffer{}

	setupLoggingTo(out, config.Log{Level: zerolog.DebugLevel, Format: config.LOG_FORMAT_CONSOLE})
	log.Debug().Msg("Executing command help")

	assert.Contains(t, out.String(), "Executing command help")
	assert.Contains(t, out.String(), "DBG")
}

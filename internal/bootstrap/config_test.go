package bootstrap

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	t.Run("Reads an env file", func(t *testing.T) {
		// Given: a config file with a few overrides
		path := filepath.Join(t.TempDir(), ".env")
		content := "SERVER_PORT=:9000\nBOARD_SIZE=9\nLOCAL_CORS=true\nSTATE_TTL=30m\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// When: loading it
		cfg, err := Setup(path)

		// Then: the overrides are applied on top of the defaults
		require.NoError(t, err)
		assert.Equal(t, ":9000", cfg.ServerPort)
		assert.Equal(t, 9, cfg.BoardSize)
		assert.True(t, cfg.IsLocalCors)
		assert.Equal(t, 30*time.Minute, cfg.StateTTL)
		assert.Equal(t, "goban", cfg.MongoDatabase)
	})

	t.Run("Falls back to defaults without a file", func(t *testing.T) {
		cfg, err := Setup(filepath.Join(t.TempDir(), "missing.env"))

		require.NoError(t, err)
		assert.Equal(t, 19, cfg.BoardSize)
		assert.Equal(t, 24*time.Hour, cfg.StateTTL)
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		t.Setenv("BOARD_SIZE", "13")

		cfg, err := Setup(filepath.Join(t.TempDir(), "missing.env"))

		require.NoError(t, err)
		assert.Equal(t, 13, cfg.BoardSize)
	})

	t.Run("Rejects an unusable board size", func(t *testing.T) {
		t.Setenv("BOARD_SIZE", "40")

		_, err := Setup(filepath.Join(t.TempDir(), "missing.env"))

		assert.Error(t, err)
	})
}

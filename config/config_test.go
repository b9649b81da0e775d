package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, k := range []string{"TRAPMOUSE_ADDR", "TRAPMOUSE_HTTP_ADDR", "LOG_LEVEL", "LOG_FORMAT", "TRAPMOUSE_RECORDS_DIR", "TRAPMOUSE_POLL_INTERVAL"} {
			t.Setenv(k, "")
		}

		cfg, err := Load()

		require.NoError(t, err)
		require.Equal(t, Config{
			Addr:         "127.0.0.1:8080",
			LogLevel:     "info",
			LogFormat:    "json",
			PollInterval: 10 * time.Millisecond,
		}, cfg)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("TRAPMOUSE_ADDR", ":9000")
		t.Setenv("TRAPMOUSE_HTTP_ADDR", ":9001")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("TRAPMOUSE_RECORDS_DIR", "/tmp/records")
		t.Setenv("TRAPMOUSE_POLL_INTERVAL", "250ms")

		cfg, err := Load()

		require.NoError(t, err)
		require.Equal(t, ":9000", cfg.Addr)
		require.Equal(t, ":9001", cfg.HTTPAddr)
		require.Equal(t, "debug", cfg.LogLevel)
		require.Equal(t, "/tmp/records", cfg.RecordsDir)
		require.Equal(t, 250*time.Millisecond, cfg.PollInterval)
	})

	t.Run("bad interval keeps the default", func(t *testing.T) {
		t.Setenv("TRAPMOUSE_POLL_INTERVAL", "soon")

		cfg, err := Load()

		require.Error(t, err)
		require.Equal(t, 10*time.Millisecond, cfg.PollInterval)
	})

	t.Run("dotenv file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TRAPMOUSE_ADDR=10.0.0.1:7000\n"), 0644))
		wd, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(dir))
		t.Cleanup(func() { _ = os.Chdir(wd) })
		t.Setenv("TRAPMOUSE_ADDR", "")
		os.Unsetenv("TRAPMOUSE_ADDR")

		cfg, err := Load()

		require.NoError(t, err)
		require.Equal(t, "10.0.0.1:7000", cfg.Addr)
	})
}

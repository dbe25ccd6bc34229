package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := "log-level: debug\nhttp-port: \"9999\"\npostgres:\n  dsn: \"host=localhost\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	conf, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "debug", conf.LogLevel)
	require.Equal(t, "9999", conf.HTTPPort)
	require.Equal(t, "host=localhost", conf.Postgres.DSN)
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	conf, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	require.Equal(t, "info", conf.LogLevel)
	require.Equal(t, "8080", conf.HTTPPort)
	require.Empty(t, conf.Postgres.DSN)
}

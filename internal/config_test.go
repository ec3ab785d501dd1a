package internal

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pccopy/internal/profile"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, profile.DefaultShareName, config.Share.Name)
	assert.Equal(t, profile.DefaultShareRoot, config.Share.Root)
	assert.Equal(t, "info", config.Log.Level)
	assert.Empty(t, config.Log.Path)

	assert.Equal(t, `\\PC1\itadmin$`, config.Resolver().ShareRoot("PC1"))
}

func TestLoadConfig(t *testing.T) {
	t.Run("partial file keeps defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("[share]\nname = \"c$\"\n"), 0o644))

		config, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "c$", config.Share.Name)
		assert.Equal(t, profile.DefaultShareRoot, config.Share.Root)
		assert.Equal(t, "info", config.Log.Level)
	})

	t.Run("invalid toml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("[share\n"), 0o644))

		_, err := LoadConfig(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestResolveConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	config, source, err := ResolveConfig("")
	require.NoError(t, err)
	assert.Equal(t, "defaults", source)
	assert.Equal(t, profile.DefaultShareName, config.Share.Name)

	path, err := ConfigPath()
	require.NoError(t, err)
	require.NoError(t, WriteDefaultConfig(path, false))

	_, source, err = ResolveConfig("")
	require.NoError(t, err)
	assert.Equal(t, path, source)

	_, _, err = ResolveConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	require.NoError(t, WriteDefaultConfig(path, false))

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, exampleConf, written)
	_, err = os.Stat(path + ".tmp")
	assert.ErrorIs(t, err, os.ErrNotExist)

	err = WriteDefaultConfig(path, false)
	assert.ErrorIs(t, err, ErrConfigExists)

	require.NoError(t, os.WriteFile(path, []byte("junk"), 0o644))
	require.NoError(t, WriteDefaultConfig(path, true))
	written, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, exampleConf, written)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "warn")
	require.NoError(t, err)
	assert.Equal(t, log.WarnLevel, logger.GetLevel())

	logger.Info("hidden")
	logger.Warn("shown", "run", "abc")
	assert.NotContains(t, buf.String(), "hidden")
	assert.True(t, strings.Contains(buf.String(), "shown"))

	_, err = NewLogger(&buf, "loud")
	assert.Error(t, err)
}

func TestLogFilePath(t *testing.T) {
	assert.Equal(t, "/var/log/x.log", LogFilePath(LogConfig{Path: "/var/log/x.log"}))

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SUDO_USER", "")
	assert.Equal(t, filepath.Join(home, ".cache", "pccopy", "pccopy.log"), LogFilePath(LogConfig{}))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "999", FormatNumber(999))
	assert.Equal(t, "1,234", FormatNumber(1234))
	assert.Equal(t, "1,234,567", FormatNumber(1234567))
}

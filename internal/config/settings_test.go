package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHome_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ARBOR_HOME", dir)

	assert.Equal(t, dir, Home())
}

func TestHome_DefaultsToUserHome(t *testing.T) {
	t.Setenv("ARBOR_HOME", "")
	os.Unsetenv("ARBOR_HOME")

	home := Home()
	assert.Contains(t, home, ".arbor")
}

func TestGetDBPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ARBOR_HOME", dir)

	assert.Equal(t, filepath.Join(dir, "arbor.db"), GetDBPath())
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	t.Setenv("ARBOR_HOME", t.TempDir())

	settings, err := Load()

	require.NoError(t, err)
	assert.Nil(t, settings.Debug)
	assert.Empty(t, settings.Listen)
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("ARBOR_HOME", t.TempDir())

	debug := true
	maxLogFiles := 50
	settings := &Settings{
		Listen:      ":9000",
		Debug:       &debug,
		MaxLogFiles: &maxLogFiles,
	}
	require.NoError(t, settings.Save())

	loaded, err := Load()

	require.NoError(t, err)
	assert.Equal(t, ":9000", loaded.Listen)
	require.NotNil(t, loaded.Debug)
	assert.True(t, *loaded.Debug)
	require.NotNil(t, loaded.MaxLogFiles)
	assert.Equal(t, 50, *loaded.MaxLogFiles)
}

func TestLoad_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ARBOR_HOME", dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.json"), []byte("{not json"), 0644))

	_, err := Load()

	assert.Error(t, err)
}

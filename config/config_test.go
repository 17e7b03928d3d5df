package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskhubDefaultSanity(t *testing.T) {
	assert := assert.New(t)
	config := NewTaskhub("test-version")

	assert.NotEmpty(config.DataDir)
	assert.NotEmpty(config.DatabaseConnString)
	assert.NotEmpty(config.ApiListen)
	assert.NotEmpty(config.Hostname)
	assert.Greater(config.SetupTimeout.Nanoseconds(), int64(0))
	assert.Equal("test-version", config.AppVersion)
}

func TestTaskhubSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "taskhub.json")

	config := NewTaskhub("test-version")
	config.SetDataDir(dir)
	config.ApiListen = ":4010"
	config.LoggingConfig.ApiEndpointLogging = true
	require.NoError(t, config.Save(filename))

	loaded := NewTaskhub("test-version")
	require.NoError(t, loaded.Load(filename))

	assert.Equal(t, config.ApiListen, loaded.ApiListen)
	assert.Equal(t, config.DatabaseConnString, loaded.DatabaseConnString)
	assert.True(t, loaded.LoggingConfig.ApiEndpointLogging)
}

func TestTaskhubLoadMissingFile(t *testing.T) {
	config := NewTaskhub("test-version")
	err := config.Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorIs(t, err, ErrNotInitialized)
}

package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger(t *testing.T) {
	oldWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(oldWD) })

	logger, err := InitLogger("test")
	require.NoError(t, err)
	require.NotNil(t, logger)

	logger.Debug("debug goes to the file core only")
	logger.Info("info reaches both cores")
	logger.Sync()

	// One env-prefixed log file appears under logs/
	entries, err := os.ReadDir("logs")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "test_allocator_")

	// The file core sits at Debug, so both lines land in it
	data, err := os.ReadFile(filepath.Join("logs", entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), "debug goes to the file core only")
	assert.Contains(t, string(data), "info reaches both cores")
}

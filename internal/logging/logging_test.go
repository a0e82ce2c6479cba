package logging

import (
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overlaymap.log")
	c, err := Setup(path, "debug")
	require.NoError(t, err)
	defer log.SetOutput(os.Stderr)

	log.WithField("layer", "shelter").Debug("layer enabled")
	require.NoError(t, c.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "layer=shelter")
	assert.Equal(t, log.DebugLevel, log.GetLevel())
}

func TestSetupBadLevelFallsBack(t *testing.T) {
	c, err := Setup("", "chatty")
	require.NoError(t, err)
	defer log.SetOutput(os.Stderr)
	assert.NoError(t, c.Close())
	assert.Equal(t, log.InfoLevel, log.GetLevel())
}

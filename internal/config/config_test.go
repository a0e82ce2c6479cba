package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"overlaymap/internal/overlay"
)

func TestDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 12.0, cfg.Locate.Zoom)
	assert.Len(t, cfg.Overlays, 4)
	assert.NoError(t, cfg.Validate())
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overlaymap.yaml")
	doc := `
data_dir: data
locate:
  zoom: 14
  timeout: 2s
  fixed: [5.32, 60.39]
overlays:
  - id: tilfluktsrom
    kind: shelter
    title: Tilfluktsrom
    source: tilfluktsrom.csv
    enabled: true
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, 14.0, cfg.Locate.Zoom)
	assert.Equal(t, 2*time.Second, cfg.Locate.Timeout)
	require.NotNil(t, cfg.Locate.Fixed)
	assert.Equal(t, [2]float64{5.32, 60.39}, *cfg.Locate.Fixed)
	require.Len(t, cfg.Overlays, 1)
	assert.Equal(t, overlay.KindShelter, cfg.Overlays[0].Kind)
	assert.True(t, cfg.Overlays[0].Enabled)
	// untouched defaults survive
	assert.Equal(t, "overlaymap.log", cfg.Log.File)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Overlays = append(cfg.Overlays, cfg.Overlays[0])
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Overlays[1].Source = ""
	assert.Error(t, cfg.Validate())
}

func TestApplyEnv(t *testing.T) {
	dir := t.TempDir()
	env := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(env, []byte("OVERLAYMAP_DATA_DIR=/srv/geo\n"), 0o644))
	t.Setenv("OVERLAYMAP_LOCATION", "59.91, 10.75")
	// registers restore of the original value, then leaves it unset for godotenv
	t.Setenv("OVERLAYMAP_DATA_DIR", "")
	require.NoError(t, os.Unsetenv("OVERLAYMAP_DATA_DIR"))

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(env))
	assert.Equal(t, "/srv/geo", cfg.DataDir)
	require.NotNil(t, cfg.Locate.Fixed)
	assert.Equal(t, [2]float64{10.75, 59.91}, *cfg.Locate.Fixed)

	cfg = Default()
	assert.NoError(t, cfg.ApplyEnv(filepath.Join(dir, "missing.env")))
}

func TestParseLatLon(t *testing.T) {
	p, err := ParseLatLon("60.39,5.32")
	require.NoError(t, err)
	assert.Equal(t, [2]float64{5.32, 60.39}, p)

	for _, bad := range []string{"", "60", "a,b", "91,0", "0,181"} {
		_, err := ParseLatLon(bad)
		assert.Error(t, err, bad)
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://rest.uniprot.org/uniprotkb", cfg.API.UniProtBaseURL)
	assert.Equal(t, "https://www.ebi.ac.uk/proteins/api", cfg.API.ProteinsBaseURL)
	assert.Equal(t, 25*time.Second, cfg.API.Timeout)
	assert.Equal(t, 15, cfg.Tracks.Window)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, ":8085", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Logging.Level)

	require.NoError(t, cfg.Validate())
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "varviz3d.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  timeout: 5s
tracks:
  window: 25
cache:
  enabled: true
  path: /tmp/varviz-test.db
logging:
  level: debug
  format: console
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, 25, cfg.Tracks.Window)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "debug", cfg.Logging.Level)
	require.NoError(t, cfg.Validate())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	cfg := base()
	cfg.Tracks.Window = 0
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.API.Timeout = 0
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Cache.Enabled = true
	cfg.Cache.Path = ""
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Logging.Level = "verbose"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

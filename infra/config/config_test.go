package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/drakos74/free-glyph/internal/model"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, model.DefaultLabels().Strings(), cfg.Labels)
	assert.Equal(t, ".jpg", cfg.Extension)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.Equal(t, 10*time.Second, cfg.DecodeTimeout)
	assert.False(t, cfg.Storage.Enabled)
	assert.Equal(t, "", cfg.Metrics.File)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel())

	labels, err := cfg.LabelSet()
	require.NoError(t, err)
	assert.Equal(t, 4, labels.Len())
}

func TestLoad_File(t *testing.T) {
	file := filepath.Join(t.TempDir(), "glyph.yaml")
	content := `
labels: [dark, light]
extension: .png
workers: 2
decode_timeout: 250ms
log:
  level: debug
storage:
  enabled: true
  dir: /tmp/glyph
`
	require.NoError(t, os.WriteFile(file, []byte(content), 0644))

	cfg, err := Load(viper.New(), file)
	require.NoError(t, err)
	assert.Equal(t, []string{"dark", "light"}, cfg.Labels)
	assert.Equal(t, ".png", cfg.Extension)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 250*time.Millisecond, cfg.DecodeTimeout)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel())
	assert.True(t, cfg.Storage.Enabled)
	assert.Equal(t, "/tmp/glyph", cfg.Storage.Dir)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("FREE_GLYPH_WORKERS", "3")
	t.Setenv("FREE_GLYPH_METRICS_FILE", "/tmp/glyph.prom")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, "/tmp/glyph.prom", cfg.Metrics.File)
}

func TestLoad_Invalid(t *testing.T) {

	tests := map[string]string{
		"workers": "workers: 0\n",
		"timeout": "decode_timeout: -1s\n",
		"labels":  "labels: [a, a]\n",
		"level":   "log:\n  level: loud\n",
		"no-ext":  "extension: \"\"\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			file := filepath.Join(t.TempDir(), "glyph.yaml")
			require.NoError(t, os.WriteFile(file, []byte(content), 0644))
			_, err := Load(viper.New(), file)
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

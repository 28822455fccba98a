package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	m.Increment("train", "digitos", Loaded)
	m.Increment("train", "digitos", Loaded)
	m.Increment("train", "letras", Skipped)
	m.Observe("train", 3*time.Millisecond)
	m.Score("NaiveBayes", "precision", 0.75)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.prometheus.Images.WithLabelValues("train", "digitos", Loaded)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.prometheus.Images.WithLabelValues("train", "letras", Skipped)))
	assert.Equal(t, 0.75, testutil.ToFloat64(m.prometheus.Score.WithLabelValues("NaiveBayes", "precision")))

	path := filepath.Join(t.TempDir(), "glyph.prom")
	require.NoError(t, m.WriteTo(path))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(b)
	assert.True(t, strings.Contains(out, "glyph_images_total"))
	assert.True(t, strings.Contains(out, "glyph_extraction_seconds"))
	assert.True(t, strings.Contains(out, `glyph_score{classifier="NaiveBayes",metric="precision"} 0.75`))
}

func TestMetrics_WriteToMissingDir(t *testing.T) {
	m := NewMetrics()
	err := m.WriteTo(filepath.Join(t.TempDir(), "missing", "glyph.prom"))
	assert.Error(t, err)
}

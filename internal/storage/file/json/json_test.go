package json

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/drakos74/free-glyph/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name   string    `json:"name"`
	Scores []float64 `json:"scores"`
}

func TestBlobStorage(t *testing.T) {
	dir := t.TempDir()
	store := NewJsonBlob(storage.ReportDir, "NaiveBayes", false).In(dir)

	k := storage.Key{
		Run:        "run-1",
		Classifier: "NaiveBayes",
		Label:      "report",
	}

	var missing payload
	err := store.Load(k, &missing)
	assert.ErrorIs(t, err, storage.NotFoundErr)

	err = store.Store(k, payload{Name: "test", Scores: []float64{0.5, 1}})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, storage.ReportDir, "NaiveBayes", "NaiveBayes_run-1_report.json"))
	require.NoError(t, err)

	var loaded payload
	err = store.Load(k, &loaded)
	require.NoError(t, err)
	assert.Equal(t, payload{Name: "test", Scores: []float64{0.5, 1}}, loaded)
}

func TestLoad_Corrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{"), 0644))
	var p payload
	err := Load(dir, "bad", &p)
	assert.ErrorIs(t, err, storage.CouldNotLoadErr)
}

func TestSave_NotADirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	err := Save(file, "value", payload{})
	assert.Error(t, err)
}

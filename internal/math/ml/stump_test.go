package ml

import (
	"math"
	"testing"

	"github.com/drakos74/free-glyph/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecisionStump_Split(t *testing.T) {
	labels := model.DefaultLabels()

	values := func(v float64) model.Features {
		f := make([]float64, model.HistWidth)
		f[10] = v
		f[20] = 1
		return model.NewFeatures(f)
	}

	ds := model.NewDataset("stump",
		model.Sample{Name: "a", Label: model.Letters, Features: values(1)},
		model.Sample{Name: "b", Label: model.Letters, Features: values(2)},
		model.Sample{Name: "c", Label: model.NoChars, Features: values(5)},
		model.Sample{Name: "d", Label: model.NoChars, Features: values(7)},
	)

	stump := NewDecisionStump(labels)
	require.NoError(t, stump.Train(ds))

	feature, threshold := stump.Split()
	assert.Equal(t, 10, feature)
	assert.Equal(t, 3.5, threshold)

	label, confidence, err := stump.Predict(values(3))
	require.NoError(t, err)
	assert.Equal(t, model.Letters, label)
	assert.Equal(t, []float64{0, 1, 0, 0}, confidence)

	label, _, err = stump.Predict(values(4))
	require.NoError(t, err)
	assert.Equal(t, model.NoChars, label)
}

func TestEntropy(t *testing.T) {
	assert.InDelta(t, 0.0, entropy([]float64{0, 0}), 1e-12)
	assert.InDelta(t, 0.0, entropy([]float64{4, 0}), 1e-12)
	assert.InDelta(t, math.Ln2, entropy([]float64{2, 2}), 1e-9)
}

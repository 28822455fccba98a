package ml

import (
	"testing"

	"github.com/drakos74/free-glyph/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNearestNeighbour_Tie(t *testing.T) {
	labels := model.DefaultLabels()

	point := func(v float64) model.Features {
		f := make([]float64, model.HistWidth)
		f[0] = v
		return model.NewFeatures(f)
	}

	type test struct {
		samples []model.Sample
		label   model.Label
	}

	tests := map[string]test{
		"dark-first": {
			samples: []model.Sample{
				{Name: "a", Label: model.Digits, Features: point(0)},
				{Name: "b", Label: model.NoChars, Features: point(2)},
			},
			label: model.Digits,
		},
		"light-first": {
			samples: []model.Sample{
				{Name: "b", Label: model.NoChars, Features: point(2)},
				{Name: "a", Label: model.Digits, Features: point(0)},
			},
			label: model.NoChars,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			nn := NewNearestNeighbour(labels)
			require.NoError(t, nn.Train(model.NewDataset(name, tt.samples...)))
			for i := 0; i < 100; i++ {
				label, confidence, err := nn.Predict(point(1))
				require.NoError(t, err)
				assert.Equal(t, tt.label, label)
				assert.Equal(t, 1.0, confidence[labels.Index(tt.label)])
			}

			label, _, err := nn.Predict(point(1.9))
			require.NoError(t, err)
			assert.Equal(t, model.NoChars, label)
		})
	}
}

func TestNearestNeighbour_Dimensions(t *testing.T) {
	nn := NewNearestNeighbour(model.DefaultLabels())
	require.NoError(t, nn.Train(trainingSet(2)))
	_, _, err := nn.Predict(model.NewFeatures([]float64{1, 2}))
	assert.Error(t, err)
}

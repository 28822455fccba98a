package evaluation

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/drakos74/free-glyph/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lookup predicts the label whose index is stored in the first feature.
type lookup struct {
	labels model.Labels
	fixed  model.Label
	err    error
}

func (l lookup) Predict(features model.Features) (model.Label, []float64, error) {
	if l.err != nil {
		return model.NoLabel, nil, l.err
	}
	confidence := make([]float64, l.labels.Len())
	if l.fixed != model.NoLabel {
		confidence[l.labels.Index(l.fixed)] = 1
		return l.fixed, confidence, nil
	}
	idx := int(features.At(0))
	confidence[idx] = 1
	return l.labels.At(idx), confidence, nil
}

func (l lookup) String() string {
	return "lookup"
}

// dataset creates samples whose first feature points to the given predicted label.
func dataset(labels model.Labels, pairs ...[2]model.Label) model.Dataset {
	samples := make([]model.Sample, len(pairs))
	for i, p := range pairs {
		values := make([]float64, model.HistWidth)
		values[0] = float64(labels.Index(p[1]))
		samples[i] = model.Sample{
			Name:     fmt.Sprintf("img_%d.jpg", i),
			Label:    p[0],
			Features: model.NewFeatures(values),
		}
	}
	return model.NewDataset("test", samples...)
}

func TestEvaluate(t *testing.T) {
	labels := model.DefaultLabels()

	type test struct {
		predictor Predictor
		ds        model.Dataset
		precision float64
		recall    float64
		fMeasure  float64
		accuracy  float64
		recalls   map[model.Label]float64
	}

	tests := map[string]test{
		"perfect": {
			predictor: lookup{labels: labels},
			ds: dataset(labels,
				[2]model.Label{model.Digits, model.Digits},
				[2]model.Label{model.Letters, model.Letters},
				[2]model.Label{model.NoChars, model.NoChars},
				[2]model.Label{model.NoChars, model.NoChars},
			),
			precision: 1,
			recall:    1,
			fMeasure:  1,
			accuracy:  1,
			recalls: map[model.Label]float64{
				model.Digits:        1,
				model.Letters:       1,
				model.DigitsLetters: 0,
				model.NoChars:       1,
			},
		},
		"single-wrong-class": {
			predictor: lookup{labels: labels, fixed: model.DigitsLetters},
			ds: dataset(labels,
				[2]model.Label{model.Digits, model.Digits},
				[2]model.Label{model.Letters, model.Letters},
				[2]model.Label{model.NoChars, model.NoChars},
			),
			recalls: map[model.Label]float64{
				model.Digits:        0,
				model.Letters:       0,
				model.DigitsLetters: 0,
				model.NoChars:       0,
			},
		},
		"mixed": {
			// digitos: tp=1 fn=1 fp=0, sem_caracteres: tp=2 fn=0 fp=1
			predictor: lookup{labels: labels},
			ds: dataset(labels,
				[2]model.Label{model.Digits, model.Digits},
				[2]model.Label{model.Digits, model.NoChars},
				[2]model.Label{model.NoChars, model.NoChars},
				[2]model.Label{model.NoChars, model.NoChars},
			),
			precision: 0.5*1 + 0.5*(2.0/3.0),
			recall:    0.5*0.5 + 0.5*1,
			fMeasure:  0.5*(2.0/3.0) + 0.5*0.8,
			accuracy:  0.75,
			recalls: map[model.Label]float64{
				model.Digits:  0.5,
				model.NoChars: 1,
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			report, err := Evaluate(tt.predictor, labels, tt.ds)
			require.NoError(t, err)
			assert.NotEmpty(t, report.ID)
			assert.Equal(t, "lookup", report.Classifier)
			assert.Equal(t, tt.ds.Len(), len(report.Predictions))
			for i, p := range report.Predictions {
				assert.Equal(t, i, p.Index)
				assert.Equal(t, tt.ds.Samples[i].Name, p.Name)
				assert.Equal(t, tt.ds.Samples[i].Label, p.Actual)
			}
			assert.InDelta(t, tt.precision, report.Precision, 1e-9)
			assert.InDelta(t, tt.recall, report.Recall, 1e-9)
			assert.InDelta(t, tt.fMeasure, report.FMeasure, 1e-9)
			assert.InDelta(t, tt.accuracy, report.Accuracy, 1e-9)
			assert.Equal(t, labels.Len(), len(report.Classes))
			for _, c := range report.Classes {
				if recall, ok := tt.recalls[c.Label]; ok {
					assert.InDelta(t, recall, c.Recall, 1e-9, string(c.Label))
				}
			}
		})
	}
}

func TestEvaluate_Error(t *testing.T) {
	labels := model.DefaultLabels()
	errPredict := errors.New("broken")
	ds := dataset(labels, [2]model.Label{model.Digits, model.Digits})

	_, err := Evaluate(lookup{labels: labels, err: errPredict}, labels, ds)
	assert.ErrorIs(t, err, errPredict)
}

func TestScore_Empty(t *testing.T) {
	report := Score(model.DefaultLabels(), nil)
	assert.Equal(t, 0.0, report.Precision)
	assert.Equal(t, 0.0, report.Recall)
	assert.Equal(t, 0.0, report.FMeasure)
	assert.Equal(t, 0.0, report.Accuracy)
	assert.Equal(t, "", report.Summary())
}

func TestTally(t *testing.T) {
	cm := Tally([]Prediction{
		{Actual: model.Digits, Predicted: model.Digits},
		{Actual: model.Digits, Predicted: model.Letters},
		{Actual: model.Letters, Predicted: model.Letters},
	})
	assert.Equal(t, 1, cm[string(model.Digits)][string(model.Digits)])
	assert.Equal(t, 1, cm[string(model.Digits)][string(model.Letters)])
	assert.Equal(t, 1, cm[string(model.Letters)][string(model.Letters)])
	assert.Equal(t, 0, cm[string(model.Letters)][string(model.Digits)])
}

func TestReport_Write(t *testing.T) {
	labels := model.DefaultLabels()
	report, err := Evaluate(lookup{labels: labels}, labels, dataset(labels,
		[2]model.Label{model.Digits, model.Digits},
		[2]model.Label{model.NoChars, model.Digits},
	))
	require.NoError(t, err)

	var verbose bytes.Buffer
	require.NoError(t, report.WriteVerbose(&verbose))
	assert.Equal(t, "img_0.jpg: digitos\nimg_1.jpg: digitos\n", verbose.String())

	var metrics bytes.Buffer
	require.NoError(t, report.WriteMetrics(&metrics))
	// digitos: p=0.5 r=1 f=0.67, sem_caracteres: all 0, equal support
	assert.Equal(t, "precision: 0.25\nrecall: 0.50\nf-measure: 0.33\n", metrics.String())
	assert.NotEmpty(t, report.Summary())
}

package ml

import (
	"fmt"
	"math"

	"github.com/drakos74/free-glyph/internal/model"
	"github.com/rs/zerolog/log"
	"github.com/sjwhitworth/golearn/metrics/pairwise"
	"gonum.org/v1/gonum/mat"
)

// NearestNeighbour assigns the label of the closest training exemplar.
// Exemplars at the same distance resolve to the one that comes first in the training set.
type NearestNeighbour struct {
	labels    model.Labels
	distance  *pairwise.Euclidean
	exemplars []*mat.Dense
	classes   []model.Label
}

// NewNearestNeighbour creates a new 1-nearest-neighbour classifier on euclidean distance.
func NewNearestNeighbour(labels model.Labels) *NearestNeighbour {
	return &NearestNeighbour{
		labels:   labels,
		distance: pairwise.NewEuclidean(),
	}
}

func (nn *NearestNeighbour) Train(ds model.Dataset) error {
	if err := validate(nn.labels, ds); err != nil {
		return err
	}
	dim := ds.Samples[0].Features.Len()
	exemplars := make([]*mat.Dense, ds.Len())
	classes := make([]model.Label, ds.Len())
	for i, s := range ds.Samples {
		if s.Features.Len() != dim {
			return fmt.Errorf("sample '%s' has %d features instead of %d: %w", s.Name, s.Features.Len(), dim, ErrTraining)
		}
		exemplars[i] = mat.NewDense(1, dim, s.Features.Values())
		classes[i] = s.Label
	}
	nn.exemplars = exemplars
	nn.classes = classes
	log.Debug().
		Str("dataset", ds.Name).
		Int("exemplars", len(exemplars)).
		Msg("trained nearest neighbour")
	return nil
}

func (nn *NearestNeighbour) Predict(features model.Features) (model.Label, []float64, error) {
	if len(nn.exemplars) == 0 {
		return model.NoLabel, nil, ErrNotTrained
	}
	_, dim := nn.exemplars[0].Dims()
	if features.Len() != dim {
		return model.NoLabel, nil, fmt.Errorf("expected %d features but got %d", dim, features.Len())
	}
	x := mat.NewDense(1, dim, features.Values())

	best := -1
	closest := math.Inf(1)
	for i, e := range nn.exemplars {
		if d := nn.distance.Distance(x, e); d < closest {
			closest = d
			best = i
		}
	}
	if best < 0 {
		return model.NoLabel, nil, fmt.Errorf("no exemplar within reach")
	}
	label := nn.classes[best]
	confidence, err := oneHot(nn.labels, label)
	if err != nil {
		return model.NoLabel, nil, err
	}
	return label, confidence, nil
}

func (nn *NearestNeighbour) String() string {
	return NNgeKey
}

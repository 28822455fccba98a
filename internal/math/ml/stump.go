package ml

import (
	"fmt"
	"sort"

	"github.com/drakos74/free-glyph/internal/model"
	"gonum.org/v1/gonum/stat"
)

// DecisionStump is a one level decision tree.
// It splits on the single feature threshold with the highest information gain.
type DecisionStump struct {
	labels    model.Labels
	feature   int
	threshold float64
	left      []float64
	right     []float64
	trained   bool
}

// NewDecisionStump creates a new decision stump.
func NewDecisionStump(labels model.Labels) *DecisionStump {
	return &DecisionStump{
		labels: labels,
	}
}

type point struct {
	value float64
	class int
}

func (ds *DecisionStump) Train(dataset model.Dataset) error {
	if err := validate(ds.labels, dataset); err != nil {
		return err
	}
	dim := dataset.Samples[0].Features.Len()
	y := indexes(ds.labels, dataset)
	k := ds.labels.Len()

	parent := make([]float64, k)
	for _, c := range y {
		parent[c]++
	}
	parentEntropy := entropy(parent)

	bestGain := 0.0
	found := false
	var best struct {
		feature     int
		threshold   float64
		left, right []float64
	}

	points := make([]point, len(y))
	for f := 0; f < dim; f++ {
		for i, s := range dataset.Samples {
			if s.Features.Len() != dim {
				return fmt.Errorf("sample '%s' has %d features instead of %d: %w", s.Name, s.Features.Len(), dim, ErrTraining)
			}
			points[i] = point{value: s.Features.At(f), class: y[i]}
		}
		sort.SliceStable(points, func(i, j int) bool {
			return points[i].value < points[j].value
		})

		left := make([]float64, k)
		right := make([]float64, k)
		copy(right, parent)
		n := float64(len(points))
		for i := 0; i < len(points)-1; i++ {
			left[points[i].class]++
			right[points[i].class]--
			if points[i].value == points[i+1].value {
				continue
			}
			nl := float64(i + 1)
			gain := parentEntropy - (nl/n)*entropy(left) - ((n-nl)/n)*entropy(right)
			if gain > bestGain+1e-12 {
				bestGain = gain
				found = true
				best.feature = f
				best.threshold = (points[i].value + points[i+1].value) / 2
				best.left = append([]float64{}, left...)
				best.right = append([]float64{}, right...)
			}
		}
	}

	if !found {
		// no feature separates anything, both sides answer with the overall distribution
		ds.feature = 0
		ds.threshold = 0
		ds.left = normalise(append([]float64{}, parent...))
		ds.right = normalise(append([]float64{}, parent...))
	} else {
		ds.feature = best.feature
		ds.threshold = best.threshold
		ds.left = normalise(best.left)
		ds.right = normalise(best.right)
	}
	ds.trained = true
	return nil
}

func (ds *DecisionStump) Predict(features model.Features) (model.Label, []float64, error) {
	if !ds.trained {
		return model.NoLabel, nil, ErrNotTrained
	}
	if ds.feature >= features.Len() {
		return model.NoLabel, nil, fmt.Errorf("split feature %d out of range for %d features", ds.feature, features.Len())
	}
	dist := ds.right
	if features.At(ds.feature) <= ds.threshold {
		dist = ds.left
	}
	confidence := append([]float64{}, dist...)
	return decide(ds.labels, confidence), confidence, nil
}

// Split returns the feature index and threshold the stump decides on.
func (ds *DecisionStump) Split() (int, float64) {
	return ds.feature, ds.threshold
}

func (ds *DecisionStump) String() string {
	return DecisionStumpKey
}

func entropy(counts []float64) float64 {
	p := normalise(append([]float64{}, counts...))
	return stat.Entropy(p)
}

package ml

import (
	"errors"
	"fmt"

	"github.com/drakos74/free-glyph/internal/model"
	"gonum.org/v1/gonum/floats"
)

var (
	// ErrTraining signals that a classifier could not be trained on the given dataset.
	ErrTraining = errors.New("could not train classifier")
	// ErrNotTrained signals a prediction on a classifier that has not been trained.
	ErrNotTrained = errors.New("classifier not trained")
)

// Classifier learns to assign labels to feature vectors.
// Predict must be deterministic for a trained classifier.
type Classifier interface {
	// Train fits the classifier to the dataset.
	Train(ds model.Dataset) error
	// Predict returns the most likely label, and the confidence for every label in label order.
	Predict(features model.Features) (model.Label, []float64, error)
	String() string
}

// validate checks the dataset preconditions shared by all classifiers.
func validate(labels model.Labels, ds model.Dataset) error {
	if ds.Empty() {
		return fmt.Errorf("dataset '%s' has no samples: %w", ds.Name, ErrTraining)
	}
	distinct := ds.Distinct()
	for _, l := range distinct {
		if !labels.Contains(l) {
			return fmt.Errorf("dataset '%s' has unknown label '%s': %w", ds.Name, l, ErrTraining)
		}
	}
	if len(distinct) < 2 {
		return fmt.Errorf("dataset '%s' has %d distinct labels, need at least 2: %w", ds.Name, len(distinct), ErrTraining)
	}
	return nil
}

// indexes returns the label index of every sample.
func indexes(labels model.Labels, ds model.Dataset) []int {
	y := make([]int, ds.Len())
	for i, s := range ds.Samples {
		y[i] = labels.Index(s.Label)
	}
	return y
}

// decide picks the label with the highest confidence.
// Ties resolve to the label that comes first.
func decide(labels model.Labels, confidence []float64) model.Label {
	return labels.At(floats.MaxIdx(confidence))
}

// normalise scales the values so that they sum up to 1.
func normalise(values []float64) []float64 {
	sum := floats.Sum(values)
	if sum > 0 {
		floats.Scale(1/sum, values)
	}
	return values
}

// pad brings the vector to the given length.
func pad(values []float64, n int) []float64 {
	if len(values) >= n {
		return values[:n]
	}
	padded := make([]float64, n)
	copy(padded, values)
	return padded
}

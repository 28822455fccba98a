package ml

import (
	"errors"
	"fmt"
	"sort"

	"github.com/drakos74/free-glyph/internal/model"
)

// ErrUnknownClassifier signals a classifier name that is not part of the registry.
var ErrUnknownClassifier = errors.New("not found")

const (
	NaiveBayesKey           = "NaiveBayes"
	DecisionStumpKey        = "DecisionStump"
	MultilayerPerceptronKey = "MultilayerPerceptron"
	NNgeKey                 = "NNge"
	ClusteringKey           = "ClassificationViaClustering"
	RandomForestKey         = "RandomForest"
	DiscreteForestKey       = "DiscreteRandomForest"
)

// Factory creates an untrained classifier.
type Factory func(labels model.Labels, seed int64) Classifier

var registry = map[string]Factory{
	NaiveBayesKey: func(labels model.Labels, seed int64) Classifier {
		return NewNaiveBayes(labels)
	},
	DecisionStumpKey: func(labels model.Labels, seed int64) Classifier {
		return NewDecisionStump(labels)
	},
	MultilayerPerceptronKey: func(labels model.Labels, seed int64) Classifier {
		return NewPerceptron(labels, seed)
	},
	NNgeKey: func(labels model.Labels, seed int64) Classifier {
		return NewNearestNeighbour(labels)
	},
	ClusteringKey: func(labels model.Labels, seed int64) Classifier {
		return NewClustering(labels, seed)
	},
	RandomForestKey: func(labels model.Labels, seed int64) Classifier {
		return NewForest(labels, seed)
	},
	DiscreteForestKey: func(labels model.Labels, seed int64) Classifier {
		return NewDiscreteForest(labels, seed)
	},
}

// Names returns the names of all registered classifiers, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// New creates the classifier registered under the given name.
func New(name string, labels model.Labels, seed int64) (Classifier, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("classifier %s %w", name, ErrUnknownClassifier)
	}
	return factory(labels, seed), nil
}

package ml

import (
	"math/rand"

	"github.com/drakos74/free-glyph/internal/model"
	"github.com/rs/zerolog/log"

	randomforest "github.com/malaschitz/randomForest"
)

const forestTrees = 100

// RandomForest is an ensemble of randomised decision trees voting on the label.
type RandomForest struct {
	labels model.Labels
	seed   int64
	trees  int
	forest *randomforest.Forest
}

// NewForest creates a new random forest classifier.
func NewForest(labels model.Labels, seed int64) *RandomForest {
	return &RandomForest{
		labels: labels,
		seed:   seed,
		trees:  forestTrees,
	}
}

func (rf *RandomForest) Train(ds model.Dataset) error {
	if err := validate(rf.labels, ds); err != nil {
		return err
	}
	rand.Seed(rf.seed)

	forest := &randomforest.Forest{}
	forest.Data = randomforest.ForestData{X: ds.X(), Class: indexes(rf.labels, ds)}
	forest.Train(rf.trees)
	rf.forest = forest
	log.Debug().
		Str("dataset", ds.Name).
		Int("trees", rf.trees).
		Int("samples", ds.Len()).
		Msg("trained random forest")
	return nil
}

func (rf *RandomForest) Predict(features model.Features) (model.Label, []float64, error) {
	if rf.forest == nil {
		return model.NoLabel, nil, ErrNotTrained
	}
	votes := rf.forest.Vote(features.Values())
	confidence := normalise(pad(append([]float64{}, votes...), rf.labels.Len()))
	return decide(rf.labels, confidence), confidence, nil
}

func (rf *RandomForest) String() string {
	return RandomForestKey
}

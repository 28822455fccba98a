package ml

import (
	"fmt"
	"io"
	"math"
	"math/rand"

	"github.com/cdipaolo/goml/cluster"
	"github.com/drakos74/free-glyph/internal/model"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/floats"
)

const kMeansIterations = 30

// Clustering groups the training samples with k-means, one cluster per label present,
// and maps every cluster to the label most of its members carry.
type Clustering struct {
	labels   model.Labels
	seed     int64
	model    *cluster.KMeans
	clusters [][]float64
}

// NewClustering creates a new classification-via-clustering classifier.
func NewClustering(labels model.Labels, seed int64) *Clustering {
	return &Clustering{
		labels: labels,
		seed:   seed,
	}
}

func (c *Clustering) Train(ds model.Dataset) error {
	if err := validate(c.labels, ds); err != nil {
		return err
	}
	rand.Seed(c.seed)

	k := len(ds.Distinct())
	km := cluster.NewKMeans(k, kMeansIterations, ds.X())
	km.Output = io.Discard
	if err := km.Learn(); err != nil {
		log.Error().
			Err(err).
			Str("dataset", ds.Name).
			Msg("error during training on k-means")
		return fmt.Errorf("could not train k-means: %v: %w", err, ErrTraining)
	}

	guesses := km.Guesses()
	if len(guesses) != ds.Len() {
		return fmt.Errorf("could not align clusters with data [ %d | %d ]: %w", len(guesses), ds.Len(), ErrTraining)
	}

	overall := make([]float64, c.labels.Len())
	clusters := make([][]float64, k)
	for i := range clusters {
		clusters[i] = make([]float64, c.labels.Len())
	}
	y := indexes(c.labels, ds)
	for i, g := range guesses {
		clusters[g][y[i]]++
		overall[y[i]]++
	}
	for i := range clusters {
		// an empty cluster answers with the overall distribution
		if floats.Sum(clusters[i]) == 0 {
			copy(clusters[i], overall)
		}
		clusters[i] = normalise(clusters[i])
	}

	c.model = km
	c.clusters = clusters
	return nil
}

func (c *Clustering) Predict(features model.Features) (model.Label, []float64, error) {
	if c.model == nil {
		return model.NoLabel, nil, ErrNotTrained
	}
	guess, err := c.model.Predict(features.Values())
	if err != nil {
		log.Error().
			Err(err).
			Msg("could not predict for k-means")
		return model.NoLabel, nil, fmt.Errorf("could not predict: %w", err)
	}
	g := int(math.Round(guess[0]))
	if g < 0 || g >= len(c.clusters) {
		return model.NoLabel, nil, fmt.Errorf("unknown cluster %d", g)
	}
	confidence := append([]float64{}, c.clusters[g]...)
	return decide(c.labels, confidence), confidence, nil
}

func (c *Clustering) String() string {
	return ClusteringKey
}

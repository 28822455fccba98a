package ml

import (
	"fmt"
	"math"

	"github.com/drakos74/free-glyph/internal/buffer"
	"github.com/drakos74/free-glyph/internal/model"
)

// varianceSmoothing is the share of the largest feature variance added to every variance,
// so that features constant within a class do not produce infinite likelihoods.
const varianceSmoothing = 1e-9

// NaiveBayes is a gaussian naive bayes classifier.
// Each feature is modelled as an independent normal distribution per label.
type NaiveBayes struct {
	labels  model.Labels
	stats   []*buffer.StatsCollector
	priors  []float64
	epsilon float64
	trained bool
}

// NewNaiveBayes creates a new naive bayes classifier.
func NewNaiveBayes(labels model.Labels) *NaiveBayes {
	return &NaiveBayes{
		labels: labels,
	}
}

func (nb *NaiveBayes) Train(ds model.Dataset) error {
	if err := validate(nb.labels, ds); err != nil {
		return err
	}
	if ds.Samples[0].Features.Len() == 0 {
		return fmt.Errorf("no features in dataset '%s': %w", ds.Name, ErrTraining)
	}
	dim := ds.Samples[0].Features.Len()

	all := buffer.NewStatsCollector(dim)
	stats := make([]*buffer.StatsCollector, nb.labels.Len())
	for i := range stats {
		stats[i] = buffer.NewStatsCollector(dim)
	}
	for _, s := range ds.Samples {
		if s.Features.Len() != dim {
			return fmt.Errorf("sample '%s' has %d features instead of %d: %w", s.Name, s.Features.Len(), dim, ErrTraining)
		}
		values := s.Features.Values()
		stats[nb.labels.Index(s.Label)].Push(values...)
		all.Push(values...)
	}

	maxVariance := 0.0
	for _, st := range all.Stats() {
		maxVariance = math.Max(maxVariance, st.Variance())
	}
	nb.epsilon = varianceSmoothing * maxVariance
	if nb.epsilon == 0 {
		nb.epsilon = varianceSmoothing
	}

	nb.priors = make([]float64, nb.labels.Len())
	for i, sc := range stats {
		nb.priors[i] = float64(sc.Size()) / float64(ds.Len())
	}
	nb.stats = stats
	nb.trained = true
	return nil
}

func (nb *NaiveBayes) Predict(features model.Features) (model.Label, []float64, error) {
	if !nb.trained {
		return model.NoLabel, nil, ErrNotTrained
	}
	logs := make([]float64, nb.labels.Len())
	best := math.Inf(-1)
	for c, sc := range nb.stats {
		if nb.priors[c] == 0 {
			logs[c] = math.Inf(-1)
			continue
		}
		if sc.Dim() != features.Len() {
			return model.NoLabel, nil, fmt.Errorf("expected %d features but got %d", sc.Dim(), features.Len())
		}
		p := math.Log(nb.priors[c])
		for i, st := range sc.Stats() {
			variance := st.Variance() + nb.epsilon
			d := features.At(i) - st.Avg()
			p -= 0.5*math.Log(2*math.Pi*variance) + d*d/(2*variance)
		}
		logs[c] = p
		best = math.Max(best, p)
	}

	// softmax over the log posteriors
	confidence := make([]float64, len(logs))
	for c, p := range logs {
		if !math.IsInf(p, -1) {
			confidence[c] = math.Exp(p - best)
		}
	}
	confidence = normalise(confidence)
	return decide(nb.labels, confidence), confidence, nil
}

func (nb *NaiveBayes) String() string {
	return NaiveBayesKey
}

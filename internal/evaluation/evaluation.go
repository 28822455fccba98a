package evaluation

import (
	"fmt"
	"io"
	"time"

	"github.com/drakos74/free-glyph/internal/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sjwhitworth/golearn/evaluation"
)

// Predictor assigns a label to a feature vector.
type Predictor interface {
	Predict(features model.Features) (model.Label, []float64, error)
	String() string
}

// Prediction is the outcome of one test sample.
type Prediction struct {
	Index      int         `json:"index"`
	Name       string      `json:"name"`
	Actual     model.Label `json:"actual"`
	Predicted  model.Label `json:"predicted"`
	Confidence []float64   `json:"confidence"`
}

// Correct returns true if the predicted label matches the actual one.
func (p Prediction) Correct() bool {
	return p.Actual == p.Predicted
}

// ClassMetrics holds the confusion counts and scores of one label.
type ClassMetrics struct {
	Label     model.Label `json:"label"`
	Support   int         `json:"support"`
	TP        float64     `json:"tp"`
	FP        float64     `json:"fp"`
	FN        float64     `json:"fn"`
	Precision float64     `json:"precision"`
	Recall    float64     `json:"recall"`
	FMeasure  float64     `json:"f_measure"`
}

// Report is the result of evaluating a classifier against a test dataset.
type Report struct {
	ID          string                     `json:"id"`
	Time        time.Time                  `json:"time"`
	Classifier  string                     `json:"classifier"`
	Dataset     string                     `json:"dataset"`
	Predictions []Prediction               `json:"predictions"`
	Classes     []ClassMetrics             `json:"classes"`
	Confusion   evaluation.ConfusionMatrix `json:"confusion"`
	Precision   float64                    `json:"precision"`
	Recall      float64                    `json:"recall"`
	FMeasure    float64                    `json:"f_measure"`
	Accuracy    float64                    `json:"accuracy"`
}

// Evaluate runs the predictor over every test sample in order and scores the predictions.
func Evaluate(p Predictor, labels model.Labels, test model.Dataset) (Report, error) {
	predictions := make([]Prediction, test.Len())
	for i, s := range test.Samples {
		label, confidence, err := p.Predict(s.Features)
		if err != nil {
			return Report{}, fmt.Errorf("could not predict sample '%s' with '%s': %w", s.Name, p.String(), err)
		}
		predictions[i] = Prediction{
			Index:      i,
			Name:       s.Name,
			Actual:     s.Label,
			Predicted:  label,
			Confidence: confidence,
		}
	}
	report := Score(labels, predictions)
	report.Classifier = p.String()
	report.Dataset = test.Name
	log.Debug().
		Str("id", report.ID).
		Str("classifier", report.Classifier).
		Int("samples", len(predictions)).
		Float64("accuracy", report.Accuracy).
		Msg("evaluated classifier")
	return report, nil
}

// Tally builds the confusion matrix of the predictions, indexed by actual and then predicted label.
func Tally(predictions []Prediction) evaluation.ConfusionMatrix {
	cm := make(evaluation.ConfusionMatrix)
	for _, p := range predictions {
		actual := string(p.Actual)
		if _, ok := cm[actual]; !ok {
			cm[actual] = make(map[string]int)
		}
		cm[actual][string(p.Predicted)]++
	}
	return cm
}

// Score computes the per label and the support weighted metrics of the predictions.
func Score(labels model.Labels, predictions []Prediction) Report {
	cm := Tally(predictions)
	total := float64(len(predictions))

	report := Report{
		ID:          uuid.New().String(),
		Time:        time.Now(),
		Predictions: predictions,
		Confusion:   cm,
		Classes:     make([]ClassMetrics, 0, labels.Len()),
	}

	var correct float64
	for _, l := range labels.Names() {
		class := string(l)
		support := 0
		for _, n := range cm[class] {
			support += n
		}
		m := ClassMetrics{
			Label:   l,
			Support: support,
			TP:      evaluation.GetTruePositives(class, cm),
			FP:      evaluation.GetFalsePositives(class, cm),
			FN:      evaluation.GetFalseNegatives(class, cm),
		}
		m.Precision = ratio(m.TP, m.TP+m.FP)
		m.Recall = ratio(m.TP, m.TP+m.FN)
		m.FMeasure = ratio(2*m.Precision*m.Recall, m.Precision+m.Recall)
		report.Classes = append(report.Classes, m)

		correct += m.TP
		if total > 0 {
			w := float64(support) / total
			report.Precision += w * m.Precision
			report.Recall += w * m.Recall
			report.FMeasure += w * m.FMeasure
		}
	}
	report.Accuracy = ratio(correct, total)
	return report
}

func ratio(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// Summary renders the per class breakdown of the confusion matrix.
func (r Report) Summary() string {
	if len(r.Confusion) == 0 {
		return ""
	}
	return evaluation.GetSummary(r.Confusion)
}

// WriteVerbose prints one line per test sample with the predicted label.
func (r Report) WriteVerbose(w io.Writer) error {
	for _, p := range r.Predictions {
		if _, err := fmt.Fprintf(w, "%s: %s\n", p.Name, p.Predicted); err != nil {
			return err
		}
	}
	return nil
}

// WriteMetrics prints the weighted precision, recall and f-measure.
func (r Report) WriteMetrics(w io.Writer) error {
	_, err := fmt.Fprintf(w, "precision: %.2f\nrecall: %.2f\nf-measure: %.2f\n", r.Precision, r.Recall, r.FMeasure)
	return err
}

package ml

import (
	"math"
	"math/rand"

	"github.com/drakos74/free-glyph/internal/model"
	"github.com/rs/zerolog/log"

	xml "github.com/drakos74/go-ex-machina/xmachina/ml"
	"github.com/drakos74/go-ex-machina/xmachina/net"
	"github.com/drakos74/go-ex-machina/xmachina/net/ff"
	"github.com/drakos74/go-ex-machina/xmath"
)

const (
	perceptronHidden = 32
	perceptronEpochs = 100
)

// Perceptron is a feed forward network with tanh hidden layers and a softmax output.
type Perceptron struct {
	labels model.Labels
	seed   int64
	epochs int
	net    *ff.Network
}

// NewPerceptron creates a new multilayer perceptron classifier.
func NewPerceptron(labels model.Labels, seed int64) *Perceptron {
	return &Perceptron{
		labels: labels,
		seed:   seed,
		epochs: perceptronEpochs,
	}
}

func (p *Perceptron) network(inputs int) *ff.Network {
	outputs := p.labels.Len()
	rate := xml.Learn(1, 0.1)

	initW := xmath.Rand(-1, 1, math.Sqrt)
	initB := xmath.Rand(-1, 1, math.Sqrt)
	network := ff.New(inputs, outputs).
		Add(perceptronHidden, net.NewBuilder().
			WithModule(xml.Base().
				WithRate(rate).
				WithActivation(xml.TanH)).
			WithWeights(initW, initB).
			Factory(net.NewActivationCell)).
		Add(outputs, net.NewBuilder().
			WithModule(xml.Base().
				WithRate(rate).
				WithActivation(xml.TanH)).
			WithWeights(initW, initB).
			Factory(net.NewActivationCell)).
		Add(outputs, net.NewBuilder().CellFactory(net.NewSoftCell))
	network.Loss(xml.Pow)
	return network
}

// input scales the histogram into [0,1].
func input(features model.Features) xmath.Vector {
	values := features.Values()
	for i := range values {
		values[i] = values[i] / model.HistHeight
	}
	return xmath.Vec(len(values)).With(values...)
}

func (p *Perceptron) Train(ds model.Dataset) error {
	if err := validate(p.labels, ds); err != nil {
		return err
	}
	rand.Seed(p.seed)

	network := p.network(ds.Samples[0].Features.Len())
	y := indexes(p.labels, ds)
	var loss float64
	for epoch := 0; epoch < p.epochs; epoch++ {
		loss = 0
		for i, s := range ds.Samples {
			target := make([]float64, p.labels.Len())
			target[y[i]] = 1
			l, _ := network.Train(input(s.Features), xmath.Vec(len(target)).With(target...))
			loss += l.Norm()
		}
	}
	p.net = network
	log.Debug().
		Str("dataset", ds.Name).
		Int("epochs", p.epochs).
		Float64("loss", loss).
		Msg("trained perceptron")
	return nil
}

func (p *Perceptron) Predict(features model.Features) (model.Label, []float64, error) {
	if p.net == nil {
		return model.NoLabel, nil, ErrNotTrained
	}
	outp := p.net.Predict(input(features))
	confidence := pad(append([]float64{}, outp...), p.labels.Len())
	return decide(p.labels, confidence), confidence, nil
}

func (p *Perceptron) String() string {
	return MultilayerPerceptronKey
}

package ml

import (
	"fmt"
	"math/rand"

	"github.com/drakos74/free-glyph/internal/model"
	"github.com/rs/zerolog/log"
	"github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/ensemble"
	"github.com/sjwhitworth/golearn/filters"
	"github.com/sjwhitworth/golearn/trees"
)

const (
	discreteTrees    = 100
	discreteFeatures = 16
)

// DiscreteForest is a forest of id3 trees grown on histograms discretised with chi-merge.
type DiscreteForest struct {
	labels model.Labels
	seed   int64
	schema schema
	filter *filters.ChiMergeFilter
	forest *ensemble.RandomForest
}

// NewDiscreteForest creates a new discretised random forest.
func NewDiscreteForest(labels model.Labels, seed int64) *DiscreteForest {
	return &DiscreteForest{
		labels: labels,
		seed:   seed,
	}
}

// preProcess discretises all float attributes of the grid with chi-merge.
func preProcess(inst *base.DenseInstances) (*filters.ChiMergeFilter, *base.LazilyFilteredInstances, error) {
	filt := filters.NewChiMergeFilter(inst, 0.999)
	for _, a := range base.NonClassFloatAttributes(inst) {
		filt.AddAttribute(a)
	}
	err := filt.Train()
	if err != nil {
		return nil, nil, err
	}
	return filt, base.NewLazilyFilteredInstances(inst, filt), nil
}

func (df *DiscreteForest) Train(ds model.Dataset) error {
	if err := validate(df.labels, ds); err != nil {
		return err
	}
	rand.Seed(df.seed)

	df.schema = newSchema(df.labels, ds.Samples[0].Features.Len())
	inst, err := df.schema.trainingInstances(ds)
	if err != nil {
		return fmt.Errorf("could not create instances: %v: %w", err, ErrTraining)
	}
	filt, trainData, err := preProcess(inst)
	if err != nil {
		return fmt.Errorf("could not discretise instances: %v: %w", err, ErrTraining)
	}

	forest := ensemble.NewRandomForest(discreteTrees, discreteFeatures)
	err = forest.Fit(trainData)
	if err != nil {
		log.Error().Err(err).Msg("could not train random forest")
		return fmt.Errorf("could not fit forest: %v: %w", err, ErrTraining)
	}
	df.filter = filt
	df.forest = forest
	return nil
}

// Predict walks every tree and counts the votes in label order.
// Ties between labels resolve to the label that comes first.
func (df *DiscreteForest) Predict(features model.Features) (model.Label, []float64, error) {
	if df.forest == nil || df.forest.Model == nil {
		return model.NoLabel, nil, ErrNotTrained
	}
	grid, err := df.schema.single(features)
	if err != nil {
		return model.NoLabel, nil, err
	}
	filtered := base.NewLazilyFilteredInstances(grid, df.filter)

	votes := make([]float64, df.labels.Len())
	for i, m := range df.forest.Model.Models {
		tree, ok := m.(*trees.ID3DecisionTree)
		if !ok || tree.Root == nil {
			return model.NoLabel, nil, fmt.Errorf("unexpected model %d in forest: %T", i, m)
		}
		label, err := walk(tree.Root, filtered)
		if err != nil {
			log.Error().Err(err).Int("tree", i).Msg("could not predict with random forest")
			return model.NoLabel, nil, err
		}
		idx := df.labels.Index(label)
		if idx < 0 {
			return model.NoLabel, nil, fmt.Errorf("tree %d predicted unknown label '%s'", i, label)
		}
		votes[idx]++
	}
	confidence := normalise(votes)
	return decide(df.labels, confidence), confidence, nil
}

// walk follows the splits of the tree for the first row of the grid down to a leaf.
// A value the tree has no branch for answers with the majority class of the node.
func walk(node *trees.DecisionTreeNode, grid base.FixedDataGrid) (model.Label, error) {
	for node.Children != nil && node.SplitRule != nil && node.SplitRule.SplitAttr != nil {
		spec, err := grid.GetAttribute(node.SplitRule.SplitAttr)
		if err != nil {
			return model.NoLabel, fmt.Errorf("could not find split attribute '%s': %w", node.SplitRule.SplitAttr.GetName(), err)
		}
		var branch string
		if _, ok := spec.GetAttribute().(*base.FloatAttribute); ok {
			branch = "0"
			if base.UnpackBytesToFloat(grid.Get(spec, 0)) > node.SplitRule.SplitVal {
				branch = "1"
			}
		} else {
			branch = spec.GetAttribute().GetStringFromSysVal(grid.Get(spec, 0))
		}
		next, ok := node.Children[branch]
		if !ok {
			break
		}
		node = next
	}
	return model.Label(node.Class), nil
}

func (df *DiscreteForest) String() string {
	return DiscreteForestKey
}

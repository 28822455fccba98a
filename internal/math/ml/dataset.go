package ml

import (
	"fmt"

	"github.com/drakos74/free-glyph/internal/model"
	"github.com/sjwhitworth/golearn/base"
)

// schema describes the golearn layout of a histogram dataset.
// It is one float attribute per gray level, plus the categorical class attribute.
type schema struct {
	attrs []base.Attribute
	class *base.CategoricalAttribute
}

func newSchema(labels model.Labels, dim int) schema {
	attrs := make([]base.Attribute, dim)
	for i := range attrs {
		attrs[i] = base.NewFloatAttribute(fmt.Sprintf("numeric%d", i))
	}
	class := base.NewCategoricalAttribute()
	class.SetName("classes")
	// register the labels up front so that the class values follow the label order
	for _, l := range labels.Strings() {
		class.GetSysValFromString(l)
	}
	return schema{
		attrs: attrs,
		class: class,
	}
}

// instances creates the golearn grid for the given rows.
// y can be nil for rows that are only used for prediction.
func (s schema) instances(x [][]float64, y []model.Label) (*base.DenseInstances, error) {
	inst := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, len(s.attrs))
	for i, a := range s.attrs {
		specs[i] = inst.AddAttribute(a)
	}
	classSpec := inst.AddAttribute(s.class)
	if err := inst.AddClassAttribute(s.class); err != nil {
		return nil, fmt.Errorf("could not add class attribute: %w", err)
	}
	if err := inst.Extend(len(x)); err != nil {
		return nil, fmt.Errorf("could not allocate %d rows: %w", len(x), err)
	}
	for row, values := range x {
		if len(values) != len(s.attrs) {
			return nil, fmt.Errorf("row %d has %d values instead of %d", row, len(values), len(s.attrs))
		}
		for i, v := range values {
			inst.Set(specs[i], row, base.PackFloatToBytes(v))
		}
		if y != nil {
			inst.Set(classSpec, row, s.class.GetSysValFromString(string(y[row])))
		}
	}
	return inst, nil
}

// trainingInstances creates the golearn grid for the whole dataset.
func (s schema) trainingInstances(ds model.Dataset) (*base.DenseInstances, error) {
	y := make([]model.Label, ds.Len())
	for i, sample := range ds.Samples {
		y[i] = sample.Label
	}
	return s.instances(ds.X(), y)
}

// single creates a one-row grid for prediction.
func (s schema) single(features model.Features) (*base.DenseInstances, error) {
	return s.instances([][]float64{features.Values()}, nil)
}

// oneHot returns full confidence for the given label.
func oneHot(labels model.Labels, l model.Label) ([]float64, error) {
	idx := labels.Index(l)
	if idx < 0 {
		return nil, fmt.Errorf("predicted unknown label '%s'", l)
	}
	confidence := make([]float64, labels.Len())
	confidence[idx] = 1
	return confidence, nil
}

package model

import "sort"

// Sample is a labelled image reduced to its features.
type Sample struct {
	Name     string   `json:"name"`
	Path     string   `json:"path"`
	Label    Label    `json:"label"`
	Features Features `json:"-"`
}

// Dataset is an ordered collection of samples.
type Dataset struct {
	Name    string
	Samples []Sample
}

// NewDataset creates a new dataset with the given samples.
func NewDataset(name string, samples ...Sample) Dataset {
	ss := make([]Sample, len(samples))
	copy(ss, samples)
	return Dataset{
		Name:    name,
		Samples: ss,
	}
}

// Len returns the number of samples.
func (d Dataset) Len() int {
	return len(d.Samples)
}

// Empty checks if the dataset has no samples.
func (d Dataset) Empty() bool {
	return len(d.Samples) == 0
}

// Count returns the number of samples with the given label.
func (d Dataset) Count(l Label) int {
	c := 0
	for _, s := range d.Samples {
		if s.Label == l {
			c++
		}
	}
	return c
}

// Distinct returns the labels present in the dataset, in order of first appearance.
func (d Dataset) Distinct() []Label {
	seen := make(map[Label]bool)
	labels := make([]Label, 0)
	for _, s := range d.Samples {
		if !seen[s.Label] {
			seen[s.Label] = true
			labels = append(labels, s.Label)
		}
	}
	return labels
}

// X returns the feature values of all samples.
func (d Dataset) X() [][]float64 {
	x := make([][]float64, len(d.Samples))
	for i, s := range d.Samples {
		x[i] = s.Features.Values()
	}
	return x
}

// Sorted returns a copy of the dataset ordered by label position and then by name.
func (d Dataset) Sorted(labels Labels) Dataset {
	sorted := NewDataset(d.Name, d.Samples...)
	sort.SliceStable(sorted.Samples, func(i, j int) bool {
		li := labels.Index(sorted.Samples[i].Label)
		lj := labels.Index(sorted.Samples[j].Label)
		if li != lj {
			return li < lj
		}
		return sorted.Samples[i].Name < sorted.Samples[j].Name
	})
	return sorted
}

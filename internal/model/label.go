package model

import (
	"fmt"
	"strings"
)

// Label defines a class an image can be assigned to.
type Label string

const (
	// NoLabel is an undefined label
	NoLabel Label = ""
	// Digits marks images containing only digits
	Digits Label = "digitos"
	// Letters marks images containing only letters
	Letters Label = "letras"
	// DigitsLetters marks images containing both digits and letters
	DigitsLetters Label = "digitos_letras"
	// NoChars marks images with no characters at all
	NoChars Label = "sem_caracteres"
)

// Labels is the closed, ordered set of labels for a run.
// The order defines the folder lookup order and the report breakdown.
type Labels struct {
	names []Label
	index map[Label]int
}

// DefaultLabels returns the labels the tool ships with.
func DefaultLabels() Labels {
	labels, _ := NewLabels(string(Digits), string(Letters), string(DigitsLetters), string(NoChars))
	return labels
}

// NewLabels creates a label set out of the given names.
func NewLabels(names ...string) (Labels, error) {
	if len(names) == 0 {
		return Labels{}, fmt.Errorf("no labels given")
	}
	ll := Labels{
		names: make([]Label, 0, len(names)),
		index: make(map[Label]int, len(names)),
	}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			return Labels{}, fmt.Errorf("empty label in %v", names)
		}
		l := Label(n)
		if _, ok := ll.index[l]; ok {
			return Labels{}, fmt.Errorf("duplicate label '%s'", n)
		}
		ll.index[l] = len(ll.names)
		ll.names = append(ll.names, l)
	}
	return ll, nil
}

// Len returns the number of labels.
func (ll Labels) Len() int {
	return len(ll.names)
}

// At returns the label at the given index.
func (ll Labels) At(i int) Label {
	return ll.names[i]
}

// Index returns the position of the label, or -1 if it is not part of the set.
func (ll Labels) Index(l Label) int {
	if i, ok := ll.index[l]; ok {
		return i
	}
	return -1
}

// Contains checks if the label is part of the set.
func (ll Labels) Contains(l Label) bool {
	_, ok := ll.index[l]
	return ok
}

// Names returns a copy of the labels in order.
func (ll Labels) Names() []Label {
	names := make([]Label, len(ll.names))
	copy(names, ll.names)
	return names
}

// Strings returns the labels as plain strings.
func (ll Labels) Strings() []string {
	ss := make([]string, len(ll.names))
	for i, l := range ll.names {
		ss[i] = string(l)
	}
	return ss
}

package storage

import (
	"errors"
	"fmt"
)

const (
	// ReportDir is the table evaluation reports are stored under.
	ReportDir = "reports"
)

var (
	// DefaultDir is the root directory for file based storage.
	DefaultDir = "file-storage"
)

// Shard creates a new storage implementation for the given shard.
type Shard func(shard string) (Persistence, error)

var (
	NotFoundErr     = errors.New("not found")
	CouldNotLoadErr = errors.New("could not load")
)

// Key is the storage key for a run artifact.
type Key struct {
	Run        string `json:"run"`
	Classifier string `json:"classifier"`
	Label      string `json:"label"`
}

// Path returns the file friendly representation of the key.
func (k Key) Path() string {
	return fmt.Sprintf("%s_%s_%s", k.Classifier, k.Run, k.Label)
}

// Persistence stores and loads values by key.
type Persistence interface {
	Store(k Key, value interface{}) error
	Load(k Key, value interface{}) error
}

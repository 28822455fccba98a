package dataset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/drakos74/free-glyph/internal/histogram"
	"github.com/drakos74/free-glyph/internal/metrics"
	"github.com/drakos74/free-glyph/internal/model"
	"github.com/drakos74/free-glyph/internal/raster"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrDirectory signals a class directory that is missing or cannot be listed.
	ErrDirectory = errors.New("could not list class directory")
	// ErrFeatures signals a feature vector of unexpected length.
	ErrFeatures = errors.New("invalid feature vector")
	// ErrEmpty signals a dataset without any samples.
	ErrEmpty = errors.New("empty dataset")
)

// Extractor turns a decoded grid into a feature vector.
type Extractor func(grid model.Grid) (model.Features, error)

// Outcome is the result of processing a single class directory or image file.
// Err is nil for images that made it into the dataset.
type Outcome struct {
	Label model.Label
	Path  string
	Err   error
}

// Result is the dataset built out of a directory tree, together with what happened to every input.
type Result struct {
	Dataset  model.Dataset
	Outcomes []Outcome
}

// Failed returns the outcomes that did not produce a sample.
func (r Result) Failed() []Outcome {
	failed := make([]Outcome, 0)
	for _, o := range r.Outcomes {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	return failed
}

// Check returns ErrEmpty if no sample could be loaded.
func (r Result) Check() error {
	if r.Dataset.Empty() {
		return fmt.Errorf("dataset '%s' [failed:%d]: %w", r.Dataset.Name, len(r.Failed()), ErrEmpty)
	}
	return nil
}

// Builder assembles labelled datasets out of a directory per label.
type Builder struct {
	labels    model.Labels
	extension string
	workers   int
	timeout   time.Duration
	progress  bool
	decoder   raster.Decoder
	extract   Extractor
	metrics   *metrics.Metrics
}

// NewBuilder creates a new dataset builder for the given labels.
func NewBuilder(labels model.Labels) *Builder {
	return &Builder{
		labels:    labels,
		extension: ".jpg",
		workers:   runtime.NumCPU(),
		timeout:   10 * time.Second,
		decoder:   raster.NewFileDecoder(),
		extract:   histogram.Extract,
		metrics:   metrics.Observer,
	}
}

// Extension sets the file name suffix of the images to pick up.
func (b *Builder) Extension(ext string) *Builder {
	b.extension = ext
	return b
}

// Workers sets the number of images processed in parallel.
func (b *Builder) Workers(n int) *Builder {
	if n > 0 {
		b.workers = n
	}
	return b
}

// Timeout sets the time limit for decoding a single image.
func (b *Builder) Timeout(d time.Duration) *Builder {
	if d > 0 {
		b.timeout = d
	}
	return b
}

// Progress enables a progress bar on stderr.
func (b *Builder) Progress(enabled bool) *Builder {
	b.progress = enabled
	return b
}

// WithDecoder replaces the image decoder.
func (b *Builder) WithDecoder(decoder raster.Decoder) *Builder {
	b.decoder = decoder
	return b
}

// WithExtractor replaces the feature extractor.
func (b *Builder) WithExtractor(extract Extractor) *Builder {
	b.extract = extract
	return b
}

// WithMetrics replaces the metrics sink.
func (b *Builder) WithMetrics(m *metrics.Metrics) *Builder {
	b.metrics = m
	return b
}

type job struct {
	label model.Label
	path  string
}

// Build walks the label directories under root and builds the dataset.
// It never fails, directories and files that cannot be processed are logged, reported as outcomes and skipped.
// Samples are ordered by label and then by file name, regardless of the order images finish in.
func (b *Builder) Build(ctx context.Context, name, root string) Result {
	outcomes := make([]Outcome, 0)
	jobs := make([]job, 0)
	for _, label := range b.labels.Names() {
		dir := filepath.Join(root, string(label))
		files, err := b.list(dir)
		if err != nil {
			log.Error().
				Err(err).
				Str("dataset", name).
				Str("label", string(label)).
				Str("dir", dir).
				Msg("could not read class directory")
			outcomes = append(outcomes, Outcome{Label: label, Path: dir, Err: err})
			continue
		}
		for _, f := range files {
			jobs = append(jobs, job{label: label, path: f})
		}
	}

	var bar *progressbar.ProgressBar
	if b.progress {
		bar = progressbar.NewOptions(len(jobs),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription(fmt.Sprintf("loading %s", name)),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionClearOnFinish())
	}

	samples := make([]*model.Sample, len(jobs))
	errs := make([]error, len(jobs))

	var group errgroup.Group
	group.SetLimit(b.workers)
	for i, j := range jobs {
		i, j := i, j
		group.Go(func() error {
			start := time.Now()
			sample, err := b.load(ctx, j)
			b.metrics.Observe(name, time.Since(start))
			if err != nil {
				errs[i] = err
				b.metrics.Increment(name, string(j.label), metrics.Skipped)
				log.Debug().
					Err(err).
					Str("dataset", name).
					Str("file", j.path).
					Msg("skipping image")
			} else {
				samples[i] = &sample
				b.metrics.Increment(name, string(j.label), metrics.Loaded)
			}
			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}
	_ = group.Wait()
	if bar != nil {
		_ = bar.Finish()
	}

	loaded := make([]model.Sample, 0, len(jobs))
	for i, j := range jobs {
		outcomes = append(outcomes, Outcome{Label: j.label, Path: j.path, Err: errs[i]})
		if samples[i] != nil {
			loaded = append(loaded, *samples[i])
		}
	}

	result := Result{
		Dataset:  model.NewDataset(name, loaded...),
		Outcomes: outcomes,
	}
	log.Info().
		Str("dataset", name).
		Str("root", root).
		Int("samples", result.Dataset.Len()).
		Int("failed", len(result.Failed())).
		Msg("dataset loaded")
	return result
}

// list returns the image files of the directory, sorted by name.
func (b *Builder) list(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("'%s' %w: %w", dir, ErrDirectory, err)
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), b.extension) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func (b *Builder) load(ctx context.Context, j job) (model.Sample, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	grid, err := b.decoder.Decode(ctx, j.path)
	if err != nil {
		return model.Sample{}, err
	}
	features, err := b.extract(grid)
	if err != nil {
		return model.Sample{}, fmt.Errorf("could not extract features for '%s': %w", j.path, err)
	}
	if features.Len() != model.HistWidth {
		return model.Sample{}, fmt.Errorf("'%s' has %d features instead of %d: %w", j.path, features.Len(), model.HistWidth, ErrFeatures)
	}
	return model.Sample{
		Name:     filepath.Base(j.path),
		Path:     j.path,
		Label:    j.label,
		Features: features,
	}, nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/drakos74/free-glyph/infra/config"
	"github.com/drakos74/free-glyph/internal/dataset"
	"github.com/drakos74/free-glyph/internal/evaluation"
	"github.com/drakos74/free-glyph/internal/math/ml"
	"github.com/drakos74/free-glyph/internal/metrics"
	"github.com/drakos74/free-glyph/internal/model"
	"github.com/drakos74/free-glyph/internal/storage"
	json_storage "github.com/drakos74/free-glyph/internal/storage/file/json"
	"github.com/rs/zerolog/log"
)

type options struct {
	verbose    bool
	classifier string
	train      string
	test       string
}

// run loads both datasets, trains the classifier on the training one and reports on the test one.
func run(ctx context.Context, cfg config.Config, opts options, shard storage.Shard, stdout io.Writer) error {
	labels, err := cfg.LabelSet()
	if err != nil {
		return err
	}

	classifier, err := ml.New(opts.classifier, labels, cfg.Seed)
	if err != nil {
		return err
	}

	builder := dataset.NewBuilder(labels).
		Extension(cfg.Extension).
		Workers(cfg.Workers).
		Timeout(cfg.DecodeTimeout).
		Progress(cfg.Progress).
		WithMetrics(metrics.Observer)

	train, err := load(ctx, builder, "train", opts.train)
	if err != nil {
		return empty(cfg, err)
	}
	test, err := load(ctx, builder, "test", opts.test)
	if err != nil {
		return empty(cfg, err)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("interrupted: %w", err)
	}

	if err := classifier.Train(train); err != nil {
		return err
	}
	log.Info().
		Str("classifier", classifier.String()).
		Int("samples", train.Len()).
		Msg("trained classifier")

	report, err := evaluation.Evaluate(classifier, labels, test)
	if err != nil {
		return err
	}
	log.Debug().Str("id", report.ID).Msg(report.Summary())

	if opts.verbose {
		if err := report.WriteVerbose(stdout); err != nil {
			return err
		}
	}
	if err := report.WriteMetrics(stdout); err != nil {
		return err
	}

	metrics.Observer.Score(classifier.String(), "precision", report.Precision)
	metrics.Observer.Score(classifier.String(), "recall", report.Recall)
	metrics.Observer.Score(classifier.String(), "f_measure", report.FMeasure)

	if err := save(shard, report); err != nil {
		log.Error().Err(err).Str("id", report.ID).Msg("could not store report")
	}
	if cfg.Metrics.File != "" {
		if err := metrics.Observer.WriteTo(cfg.Metrics.File); err != nil {
			log.Error().Err(err).Str("file", cfg.Metrics.File).Msg("could not export metrics")
		}
	}
	return nil
}

func load(ctx context.Context, builder *dataset.Builder, name, root string) (model.Dataset, error) {
	result := builder.Build(ctx, name, root)
	if err := result.Check(); err != nil {
		return model.Dataset{}, err
	}
	return result.Dataset, nil
}

// empty reports an empty dataset and ends the run without metrics.
func empty(cfg config.Config, err error) error {
	if !errors.Is(err, dataset.ErrEmpty) || cfg.StrictEmpty {
		return err
	}
	log.Error().Err(err).Msg("no samples to work with")
	return nil
}

// reports returns the storage for evaluation reports, sharded by classifier.
func reports(cfg config.Config) storage.Shard {
	if !cfg.Storage.Enabled {
		return storage.VoidShard(storage.ReportDir)
	}
	return json_storage.BlobShard(storage.ReportDir, cfg.Storage.Dir)
}

func save(shard storage.Shard, report evaluation.Report) error {
	store, err := shard(report.Classifier)
	if err != nil {
		return fmt.Errorf("could not open storage for '%s': %w", report.Classifier, err)
	}
	return store.Store(storage.Key{
		Run:        report.ID,
		Classifier: report.Classifier,
		Label:      report.Dataset,
	}, report)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/drakos74/free-glyph/infra/config"
	"github.com/drakos74/free-glyph/internal/dataset"
	"github.com/drakos74/free-glyph/internal/math/ml"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const name = "free-glyph"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// execute runs the command line and returns the process exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ml.ErrUnknownClassifier):
		fmt.Fprintf(stderr, "%s\nrun '%s classifiers' for the available classifiers\n", err.Error(), name)
	case errors.Is(err, dataset.ErrEmpty):
		fmt.Fprintf(stderr, "%s\n", err.Error())
	default:
		fmt.Fprintf(stderr, "error: %s\n", err.Error())
	}
	return 1
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var cfgFile string
	v := viper.New()
	var cfg config.Config

	root := &cobra.Command{
		Use:   fmt.Sprintf("%s <verbose> <classifier> <training-dir> <test-dir>", name),
		Short: "Classify images by their gray level histogram",
		Long: `Trains the named classifier on the images of the training directory
and evaluates it on the images of the test directory.
Both directories contain one sub-directory per label.`,
		Args:          cobra.ExactArgs(4),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			c, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			cfg = c
			setupLogging(stderr, cfg.LogLevel())
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg, options{
				verbose:    strings.EqualFold(strings.TrimSpace(args[0]), "true"),
				classifier: args[1],
				train:      args[2],
				test:       args[3],
			}, reports(cfg), stdout)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml)")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	_ = v.BindPFlag("log.level", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(classifiersCmd(stdout))
	return root
}

func setupLogging(w io.Writer, level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, NoColor: true})
}

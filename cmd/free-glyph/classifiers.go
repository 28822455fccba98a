package main

import (
	"fmt"
	"io"

	"github.com/drakos74/free-glyph/internal/math/ml"
	"github.com/spf13/cobra"
)

func classifiersCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "classifiers",
		Short: "List the available classifiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, n := range ml.Names() {
				if _, err := fmt.Fprintln(stdout, n); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

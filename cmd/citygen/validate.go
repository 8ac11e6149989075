package main

import (
	"fmt"

	"github.com/andreiashu/citygen"
	"github.com/spf13/cobra"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a dataset against the generation settings",
		Long: `validate re-reads a dataset and checks every record against the same
settings used to generate it. The file defaults to --output.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.v.GetString("output")
			if len(args) == 1 {
				path = args[0]
			}

			sum, err := citygen.ValidateFile(path, a.options()...)
			if err != nil {
				return err
			}
			a.logger.Debug("dataset valid", "path", sum.Path, "records", sum.Records)
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d records OK (%d real, %d fictional)\n",
				sum.Path, sum.Records, sum.Reference, sum.Fake)
			return nil
		},
	}
}

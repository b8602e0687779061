package cli

import (
	"github.com/spf13/cobra"

	"github.com/user/refindex_go/internal/app"
	"github.com/user/refindex_go/internal/parser"
)

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export <data-file>",
		Short: "Rewrite the data block in canonical form",
		Long: `Parse a data file and print its measurements as a canonical
"data: |" block. The output parses back to the same values.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(rootOpts, args[0], cmd)
		},
	}
}

func runExport(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	_, logger, err := opts.runtime(cmd)
	if err != nil {
		return reportFailure(formatter, ErrCodeConfig, err)
	}

	ds, err := app.NewApp(logger).Load(cmd.Context(), path)
	if err != nil {
		return reportFailure(formatter, ErrCodeIO, err)
	}
	if err := parser.Format(cmd.OutOrStdout(), ds.Measurements); err != nil {
		return reportFailure(formatter, ErrCodeOutput, err)
	}
	return nil
}

package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/refindex_go/internal/app"
	"github.com/user/refindex_go/internal/parser"
)

// NewParseCommand creates the parse command.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "parse <data-file>",
		Short:         "Print the measurements of a data file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(rootOpts, args[0], cmd)
		},
	}
}

func runParse(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	_, logger, err := opts.runtime(cmd)
	if err != nil {
		return reportFailure(formatter, ErrCodeConfig, err)
	}

	ds, err := app.NewApp(logger).Load(cmd.Context(), path)
	if err != nil {
		return reportFailure(formatter, ErrCodeIO, err)
	}
	return formatter.Success(ds, measurementTable(ds.Measurements))
}

// measurementTable renders measurements as tab-separated text with a header.
func measurementTable(measurements []parser.Measurement) string {
	var sb strings.Builder
	sb.WriteString("wavelength\trefractive_index")
	for _, m := range measurements {
		sb.WriteByte('\n')
		sb.WriteString(strconv.FormatFloat(m.Wavelength, 'g', -1, 64))
		sb.WriteByte('\t')
		sb.WriteString(strconv.FormatFloat(m.RefractiveIndex, 'g', -1, 64))
	}
	return sb.String()
}

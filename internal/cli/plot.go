package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/user/refindex_go/internal/app"
)

// PlotSummary is the JSON payload of the plot command.
type PlotSummary struct {
	Input  string `json:"input"`
	Output string `json:"output"`
	Report string `json:"report,omitempty"`
	Count  int    `json:"count"`
}

// NewPlotCommand creates the plot command.
func NewPlotCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot <data-file>",
		Short: "Render a wavelength vs refractive index scatter plot",
		Long: `Parse the data block of a refractive-index file and render a scatter
plot of wavelength against refractive index.

The image format follows the output extension (png, svg, pdf, jpg, tiff,
eps). Without --output the plot is written next to the input as .png.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlot(rootOpts, args[0], cmd)
		},
	}

	cmd.Flags().StringP("output", "o", "", "image path (default <data-file>.png)")
	cmd.Flags().String("report", "", "also write a PDF report to this path")
	cmd.Flags().Float64("width", 0, "image width in points")
	cmd.Flags().Float64("height", 0, "image height in points")
	cmd.Flags().String("title", "", "plot title")
	cmd.Flags().String("x-label", "", "x axis label")
	cmd.Flags().String("y-label", "", "y axis label")

	return cmd
}

func runPlot(opts *RootOptions, input string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	cfg, logger, err := opts.runtime(cmd)
	if err != nil {
		return reportFailure(formatter, ErrCodeConfig, err)
	}

	res, err := app.NewApp(logger).GeneratePlot(cmd.Context(), app.PlotRequest{
		InputPath:  input,
		OutputPath: cfg.Output.Image,
		ReportPath: cfg.Output.Report,
		Plot:       plotOptions(cfg),
	})
	if err != nil {
		code := ErrCodeOutput
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			code = ErrCodeIO
		}
		return reportFailure(formatter, code, err)
	}

	summary := PlotSummary{
		Input:  input,
		Output: res.OutputPath,
		Report: res.ReportPath,
		Count:  len(res.Dataset.Measurements),
	}
	text := fmt.Sprintf("✓ Wrote %s (%d measurements)", res.OutputPath, summary.Count)
	if res.ReportPath != "" {
		text += fmt.Sprintf("\n✓ Wrote %s", res.ReportPath)
	}
	return formatter.Success(summary, text)
}

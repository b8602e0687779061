package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/user/refindex_go/internal/parser"
	"github.com/user/refindex_go/internal/report"
)

// App runs the parse -> plot -> save pipeline.
type App struct {
	log zerolog.Logger
}

// NewApp creates an App that reports progress on log.
func NewApp(log zerolog.Logger) *App {
	return &App{log: log}
}

// PlotRequest describes one plot run.
type PlotRequest struct {
	InputPath  string
	OutputPath string // defaults to the input path with a .png extension
	ReportPath string // optional PDF report
	Plot       report.PlotOptions
}

// PlotResult is what a plot run produced.
type PlotResult struct {
	Dataset    *parser.Dataset
	Figure     *report.Figure
	OutputPath string
	ReportPath string
}

// DefaultOutputPath swaps the extension of inputPath for .png.
func DefaultOutputPath(inputPath string) string {
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".png"
}

// Load parses the dataset at path.
func (a *App) Load(ctx context.Context, path string) (*parser.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a.log.Debug().Str("path", path).Msg("Parsing data file")
	ds, err := parser.ParseDataset(path)
	if err != nil {
		a.log.Error().Err(err).Str("path", path).Str("kind", string(parser.KindOf(err))).Msg("Parse failed")
		return nil, err
	}

	a.log.Info().
		Str("path", path).
		Int("count", len(ds.Measurements)).
		Str("data_type", ds.Metadata.DataType).
		Msg("Parsed measurements")
	return ds, nil
}

// GeneratePlot parses req.InputPath, renders the scatter figure to
// req.OutputPath and, when requested, writes a PDF report.
func (a *App) GeneratePlot(ctx context.Context, req PlotRequest) (*PlotResult, error) {
	ds, err := a.Load(ctx, req.InputPath)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fig, err := report.NewScatterFigure(ds.Measurements, req.Plot)
	if err != nil {
		return nil, fmt.Errorf("failed to build plot: %w", err)
	}

	output := req.OutputPath
	if output == "" {
		output = DefaultOutputPath(req.InputPath)
	}
	if err := fig.Save(output); err != nil {
		a.log.Error().Err(err).Str("output", output).Msg("Saving plot failed")
		return nil, err
	}
	a.log.Info().Str("output", output).Msg("Plot written")

	result := &PlotResult{
		Dataset:    ds,
		Figure:     fig,
		OutputPath: output,
	}
	if req.ReportPath == "" {
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, err := fig.PNG()
	if err != nil {
		return nil, err
	}
	opts := report.ReportOptions{Plot: fig.Options}
	if err := report.BuildPDFReportFile(req.ReportPath, ds, img, opts); err != nil {
		a.log.Error().Err(err).Str("report", req.ReportPath).Msg("Generating PDF report failed")
		return nil, err
	}
	a.log.Info().Str("report", req.ReportPath).Msg("PDF report written")

	result.ReportPath = req.ReportPath
	return result, nil
}

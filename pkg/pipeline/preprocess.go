package pipeline

import (
	"context"
	"io"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gonum.org/v1/gonum/mat"

	"streamprep/pkg/config"
	"streamprep/pkg/data"
	"streamprep/pkg/dataprep"
	"streamprep/pkg/report"
	"streamprep/pkg/stats"
	"streamprep/pkg/viz"
)

const tracerName = "streamprep/pipeline"

// Thresholds used when Options leaves them unset.
const (
	DefaultMissingThreshold     = 40.0
	DefaultCorrelationThreshold = 0.70
)

// Options configures a preprocessing run. Zero values fall back to the
// defaults noted on each field.
type Options struct {
	ArchivePath string
	Entry       string
	Encoding    string // data.DefaultEncoding

	ImageDir        string // viz.DefaultDir
	MissingPlot     string // viz.MissingPlotFile
	CorrelationPlot string // viz.CorrelationPlotFile
	ShowDiagonal    bool

	MissingThreshold     *float64 // DefaultMissingThreshold
	CorrelationThreshold *float64 // DefaultCorrelationThreshold
	Collapse             stats.CollapseMode

	Features []string // default Features
	Target   string   // default Target

	Logger *slog.Logger // slog.Default()
	Out    io.Writer    // os.Stdout, receives the correlation report
}

// FromConfig maps loaded settings onto Options.
func FromConfig(cfg *config.Config, logger *slog.Logger) Options {
	return Options{
		ArchivePath:          cfg.ArchivePath,
		Entry:                cfg.Entry,
		Encoding:             cfg.Encoding,
		ImageDir:             cfg.ImageDir,
		MissingPlot:          cfg.MissingPlot,
		CorrelationPlot:      cfg.CorrelationPlot,
		MissingThreshold:     Threshold(cfg.MissingThreshold),
		CorrelationThreshold: Threshold(cfg.CorrelationThreshold),
		Logger:               logger,
	}
}

// Threshold returns a pointer to v for the threshold fields of Options.
func Threshold(v float64) *float64 { return &v }

func valueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// Result is the model-ready output. Row i of X and Y[i] come from the
// source row labelled Index[i].
type Result struct {
	X        *mat.Dense
	Y        []float64
	Features []string
	Index    []int

	Dropped      dataprep.MissingReport
	Correlations []stats.CorrelatedPair
}

// Preprocess loads the archive entry, cleans it, writes the diagnostic charts,
// prints the high-correlation report and returns the standardized features.
// The first failing stage stops the run with a *StageError.
func Preprocess(ctx context.Context, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	features := opts.Features
	if len(features) == 0 {
		features = Features
	}
	target := opts.Target
	if target == "" {
		target = Target
	}
	encoding := opts.Encoding
	if encoding == "" {
		encoding = data.DefaultEncoding
	}
	missingThreshold := valueOr(opts.MissingThreshold, DefaultMissingThreshold)
	corrThreshold := valueOr(opts.CorrelationThreshold, DefaultCorrelationThreshold)
	saver := viz.NewSaver(opts.ImageDir, logger)

	ctx, span := otel.Tracer(tracerName).Start(ctx, "preprocess")
	defer span.End()
	span.SetAttributes(
		attribute.String("archive", opts.ArchivePath),
		attribute.String("entry", opts.Entry),
	)

	res := &Result{}
	var t *data.Table

	stages := []struct {
		name Stage
		run  func() error
	}{
		{StageLoad, func() (err error) {
			t, err = data.ReadZipCSV(opts.ArchivePath, opts.Entry, data.WithEncoding(encoding))
			if err == nil {
				logger.Info("Loaded dataset", slog.Int("rows", t.Len()), slog.Int("columns", t.Width()))
			}
			return err
		}},
		{StageValidate, func() error {
			return Schema().Validate(t)
		}},
		{StageNormalize, func() error {
			return dataprep.CleanNumericColumns(t, NumericColumns)
		}},
		{StageMissing, func() (err error) {
			chart := &viz.MissingChart{Saver: saver, Filename: opts.MissingPlot}
			res.Dropped, err = dataprep.ReduceMissing(t, missingThreshold, chart, logger)
			return err
		}},
		{StageReleaseYear, func() error {
			return dataprep.DeriveYear(t, ReleaseDate, ReleaseYear)
		}},
		{StageCorrelation, func() error {
			m := stats.Correlate(t)
			chart := &viz.CorrelationChart{Saver: saver, Filename: opts.CorrelationPlot, ShowDiagonal: opts.ShowDiagonal}
			if _, err := chart.PlotCorrelation(m); err != nil {
				return err
			}
			res.Correlations = stats.HighlyCorrelated(m, corrThreshold, opts.Collapse)
			return report.WriteCorrelations(out, corrThreshold, res.Correlations)
		}},
		{StageFeatures, func() error {
			fs, err := dataprep.BuildFeatures(t, features, target, NewPipeline(stats.NewStandardScaler()))
			if err != nil {
				return err
			}
			for j, name := range fs.Features {
				logger.Debug("Imputed feature", slog.String("feature", name), slog.String("mean", report.Metrics.Float(fs.Means[j])))
			}
			res.X, res.Y, res.Features, res.Index = fs.X, fs.Y, fs.Features, fs.Index
			return nil
		}},
	}

	for _, s := range stages {
		if err := runStage(ctx, s.name, s.run); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
	}
	span.SetStatus(codes.Ok, "")
	return res, nil
}

func runStage(ctx context.Context, name Stage, run func() error) error {
	if err := ctx.Err(); err != nil {
		return &StageError{Stage: name, Err: err}
	}
	_, span := otel.Tracer(tracerName).Start(ctx, string(name))
	defer span.End()
	if err := run(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return &StageError{Stage: name, Err: err}
	}
	return nil
}

package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"streamprep/pkg/config"
	"streamprep/pkg/logging"
	"streamprep/pkg/pipeline"
	"streamprep/pkg/report"
	"streamprep/pkg/tracing"
)

//
// ---------------------- ENVIRONMENT ----------------------
//
// STREAMPREP_ARCHIVE_PATH          : zip archive. Default = data/Most Streamed Spotify Songs 2024.csv.zip
// STREAMPREP_ENTRY                 : CSV entry inside the archive
// STREAMPREP_ENCODING              : source encoding. Default = ISO-8859-1
// STREAMPREP_IMAGE_DIR             : chart directory. Default = image
// STREAMPREP_MISSING_THRESHOLD     : drop columns with more missing percent than this. Default = 40
// STREAMPREP_CORRELATION_THRESHOLD : report pairs correlated above this. Default = 0.70
// STREAMPREP_LOG_LEVEL / _FORMAT   : debug|info|warn|error, text|json
// STREAMPREP_TRACE                 : print OpenTelemetry spans to stdout
//
// A .env file in the working directory is read first.
//
// Example:
//   go run ./cmd/examples/Spotify_PrePrep
//
// ---------------------------------------------------------
//

const sampleSize = 5

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger, _ := logging.WithRunID(logging.New(cfg.Logging, os.Stdout))
	slog.SetDefault(logger)

	shutdown, err := tracing.Setup(cfg.Trace, os.Stdout)
	if err != nil {
		log.Fatalf("Error starting tracing: %v", err)
	}

	ctx := context.Background()
	res, err := pipeline.Preprocess(ctx, pipeline.FromConfig(cfg, logger))
	if serr := shutdown(ctx); serr != nil {
		logger.Warn("trace shutdown failed", slog.Any("error", serr))
	}
	if err != nil {
		logger.Error("preprocessing failed", slog.Any("error", err))
		os.Exit(1)
	}

	rows, cols := res.X.Dims()
	err = report.WriteSummary(os.Stdout, report.Summary{
		Rows:     rows,
		Cols:     cols,
		Targets:  len(res.Y),
		Features: res.Features,
		Sample:   res.Y[:min(sampleSize, len(res.Y))],
	})
	if err != nil {
		log.Fatalf("Error writing summary: %v", err)
	}
}

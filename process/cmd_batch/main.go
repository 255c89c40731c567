package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"mime"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"scorekeeper/models"
	"scorekeeper/pkg/config"
	"scorekeeper/pkg/coursematch"
	"scorekeeper/pkg/scorecard"
	"scorekeeper/pkg/store"
	"scorekeeper/process/batch"
	"scorekeeper/process/export"
)

// Main: scans a directory of scorecard images, extracts and resolves each one,
// stores the results and optionally keeps watching for new files.
func main() {
	dir := flag.String("dir", "scorecards", "directory to scan for scorecard images")
	workers := flag.Int("workers", 0, "worker pool size (default WORKERS or NumCPU)")
	watch := flag.Bool("watch", false, "watch directory for new files after the initial scan")
	out := flag.String("out", "", "write results of the initial scan to this .xlsx file")
	processed := flag.String("processed-dir", "", "move files here once processed")
	dryRun := flag.Bool("dry-run", false, "skip the database: no course matching, nothing stored")
	verbose := flag.Bool("verbose", false, "verbose per-file logging")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *verbose {
		cfg.LogLevel = "debug"
	}
	logger := cfg.Logger()
	if *workers <= 0 {
		*workers = cfg.Workers
	}

	runner := &batch.Runner{
		Extractor:        scorecard.NewExtractor(scorecard.NewTesseractRecognizer(cfg.TesseractLang, cfg.TessdataPrefix), logger),
		Resolver:         coursematch.NewResolver(cfg.FuzzyMatchThreshold),
		Workers:          *workers,
		ReviewConfidence: cfg.ReviewConfidence,
		ProcessedDir:     *processed,
		Logger:           logger,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *dryRun {
		logger.Info("dry-run: no database interaction", "dir", *dir)
	} else {
		if err := cfg.RequireDatabase(); err != nil {
			log.Fatal(err)
		}
		st, err := store.Open(cfg.DatabaseDSN, logger)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		storeDir := *dir
		if *processed != "" {
			storeDir = *processed
		}
		runner.Catalog = st
		runner.Sink = persist(ctx, st, storeDir, cfg.ReviewConfidence, logger)
	}

	results, err := runner.Run(ctx, *dir)
	if err != nil {
		log.Fatalf("scan failed: %v", err)
	}
	summarize(logger, results)

	if *out != "" {
		if err := export.SaveXLSX(*out, results); err != nil {
			log.Fatalf("export: %v", err)
		}
		logger.Info("wrote results", "file", *out, "rows", len(results))
	}

	if *watch {
		if err := runner.Watch(ctx, *dir); err != nil {
			log.Fatalf("watch failed: %v", err)
		}
	}
}

// persist returns a sink that stores every successfully decoded file.
func persist(ctx context.Context, st *store.Store, dir string, reviewConfidence float64, logger *slog.Logger) func(batch.Result) {
	return func(res batch.Result) {
		if res.Err != nil {
			return
		}
		up := models.NewScorecardUpload(
			res.File,
			filepath.ToSlash(filepath.Join(dir, res.File)),
			mime.TypeByExtension(filepath.Ext(res.File)),
			res.Extraction,
			res.Match,
			reviewConfidence,
		)
		if err := st.SaveUpload(ctx, up); err != nil {
			logger.Error("save failed", "file", res.File, "error", err)
			return
		}
		logger.Info("stored", "file", res.File, "id", up.PublicID, "confidence", up.Confidence, "needs_review", up.NeedsReview)
	}
}

func summarize(logger *slog.Logger, results []batch.Result) {
	var failed, review int
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
		if r.NeedsReview {
			review++
		}
	}
	logger.Info("scan complete", "files", len(results), "failed", failed, "needs_review", review)
}

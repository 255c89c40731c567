package main

import (
	"context"
	"flag"
	"log"
	"os"

	"scorekeeper/pkg/config"
	"scorekeeper/pkg/coursematch"
	"scorekeeper/pkg/scorecard"
	"scorekeeper/pkg/store"
	"scorekeeper/process/reextract"
)

func main() {
	limit := flag.Int("limit", 100, "maximum number of uploads to retry")
	dry := flag.Bool("dry", true, "only print proposed changes")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.RequireDatabase(); err != nil {
		log.Fatal(err)
	}
	logger := cfg.Logger()
	st, err := store.Open(cfg.DatabaseDSN, logger)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}

	u := &reextract.Updater{
		Store:            st,
		Extractor:        scorecard.NewExtractor(scorecard.NewTesseractRecognizer(cfg.TesseractLang, cfg.TessdataPrefix), logger),
		Resolver:         coursematch.NewResolver(cfg.FuzzyMatchThreshold),
		ReviewConfidence: cfg.ReviewConfidence,
		Dry:              *dry,
		Out:              os.Stdout,
		Logger:           logger,
	}
	stats, err := u.Run(context.Background(), *limit)
	if err != nil {
		log.Fatalf("re-extract: %v", err)
	}
	logger.Info("re-extract complete", "checked", stats.Checked, "updated", stats.Updated, "skipped", stats.Skipped, "dry", *dry)
}

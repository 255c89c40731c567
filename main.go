package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"scorekeeper/pkg/config"
	"scorekeeper/pkg/coursematch"
	"scorekeeper/pkg/scorecard"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := cfg.Logger()
	slog.SetDefault(logger)

	if err := cfg.RequireDatabase(); err != nil {
		log.Fatal(err)
	}

	// `./scorekeeper migrate` runs AutoMigrate and seeding then exits.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if _, err := initStore(cfg, logger, true); err != nil {
			log.Fatal(err)
		}
		fmt.Println("migration and seeding completed")
		return
	}

	st, err := initStore(cfg, logger, cfg.AutoMigrate)
	if err != nil {
		log.Fatal(err)
	}

	rec := scorecard.NewTesseractRecognizer(cfg.TesseractLang, cfg.TessdataPrefix)
	logger.Info("text recognizer ready", "engine", "tesseract", "version", rec.Version(), "lang", cfg.TesseractLang)

	a := &app{
		store:            st,
		extractor:        scorecard.NewExtractor(rec, logger),
		resolver:         coursematch.NewResolver(cfg.FuzzyMatchThreshold),
		uploadBase:       cfg.UploadBase,
		maxUploadBytes:   cfg.MaxUploadBytes,
		reviewConfidence: cfg.ReviewConfidence,
		logger:           logger,
	}

	r := gin.Default()
	a.setupRoutes(r)

	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("server: %v", err)
	}
}

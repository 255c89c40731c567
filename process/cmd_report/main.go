package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"scorekeeper/pkg/config"
	"scorekeeper/pkg/store"
	"scorekeeper/process/report"
)

func main() {
	limit := flag.Int("limit", 100, "maximum number of uploads to list")
	all := flag.Bool("all", false, "list every upload, not only those needing review")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := cfg.RequireDatabase(); err != nil {
		fmt.Fprintln(os.Stderr, "DB_DSN not set; export DB_DSN and retry")
		os.Exit(2)
	}
	st, err := store.Open(cfg.DatabaseDSN, cfg.Logger())
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}

	opts := report.Options{Limit: *limit, All: *all, LowConfidence: cfg.ReviewConfidence}
	if _, err := report.Run(context.Background(), st, os.Stdout, opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

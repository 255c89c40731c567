package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"scorekeeper/pkg/config"
	"scorekeeper/pkg/scorecard"

	"github.com/disintegration/imaging"
)

// Writes the prepared (binarized) version of a scorecard image so the
// preprocessing can be inspected, and optionally runs recognition on it.
func main() {
	in := flag.String("file", "", "scorecard image")
	out := flag.String("out", "", "where to write the prepared image (default <file>.prepared.png)")
	runOCR := flag.Bool("ocr", false, "also run text recognition and print the extraction")
	flag.Parse()
	if *in == "" {
		log.Fatalf("-file required")
	}
	if *out == "" {
		*out = strings.TrimSuffix(*in, filepath.Ext(*in)) + ".prepared.png"
	}

	img, err := scorecard.DecodeFile(*in)
	if err != nil {
		log.Fatalf("open: %v", err)
	}
	prepared := scorecard.Prepare(img)
	if err := imaging.Save(prepared, *out); err != nil {
		log.Fatalf("save: %v", err)
	}
	b := prepared.Bounds()
	fmt.Printf("prepared %s -> %s (%dx%d)\n", *in, *out, b.Dx(), b.Dy())

	if !*runOCR {
		return
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	ex := scorecard.NewExtractor(scorecard.NewTesseractRecognizer(cfg.TesseractLang, cfg.TessdataPrefix), cfg.Logger())
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ex.ExtractImage(img)); err != nil {
		log.Fatalf("encode: %v", err)
	}
}

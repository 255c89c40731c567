// Package batch runs scorecard extraction over a directory of images with a
// worker pool, either once or continuously as files arrive.
package batch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"scorekeeper/models"
	"scorekeeper/pkg/coursematch"
	"scorekeeper/pkg/scorecard"

	"github.com/fsnotify/fsnotify"
)

const (
	debounceTick = 250 * time.Millisecond
	settleDelay  = 300 * time.Millisecond
)

// CatalogSource supplies the course catalog. It is asked once per file.
type CatalogSource interface {
	ListCourses(ctx context.Context) ([]coursematch.Course, error)
}

// StaticCatalog is a fixed in-memory catalog.
type StaticCatalog []coursematch.Course

func (c StaticCatalog) ListCourses(context.Context) ([]coursematch.Course, error) {
	return c, nil
}

// Result is the outcome for one file.
type Result struct {
	File        string
	Extraction  *scorecard.ScorecardExtraction
	Match       *coursematch.Result
	NeedsReview bool
	Err         error
}

// Runner processes scorecard images concurrently.
type Runner struct {
	Extractor *scorecard.Extractor
	Resolver  *coursematch.Resolver
	// Catalog may be nil, in which case course names are not resolved.
	Catalog          CatalogSource
	Workers          int
	ReviewConfidence float64
	// ProcessedDir, when set, receives each file after it was processed.
	ProcessedDir string
	Logger       *slog.Logger
	// Sink is called with every result, one at a time.
	Sink func(Result)
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}

func (r *Runner) workers() int {
	if r.Workers <= 0 {
		return runtime.NumCPU()
	}
	return r.Workers
}

// Run processes every supported image currently in dir and returns the results
// ordered by file name.
func (r *Runner) Run(ctx context.Context, dir string) ([]Result, error) {
	files, err := ListImageFiles(dir)
	if err != nil {
		return nil, err
	}
	r.logger().Info("scanning", "dir", dir, "files", len(files), "workers", r.workers())

	names := make(chan string)
	go func() {
		defer close(names)
		for _, f := range files {
			select {
			case names <- f:
			case <-ctx.Done():
				return
			}
		}
	}()

	results := r.process(ctx, dir, names, true)
	sort.Slice(results, func(i, j int) bool { return results[i].File < results[j].File })
	return results, ctx.Err()
}

// Watch processes images as they are created in dir until ctx is cancelled.
// A file is picked up once it has stopped changing for a short while.
func (r *Runner) Watch(ctx context.Context, dir string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	r.logger().Info("watching (debounced)", "dir", dir)

	names := make(chan string, 256)
	go r.debounce(ctx, w, names)
	r.process(ctx, dir, names, false)
	return nil
}

func (r *Runner) debounce(ctx context.Context, w *fsnotify.Watcher, names chan<- string) {
	defer close(names)
	pending := map[string]time.Time{}
	ticker := time.NewTicker(debounceTick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			name := filepath.Base(ev.Name)
			if !IsSupportedExt(name) {
				continue
			}
			pending[name] = time.Now()
		case <-ticker.C:
			now := time.Now()
			for name, t := range pending {
				if now.Sub(t) < settleDelay {
					continue
				}
				delete(pending, name)
				select {
				case names <- name:
				case <-ctx.Done():
					return
				}
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			r.logger().Warn("watch error", "error", err)
		}
	}
}

// process fans names out to the worker pool until names is closed. Sink calls
// happen on the calling goroutine.
func (r *Runner) process(ctx context.Context, dir string, names <-chan string, collect bool) []Result {
	out := make(chan Result)
	var wg sync.WaitGroup
	for i := 0; i < r.workers(); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range names {
				if ctx.Err() != nil {
					continue
				}
				out <- r.processFile(ctx, dir, name)
			}
		}()
	}
	go func() {
		wg.Wait()
		close(out)
	}()

	var results []Result
	for res := range out {
		if r.Sink != nil {
			r.Sink(res)
		}
		if collect {
			results = append(results, res)
		}
	}
	return results
}

func (r *Runner) processFile(ctx context.Context, dir, name string) Result {
	path := filepath.Join(dir, name)
	res := Result{File: name, NeedsReview: true}

	ext, err := r.Extractor.ExtractFile(path)
	if err != nil {
		r.logger().Warn("extraction failed", "file", name, "error", err)
		res.Err = err
		return res
	}
	res.Extraction = ext

	if ext.CourseName != nil && r.Catalog != nil && r.Resolver != nil {
		catalog, err := r.Catalog.ListCourses(ctx)
		if err != nil {
			r.logger().Warn("course catalog unavailable", "file", name, "error", err)
		} else {
			m := r.Resolver.Resolve(*ext.CourseName, catalog)
			res.Match = &m
		}
	}
	res.NeedsReview = models.NeedsReview(ext, res.Match, r.ReviewConfidence)

	r.logger().Debug("processed", "file", name, "success", ext.Success, "confidence", ext.Confidence, "errors", len(ext.Errors))
	if r.ProcessedDir != "" {
		if err := moveToProcessed(path, filepath.Join(r.ProcessedDir, name)); err != nil {
			r.logger().Warn("move to processed failed", "file", name, "error", err)
		}
	}
	return res
}

// ListImageFiles returns the supported image names in dir, sorted.
func ListImageFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !IsSupportedExt(e.Name()) {
			continue
		}
		out = append(out, e.Name())
	}
	sort.Strings(out)
	return out, nil
}

// IsSupportedExt reports whether name looks like an image the pipeline can decode.
func IsSupportedExt(name string) bool {
	// debug dumps of prepared images
	if strings.Contains(name, ".prepared.") {
		return false
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp", ".tif", ".tiff":
		return true
	}
	return false
}

// moveToProcessed renames src to dst, copying across filesystems when needed.
func moveToProcessed(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	return copyRemove(src, dst)
}

func copyRemove(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}

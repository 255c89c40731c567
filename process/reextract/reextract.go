// Package reextract runs extraction again for stored uploads that still need
// review, typically after the recognizer or the catalog improved.
package reextract

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"scorekeeper/models"
	"scorekeeper/pkg/coursematch"
	"scorekeeper/pkg/scorecard"
)

// Store is the part of store.Store the updater needs.
type Store interface {
	ListCourses(ctx context.Context) ([]coursematch.Course, error)
	ListUploads(ctx context.Context, reviewOnly bool, limit int) ([]models.ScorecardUpload, error)
	SaveUpload(ctx context.Context, up *models.ScorecardUpload) error
}

// Updater re-extracts uploads flagged for review.
type Updater struct {
	Store            Store
	Extractor        *scorecard.Extractor
	Resolver         *coursematch.Resolver
	ReviewConfidence float64
	// Dry only prints proposed changes.
	Dry    bool
	Out    io.Writer
	Logger *slog.Logger
}

// Stats counts what Run did.
type Stats struct {
	Checked int
	Updated int
	Skipped int
}

// Run re-extracts up to limit uploads needing review. A record is replaced only
// when the new extraction is more confident than the stored one.
func (u *Updater) Run(ctx context.Context, limit int) (Stats, error) {
	logger := u.Logger
	if logger == nil {
		logger = slog.Default()
	}
	out := u.Out
	if out == nil {
		out = io.Discard
	}

	ups, err := u.Store.ListUploads(ctx, true, limit)
	if err != nil {
		return Stats{}, err
	}
	var catalog []coursematch.Course
	if u.Resolver != nil {
		if catalog, err = u.Store.ListCourses(ctx); err != nil {
			return Stats{}, err
		}
	}

	var st Stats
	for i := range ups {
		if ctx.Err() != nil {
			return st, ctx.Err()
		}
		old := &ups[i]
		st.Checked++

		ext, err := u.Extractor.ExtractFile(filepath.FromSlash(old.StorePath))
		if err != nil {
			logger.Warn("re-extract failed", "id", old.PublicID, "path", old.StorePath, "error", err)
			st.Skipped++
			continue
		}
		if ext.Confidence <= old.Confidence {
			logger.Debug("re-extract skipped", "id", old.PublicID, "old", old.Confidence, "new", ext.Confidence)
			st.Skipped++
			continue
		}

		var match *coursematch.Result
		if ext.CourseName != nil && u.Resolver != nil {
			m := u.Resolver.Resolve(*ext.CourseName, catalog)
			match = &m
		}
		next := models.NewScorecardUpload(old.FileName, old.StorePath, old.ContentType, ext, match, u.ReviewConfidence)
		next.ID = old.ID
		next.PublicID = old.PublicID
		next.CreatedAt = old.CreatedAt

		if u.Dry {
			fmt.Fprintf(out, "DRY: would update id=%s file=%s confidence %.2f -> %.2f needs_review=%v\n",
				old.PublicID, old.FileName, old.Confidence, next.Confidence, next.NeedsReview)
			st.Updated++
			continue
		}
		if err := u.Store.SaveUpload(ctx, next); err != nil {
			logger.Error("failed update upload", "id", old.PublicID, "error", err)
			st.Skipped++
			continue
		}
		fmt.Fprintf(out, "updated id=%s file=%s confidence %.2f -> %.2f needs_review=%v\n",
			old.PublicID, old.FileName, old.Confidence, next.Confidence, next.NeedsReview)
		st.Updated++
	}
	return st, nil
}

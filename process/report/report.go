// Package report prints stored scorecard uploads that still need a person to look at them.
package report

import (
	"context"
	"fmt"
	"io"
	"strings"

	"scorekeeper/models"
)

// Lister is the part of the store the report reads from.
type Lister interface {
	ListUploads(ctx context.Context, reviewOnly bool, limit int) ([]models.ScorecardUpload, error)
}

// Options controls what Run prints.
type Options struct {
	Limit int
	// All lists every upload instead of only those needing review.
	All bool
	// LowConfidence is the threshold counted in the summary.
	LowConfidence float64
}

// Summary holds the counts printed after the rows.
type Summary struct {
	Total         int
	Failed        int
	LowConfidence int
}

// Run writes one line per upload (id|file|confidence|course|player|errors)
// followed by a summary line, and returns the summary.
func Run(ctx context.Context, l Lister, w io.Writer, opts Options) (Summary, error) {
	ups, err := l.ListUploads(ctx, !opts.All, opts.Limit)
	if err != nil {
		return Summary{}, fmt.Errorf("query failed: %w", err)
	}

	var s Summary
	for _, up := range ups {
		s.Total++
		if up.Failed {
			s.Failed++
		}
		if up.Confidence < opts.LowConfidence {
			s.LowConfidence++
		}
		fmt.Fprintf(w, "%s|%s|%.2f|%s|%s|%s\n",
			up.PublicID, up.FileName, up.Confidence,
			orDash(up.CourseName), orDash(up.PlayerUsername), strings.Join(up.Errors, "; "))
	}

	scope := "needing review"
	if opts.All {
		scope = "total"
	}
	fmt.Fprintf(w, "records %s=%d failed=%d low_confidence=%d\n", scope, s.Total, s.Failed, s.LowConfidence)
	return s, nil
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

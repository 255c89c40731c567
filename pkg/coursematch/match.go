// Package coursematch resolves an OCR'd course name to a catalog entry by fuzzy
// string similarity.
package coursematch

import (
	"sort"
	"strings"
)

// DefaultThreshold is the minimum score for an automatic match.
const DefaultThreshold = 80

// MaxSuggestions caps the ranked candidate list.
const MaxSuggestions = 5

// Course is one entry of the known course catalog.
type Course struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Candidate is a catalog course with its similarity to the extracted name.
type Candidate struct {
	CourseID   string `json:"course_id"`
	CourseName string `json:"course_name"`
	Score      int    `json:"score"`
}

// Result holds the best match, if any cleared the threshold, and the top candidates.
type Result struct {
	MatchedCourseID *string     `json:"matched_course_id"`
	BestScore       int         `json:"best_score"`
	Suggestions     []Candidate `json:"suggestions"`
}

// Resolver matches names against a catalog.
type Resolver struct {
	Threshold int
}

// NewResolver returns a Resolver. A threshold outside (0, 100] falls back to DefaultThreshold.
func NewResolver(threshold int) *Resolver {
	if threshold <= 0 || threshold > 100 {
		threshold = DefaultThreshold
	}
	return &Resolver{Threshold: threshold}
}

// FindMatchingCourse resolves name with the default threshold.
func FindMatchingCourse(name string, catalog []Course) Result {
	return NewResolver(DefaultThreshold).Resolve(name, catalog)
}

// Resolve scores every catalog course against name and ranks them. Equal scores
// keep catalog order.
func (r *Resolver) Resolve(name string, catalog []Course) Result {
	if strings.TrimSpace(name) == "" || len(catalog) == 0 {
		return Result{Suggestions: []Candidate{}}
	}

	scored := make([]Candidate, len(catalog))
	for i, c := range catalog {
		scored[i] = Candidate{CourseID: c.ID, CourseName: c.Name, Score: Score(name, c.Name)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	top := scored
	if len(top) > MaxSuggestions {
		top = top[:MaxSuggestions]
	}
	res := Result{
		BestScore:   top[0].Score,
		Suggestions: append([]Candidate(nil), top...),
	}
	if res.BestScore >= r.Threshold {
		id := top[0].CourseID
		res.MatchedCourseID = &id
	}
	return res
}

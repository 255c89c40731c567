package coursematch

import (
	"math"
	"strings"

	"github.com/agext/levenshtein"
	"golang.org/x/text/cases"
)

// indelParams scores edits as insertions and deletions only: a substitution
// costs a delete plus an insert, so Similarity is 1 - indel/(len(a)+len(b)).
var indelParams = levenshtein.NewParams().SubCost(2)

// normalize case-folds s and collapses its whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(cases.Fold().String(s)), " ")
}

// ratio is the whole-string similarity of a and b on a 0-100 scale.
func ratio(a, b string) float64 {
	if a == "" && b == "" {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}
	return levenshtein.Similarity(a, b, indelParams) * 100
}

// partialRatio is the best ratio of the shorter string against every window of
// the same length in the longer one.
func partialRatio(a, b string) float64 {
	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 {
		return 0
	}
	s := string(short)
	best := 0.0
	for i := 0; i+len(short) <= len(long); i++ {
		if r := ratio(s, string(long[i:i+len(short)])); r > best {
			best = r
			if best == 100 {
				break
			}
		}
	}
	return best
}

// Score is the 0-100 fuzzy match score of two names: the better of the
// whole-string and best-substring similarity, ignoring case.
func Score(a, b string) int {
	a, b = normalize(a), normalize(b)
	return int(math.Round(math.Max(ratio(a, b), partialRatio(a, b))))
}

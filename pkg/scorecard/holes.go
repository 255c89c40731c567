package scorecard

import (
	"image"
	"regexp"
	"strconv"
	"strings"
)

// holeHeaderRE matches the "1 2 3 ... 18" hole index row.
var holeHeaderRE = func() *regexp.Regexp {
	parts := make([]string, HoleCount)
	for i := range parts {
		parts[i] = strconv.Itoa(i + 1)
	}
	return regexp.MustCompile(`\b` + strings.Join(parts, `\s+`) + `\b`)
}()

// ExtractHoleScores recovers the eighteen per-hole strokes.
//
// Strategies run from most to least trusted: the labelled SCORE row, the
// numbers following the hole index header, and finally any run of eighteen
// small numbers with a plausible round total. The last one can lock onto
// unrelated numerals and is kept for recall; its incomplete runs face the same
// total check, scaled to their length.
//
// If only an incomplete list turns up it is returned with its confidence
// halved so a correction form can be pre-filled. img is accepted so that
// layout-aware strategies can be added; none use it today.
func ExtractHoleScores(text string, img image.Image) FieldResult[[]int] {
	_ = img
	var partial FieldResult[[]int]
	keepPartial := func(nums []int, conf float64) {
		if !partial.Found && len(nums) > 0 && len(nums) < HoleCount {
			partial = found(nums, conf*PartialScorePenalty)
		}
	}

	if nums, ok := scoreRowNumbers(text); ok {
		switch {
		case len(nums) == HoleCount:
			return found(nums, ConfScoresExact)
		case len(nums) > HoleCount && len(nums) <= nearExactMax:
			return found(nums[:HoleCount], ConfScoresNearExact)
		case len(nums) >= nearExactMin && len(nums) < HoleCount:
			keepPartial(nums, ConfScoresNearExact)
		default:
			keepPartial(nums, ConfScoresExact)
		}
	}

	if loc := holeHeaderRE.FindStringIndex(text); loc != nil {
		end := loc[1] + headerLookahead
		if end > len(text) {
			end = len(text)
		}
		nums := smallNumbers(text[loc[1]:end], MinHoleScore, MaxHoleScore)
		if len(nums) >= HoleCount {
			return found(nums[:HoleCount], ConfScoresHeaderRun)
		}
		keepPartial(nums, ConfScoresHeaderRun)
	}

	all := smallNumbers(text, MinHoleScore, windowMaxHole)
	for i := 0; i+HoleCount <= len(all); i++ {
		window := all[i : i+HoleCount]
		if plausibleRun(window) {
			return found(append([]int(nil), window...), ConfScoresWindow)
		}
	}
	if plausibleRun(all) {
		keepPartial(all, ConfScoresWindow)
	}

	if partial.Found {
		return partial
	}
	return missing[[]int]()
}

// plausibleRun reports whether nums averages out to a believable round: the
// total must fall in [windowMinSum, windowMaxSum] scaled to len(nums) holes.
// A short run that could never reach a plausible total is rejected just like a
// full one.
func plausibleRun(nums []int) bool {
	n := len(nums)
	if n == 0 {
		return false
	}
	s := sum(nums) * HoleCount
	return s >= windowMinSum*n && s <= windowMaxSum*n
}

// scoreRowNumbers returns the plausible strokes on the first SCORE line and the
// three lines after it.
func scoreRowNumbers(text string) ([]int, bool) {
	ls := lines(text)
	for i, line := range ls {
		if !strings.Contains(strings.ToUpper(line), "SCORE") {
			continue
		}
		end := i + 1 + scoreRowExtraLines
		if end > len(ls) {
			end = len(ls)
		}
		joined := strings.Join(ls[i:end], " ")
		return smallNumbers(joined, MinHoleScore, MaxHoleScore), true
	}
	return nil, false
}

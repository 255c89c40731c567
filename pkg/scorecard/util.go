package scorecard

import (
	"regexp"
	"strconv"
	"strings"
)

var smallNumberRE = regexp.MustCompile(`\b\d{1,2}\b`)

// snippet returns a shortened version of text for logging.
func snippet(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "…"
}

// lines splits recognized text into trimmed lines, blank lines included.
func lines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	raw := strings.Split(text, "\n")
	out := make([]string, len(raw))
	for i, l := range raw {
		out[i] = strings.TrimSpace(l)
	}
	return out
}

// collapseSpaces joins the fields of s with single spaces.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// smallNumbers returns every standalone 1-2 digit number in s within [lo, hi].
func smallNumbers(s string, lo, hi int) []int {
	var out []int
	for _, m := range smallNumberRE.FindAllString(s, -1) {
		n, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		if n >= lo && n <= hi {
			out = append(out, n)
		}
	}
	return out
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}

package scorecard

import (
	"regexp"
	"strings"
)

var (
	// UI text that shares the top of the card with the course title.
	chromeRE       = regexp.MustCompile(`(?i)\b(settings|tutorial|resume game|main menu|start game|options|leaderboard|walkabout|mini golf|score|total|par|hole)\b`)
	coursePrefixRE = regexp.MustCompile(`(?i)^\s*(?:mode:|record:|full\s*\d+\b)\s*`)
	nonLetterRE    = regexp.MustCompile(`[^A-Za-z ]+`)
	allCapsLineRE  = regexp.MustCompile(`^[A-Z][A-Z ]{4,28}[A-Z]$`)
)

// courseFragments are words that only show up in course titles.
var courseFragments = []string{
	"GARDENS", "GARDEN", "TRAP", "BLOSSOM", "COVE", "VALLEY", "STATION",
	"TEMPLE", "LAIR", "TOWN", "LAGOON", "ISLAND", "ATLANTIS", "BABYLON",
	"SHANGRI", "ALFHEIM", "CANYON", "FOREST", "CASTLE", "LABYRINTH",
	"ARCHIPELAGO", "OLYMPUS", "WONDERLAND", "BONANZA", "HIDEOUT", "LEAGUES",
}

// knownCourseRE matches full course names anywhere in the text. Group 1 is the name.
var knownCourseRE = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(mars\s+gardens)\b`),
	regexp.MustCompile(`(?i)\b(tourist\s+trap)\b`),
	regexp.MustCompile(`(?i)\b(cherry\s+blossom)\b`),
	regexp.MustCompile(`(?i)\b(shangri[\s-]?la)\b`),
	regexp.MustCompile(`(?i)\b(gardens\s+of\s+babylon)\b`),
	regexp.MustCompile(`(?i)\b(atlantis)\b`),
	regexp.MustCompile(`(?i)\b(alfheim)\b`),
	regexp.MustCompile(`(?i)\b(archipelago)\b`),
	regexp.MustCompile(`(?i)\b(labyrinth)\b`),
	regexp.MustCompile(`(?i)\b(bogey'?s\s+bonanza)\b`),
	regexp.MustCompile(`(?i)\b(tiki\s+a\s+coco)\b`),
	regexp.MustCompile(`(?i)\b(el\s+guerrero'?s\s+hideout)\b`),
	regexp.MustCompile(`(?i)\b(20,?000\s+leagues)\b`),
	regexp.MustCompile(`(?i)\b(widows?\s+walk)\b`),
	regexp.MustCompile(`(?i)\b(olympus)\b`),
	regexp.MustCompile(`(?i)\b(quixote\s+valley)\b`),
	regexp.MustCompile(`(?i)\b(alice'?s\s+adventures\s+in\s+wonderland)\b`),
}

// ExtractCourseName finds the course title near the top of the card.
func ExtractCourseName(text string) FieldResult[string] {
	top := lines(text)
	if len(top) > CourseScanLines {
		top = top[:CourseScanLines]
	}
	for _, line := range top {
		if line == "" {
			continue
		}
		if chromeRE.MatchString(line) {
			continue
		}
		line = strings.TrimSpace(coursePrefixRE.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}

		if isUpper(line) && len(line) > 5 && hasCourseFragment(line) {
			name := collapseSpaces(nonLetterRE.ReplaceAllString(line, ""))
			if name != "" {
				return found(name, ConfCourseKnownFragment)
			}
		}
		if allCapsLineRE.MatchString(line) {
			return found(line, ConfCourseAllCaps)
		}
	}

	for _, re := range knownCourseRE {
		if m := re.FindStringSubmatch(text); m != nil {
			return found(collapseSpaces(strings.ToUpper(m[1])), ConfCourseKnownName)
		}
	}
	return missing[string]()
}

// isUpper reports whether s has letters and none of them are lowercase.
func isUpper(s string) bool {
	return s == strings.ToUpper(s) && s != strings.ToLower(s)
}

func hasCourseFragment(line string) bool {
	for _, f := range courseFragments {
		if strings.Contains(line, f) {
			return true
		}
	}
	return false
}

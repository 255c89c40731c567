package scorecard

import (
	"regexp"
	"strings"
)

var (
	labelledPlayerRE = regexp.MustCompile(`(?i)(?:player\s*name|name)\s*[:\-]?\s*([A-Za-z0-9_]{3,21})`)
	handleShapeRE    = regexp.MustCompile(`\b([A-Z][a-z0-9]+_[A-Za-z0-9_]+)\b`)
	handleTokenRE    = regexp.MustCompile(`\b[A-Za-z0-9_]{4,21}\b`)
)

// playerDenylist holds UI words that OCR tends to put where a handle would be.
var playerDenylist = map[string]bool{
	"start":     true,
	"current":   true,
	"version":   true,
	"active":    true,
	"modifiers": true,
	"mode":      true,
	"full":      true,
	"record":    true,
}

func isDenylisted(token string) bool {
	return playerDenylist[strings.ToLower(token)]
}

// ExtractPlayerUsername looks for the player's handle, preferring an explicit label.
func ExtractPlayerUsername(text string) FieldResult[string] {
	for _, m := range labelledPlayerRE.FindAllStringSubmatch(text, -1) {
		if !isDenylisted(m[1]) {
			return found(m[1], ConfPlayerLabelled)
		}
	}

	for _, m := range handleShapeRE.FindAllStringSubmatch(text, -1) {
		if len(m[1]) <= 21 && !isDenylisted(m[1]) {
			return found(m[1], ConfPlayerShape)
		}
	}

	// handles render near the bottom of the card
	ls := lines(text)
	for _, line := range ls[len(ls)/2:] {
		for _, tok := range handleTokenRE.FindAllString(line, -1) {
			if strings.Contains(tok, "_") && !isDenylisted(tok) {
				return found(tok, ConfPlayerLowerHalf)
			}
		}
	}
	return missing[string]()
}

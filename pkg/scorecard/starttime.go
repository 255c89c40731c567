package scorecard

import (
	"regexp"
	"strings"
	"time"
)

// ISOLayout is the UTC form start times are reported in.
const ISOLayout = "2006-01-02T15:04:05Z"

// Date/time shapes from strictest to loosest. Groups: date, time, optional AM/PM.
var startTimeRE = []*regexp.Regexp{
	regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{4})\s+(\d{1,2}:\d{2}:\d{2})\s*([AaPp][Mm])\b`),
	regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{4})\s+(\d{1,2}:\d{2}:\d{2})`),
	regexp.MustCompile(`(\d{4}-\d{2}-\d{2})[ T](\d{2}:\d{2}:\d{2})`),
}

// startTimeLayouts: US 12h, US 24h, day-first 12h, day-first 24h, ISO.
var startTimeLayouts = []string{
	"1/2/2006 3:04:05 PM",
	"1/2/2006 15:04:05",
	"2/1/2006 3:04:05 PM",
	"2/1/2006 15:04:05",
	"2006-01-02 15:04:05",
}

// ExtractStartTime finds the round's start timestamp and returns it as UTC ISO-8601.
// Timestamps without a zone are taken as UTC.
func ExtractStartTime(text string) FieldResult[string] {
	for _, re := range startTimeRE {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		candidate := m[1] + " " + m[2]
		if len(m) > 3 && m[3] != "" {
			candidate += " " + strings.ToUpper(m[3])
		}
		if t, ok := parseStartTime(candidate); ok {
			return found(t.UTC().Format(ISOLayout), ConfStartTime)
		}
	}
	return missing[string]()
}

func parseStartTime(s string) (time.Time, bool) {
	for _, layout := range startTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

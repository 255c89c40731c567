package scorecard

import (
	"strings"
	"testing"
)

const sampleCard = `Walkabout Mini Golf
MARS GARDENS
Mode: Full 18
12/30/2025 3:15:28 AM
HOLE 1 2 3 4 5 6 7 8 9 10 11 12 13 14 15 16 17 18
PAR 2 3 3 2 4 3 2 3 2 3 3 2 4 3 2 3 2 3
SCORE 2 3 2 2 4 3 3 3 2 3 2 2 3 3 2 4 2 3
PlayerName: Space_Cadet
`

func TestExtractCourseName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		conf float64
	}{
		{"known fragment", sampleCard, "MARS GARDENS", ConfCourseKnownFragment},
		{"noise prefix stripped", "Record: TOURIST TRAP\n", "TOURIST TRAP", ConfCourseKnownFragment},
		{"punctuation stripped", "EL GUERRERO'S HIDEOUT!\n", "EL GUERREROS HIDEOUT", ConfCourseKnownFragment},
		{"ui chrome skipped", "SETTINGS\nRESUME GAME\nSHANGRI LA\n", "SHANGRI LA", ConfCourseKnownFragment},
		{"generic all caps", "\n\nSUNSET RIDGE\nhole 1\n", "SUNSET RIDGE", ConfCourseAllCaps},
		{"known name anywhere", "welcome to cherry   blossom today", "CHERRY BLOSSOM", ConfCourseKnownName},
		{"past scan window", strings.Repeat("x\n", 20) + "mars gardens\n", "MARS GARDENS", ConfCourseKnownName},
		{"title starting with full", "FULLERTON VALLEY\n", "FULLERTON VALLEY", ConfCourseKnownFragment},
		{"full hole count prefix", "Full 18 MARS GARDENS\n", "MARS GARDENS", ConfCourseKnownFragment},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractCourseName(tt.text)
			if !got.Found || got.Value != tt.want || got.Confidence != tt.conf {
				t.Fatalf("got %+v want %q@%.2f", got, tt.want, tt.conf)
			}
		})
	}
}

func TestExtractCourseNameMissing(t *testing.T) {
	blankPadded := strings.Repeat("\n", 30) + "SUNSET RIDGE\n"
	for _, text := range []string{"", "hello world\n123", "Settings\nmain menu", blankPadded} {
		got := ExtractCourseName(text)
		if got.Found || got.Confidence != 0 || got.Ptr() != nil {
			t.Fatalf("text %q: expected miss, got %+v", text, got)
		}
	}
}

func TestExtractPlayerUsername(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		conf float64
	}{
		{"labelled", sampleCard, "Space_Cadet", ConfPlayerLabelled},
		{"label with space", "Player Name - Hole_In_Wan", "Hole_In_Wan", ConfPlayerLabelled},
		{"denylisted label skipped", "Player Name: start\nName: Real_Handle", "Real_Handle", ConfPlayerLabelled},
		{"handle shape", "some text Lucky_Putter here", "Lucky_Putter", ConfPlayerShape},
		{"lower half", "TOP LINE\nanother\nx\nputt_master99", "putt_master99", ConfPlayerLowerHalf},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractPlayerUsername(tt.text)
			if !got.Found || got.Value != tt.want || got.Confidence != tt.conf {
				t.Fatalf("got %+v want %q@%.2f", got, tt.want, tt.conf)
			}
		})
	}
}

func TestExtractPlayerUsernameMissing(t *testing.T) {
	tests := map[string]string{
		"empty":                 "",
		"only top half":         "putt_master\na\nb\nc",
		"denylisted everywhere": "Name: record\nmode\nfull",
	}
	for name, text := range tests {
		t.Run(name, func(t *testing.T) {
			if got := ExtractPlayerUsername(text); got.Found || got.Confidence != 0 {
				t.Fatalf("expected miss, got %+v", got)
			}
		})
	}
}

func TestExtractStartTime(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"12/30/2025 3:15:28 AM", "2025-12-30T03:15:28Z"},
		{"Started 1/5/2026 11:02:03 pm", "2026-01-05T23:02:03Z"},
		{"12/30/2025 15:15:28", "2025-12-30T15:15:28Z"},
		{"30/12/2025 15:15:28", "2025-12-30T15:15:28Z"},
		{"at 2025-12-30 03:15:28", "2025-12-30T03:15:28Z"},
		{sampleCard, "2025-12-30T03:15:28Z"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := ExtractStartTime(tt.text)
			if !got.Found || got.Value != tt.want || got.Confidence != ConfStartTime {
				t.Fatalf("got %+v want %q", got, tt.want)
			}
		})
	}
}

func TestExtractStartTimeMissing(t *testing.T) {
	for _, text := range []string{"", "no time here", "99/99/2025 3:15:28 AM"} {
		if got := ExtractStartTime(text); got.Found || got.Confidence != 0 {
			t.Fatalf("text %q: expected miss, got %+v", text, got)
		}
	}
}

package scorecard

import (
	"math"
	"reflect"
	"testing"
)

func TestAggregateNothingFound(t *testing.T) {
	ext := ExtractFromText("lorem ipsum dolor", nil)
	if ext.Success || ext.Confidence != 0 {
		t.Fatalf("expected failed zero-confidence extraction, got %+v", ext)
	}
	if ext.CourseName != nil || ext.PlayerUsername != nil || ext.StartTime != nil || ext.HoleScores != nil || ext.TotalScore != nil {
		t.Fatalf("expected no fields, got %+v", ext)
	}
	want := []string{ErrMsgCourseMissing, ErrMsgPlayerMissing, ErrMsgStartMissing, ErrMsgScoresMissing}
	if !reflect.DeepEqual(ext.Errors, want) {
		t.Fatalf("errors = %q want %q", ext.Errors, want)
	}
}

func TestAggregateComplete(t *testing.T) {
	ext := ExtractFromText(sampleCard, nil)
	if !ext.Success || len(ext.Errors) != 0 {
		t.Fatalf("expected success, errors=%q", ext.Errors)
	}
	if *ext.CourseName != "MARS GARDENS" || *ext.PlayerUsername != "Space_Cadet" || *ext.StartTime != "2025-12-30T03:15:28Z" {
		t.Fatalf("unexpected fields %+v", ext)
	}
	if ext.TotalScore == nil || *ext.TotalScore != 48 || *ext.TotalScore != sum(ext.HoleScores) {
		t.Fatalf("total = %v", ext.TotalScore)
	}
	want := (ConfCourseKnownFragment + ConfPlayerLabelled + ConfStartTime + ConfScoresExact) / 4
	if math.Abs(ext.Confidence-want) > 1e-9 {
		t.Fatalf("confidence = %v want %v", ext.Confidence, want)
	}
	if ext.RawText != sampleCard {
		t.Fatalf("raw text not kept")
	}
}

func TestAggregateValidation(t *testing.T) {
	course := found("MARS GARDENS", 0.9)
	player := found("Space_Cadet", 0.9)
	start := found("2025-12-30T03:15:28Z", 0.9)

	t.Run("partial scores", func(t *testing.T) {
		scores := found([]int{3, 2, 4}, 0.25)
		ext := Aggregate(course, player, start, scores, "")
		if ext.Success || ext.TotalScore != nil {
			t.Fatalf("partial list must fail without total: %+v", ext)
		}
		if len(ext.HoleScores) != 3 {
			t.Fatalf("partial scores should be kept, got %v", ext.HoleScores)
		}
		if !reflect.DeepEqual(ext.Errors, []string{"expected 18 hole scores, found 3"}) {
			t.Fatalf("errors = %q", ext.Errors)
		}
	})

	t.Run("total out of range", func(t *testing.T) {
		high := make([]int, HoleCount)
		for i := range high {
			high[i] = 15
		}
		ext := Aggregate(course, player, start, found(high, 0.95), "")
		if ext.Success || ext.TotalScore == nil || *ext.TotalScore != 270 {
			t.Fatalf("got %+v", ext)
		}
		if !reflect.DeepEqual(ext.Errors, []string{"total score 270 outside valid range [18, 180]"}) {
			t.Fatalf("errors = %q", ext.Errors)
		}
	})

	t.Run("missing fields excluded from mean", func(t *testing.T) {
		ext := Aggregate(course, missing[string](), missing[string](), missing[[]int](), "")
		if ext.Confidence != 0.9 {
			t.Fatalf("confidence = %v", ext.Confidence)
		}
		if len(ext.Errors) != 3 {
			t.Fatalf("errors = %q", ext.Errors)
		}
	})
}

func TestConfidenceBounds(t *testing.T) {
	for _, c := range [][]float64{{0, 0, 0, 0}, {1, 1, 1, 1}, {0.5, 0, 0, 0.95}, {2, 0, 0, 0}} {
		got := meanNonZero(c...)
		if got < 0 || got > 1 {
			t.Fatalf("mean of %v = %v out of range", c, got)
		}
	}
	if meanNonZero(0, 0, 0, 0) != 0 {
		t.Fatalf("all-zero confidences must give zero")
	}
}

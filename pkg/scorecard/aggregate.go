package scorecard

import "fmt"

// ScorecardExtraction is everything recovered from one scorecard image.
type ScorecardExtraction struct {
	Success         bool             `json:"success"`
	Confidence      float64          `json:"confidence"`
	CourseName      *string          `json:"course_name"`
	PlayerUsername  *string          `json:"player_username"`
	StartTime       *string          `json:"start_time"`
	HoleScores      []int            `json:"hole_scores"`
	TotalScore      *int             `json:"total_score"`
	Errors          []string         `json:"errors"`
	RawText         string           `json:"raw_text"`
	FieldConfidence FieldConfidences `json:"field_confidence"`
}

// FieldConfidences keeps the per-field confidences behind the overall score.
type FieldConfidences struct {
	CourseName     float64 `json:"course_name"`
	PlayerUsername float64 `json:"player_username"`
	StartTime      float64 `json:"start_time"`
	HoleScores     float64 `json:"hole_scores"`
}

// Validation messages.
const (
	ErrMsgCourseMissing = "course name not found"
	ErrMsgPlayerMissing = "player username not found"
	ErrMsgStartMissing  = "start time not found"
	ErrMsgScoresMissing = "hole scores not found"
)

// Aggregate combines the field results into one extraction and validates it.
// Every violated rule adds its own message; none stops the others.
func Aggregate(course, player, start FieldResult[string], scores FieldResult[[]int], rawText string) *ScorecardExtraction {
	ext := &ScorecardExtraction{
		CourseName:     course.Ptr(),
		PlayerUsername: player.Ptr(),
		StartTime:      start.Ptr(),
		Errors:         []string{},
		RawText:        rawText,
		FieldConfidence: FieldConfidences{
			CourseName:     course.Confidence,
			PlayerUsername: player.Confidence,
			StartTime:      start.Confidence,
			HoleScores:     scores.Confidence,
		},
	}
	if scores.Found {
		ext.HoleScores = append([]int(nil), scores.Value...)
		if len(ext.HoleScores) == HoleCount {
			total := sum(ext.HoleScores)
			ext.TotalScore = &total
		}
	}

	ext.Confidence = meanNonZero(course.Confidence, player.Confidence, start.Confidence, scores.Confidence)

	if ext.CourseName == nil {
		ext.Errors = append(ext.Errors, ErrMsgCourseMissing)
	}
	if ext.PlayerUsername == nil {
		ext.Errors = append(ext.Errors, ErrMsgPlayerMissing)
	}
	if ext.StartTime == nil {
		ext.Errors = append(ext.Errors, ErrMsgStartMissing)
	}
	if ext.HoleScores == nil {
		ext.Errors = append(ext.Errors, ErrMsgScoresMissing)
	} else if len(ext.HoleScores) != HoleCount {
		ext.Errors = append(ext.Errors, fmt.Sprintf("expected %d hole scores, found %d", HoleCount, len(ext.HoleScores)))
	}
	if ext.TotalScore != nil && (*ext.TotalScore < MinTotalScore || *ext.TotalScore > MaxTotalScore) {
		ext.Errors = append(ext.Errors, fmt.Sprintf("total score %d outside valid range [%d, %d]", *ext.TotalScore, MinTotalScore, MaxTotalScore))
	}

	ext.Success = len(ext.Errors) == 0
	return ext
}

// Degraded is the result returned when no text could be recognized at all.
func Degraded(reason string) *ScorecardExtraction {
	return &ScorecardExtraction{
		Success: false,
		Errors:  []string{reason},
	}
}

// meanNonZero averages the confidences that are above zero. Missing fields do
// not pull the average down.
func meanNonZero(confs ...float64) float64 {
	var total float64
	n := 0
	for _, c := range confs {
		if c > 0 {
			total += c
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return clampConfidence(total / float64(n))
}

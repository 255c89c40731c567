package models

import (
	"time"

	"scorekeeper/pkg/coursematch"
	"scorekeeper/pkg/scorecard"

	"github.com/google/uuid"
)

// ScorecardUpload is a stored scorecard image with the values extracted from it.
// Records are kept even when extraction fails so a reviewer can enter the round by hand.
type ScorecardUpload struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	PublicID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"id"`
	FileName    string    `gorm:"size:255;not null" json:"file_name"`
	StorePath   string    `gorm:"column:store_path;size:512" json:"store_path"`
	ContentType string    `gorm:"size:128" json:"content_type"`

	Success        bool       `gorm:"index" json:"success"`
	Confidence     float64    `json:"confidence"`
	CourseName     *string    `gorm:"size:128" json:"course_name"`
	PlayerUsername *string    `gorm:"size:64" json:"player_username"`
	StartTime      *time.Time `gorm:"index" json:"start_time"`
	HoleScores     []int      `gorm:"serializer:json" json:"hole_scores"`
	TotalScore     *int       `json:"total_score"`
	Errors         []string   `gorm:"serializer:json" json:"errors"`
	RawText        string     `gorm:"type:text" json:"raw_text"`

	MatchedCourseID *string `gorm:"size:64;index" json:"matched_course_id"`
	MatchScore      int     `json:"match_score"`

	NeedsReview bool `gorm:"default:false;index" json:"needs_review"`
	// Failed marks uploads where nothing at all could be read.
	Failed       bool   `gorm:"default:false;index" json:"failed"`
	FailedReason string `gorm:"size:255" json:"failed_reason,omitempty"`
}

// NeedsReview reports whether a person should check the extraction before it is used.
// match is nil when course resolution was not attempted.
func NeedsReview(ext *scorecard.ScorecardExtraction, match *coursematch.Result, minConfidence float64) bool {
	if !ext.Success || ext.Confidence < minConfidence {
		return true
	}
	return match != nil && match.MatchedCourseID == nil
}

// NewScorecardUpload builds the record for one processed file.
func NewScorecardUpload(fileName, storePath, contentType string, ext *scorecard.ScorecardExtraction, match *coursematch.Result, minConfidence float64) *ScorecardUpload {
	up := &ScorecardUpload{
		PublicID:       uuid.New(),
		FileName:       fileName,
		StorePath:      storePath,
		ContentType:    contentType,
		Success:        ext.Success,
		Confidence:     ext.Confidence,
		CourseName:     ext.CourseName,
		PlayerUsername: ext.PlayerUsername,
		HoleScores:     ext.HoleScores,
		TotalScore:     ext.TotalScore,
		Errors:         ext.Errors,
		RawText:        ext.RawText,
		NeedsReview:    NeedsReview(ext, match, minConfidence),
	}
	if ext.StartTime != nil {
		if t, err := time.Parse(scorecard.ISOLayout, *ext.StartTime); err == nil {
			up.StartTime = &t
		}
	}
	if match != nil {
		up.MatchedCourseID = match.MatchedCourseID
		up.MatchScore = match.BestScore
	}
	if ext.Confidence == 0 {
		up.Failed = true
		if len(ext.Errors) > 0 {
			up.FailedReason = truncate(ext.Errors[0], 255)
		}
	}
	return up
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

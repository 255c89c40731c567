package scorecard

// Preprocessing tuning. Factors are relative to the original image (1.0 = unchanged).
const (
	BrightnessFactor  = 1.2
	ContrastFactor    = 2.5
	SharpnessFactor   = 2.0
	BinarizeThreshold = 150
)

// Field confidences, one per strategy of each cascade.
const (
	ConfCourseKnownFragment = 0.9
	ConfCourseAllCaps       = 0.8
	ConfCourseKnownName     = 0.85

	ConfPlayerLabelled  = 0.9
	ConfPlayerShape     = 0.85
	ConfPlayerLowerHalf = 0.7

	ConfStartTime = 0.9

	ConfScoresExact     = 0.95
	ConfScoresNearExact = 0.75
	ConfScoresHeaderRun = 0.7
	ConfScoresWindow    = 0.5
	PartialScorePenalty = 0.5
)

// Hole score domain.
const (
	HoleCount     = 18
	MinHoleScore  = 1
	MaxHoleScore  = 15
	MinTotalScore = 18
	MaxTotalScore = 180
)

const (
	scoreRowExtraLines = 3
	headerLookahead    = 200
	windowMaxHole      = 10
	windowMinSum       = 35
	windowMaxSum       = 120
	nearExactMin       = 16
	nearExactMax       = 20
)

// CourseScanLines is how many lines from the top, blank ones included, are searched for a course title.
const CourseScanLines = 15

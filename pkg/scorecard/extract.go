package scorecard

import (
	"bytes"
	"errors"
	"image"
	"log/slog"
)

// Extractor runs the full pipeline: prepare, recognize, extract, aggregate.
// It holds no per-call state and is safe for concurrent use when its
// Recognizer is.
type Extractor struct {
	recognizer Recognizer
	logger     *slog.Logger
}

// NewExtractor returns an Extractor using rec for text recognition.
func NewExtractor(rec Recognizer, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{recognizer: rec, logger: logger}
}

// ExtractFile runs the pipeline on the image at path. It only fails when the
// file cannot be read or decoded (ErrPreprocessingFailed).
func (e *Extractor) ExtractFile(path string) (*ScorecardExtraction, error) {
	img, err := DecodeFile(path)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("decoded scorecard", "file", path, "width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return e.ExtractImage(img), nil
}

// ExtractBytes is ExtractFile for an in-memory encoded image.
func (e *Extractor) ExtractBytes(data []byte) (*ScorecardExtraction, error) {
	img, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return e.ExtractImage(img), nil
}

// ExtractImage runs the pipeline on a decoded image. Recognition failures give
// a degraded result, never an error.
func (e *Extractor) ExtractImage(img image.Image) *ScorecardExtraction {
	prepared := Prepare(img)
	if e.recognizer == nil {
		e.logger.Warn("no text recognizer configured")
		return Degraded(ErrEngineUnavailable.Error())
	}
	text, err := e.recognizer.Recognize(prepared)
	if err != nil {
		e.logger.Warn("text recognition failed", "error", err)
		if errors.Is(err, ErrEngineUnavailable) {
			return Degraded(err.Error())
		}
		return Degraded("text recognition failed: " + err.Error())
	}
	e.logger.Debug("ocr raw", "text", snippet(text, 400))

	ext := ExtractFromText(text, prepared)
	e.logger.Debug("scorecard fields",
		"course", ext.FieldConfidence.CourseName,
		"player", ext.FieldConfidence.PlayerUsername,
		"start_time", ext.FieldConfidence.StartTime,
		"hole_scores", ext.FieldConfidence.HoleScores,
	)
	return ext
}

// ExtractFromText runs the four field extractors over recognized text and
// aggregates them. img may be nil.
func ExtractFromText(text string, img image.Image) *ScorecardExtraction {
	return Aggregate(
		ExtractCourseName(text),
		ExtractPlayerUsername(text),
		ExtractStartTime(text),
		ExtractHoleScores(text, img),
		text,
	)
}

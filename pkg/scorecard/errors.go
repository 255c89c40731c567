package scorecard

import "errors"

// ErrPreprocessingFailed is returned when the input image cannot be decoded or prepared.
var ErrPreprocessingFailed = errors.New("image preprocessing failed")

// ErrEngineUnavailable marks a recognition engine that is missing or broken.
// The pipeline converts it into a degraded extraction instead of returning it.
var ErrEngineUnavailable = errors.New("text recognition engine unavailable")

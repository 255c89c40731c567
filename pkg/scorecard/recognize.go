package scorecard

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"
)

// Recognizer turns a prepared image into raw text.
type Recognizer interface {
	Recognize(img *image.Gray) (string, error)
}

// TesseractRecognizer reads the whole card as a single uniform block of text.
// A new client is created per call so one recognizer can serve many goroutines.
type TesseractRecognizer struct {
	Language       string
	TessdataPrefix string
}

// NewTesseractRecognizer returns a recognizer for lang ("eng" when empty).
func NewTesseractRecognizer(lang, tessdataPrefix string) *TesseractRecognizer {
	if lang == "" {
		lang = "eng"
	}
	return &TesseractRecognizer{Language: lang, TessdataPrefix: tessdataPrefix}
}

func (r *TesseractRecognizer) Recognize(img *image.Gray) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode prepared image: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if r.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(r.TessdataPrefix); err != nil {
			return "", fmt.Errorf("%w: set tessdata path: %v", ErrEngineUnavailable, err)
		}
	}
	if err := client.SetLanguage(r.Language); err != nil {
		return "", fmt.Errorf("%w: set language: %v", ErrEngineUnavailable, err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return "", fmt.Errorf("%w: set page segmentation: %v", ErrEngineUnavailable, err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("%w: set image: %v", ErrEngineUnavailable, err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
	}
	return text, nil
}

// Version reports the linked tesseract version.
func (r *TesseractRecognizer) Version() string {
	client := gosseract.NewClient()
	defer client.Close()
	return client.Version()
}

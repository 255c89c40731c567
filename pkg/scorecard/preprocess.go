package scorecard

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// sharpenSigma is the blur radius of imaging.Sharpen's unsharp mask.
const sharpenSigma = 1.0

// Decode reads an encoded image and applies its EXIF orientation.
func Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrPreprocessingFailed, err)
	}
	return img, nil
}

// DecodeFile reads path and decodes it. Only undecodable content is reported as
// ErrPreprocessingFailed; a missing or unreadable file is a plain I/O error.
func DecodeFile(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Decode(bytes.NewReader(data))
}

// Prepare turns a screenshot or photo into a binarized grayscale image that the
// recognizer reads well. The input is never modified.
func Prepare(img image.Image) *image.Gray {
	// drop alpha, keep colour
	rgb := imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		c.A = 255
		return c
	})
	bright := imaging.AdjustFunc(rgb, func(c color.NRGBA) color.NRGBA {
		c.R = scaleChannel(c.R, BrightnessFactor)
		c.G = scaleChannel(c.G, BrightnessFactor)
		c.B = scaleChannel(c.B, BrightnessFactor)
		return c
	})
	contrasted := imaging.AdjustContrast(bright, contrastPercentage(ContrastFactor))
	sharp := sharpen(contrasted, SharpnessFactor)
	gray := imaging.Grayscale(sharp)
	return binarize(gray, BinarizeThreshold)
}

// contrastPercentage maps a contrast multiplier onto imaging's (-100, 100) scale,
// where p > 0 stretches around mid-gray by 1/(1-p/100).
func contrastPercentage(factor float64) float64 {
	if factor <= 0 {
		return -100
	}
	if factor <= 1 {
		return (factor - 1) * 100
	}
	return 100 * (1 - 1/factor)
}

// sharpen enhances edges by factor. imaging.Sharpen is exactly factor 2
// (2*orig - blurred); factors between 1 and 2 blend it back over the original
// and anything above 2 is capped there.
func sharpen(img *image.NRGBA, factor float64) *image.NRGBA {
	if factor <= 1 {
		return img
	}
	sharp := imaging.Sharpen(img, sharpenSigma)
	if factor >= 2 {
		return sharp
	}
	return imaging.Overlay(img, sharp, image.Pt(0, 0), factor-1)
}

// binarize maps every pixel darker than threshold to black and the rest to white.
func binarize(img *image.NRGBA, threshold uint8) *image.Gray {
	b := img.Bounds()
	out := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			var v uint8 = 255
			if img.NRGBAAt(x, y).R < threshold {
				v = 0
			}
			out.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return out
}

func scaleChannel(v uint8, factor float64) uint8 {
	return clampUint8(float64(v) * factor)
}

func clampUint8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

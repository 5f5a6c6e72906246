package encoder

import (
	"image"
)

// Encoder encodes an image to a specific format.
type Encoder interface {
	// Format returns the output format name ("jpeg", "png", "webp").
	Format() string

	// Encode converts the image to bytes at the given quality (0-100).
	// Lossless encoders ignore quality.
	Encode(img image.Image, quality int) ([]byte, error)

	// Available returns true if the encoder is ready to use.
	// Backends that depend on an external binary or cgo may not be.
	Available() bool

	// Name identifies the backend in logs ("stdlib", "cwebp", "libwebp").
	Name() string
}

func clampQuality(q int) int {
	if q < 0 {
		return 0
	}
	if q > 100 {
		return 100
	}
	return q
}

//go:build !cgo

package encoder

import (
	"errors"
	"image"
)

// LibWebPEncoder is unavailable without cgo; cwebp is the only WebP backend.
type LibWebPEncoder struct{}

func (e *LibWebPEncoder) Format() string  { return "webp" }
func (e *LibWebPEncoder) Name() string    { return "libwebp" }
func (e *LibWebPEncoder) Available() bool { return false }

func (e *LibWebPEncoder) Encode(image.Image, int) ([]byte, error) {
	return nil, errors.New("libwebp encoder requires a cgo build")
}

//go:build cgo

package encoder

import (
	"bytes"
	"image"

	"github.com/chai2010/webp"
)

// LibWebPEncoder encodes lossy WebP in-process through libwebp.
// Only available in cgo builds.
type LibWebPEncoder struct{}

func (e *LibWebPEncoder) Format() string  { return "webp" }
func (e *LibWebPEncoder) Name() string    { return "libwebp" }
func (e *LibWebPEncoder) Available() bool { return true }

func (e *LibWebPEncoder) Encode(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(128 * 1024)

	opts := &webp.Options{Lossless: false, Quality: float32(clampQuality(quality))}
	if err := webp.Encode(&buf, img, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

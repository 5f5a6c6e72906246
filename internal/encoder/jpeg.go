package encoder

import (
	"bytes"
	"image"
	"image/jpeg"
)

// JPEGEncoder encodes images to baseline JPEG using Go's standard library.
// The standard encoder always emits its fixed Huffman tables, so there is no
// separate optimize pass; quality is the only size control.
type JPEGEncoder struct{}

func (e *JPEGEncoder) Format() string  { return "jpeg" }
func (e *JPEGEncoder) Name() string    { return "stdlib" }
func (e *JPEGEncoder) Available() bool { return true }

func (e *JPEGEncoder) Encode(img image.Image, quality int) ([]byte, error) {
	q := clampQuality(quality)
	if q < 1 {
		q = 1 // image/jpeg's floor
	}

	var buf bytes.Buffer
	buf.Grow(256 * 1024) // pre-alloc 256KB, avoids repeated grow for typical photos

	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: q}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

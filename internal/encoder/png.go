package encoder

import (
	"bytes"
	"image"
	"image/png"
)

// PNGEncoder encodes images losslessly with the best zlib compression.
type PNGEncoder struct{}

func (e *PNGEncoder) Format() string  { return "png" }
func (e *PNGEncoder) Name() string    { return "stdlib" }
func (e *PNGEncoder) Available() bool { return true }

func (e *PNGEncoder) Encode(img image.Image, _ int) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(512 * 1024) // pre-alloc 512KB

	enc := &png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

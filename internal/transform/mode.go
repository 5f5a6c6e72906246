package transform

import (
	"image"
)

// ColorMode is the effective pixel encoding of a decoded image.
type ColorMode int

const (
	ModeRGB       ColorMode = iota // opaque truecolor, including YCbCr JPEG data
	ModeRGBA                       // truecolor with transparency
	ModeGray                       // luminance only
	ModeGrayAlpha                  // luminance or alpha mask with transparency
	ModePaletted                   // palette-indexed
	ModeCMYK
)

func (m ColorMode) String() string {
	switch m {
	case ModeRGB:
		return "RGB"
	case ModeRGBA:
		return "RGBA"
	case ModeGray:
		return "L"
	case ModeGrayAlpha:
		return "LA"
	case ModePaletted:
		return "P"
	case ModeCMYK:
		return "CMYK"
	default:
		return "unknown"
	}
}

// ModeOf classifies img. Truecolor buffers are RGB when every pixel is
// opaque and RGBA otherwise, because the standard decoders use RGBA
// buffers for opaque PNGs as well.
func ModeOf(img image.Image) ColorMode {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return ModeGray
	case *image.Alpha, *image.Alpha16:
		return ModeGrayAlpha
	case *image.Paletted:
		return ModePaletted
	case *image.CMYK:
		return ModeCMYK
	case *image.YCbCr:
		return ModeRGB
	}
	if IsOpaque(img) {
		return ModeRGB
	}
	return ModeRGBA
}

// HasTransparency reports whether any pixel of img is not fully opaque.
func HasTransparency(img image.Image) bool {
	return !IsOpaque(img)
}

// IsOpaque reports whether every pixel of img is fully opaque.
func IsOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return false
			}
		}
	}
	return true
}

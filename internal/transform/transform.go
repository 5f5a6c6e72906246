// Package transform holds the per-image stages of a batch run. Each stage
// takes a Frame and returns a new one; none of them touch the filesystem.
package transform

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/AnyUserName/squeeze/internal/config"
)

// Frame is one decoded image moving through the stages.
type Frame struct {
	Source string
	Image  image.Image
	Width  int
	Height int
	Mode   ColorMode
	// SourceMode is the mode as decoded. Stages that replace the buffer
	// keep it, so normalization follows the source and not whatever
	// buffer type resampling produced.
	SourceMode ColorMode
}

// NewFrame wraps img, filling in its dimensions and color mode.
func NewFrame(source string, img image.Image) Frame {
	b := img.Bounds()
	mode := ModeOf(img)
	return Frame{
		Source:     source,
		Image:      img,
		Width:      b.Dx(),
		Height:     b.Dy(),
		Mode:       mode,
		SourceMode: mode,
	}
}

// derive returns a Frame for img that keeps f's source and source mode.
func (f Frame) derive(img image.Image) Frame {
	out := NewFrame(f.Source, img)
	out.SourceMode = f.SourceMode
	return out
}

// Decode reads any supported image (jpeg, png, webp, bmp, tiff) from r.
// It returns the Frame and the detected source format name.
func Decode(source string, r io.Reader) (Frame, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return Frame{}, "", err
	}
	if b := img.Bounds(); b.Dx() <= 0 || b.Dy() <= 0 {
		return Frame{}, format, fmt.Errorf("invalid image bounds: %dx%d", b.Dx(), b.Dy())
	}
	return NewFrame(source, img), format, nil
}

// TargetSize returns the output dimensions for a w×h image under maxWidth.
// Images not wider than maxWidth keep their size; wider ones are scaled to
// maxWidth with height floor(maxWidth/w*h), never less than 1.
func TargetSize(w, h, maxWidth int) (int, int) {
	if w <= maxWidth {
		return w, h
	}
	nh := int(float64(maxWidth) / float64(w) * float64(h))
	if nh < 1 {
		nh = 1
	}
	return maxWidth, nh
}

// Resize downsamples f with a Lanczos filter when it is wider than
// maxWidth. It never upsamples; an unchanged Frame is returned as is.
func Resize(f Frame, maxWidth int) Frame {
	w, h := TargetSize(f.Width, f.Height, maxWidth)
	if w == f.Width && h == f.Height {
		return f
	}
	return f.derive(imaging.Resize(f.Image, w, h, imaging.Lanczos))
}

// Normalize converts f into a color representation the target format can
// store. The decision is made on the decoded source mode, so a resized
// frame is normalized the same way as an unresized one.
func Normalize(f Frame, format config.Format) Frame {
	switch format {
	case config.JPEG:
		if hasAlphaChannel(f) {
			return f.derive(Flatten(f.Image, color.White))
		}
		return f.derive(ToRGB(f.Image))
	case config.WEBP:
		if f.SourceMode != ModeRGB && f.SourceMode != ModeRGBA {
			return f.derive(ToRGB(f.Image))
		}
	}
	return f
}

func hasAlphaChannel(f Frame) bool {
	switch f.SourceMode {
	case ModeRGBA, ModeGrayAlpha:
		return true
	case ModePaletted:
		return HasTransparency(f.Image)
	}
	return false
}

// Flatten composites img onto an opaque canvas of color bg using the
// image's alpha as the blend mask. The result is fully opaque.
func Flatten(img image.Image, bg color.Color) *image.RGBA {
	b := img.Bounds()
	canvas := imaging.New(b.Dx(), b.Dy(), bg)
	canvas = imaging.Overlay(canvas, img, image.Pt(0, 0), 1.0)
	return ToRGB(canvas)
}

// ToRGB copies img into an opaque RGBA buffer anchored at the origin.
// Alpha is discarded without compositing, matching a plain mode
// conversion: each pixel keeps its straight (non-premultiplied) color.
func ToRGB(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if IsOpaque(img) {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		return dst
	}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			dst.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
		}
	}
	return dst
}

package transform

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/AnyUserName/squeeze/internal/config"
)

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

// halfTransparent is opaque red on the left half and fully transparent on
// the right half.
func halfTransparent(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < w/2 {
				img.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
			} else {
				img.SetNRGBA(x, y, color.NRGBA{R: 10, G: 20, B: 30, A: 0})
			}
		}
	}
	return img
}

func TestTargetSize(t *testing.T) {
	tests := []struct {
		w, h, max    int
		wantW, wantH int
	}{
		{400, 300, 800, 400, 300},
		{800, 600, 800, 800, 600},
		{1600, 900, 800, 800, 450},
		{1000, 333, 800, 800, 266}, // 266.4 floors
		{3000, 2000, 1000, 1000, 666},
		{801, 601, 800, 800, 600}, // 600.25 floors
		{10000, 1, 100, 100, 1},   // clamps to 1
	}
	for _, tt := range tests {
		gotW, gotH := TargetSize(tt.w, tt.h, tt.max)
		if gotW != tt.wantW || gotH != tt.wantH {
			t.Errorf("TargetSize(%d, %d, %d) = %dx%d, want %dx%d",
				tt.w, tt.h, tt.max, gotW, gotH, tt.wantW, tt.wantH)
		}
	}
}

func TestResizeDownsamples(t *testing.T) {
	f := NewFrame("big.jpg", gradient(1600, 900))
	out := Resize(f, 800)
	if out.Width != 800 || out.Height != 450 {
		t.Fatalf("got %dx%d, want 800x450", out.Width, out.Height)
	}
	if b := out.Image.Bounds(); b.Dx() != 800 || b.Dy() != 450 {
		t.Errorf("image bounds %v disagree with frame", b)
	}
	if out.Source != "big.jpg" {
		t.Errorf("source lost: %q", out.Source)
	}
}

func TestResizeNeverUpsamples(t *testing.T) {
	img := gradient(400, 300)
	f := NewFrame("small.png", img)
	out := Resize(f, 800)
	if out.Width != 400 || out.Height != 300 {
		t.Errorf("got %dx%d, want 400x300", out.Width, out.Height)
	}
	if out.Image != image.Image(img) {
		t.Error("unchanged frame should keep the original buffer")
	}
}

func TestModeOf(t *testing.T) {
	pal := image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{color.Black, color.White})
	opaqueRGBA := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := 3; i < len(opaqueRGBA.Pix); i += 4 {
		opaqueRGBA.Pix[i] = 0xff
	}
	tests := []struct {
		name string
		img  image.Image
		want ColorMode
	}{
		{"gray", image.NewGray(image.Rect(0, 0, 2, 2)), ModeGray},
		{"gray16", image.NewGray16(image.Rect(0, 0, 2, 2)), ModeGray},
		{"alpha", image.NewAlpha(image.Rect(0, 0, 2, 2)), ModeGrayAlpha},
		{"paletted", pal, ModePaletted},
		{"cmyk", image.NewCMYK(image.Rect(0, 0, 2, 2)), ModeCMYK},
		{"ycbcr", image.NewYCbCr(image.Rect(0, 0, 2, 2), image.YCbCrSubsampleRatio420), ModeRGB},
		{"opaque rgba", opaqueRGBA, ModeRGB},
		{"transparent nrgba", halfTransparent(4, 4), ModeRGBA},
	}
	for _, tt := range tests {
		if got := ModeOf(tt.img); got != tt.want {
			t.Errorf("%s: ModeOf = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestNormalizeJPEGFlattensOntoWhite(t *testing.T) {
	f := NewFrame("logo.png", halfTransparent(10, 4))
	out := Normalize(f, config.JPEG)

	if out.Mode != ModeRGB {
		t.Fatalf("mode = %v, want RGB", out.Mode)
	}
	if !IsOpaque(out.Image) {
		t.Fatal("flattened image still has transparency")
	}
	r, g, b, _ := out.Image.At(8, 2).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Errorf("transparent region = (%d,%d,%d), want white", r>>8, g>>8, b>>8)
	}
	r, g, b, _ = out.Image.At(1, 1).RGBA()
	if r>>8 != 255 || g>>8 != 0 || b>>8 != 0 {
		t.Errorf("opaque region = (%d,%d,%d), want red", r>>8, g>>8, b>>8)
	}
}

func TestNormalizeJPEGBlendsPartialAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 0, G: 0, B: 0, A: 128})
	out := Normalize(NewFrame("x.png", img), config.JPEG)
	r, _, _, a := out.Image.At(0, 0).RGBA()
	if a != 0xffff {
		t.Fatalf("alpha = %d, want opaque", a)
	}
	// Half-transparent black over white lands near mid gray.
	if v := r >> 8; v < 120 || v > 135 {
		t.Errorf("blended value = %d, want ~127", v)
	}
}

func TestNormalizeJPEGPalettedWithTransparency(t *testing.T) {
	pal := color.Palette{color.RGBA{0, 0, 255, 255}, color.RGBA{0, 0, 0, 0}}
	img := image.NewPaletted(image.Rect(0, 0, 2, 1), pal)
	img.SetColorIndex(0, 0, 0)
	img.SetColorIndex(1, 0, 1)

	out := Normalize(NewFrame("icon.png", img), config.JPEG)
	r, g, b, _ := out.Image.At(1, 0).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Errorf("transparent palette entry = (%d,%d,%d), want white", r>>8, g>>8, b>>8)
	}
	r, g, b, _ = out.Image.At(0, 0).RGBA()
	if r>>8 != 0 || g>>8 != 0 || b>>8 != 255 {
		t.Errorf("opaque palette entry = (%d,%d,%d), want blue", r>>8, g>>8, b>>8)
	}
}

func TestNormalizeJPEGConvertsGray(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 3))
	img.SetGray(1, 1, color.Gray{Y: 200})
	out := Normalize(NewFrame("g.tif", img), config.JPEG)
	if _, ok := out.Image.(*image.RGBA); !ok {
		t.Fatalf("got %T, want *image.RGBA", out.Image)
	}
	r, g, b, _ := out.Image.At(1, 1).RGBA()
	if r>>8 != 200 || g>>8 != 200 || b>>8 != 200 {
		t.Errorf("pixel = (%d,%d,%d), want (200,200,200)", r>>8, g>>8, b>>8)
	}
}

func TestNormalizeWEBP(t *testing.T) {
	gray := NewFrame("g.bmp", image.NewGray(image.Rect(0, 0, 2, 2)))
	if out := Normalize(gray, config.WEBP); out.Mode != ModeRGB {
		t.Errorf("gray -> %v, want RGB", out.Mode)
	}

	rgba := NewFrame("a.png", halfTransparent(4, 2))
	out := Normalize(rgba, config.WEBP)
	if out.Mode != ModeRGBA || out.Image != rgba.Image {
		t.Error("RGBA frame should pass through unchanged for WEBP")
	}
}

// palettedTransparent alternates an opaque blue and a transparent palette
// entry column by column.
func palettedTransparent(w, h int) *image.Paletted {
	pal := color.Palette{color.RGBA{0, 0, 255, 255}, color.RGBA{0, 0, 0, 0}}
	img := image.NewPaletted(image.Rect(0, 0, w, h), pal)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetColorIndex(x, y, uint8(x%2))
		}
	}
	return img
}

func TestNormalizeWEBPPalettedSameWithOrWithoutResize(t *testing.T) {
	tests := []struct {
		name  string
		width int
	}{
		{"narrow", 100},
		{"wide", 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Resize(NewFrame("p.png", palettedTransparent(tt.width, 50)), 800)
			if f.SourceMode != ModePaletted {
				t.Fatalf("source mode = %v after resize, want P", f.SourceMode)
			}
			out := Normalize(f, config.WEBP)
			if out.Mode != ModeRGB {
				t.Errorf("mode = %v, want RGB", out.Mode)
			}
			if !IsOpaque(out.Image) {
				t.Error("output still carries transparency")
			}
		})
	}
}

func TestResizeKeepsSourceMode(t *testing.T) {
	f := Resize(NewFrame("g.tif", image.NewGray(image.Rect(0, 0, 1600, 10))), 800)
	if f.Width != 800 || f.SourceMode != ModeGray {
		t.Errorf("got %dx%d source mode %v, want 800 wide and L", f.Width, f.Height, f.SourceMode)
	}
}

func TestNormalizePNGPassesThrough(t *testing.T) {
	pal := image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{color.Black, color.White})
	f := NewFrame("p.png", pal)
	out := Normalize(f, config.PNG)
	if out.Image != f.Image || out.Mode != ModePaletted {
		t.Error("PNG normalization must not touch the image")
	}
}

func TestDecode(t *testing.T) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, gradient(64, 32), &jpeg.Options{Quality: 90}); err != nil {
		t.Fatal(err)
	}
	f, format, err := Decode("a.jpg", &buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("format = %q", format)
	}
	if f.Width != 64 || f.Height != 32 || f.Mode != ModeRGB {
		t.Errorf("frame = %dx%d %v", f.Width, f.Height, f.Mode)
	}

	buf.Reset()
	if err := png.Encode(&buf, halfTransparent(8, 8)); err != nil {
		t.Fatal(err)
	}
	f, _, err = Decode("b.png", &buf)
	if err != nil {
		t.Fatalf("Decode png: %v", err)
	}
	if f.Mode != ModeRGBA {
		t.Errorf("png mode = %v, want RGBA", f.Mode)
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, _, err := Decode("bad.jpg", bytes.NewReader([]byte("definitely not an image"))); err == nil {
		t.Error("expected decode error")
	}
}

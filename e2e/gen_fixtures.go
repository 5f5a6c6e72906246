//go:build ignore

// gen_fixtures fills a directory with a mixed batch for a manual smoke run:
// a large JPEG, a small PNG, an alpha PNG, a grayscale TIFF, a BMP, a
// corrupted JPEG, a text file and a subdirectory.
// Usage: go run gen_fixtures.go <images_dir>
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <images_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	must(os.MkdirAll(filepath.Join(dir, "nested"), 0o755))

	writeJPEG(filepath.Join(dir, "banner.jpg"), gradient(1600, 900))
	writePNG(filepath.Join(dir, "card.png"), solidWithBorder(400, 300, 120))
	writePNG(filepath.Join(dir, "logo.PNG"), alphaGradient(1000, 250))
	writeTIFF(filepath.Join(dir, "scan.tif"), grayNoise(1200, 1600))
	writeBMP(filepath.Join(dir, "icon.bmp"), solidWithBorder(64, 64, 40))

	must(os.WriteFile(filepath.Join(dir, "broken.jpg"), []byte("\xff\xd8\xff\xe0 truncated"), 0o644))
	must(os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not an image\n"), 0o644))

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created 7 files in %s\n", dir)
}

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

func solidWithBorder(w, h int, base uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{R: base, G: base + 40, B: base + 80, A: 255}
			if x < 4 || x >= w-4 || y < 4 || y >= h-4 {
				c = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func alphaGradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: 220, G: 60, B: 30,
				A: uint8(x * 255 / w),
			})
		}
	}
	return img
}

func grayNoise(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = uint8((i * 31) % 251)
	}
	return img
}

func create(path string) *os.File {
	f, err := os.Create(path)
	must(err)
	return f
}

func writePNG(path string, img image.Image) {
	f := create(path)
	defer f.Close()
	must(png.Encode(f, img))
}

func writeJPEG(path string, img image.Image) {
	f := create(path)
	defer f.Close()
	must(jpeg.Encode(f, img, &jpeg.Options{Quality: 92}))
}

func writeTIFF(path string, img image.Image) {
	f := create(path)
	defer f.Close()
	must(tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate}))
}

func writeBMP(path string, img image.Image) {
	f := create(path)
	defer f.Close()
	must(bmp.Encode(f, img))
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

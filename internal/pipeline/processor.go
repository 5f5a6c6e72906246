package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AnyUserName/squeeze/internal/config"
	"github.com/AnyUserName/squeeze/internal/encoder"
	"github.com/AnyUserName/squeeze/internal/hasher"
	"github.com/AnyUserName/squeeze/internal/logger"
	"github.com/AnyUserName/squeeze/internal/transform"
)

// SizeClass is the reporting-only classification against the threshold.
type SizeClass int

const (
	ClassUnknown SizeClass = iota // original size could not be read
	ClassBelow
	ClassAbove
)

// Classify places a file of size bytes relative to thresholdKB. A zero
// threshold puts every file above it.
func Classify(size int64, thresholdKB int) SizeClass {
	if thresholdKB > 0 && float64(size)/1024 < float64(thresholdKB) {
		return ClassBelow
	}
	return ClassAbove
}

// Change returns the size change in percent, positive for a reduction and
// negative for growth. A zero original yields 0.
func Change(original, final int64) float64 {
	if original <= 0 {
		return 0
	}
	return (1 - float64(final)/float64(original)) * 100
}

// Result is the outcome of processing one supported file.
type Result struct {
	Name         string
	OutputName   string
	OutputPath   string
	SourceFormat string
	SourceMode   string
	OriginalSize int64
	FinalSize    int64
	SrcWidth     int
	SrcHeight    int
	Width        int
	Height       int
	Resized      bool
	Class        SizeClass
	Hash         string
	Err          *FileError
}

// OK reports whether the file was written.
func (r Result) OK() bool { return r.Err == nil }

// Change returns the size change of this file in percent.
func (r Result) Change() float64 { return Change(r.OriginalSize, r.FinalSize) }

// OutputName is the file name written for key in format f.
func OutputName(key string, f config.Format) string {
	return key + "." + f.Ext()
}

// ProcessFile runs one entry through decode, resize, normalize and encode,
// writing the result into outDir. Failures are returned inside the Result.
func ProcessFile(e Entry, cfg config.Config, outDir string, enc encoder.Encoder) Result {
	res := Result{
		Name:         e.Name,
		SourceFormat: e.Format,
		OutputName:   OutputName(e.Key, cfg.Format),
	}
	res.OutputPath = filepath.Join(outDir, res.OutputName)

	info, err := os.Stat(e.Path)
	if err != nil {
		res.Err = fileErr(KindIO, "stat", e.Name, err)
		return res
	}
	res.OriginalSize = info.Size()
	res.Class = Classify(res.OriginalSize, cfg.ThresholdKB)

	frame, format, ferr := decodeFile(e)
	if ferr != nil {
		res.Err = ferr
		return res
	}
	// The content decides, not the extension.
	if format != "" {
		res.SourceFormat = format
	}
	res.SrcWidth, res.SrcHeight = frame.Width, frame.Height
	res.SourceMode = frame.Mode.String()

	frame = transform.Resize(frame, cfg.MaxWidth)
	res.Resized = frame.Width != res.SrcWidth
	frame = transform.Normalize(frame, cfg.Format)
	res.Width, res.Height = frame.Width, frame.Height

	logger.Debug("encode", "file", e.Name, "mode", res.SourceMode,
		"src", fmt.Sprintf("%dx%d", res.SrcWidth, res.SrcHeight),
		"dst", fmt.Sprintf("%dx%d", res.Width, res.Height),
		"encoder", enc.Name())

	data, err := enc.Encode(frame.Image, cfg.Quality)
	if err != nil {
		res.Err = fileErr(KindEncode, "encode", e.Name, err)
		return res
	}
	res.Hash = hasher.ContentHash(data, hasher.HexLen)

	if err := writeFileAtomic(res.OutputPath, data); err != nil {
		res.Err = fileErr(KindIO, "write", res.OutputName, err)
		return res
	}

	out, err := os.Stat(res.OutputPath)
	if err != nil {
		res.Err = fileErr(KindIO, "stat", res.OutputName, err)
		return res
	}
	res.FinalSize = out.Size()
	return res
}

// decodeFile opens and decodes e, returning the format detected from the
// file content. The file handle is closed before returning on every path.
func decodeFile(e Entry) (transform.Frame, string, *FileError) {
	f, err := os.Open(e.Path)
	if err != nil {
		return transform.Frame{}, "", fileErr(KindIO, "open", e.Name, err)
	}
	defer f.Close()

	frame, format, err := transform.Decode(e.Name, f)
	if err != nil {
		return transform.Frame{}, "", fileErr(KindDecode, "decode", e.Name, err)
	}
	return frame, format, nil
}

// writeFileAtomic writes data next to path and renames it into place, so
// path only ever holds a complete file.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".squeeze-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Entry is a regular file found in the input directory.
type Entry struct {
	// Path is the path to the file on disk.
	Path string
	// Name is the file name including extension.
	Name string
	// Key is the file name without its extension; outputs are named after it.
	Key string
	// Format is the normalized source format (jpeg, png, webp, bmp, tiff),
	// empty when the extension is not supported.
	Format string
}

// Supported reports whether the entry has a recognized image extension.
func (e Entry) Supported() bool { return e.Format != "" }

// imageExtensions maps recognized extensions to source format names.
var imageExtensions = map[string]string{
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".png":  "png",
	".webp": "webp",
	".bmp":  "bmp",
	".tif":  "tiff",
	".tiff": "tiff",
}

// SourceFormat returns the source format for a file name, or "" when the
// extension is not a supported image type. Matching ignores case.
func SourceFormat(name string) string {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// ScanDir lists the regular files directly inside dir, in directory order.
// Subdirectories (and symlinks to them) are left out entirely; files with
// unsupported extensions are returned with an empty Format so the caller
// can report them.
func ScanDir(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		path := filepath.Join(dir, de.Name())
		if de.Type()&os.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err == nil && info.IsDir() {
				continue
			}
		}

		name := de.Name()
		entries = append(entries, Entry{
			Path:   path,
			Name:   name,
			Key:    strings.TrimSuffix(name, filepath.Ext(name)),
			Format: SourceFormat(name),
		})
	}
	return entries, nil
}

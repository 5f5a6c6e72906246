package hasher

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestContentHashStable(t *testing.T) {
	data := []byte("squeeze me")
	a := ContentHash(data, HexLen)
	b := ContentHash(data, HexLen)
	if a != b {
		t.Fatalf("unstable hash: %s vs %s", a, b)
	}
	if len(a) != HexLen {
		t.Errorf("len = %d, want %d", len(a), HexLen)
	}
	if len(ContentHash(data, 8)) != 8 {
		t.Error("truncation to 8 failed")
	}
	if len(ContentHash(data, 0)) != 16 {
		t.Error("hexLen 0 should return the full hash")
	}
	if ContentHash([]byte("other"), HexLen) == a {
		t.Error("different inputs collided")
	}
}

func TestReaderAndFileAgree(t *testing.T) {
	data := bytes.Repeat([]byte{0xde, 0xad, 0xbe, 0xef}, 4096)
	want := ContentHash(data, HexLen)

	got, err := ContentHashReader(bytes.NewReader(data), HexLen)
	if err != nil || got != want {
		t.Errorf("reader: %s, %v; want %s", got, err, want)
	}

	path := filepath.Join(t.TempDir(), "blob.bin")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	got, err = ContentHashFile(path, HexLen)
	if err != nil || got != want {
		t.Errorf("file: %s, %v; want %s", got, err, want)
	}

	if _, err := ContentHashFile(filepath.Join(t.TempDir(), "missing"), HexLen); err == nil {
		t.Error("expected error for missing file")
	}
}

package cmd

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AnyUserName/squeeze/internal/pipeline"
	"github.com/AnyUserName/squeeze/internal/report"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func writeJPEG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 95}); err != nil {
		t.Fatal(err)
	}
}

func TestRunStatsValidate(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "compressed")
	writeJPEG(t, filepath.Join(in, "photo.jpg"), 1600, 900)
	if err := os.WriteFile(filepath.Join(in, "broken.png"), []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(in, "list.csv"), []byte("a,b"), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, err := execute(t, "--input", in, "--output", out, "--no-prompt",
		"--format", "jpeg", "--max-width", "800", "--quality", "75", "--threshold-kb", "0")
	if err != nil {
		t.Fatalf("run: %v\n%s", err, stdout)
	}
	for _, want := range []string{
		"skipped: list.csv",
		"ok: photo.jpg -> photo.jpeg | reduced",
		"error in broken.png:",
		"Images saved to: " + out,
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}

	r, err := report.ReadJSON(out)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if r.Stats.Processed != 1 || r.Stats.Errors != 1 || r.Stats.Skipped != 1 || r.Stats.AboveThreshold != 2 {
		t.Errorf("stats = %+v", r.Stats)
	}

	stdout, err = execute(t, "stats", out)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if !strings.Contains(stdout, "Top 1 savings") || !strings.Contains(stdout, "decode") {
		t.Errorf("stats output:\n%s", stdout)
	}

	stdout, err = execute(t, "validate", filepath.Join(out, report.FileName))
	if err != nil {
		t.Fatalf("validate: %v\n%s", err, stdout)
	}
	if !strings.Contains(stdout, "Report is valid") {
		t.Errorf("validate output:\n%s", stdout)
	}

	if err := os.Remove(filepath.Join(out, "photo.jpeg")); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "validate", out); err == nil {
		t.Error("validate passed with a missing output")
	}
}

func TestRunMissingInput(t *testing.T) {
	in := filepath.Join(t.TempDir(), "images")
	out := filepath.Join(t.TempDir(), "compressed")

	stdout, err := execute(t, "--input", in, "--output", out, "--no-prompt",
		"--format", "png", "--max-width", "800", "--quality", "80", "--threshold-kb", "0")
	if !errors.Is(err, pipeline.ErrInputMissing) {
		t.Fatalf("err = %v, want ErrInputMissing", err)
	}
	if stdout != "" {
		t.Errorf("unexpected output before failing:\n%s", stdout)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("output directory created for a missing input")
	}
}

func TestRunRejectsBadFormat(t *testing.T) {
	_, err := execute(t, "--input", t.TempDir(), "--output", t.TempDir(), "--no-prompt",
		"--format", "gif", "--max-width", "800", "--quality", "80", "--threshold-kb", "0")
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Errorf("err = %v", err)
	}
}

func TestValidateReportOutsideOutputDir(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "compressed")
	reportPath := filepath.Join(t.TempDir(), "run.json")
	t.Cleanup(func() { runReportPath = "" })
	writeJPEG(t, filepath.Join(in, "photo.jpg"), 1200, 600)

	stdout, err := execute(t, "--input", in, "--output", out, "--no-prompt",
		"--format", "jpeg", "--max-width", "800", "--quality", "80", "--threshold-kb", "0",
		"--report", reportPath)
	if err != nil {
		t.Fatalf("run: %v\n%s", err, stdout)
	}
	if _, err := os.Stat(filepath.Join(out, report.FileName)); !os.IsNotExist(err) {
		t.Error("report also written to the output directory")
	}

	stdout, err = execute(t, "validate", reportPath)
	if err != nil {
		t.Fatalf("validate: %v\n%s", err, stdout)
	}
	if !strings.Contains(stdout, "Report is valid") {
		t.Errorf("validate output:\n%s", stdout)
	}
}

package profile

import (
	"testing"

	"github.com/AnyUserName/squeeze/internal/config"
)

func TestProfilesValidate(t *testing.T) {
	for _, name := range Names() {
		p, ok := Get(name)
		if !ok {
			t.Fatalf("Get(%q) missing", name)
		}
		if p.Name != name {
			t.Errorf("profile %q has name %q", name, p.Name)
		}
		cfg := p.Apply(config.Default().Config)
		if err := cfg.Validate(); err != nil {
			t.Errorf("profile %q: %v", name, err)
		}
	}
}

func TestGetUnknown(t *testing.T) {
	if _, ok := Get("nope"); ok {
		t.Error("unknown profile reported as present")
	}
}

func TestApplyKeepsQualityForLossless(t *testing.T) {
	base := config.Default().Config
	base.Quality = 55
	base.ThresholdKB = 200

	p, _ := Get("archive")
	got := p.Apply(base)
	if got.Format != config.PNG || got.MaxWidth != 4096 {
		t.Errorf("archive not applied: %+v", got)
	}
	if got.Quality != 55 {
		t.Errorf("quality overwritten for lossless profile: %d", got.Quality)
	}
	if got.ThresholdKB != 200 {
		t.Errorf("threshold overwritten: %d", got.ThresholdKB)
	}

	p, _ = Get("modern")
	got = p.Apply(base)
	if got.Format != config.WEBP || got.Quality != 75 {
		t.Errorf("modern not applied: %+v", got)
	}
}

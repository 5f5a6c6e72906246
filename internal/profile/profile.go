package profile

import (
	"sort"

	"github.com/AnyUserName/squeeze/internal/config"
)

// Profile is a named set of batch parameters.
type Profile struct {
	Name     string
	MaxWidth int
	Format   config.Format
	Quality  int // ignored for lossless formats
}

// Built-in profiles.
var profiles = map[string]Profile{
	"web": {
		Name:     "web",
		MaxWidth: 800,
		Format:   config.JPEG,
		Quality:  80,
	},
	"web-hq": {
		Name:     "web-hq",
		MaxWidth: 1600,
		Format:   config.JPEG,
		Quality:  90,
	},
	"archive": {
		Name:     "archive",
		MaxWidth: 4096,
		Format:   config.PNG,
	},
	"modern": {
		Name:     "modern",
		MaxWidth: 1200,
		Format:   config.WEBP,
		Quality:  75,
	},
	"thumbnail": {
		Name:     "thumbnail",
		MaxWidth: 320,
		Format:   config.WEBP,
		Quality:  70,
	},
}

// Get returns a profile by name.
func Get(name string) (Profile, bool) {
	p, ok := profiles[name]
	return p, ok
}

// Names returns all profile names, sorted.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for n := range profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Apply overlays the profile onto cfg. The threshold is reporting-only and
// left untouched; so is quality for lossless profiles.
func (p Profile) Apply(cfg config.Config) config.Config {
	cfg.MaxWidth = p.MaxWidth
	cfg.Format = p.Format
	if p.Format.Lossy() {
		cfg.Quality = p.Quality
	}
	return cfg
}

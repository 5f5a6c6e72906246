package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Built-in defaults, used when nothing else sets a value.
const (
	DefaultMaxWidth    = 800
	DefaultQuality     = 80
	DefaultThresholdKB = 0

	DefaultInputDir  = "images"
	DefaultOutputDir = "images_compressed"

	// EnvPrefix is prepended to every environment variable name.
	EnvPrefix = "SQUEEZE_"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the parameters of one batch run. It is passed by value and
// never modified once the run starts.
type Config struct {
	MaxWidth    int    `yaml:"max_width" env:"MAX_WIDTH" json:"max_width"`
	Format      Format `yaml:"format" env:"FORMAT" json:"format"`
	Quality     int    `yaml:"quality" env:"QUALITY" json:"quality"`
	ThresholdKB int    `yaml:"threshold_kb" env:"THRESHOLD_KB" json:"threshold_kb"`
}

// Settings is a Config plus the process-level knobs around it.
type Settings struct {
	Config   `yaml:",inline"`
	Input    string `yaml:"input" env:"INPUT"`
	Output   string `yaml:"output" env:"OUTPUT"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
}

// Default returns the built-in settings. Input and Output are relative
// names; callers resolve them against a base directory.
func Default() Settings {
	return Settings{
		Config: Config{
			MaxWidth:    DefaultMaxWidth,
			Format:      JPEG,
			Quality:     DefaultQuality,
			ThresholdKB: DefaultThresholdKB,
		},
		Input:    DefaultInputDir,
		Output:   DefaultOutputDir,
		LogLevel: "warn",
	}
}

// LoadFile overlays keys present in the YAML file at path.
// Keys absent from the file keep their current value.
func (s *Settings) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays SQUEEZE_* environment variables that are set.
func (s *Settings) ApplyEnv() error {
	if err := env.ParseWithOptions(s, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	return nil
}

// LoadDotEnv loads the first .env file found in dirs into the process
// environment. Variables already set are not overridden. A missing file is
// not an error.
func LoadDotEnv(dirs ...string) (string, error) {
	for _, dir := range dirs {
		path := filepath.Join(dir, ".env")
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return path, fmt.Errorf("load %s: %w", path, err)
		}
		return path, nil
	}
	return "", nil
}

// Validate reports the first out-of-range field.
func (c Config) Validate() error {
	if c.MaxWidth <= 0 {
		return fmt.Errorf("%w: max width must be positive, got %d", ErrInvalid, c.MaxWidth)
	}
	if !c.Format.Valid() {
		return fmt.Errorf("%w: unknown format %q", ErrInvalid, c.Format.String())
	}
	if c.Quality < 0 || c.Quality > 100 {
		return fmt.Errorf("%w: quality must be within 0-100, got %d", ErrInvalid, c.Quality)
	}
	if c.ThresholdKB < 0 {
		return fmt.Errorf("%w: threshold must not be negative, got %d", ErrInvalid, c.ThresholdKB)
	}
	return nil
}

// QualityApplies reports whether the output format takes a quality setting.
func (c Config) QualityApplies() bool {
	return c.Format.Lossy()
}

func (c Config) String() string {
	q := "n/a"
	if c.QualityApplies() {
		q = fmt.Sprintf("%d", c.Quality)
	}
	return fmt.Sprintf("max_width=%d format=%s quality=%s threshold_kb=%d",
		c.MaxWidth, c.Format, q, c.ThresholdKB)
}

// ResolveDir returns dir unchanged when absolute, or joined onto base.
func ResolveDir(base, dir string) string {
	dir = strings.TrimSpace(dir)
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(base, dir)
}

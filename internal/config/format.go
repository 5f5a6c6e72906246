package config

import (
	"fmt"
	"strings"
)

// Format is an output image format.
type Format int

const (
	FormatUnknown Format = iota
	JPEG
	PNG
	WEBP
)

// Formats lists the supported output formats in prompt order.
var Formats = []Format{JPEG, PNG, WEBP}

// ParseFormat accepts a format name in any letter case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "JPEG":
		return JPEG, nil
	case "PNG":
		return PNG, nil
	case "WEBP":
		return WEBP, nil
	}
	return FormatUnknown, fmt.Errorf("%w: unknown format %q (use JPEG, PNG or WEBP)", ErrInvalid, s)
}

func (f Format) String() string {
	switch f {
	case JPEG:
		return "JPEG"
	case PNG:
		return "PNG"
	case WEBP:
		return "WEBP"
	default:
		return "UNKNOWN"
	}
}

// Ext is the lowercase name used as the output file extension and as the
// encoder registry key.
func (f Format) Ext() string {
	return strings.ToLower(f.String())
}

func (f Format) Valid() bool {
	return f == JPEG || f == PNG || f == WEBP
}

// Lossy reports whether the format takes a quality setting.
func (f Format) Lossy() bool {
	return f == JPEG || f == WEBP
}

func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *Format) UnmarshalText(b []byte) error {
	v, err := ParseFormat(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

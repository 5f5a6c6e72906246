package encoder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AnyUserName/squeeze/internal/config"
)

// ErrUnavailable is returned by Lookup when no backend can encode a format.
var ErrUnavailable = errors.New("no encoder available")

// Registry holds the first available encoder per format.
type Registry struct {
	encoders map[string]Encoder
}

// NewRegistry creates a registry, probing all encoders for availability.
// For WebP the cwebp binary wins over the in-process libwebp backend.
func NewRegistry() *Registry {
	return NewRegistryOf(
		&JPEGEncoder{},
		&PNGEncoder{},
		&CWebPEncoder{},
		&LibWebPEncoder{},
	)
}

// NewRegistryOf registers encs in priority order; only available ones are
// kept, and the first one per format wins.
func NewRegistryOf(encs ...Encoder) *Registry {
	r := &Registry{
		encoders: make(map[string]Encoder),
	}
	for _, enc := range encs {
		if _, taken := r.encoders[enc.Format()]; taken {
			continue
		}
		if enc.Available() {
			r.encoders[enc.Format()] = enc
		}
	}
	return r
}

// Get returns an encoder for the given format name, or nil if unavailable.
func (r *Registry) Get(format string) Encoder {
	return r.encoders[strings.ToLower(format)]
}

// Lookup returns the encoder for an output format.
func (r *Registry) Lookup(f config.Format) (Encoder, error) {
	if enc := r.Get(f.Ext()); enc != nil {
		return enc, nil
	}
	return nil, fmt.Errorf("%w for %s", ErrUnavailable, f)
}

// Available returns all available format names.
func (r *Registry) Available() []string {
	var result []string
	for _, f := range config.Formats {
		if _, ok := r.encoders[f.Ext()]; ok {
			result = append(result, f.Ext())
		}
	}
	return result
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	var parts []string
	for _, f := range r.Available() {
		parts = append(parts, fmt.Sprintf("%s(%s)", f, r.encoders[f].Name()))
	}
	if len(parts) == 0 {
		return "no encoders available"
	}
	return fmt.Sprintf("encoders: %s", strings.Join(parts, ", "))
}

package theme

import (
	"context"
	"errors"

	"brochure/internal/resource"
)

// Loader fetches the theme descriptor.
type Loader interface {
	Load(ctx context.Context) (*Descriptor, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context) (*Descriptor, error)

func (f LoaderFunc) Load(ctx context.Context) (*Descriptor, error) { return f(ctx) }

// SourceLoader loads and validates a descriptor from a resource.Source on
// every call.
type SourceLoader struct {
	src resource.Source
}

// NewLoader returns a Loader reading from src.
func NewLoader(src resource.Source) *SourceLoader {
	return &SourceLoader{src: src}
}

// Load fetches the descriptor. Every failure is a *LoadError.
func (l *SourceLoader) Load(ctx context.Context) (*Descriptor, error) {
	return LoadDescriptor(ctx, l.src)
}

// LoadDescriptor fetches and validates a descriptor from src.
func LoadDescriptor(ctx context.Context, src resource.Source) (*Descriptor, error) {
	if src == nil {
		return nil, &LoadError{Source: "<nil>", Err: errors.New("no theme source configured")}
	}
	var d Descriptor
	if err := resource.Fetch(ctx, src, &d); err != nil {
		return nil, &LoadError{Source: src.Name(), Err: err}
	}
	if err := d.Validate(); err != nil {
		return nil, &LoadError{Source: src.Name(), Err: err}
	}
	return &d, nil
}

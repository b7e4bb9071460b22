package ocr

import (
	"context"
	"fmt"
	"sync"

	"github.com/stackvity/kreuzberg-go/internal/concurrency"
	kreuzberg "github.com/stackvity/kreuzberg-go/internal/kreuzbergtypes"
)

// RecognizeOptions carries the per-call tuning a Backend needs to run
// recognition on a single pre-processed image.
type RecognizeOptions struct {
	Language      string
	PSM           int
	OEM           int
	MinConfidence float64

	// Scope, if non-nil, is the request-scoped temp-file tracker a Backend
	// must register any on-disk intermediate file with instead of removing
	// it directly, so cleanup happens once at the end of the request and
	// files carrying original document bytes are overwritten before unlink.
	Scope *concurrency.Scope
}

// RecognizeResult is a backend's raw recognition output for one image.
type RecognizeResult struct {
	Text       string
	Confidence float64
}

// Backend recognizes text in a single image. Implementations must be safe
// for concurrent use from multiple goroutines.
type Backend interface {
	Name() string
	Recognize(ctx context.Context, image []byte, opts RecognizeOptions) (RecognizeResult, error)
}

// Registry looks backends up by the name used in OCRConfig.Backend.
type Registry struct {
	mu       sync.RWMutex
	backends map[string]Backend
}

// NewRegistry returns an empty backend registry.
func NewRegistry() *Registry {
	return &Registry{backends: make(map[string]Backend)}
}

// Register installs a backend under its own Name().
func (r *Registry) Register(b Backend) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backends[b.Name()] = b
}

// Lookup returns the backend registered under name.
func (r *Registry) Lookup(name string) (Backend, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.backends[name]
	if !ok {
		return nil, kreuzberg.NewMissingDependencyError(fmt.Sprintf("ocr backend %q", name), nil)
	}
	return b, nil
}

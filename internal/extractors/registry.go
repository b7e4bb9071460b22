// Package extractors implements per-format document extractors and the
// registry that dispatches to them by MIME type.
package extractors

import (
	"context"
	"fmt"

	kreuzberg "github.com/stackvity/kreuzberg-go/internal/kreuzbergtypes"
)

// Source is the input handed to an Extractor: either a filesystem path or
// an in-memory byte slice, never both.
type Source struct {
	Path  string
	Bytes []byte
}

// Extractor decodes one document format into an ExtractionResult.
type Extractor interface {
	Extract(ctx context.Context, src Source, cfg *kreuzberg.ExtractionConfig) (*kreuzberg.ExtractionResult, error)
}

// ExtractorFunc adapts a plain function to the Extractor interface.
type ExtractorFunc func(ctx context.Context, src Source, cfg *kreuzberg.ExtractionConfig) (*kreuzberg.ExtractionResult, error)

// Extract implements Extractor.
func (f ExtractorFunc) Extract(ctx context.Context, src Source, cfg *kreuzberg.ExtractionConfig) (*kreuzberg.ExtractionResult, error) {
	return f(ctx, src, cfg)
}

// Registry maps MIME type to Extractor. Unlike the plugin-registry pattern
// in the original implementation, this is an explicit, constructible type
// rather than hidden global state — callers build one via NewRegistry and
// may register additional or overriding extractors before use.
type Registry struct {
	byMime map[string]Extractor
}

// NewRegistry builds a Registry pre-populated with the engine's built-in
// format extractors.
func NewRegistry() *Registry {
	r := &Registry{byMime: make(map[string]Extractor)}
	r.Register("application/pdf", ExtractorFunc(ExtractPDF))
	r.Register("text/plain", ExtractorFunc(ExtractText))
	r.Register("text/markdown", ExtractorFunc(ExtractText))
	r.Register("text/csv", ExtractorFunc(ExtractText))
	r.Register("application/xml", ExtractorFunc(ExtractXML))
	r.Register("text/xml", ExtractorFunc(ExtractXML))
	r.Register("text/html", ExtractorFunc(ExtractHTML))
	r.Register("message/rfc822", ExtractorFunc(ExtractEmail))
	r.Register("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", ExtractorFunc(ExtractSpreadsheet))
	r.Register("application/vnd.openxmlformats-officedocument.wordprocessingml.document", ExtractorFunc(ExtractDOCX))
	r.Register("application/vnd.openxmlformats-officedocument.presentationml.presentation", ExtractorFunc(ExtractPPTX))
	return r
}

// Register associates mimeType with ext, replacing any existing entry.
func (r *Registry) Register(mimeType string, ext Extractor) {
	r.byMime[mimeType] = ext
}

// Lookup returns the Extractor registered for mimeType, if any.
func (r *Registry) Lookup(mimeType string) (Extractor, bool) {
	ext, ok := r.byMime[mimeType]
	return ext, ok
}

// Extract dispatches to the extractor registered for mimeType.
func (r *Registry) Extract(ctx context.Context, mimeType string, src Source, cfg *kreuzberg.ExtractionConfig) (*kreuzberg.ExtractionResult, error) {
	ext, ok := r.Lookup(mimeType)
	if !ok {
		return nil, kreuzberg.NewValidationError(fmt.Sprintf("no extractor registered for mime type %q", mimeType), map[string]any{"mime_type": mimeType})
	}
	return ext.Extract(ctx, src, cfg)
}

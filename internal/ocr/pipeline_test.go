package ocr

import (
	"context"
	"testing"

	kreuzberg "github.com/stackvity/kreuzberg-go/internal/kreuzbergtypes"
)

type fakeBackend struct {
	name  string
	calls int
	text  string
}

func (f *fakeBackend) Name() string { return f.name }

func (f *fakeBackend) Recognize(ctx context.Context, image []byte, opts RecognizeOptions) (RecognizeResult, error) {
	f.calls++
	return RecognizeResult{Text: f.text, Confidence: 0.95}, nil
}

func TestPipelineRunRecognizesEachPage(t *testing.T) {
	backend := &fakeBackend{name: "tesseract", text: "hello page"}
	registry := NewRegistry()
	registry.Register(backend)

	pipeline := NewPipeline(registry, nil, nil)
	pages := []PageImage{
		{PageNumber: 1, Data: []byte("page-1-bytes"), WidthPx: 1000, HeightPx: 1400, DPI: 150},
		{PageNumber: 2, Data: []byte("page-2-bytes"), WidthPx: 1000, HeightPx: 1400, DPI: 150},
	}

	results, meta, err := pipeline.Run(context.Background(), pages, kreuzberg.DefaultExtractionConfig(), nil)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 page results, got %d", len(results))
	}
	if results[0].Content != "hello page" || results[0].PageNumber != 1 {
		t.Fatalf("unexpected first page result: %+v", results[0])
	}
	if meta.Backend != "tesseract" {
		t.Fatalf("expected backend=tesseract, got %q", meta.Backend)
	}
	if backend.calls != 2 {
		t.Fatalf("expected backend called once per page, got %d calls", backend.calls)
	}
}

func TestPipelineRunUnknownBackendReturnsMissingDependencyError(t *testing.T) {
	registry := NewRegistry()
	pipeline := NewPipeline(registry, nil, nil)

	_, _, err := pipeline.Run(context.Background(), []PageImage{{PageNumber: 1, Data: []byte("x")}}, nil, nil)
	if err == nil {
		t.Fatal("expected an error for an unregistered backend")
	}
	kind, ok := kreuzberg.KindOf(err)
	if !ok || kind != kreuzberg.ErrorKindMissingDependency {
		t.Fatalf("expected missing_dependency error, got kind=%v ok=%v", kind, ok)
	}
}

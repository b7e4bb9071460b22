package kreuzberg

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stackvity/kreuzberg-go/internal/cache"
	"github.com/stackvity/kreuzberg-go/internal/concurrency"
	"github.com/stackvity/kreuzberg-go/internal/extractors"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	docs, err := cache.New(cache.TypeDocuments, cache.Options{BaseDir: t.TempDir(), TTL: time.Hour})
	if err != nil {
		t.Fatalf("cache.New() error: %v", err)
	}
	t.Cleanup(docs.Close)

	return NewEngine(EngineDependencies{
		Registry:       extractors.NewRegistry(),
		DocumentsCache: docs,
		Pool:           concurrency.NewPool(2, nil),
	})
}

func TestExtractBytesRunsTextExtraction(t *testing.T) {
	e := newTestEngine(t)

	result, err := e.ExtractBytes(context.Background(), []byte("Hello, world. This is a test document."), "text/plain", nil)
	if err != nil {
		t.Fatalf("ExtractBytes() error: %v", err)
	}
	if !result.Success {
		t.Fatal("expected Success true")
	}
	if !strings.Contains(result.Content, "Hello, world") {
		t.Fatalf("unexpected content: %q", result.Content)
	}
	if result.MimeType != "text/plain" {
		t.Fatalf("unexpected mime type: %q", result.MimeType)
	}
}

func TestExtractBytesCachesResultAcrossCalls(t *testing.T) {
	e := newTestEngine(t)
	content := []byte("Repeatable content for cache verification.")

	first, err := e.ExtractBytes(context.Background(), content, "text/plain", nil)
	if err != nil {
		t.Fatalf("first ExtractBytes() error: %v", err)
	}

	second, err := e.ExtractBytes(context.Background(), content, "text/plain", nil)
	if err != nil {
		t.Fatalf("second ExtractBytes() error: %v", err)
	}

	if first.Content != second.Content {
		t.Fatalf("expected identical content across cache hit, got %q vs %q", first.Content, second.Content)
	}
}

// TestExtractBytesDeduplicatesConcurrentCallsForSameKey proves the cache
// dedup path runs the extractor exactly once for N concurrent callers
// requesting the same content, instead of racing duplicate extractions.
func TestExtractBytesDeduplicatesConcurrentCallsForSameKey(t *testing.T) {
	docs, err := cache.New(cache.TypeDocuments, cache.Options{BaseDir: t.TempDir(), TTL: time.Hour})
	if err != nil {
		t.Fatalf("cache.New() error: %v", err)
	}
	t.Cleanup(docs.Close)

	const mimeType = "application/x-dedup-test"
	var calls int32
	release := make(chan struct{})

	registry := extractors.NewRegistry()
	registry.Register(mimeType, extractors.ExtractorFunc(
		func(ctx context.Context, src extractors.Source, cfg *ExtractionConfig) (*ExtractionResult, error) {
			atomic.AddInt32(&calls, 1)
			<-release
			return &ExtractionResult{Content: "extracted once", MimeType: mimeType, Success: true}, nil
		}))

	e := NewEngine(EngineDependencies{
		Registry:       registry,
		DocumentsCache: docs,
		Pool:           concurrency.NewPool(8, nil),
	})

	const goroutines = 8
	data := []byte("identical payload raced by concurrent callers")

	var wg sync.WaitGroup
	start := make(chan struct{})
	results := make([]*ExtractionResult, goroutines)
	errs := make([]error, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			results[i], errs[i] = e.ExtractBytes(context.Background(), data, mimeType, nil)
		}(i)
	}
	close(start)

	// Give every goroutine a chance to reach the ticket wait before letting
	// the owner's extraction complete.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("goroutine %d: ExtractBytes() error: %v", i, err)
		}
		if results[i] == nil || results[i].Content != "extracted once" {
			t.Fatalf("goroutine %d: unexpected result %+v", i, results[i])
		}
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected exactly 1 extractor invocation across %d concurrent callers, got %d", goroutines, got)
	}
}

func TestExtractBytesAppliesChunkingWhenEnabled(t *testing.T) {
	e := newTestEngine(t)

	var sb strings.Builder
	for i := 0; i < 50; i++ {
		sb.WriteString("This is a moderately long sentence used to pad out the document content. ")
	}

	cfg := &ExtractionConfig{
		Chunking: &ChunkingConfig{
			Enabled:      BoolPtr(true),
			ChunkSize:    IntPtr(200),
			ChunkOverlap: IntPtr(20),
		},
	}

	result, err := e.ExtractBytes(context.Background(), []byte(sb.String()), "text/plain", cfg)
	if err != nil {
		t.Fatalf("ExtractBytes() error: %v", err)
	}
	if len(result.Chunks) < 2 {
		t.Fatalf("expected multiple chunks for long content, got %d", len(result.Chunks))
	}
}

func TestExtractBytesRunsPostprocessingByDefault(t *testing.T) {
	e := newTestEngine(t)

	result, err := e.ExtractBytes(context.Background(),
		[]byte("Contact jane@example.com about the invoice amount due of $450.00 by 2026-01-15."),
		"text/plain", nil)
	if err != nil {
		t.Fatalf("ExtractBytes() error: %v", err)
	}

	if result.Metadata.Entities == nil {
		t.Fatal("expected entity extraction to run by default")
	}
	if result.Metadata.Keywords == nil {
		t.Fatal("expected keyword extraction to run by default")
	}
}

func TestExtractFileResolvesMimeFromExtensionAndTracksFreshness(t *testing.T) {
	e := newTestEngine(t)
	path := filepath.Join(t.TempDir(), "report.txt")
	if err := os.WriteFile(path, []byte("Quarterly figures follow."), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	result, err := e.ExtractFile(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("ExtractFile() error: %v", err)
	}
	if result.MimeType != "text/plain" {
		t.Fatalf("unexpected mime type: %q", result.MimeType)
	}

	// Modifying the source file should invalidate the cached entry rather
	// than returning stale content.
	if err := os.WriteFile(path, []byte("Updated figures follow."), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	updated, err := e.ExtractFile(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("second ExtractFile() error: %v", err)
	}
	if !strings.Contains(updated.Content, "Updated") {
		t.Fatalf("expected fresh content after source change, got %q", updated.Content)
	}
}

func TestExtractBytesUnsupportedMimeReturnsValidationError(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.ExtractBytes(context.Background(), []byte("irrelevant"), "application/octet-stream", nil)
	if err == nil {
		t.Fatal("expected an error for an unregistered mime type")
	}
	if kind, ok := KindOf(err); !ok || kind != ErrorKindValidation {
		t.Fatalf("expected ErrorKindValidation, got %v (ok=%v)", kind, ok)
	}
}

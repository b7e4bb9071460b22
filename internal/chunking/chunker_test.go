package chunking

import (
	"strings"
	"testing"

	kreuzberg "github.com/stackvity/kreuzberg-go/internal/kreuzbergtypes"
)

func TestChunkTextSplitsIntoOverlappingWindows(t *testing.T) {
	content := strings.Repeat("word ", 500)
	chunks := ChunkText(content, 200, 20)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if c.Metadata.ChunkIndex != i {
			t.Fatalf("chunk %d has index %d", i, c.Metadata.ChunkIndex)
		}
		if c.Metadata.TotalChunks != len(chunks) {
			t.Fatalf("chunk %d has TotalChunks %d, want %d", i, c.Metadata.TotalChunks, len(chunks))
		}
		if len(c.Content) > 200+20 {
			t.Fatalf("chunk %d too large: %d bytes", i, len(c.Content))
		}
	}

	second := chunks[1]
	first := chunks[0]
	if second.Metadata.ByteStart >= first.Metadata.ByteEnd {
		t.Fatalf("expected overlap: chunk 1 starts at %d, chunk 0 ends at %d", second.Metadata.ByteStart, first.Metadata.ByteEnd)
	}
}

func TestChunkTextEmptyContentReturnsNoChunks(t *testing.T) {
	if chunks := ChunkText("", 200, 20); chunks != nil {
		t.Fatalf("expected nil chunks for empty content, got %v", chunks)
	}
}

func TestChunkTextShortContentReturnsSingleChunk(t *testing.T) {
	chunks := ChunkText("a short document.", 2000, 200)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Content != "a short document." {
		t.Fatalf("unexpected chunk content: %q", chunks[0].Content)
	}
}

func TestChunkMarkdownBreaksOnHeadings(t *testing.T) {
	content := "# Title\n\n" + strings.Repeat("body text ", 30) +
		"\n\n## Section Two\n\n" + strings.Repeat("more text ", 30)

	chunks := ChunkMarkdown(content, 150, 10)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
}

func TestChunksRoutesByMimeType(t *testing.T) {
	content := "# Heading\n\nsome body content here."
	cfg := &kreuzberg.ChunkingConfig{}

	md := Chunks(content, MarkdownMimeType, cfg)
	plain := Chunks(content, "text/plain", cfg)

	if len(md) == 0 || len(plain) == 0 {
		t.Fatal("expected both splitters to produce chunks")
	}
}

func TestResolveSizesFallsBackToDefaults(t *testing.T) {
	maxChars, overlap := resolveSizes(nil)
	if maxChars != defaultMaxCharacters || overlap != defaultOverlapCharacters {
		t.Fatalf("expected defaults, got (%d, %d)", maxChars, overlap)
	}
}

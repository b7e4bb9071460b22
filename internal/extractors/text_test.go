package extractors

import (
	"context"
	"testing"
)

func TestExtractTextPlain(t *testing.T) {
	src := Source{Bytes: []byte("hello   world\n\n\n\nsecond paragraph\n")}
	result, err := ExtractText(context.Background(), src, nil)
	if err != nil {
		t.Fatalf("ExtractText() error: %v", err)
	}
	if !result.Success {
		t.Fatal("expected success")
	}
	if result.Content == "" {
		t.Fatal("expected non-empty content")
	}
	meta, ok := result.Metadata.TextMetadata()
	if !ok {
		t.Fatal("expected text metadata")
	}
	if meta.WordCount == 0 {
		t.Fatal("expected non-zero word count")
	}
}

func TestExtractTextMarkdownFeatures(t *testing.T) {
	md := "# Title\n\nSee [docs](https://example.com/docs).\n\n```go\nfmt.Println(\"hi\")\n```\n"
	result, err := ExtractText(context.Background(), Source{Bytes: []byte(md)}, nil)
	if err != nil {
		t.Fatalf("ExtractText() error: %v", err)
	}
	meta, _ := result.Metadata.TextMetadata()
	if len(meta.Headers) != 1 || meta.Headers[0] != "Title" {
		t.Fatalf("expected one header 'Title', got %v", meta.Headers)
	}
	if len(meta.Links) != 1 || meta.Links[0][1] != "https://example.com/docs" {
		t.Fatalf("expected one link to example.com, got %v", meta.Links)
	}
	if len(meta.CodeBlocks) != 1 {
		t.Fatalf("expected one code block, got %v", meta.CodeBlocks)
	}
}

func TestNormalizeSpacesCollapsesBlankLines(t *testing.T) {
	got := NormalizeSpaces("a\n\n\n\n\nb")
	if got != "a\n\nb" {
		t.Fatalf("expected collapsed blank lines, got %q", got)
	}
}

package postprocess

import (
	"context"
	"testing"

	kreuzberg "github.com/stackvity/kreuzberg-go/internal/kreuzbergtypes"
)

func TestKeywordProcessorRanksFrequentWords(t *testing.T) {
	p := NewKeywordProcessor(3, 0)
	result := &kreuzberg.ExtractionResult{
		Content: "invoice invoice invoice payment payment terms",
	}
	if err := p.Process(context.Background(), result); err != nil {
		t.Fatalf("Process() error: %v", err)
	}
	if len(result.Metadata.Keywords) == 0 {
		t.Fatal("expected at least one keyword")
	}
	if result.Metadata.Keywords[0].Text != "invoice" {
		t.Fatalf("expected 'invoice' to rank first, got %q", result.Metadata.Keywords[0].Text)
	}
}

func TestKeywordProcessorSkipsEmptyContent(t *testing.T) {
	p := NewKeywordProcessor(3, 0)
	result := &kreuzberg.ExtractionResult{}
	if err := p.Process(context.Background(), result); err != nil {
		t.Fatalf("Process() error: %v", err)
	}
	if result.Metadata.Keywords != nil {
		t.Fatal("expected no keywords for empty content")
	}
}

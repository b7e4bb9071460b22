package postprocess

import (
	"context"
	"strings"
	"testing"

	kreuzberg "github.com/stackvity/kreuzberg-go/internal/kreuzbergtypes"
)

func TestTokenReductionProcessorOffModeLeavesContentUnchanged(t *testing.T) {
	p := NewTokenReductionProcessor("off", false)
	result := &kreuzberg.ExtractionResult{Content: "the quick brown fox and the lazy dog"}
	original := result.Content

	if err := p.Process(context.Background(), result); err != nil {
		t.Fatalf("Process() error: %v", err)
	}
	if result.Content != original {
		t.Fatalf("expected content unchanged in off mode, got %q", result.Content)
	}
}

func TestTokenReductionProcessorAggressiveModeDropsStopwords(t *testing.T) {
	p := NewTokenReductionProcessor("aggressive", false)
	result := &kreuzberg.ExtractionResult{Content: "this is about the report and their findings"}

	if err := p.Process(context.Background(), result); err != nil {
		t.Fatalf("Process() error: %v", err)
	}
	if strings.Contains(result.Content, "about") || strings.Contains(result.Content, "their") {
		t.Fatalf("expected stopwords pruned, got %q", result.Content)
	}
	if !strings.Contains(result.Content, "report") {
		t.Fatalf("expected content word preserved, got %q", result.Content)
	}
}

func TestTokenReductionProcessorLightModeOnlyDropsShortStopwords(t *testing.T) {
	p := NewTokenReductionProcessor("light", false)
	result := &kreuzberg.ExtractionResult{Content: "the report about their findings"}

	if err := p.Process(context.Background(), result); err != nil {
		t.Fatalf("Process() error: %v", err)
	}
	if strings.Contains(result.Content, " the ") {
		t.Fatalf("expected short stopword 'the' pruned in light mode, got %q", result.Content)
	}
	if !strings.Contains(result.Content, "about") {
		t.Fatalf("expected longer stopword 'about' preserved in light mode, got %q", result.Content)
	}
}

func TestTokenReductionProcessorPreservesImportantKeywords(t *testing.T) {
	p := NewTokenReductionProcessor("aggressive", true)
	result := &kreuzberg.ExtractionResult{
		Content: "their report is about their findings",
		Metadata: kreuzberg.Metadata{
			Keywords: []kreuzberg.Keyword{{Text: "their", Score: 1}},
		},
	}

	if err := p.Process(context.Background(), result); err != nil {
		t.Fatalf("Process() error: %v", err)
	}
	if !strings.Contains(result.Content, "their") {
		t.Fatalf("expected 'their' preserved as an important keyword, got %q", result.Content)
	}
}

package postprocess

import (
	"context"
	"testing"

	kreuzberg "github.com/stackvity/kreuzberg-go/internal/kreuzbergtypes"
)

func TestCategoryProcessorClassifiesInvoice(t *testing.T) {
	p := NewCategoryProcessor(nil, 0.2)
	result := &kreuzberg.ExtractionResult{
		Content: "Invoice #123. Amount Due: $450. Bill To: Acme Corp. Payment Terms: Net 30.",
	}
	if err := p.Process(context.Background(), result); err != nil {
		t.Fatalf("Process() error: %v", err)
	}
	if result.Metadata.Category == nil || result.Metadata.Category.Primary != "invoice" {
		t.Fatalf("expected primary category 'invoice', got %+v", result.Metadata.Category)
	}
}

func TestCategoryProcessorBelowThresholdLeavesPrimaryEmpty(t *testing.T) {
	p := NewCategoryProcessor(nil, 0.99)
	result := &kreuzberg.ExtractionResult{Content: "a short ambiguous note"}
	if err := p.Process(context.Background(), result); err != nil {
		t.Fatalf("Process() error: %v", err)
	}
	if result.Metadata.Category == nil || result.Metadata.Category.Primary != "" {
		t.Fatalf("expected empty primary category below threshold, got %+v", result.Metadata.Category)
	}
}

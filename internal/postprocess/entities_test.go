package postprocess

import (
	"context"
	"testing"

	kreuzberg "github.com/stackvity/kreuzberg-go/internal/kreuzbergtypes"
)

func TestEntityProcessorRecognizesEmailsAndURLs(t *testing.T) {
	p := NewEntityProcessor(0)
	result := &kreuzberg.ExtractionResult{
		Content: "Contact us at support@example.com or visit https://example.com/help for more.",
	}
	if err := p.Process(context.Background(), result); err != nil {
		t.Fatalf("Process() error: %v", err)
	}
	emails, ok := result.Metadata.Entities["EMAIL"]
	if !ok || len(emails) != 1 || emails[0].Value != "support@example.com" {
		t.Fatalf("unexpected EMAIL entities: %+v", result.Metadata.Entities["EMAIL"])
	}
	urls, ok := result.Metadata.Entities["URL"]
	if !ok || len(urls) != 1 {
		t.Fatalf("unexpected URL entities: %+v", result.Metadata.Entities["URL"])
	}
}

func TestEntityProcessorNoMatchesLeavesEntitiesNil(t *testing.T) {
	p := NewEntityProcessor(0)
	result := &kreuzberg.ExtractionResult{Content: "plain text with nothing special in it"}
	if err := p.Process(context.Background(), result); err != nil {
		t.Fatalf("Process() error: %v", err)
	}
	if result.Metadata.Entities != nil {
		t.Fatalf("expected nil entities map, got %+v", result.Metadata.Entities)
	}
}

package extractors

import (
	"context"
	"testing"

	kreuzberg "github.com/stackvity/kreuzberg-go/internal/kreuzbergtypes"
)

func TestExtractPDFInvalidDocumentReturnsParsingError(t *testing.T) {
	_, err := ExtractPDF(context.Background(), Source{Bytes: []byte("not a pdf")}, nil)
	if err == nil {
		t.Fatal("expected an error for non-PDF input")
	}
	kind, ok := kreuzberg.KindOf(err)
	if !ok || kind != kreuzberg.ErrorKindParsing {
		t.Fatalf("expected parsing error, got kind=%v ok=%v", kind, ok)
	}
}

func TestExtractPDFMissingSourceFile(t *testing.T) {
	_, err := ExtractPDF(context.Background(), Source{Path: "/nonexistent/does-not-exist.pdf"}, nil)
	if err == nil {
		t.Fatal("expected an error for a missing source file")
	}
}

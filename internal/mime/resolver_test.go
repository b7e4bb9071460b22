package mime

import "testing"

func TestResolveByExtension(t *testing.T) {
	got, err := Resolve("report.pdf", nil)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if got != "application/pdf" {
		t.Fatalf("expected application/pdf, got %s", got)
	}
}

func TestResolveFallsBackToSniffing(t *testing.T) {
	got, err := Resolve("unknown", []byte("%PDF-1.4\n"))
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if got != "application/pdf" {
		t.Fatalf("expected application/pdf from sniff, got %s", got)
	}
}

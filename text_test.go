package kreuzberg

import "testing"

func TestCleanExtractedTextNormalizesAndRepairs(t *testing.T) {
	raw := []byte("Caf\xc3\xa9   has\t\textra   spaces\n\n\n\nand a blank-line run.")
	got := CleanExtractedText(raw)
	if got == "" {
		t.Fatal("expected non-empty cleaned text")
	}
	if got != NormalizeSpaces(FixMojibake(SafeDecode(raw))) {
		t.Fatalf("CleanExtractedText diverged from its component pipeline: %q", got)
	}
}

func TestSafeDecodeReplacesInvalidUTF8(t *testing.T) {
	raw := []byte{0xff, 0xfe, 'h', 'i'}
	got := SafeDecode(raw)
	if got == "" {
		t.Fatal("expected a non-empty decoded string even for invalid input")
	}
}

package kreuzberg

import "testing"

func TestCalculateQualityScoreCleanText(t *testing.T) {
	result := &ExtractionResult{
		Success: true,
		Content: "The quarterly report shows steady growth across all three regions this year.",
	}
	score := CalculateQualityScore(result)
	if score < 0.8 {
		t.Fatalf("expected a high quality score for clean text, got %f", score)
	}
}

func TestCalculateQualityScoreEmptyContent(t *testing.T) {
	if score := CalculateQualityScore(&ExtractionResult{Success: true, Content: ""}); score != 0 {
		t.Fatalf("expected 0 for empty content, got %f", score)
	}
	if score := CalculateQualityScore(nil); score != 0 {
		t.Fatalf("expected 0 for nil result, got %f", score)
	}
}

func TestCalculateQualityScoreFailedExtractionIsZero(t *testing.T) {
	result := &ExtractionResult{Success: false, Content: "irrelevant"}
	if score := CalculateQualityScore(result); score != 0 {
		t.Fatalf("expected 0 for a failed extraction, got %f", score)
	}
}

func TestCalculateQualityScorePenalizesMostlyWhitespace(t *testing.T) {
	clean := CalculateQualityScore(&ExtractionResult{Success: true, Content: "Coherent sentence with real words in it."})
	sparse := CalculateQualityScore(&ExtractionResult{Success: true, Content: "a                                          b"})
	if sparse >= clean {
		t.Fatalf("expected mostly-whitespace content to score lower than clean text: sparse=%f clean=%f", sparse, clean)
	}
}

func TestCalculateQualityScorePenalizesReplacementCharacters(t *testing.T) {
	clean := CalculateQualityScore(&ExtractionResult{Success: true, Content: "Coherent sentence with real words in it."})
	garbled := CalculateQualityScore(&ExtractionResult{Success: true, Content: "���������� garbled text ����"})
	if garbled >= clean {
		t.Fatalf("expected replacement-character-heavy content to score lower: garbled=%f clean=%f", garbled, clean)
	}
}

package kreuzberg

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// CalculateQualityScore estimates how trustworthy an extraction's content
// is, as a value in [0, 1]. It penalizes empty or near-empty content, a low
// ratio of printable-to-total characters (a symptom of a wrong OCR language
// or binary data misread as text), and an unusually high ratio of
// whitespace (a symptom of a layout-extraction failure that left mostly
// blank lines). Callers can use this to flag low-confidence results for
// manual review without re-running extraction.
func CalculateQualityScore(result *ExtractionResult) float64 {
	if result == nil || !result.Success || result.Content == "" {
		return 0
	}

	content := result.Content
	total := utf8.RuneCountInString(content)
	if total == 0 {
		return 0
	}

	var printable, whitespace, replacement int
	for _, r := range content {
		switch {
		case r == utf8.RuneError:
			replacement++
		case unicode.IsSpace(r):
			whitespace++
		case unicode.IsPrint(r):
			printable++
		}
	}

	printableRatio := float64(printable) / float64(total)
	whitespaceRatio := float64(whitespace) / float64(total)
	replacementRatio := float64(replacement) / float64(total)

	score := printableRatio
	if whitespaceRatio > 0.5 {
		score -= (whitespaceRatio - 0.5)
	}
	score -= replacementRatio * 2

	if length := len(strings.TrimSpace(content)); length < 16 {
		score *= float64(length) / 16
	}

	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score
}

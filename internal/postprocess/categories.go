package postprocess

import (
	"context"
	"strings"

	kreuzberg "github.com/stackvity/kreuzberg-go/internal/kreuzbergtypes"
)

// CategoryProcessor classifies a document by scoring keyword-bucket
// overlap against its content. No zero-shot transformer classifier exists
// in the reference corpus; DocumentTypes below mirrors the original's
// DOCUMENT_TYPES default category set, scored by keyword overlap instead of
// a transformer (see DESIGN.md).
type CategoryProcessor struct {
	Categories map[string][]string
	Threshold  float64
}

// DocumentTypes is the default category set, mirroring the original
// processor's DOCUMENT_TYPES bucket of common business-document kinds.
var DocumentTypes = map[string][]string{
	"invoice":      {"invoice", "amount due", "bill to", "payment terms", "itemized"},
	"contract":     {"agreement", "parties", "hereinafter", "whereas", "terms and conditions"},
	"resume":       {"experience", "education", "skills", "resume", "curriculum vitae"},
	"report":       {"summary", "findings", "conclusion", "analysis", "executive summary"},
	"email":        {"subject:", "dear", "regards", "sincerely"},
	"letter":       {"dear", "sincerely", "yours truly"},
	"memo":         {"memorandum", "memo", "re:"},
	"presentation": {"slide", "agenda", "overview"},
	"spreadsheet":  {"column", "row", "total", "sum"},
	"form":         {"please fill", "signature", "date of birth", "applicant"},
}

// NewCategoryProcessor builds a CategoryProcessor against the given
// categories with a confidence threshold below which Primary is left empty.
func NewCategoryProcessor(categories map[string][]string, threshold float64) *CategoryProcessor {
	if categories == nil {
		categories = DocumentTypes
	}
	return &CategoryProcessor{Categories: categories, Threshold: threshold}
}

func (p *CategoryProcessor) Name() string { return "category_extraction" }
func (p *CategoryProcessor) Stage() Stage { return StageLate }

func (p *CategoryProcessor) Process(ctx context.Context, result *kreuzberg.ExtractionResult) error {
	if result.Content == "" || result.Metadata.Category != nil {
		return nil
	}

	content := strings.ToLower(result.Content)
	scores := make(map[string]float64, len(p.Categories))
	best := ""
	bestScore := 0.0

	for category, keywords := range p.Categories {
		matches := 0
		for _, kw := range keywords {
			if strings.Contains(content, kw) {
				matches++
			}
		}
		score := 0.0
		if len(keywords) > 0 {
			score = float64(matches) / float64(len(keywords))
		}
		scores[category] = score
		if score > bestScore {
			bestScore = score
			best = category
		}
	}

	primary := ""
	if bestScore >= p.Threshold {
		primary = best
	}

	result.Metadata.Category = &kreuzberg.CategoryResult{
		Primary:    primary,
		Scores:     scores,
		Confidence: bestScore,
	}
	return nil
}

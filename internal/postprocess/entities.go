package postprocess

import (
	"context"
	"regexp"

	kreuzberg "github.com/stackvity/kreuzberg-go/internal/kreuzbergtypes"
)

// EntityProcessor recognizes emails, URLs, dates and money amounts via
// regex. No NER library (spaCy's Go equivalent) exists in the reference
// corpus; the original implementation's own lightweight-heuristic tier is
// followed instead of its ML tier (see DESIGN.md).
type EntityProcessor struct {
	MaxPerType int
}

// NewEntityProcessor builds an EntityProcessor capping each entity type at
// maxPerType matches (0 means unlimited).
func NewEntityProcessor(maxPerType int) *EntityProcessor {
	return &EntityProcessor{MaxPerType: maxPerType}
}

func (p *EntityProcessor) Name() string { return "entity_extraction" }
func (p *EntityProcessor) Stage() Stage { return StageEarly }

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	urlRe   = regexp.MustCompile(`https?://[^\s<>"']+`)
	dateRe  = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b|\b\d{1,2}/\d{1,2}/\d{2,4}\b`)
	moneyRe = regexp.MustCompile(`[$€£]\s?\d[\d,]*(?:\.\d{2})?|\b\d[\d,]*(?:\.\d{2})?\s?(?:USD|EUR|GBP)\b`)
)

func (p *EntityProcessor) Process(ctx context.Context, result *kreuzberg.ExtractionResult) error {
	if result.Content == "" {
		return nil
	}
	if result.Metadata.Entities != nil {
		return nil
	}

	entities := map[string][]kreuzberg.Entity{
		"EMAIL": matchEntities("EMAIL", emailRe, result.Content, p.MaxPerType),
		"URL":   matchEntities("URL", urlRe, result.Content, p.MaxPerType),
		"DATE":  matchEntities("DATE", dateRe, result.Content, p.MaxPerType),
		"MONEY": matchEntities("MONEY", moneyRe, result.Content, p.MaxPerType),
	}

	for kind, matches := range entities {
		if len(matches) == 0 {
			delete(entities, kind)
		}
	}

	if len(entities) > 0 {
		result.Metadata.Entities = entities
	}
	return nil
}

func matchEntities(entityType string, re *regexp.Regexp, content string, maxPerType int) []kreuzberg.Entity {
	locations := re.FindAllStringIndex(content, -1)
	if maxPerType > 0 && len(locations) > maxPerType {
		locations = locations[:maxPerType]
	}
	entities := make([]kreuzberg.Entity, len(locations))
	for i, loc := range locations {
		entities[i] = kreuzberg.Entity{
			Type:  entityType,
			Value: content[loc[0]:loc[1]],
			Start: loc[0],
			End:   loc[1],
		}
	}
	return entities
}

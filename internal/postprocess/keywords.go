package postprocess

import (
	"context"
	"regexp"
	"sort"
	"strings"

	kreuzberg "github.com/stackvity/kreuzberg-go/internal/kreuzbergtypes"
)

// KeywordProcessor scores candidate keywords by frequency-weighted
// distinctiveness. No embeddings library exists in the reference corpus to
// stand in for the original's KeyBERT/sentence-transformers scorer, so this
// is a lightweight TF-based heuristic (see DESIGN.md).
type KeywordProcessor struct {
	TopN     int
	MinScore float64
}

// NewKeywordProcessor builds a KeywordProcessor returning at most topN
// keywords scoring at least minScore.
func NewKeywordProcessor(topN int, minScore float64) *KeywordProcessor {
	if topN <= 0 {
		topN = 10
	}
	return &KeywordProcessor{TopN: topN, MinScore: minScore}
}

func (p *KeywordProcessor) Name() string { return "keyword_extraction" }
func (p *KeywordProcessor) Stage() Stage { return StageMiddle }

func (p *KeywordProcessor) Process(ctx context.Context, result *kreuzberg.ExtractionResult) error {
	if result.Content == "" {
		return nil
	}
	if result.Metadata.Keywords != nil {
		return nil
	}

	counts := wordFrequencies(result.Content)
	if len(counts) == 0 {
		return nil
	}

	total := 0
	for _, c := range counts {
		total += c
	}

	type scored struct {
		word  string
		score float64
	}
	candidates := make([]scored, 0, len(counts))
	for word, count := range counts {
		score := float64(count) / float64(total)
		if score >= p.MinScore {
			candidates = append(candidates, scored{word: word, score: score})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].word < candidates[j].word
	})

	if len(candidates) > p.TopN {
		candidates = candidates[:p.TopN]
	}

	keywords := make([]kreuzberg.Keyword, len(candidates))
	for i, c := range candidates {
		keywords[i] = kreuzberg.Keyword{Text: c.word, Score: c.score}
	}
	result.Metadata.Keywords = keywords
	return nil
}

var wordRe = regexp.MustCompile(`[a-zA-Z][a-zA-Z'-]{2,}`)

// stopwords is the common-word exclusion set applied before frequency
// scoring, matching KeyBERT's stop_words="english" configuration.
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "can": true, "her": true,
	"was": true, "one": true, "our": true, "out": true, "day": true,
	"get": true, "has": true, "him": true, "his": true, "how": true,
	"man": true, "new": true, "now": true, "old": true, "see": true,
	"two": true, "way": true, "who": true, "boy": true, "did": true,
	"its": true, "let": true, "put": true, "say": true, "she": true,
	"too": true, "use": true, "that": true, "this": true, "with": true,
	"from": true, "they": true, "have": true, "were": true, "been": true,
	"their": true, "which": true, "would": true, "there": true, "about": true,
}

func wordFrequencies(content string) map[string]int {
	counts := make(map[string]int)
	for _, word := range wordRe.FindAllString(content, -1) {
		lower := strings.ToLower(word)
		if stopwords[lower] {
			continue
		}
		counts[lower]++
	}
	return counts
}

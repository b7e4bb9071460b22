package postprocess

import (
	"context"
	"regexp"
	"strings"

	kreuzberg "github.com/stackvity/kreuzberg-go/internal/kreuzbergtypes"
)

// TokenReductionProcessor strips low-information stopwords from extracted
// content ahead of embedding, grounded on the original's Rust-accelerated
// reducer and its StopwordsManager. No SIMD/semantic-clustering equivalent
// exists in the reference corpus, so this applies a plain stopword-pruning
// pass scaled by Mode (see DESIGN.md).
type TokenReductionProcessor struct {
	Mode                   string
	PreserveImportantWords bool
}

// NewTokenReductionProcessor builds a TokenReductionProcessor for the given
// mode ("off", "light" or "aggressive"; an empty mode behaves like "off" and
// any other value behaves like "aggressive").
func NewTokenReductionProcessor(mode string, preserveImportantWords bool) *TokenReductionProcessor {
	return &TokenReductionProcessor{Mode: mode, PreserveImportantWords: preserveImportantWords}
}

func (p *TokenReductionProcessor) Name() string { return "token_reduction" }
func (p *TokenReductionProcessor) Stage() Stage  { return StageLate }

var tokenSplitRe = regexp.MustCompile(`\S+|\s+`)

func (p *TokenReductionProcessor) Process(ctx context.Context, result *kreuzberg.ExtractionResult) error {
	if p.Mode == "" || p.Mode == "off" || result.Content == "" {
		return nil
	}

	important := p.importantWords(result)

	tokens := tokenSplitRe.FindAllString(result.Content, -1)
	var b strings.Builder
	b.Grow(len(result.Content))

	for _, tok := range tokens {
		if strings.TrimSpace(tok) == "" {
			b.WriteString(tok)
			continue
		}
		if p.shouldDrop(tok, important) {
			continue
		}
		b.WriteString(tok)
	}

	result.Content = collapseBlankRuns(b.String())
	return nil
}

// shouldDrop reports whether tok is a prunable stopword under the processor's
// mode: "light" only drops the shortest, highest-frequency stopwords; any
// other non-off mode ("aggressive" and unrecognized values) drops the full
// stopword set.
func (p *TokenReductionProcessor) shouldDrop(tok string, important map[string]bool) bool {
	bare := strings.Trim(tok, ".,;:!?\"'()[]{}")
	if bare == "" {
		return false
	}
	lower := strings.ToLower(bare)
	if !stopwords[lower] {
		return false
	}
	if p.PreserveImportantWords && important[lower] {
		return false
	}
	if p.Mode == "light" {
		return len(bare) <= 3
	}
	return true
}

// importantWords collects the lowercased text of already-extracted keywords
// and entity values, which token reduction does not prune when
// PreserveImportantWords is set.
func (p *TokenReductionProcessor) importantWords(result *kreuzberg.ExtractionResult) map[string]bool {
	important := make(map[string]bool)
	for _, kw := range result.Metadata.Keywords {
		important[strings.ToLower(kw.Text)] = true
	}
	for _, entities := range result.Metadata.Entities {
		for _, e := range entities {
			for _, word := range strings.Fields(strings.ToLower(e.Value)) {
				important[word] = true
			}
		}
	}
	return important
}

var blankRunRe = regexp.MustCompile(`[ \t]{2,}`)

func collapseBlankRuns(s string) string {
	return blankRunRe.ReplaceAllString(s, " ")
}

package extractors

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	kreuzberg "github.com/stackvity/kreuzberg-go/internal/kreuzbergtypes"
)

// ExtractText decodes plain text / Markdown / CSV content, repairing
// mojibake and normalizing whitespace before computing line/word/character
// counts, headers, links and code-block spans for Markdown-shaped input.
func ExtractText(ctx context.Context, src Source, cfg *kreuzberg.ExtractionConfig) (*kreuzberg.ExtractionResult, error) {
	raw, err := readAll(src)
	if err != nil {
		return nil, err
	}

	content := SafeDecode(raw)
	content = FixMojibake(content)
	content = NormalizeSpaces(content)

	meta := kreuzberg.TextMetadata{
		LineCount:      strings.Count(content, "\n") + 1,
		WordCount:      len(strings.Fields(content)),
		CharacterCount: utf8.RuneCountInString(content),
		Headers:        markdownHeaders(content),
		Links:          markdownLinks(content),
		CodeBlocks:     markdownCodeBlocks(content),
	}

	return &kreuzberg.ExtractionResult{
		Content:  content,
		MimeType: "text/plain",
		Success:  true,
		Metadata: kreuzberg.Metadata{
			Format: kreuzberg.FormatMetadata{Type: kreuzberg.FormatText, Text: &meta},
		},
	}, nil
}

// SafeDecode decodes raw bytes as UTF-8, replacing invalid sequences rather
// than failing, mirroring the original implementation's safe_decode helper.
func SafeDecode(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	return strings.ToValidUTF8(string(raw), "�")
}

var mojibakePairs = strings.NewReplacer(
	"Ã©", "é",
	"Ã¨", "è",
	"Ã¢", "â",
	"Ã´", "ô",
	"â€™", "'",
	"â€œ", "\"",
	"â€", "\"",
	"Â ", " ",
)

// FixMojibake repairs the most common UTF-8-interpreted-as-Latin-1 mangling
// patterns seen in documents exported by legacy tooling.
func FixMojibake(s string) string {
	return mojibakePairs.Replace(s)
}

var multiSpace = regexp.MustCompile(`[ \t]+`)
var multiBlankLine = regexp.MustCompile(`\n{3,}`)

// NormalizeSpaces collapses runs of horizontal whitespace and excessive
// blank lines while preserving paragraph breaks.
func NormalizeSpaces(s string) string {
	s = multiSpace.ReplaceAllString(s, " ")
	s = multiBlankLine.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

var headingRe = regexp.MustCompile(`(?m)^#{1,6}\s+(.*)$`)
var linkRe = regexp.MustCompile(`\[([^\]]*)\]\(([^)]+)\)`)
var codeBlockRe = regexp.MustCompile("(?s)```([a-zA-Z0-9_+-]*)\n(.*?)```")

func markdownHeaders(content string) []string {
	matches := headingRe.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}
	headers := make([]string, 0, len(matches))
	for _, m := range matches {
		headers = append(headers, strings.TrimSpace(m[1]))
	}
	return headers
}

func markdownLinks(content string) [][2]string {
	matches := linkRe.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}
	links := make([][2]string, 0, len(matches))
	for _, m := range matches {
		links = append(links, [2]string{m[1], m[2]})
	}
	return links
}

func markdownCodeBlocks(content string) [][2]string {
	matches := codeBlockRe.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}
	blocks := make([][2]string, 0, len(matches))
	for _, m := range matches {
		blocks = append(blocks, [2]string{m[1], m[2]})
	}
	return blocks
}

// Package chunking splits normalized document content into overlapping
// windows sized for downstream embedding, and recognizes markdown structure
// so chunk boundaries fall on headings and paragraphs rather than mid-word.
package chunking

import (
	"sort"
	"strings"

	kreuzberg "github.com/stackvity/kreuzberg-go/internal/kreuzbergtypes"
)

const (
	defaultMaxCharacters     = 2000
	defaultOverlapCharacters = 200

	// MarkdownMimeType is the mime type that routes content through ChunkMarkdown.
	MarkdownMimeType = "text/markdown"
)

// Chunks splits content into Chunk windows according to cfg, choosing the
// markdown-aware splitter when mimeType is text/markdown.
func Chunks(content string, mimeType string, cfg *kreuzberg.ChunkingConfig) []kreuzberg.Chunk {
	maxChars, overlap := resolveSizes(cfg)
	if mimeType == MarkdownMimeType {
		return ChunkMarkdown(content, maxChars, overlap)
	}
	return ChunkText(content, maxChars, overlap)
}

func resolveSizes(cfg *kreuzberg.ChunkingConfig) (int, int) {
	maxChars := defaultMaxCharacters
	overlap := defaultOverlapCharacters
	if cfg == nil {
		return maxChars, overlap
	}
	if cfg.ChunkSize != nil && *cfg.ChunkSize > 0 {
		maxChars = *cfg.ChunkSize
	}
	if cfg.ChunkOverlap != nil && *cfg.ChunkOverlap >= 0 {
		overlap = *cfg.ChunkOverlap
	}
	if overlap >= maxChars {
		overlap = maxChars / 10
	}
	return maxChars, overlap
}

// ChunkText splits plain text into overlapping windows, preferring to break
// on paragraph then sentence then whitespace boundaries so a window rarely
// splits a word.
func ChunkText(content string, maxCharacters, overlapCharacters int) []kreuzberg.Chunk {
	return chunkByBoundaries(content, maxCharacters, overlapCharacters, textBreakpoints(content))
}

// ChunkMarkdown splits markdown content the same way as ChunkText but also
// treats heading lines (#, ##, ...) as preferred breakpoints, so a chunk
// boundary rarely falls in the middle of a section.
func ChunkMarkdown(content string, maxCharacters, overlapCharacters int) []kreuzberg.Chunk {
	breaks := textBreakpoints(content)
	breaks = append(breaks, headingBreakpoints(content)...)
	sortBreakpoints(breaks)
	return chunkByBoundaries(content, maxCharacters, overlapCharacters, breaks)
}

// chunkByBoundaries greedily packs breakpoints into windows no larger than
// maxCharacters, then re-opens each new window overlapCharacters before the
// previous window's end.
func chunkByBoundaries(content string, maxCharacters, overlapCharacters int, breaks []int) []kreuzberg.Chunk {
	if content == "" {
		return nil
	}
	if maxCharacters <= 0 {
		maxCharacters = defaultMaxCharacters
	}

	var windows [][2]int
	start := 0
	for start < len(content) {
		limit := start + maxCharacters
		if limit >= len(content) {
			windows = append(windows, [2]int{start, len(content)})
			break
		}

		end := bestBreakBefore(breaks, limit, start)
		if end <= start {
			end = limit
		}
		windows = append(windows, [2]int{start, end})

		next := end - overlapCharacters
		if next <= start {
			next = end
		}
		start = next
	}

	chunks := make([]kreuzberg.Chunk, 0, len(windows))
	for i, w := range windows {
		chunks = append(chunks, kreuzberg.Chunk{
			Content: content[w[0]:w[1]],
			Metadata: kreuzberg.ChunkMetadata{
				ByteStart:   uint64(w[0]),
				ByteEnd:     uint64(w[1]),
				ChunkIndex:  i,
				TotalChunks: len(windows),
			},
		})
	}
	return chunks
}

// bestBreakBefore returns the largest breakpoint in (after, limit], or -1 if
// none exists.
func bestBreakBefore(breaks []int, limit, after int) int {
	best := -1
	for _, b := range breaks {
		if b > after && b <= limit && b > best {
			best = b
		}
	}
	return best
}

// textBreakpoints returns candidate split offsets at paragraph boundaries
// (blank lines), falling back to sentence ends and whitespace runs.
func textBreakpoints(content string) []int {
	var offsets []int
	for i := 0; i < len(content); i++ {
		switch {
		case i > 0 && content[i] == '\n' && content[i-1] == '\n':
			offsets = append(offsets, i+1)
		case content[i] == '.' || content[i] == '!' || content[i] == '?':
			if i+1 < len(content) && (content[i+1] == ' ' || content[i+1] == '\n') {
				offsets = append(offsets, i+1)
			}
		case content[i] == ' ' || content[i] == '\n':
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}

// headingBreakpoints returns the byte offset of the start of every markdown
// heading line ("#" through "######").
func headingBreakpoints(content string) []int {
	var offsets []int
	lineStart := 0
	for i := 0; i <= len(content); i++ {
		if i == len(content) || content[i] == '\n' {
			line := content[lineStart:i]
			if strings.HasPrefix(strings.TrimLeft(line, " "), "#") {
				offsets = append(offsets, lineStart)
			}
			lineStart = i + 1
		}
	}
	return offsets
}

func sortBreakpoints(offsets []int) {
	sort.Ints(offsets)
}

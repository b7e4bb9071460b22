package kreuzberg

import "github.com/stackvity/kreuzberg-go/internal/extractors"

// SafeDecode decodes raw bytes as UTF-8, replacing invalid sequences rather
// than failing.
func SafeDecode(raw []byte) string {
	return extractors.SafeDecode(raw)
}

// FixMojibake repairs the most common UTF-8-interpreted-as-Latin-1 mangling
// patterns seen in documents exported by legacy tooling.
func FixMojibake(s string) string {
	return extractors.FixMojibake(s)
}

// NormalizeSpaces collapses runs of horizontal whitespace and excessive
// blank lines while preserving paragraph breaks.
func NormalizeSpaces(s string) string {
	return extractors.NormalizeSpaces(s)
}

// CleanExtractedText runs the same decode-repair-normalize pipeline every
// extractor applies to its raw text before returning it, exposed so callers
// can apply it to text obtained outside of an Extract* call.
func CleanExtractedText(raw []byte) string {
	return NormalizeSpaces(FixMojibake(SafeDecode(raw)))
}

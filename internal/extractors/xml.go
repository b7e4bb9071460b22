package extractors

import (
	"context"
	"encoding/xml"
	"strings"

	"github.com/beevik/etree"
	kreuzberg "github.com/stackvity/kreuzberg-go/internal/kreuzbergtypes"
)

// ExtractXML parses XML leniently: well-formed documents are walked with
// etree to recover element statistics, while malformed input falls back to
// stripping tags and concatenating text nodes rather than failing outright,
// per this engine's lenient-XML contract.
func ExtractXML(ctx context.Context, src Source, cfg *kreuzberg.ExtractionConfig) (*kreuzberg.ExtractionResult, error) {
	raw, err := readAll(src)
	if err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	if parseErr := doc.ReadFromBytes(raw); parseErr == nil {
		content, elementCount, unique := walkXML(doc)
		meta := kreuzberg.XMLMetadata{
			ElementCount:   elementCount,
			UniqueElements: unique,
			WellFormed:     true,
		}
		return &kreuzberg.ExtractionResult{
			Content:  NormalizeSpaces(content),
			MimeType: "application/xml",
			Success:  true,
			Metadata: kreuzberg.Metadata{
				Format: kreuzberg.FormatMetadata{Type: kreuzberg.FormatXML, XML: &meta},
			},
		}, nil
	}

	// Lenient fallback: strip tags with the stdlib tokenizer where possible,
	// otherwise degrade to raw text-node concatenation.
	content := stripTagsLenient(string(raw))
	meta := kreuzberg.XMLMetadata{WellFormed: false}
	return &kreuzberg.ExtractionResult{
		Content:  NormalizeSpaces(content),
		MimeType: "application/xml",
		Success:  true,
		Metadata: kreuzberg.Metadata{
			Format: kreuzberg.FormatMetadata{Type: kreuzberg.FormatXML, XML: &meta},
		},
	}, nil
}

func walkXML(doc *etree.Document) (string, int, []string) {
	var sb strings.Builder
	count := 0
	seen := map[string]bool{}
	var unique []string

	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		count++
		if !seen[el.Tag] {
			seen[el.Tag] = true
			unique = append(unique, el.Tag)
		}
		for _, child := range el.Child {
			if cdata, ok := child.(*etree.CharData); ok {
				text := strings.TrimSpace(cdata.Data)
				if text != "" {
					sb.WriteString(text)
					sb.WriteString(" ")
				}
			}
		}
		for _, child := range el.ChildElements() {
			walk(child)
		}
	}
	if doc.Root() != nil {
		walk(doc.Root())
	}
	return sb.String(), count, unique
}

// stripTagsLenient extracts text nodes from possibly-malformed XML using the
// standard library's tolerant tokenizer, falling back to naive tag-removal
// on a hard decode failure.
func stripTagsLenient(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	decoder.Strict = false
	decoder.AutoClose = xml.HTMLAutoClose
	decoder.Entity = xml.HTMLEntity

	var sb strings.Builder
	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		if cd, ok := tok.(xml.CharData); ok {
			sb.Write(cd)
			sb.WriteString(" ")
		}
	}
	if sb.Len() > 0 {
		return sb.String()
	}
	return naiveTagStrip(raw)
}

func naiveTagStrip(raw string) string {
	var sb strings.Builder
	inTag := false
	for _, r := range raw {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

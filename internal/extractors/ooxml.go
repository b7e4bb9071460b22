package extractors

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"sort"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	kreuzberg "github.com/stackvity/kreuzberg-go/internal/kreuzbergtypes"
)

// coreProperties mirrors docProps/core.xml's Dublin Core properties, shared
// by both the word-processing and presentation OOXML containers.
type coreProperties struct {
	Title    string `xml:"title"`
	Creator  string `xml:"creator"`
	Subject  string `xml:"subject"`
	Keywords string `xml:"keywords"`
	Created  string `xml:"created"`
	Modified string `xml:"modified"`
}

// splitKeywords splits a core-properties keywords field on the common
// separators document editors use (comma, semicolon) and drops empties.
func splitKeywords(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ';' })
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if trimmed := strings.TrimSpace(f); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func openZip(raw []byte) (*zip.Reader, error) {
	return zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
}

func readZipMember(r *zip.Reader, name string) ([]byte, bool) {
	for _, f := range r.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, false
			}
			defer rc.Close()
			buf := new(bytes.Buffer)
			if _, err := buf.ReadFrom(rc); err != nil {
				return nil, false
			}
			return buf.Bytes(), true
		}
	}
	return nil, false
}

func readCoreProperties(r *zip.Reader) coreProperties {
	var props coreProperties
	if data, ok := readZipMember(r, "docProps/core.xml"); ok {
		_ = xml.Unmarshal(data, &props)
	}
	return props
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ExtractDOCX reads a Word (OOXML wordprocessingml) document: body paragraph
// text from word/document.xml, and title/author/subject/dates from
// docProps/core.xml, the same ZIP + XML approach xml.go uses for lenient XML.
func ExtractDOCX(ctx context.Context, src Source, cfg *kreuzberg.ExtractionConfig) (*kreuzberg.ExtractionResult, error) {
	raw, err := readAll(src)
	if err != nil {
		return nil, err
	}

	zr, err := openZip(raw)
	if err != nil {
		return nil, kreuzberg.NewParsingError("docx is not a valid ZIP/OOXML container", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", err)
	}

	docXML, ok := readZipMember(zr, "word/document.xml")
	if !ok {
		return nil, kreuzberg.NewParsingError("docx is missing word/document.xml", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", nil)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(docXML); err != nil {
		return nil, kreuzberg.NewParsingError("failed to parse word/document.xml", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", err)
	}

	paragraphs := walkDocxParagraphs(doc)
	props := readCoreProperties(zr)

	meta := kreuzberg.DocumentMetadata{
		Title:          strPtr(props.Title),
		Author:         strPtr(props.Creator),
		Subject:        strPtr(props.Subject),
		Keywords:       splitKeywords(props.Keywords),
		CreatedAt:      strPtr(props.Created),
		ModifiedAt:     strPtr(props.Modified),
		ParagraphCount: len(paragraphs),
	}

	return &kreuzberg.ExtractionResult{
		Content:  NormalizeSpaces(strings.Join(paragraphs, "\n\n")),
		MimeType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		Success:  true,
		Metadata: kreuzberg.Metadata{
			Format: kreuzberg.FormatMetadata{Type: kreuzberg.FormatDocument, Document: &meta},
		},
	}, nil
}

// walkDocxParagraphs collects each <w:p> paragraph's concatenated <w:t> runs.
func walkDocxParagraphs(doc *etree.Document) []string {
	var paragraphs []string
	for _, p := range doc.FindElements("//body/p") {
		var sb strings.Builder
		for _, t := range p.FindElements(".//t") {
			sb.WriteString(t.Text())
		}
		text := strings.TrimSpace(sb.String())
		if text != "" {
			paragraphs = append(paragraphs, text)
		}
	}
	return paragraphs
}

// ExtractPPTX reads a PowerPoint (OOXML presentationml) deck: slide text runs
// from ppt/slides/slideN.xml in slide order, one PageContent per slide, plus
// title/author from docProps/core.xml.
func ExtractPPTX(ctx context.Context, src Source, cfg *kreuzberg.ExtractionConfig) (*kreuzberg.ExtractionResult, error) {
	raw, err := readAll(src)
	if err != nil {
		return nil, err
	}

	zr, err := openZip(raw)
	if err != nil {
		return nil, kreuzberg.NewParsingError("pptx is not a valid ZIP/OOXML container", "application/vnd.openxmlformats-officedocument.presentationml.presentation", err)
	}

	slideNames := slideFileNames(zr)
	if len(slideNames) == 0 {
		return nil, kreuzberg.NewParsingError("pptx contains no slides", "application/vnd.openxmlformats-officedocument.presentationml.presentation", nil)
	}

	pages := make([]kreuzberg.PageContent, 0, len(slideNames))
	var allText []string
	for i, name := range slideNames {
		data, ok := readZipMember(zr, name)
		if !ok {
			continue
		}
		doc := etree.NewDocument()
		if err := doc.ReadFromBytes(data); err != nil {
			continue
		}
		text := walkSlideText(doc)
		pages = append(pages, kreuzberg.PageContent{
			PageNumber: uint64(i + 1),
			Content:    text,
		})
		if text != "" {
			allText = append(allText, text)
		}
	}

	props := readCoreProperties(zr)
	meta := kreuzberg.PresentationMetadata{
		Title:      strPtr(props.Title),
		Author:     strPtr(props.Creator),
		SlideCount: len(slideNames),
	}

	return &kreuzberg.ExtractionResult{
		Content:  NormalizeSpaces(strings.Join(allText, "\n\n")),
		MimeType: "application/vnd.openxmlformats-officedocument.presentationml.presentation",
		Success:  true,
		Pages:    pages,
		Metadata: kreuzberg.Metadata{
			Format: kreuzberg.FormatMetadata{Type: kreuzberg.FormatPresentation, Presentation: &meta},
			PageStructure: &kreuzberg.PageStructure{
				TotalCount: uint64(len(slideNames)),
				UnitType:   kreuzberg.PageUnitTypeSlide,
			},
		},
	}, nil
}

func walkSlideText(doc *etree.Document) string {
	var sb strings.Builder
	for _, t := range doc.FindElements("//t") {
		text := t.Text()
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(text)
	}
	return sb.String()
}

// slideFileNames returns ppt/slides/slideN.xml entries sorted by slide
// number, since ZIP directory order is not guaranteed to match slide order.
func slideFileNames(r *zip.Reader) []string {
	type indexed struct {
		name string
		n    int
	}
	var slides []indexed
	for _, f := range r.File {
		if strings.HasPrefix(f.Name, "ppt/slides/slide") && strings.HasSuffix(f.Name, ".xml") &&
			!strings.Contains(f.Name, "_rels") {
			base := strings.TrimSuffix(strings.TrimPrefix(f.Name, "ppt/slides/slide"), ".xml")
			n, err := strconv.Atoi(base)
			if err != nil {
				continue
			}
			slides = append(slides, indexed{name: f.Name, n: n})
		}
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].n < slides[j].n })

	names := make([]string, len(slides))
	for i, s := range slides {
		names[i] = s.name
	}
	return names
}

package extractors

import (
	"bytes"
	"context"
	"strings"

	"github.com/ledongthuc/pdf"
	kreuzberg "github.com/stackvity/kreuzberg-go/internal/kreuzbergtypes"
)

// ExtractPDF extracts per-page text and document metadata (page count,
// title, producer, author) from a PDF. Encrypted documents are not
// decrypted: configured passwords are not tried.
func ExtractPDF(ctx context.Context, src Source, cfg *kreuzberg.ExtractionConfig) (*kreuzberg.ExtractionResult, error) {
	raw, err := readAll(src)
	if err != nil {
		return nil, err
	}

	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, kreuzberg.NewParsingError("opening PDF document", "application/pdf", err)
	}

	var sb strings.Builder
	var pages []kreuzberg.PageContent
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
		pages = append(pages, kreuzberg.PageContent{PageNumber: uint64(i), Content: text})
	}

	meta := kreuzberg.PDFMetadata{
		PageCount: kreuzberg.IntPtr(numPages),
	}

	extractMetadata := true
	if cfg != nil && cfg.PDFOptions != nil && cfg.PDFOptions.ExtractMetadata != nil {
		extractMetadata = *cfg.PDFOptions.ExtractMetadata
	}
	if extractMetadata {
		if info := reader.Trailer().Key("Info"); !info.IsNull() {
			if title := info.Key("Title").Text(); title != "" {
				meta.Title = kreuzberg.StringPtr(title)
			}
			if producer := info.Key("Producer").Text(); producer != "" {
				meta.Producer = kreuzberg.StringPtr(producer)
			}
			if author := info.Key("Author").Text(); author != "" {
				meta.Authors = []string{author}
			}
		}
	}

	return &kreuzberg.ExtractionResult{
		Content:  NormalizeSpaces(sb.String()),
		MimeType: "application/pdf",
		Success:  true,
		Pages:    pages,
		Metadata: kreuzberg.Metadata{
			Format: kreuzberg.FormatMetadata{Type: kreuzberg.FormatPDF, PDF: &meta},
		},
	}, nil
}

package extractors

import (
	"bytes"
	"context"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	kreuzberg "github.com/stackvity/kreuzberg-go/internal/kreuzbergtypes"
)

// ExtractHTML converts HTML to Markdown and pulls head-section metadata
// (title, description, keywords, author, canonical link).
func ExtractHTML(ctx context.Context, src Source, cfg *kreuzberg.ExtractionConfig) (*kreuzberg.ExtractionResult, error) {
	raw, err := readAll(src)
	if err != nil {
		return nil, err
	}

	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(string(raw))
	if err != nil {
		return nil, kreuzberg.NewParsingError("converting HTML to markdown", "text/html", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, kreuzberg.NewParsingError("parsing HTML document", "text/html", err)
	}

	meta := kreuzberg.HTMLMetadata{}
	if title := doc.Find("title").First().Text(); title != "" {
		meta.Title = kreuzberg.StringPtr(title)
	}
	if desc, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		meta.Description = kreuzberg.StringPtr(desc)
	}
	if kw, ok := doc.Find(`meta[name="keywords"]`).First().Attr("content"); ok {
		meta.Keywords = kreuzberg.StringPtr(kw)
	}
	if author, ok := doc.Find(`meta[name="author"]`).First().Attr("content"); ok {
		meta.Author = kreuzberg.StringPtr(author)
	}
	if canonical, ok := doc.Find(`link[rel="canonical"]`).First().Attr("href"); ok {
		meta.Canonical = kreuzberg.StringPtr(canonical)
	}

	var tables []kreuzberg.TableData
	doc.Find("table").Each(func(i int, table *goquery.Selection) {
		var cells [][]string
		table.Find("tr").Each(func(j int, row *goquery.Selection) {
			var rowCells []string
			row.Find("th,td").Each(func(k int, cell *goquery.Selection) {
				rowCells = append(rowCells, cell.Text())
			})
			if len(rowCells) > 0 {
				cells = append(cells, rowCells)
			}
		})
		if len(cells) > 0 {
			tables = append(tables, kreuzberg.TableData{Cells: cells, PageNumber: 1})
		}
	})

	return &kreuzberg.ExtractionResult{
		Content:  NormalizeSpaces(markdown),
		MimeType: "text/html",
		Success:  true,
		Tables:   tables,
		Metadata: kreuzberg.Metadata{
			Format: kreuzberg.FormatMetadata{Type: kreuzberg.FormatHTML, HTML: &meta},
		},
	}, nil
}

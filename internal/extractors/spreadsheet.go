package extractors

import (
	"bytes"
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	kreuzberg "github.com/stackvity/kreuzberg-go/internal/kreuzbergtypes"
)

// ExtractSpreadsheet reads every sheet of an XLSX workbook into a TableData
// entry plus a flattened text rendering, typing numeric cells exactly via
// shopspring/decimal rather than lossy float64 conversion.
func ExtractSpreadsheet(ctx context.Context, src Source, cfg *kreuzberg.ExtractionConfig) (*kreuzberg.ExtractionResult, error) {
	raw, err := readAll(src)
	if err != nil {
		return nil, err
	}

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, kreuzberg.NewParsingError("opening spreadsheet", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	var tables []kreuzberg.TableData
	var sb strings.Builder

	for idx, sheetName := range sheets {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			continue
		}
		cells := padRaggedRows(normalizeNumericCells(rows))
		markdown := renderMarkdownTable(cells)
		tables = append(tables, kreuzberg.TableData{
			Cells:      cells,
			Markdown:   markdown,
			PageNumber: idx + 1,
		})
		sb.WriteString("## ")
		sb.WriteString(sheetName)
		sb.WriteString("\n")
		sb.WriteString(markdown)
		sb.WriteString("\n")
	}

	meta := kreuzberg.SpreadsheetMetadata{
		SheetCount: len(sheets),
		SheetNames: sheets,
	}

	return &kreuzberg.ExtractionResult{
		Content:  NormalizeSpaces(sb.String()),
		MimeType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Success:  true,
		Tables:   tables,
		Metadata: kreuzberg.Metadata{
			Format: kreuzberg.FormatMetadata{Type: kreuzberg.FormatSpreadsheet, Spreadsheet: &meta},
		},
	}, nil
}

// normalizeNumericCells re-renders any cell that parses as a decimal through
// shopspring/decimal, avoiding float64 rounding artifacts in the output text.
func normalizeNumericCells(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		outRow := make([]string, len(row))
		for j, cell := range row {
			if d, err := decimal.NewFromString(strings.TrimSpace(cell)); err == nil {
				outRow[j] = d.String()
			} else {
				outRow[j] = cell
			}
		}
		out[i] = outRow
	}
	return out
}

// padRaggedRows pads every row to the header row's width with empty cells,
// since excelize.GetRows omits a row's trailing empty cells and a GFM table
// requires every row to carry the same column count as its header.
func padRaggedRows(cells [][]string) [][]string {
	if len(cells) == 0 {
		return cells
	}
	width := len(cells[0])
	for i, row := range cells {
		if len(row) >= width {
			continue
		}
		padded := make([]string, width)
		copy(padded, row)
		cells[i] = padded
	}
	return cells
}

func renderMarkdownTable(cells [][]string) string {
	if len(cells) == 0 {
		return ""
	}
	var sb strings.Builder
	header := cells[0]
	sb.WriteString("| " + strings.Join(header, " | ") + " |\n")
	sb.WriteString("|" + strings.Repeat(" --- |", len(header)) + "\n")
	for _, row := range cells[1:] {
		sb.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}
	return sb.String()
}

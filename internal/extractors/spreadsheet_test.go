package extractors

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func buildTestWorkbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	if err := f.SetCellValue(sheet, "A1", "Name"); err != nil {
		t.Fatalf("SetCellValue: %v", err)
	}
	if err := f.SetCellValue(sheet, "B1", "Amount"); err != nil {
		t.Fatalf("SetCellValue: %v", err)
	}
	if err := f.SetCellValue(sheet, "A2", "widgets"); err != nil {
		t.Fatalf("SetCellValue: %v", err)
	}
	if err := f.SetCellValue(sheet, "B2", "12.50"); err != nil {
		t.Fatalf("SetCellValue: %v", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	return buf.Bytes()
}

func TestExtractSpreadsheetReadsRowsAndMetadata(t *testing.T) {
	raw := buildTestWorkbook(t)

	result, err := ExtractSpreadsheet(context.Background(), Source{Bytes: raw}, nil)
	if err != nil {
		t.Fatalf("ExtractSpreadsheet() error: %v", err)
	}
	meta, ok := result.Metadata.SpreadsheetMetadata()
	if !ok {
		t.Fatal("expected spreadsheet metadata to be set")
	}
	if meta.SheetCount != 1 || meta.SheetNames[0] != "Sheet1" {
		t.Fatalf("unexpected sheet metadata: %+v", meta)
	}
	if len(result.Tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(result.Tables))
	}
	if result.Tables[0].Cells[0][0] != "Name" {
		t.Fatalf("unexpected header cell: %v", result.Tables[0].Cells[0])
	}
	if result.Tables[0].Cells[1][1] != "12.50" {
		t.Fatalf("expected decimal-normalized amount, got %q", result.Tables[0].Cells[1][1])
	}

	for _, want := range []string{"## Sheet1", "| Name | Amount |", "| --- | --- |"} {
		if !strings.Contains(result.Content, want) {
			t.Fatalf("expected content to contain %q, got:\n%s", want, result.Content)
		}
	}
}

func TestPadRaggedRowsPadsToHeaderWidth(t *testing.T) {
	cells := [][]string{
		{"Name", "Amount", "Notes"},
		{"widgets", "12.50"},
		{"gadgets"},
	}
	padded := padRaggedRows(cells)
	for i, row := range padded {
		if len(row) != 3 {
			t.Fatalf("row %d: expected width 3, got %d (%v)", i, len(row), row)
		}
	}
	if padded[1][2] != "" || padded[2][1] != "" || padded[2][2] != "" {
		t.Fatalf("expected padded cells to be empty strings, got %+v", padded)
	}

	table := renderMarkdownTable(padded)
	for _, line := range strings.Split(strings.TrimRight(table, "\n"), "\n") {
		if got := strings.Count(line, "|"); got != 4 {
			t.Fatalf("expected every row to have 4 pipes, got %d in line %q", got, line)
		}
	}
}

func TestExtractSpreadsheetInvalidDocumentReturnsParsingError(t *testing.T) {
	_, err := ExtractSpreadsheet(context.Background(), Source{Bytes: []byte("not a workbook")}, nil)
	if err == nil {
		t.Fatal("expected an error for non-XLSX input")
	}
}

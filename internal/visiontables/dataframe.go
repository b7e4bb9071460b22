package visiontables

import (
	"context"
	"fmt"
	"image"
	"strings"

	kreuzberg "github.com/stackvity/kreuzberg-go/internal/kreuzbergtypes"
)

// CellRecognizer crops and recognizes the text in a single cell's bounding
// box, given the full table image. Satisfied by an OCR backend adapter.
type CellRecognizer interface {
	RecognizeCell(ctx context.Context, tableImage image.Image, box BBox) (string, error)
}

// DataFrame is a minimal grid table type: a header row of synthetic
// "Column_N" names plus row-major string cells. No dataframe library exists
// anywhere in the reference corpus, so this stays a plain [][]string — see
// DESIGN.md's standard-library-only justification.
type DataFrame struct {
	Columns []string
	Rows    [][]string
}

// BuildDataFrame crops every cell in grid out of tableImage, recognizes its
// text via recognizer, and assembles the result into row-major rows under
// "Column_0..Column_{C-1}" names matching the original's DataFrame shape.
func BuildDataFrame(ctx context.Context, grid [][]Cell, tableImage image.Image, recognizer CellRecognizer) (*DataFrame, error) {
	if len(grid) == 0 {
		return &DataFrame{}, nil
	}
	numCols := len(grid[0])
	df := &DataFrame{
		Columns: make([]string, numCols),
		Rows:    make([][]string, len(grid)),
	}
	for c := range df.Columns {
		df.Columns[c] = fmt.Sprintf("Column_%d", c)
	}

	for r, row := range grid {
		df.Rows[r] = make([]string, numCols)
		for c, cell := range row {
			if !cell.Exists {
				continue
			}
			text, err := recognizer.RecognizeCell(ctx, tableImage, cell.BBox)
			if err != nil {
				return nil, kreuzberg.NewOcrError("recognizing table cell text", "vision_table", err)
			}
			df.Rows[r][c] = strings.TrimSpace(text)
		}
	}
	return df, nil
}

// ToTableData converts df into the engine's TableData shape, rendering a
// markdown table alongside the raw cell grid.
func (df *DataFrame) ToTableData(pageNumber int) kreuzberg.TableData {
	cells := make([][]string, 0, len(df.Rows)+1)
	cells = append(cells, df.Columns)
	cells = append(cells, df.Rows...)
	return kreuzberg.TableData{
		Cells:      cells,
		Markdown:   RenderMarkdown(df),
		PageNumber: pageNumber,
	}
}

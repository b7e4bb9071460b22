package visiontables

import (
	"context"
	"image"
	"testing"
)

type fakeRecognizer struct {
	text string
}

func (f *fakeRecognizer) RecognizeCell(ctx context.Context, tableImage image.Image, box BBox) (string, error) {
	return f.text, nil
}

func TestBuildDataFrameAssignsColumnNames(t *testing.T) {
	grid := [][]Cell{
		{{Row: 0, Col: 0, Exists: true, BBox: BBox{0, 0, 10, 10}}, {Row: 0, Col: 1}},
	}
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))

	df, err := BuildDataFrame(context.Background(), grid, img, &fakeRecognizer{text: " cell text "})
	if err != nil {
		t.Fatalf("BuildDataFrame() error: %v", err)
	}
	if df.Columns[0] != "Column_0" || df.Columns[1] != "Column_1" {
		t.Fatalf("unexpected column names: %v", df.Columns)
	}
	if df.Rows[0][0] != "cell text" {
		t.Fatalf("expected trimmed recognized text, got %q", df.Rows[0][0])
	}
	if df.Rows[0][1] != "" {
		t.Fatalf("expected empty string for non-existent cell, got %q", df.Rows[0][1])
	}
}

func TestRenderMarkdownProducesTableSyntax(t *testing.T) {
	df := &DataFrame{
		Columns: []string{"Column_0", "Column_1"},
		Rows:    [][]string{{"a", "b"}},
	}
	md := RenderMarkdown(df)
	if md == "" {
		t.Fatal("expected non-empty markdown")
	}
	if md[0] != '|' {
		t.Fatalf("expected markdown table to start with a pipe, got %q", md)
	}
}

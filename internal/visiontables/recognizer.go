package visiontables

import (
	"bytes"
	"context"
	"image"
	"image/draw"
	"image/png"

	"github.com/stackvity/kreuzberg-go/internal/concurrency"
	"github.com/stackvity/kreuzberg-go/internal/ocr"
)

// OCRCellRecognizer crops each cell's bounding box out of the full table
// image and recognizes it through an OCR backend, satisfying
// CellRecognizer. This is the adapter between the structure-recovery grid
// (pixel boxes) and the text-recognition backends already wired for
// whole-page OCR.
type OCRCellRecognizer struct {
	Backend  ocr.Backend
	Language string

	// Scope, if non-nil, is passed through to the backend so any per-cell
	// temp file it creates is cleaned up with the rest of the request's
	// scoped resources.
	Scope *concurrency.Scope
}

// RecognizeCell crops box out of tableImage and recognizes its text.
func (r *OCRCellRecognizer) RecognizeCell(ctx context.Context, tableImage image.Image, box BBox) (string, error) {
	rect := image.Rect(int(box[0]), int(box[1]), int(box[2]), int(box[3])).Intersect(tableImage.Bounds())
	if rect.Empty() {
		return "", nil
	}

	cropped := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(cropped, cropped.Bounds(), tableImage, rect.Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, cropped); err != nil {
		return "", err
	}

	result, err := r.Backend.Recognize(ctx, buf.Bytes(), ocr.RecognizeOptions{Language: r.Language, Scope: r.Scope})
	if err != nil {
		return "", err
	}
	return result.Text, nil
}

package ocr

import (
	"context"
	"os"

	"github.com/otiai10/gosseract/v2"

	kreuzberg "github.com/stackvity/kreuzberg-go/internal/kreuzbergtypes"
)

// TesseractBackend recognizes text locally via the tesseract engine bindings.
// A fresh gosseract.Client is created per call: the client is not safe for
// concurrent reuse, and construction cost is dominated by image I/O anyway.
type TesseractBackend struct{}

// NewTesseractBackend returns the local Tesseract OCR backend.
func NewTesseractBackend() *TesseractBackend { return &TesseractBackend{} }

func (b *TesseractBackend) Name() string { return "tesseract" }

func (b *TesseractBackend) Recognize(ctx context.Context, image []byte, opts RecognizeOptions) (RecognizeResult, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if opts.Language != "" {
		if err := client.SetLanguage(opts.Language); err != nil {
			return RecognizeResult{}, kreuzberg.NewOcrError("setting tesseract language", b.Name(), err)
		}
	}
	if opts.PSM != 0 {
		if err := client.SetPageSegMode(gosseract.PageSegMode(opts.PSM)); err != nil {
			return RecognizeResult{}, kreuzberg.NewOcrError("setting tesseract page segmentation mode", b.Name(), err)
		}
	}
	tmp, err := os.CreateTemp("", "kreuzberg-ocr-*.png")
	if err != nil {
		return RecognizeResult{}, kreuzberg.NewSystemError("creating temporary OCR input file", err)
	}
	if opts.Scope != nil {
		opts.Scope.Track(tmp.Name(), true)
	} else {
		defer os.Remove(tmp.Name())
	}
	if _, err := tmp.Write(image); err != nil {
		tmp.Close()
		return RecognizeResult{}, kreuzberg.NewSystemError("writing temporary OCR input file", err)
	}
	tmp.Close()

	if err := client.SetImage(tmp.Name()); err != nil {
		return RecognizeResult{}, kreuzberg.NewOcrError("loading image into tesseract", b.Name(), err)
	}

	text, err := client.Text()
	if err != nil {
		return RecognizeResult{}, kreuzberg.NewOcrError("recognizing text", b.Name(), err)
	}

	confidence := 0.0
	if boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD); err == nil {
		confidence = averageConfidence(boxes)
	}

	if confidence < opts.MinConfidence {
		return RecognizeResult{Text: text, Confidence: confidence}, kreuzberg.NewOcrError(
			"recognition confidence below minimum threshold", b.Name(), nil)
	}

	return RecognizeResult{Text: text, Confidence: confidence}, nil
}

func averageConfidence(boxes []gosseract.BoundingBox) float64 {
	if len(boxes) == 0 {
		return 0
	}
	var total float64
	for _, box := range boxes {
		total += box.Confidence
	}
	return total / float64(len(boxes))
}

package visiontables

import (
	"context"
	"encoding/base64"

	"github.com/go-resty/resty/v2"

	kreuzberg "github.com/stackvity/kreuzberg-go/internal/kreuzbergtypes"
)

// boxPrediction is the wire shape returned by the remote structure-detection
// endpoint for a single detected box.
type boxPrediction struct {
	Box   [4]float64 `json:"box"`
	Score float64    `json:"score"`
	Label string     `json:"label"`
}

type structureResponse struct {
	Predictions []boxPrediction `json:"predictions"`
}

// DetectionClient reaches a remote table-transformer-style structure model
// over plain JSON, using the same resty client idiom as the OCR REST
// backend (ocr.RestBackend) so both subsystems share one HTTP client pattern.
type DetectionClient struct {
	endpoint string
	client   *resty.Client
}

// NewDetectionClient builds a DetectionClient against endpoint.
func NewDetectionClient(endpoint, apiKey string) *DetectionClient {
	return &DetectionClient{endpoint: endpoint, client: resty.New().SetAuthToken(apiKey)}
}

// DetectStructure submits a cropped table image and returns its row, column
// and spanning-cell box predictions.
func (c *DetectionClient) DetectStructure(ctx context.Context, tableImage []byte) (TablePredictions, error) {
	var result structureResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(map[string]any{"image_base64": base64.StdEncoding.EncodeToString(tableImage)}).
		SetResult(&result).
		Post(c.endpoint)
	if err != nil {
		return TablePredictions{}, kreuzberg.NewOcrError("calling table structure detection endpoint", "vision_table", err)
	}
	if resp.IsError() {
		return TablePredictions{}, kreuzberg.NewOcrError(
			"table structure detection endpoint returned an error status: "+resp.Status(), "vision_table", nil)
	}

	var preds TablePredictions
	for _, p := range result.Predictions {
		box := BBox{p.Box[0], p.Box[1], p.Box[2], p.Box[3]}
		switch p.Label {
		case "table row":
			preds.Rows.Boxes = append(preds.Rows.Boxes, box)
			preds.Rows.Scores = append(preds.Rows.Scores, p.Score)
		case "table column":
			preds.Columns.Boxes = append(preds.Columns.Boxes, box)
			preds.Columns.Scores = append(preds.Columns.Scores, p.Score)
		case "table spanning cell":
			preds.SpanningCells.Boxes = append(preds.SpanningCells.Boxes, box)
			preds.SpanningCells.Scores = append(preds.SpanningCells.Scores, p.Score)
		}
	}
	return preds, nil
}

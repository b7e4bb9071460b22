package ocr

import (
	"context"
	"encoding/base64"

	"github.com/go-resty/resty/v2"

	kreuzberg "github.com/stackvity/kreuzberg-go/internal/kreuzbergtypes"
)

// restRecognizeResponse is the expected JSON shape of a REST-only OCR
// provider's recognition response.
type restRecognizeResponse struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// RestBackend reaches any OCR provider that exposes a plain JSON REST
// endpoint instead of a dedicated SDK, using the same resty client idiom
// the rest of the engine's HTTP calls share.
type RestBackend struct {
	name     string
	endpoint string
	client   *resty.Client
}

// NewRestBackend builds a REST-only backend named name against endpoint.
func NewRestBackend(name, endpoint string, apiKey string) *RestBackend {
	client := resty.New().SetAuthToken(apiKey)
	return &RestBackend{name: name, endpoint: endpoint, client: client}
}

func (b *RestBackend) Name() string { return b.name }

func (b *RestBackend) Recognize(ctx context.Context, image []byte, opts RecognizeOptions) (RecognizeResult, error) {
	var result restRecognizeResponse
	resp, err := b.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"image_base64": base64.StdEncoding.EncodeToString(image),
			"language":     opts.Language,
		}).
		SetResult(&result).
		Post(b.endpoint)
	if err != nil {
		return RecognizeResult{}, kreuzberg.NewOcrError("calling REST OCR provider", b.name, err)
	}
	if resp.IsError() {
		return RecognizeResult{}, kreuzberg.NewOcrError(
			"REST OCR provider returned an error status: "+resp.Status(), b.name, nil)
	}

	if result.Confidence < opts.MinConfidence {
		return RecognizeResult{Text: result.Text, Confidence: result.Confidence}, kreuzberg.NewOcrError(
			"recognition confidence below minimum threshold", b.name, nil)
	}

	return RecognizeResult{Text: result.Text, Confidence: result.Confidence}, nil
}

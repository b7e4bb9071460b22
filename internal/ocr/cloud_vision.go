package ocr

import (
	"context"
	"fmt"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	visionpb "google.golang.org/genproto/googleapis/cloud/vision/v1"

	kreuzberg "github.com/stackvity/kreuzberg-go/internal/kreuzbergtypes"
	"github.com/stackvity/kreuzberg-go/internal/utils"
)

// CloudVisionBackend recognizes text remotely via the Google Cloud Vision
// DOCUMENT_TEXT_DETECTION feature.
type CloudVisionBackend struct {
	logger *zap.Logger
	client *vision.ImageAnnotatorClient
}

// NewCloudVisionBackend dials the Cloud Vision API using apiKey.
func NewCloudVisionBackend(ctx context.Context, apiKey string, logger *zap.Logger) (*CloudVisionBackend, error) {
	client, err := vision.NewImageAnnotatorClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, kreuzberg.NewMissingDependencyError("cloud vision client", err)
	}
	return &CloudVisionBackend{logger: logger.Named("cloud_vision"), client: client}, nil
}

func (b *CloudVisionBackend) Name() string { return "cloud_vision" }

func (b *CloudVisionBackend) Recognize(ctx context.Context, image []byte, opts RecognizeOptions) (RecognizeResult, error) {
	requestID := utils.GetRequestID(ctx)
	b.logger.Debug("sending image to cloud vision", zap.String("operation", "Recognize"), zap.String("request_id", requestID))

	batchRequest := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{{
			Image: &visionpb.Image{Content: image},
			Features: []*visionpb.Feature{{
				Type:       visionpb.Feature_DOCUMENT_TEXT_DETECTION,
				MaxResults: 1,
			}},
		}},
	}

	resp, err := b.client.BatchAnnotateImages(ctx, batchRequest)
	if err != nil {
		return RecognizeResult{}, kreuzberg.NewOcrError("cloud vision API call failed", b.Name(), err)
	}
	if len(resp.Responses) == 0 {
		return RecognizeResult{}, kreuzberg.NewOcrError("cloud vision API returned no responses", b.Name(), nil)
	}
	annotation := resp.Responses[0]
	if apiErr := annotation.Error; apiErr != nil {
		return RecognizeResult{}, kreuzberg.NewOcrError(
			fmt.Sprintf("cloud vision API returned error: %s", apiErr.GetMessage()), b.Name(), nil)
	}

	text := ""
	confidence := 0.0
	if annotation.FullTextAnnotation != nil {
		text = annotation.FullTextAnnotation.GetText()
		confidence = averageSymbolConfidence(annotation.FullTextAnnotation)
	}

	if confidence < opts.MinConfidence {
		return RecognizeResult{Text: text, Confidence: confidence}, kreuzberg.NewOcrError(
			"recognition confidence below minimum threshold", b.Name(), nil)
	}

	return RecognizeResult{Text: text, Confidence: confidence}, nil
}

func averageSymbolConfidence(annotation *visionpb.TextAnnotation) float64 {
	total := 0.0
	count := 0
	for _, page := range annotation.Pages {
		for _, block := range page.Blocks {
			for _, paragraph := range block.Paragraphs {
				for _, word := range paragraph.Words {
					for _, symbol := range word.Symbols {
						total += float64(symbol.GetConfidence())
						count++
					}
				}
			}
		}
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// Close releases the underlying gRPC connection.
func (b *CloudVisionBackend) Close() error { return b.client.Close() }

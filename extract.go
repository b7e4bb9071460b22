package kreuzberg

import "context"

// ExtractFileSync extracts a document from disk at path, blocking until the
// extraction completes.
func ExtractFileSync(path string, cfg *ExtractionConfig) (*ExtractionResult, error) {
	return ExtractFileWithContext(context.Background(), path, cfg)
}

// ExtractBytesSync extracts an in-memory document of the given MIME type,
// blocking until the extraction completes.
func ExtractBytesSync(data []byte, mimeType string, cfg *ExtractionConfig) (*ExtractionResult, error) {
	return ExtractBytesWithContext(context.Background(), data, mimeType, cfg)
}

// ExtractFileWithContext extracts a document from disk at path, honoring
// ctx cancellation and deadlines.
func ExtractFileWithContext(ctx context.Context, path string, cfg *ExtractionConfig) (*ExtractionResult, error) {
	eng, err := defaultEngine()
	if err != nil {
		return nil, err
	}
	return eng.ExtractFile(ctx, path, cfg)
}

// ExtractBytesWithContext extracts an in-memory document of the given MIME
// type, honoring ctx cancellation and deadlines.
func ExtractBytesWithContext(ctx context.Context, data []byte, mimeType string, cfg *ExtractionConfig) (*ExtractionResult, error) {
	eng, err := defaultEngine()
	if err != nil {
		return nil, err
	}
	return eng.ExtractBytes(ctx, data, mimeType, cfg)
}

package kreuzberg

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// BatchExtractFilesSync extracts every path in paths, blocking until all
// extractions complete. Results are returned in the same order as paths;
// any single failure cancels the remaining in-flight extractions and
// returns that failure.
func BatchExtractFilesSync(paths []string, cfg *ExtractionConfig) ([]*ExtractionResult, error) {
	eng, err := defaultEngine()
	if err != nil {
		return nil, err
	}

	results := make([]*ExtractionResult, len(paths))
	group, ctx := errgroup.WithContext(context.Background())
	for i, path := range paths {
		i, path := i, path
		group.Go(func() error {
			result, err := eng.ExtractFile(ctx, path, cfg)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// BatchExtractBytesWithContext extracts every item in items, honoring ctx
// cancellation and deadlines. Results are returned in the same order as
// items; any single failure cancels the remaining in-flight extractions
// and returns that failure.
func BatchExtractBytesWithContext(ctx context.Context, items []BytesWithMime, cfg *ExtractionConfig) ([]*ExtractionResult, error) {
	eng, err := defaultEngine()
	if err != nil {
		return nil, err
	}

	results := make([]*ExtractionResult, len(items))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, item := range items {
		i, item := i, item
		group.Go(func() error {
			result, err := eng.ExtractBytes(groupCtx, item.Data, item.MimeType, cfg)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

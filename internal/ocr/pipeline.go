package ocr

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"go.uber.org/zap"

	"github.com/stackvity/kreuzberg-go/internal/cache"
	"github.com/stackvity/kreuzberg-go/internal/concurrency"
	kreuzberg "github.com/stackvity/kreuzberg-go/internal/kreuzbergtypes"
)

// PageImage is a single page's rasterized image ready for OCR, alongside the
// dimensions the DPI solver needs.
type PageImage struct {
	PageNumber int
	Data       []byte
	WidthPx    int
	HeightPx   int
	DPI        float64
}

// Pipeline runs backend recognition across a document's pages, merging
// results back into document order and caching each page's recognition
// under the OCR logical cache. Each page's DPI-normalization decision
// (SolveDPI) is computed and folded into the cache key, but the page image
// is passed to the backend as given: it is not resampled, and the decision
// is not returned to the caller.
type Pipeline struct {
	registry *Registry
	cache    *cache.Cache
	logger   *zap.Logger
}

// NewPipeline builds an OCR pipeline against the given backend registry and
// OCR logical cache.
func NewPipeline(registry *Registry, ocrCache *cache.Cache, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{registry: registry, cache: ocrCache, logger: logger.Named("ocr.pipeline")}
}

type cachedPage struct {
	Text          string                              `msgpack:"text"`
	Confidence    float64                             `msgpack:"confidence"`
	Preprocessing kreuzberg.ImagePreprocessingMetadata `msgpack:"preprocessing"`
}

// Backend looks up a registered backend by name, for callers (such as the
// vision-table cell recognizer) that need direct access to a backend
// outside the page-level Run flow.
func (p *Pipeline) Backend(name string) (Backend, error) {
	return p.registry.Lookup(name)
}

// Run recognizes every page in pages using the named backend, honoring cfg's
// tesseract/preprocessing tuning, and returns results in page order. scope,
// if non-nil, receives any on-disk intermediate file a backend creates so it
// is cleaned up once at the end of the request instead of immediately.
func (p *Pipeline) Run(ctx context.Context, pages []PageImage, cfg *kreuzberg.ExtractionConfig, scope *concurrency.Scope) ([]kreuzberg.PageContent, kreuzberg.OCRMetadata, error) {
	ocrCfg := resolveOCRConfig(cfg)
	backend, err := p.registry.Lookup(ocrCfg.Backend)
	if err != nil {
		return nil, kreuzberg.OCRMetadata{}, err
	}

	preprocessing := resolvePreprocessing(cfg)
	recognizeOpts := RecognizeOptions{
		Language:      ocrCfg.Language,
		PSM:           ocrCfg.PSM,
		OEM:           ocrCfg.OEM,
		MinConfidence: ocrCfg.MinConfidence,
		Scope:         scope,
	}

	results := make([]kreuzberg.PageContent, len(pages))
	for i, page := range pages {
		preMeta := SolveDPI(DPIParams{
			OriginalDPI:       page.DPI,
			OriginalWidth:     page.WidthPx,
			OriginalHeight:    page.HeightPx,
			TargetDPI:         preprocessing.targetDPI,
			MinDPI:            preprocessing.minDPI,
			MaxDPI:            preprocessing.maxDPI,
			MaxImageDimension: preprocessing.maxImageDimension,
			AutoAdjustDPI:     preprocessing.autoAdjustDPI,
		})

		key := p.cacheKey(page.Data, backend.Name(), recognizeOpts, preMeta)

		var cached cachedPage
		if p.cache != nil {
			if hit, err := p.cache.GetValue(key, "", &cached); err == nil && hit {
				results[i] = kreuzberg.PageContent{PageNumber: uint64(page.PageNumber), Content: cached.Text}
				continue
			}
		}

		recognized, err := backend.Recognize(ctx, page.Data, recognizeOpts)
		if err != nil {
			return nil, kreuzberg.OCRMetadata{}, err
		}

		if p.cache != nil {
			entry := cachedPage{Text: recognized.Text, Confidence: recognized.Confidence, Preprocessing: preMeta}
			if err := p.cache.Set(key, "", entry); err != nil {
				p.logger.Warn("failed to cache OCR result", zap.String("operation", "Run"), zap.Error(err))
			}
		}

		results[i] = kreuzberg.PageContent{PageNumber: uint64(page.PageNumber), Content: recognized.Text}
	}

	meta := kreuzberg.OCRMetadata{
		Language:     ocrCfg.Language,
		Backend:      backend.Name(),
		PSM:          ocrCfg.PSM,
		OutputFormat: "text",
	}
	return results, meta, nil
}

func (p *Pipeline) cacheKey(image []byte, backend string, opts RecognizeOptions, preMeta kreuzberg.ImagePreprocessingMetadata) string {
	h := sha256.New()
	h.Write(image)
	fmt.Fprintf(h, "backend=%s;lang=%s;psm=%d;oem=%d;target_dpi=%d;final_dpi=%d",
		backend, opts.Language, opts.PSM, opts.OEM, preMeta.TargetDPI, preMeta.FinalDPI)
	return hex.EncodeToString(h.Sum(nil))
}

type resolvedOCRConfig struct {
	Backend       string
	Language      string
	PSM           int
	OEM           int
	MinConfidence float64
}

type resolvedPreprocessing struct {
	targetDPI         int
	minDPI            int
	maxDPI            int
	maxImageDimension int
	autoAdjustDPI     bool
}

func resolveOCRConfig(cfg *kreuzberg.ExtractionConfig) resolvedOCRConfig {
	r := resolvedOCRConfig{Backend: "tesseract", Language: "eng", PSM: 3, OEM: 3}
	if cfg == nil || cfg.OCR == nil {
		return r
	}
	if cfg.OCR.Backend != "" {
		r.Backend = cfg.OCR.Backend
	}
	if cfg.OCR.Language != nil {
		r.Language = *cfg.OCR.Language
	}
	if t := cfg.OCR.Tesseract; t != nil {
		if t.Language != "" {
			r.Language = t.Language
		}
		if t.PSM != nil {
			r.PSM = *t.PSM
		}
		if t.OEM != nil {
			r.OEM = *t.OEM
		}
		if t.MinConfidence != nil {
			r.MinConfidence = *t.MinConfidence
		}
	}
	return r
}

func resolvePreprocessing(cfg *kreuzberg.ExtractionConfig) resolvedPreprocessing {
	r := resolvedPreprocessing{
		targetDPI:         300,
		minDPI:            72,
		maxDPI:            600,
		maxImageDimension: 10000,
		autoAdjustDPI:     true,
	}
	if cfg == nil || cfg.OCR == nil || cfg.OCR.Tesseract == nil || cfg.OCR.Tesseract.Preprocessing == nil {
		return r
	}
	p := cfg.OCR.Tesseract.Preprocessing
	if p.TargetDPI != nil {
		r.targetDPI = *p.TargetDPI
	}
	if p.MinDPI != nil {
		r.minDPI = *p.MinDPI
	}
	if p.MaxDPI != nil {
		r.maxDPI = *p.MaxDPI
	}
	if p.MaxImageDimension != nil {
		r.maxImageDimension = *p.MaxImageDimension
	}
	if p.AutoAdjustDPI != nil {
		r.autoAdjustDPI = *p.AutoAdjustDPI
	}
	return r
}

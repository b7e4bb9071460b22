// The Engine type wires MIME resolution, format extraction, OCR, and
// post-processing into the single request lifecycle every public
// Extract* entry point drives: resolve -> cache lookup/dedup -> extract
// -> enrich -> cache store.
package kreuzberg

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"strings"

	"github.com/shamaton/msgpack/v2"
	"go.uber.org/zap"

	"github.com/stackvity/kreuzberg-go/internal/cache"
	"github.com/stackvity/kreuzberg-go/internal/chunking"
	"github.com/stackvity/kreuzberg-go/internal/concurrency"
	"github.com/stackvity/kreuzberg-go/internal/extractors"
	"github.com/stackvity/kreuzberg-go/internal/mime"
	"github.com/stackvity/kreuzberg-go/internal/ocr"
	"github.com/stackvity/kreuzberg-go/internal/postprocess"
	"github.com/stackvity/kreuzberg-go/internal/visiontables"
)

// EngineDependencies are the already-constructed subsystems an Engine
// orchestrates. Every field is assembled once at process startup (by the
// default injector or a caller's own wiring) and shared across requests.
type EngineDependencies struct {
	Registry       *extractors.Registry
	DocumentsCache *cache.Cache
	OCR            *ocr.Pipeline
	Pool           *concurrency.Pool
	Logger         *zap.Logger

	// Tables is optional: when nil, vision-based table-structure recovery
	// is skipped and whole-page OCR results carry text content only.
	Tables *visiontables.DetectionClient
}

// Engine is the top-level entry point a single extraction request flows
// through. It holds no per-request state; ExtractBytes and ExtractFile are
// safe to call concurrently.
type Engine struct {
	registry *extractors.Registry
	docs     *cache.Cache
	ocr      *ocr.Pipeline
	pool     *concurrency.Pool
	logger   *zap.Logger
	tables   *visiontables.DetectionClient
}

// NewEngine builds an Engine from its wired dependencies.
func NewEngine(deps EngineDependencies) *Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		registry: deps.Registry,
		docs:     deps.DocumentsCache,
		ocr:      deps.OCR,
		pool:     deps.Pool,
		logger:   logger.Named("engine"),
		tables:   deps.Tables,
	}
}

// ExtractBytes extracts an in-memory document of a caller-declared MIME
// type. There is no filename, so no extension lookup applies; when mimeType
// is empty it is sniffed from the content with http.DetectContentType.
func (e *Engine) ExtractBytes(ctx context.Context, data []byte, mimeType string, cfg *ExtractionConfig) (*ExtractionResult, error) {
	if mimeType == "" {
		mimeType = http.DetectContentType(sniffSample(data))
	}
	return e.run(ctx, data, mimeType, "", cfg)
}

// ExtractFile extracts a document from disk at path, resolving its MIME
// type from the filename extension and a content sniff, and tracking the
// file's size and modification time so a cached result is invalidated if
// the file changes underneath the cache.
func (e *Engine) ExtractFile(ctx context.Context, path string, cfg *ExtractionConfig) (*ExtractionResult, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, NewSystemError(fmt.Sprintf("reading source file %s", path), err)
	}
	mimeType, err := mime.Resolve(path, sniffSample(raw))
	if err != nil {
		return nil, Wrapf(err, "resolving mime type for %q", path)
	}
	return e.run(ctx, raw, mimeType, path, cfg)
}

// run is the shared lifecycle behind ExtractBytes/ExtractFile.
func (e *Engine) run(ctx context.Context, raw []byte, mimeType, sourceFile string, cfg *ExtractionConfig) (*ExtractionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg = MergeExtractionConfig(DefaultExtractionConfig(), cfg)

	useCache := cfg.UseCache == nil || *cfg.UseCache
	key := cacheKey(raw, mimeType, cfg)

	if useCache && e.docs != nil {
		cached, mine := e.acquireOrWait(key, sourceFile)
		if !mine {
			return cached, nil
		}
		defer e.docs.MarkComplete(key)
	}

	var result *ExtractionResult
	runErr := e.pool.Run(ctx, func(ctx context.Context) error {
		scope := concurrency.NewScope(e.logger)
		defer scope.Close()

		res, err := e.extract(ctx, raw, mimeType, cfg, scope)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if runErr != nil {
		return nil, runErr
	}

	if useCache && e.docs != nil {
		if err := e.store(key, sourceFile, result); err != nil {
			e.logger.Warn("failed to cache extraction result", zap.String("key", key), zap.Error(err))
		}
	}

	return result, nil
}

// acquireOrWait returns a cached result for key if one is already stored,
// or claims the right to produce one. Claiming and checking for an existing
// in-flight extraction happen as a single atomic MarkProcessing call, so of
// any number of callers racing on the same key exactly one becomes the
// owner (mine == true, responsible for extracting and calling MarkComplete)
// while the rest wait on that owner's ticket and retry the lookup — which
// may itself mean becoming the new owner, if the prior one failed without
// storing a result.
func (e *Engine) acquireOrWait(key, sourceFile string) (*ExtractionResult, bool) {
	for {
		var result ExtractionResult
		hit, err := e.docs.GetValue(key, sourceFile, &result)
		if err != nil {
			e.logger.Warn("cache lookup failed", zap.String("key", key), zap.Error(err))
		} else if hit {
			return &result, false
		}

		ticket, created := e.docs.MarkProcessing(key)
		if created {
			return nil, true
		}
		<-ticket.Wait()
	}
}

func (e *Engine) store(key, sourceFile string, result *ExtractionResult) error {
	payload, err := msgpack.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshaling extraction result: %w", err)
	}
	return e.docs.SetRaw(key, sourceFile, payload)
}

// extract dispatches to a format extractor (or, for bare raster images, the
// OCR pipeline directly), then runs the post-processing pipeline. scope
// tracks any on-disk intermediate file created while servicing this request.
func (e *Engine) extract(ctx context.Context, raw []byte, mimeType string, cfg *ExtractionConfig, scope *concurrency.Scope) (*ExtractionResult, error) {
	var result *ExtractionResult

	if strings.HasPrefix(mimeType, "image/") {
		res, err := e.ocrImage(ctx, raw, mimeType, cfg, scope)
		if err != nil {
			return nil, err
		}
		result = res
	} else {
		ext, ok := e.registry.Lookup(mimeType)
		if !ok {
			return nil, NewValidationError(
				fmt.Sprintf("no extractor registered for mime type %q", mimeType),
				map[string]any{"mime_type": mimeType})
		}
		res, err := ext.Extract(ctx, extractors.Source{Bytes: raw}, cfg)
		if err != nil {
			return nil, err
		}
		result = res
	}

	if err := e.postprocess(ctx, mimeType, cfg, result); err != nil {
		return nil, err
	}

	return result, nil
}

// ocrImage runs a single raster image through the OCR pipeline as a
// one-page document. There is no PDF rasterizer in this implementation, so
// scanned-PDF OCR fallback is out of scope; only directly-supplied raster
// images are recognized this way.
func (e *Engine) ocrImage(ctx context.Context, raw []byte, mimeType string, cfg *ExtractionConfig, scope *concurrency.Scope) (*ExtractionResult, error) {
	if e.ocr == nil {
		return nil, NewMissingDependencyError("ocr pipeline", nil)
	}

	width, height := 0, 0
	if cfg2, _, err := image.DecodeConfig(bytes.NewReader(raw)); err == nil {
		width, height = cfg2.Width, cfg2.Height
	}

	page := ocr.PageImage{PageNumber: 1, Data: raw, WidthPx: width, HeightPx: height}
	pages, meta, err := e.ocr.Run(ctx, []ocr.PageImage{page}, cfg, scope)
	if err != nil {
		return nil, err
	}

	var content string
	if len(pages) > 0 {
		content = pages[0].Content
	}

	result := &ExtractionResult{
		Content:  content,
		MimeType: mimeType,
		Success:  true,
		Metadata: Metadata{
			Format: FormatMetadata{Type: FormatOCR, OCR: &meta},
		},
	}

	if tableDetectionRequested(cfg) && e.tables != nil {
		if err := e.detectTables(ctx, raw, meta.Backend, cfg, result, scope); err != nil {
			e.logger.Warn("table detection failed, continuing with text-only result", zap.Error(err))
		}
	}

	return result, nil
}

// tableDetectionRequested reports whether cfg asks the vision table-
// structure pipeline to run alongside whole-page OCR.
func tableDetectionRequested(cfg *ExtractionConfig) bool {
	return cfg.OCR != nil && cfg.OCR.Tesseract != nil &&
		cfg.OCR.Tesseract.EnableTableDetection != nil && *cfg.OCR.Tesseract.EnableTableDetection
}

// detectTables runs the vision-based table-structure pipeline against raw
// (treated as a single table-region crop, since no page-level table-region
// detector exists in this implementation) and appends any recovered table
// to result.
func (e *Engine) detectTables(ctx context.Context, raw []byte, backendName string, cfg *ExtractionConfig, result *ExtractionResult, scope *concurrency.Scope) error {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return Wrapf(err, "decoding image for table detection")
	}

	predictions, err := e.tables.DetectStructure(ctx, raw)
	if err != nil {
		return err
	}

	grid := visiontables.RecoverStructure(predictions, visiontables.StructureThreshold)
	if len(grid) == 0 {
		return nil
	}

	backend, err := e.ocr.Backend(backendName)
	if err != nil {
		return err
	}
	language := "eng"
	if cfg.OCR != nil && cfg.OCR.Language != nil {
		language = *cfg.OCR.Language
	}
	recognizer := &visiontables.OCRCellRecognizer{Backend: backend, Language: language, Scope: scope}

	df, err := visiontables.BuildDataFrame(ctx, grid, img, recognizer)
	if err != nil {
		return err
	}

	table := df.ToTableData(1)
	result.Tables = append(result.Tables, table)

	rows, cols := len(df.Rows), len(df.Columns)
	if result.Metadata.Format.OCR != nil {
		result.Metadata.Format.OCR.TableCount = len(result.Tables)
		result.Metadata.Format.OCR.TableRows = &rows
		result.Metadata.Format.OCR.TableCols = &cols
	}
	return nil
}

// postprocess runs the keyword/entity/category enrichment stages, token
// reduction, and chunking, each gated by cfg.
func (e *Engine) postprocess(ctx context.Context, mimeType string, cfg *ExtractionConfig, result *ExtractionResult) error {
	pc := cfg.Postprocessor

	var processors []postprocess.Processor
	if postprocess.Enabled(pc, "entities") {
		processors = append(processors, postprocess.NewEntityProcessor(0))
	}
	if postprocess.Enabled(pc, "keywords") {
		processors = append(processors, postprocess.NewKeywordProcessor(10, 0))
	}
	if postprocess.Enabled(pc, "categories") {
		processors = append(processors, postprocess.NewCategoryProcessor(nil, 0.2))
	}
	if cfg.TokenReduction != nil && cfg.TokenReduction.Mode != "" && cfg.TokenReduction.Mode != "off" {
		preserve := cfg.TokenReduction.PreserveImportantWords == nil || *cfg.TokenReduction.PreserveImportantWords
		processors = append(processors, postprocess.NewTokenReductionProcessor(cfg.TokenReduction.Mode, preserve))
	}

	pipeline := postprocess.NewPipeline(processors...)
	if err := pipeline.Run(ctx, result); err != nil {
		return err
	}

	if cfg.Chunking != nil && cfg.Chunking.Enabled != nil && *cfg.Chunking.Enabled {
		result.Chunks = chunking.Chunks(result.Content, mimeType, cfg.Chunking)
	}

	return nil
}

// cacheKey derives a content-addressed key from the document bytes, its
// resolved MIME type, and every config field that can change the output,
// so a cache hit only ever serves a result produced under the same config.
func cacheKey(raw []byte, mimeType string, cfg *ExtractionConfig) string {
	sum := sha256.Sum256(raw)
	parts := map[string]any{
		"sha256":    hex.EncodeToString(sum[:]),
		"mime_type": mimeType,
	}
	if cfg.ForceOCR != nil {
		parts["force_ocr"] = *cfg.ForceOCR
	}
	if cfg.OCR != nil {
		parts["ocr_backend"] = cfg.OCR.Backend
		if cfg.OCR.Language != nil {
			parts["ocr_language"] = *cfg.OCR.Language
		}
	}
	parts["table_detection"] = tableDetectionRequested(cfg)
	if cfg.Chunking != nil && cfg.Chunking.Enabled != nil {
		parts["chunking_enabled"] = *cfg.Chunking.Enabled
		if cfg.Chunking.ChunkSize != nil {
			parts["chunk_size"] = *cfg.Chunking.ChunkSize
		}
		if cfg.Chunking.ChunkOverlap != nil {
			parts["chunk_overlap"] = *cfg.Chunking.ChunkOverlap
		}
	}
	if cfg.TokenReduction != nil {
		parts["token_reduction_mode"] = cfg.TokenReduction.Mode
		if cfg.TokenReduction.PreserveImportantWords != nil {
			parts["token_reduction_preserve"] = *cfg.TokenReduction.PreserveImportantWords
		}
	}
	if cfg.OCR != nil && cfg.OCR.Tesseract != nil {
		// JSON dereferences the pointer fields, keeping the key stable.
		if b, err := json.Marshal(cfg.OCR.Tesseract); err == nil {
			parts["ocr_tesseract"] = string(b)
		}
	}
	if cfg.PDFOptions != nil && cfg.PDFOptions.ExtractMetadata != nil {
		parts["pdf_extract_metadata"] = *cfg.PDFOptions.ExtractMetadata
	}
	if cfg.Postprocessor != nil {
		parts["postprocessor_enabled"] = cfg.Postprocessor.Enabled == nil || *cfg.Postprocessor.Enabled
		parts["postprocessor_list"] = strings.Join(cfg.Postprocessor.EnabledProcessors, ",") + "|" + strings.Join(cfg.Postprocessor.DisabledProcessors, ",")
	}
	return cache.GenerateKey(parts)
}

// sniffSample returns up to the first 512 bytes of raw for content sniffing.
func sniffSample(raw []byte) []byte {
	if len(raw) > 512 {
		return raw[:512]
	}
	return raw
}

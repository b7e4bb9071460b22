package kreuzberg

import (
	"context"
	"sync"
	"time"

	"github.com/stackvity/kreuzberg-go/internal/cache"
	"github.com/stackvity/kreuzberg-go/internal/cfgfile"
	"github.com/stackvity/kreuzberg-go/internal/concurrency"
	"github.com/stackvity/kreuzberg-go/internal/extractors"
	"github.com/stackvity/kreuzberg-go/internal/logging"
	"github.com/stackvity/kreuzberg-go/internal/ocr"
	"github.com/stackvity/kreuzberg-go/internal/visiontables"
)

// buildDefaultEngine assembles the process-wide Engine the package-level
// Extract* functions delegate to: runtime config, a zap logger, the
// documents and OCR caches, the OCR backend registry, the bounded worker
// pool, and the format-extractor registry. This is the hand-wired
// equivalent of a generated injector, since every dependency here is a
// concrete constructor rather than an interface needing a provider set.
func buildDefaultEngine() (*Engine, error) {
	runtimeCfg, err := cfgfile.LoadRuntimeConfig()
	if err != nil {
		return nil, Wrapf(err, "loading runtime configuration")
	}

	logger, err := logging.New(logging.Config{
		Environment: runtimeCfg.Environment,
		Level:       runtimeCfg.LogLevel,
		Format:      runtimeCfg.LogFormat,
	})
	if err != nil {
		return nil, Wrapf(err, "constructing logger")
	}

	ttl := time.Duration(runtimeCfg.CacheTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	docsCache, err := cache.New(cache.TypeDocuments, cache.Options{
		BaseDir:  runtimeCfg.CacheDir,
		TTL:      ttl,
		MaxBytes: runtimeCfg.CacheMaxBytes,
		Logger:   logger,
	})
	if err != nil {
		return nil, Wrapf(err, "constructing document cache")
	}

	ocrCache, err := cache.New(cache.TypeOCR, cache.Options{
		BaseDir:  runtimeCfg.CacheDir,
		TTL:      ttl,
		MaxBytes: runtimeCfg.CacheMaxBytes,
		Logger:   logger,
	})
	if err != nil {
		return nil, Wrapf(err, "constructing ocr cache")
	}

	backends := ocr.NewRegistry()
	backends.Register(ocr.NewTesseractBackend())
	if runtimeCfg.CloudVisionAPIKey != "" {
		cloudVision, err := ocr.NewCloudVisionBackend(context.Background(), runtimeCfg.CloudVisionAPIKey, logger)
		if err != nil {
			return nil, Wrapf(err, "constructing cloud vision backend")
		}
		backends.Register(cloudVision)
	}
	ocrPipeline := ocr.NewPipeline(backends, ocrCache, logger)

	var tables *visiontables.DetectionClient
	if runtimeCfg.TableDetectionEndpoint != "" {
		tables = visiontables.NewDetectionClient(runtimeCfg.TableDetectionEndpoint, runtimeCfg.TableDetectionAPIKey)
	}

	maxConcurrency := runtimeCfg.MaxConcurrency
	if maxConcurrency <= 0 {
		maxConcurrency = 4
	}
	pool := concurrency.NewPool(maxConcurrency, logger)

	return NewEngine(EngineDependencies{
		Registry:       extractors.NewRegistry(),
		DocumentsCache: docsCache,
		OCR:            ocrPipeline,
		Pool:           pool,
		Logger:         logger,
		Tables:         tables,
	}), nil
}

var (
	defaultEngineOnce sync.Once
	defaultEngineVal  *Engine
	defaultEngineErr  error
)

// defaultEngine returns the process-wide Engine, constructing it on first
// use and memoizing the result (and any construction error) for the life
// of the process.
func defaultEngine() (*Engine, error) {
	defaultEngineOnce.Do(func() {
		defaultEngineVal, defaultEngineErr = buildDefaultEngine()
	})
	return defaultEngineVal, defaultEngineErr
}

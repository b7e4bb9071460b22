package kreuzbergtypes

// BoolPtr returns a pointer to b. Useful for setting optional config fields.
func BoolPtr(b bool) *bool { return &b }

// StringPtr returns a pointer to s. Useful for setting optional config fields.
func StringPtr(s string) *string { return &s }

// IntPtr returns a pointer to i. Useful for setting optional config fields.
func IntPtr(i int) *int { return &i }

// FloatPtr returns a pointer to f. Useful for setting optional config fields.
func FloatPtr(f float64) *float64 { return &f }

// ExtractionConfig controls how a single document is extracted. Every field
// is optional; nil means "use the implementation default" per the
// kreuzberg.toml / env-var precedence rules.
type ExtractionConfig struct {
	UseCache                 *bool                    `toml:"use_cache,omitempty" json:"use_cache,omitempty"`
	ForceOCR                 *bool                    `toml:"force_ocr,omitempty" json:"force_ocr,omitempty"`
	EnableQualityProcessing  *bool                    `toml:"enable_quality_processing,omitempty" json:"enable_quality_processing,omitempty"`
	OCR                      *OCRConfig               `toml:"ocr,omitempty" json:"ocr,omitempty"`
	Chunking                 *ChunkingConfig          `toml:"chunking,omitempty" json:"chunking,omitempty"`
	Images                   *ImageExtractionConfig   `toml:"images,omitempty" json:"images,omitempty"`
	PDFOptions               *PDFConfig               `toml:"pdf_options,omitempty" json:"pdf_options,omitempty"`
	TokenReduction           *TokenReductionConfig    `toml:"token_reduction,omitempty" json:"token_reduction,omitempty"`
	LanguageDetection        *LanguageDetectionConfig `toml:"language_detection,omitempty" json:"language_detection,omitempty"`
	Postprocessor            *PostProcessorConfig     `toml:"postprocessor,omitempty" json:"postprocessor,omitempty"`
	MaxConcurrentExtractions *int                     `toml:"max_concurrent_extractions,omitempty" json:"max_concurrent_extractions,omitempty"`
}

// OCRConfig selects and configures the OCR backend.
type OCRConfig struct {
	Backend   string           `toml:"backend,omitempty" json:"backend,omitempty" validate:"omitempty,oneof=tesseract cloud_vision"`
	Language  *string          `toml:"language,omitempty" json:"language,omitempty"`
	Tesseract *TesseractConfig `toml:"tesseract,omitempty" json:"tesseract,omitempty"`
}

// TesseractConfig exposes fine-grained controls for the Tesseract backend.
type TesseractConfig struct {
	Language             string                    `toml:"language,omitempty" json:"language,omitempty"`
	PSM                  *int                      `toml:"psm,omitempty" json:"psm,omitempty"`
	OEM                  *int                      `toml:"oem,omitempty" json:"oem,omitempty"`
	MinConfidence        *float64                  `toml:"min_confidence,omitempty" json:"min_confidence,omitempty"`
	Preprocessing        *ImagePreprocessingConfig `toml:"preprocessing,omitempty" json:"preprocessing,omitempty"`
	EnableTableDetection *bool                     `toml:"enable_table_detection,omitempty" json:"enable_table_detection,omitempty"`
}

// ImagePreprocessingConfig tunes DPI normalization ahead of OCR.
type ImagePreprocessingConfig struct {
	TargetDPI         *int  `toml:"target_dpi,omitempty" json:"target_dpi,omitempty"`
	MinDPI            *int  `toml:"min_dpi,omitempty" json:"min_dpi,omitempty"`
	MaxDPI            *int  `toml:"max_dpi,omitempty" json:"max_dpi,omitempty"`
	MaxImageDimension *int  `toml:"max_image_dimension,omitempty" json:"max_image_dimension,omitempty"`
	AutoAdjustDPI     *bool `toml:"auto_adjust_dpi,omitempty" json:"auto_adjust_dpi,omitempty"`
}

// ChunkingConfig configures the text-chunking post-processing stage.
type ChunkingConfig struct {
	Enabled      *bool   `toml:"enabled,omitempty" json:"enabled,omitempty"`
	ChunkSize    *int    `toml:"chunk_size,omitempty" json:"chunk_size,omitempty"`
	ChunkOverlap *int    `toml:"chunk_overlap,omitempty" json:"chunk_overlap,omitempty"`
	Preset       *string `toml:"preset,omitempty" json:"preset,omitempty"`
}

// ImageExtractionConfig controls inline image extraction from PDFs/Office documents.
type ImageExtractionConfig struct {
	ExtractImages *bool `toml:"extract_images,omitempty" json:"extract_images,omitempty"`
}

// PDFConfig exposes PDF-specific extraction options.
type PDFConfig struct {
	ExtractImages   *bool    `toml:"extract_images,omitempty" json:"extract_images,omitempty"`
	Passwords       []string `toml:"passwords,omitempty" json:"passwords,omitempty"`
	ExtractMetadata *bool    `toml:"extract_metadata,omitempty" json:"extract_metadata,omitempty"`
}

// TokenReductionConfig governs token pruning ahead of downstream embedding.
type TokenReductionConfig struct {
	Mode                   string `toml:"mode,omitempty" json:"mode,omitempty" validate:"omitempty,oneof=off light aggressive"`
	PreserveImportantWords *bool  `toml:"preserve_important_words,omitempty" json:"preserve_important_words,omitempty"`
}

// LanguageDetectionConfig enables automatic language detection.
type LanguageDetectionConfig struct {
	Enabled       *bool    `toml:"enabled,omitempty" json:"enabled,omitempty"`
	MinConfidence *float64 `toml:"min_confidence,omitempty" json:"min_confidence,omitempty"`
}

// PostProcessorConfig determines which post-processors run.
type PostProcessorConfig struct {
	Enabled            *bool    `toml:"enabled,omitempty" json:"enabled,omitempty"`
	EnabledProcessors  []string `toml:"enabled_processors,omitempty" json:"enabled_processors,omitempty"`
	DisabledProcessors []string `toml:"disabled_processors,omitempty" json:"disabled_processors,omitempty"`
}

// DefaultExtractionConfig returns the implementation defaults applied when a
// caller passes a nil config, or a config with nil sub-fields.
func DefaultExtractionConfig() *ExtractionConfig {
	return &ExtractionConfig{
		UseCache:                BoolPtr(true),
		ForceOCR:                BoolPtr(false),
		EnableQualityProcessing: BoolPtr(true),
		OCR: &OCRConfig{
			Backend: "tesseract",
			Tesseract: &TesseractConfig{
				PSM: IntPtr(3),
				OEM: IntPtr(3),
				Preprocessing: &ImagePreprocessingConfig{
					TargetDPI:         IntPtr(300),
					MinDPI:            IntPtr(72),
					MaxDPI:            IntPtr(600),
					MaxImageDimension: IntPtr(10000),
					AutoAdjustDPI:     BoolPtr(true),
				},
			},
		},
		Chunking: &ChunkingConfig{
			Enabled:      BoolPtr(false),
			ChunkSize:    IntPtr(2000),
			ChunkOverlap: IntPtr(200),
		},
		Images: &ImageExtractionConfig{ExtractImages: BoolPtr(false)},
		PDFOptions: &PDFConfig{
			ExtractImages:   BoolPtr(false),
			ExtractMetadata: BoolPtr(true),
		},
		TokenReduction: &TokenReductionConfig{Mode: "off"},
		Postprocessor: &PostProcessorConfig{
			Enabled:           BoolPtr(true),
			EnabledProcessors: []string{"keywords", "entities", "categories"},
		},
		MaxConcurrentExtractions: IntPtr(0),
	}
}

// MergeExtractionConfig overlays override onto base, field by field, with a
// non-nil value in override always winning. Either argument may be nil.
func MergeExtractionConfig(base, override *ExtractionConfig) *ExtractionConfig {
	if base == nil {
		base = DefaultExtractionConfig()
	}
	if override == nil {
		return base
	}
	merged := *base
	if override.UseCache != nil {
		merged.UseCache = override.UseCache
	}
	if override.ForceOCR != nil {
		merged.ForceOCR = override.ForceOCR
	}
	if override.EnableQualityProcessing != nil {
		merged.EnableQualityProcessing = override.EnableQualityProcessing
	}
	if override.OCR != nil {
		merged.OCR = override.OCR
	}
	if override.Chunking != nil {
		merged.Chunking = override.Chunking
	}
	if override.Images != nil {
		merged.Images = override.Images
	}
	if override.PDFOptions != nil {
		merged.PDFOptions = override.PDFOptions
	}
	if override.TokenReduction != nil {
		merged.TokenReduction = override.TokenReduction
	}
	if override.LanguageDetection != nil {
		merged.LanguageDetection = override.LanguageDetection
	}
	if override.Postprocessor != nil {
		merged.Postprocessor = override.Postprocessor
	}
	if override.MaxConcurrentExtractions != nil {
		merged.MaxConcurrentExtractions = override.MaxConcurrentExtractions
	}
	return &merged
}

package kreuzberg

import "github.com/stackvity/kreuzberg-go/internal/kreuzbergtypes"

// Config types and helpers live in internal/kreuzbergtypes alongside the
// result/metadata types, for the same import-cycle reason; re-exported here
// by alias and function wrapper.
type (
	ExtractionConfig        = kreuzbergtypes.ExtractionConfig
	OCRConfig                = kreuzbergtypes.OCRConfig
	TesseractConfig          = kreuzbergtypes.TesseractConfig
	ImagePreprocessingConfig = kreuzbergtypes.ImagePreprocessingConfig
	ChunkingConfig           = kreuzbergtypes.ChunkingConfig
	ImageExtractionConfig    = kreuzbergtypes.ImageExtractionConfig
	PDFConfig                = kreuzbergtypes.PDFConfig
	TokenReductionConfig     = kreuzbergtypes.TokenReductionConfig
	LanguageDetectionConfig  = kreuzbergtypes.LanguageDetectionConfig
	PostProcessorConfig      = kreuzbergtypes.PostProcessorConfig
)

// BoolPtr returns a pointer to b. Useful for setting optional config fields.
func BoolPtr(b bool) *bool { return kreuzbergtypes.BoolPtr(b) }

// StringPtr returns a pointer to s. Useful for setting optional config fields.
func StringPtr(s string) *string { return kreuzbergtypes.StringPtr(s) }

// IntPtr returns a pointer to i. Useful for setting optional config fields.
func IntPtr(i int) *int { return kreuzbergtypes.IntPtr(i) }

// FloatPtr returns a pointer to f. Useful for setting optional config fields.
func FloatPtr(f float64) *float64 { return kreuzbergtypes.FloatPtr(f) }

// DefaultExtractionConfig returns the implementation defaults applied when a
// caller passes a nil config, or a config with nil sub-fields.
func DefaultExtractionConfig() *ExtractionConfig { return kreuzbergtypes.DefaultExtractionConfig() }

// MergeExtractionConfig overlays override onto base, field by field, with a
// non-nil value in override always winning. Either argument may be nil.
func MergeExtractionConfig(base, override *ExtractionConfig) *ExtractionConfig {
	return kreuzbergtypes.MergeExtractionConfig(base, override)
}

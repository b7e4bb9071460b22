// Package kreuzbergtypes holds the public result, metadata and configuration
// types shared between the root kreuzberg package and every format-specific
// internal package. It exists as a separate package purely to break the
// import cycle that would otherwise result from leaf packages (extractors,
// ocr, postprocess, chunking, visiontables, cfgfile) needing these types
// while the root package needs to import those same leaf packages to wire
// the extraction engine. The root package re-exports everything here under
// type and function aliases, so callers of the public API never see this
// package name.
package kreuzbergtypes

import "encoding/json"

// ExtractionResult is the outcome of extracting a single document.
type ExtractionResult struct {
	Content           string           `json:"content"`
	MimeType          string           `json:"mime_type"`
	Metadata          Metadata         `json:"metadata"`
	Tables            []TableData      `json:"tables"`
	DetectedLanguages []string         `json:"detected_languages,omitempty"`
	Chunks            []Chunk          `json:"chunks,omitempty"`
	Images            []ExtractedImage `json:"images,omitempty"`
	Pages             []PageContent    `json:"pages,omitempty"`
	Success           bool             `json:"success"`
}

// TableData represents a detected table, in both cell-grid and markdown form.
type TableData struct {
	Cells      [][]string `json:"cells"`
	Markdown   string     `json:"markdown"`
	PageNumber int        `json:"page_number"`
}

// Chunk is a window of extracted content produced by the chunking stage.
type Chunk struct {
	Content   string        `json:"content"`
	Embedding []float32     `json:"embedding,omitempty"`
	Metadata  ChunkMetadata `json:"metadata"`
}

// ChunkMetadata locates a Chunk within the source document.
type ChunkMetadata struct {
	ByteStart   uint64  `json:"byte_start"`
	ByteEnd     uint64  `json:"byte_end"`
	TokenCount  *int    `json:"token_count,omitempty"`
	ChunkIndex  int     `json:"chunk_index"`
	TotalChunks int     `json:"total_chunks"`
	FirstPage   *uint64 `json:"first_page,omitempty"`
	LastPage    *uint64 `json:"last_page,omitempty"`
}

// ExtractedImage is an inline image pulled out of a document, optionally OCR'd.
type ExtractedImage struct {
	Data             []byte            `json:"data"`
	Format           string            `json:"format"`
	ImageIndex       int               `json:"image_index"`
	PageNumber       *int              `json:"page_number,omitempty"`
	Width            *uint32           `json:"width,omitempty"`
	Height           *uint32           `json:"height,omitempty"`
	Colorspace       *string           `json:"colorspace,omitempty"`
	BitsPerComponent *uint32           `json:"bits_per_component,omitempty"`
	IsMask           bool              `json:"is_mask"`
	Description      *string           `json:"description,omitempty"`
	OCRResult        *ExtractionResult `json:"ocr_result,omitempty"`
}

// Metadata aggregates cross-format fields plus a discriminated per-format payload.
type Metadata struct {
	Language           *string                     `json:"language,omitempty"`
	Date               *string                     `json:"date,omitempty"`
	Subject            *string                     `json:"subject,omitempty"`
	Format             FormatMetadata              `json:"-"`
	ImagePreprocessing *ImagePreprocessingMetadata `json:"image_preprocessing,omitempty"`
	JSONSchema         json.RawMessage             `json:"json_schema,omitempty"`
	Error              *ErrorMetadata              `json:"error,omitempty"`
	PageStructure      *PageStructure              `json:"page_structure,omitempty"`
	Keywords           []Keyword                   `json:"keywords,omitempty"`
	Entities           map[string][]Entity         `json:"entities,omitempty"`
	Category           *CategoryResult             `json:"category,omitempty"`
	Additional         map[string]json.RawMessage  `json:"-"`
}

// CategoryResult is the outcome of rule-based document classification.
type CategoryResult struct {
	Primary    string             `json:"primary"`
	Scores     map[string]float64 `json:"scores"`
	Confidence float64            `json:"confidence"`
}

// FormatType discriminates which field of FormatMetadata is populated.
type FormatType string

const (
	FormatUnknown      FormatType = ""
	FormatPDF          FormatType = "pdf"
	FormatSpreadsheet  FormatType = "spreadsheet"
	FormatEmail        FormatType = "email"
	FormatPresentation FormatType = "presentation"
	FormatDocument     FormatType = "document"
	FormatArchive      FormatType = "archive"
	FormatImage        FormatType = "image"
	FormatXML          FormatType = "xml"
	FormatText         FormatType = "text"
	FormatHTML         FormatType = "html"
	FormatOCR          FormatType = "ocr"
)

// FormatMetadata is the discriminated union of per-format metadata payloads.
type FormatMetadata struct {
	Type         FormatType
	PDF          *PDFMetadata
	Spreadsheet  *SpreadsheetMetadata
	Email        *EmailMetadata
	Presentation *PresentationMetadata
	Document     *DocumentMetadata
	Archive      *ArchiveMetadata
	Image        *ImageMetadata
	XML          *XMLMetadata
	Text         *TextMetadata
	HTML         *HTMLMetadata
	OCR          *OCRMetadata
}

// FormatType returns the metadata discriminator for m.
func (m Metadata) FormatType() FormatType { return m.Format.Type }

// PDFMetadata returns m's PDF metadata if present.
func (m Metadata) PDFMetadata() (*PDFMetadata, bool) {
	return m.Format.PDF, m.Format.Type == FormatPDF && m.Format.PDF != nil
}

// SpreadsheetMetadata returns m's spreadsheet metadata if present.
func (m Metadata) SpreadsheetMetadata() (*SpreadsheetMetadata, bool) {
	return m.Format.Spreadsheet, m.Format.Type == FormatSpreadsheet && m.Format.Spreadsheet != nil
}

// EmailMetadata returns m's email metadata if present.
func (m Metadata) EmailMetadata() (*EmailMetadata, bool) {
	return m.Format.Email, m.Format.Type == FormatEmail && m.Format.Email != nil
}

// PresentationMetadata returns m's presentation metadata if present.
func (m Metadata) PresentationMetadata() (*PresentationMetadata, bool) {
	return m.Format.Presentation, m.Format.Type == FormatPresentation && m.Format.Presentation != nil
}

// DocumentMetadata returns m's word-processing document metadata if present.
func (m Metadata) DocumentMetadata() (*DocumentMetadata, bool) {
	return m.Format.Document, m.Format.Type == FormatDocument && m.Format.Document != nil
}

// XMLMetadata returns m's XML metadata if present.
func (m Metadata) XMLMetadata() (*XMLMetadata, bool) {
	return m.Format.XML, m.Format.Type == FormatXML && m.Format.XML != nil
}

// TextMetadata returns m's text metadata if present.
func (m Metadata) TextMetadata() (*TextMetadata, bool) {
	return m.Format.Text, m.Format.Type == FormatText && m.Format.Text != nil
}

// HTMLMetadata returns m's HTML metadata if present.
func (m Metadata) HTMLMetadata() (*HTMLMetadata, bool) {
	return m.Format.HTML, m.Format.Type == FormatHTML && m.Format.HTML != nil
}

// OCRMetadata returns m's OCR metadata if present.
func (m Metadata) OCRMetadata() (*OCRMetadata, bool) {
	return m.Format.OCR, m.Format.Type == FormatOCR && m.Format.OCR != nil
}

// ImageMetadata returns m's image metadata if present.
func (m Metadata) ImageMetadata() (*ImageMetadata, bool) {
	return m.Format.Image, m.Format.Type == FormatImage && m.Format.Image != nil
}

// ArchiveMetadata returns m's archive metadata if present.
func (m Metadata) ArchiveMetadata() (*ArchiveMetadata, bool) {
	return m.Format.Archive, m.Format.Type == FormatArchive && m.Format.Archive != nil
}

// PDFMetadata contains metadata extracted from PDF documents.
type PDFMetadata struct {
	Title       *string  `json:"title,omitempty"`
	Subject     *string  `json:"subject,omitempty"`
	Authors     []string `json:"authors,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	CreatedAt   *string  `json:"created_at,omitempty"`
	ModifiedAt  *string  `json:"modified_at,omitempty"`
	CreatedBy   *string  `json:"created_by,omitempty"`
	Producer    *string  `json:"producer,omitempty"`
	PageCount   *int     `json:"page_count,omitempty"`
	PDFVersion  *string  `json:"pdf_version,omitempty"`
	IsEncrypted *bool    `json:"is_encrypted,omitempty"`
}

// SpreadsheetMetadata lists sheets inside a workbook.
type SpreadsheetMetadata struct {
	SheetCount int      `json:"sheet_count"`
	SheetNames []string `json:"sheet_names"`
}

// EmailMetadata captures envelope data for EML/MSG messages.
type EmailMetadata struct {
	FromEmail   *string  `json:"from_email,omitempty"`
	FromName    *string  `json:"from_name,omitempty"`
	ToEmails    []string `json:"to_emails"`
	CcEmails    []string `json:"cc_emails"`
	BccEmails   []string `json:"bcc_emails"`
	MessageID   *string  `json:"message_id,omitempty"`
	Subject     *string  `json:"subject,omitempty"`
	Attachments []string `json:"attachments"`
}

// PresentationMetadata summarizes slide decks.
type PresentationMetadata struct {
	Title      *string  `json:"title,omitempty"`
	Author     *string  `json:"author,omitempty"`
	SlideCount int      `json:"slide_count"`
	Fonts      []string `json:"fonts"`
}

// DocumentMetadata summarizes a word-processing document (docx/odt).
type DocumentMetadata struct {
	Title          *string  `json:"title,omitempty"`
	Author         *string  `json:"author,omitempty"`
	Subject        *string  `json:"subject,omitempty"`
	Keywords       []string `json:"keywords,omitempty"`
	CreatedAt      *string  `json:"created_at,omitempty"`
	ModifiedAt     *string  `json:"modified_at,omitempty"`
	ParagraphCount int      `json:"paragraph_count"`
}

// ArchiveMetadata summarizes archive contents (ZIP-based containers).
type ArchiveMetadata struct {
	Format         string   `json:"format"`
	FileCount      int      `json:"file_count"`
	FileList       []string `json:"file_list"`
	TotalSize      int      `json:"total_size"`
	CompressedSize *int     `json:"compressed_size,omitempty"`
}

// ImageMetadata describes standalone image documents.
type ImageMetadata struct {
	Width  uint32            `json:"width"`
	Height uint32            `json:"height"`
	Format string            `json:"format"`
	EXIF   map[string]string `json:"exif"`
}

// XMLMetadata provides element statistics for XML documents.
type XMLMetadata struct {
	ElementCount   int      `json:"element_count"`
	UniqueElements []string `json:"unique_elements"`
	WellFormed     bool     `json:"well_formed"`
}

// TextMetadata contains counts for plain text and Markdown documents.
type TextMetadata struct {
	LineCount      int         `json:"line_count"`
	WordCount      int         `json:"word_count"`
	CharacterCount int         `json:"character_count"`
	Headers        []string    `json:"headers,omitempty"`
	Links          [][2]string `json:"links,omitempty"`
	CodeBlocks     [][2]string `json:"code_blocks,omitempty"`
}

// HTMLMetadata captures head-section metadata from HTML documents.
type HTMLMetadata struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Keywords    *string `json:"keywords,omitempty"`
	Author      *string `json:"author,omitempty"`
	Canonical   *string `json:"canonical,omitempty"`
}

// OCRMetadata records the OCR settings and outcome for an extraction.
type OCRMetadata struct {
	Language     string `json:"language"`
	Backend      string `json:"backend"`
	PSM          int    `json:"psm"`
	OutputFormat string `json:"output_format"`
	TableCount   int    `json:"table_count"`
	TableRows    *int   `json:"table_rows,omitempty"`
	TableCols    *int   `json:"table_cols,omitempty"`
}

// ImagePreprocessingMetadata records DPI-normalization decisions made before OCR.
type ImagePreprocessingMetadata struct {
	OriginalDPI      float64 `json:"original_dpi"`
	TargetDPI        int     `json:"target_dpi"`
	ScaleFactor      float64 `json:"scale_factor"`
	FinalDPI         int     `json:"final_dpi"`
	NewWidth         int     `json:"new_width"`
	NewHeight        int     `json:"new_height"`
	AutoAdjusted     bool    `json:"auto_adjusted"`
	ResampleMethod   string  `json:"resample_method"`
	DimensionClamped bool    `json:"dimension_clamped"`
}

// ErrorMetadata describes a per-item failure inside a batch result.
type ErrorMetadata struct {
	ErrorType string `json:"error_type"`
	Message   string `json:"message"`
}

// PageUnitType enumerates the kinds of paginated units a document may have.
type PageUnitType string

const (
	PageUnitTypePage  PageUnitType = "page"
	PageUnitTypeSlide PageUnitType = "slide"
	PageUnitTypeSheet PageUnitType = "sheet"
)

// PageStructure describes the page/slide/sheet layout of a document.
type PageStructure struct {
	TotalCount uint64       `json:"total_count"`
	UnitType   PageUnitType `json:"unit_type"`
}

// PageContent is the extracted content for a single page/slide/sheet.
type PageContent struct {
	PageNumber uint64           `json:"page_number"`
	Content    string           `json:"content"`
	Tables     []TableData      `json:"tables,omitempty"`
	Images     []ExtractedImage `json:"images,omitempty"`
}

// Keyword is a weighted term produced by the keyword-extraction post-processor.
type Keyword struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// Entity is a heuristically recognized span (email, URL, date, money amount).
type Entity struct {
	Type  string `json:"type"`
	Value string `json:"value"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// BytesWithMime pairs raw bytes with a caller-declared MIME type for batch extraction.
type BytesWithMime struct {
	Data     []byte
	MimeType string
}

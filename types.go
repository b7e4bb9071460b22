// Package kreuzberg provides a document-intelligence extraction engine:
// PDF, Office, email, HTML, XML, spreadsheet and image inputs are normalized
// into text plus structured metadata, with caching, OCR, vision-based table
// extraction and post-processing built in.
package kreuzberg

import "github.com/stackvity/kreuzberg-go/internal/kreuzbergtypes"

// The result, metadata and table types are defined in internal/kreuzbergtypes
// and re-exported here by alias: every internal format/OCR/postprocess
// package needs these same types, and aliasing avoids a root-package import
// cycle while keeping a single canonical definition.
type (
	ExtractionResult           = kreuzbergtypes.ExtractionResult
	TableData                  = kreuzbergtypes.TableData
	Chunk                      = kreuzbergtypes.Chunk
	ChunkMetadata              = kreuzbergtypes.ChunkMetadata
	ExtractedImage             = kreuzbergtypes.ExtractedImage
	Metadata                   = kreuzbergtypes.Metadata
	CategoryResult             = kreuzbergtypes.CategoryResult
	FormatType                 = kreuzbergtypes.FormatType
	FormatMetadata             = kreuzbergtypes.FormatMetadata
	PDFMetadata                = kreuzbergtypes.PDFMetadata
	SpreadsheetMetadata        = kreuzbergtypes.SpreadsheetMetadata
	EmailMetadata              = kreuzbergtypes.EmailMetadata
	PresentationMetadata       = kreuzbergtypes.PresentationMetadata
	DocumentMetadata           = kreuzbergtypes.DocumentMetadata
	ArchiveMetadata            = kreuzbergtypes.ArchiveMetadata
	ImageMetadata              = kreuzbergtypes.ImageMetadata
	XMLMetadata                = kreuzbergtypes.XMLMetadata
	TextMetadata               = kreuzbergtypes.TextMetadata
	HTMLMetadata               = kreuzbergtypes.HTMLMetadata
	OCRMetadata                = kreuzbergtypes.OCRMetadata
	ImagePreprocessingMetadata = kreuzbergtypes.ImagePreprocessingMetadata
	ErrorMetadata              = kreuzbergtypes.ErrorMetadata
	PageUnitType               = kreuzbergtypes.PageUnitType
	PageStructure              = kreuzbergtypes.PageStructure
	PageContent                = kreuzbergtypes.PageContent
	Keyword                    = kreuzbergtypes.Keyword
	Entity                     = kreuzbergtypes.Entity
	BytesWithMime              = kreuzbergtypes.BytesWithMime
)

const (
	FormatUnknown      = kreuzbergtypes.FormatUnknown
	FormatPDF          = kreuzbergtypes.FormatPDF
	FormatSpreadsheet  = kreuzbergtypes.FormatSpreadsheet
	FormatEmail        = kreuzbergtypes.FormatEmail
	FormatPresentation = kreuzbergtypes.FormatPresentation
	FormatDocument     = kreuzbergtypes.FormatDocument
	FormatArchive      = kreuzbergtypes.FormatArchive
	FormatImage        = kreuzbergtypes.FormatImage
	FormatXML          = kreuzbergtypes.FormatXML
	FormatText         = kreuzbergtypes.FormatText
	FormatHTML         = kreuzbergtypes.FormatHTML
	FormatOCR          = kreuzbergtypes.FormatOCR

	PageUnitTypePage  = kreuzbergtypes.PageUnitTypePage
	PageUnitTypeSlide = kreuzbergtypes.PageUnitTypeSlide
	PageUnitTypeSheet = kreuzbergtypes.PageUnitTypeSheet
)

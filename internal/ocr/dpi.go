// Package ocr implements the OCR backend registry and DPI-normalization
// solver that runs ahead of recognition.
package ocr

import (
	kreuzberg "github.com/stackvity/kreuzberg-go/internal/kreuzbergtypes"
)

// DPIParams bounds the DPI-normalization decision for a single image.
type DPIParams struct {
	OriginalDPI       float64
	OriginalWidth     int
	OriginalHeight    int
	TargetDPI         int
	MinDPI            int
	MaxDPI            int
	MaxImageDimension int
	AutoAdjustDPI     bool
}

// ResampleMethod is the interpolation kernel name SolveDPI reports in its
// metadata. No code in this module resamples images: the OCR pipeline and
// the vision-table cell crops hand images to the backend unscaled.
const ResampleMethod = "lanczos3"

// SolveDPI clamps a target DPI into [MinDPI, MaxDPI], scales the image's
// dimensions accordingly, and clamps the result again so neither side
// exceeds MaxImageDimension — shrinking the effective DPI if it does.
func SolveDPI(p DPIParams) kreuzberg.ImagePreprocessingMetadata {
	target := p.TargetDPI
	autoAdjusted := false

	// The [MinDPI, MaxDPI] clamp is a safety bound and applies regardless of
	// AutoAdjustDPI; AutoAdjustDPI only gates whether a clamped value is
	// reported as an automatic adjustment in the returned metadata.
	if p.MinDPI > 0 && target < p.MinDPI {
		target = p.MinDPI
		autoAdjusted = p.AutoAdjustDPI
	}
	if p.MaxDPI > 0 && target > p.MaxDPI {
		target = p.MaxDPI
		autoAdjusted = p.AutoAdjustDPI
	}

	scale := 1.0
	if p.OriginalDPI > 0 {
		scale = float64(target) / p.OriginalDPI
	}

	newWidth := int(float64(p.OriginalWidth) * scale)
	newHeight := int(float64(p.OriginalHeight) * scale)

	dimensionClamped := false
	if p.MaxImageDimension > 0 && (newWidth > p.MaxImageDimension || newHeight > p.MaxImageDimension) {
		longest := newWidth
		if newHeight > longest {
			longest = newHeight
		}
		if longest > 0 {
			clampScale := float64(p.MaxImageDimension) / float64(longest)
			scale *= clampScale
			newWidth = int(float64(newWidth) * clampScale)
			newHeight = int(float64(newHeight) * clampScale)
			dimensionClamped = true
		}
	}

	finalDPI := target
	if dimensionClamped && p.OriginalDPI > 0 {
		finalDPI = int(p.OriginalDPI * scale)
	}

	return kreuzberg.ImagePreprocessingMetadata{
		OriginalDPI:      p.OriginalDPI,
		TargetDPI:        p.TargetDPI,
		ScaleFactor:      scale,
		FinalDPI:         finalDPI,
		NewWidth:         newWidth,
		NewHeight:        newHeight,
		AutoAdjusted:     autoAdjusted,
		ResampleMethod:   ResampleMethod,
		DimensionClamped: dimensionClamped,
	}
}

// Package visiontables implements the vision-based table-structure
// recovery pipeline: detection boxes in, a cell-grid DataFrame and its
// markdown rendering out.
package visiontables

// BBox is an axis-aligned bounding box in image pixel coordinates,
// (x1, y1, x2, y2) with x1<x2 and y1<y2.
type BBox [4]float64

func (b BBox) width() float64  { return b[2] - b[0] }
func (b BBox) height() float64 { return b[3] - b[1] }
func (b BBox) area() float64 {
	w, h := b.width(), b.height()
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// BoxPredictions is a parallel set of detected boxes and their scores for
// one structural role (rows, columns, or spanning cells).
type BoxPredictions struct {
	Boxes  []BBox
	Scores []float64
}

// TablePredictions groups a structure model's predictions by role.
type TablePredictions struct {
	Rows          BoxPredictions
	Columns       BoxPredictions
	SpanningCells BoxPredictions
}

// DetectionThreshold is the minimum confidence for a table-region detection
// box. No table-region detector runs in this module, so no code applies it.
const DetectionThreshold = 0.7

// StructureThreshold is the minimum confidence a row/column prediction must
// meet to be kept. Spanning-cell predictions use 1.2x this threshold.
const StructureThreshold = 0.5

// NMSThreshold is the intersection-over-area of the lower-scoring box (iob)
// above which two same-role boxes are considered duplicates during
// non-maximum suppression.
const NMSThreshold = 0.5

package visiontables

import "sort"

// Cell is a recovered table cell's position in the grid plus the bounding
// box to crop and OCR for its text.
type Cell struct {
	Row    int
	Col    int
	BBox   BBox
	Exists bool
}

// RecoverStructure filters predictions by confidence, suppresses duplicate
// row/column detections independently, then builds an R x C grid from the
// row/column intersection matrix. Ported from the original _algorithm.py's
// extract_table_dataframe pipeline.
func RecoverStructure(predictions TablePredictions, structureThreshold float64) [][]Cell {
	rows := FilterByConfidence(predictions.Rows, structureThreshold)
	cols := FilterByConfidence(predictions.Columns, structureThreshold)
	// Spanning cells are filtered at 1.2x the base structure threshold, but
	// the result is discarded: spanning cells take no part in the
	// row/column grid construction below.
	_ = FilterByConfidence(predictions.SpanningCells, structureThreshold*1.2)

	rows = sortByAxis(rows, 1)
	cols = sortByAxis(cols, 0)

	rows.Boxes = nmsKeep(rows)
	cols.Boxes = nmsKeep(cols)

	if len(rows.Boxes) == 0 || len(cols.Boxes) == 0 {
		return nil
	}

	matrix := intersectionMatrix(rows.Boxes, cols.Boxes)

	grid := make([][]Cell, len(rows.Boxes))
	for r, rowBox := range rows.Boxes {
		grid[r] = make([]Cell, len(cols.Boxes))
		for c, colBox := range cols.Boxes {
			if matrix[r][c] <= 0.1 {
				grid[r][c] = Cell{Row: r, Col: c}
				continue
			}
			left := max(rowBox[0], colBox[0])
			top := max(rowBox[1], colBox[1])
			right := min(rowBox[2], colBox[2])
			bottom := min(rowBox[3], colBox[3])
			if right <= left || bottom <= top {
				grid[r][c] = Cell{Row: r, Col: c}
				continue
			}
			grid[r][c] = Cell{Row: r, Col: c, BBox: BBox{left, top, right, bottom}, Exists: true}
		}
	}
	return grid
}

// sortByAxis orders boxes/scores by the given bbox coordinate index
// (1 = top-left y, for rows; 0 = top-left x, for columns).
func sortByAxis(p BoxPredictions, axis int) BoxPredictions {
	if len(p.Boxes) == 0 {
		return p
	}
	order := make([]int, len(p.Boxes))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return p.Boxes[order[i]][axis] < p.Boxes[order[j]][axis] })

	out := BoxPredictions{
		Boxes:  make([]BBox, len(order)),
		Scores: make([]float64, len(order)),
	}
	for i, idx := range order {
		out.Boxes[i] = p.Boxes[idx]
		out.Scores[i] = p.Scores[idx]
	}
	return out
}

func nmsKeep(p BoxPredictions) []BBox {
	kept := ApplyNMS(p.Boxes, p.Scores, NMSThreshold)
	out := make([]BBox, len(kept))
	for i, idx := range kept {
		out[i] = p.Boxes[idx]
	}
	return out
}

// intersectionMatrix computes the R x C IoU matrix between every row box and
// every column box.
func intersectionMatrix(rows, cols []BBox) [][]float64 {
	matrix := make([][]float64, len(rows))
	for r, rowBox := range rows {
		matrix[r] = make([]float64, len(cols))
		for c, colBox := range cols {
			matrix[r][c] = iou(rowBox, colBox)
		}
	}
	return matrix
}

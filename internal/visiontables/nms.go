package visiontables

import "sort"

// intersectionArea returns the area of overlap between a and b.
func intersectionArea(a, b BBox) float64 {
	x1 := max(a[0], b[0])
	y1 := max(a[1], b[1])
	x2 := min(a[2], b[2])
	y2 := min(a[3], b[3])
	w := x2 - x1
	h := y2 - y1
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// iou is the intersection-over-union of two boxes.
func iou(a, b BBox) float64 {
	inter := intersectionArea(a, b)
	union := a.area() + b.area() - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}

// iob is intersection-over-area-of-b, used by NMS to suppress a smaller box
// largely contained within a higher-scoring one even when their IoU is low.
func iob(a, b BBox) float64 {
	inter := intersectionArea(a, b)
	if b.area() <= 0 {
		return 0
	}
	return inter / b.area()
}

// ApplyNMS runs greedy non-maximum suppression over boxes/scores of a single
// structural role, keeping the highest-scoring box in each overlapping
// cluster and returning the indices that survive, in score-descending order.
func ApplyNMS(boxes []BBox, scores []float64, threshold float64) []int {
	if len(boxes) == 0 {
		return nil
	}

	order := make([]int, len(boxes))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return scores[order[i]] > scores[order[j]] })

	suppressed := make([]bool, len(boxes))
	var kept []int

	for _, idx := range order {
		if suppressed[idx] {
			continue
		}
		kept = append(kept, idx)
		for _, other := range order {
			if suppressed[other] || other == idx {
				continue
			}
			if iob(boxes[idx], boxes[other]) > threshold {
				suppressed[other] = true
			}
		}
	}

	return kept
}

// FilterByConfidence drops boxes/scores below minScore.
func FilterByConfidence(p BoxPredictions, minScore float64) BoxPredictions {
	if len(p.Boxes) == 0 {
		return p
	}
	var out BoxPredictions
	for i, score := range p.Scores {
		if score >= minScore {
			out.Boxes = append(out.Boxes, p.Boxes[i])
			out.Scores = append(out.Scores, score)
		}
	}
	return out
}

package visiontables

import "testing"

func TestApplyNMSSuppressesOverlappingBoxes(t *testing.T) {
	boxes := []BBox{
		{0, 0, 100, 20},
		{0, 2, 100, 22}, // near-duplicate of the first, lower score
		{0, 50, 100, 70},
	}
	scores := []float64{0.9, 0.8, 0.95}

	kept := ApplyNMS(boxes, scores, 0.5)
	if len(kept) != 2 {
		t.Fatalf("expected 2 surviving boxes, got %d: %v", len(kept), kept)
	}

	keptSet := map[int]bool{}
	for _, idx := range kept {
		keptSet[idx] = true
	}
	if !keptSet[0] || !keptSet[2] {
		t.Fatalf("expected boxes 0 and 2 to survive, got %v", kept)
	}
	if keptSet[1] {
		t.Fatal("expected the near-duplicate lower-scoring box to be suppressed")
	}
}

func TestApplyNMSEmptyInput(t *testing.T) {
	if kept := ApplyNMS(nil, nil, 0.5); kept != nil {
		t.Fatalf("expected nil for empty input, got %v", kept)
	}
}

func TestFilterByConfidenceDropsLowScores(t *testing.T) {
	p := BoxPredictions{
		Boxes:  []BBox{{0, 0, 1, 1}, {0, 0, 2, 2}},
		Scores: []float64{0.9, 0.3},
	}
	filtered := FilterByConfidence(p, 0.5)
	if len(filtered.Boxes) != 1 || filtered.Scores[0] != 0.9 {
		t.Fatalf("expected only the high-confidence box to survive, got %+v", filtered)
	}
}

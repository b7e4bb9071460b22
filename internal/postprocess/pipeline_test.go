package postprocess

import (
	"context"
	"testing"

	kreuzberg "github.com/stackvity/kreuzberg-go/internal/kreuzbergtypes"
)

type recordingProcessor struct {
	name  string
	stage Stage
	log   *[]string
}

func (r *recordingProcessor) Name() string { return r.name }
func (r *recordingProcessor) Stage() Stage { return r.stage }
func (r *recordingProcessor) Process(ctx context.Context, result *kreuzberg.ExtractionResult) error {
	*r.log = append(*r.log, r.name)
	return nil
}

func TestPipelineRunsStagesInOrder(t *testing.T) {
	var log []string
	pipeline := NewPipeline(
		&recordingProcessor{name: "late-one", stage: StageLate, log: &log},
		&recordingProcessor{name: "early-one", stage: StageEarly, log: &log},
		&recordingProcessor{name: "middle-one", stage: StageMiddle, log: &log},
	)

	result := &kreuzberg.ExtractionResult{Content: "hello"}
	if err := pipeline.Run(context.Background(), result); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	want := []string{"early-one", "middle-one", "late-one"}
	if len(log) != len(want) {
		t.Fatalf("expected %v, got %v", want, log)
	}
	for i, name := range want {
		if log[i] != name {
			t.Fatalf("expected stage order %v, got %v", want, log)
		}
	}
}

func TestEnabledRespectsDisabledList(t *testing.T) {
	cfg := &kreuzberg.PostProcessorConfig{DisabledProcessors: []string{"keyword_extraction"}}
	if Enabled(cfg, "keyword_extraction") {
		t.Fatal("expected keyword_extraction to be disabled")
	}
	if !Enabled(cfg, "entity_extraction") {
		t.Fatal("expected entity_extraction to remain enabled")
	}
}

func TestEnabledRespectsAllowList(t *testing.T) {
	cfg := &kreuzberg.PostProcessorConfig{EnabledProcessors: []string{"entity_extraction"}}
	if Enabled(cfg, "keyword_extraction") {
		t.Fatal("expected only the allow-listed processor to be enabled")
	}
	if !Enabled(cfg, "entity_extraction") {
		t.Fatal("expected entity_extraction to be enabled")
	}
}

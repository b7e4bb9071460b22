// Package postprocess implements the staged keyword/entity/category
// enrichment pipeline that runs after format extraction, generalized from
// the original's postprocessors/ package and its early/middle/late staging.
package postprocess

import (
	"context"

	kreuzberg "github.com/stackvity/kreuzberg-go/internal/kreuzbergtypes"
)

// Stage names the point in the pipeline a Processor runs at.
type Stage string

const (
	StageEarly  Stage = "early"
	StageMiddle Stage = "middle"
	StageLate   Stage = "late"
)

// Processor enriches an ExtractionResult's metadata in place.
type Processor interface {
	Name() string
	Stage() Stage
	Process(ctx context.Context, result *kreuzberg.ExtractionResult) error
}

// Pipeline runs a set of processors in early -> middle -> late order.
type Pipeline struct {
	early  []Processor
	middle []Processor
	late   []Processor
}

// NewPipeline groups processors into their declared stages.
func NewPipeline(processors ...Processor) *Pipeline {
	p := &Pipeline{}
	for _, proc := range processors {
		switch proc.Stage() {
		case StageEarly:
			p.early = append(p.early, proc)
		case StageLate:
			p.late = append(p.late, proc)
		default:
			p.middle = append(p.middle, proc)
		}
	}
	return p
}

// Run executes every stage's processors in order against result, stopping at
// the first processor error.
func (p *Pipeline) Run(ctx context.Context, result *kreuzberg.ExtractionResult) error {
	for _, stage := range [][]Processor{p.early, p.middle, p.late} {
		for _, proc := range stage {
			if err := proc.Process(ctx, result); err != nil {
				return kreuzberg.Wrapf(err, "postprocessor %q", proc.Name())
			}
		}
	}
	return nil
}

// Enabled reports whether the processor called name is allowed by cfg's
// enabled flag and its enabled/disabled processor lists.
func Enabled(cfg *kreuzberg.PostProcessorConfig, name string) bool {
	if cfg == nil {
		return true
	}
	if cfg.Enabled != nil && !*cfg.Enabled {
		return false
	}
	for _, disabled := range cfg.DisabledProcessors {
		if disabled == name {
			return false
		}
	}
	if len(cfg.EnabledProcessors) == 0 {
		return true
	}
	for _, enabled := range cfg.EnabledProcessors {
		if enabled == name {
			return true
		}
	}
	return false
}

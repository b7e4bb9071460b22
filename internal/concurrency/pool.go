package concurrency

import (
	"context"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// Pool bounds concurrent extraction work so blocking CGo/exec-based
// operations (Tesseract, office-document conversion shellouts, PDF
// rendering) cannot exhaust OS threads or host memory.
type Pool struct {
	sem    *semaphore.Weighted
	logger *zap.Logger
}

// NewPool builds a Pool sized at maxConcurrency, or auto-sized from the
// host's CPU count and available memory when maxConcurrency <= 0.
func NewPool(maxConcurrency int, logger *zap.Logger) *Pool {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxConcurrency <= 0 {
		maxConcurrency = autoSize(logger)
	}
	return &Pool{sem: semaphore.NewWeighted(int64(maxConcurrency)), logger: logger.Named("concurrency.pool")}
}

// autoSize picks a worker count from CPU cores and available memory,
// capping aggressive CPU counts on memory-constrained hosts.
func autoSize(logger *zap.Logger) int {
	cores := runtime.NumCPU()
	size := cores

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		logger.Debug("observed current CPU utilization", zap.Float64("percent", percents[0]))
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		// Budget roughly 512MB per worker; never less than 1, never more
		// than the core count.
		byMemory := int(vm.Available / (512 * 1024 * 1024))
		if byMemory < 1 {
			byMemory = 1
		}
		if byMemory < size {
			size = byMemory
		}
	}

	if size < 1 {
		size = 1
	}
	return size
}

// Run executes fn under the pool's concurrency limit, blocking until a slot
// is available or ctx is canceled.
func (p *Pool) Run(ctx context.Context, fn func(context.Context) error) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer p.sem.Release(1)
	return fn(ctx)
}

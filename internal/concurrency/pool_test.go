package concurrency

import (
	"context"
	"sync/atomic"
	"testing"
)

func TestPoolRunExecutesFunction(t *testing.T) {
	p := NewPool(2, nil)
	var ran int32
	err := p.Run(context.Background(), func(ctx context.Context) error {
		atomic.StoreInt32(&ran, 1)
		return nil
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if atomic.LoadInt32(&ran) != 1 {
		t.Fatal("expected function to run")
	}
}

func TestPoolRunRespectsContextCancellation(t *testing.T) {
	p := NewPool(1, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Occupy the single slot, then ensure a second Run with a canceled
	// context returns promptly with an error instead of blocking forever.
	blocker := make(chan struct{})
	go p.Run(context.Background(), func(ctx context.Context) error {
		<-blocker
		return nil
	})

	err := p.Run(ctx, func(ctx context.Context) error { return nil })
	close(blocker)
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
}

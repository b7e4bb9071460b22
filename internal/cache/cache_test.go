package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := New(TypeDocuments, Options{BaseDir: t.TempDir(), TTL: time.Hour, MaxBytes: 0})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func TestSetAndGetRoundTrip(t *testing.T) {
	c := newTestCache(t)

	type payload struct {
		Content string
	}

	if err := c.Set("key1", "", payload{Content: "hello"}); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	var got payload
	ok, err := c.GetValue("key1", "", &got)
	if err != nil {
		t.Fatalf("GetValue() error: %v", err)
	}
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got.Content != "hello" {
		t.Fatalf("expected 'hello', got %q", got.Content)
	}
}

func TestGetMissReturnsNil(t *testing.T) {
	c := newTestCache(t)
	raw, err := c.Get("missing", "")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if raw != nil {
		t.Fatal("expected nil for a cache miss")
	}
}

func TestFreshnessInvalidationOnSourceChange(t *testing.T) {
	c := newTestCache(t)
	src := filepath.Join(t.TempDir(), "source.txt")
	if err := os.WriteFile(src, []byte("v1"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := c.Set("key1", src, "cached-for-v1"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	// Touch the source file so its mtime changes, invalidating freshness.
	time.Sleep(10 * time.Millisecond)
	if err := os.WriteFile(src, []byte("v2-longer"), 0o644); err != nil {
		t.Fatal(err)
	}

	raw, err := c.Get("key1", src)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if raw != nil {
		t.Fatal("expected cache miss after source file changed")
	}
}

func TestProcessingTicketReleasesWaiters(t *testing.T) {
	c := newTestCache(t)
	ticket, created := c.MarkProcessing("key1")
	if !created {
		t.Fatal("expected the first MarkProcessing call for key1 to create the ticket")
	}
	if !c.IsProcessing("key1") {
		t.Fatal("expected key1 to be marked processing")
	}

	done := make(chan struct{})
	go func() {
		<-ticket.Wait()
		close(done)
	}()

	c.MarkComplete("key1")

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("waiter was not released after MarkComplete")
	}

	if c.IsProcessing("key1") {
		t.Fatal("expected key1 to no longer be processing")
	}
}

func TestMarkProcessingOnlyCreatesOnceForConcurrentKey(t *testing.T) {
	c := newTestCache(t)

	first, firstCreated := c.MarkProcessing("key1")
	if !firstCreated {
		t.Fatal("expected the first call to create the ticket")
	}

	second, secondCreated := c.MarkProcessing("key1")
	if secondCreated {
		t.Fatal("expected the second call for an in-flight key to report created=false")
	}
	if second != first {
		t.Fatal("expected the second call to return the same in-flight ticket")
	}
}

type fakeArchive struct {
	store map[string][]byte
}

func newFakeArchive() *fakeArchive { return &fakeArchive{store: make(map[string][]byte)} }

func (f *fakeArchive) Archive(ctx context.Context, key string, payload []byte) error {
	f.store[key] = payload
	return nil
}

func (f *fakeArchive) Retrieve(ctx context.Context, key string) ([]byte, error) {
	payload, ok := f.store[key]
	if !ok {
		return nil, fmt.Errorf("no such key: %s", key)
	}
	return payload, nil
}

func TestSetRawArchivesLargePayloads(t *testing.T) {
	archive := newFakeArchive()
	c, err := New(TypeDocuments, Options{
		BaseDir:               t.TempDir(),
		TTL:                   time.Hour,
		Archive:               archive,
		ArchiveThresholdBytes: 10,
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(c.Close)

	if err := c.SetRaw("big", "", []byte("this payload is over ten bytes")); err != nil {
		t.Fatalf("SetRaw() error: %v", err)
	}
	if _, ok := archive.store["big"]; !ok {
		t.Fatal("expected large payload to be mirrored into the archive sink")
	}

	if err := c.SetRaw("small", "", []byte("tiny")); err != nil {
		t.Fatalf("SetRaw() error: %v", err)
	}
	if _, ok := archive.store["small"]; ok {
		t.Fatal("expected small payload to be left out of the archive sink")
	}
}

func TestGetFallsBackToArchiveOnLocalMiss(t *testing.T) {
	archive := newFakeArchive()
	archive.store["remote-only"] = []byte("restored from archive")

	c, err := New(TypeDocuments, Options{BaseDir: t.TempDir(), TTL: time.Hour, Archive: archive})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(c.Close)

	raw, err := c.Get("remote-only", "")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if string(raw) != "restored from archive" {
		t.Fatalf("expected payload restored from archive, got %q", raw)
	}
}

func TestGenerateKeyStableAcrossMapOrder(t *testing.T) {
	a := GenerateKey(map[string]any{"path": "/a", "size": 10, "mtime": 5})
	b := GenerateKey(map[string]any{"mtime": 5, "size": 10, "path": "/a"})
	if a != b {
		t.Fatalf("expected stable key regardless of map construction order, got %s vs %s", a, b)
	}
}

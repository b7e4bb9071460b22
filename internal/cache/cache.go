// Package cache implements the on-disk content-addressed cache that backs
// the documents, OCR, tables and MIME logical caches, plus in-flight
// request deduplication. Grounded on
// kreuzberg/_legacy/_utils/_document_cache.py's KreuzbergCache contract.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shamaton/msgpack/v2"
	"go.uber.org/zap"
)

// ArchiveSink is the overflow target an optional object-storage backend
// (internal/archive.Sink) satisfies. Declared here, not imported from
// internal/archive, to keep the cache package dependency-free of AWS SDK
// types when no archive sink is configured.
type ArchiveSink interface {
	Archive(ctx context.Context, key string, payload []byte) error
	Retrieve(ctx context.Context, key string) ([]byte, error)
}

// Type names the four logical caches the engine maintains.
type Type string

const (
	TypeDocuments Type = "documents"
	TypeOCR       Type = "ocr"
	TypeTables    Type = "tables"
	TypeMime      Type = "mime"
)

// meta is the sidecar record written alongside each cached payload,
// recording the source file's (size, mtime) for freshness validation.
type meta struct {
	SourceFile  string    `json:"source_file"`
	SourceSize  int64     `json:"source_size"`
	SourceMtime int64     `json:"source_mtime_ns"`
	WrittenAt   time.Time `json:"written_at"`
}

// Stats summarizes the current state of a Cache.
type Stats struct {
	CachedEntries    int
	ProcessingCount  int
	TotalCacheSizeMB float64
}

// Cache is a single logical, on-disk, content-addressed cache.
type Cache struct {
	cacheType Type
	dir       string
	ttl       time.Duration
	maxBytes  int64
	logger    *zap.Logger
	tickets   *tickets

	mu sync.Mutex

	cron *cron.Cron

	archive               ArchiveSink
	archiveThresholdBytes int64
}

// Options configures a new Cache.
type Options struct {
	BaseDir  string
	TTL      time.Duration
	MaxBytes int64
	Logger   *zap.Logger

	// Archive, if set, receives a copy of every payload at least
	// ArchiveThresholdBytes large, and is consulted on a local on-disk miss
	// before reporting the entry absent.
	Archive               ArchiveSink
	ArchiveThresholdBytes int64
}

// New creates a Cache of the given logical type rooted under opts.BaseDir,
// and starts a background eviction sweep scheduled via cron.
func New(cacheType Type, opts Options) (*Cache, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	dir := filepath.Join(opts.BaseDir, string(cacheType))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir %s: %w", dir, err)
	}

	c := &Cache{
		cacheType:             cacheType,
		dir:                   dir,
		ttl:                   opts.TTL,
		maxBytes:              opts.MaxBytes,
		logger:                logger.Named("cache." + string(cacheType)),
		tickets:               newTickets(),
		archive:               opts.Archive,
		archiveThresholdBytes: opts.ArchiveThresholdBytes,
	}

	c.cron = cron.New()
	if _, err := c.cron.AddFunc("@every 1h", c.evict); err != nil {
		return nil, fmt.Errorf("scheduling cache eviction: %w", err)
	}
	c.cron.Start()

	return c, nil
}

// Close stops the background eviction scheduler.
func (c *Cache) Close() {
	if c.cron != nil {
		c.cron.Stop()
	}
}

func (c *Cache) payloadPath(key string) string { return filepath.Join(c.dir, key+".msgpack") }
func (c *Cache) metaPath(key string) string    { return filepath.Join(c.dir, key+".meta") }

// getFromArchive falls back to the configured archive sink on a local
// on-disk miss. A local copy is restored so future lookups avoid the
// network round trip. Returns (nil, nil) on a miss, matching Get's contract.
func (c *Cache) getFromArchive(key string) ([]byte, error) {
	if c.archive == nil {
		return nil, nil
	}
	payload, err := c.archive.Retrieve(context.Background(), key)
	if err != nil {
		c.logger.Debug("archive miss", zap.String("key", key), zap.Error(err))
		return nil, nil
	}
	if err := atomicWrite(c.payloadPath(key), payload); err != nil {
		c.logger.Warn("failed to restore archived entry locally", zap.String("key", key), zap.Error(err))
	}
	return payload, nil
}

// Get returns the cached payload for key if present and fresh relative to
// sourceFile's current (size, mtime). A nil, nil result means "not cached".
func (c *Cache) Get(key string, sourceFile string) ([]byte, error) {
	const operation = "cache.Get"

	metaBytes, err := os.ReadFile(c.metaPath(key))
	if os.IsNotExist(err) {
		return c.getFromArchive(key)
	}
	if err != nil {
		return nil, fmt.Errorf("reading cache meta for %s: %w", key, err)
	}

	var m meta
	if err := json.Unmarshal(metaBytes, &m); err != nil {
		c.logger.Warn("corrupt cache meta, evicting entry", zap.String("operation", operation), zap.String("key", key))
		c.removeEntry(key)
		return nil, nil
	}

	if sourceFile != "" {
		fresh, err := isFresh(sourceFile, m)
		if err != nil || !fresh {
			c.logger.Debug("cache entry stale, evicting", zap.String("operation", operation), zap.String("key", key))
			c.removeEntry(key)
			return nil, nil
		}
	}

	payload, err := os.ReadFile(c.payloadPath(key))
	if os.IsNotExist(err) {
		c.removeEntry(key)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading cache payload for %s: %w", key, err)
	}
	return payload, nil
}

// GetValue is a typed convenience wrapper around Get that deserializes the
// cached payload with msgpack into target. It returns (false, nil) on a
// cache miss and evicts + returns a miss on a deserialization failure.
func (c *Cache) GetValue(key, sourceFile string, target any) (bool, error) {
	raw, err := c.Get(key, sourceFile)
	if err != nil || raw == nil {
		return false, err
	}
	if err := msgpack.Unmarshal(raw, target); err != nil {
		c.logger.Warn("failed to decode cached value, evicting", zap.String("key", key), zap.Error(err))
		c.removeEntry(key)
		return false, nil
	}
	return true, nil
}

// Set writes value (msgpack-serialized) under key, recording sourceFile's
// current (size, mtime) for future freshness checks. Both files are written
// via temp-file-then-rename so readers never observe a partial entry.
func (c *Cache) Set(key, sourceFile string, value any) error {
	payload, err := msgpack.Marshal(value)
	if err != nil {
		return fmt.Errorf("serializing cache value for %s: %w", key, err)
	}
	return c.SetRaw(key, sourceFile, payload)
}

// SetRaw is like Set but takes an already-serialized payload.
func (c *Cache) SetRaw(key, sourceFile string, payload []byte) error {
	var m meta
	m.WrittenAt = nowStamp()
	if sourceFile != "" {
		info, err := os.Stat(sourceFile)
		if err == nil {
			m.SourceFile = sourceFile
			m.SourceSize = info.Size()
			m.SourceMtime = info.ModTime().UnixNano()
		}
	}
	metaBytes, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("serializing cache meta for %s: %w", key, err)
	}

	if err := atomicWrite(c.payloadPath(key), payload); err != nil {
		return fmt.Errorf("writing cache payload for %s: %w", key, err)
	}
	if err := atomicWrite(c.metaPath(key), metaBytes); err != nil {
		return fmt.Errorf("writing cache meta for %s: %w", key, err)
	}

	if c.archive != nil && c.archiveThresholdBytes > 0 && int64(len(payload)) >= c.archiveThresholdBytes {
		if err := c.archive.Archive(context.Background(), key, payload); err != nil {
			c.logger.Warn("failed to archive large cache entry", zap.String("key", key), zap.Error(err))
		}
	}
	return nil
}

// IsProcessing reports whether key has an in-flight ProcessingTicket.
func (c *Cache) IsProcessing(key string) bool { return c.tickets.IsProcessing(key) }

// MarkProcessing registers key as in-flight and returns its ticket along
// with whether this call was the one that created it; only the creator
// should proceed to extract, everyone else must wait on the returned ticket.
func (c *Cache) MarkProcessing(key string) (*ProcessingTicket, bool) { return c.tickets.MarkProcessing(key) }

// MarkComplete releases any waiters on key's in-flight ticket.
func (c *Cache) MarkComplete(key string) { c.tickets.MarkComplete(key) }

// Clear removes every entry from the cache.
func (c *Cache) Clear() error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return fmt.Errorf("listing cache dir %s: %w", c.dir, err)
	}
	for _, e := range entries {
		if err := os.Remove(filepath.Join(c.dir, e.Name())); err != nil {
			return fmt.Errorf("removing cache entry %s: %w", e.Name(), err)
		}
	}
	return nil
}

// GetStats reports basic sizing information about the cache.
func (c *Cache) GetStats() (Stats, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return Stats{}, fmt.Errorf("listing cache dir %s: %w", c.dir, err)
	}
	var totalBytes int64
	cached := 0
	for _, e := range entries {
		if filepath.Ext(e.Name()) != ".msgpack" {
			continue
		}
		cached++
		if info, err := e.Info(); err == nil {
			totalBytes += info.Size()
		}
	}
	return Stats{
		CachedEntries:    cached,
		TotalCacheSizeMB: float64(totalBytes) / (1024 * 1024),
	}, nil
}

func (c *Cache) removeEntry(key string) {
	_ = os.Remove(c.payloadPath(key))
	_ = os.Remove(c.metaPath(key))
}

// evict runs TTL and byte-budget eviction, oldest entries first.
func (c *Cache) evict() {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return
	}

	type entry struct {
		key       string
		writtenAt time.Time
		size      int64
	}
	var items []entry
	var total int64

	for _, e := range entries {
		if filepath.Ext(e.Name()) != ".meta" {
			continue
		}
		key := e.Name()[:len(e.Name())-len(".meta")]
		metaBytes, err := os.ReadFile(filepath.Join(c.dir, e.Name()))
		if err != nil {
			continue
		}
		var m meta
		if err := json.Unmarshal(metaBytes, &m); err != nil {
			continue
		}
		info, err := os.Stat(c.payloadPath(key))
		var size int64
		if err == nil {
			size = info.Size()
		}
		total += size
		items = append(items, entry{key: key, writtenAt: m.WrittenAt, size: size})
	}

	sort.Slice(items, func(i, j int) bool { return items[i].writtenAt.Before(items[j].writtenAt) })

	now := nowStamp()
	for _, it := range items {
		expired := c.ttl > 0 && now.Sub(it.writtenAt) > c.ttl
		overBudget := c.maxBytes > 0 && total > c.maxBytes
		if expired || overBudget {
			c.removeEntry(it.key)
			total -= it.size
		}
	}
}

func isFresh(sourceFile string, m meta) (bool, error) {
	info, err := os.Stat(sourceFile)
	if err != nil {
		return false, err
	}
	return info.Size() == m.SourceSize && info.ModTime().UnixNano() == m.SourceMtime, nil
}

func atomicWrite(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// nowStamp is a seam so eviction timing logic stays testable without
// depending on wall-clock time.Now() inside the cron-driven sweep path.
var nowStamp = time.Now

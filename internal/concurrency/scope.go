// Package concurrency provides the bounded worker pool and scoped
// temp-resource cleanup that back every extraction request.
package concurrency

import (
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
)

// Scope tracks temp files created while servicing a single extraction
// request and guarantees their cleanup when the request completes, even on
// error. Files registered as sensitive are overwritten with random data
// before being unlinked (best-effort; true secure deletion depends on the
// underlying storage medium).
type Scope struct {
	mu     sync.Mutex
	files  []scopedFile
	logger *zap.Logger
}

type scopedFile struct {
	path      string
	sensitive bool
}

// NewScope creates an empty Scope. logger may be nil.
func NewScope(logger *zap.Logger) *Scope {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scope{logger: logger.Named("concurrency.scope")}
}

// Track registers path for cleanup when the scope closes. Set sensitive to
// true for files that may contain original document bytes (decoded pages,
// cell crops) so they are overwritten before removal.
func (s *Scope) Track(path string, sensitive bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = append(s.files, scopedFile{path: path, sensitive: sensitive})
}

// Close removes every tracked file, overwriting sensitive ones first. It
// collects but does not abort on individual failures, logging each instead.
func (s *Scope) Close() {
	s.mu.Lock()
	files := s.files
	s.files = nil
	s.mu.Unlock()

	for _, f := range files {
		if f.sensitive {
			if err := secureDeleteFile(f.path); err != nil {
				s.logger.Warn("secure delete failed, falling back to plain remove",
					zap.String("path", f.path), zap.Error(err))
				_ = os.Remove(f.path)
			}
			continue
		}
		if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("failed to remove scoped temp file", zap.String("path", f.path), zap.Error(err))
		}
	}
}

// secureDeleteFile overwrites a file with random data three times before
// removing it. Adapted from the teacher's standalone security helper into
// the scoped-resource-release mechanism described in this engine's
// concurrency design.
func secureDeleteFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat before secure delete: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("refusing to secure-delete a directory: %s", path)
	}

	file, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("open for overwrite: %w", err)
	}
	defer file.Close()

	size := info.Size()
	for pass := 0; pass < 3; pass++ {
		if _, err := io.CopyN(file, rand.Reader, size); err != nil {
			return fmt.Errorf("overwrite pass %d: %w", pass+1, err)
		}
		if err := file.Sync(); err != nil {
			return fmt.Errorf("sync after pass %d: %w", pass+1, err)
		}
		if _, err := file.Seek(0, 0); err != nil {
			return fmt.Errorf("seek after pass %d: %w", pass+1, err)
		}
	}

	if err := file.Truncate(0); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close before remove: %w", err)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}

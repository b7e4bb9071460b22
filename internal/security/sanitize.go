// Package security holds filename sanitization and temp-file hardening
// helpers used by the extractors and concurrency scope.
package security

import (
	"path/filepath"
	"regexp"
	"strings"
)

var unsafeFilenameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1F]`)

// SanitizeFilename strips characters that are unsafe in a filesystem path
// (control characters, path separators, Windows-reserved characters) and
// collapses any remaining ".." path-traversal sequences. Used to sanitize
// attachment filenames parsed out of email messages.
func SanitizeFilename(filename string) string {
	sanitized := unsafeFilenameChars.ReplaceAllString(filename, "_")
	sanitized = filepath.Clean(sanitized)
	if strings.Contains(sanitized, "..") {
		sanitized = strings.ReplaceAll(sanitized, "..", "__")
	}
	if len(sanitized) > 255 {
		sanitized = sanitized[:255]
	}
	return sanitized
}

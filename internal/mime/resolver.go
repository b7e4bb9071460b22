// Package mime resolves a document's MIME type from its filename extension
// and content, disambiguating ZIP-based Office/ODF containers.
package mime

import (
	"archive/zip"
	"bytes"
	"net/http"
	"path/filepath"
	"strings"
)

var extensionTable = map[string]string{
	".pdf":  "application/pdf",
	".txt":  "text/plain",
	".md":   "text/markdown",
	".html": "text/html",
	".htm":  "text/html",
	".xml":  "application/xml",
	".eml":  "message/rfc822",
	".msg":  "application/vnd.ms-outlook",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".csv":  "text/csv",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".tiff": "image/tiff",
	".webp": "image/webp",
}

// Resolve determines the MIME type for a document given its path (for
// extension lookup) and a content sniff sample (for sniffing/disambiguation).
// Extension wins when unambiguous; otherwise content sniffing decides,
// including ZIP-container disambiguation between OOXML and ODF.
func Resolve(path string, sniff []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if mt, ok := extensionTable[ext]; ok {
		return mt, nil
	}

	if looksLikeZip(sniff) {
		if mt, ok := sniffZipContainer(sniff); ok {
			return mt, nil
		}
	}

	return http.DetectContentType(sniff), nil
}

func looksLikeZip(sniff []byte) bool {
	return len(sniff) >= 4 && sniff[0] == 'P' && sniff[1] == 'K'
}

// sniffZipContainer inspects a ZIP's member list to distinguish OOXML
// ([Content_Types].xml) from ODF (mimetype entry) containers.
func sniffZipContainer(sniff []byte) (string, bool) {
	reader, err := zip.NewReader(bytes.NewReader(sniff), int64(len(sniff)))
	if err != nil {
		return "", false
	}
	for _, f := range reader.File {
		switch f.Name {
		case "[Content_Types].xml":
			return "application/vnd.openxmlformats-officedocument", true
		case "mimetype":
			return "application/vnd.oasis.opendocument", true
		}
	}
	return "", false
}

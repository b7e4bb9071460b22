package extractors

import (
	"fmt"
	"os"

	kreuzberg "github.com/stackvity/kreuzberg-go/internal/kreuzbergtypes"
)

// readAll materializes src's content as a byte slice, reading from disk when
// src is path-based.
func readAll(src Source) ([]byte, error) {
	if src.Bytes != nil {
		return src.Bytes, nil
	}
	data, err := os.ReadFile(src.Path)
	if err != nil {
		return nil, kreuzberg.NewSystemError(fmt.Sprintf("reading source file %s", src.Path), err)
	}
	return data, nil
}

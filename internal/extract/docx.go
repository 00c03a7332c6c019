package extract

import (
	"fmt"
	"os"

	"github.com/lu4p/cat"
)

// docxText extracts raw text from a DOCX container. The converter works on
// file paths, so the bytes take a round trip through a temp file.
func docxText(data []byte) (string, error) {
	tmp, err := os.CreateTemp("", "docvoice-*.docx")
	if err != nil {
		return "", fmt.Errorf("temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	text, err := cat.File(tmp.Name())
	if err != nil {
		return "", fmt.Errorf("docx convert: %w", err)
	}
	return text, nil
}

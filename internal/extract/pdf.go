package extract

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/dslipak/pdf"
)

var newlineSurrounds = regexp.MustCompile(`[ \t]*\n[ \t]*`)

// pdfWholeDocument is the fast path: one pass over the whole document.
// The parser panics on some malformed files, so the call is fenced.
func pdfWholeDocument(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panicked: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdf plain text: %w", err)
	}
	raw, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return string(raw), nil
}

// pdfPageByPage is the slower fallback: extract each page separately and
// keep whatever pages parse, joined by paragraph breaks.
func pdfPageByPage(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var pages []string
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := extractPage(page)
		if err != nil {
			logger.Warn("pdf page extraction failed", "page", i, "error", err)
			continue
		}
		if content = strings.TrimSpace(content); content != "" {
			pages = append(pages, content)
		}
	}
	if len(pages) == 0 {
		return "", fmt.Errorf("no extractable pages out of %d", numPages)
	}

	text := strings.Join(pages, "\n\n")
	text = newlineSurrounds.ReplaceAllString(text, "\n")
	return text, nil
}

func extractPage(page pdf.Page) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page parser panicked: %v", r)
		}
	}()
	return page.GetPlainText(nil)
}

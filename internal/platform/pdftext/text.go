// Package pdftext extracts the text layer of PDF bank statements.
package pdftext

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/yysangh2-design/APP-QTEX/internal/domain/errors"
)

// ExtractText returns the text of every page joined by blank lines. Rows are
// rebuilt from the text layout first; pages that yield nothing that way fall
// back to the plain text stream.
func ExtractText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.NewInvalidInputError("failed to read PDF", fmt.Errorf("%v", r))
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", errors.NewInvalidInputError("failed to open PDF", err)
	}
	if r.NumPage() == 0 {
		return "", errors.NewInvalidInputError("PDF has no pages", nil)
	}

	pages := byRow(r)
	if strings.TrimSpace(strings.Join(pages, "")) == "" {
		plain, err := r.GetPlainText()
		if err != nil {
			return "", errors.NewInvalidInputError("failed to extract PDF text", err)
		}
		raw, err := io.ReadAll(plain)
		if err != nil {
			return "", errors.NewInvalidInputError("failed to extract PDF text", err)
		}
		pages = []string{string(raw)}
	}

	text = strings.TrimSpace(strings.Join(pages, "\n\n"))
	if text == "" {
		return "", errors.NewInvalidInputError("PDF has no text layer", nil)
	}
	return text, nil
}

func byRow(r *pdf.Reader) []string {
	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		var lines []string
		for _, row := range rows {
			parts := make([]string, 0, len(row.Content))
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			if line := strings.TrimSpace(strings.Join(parts, " ")); line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages
}

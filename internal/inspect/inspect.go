// Package inspect derives structural metadata from staged payloads.
package inspect

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// PageCount parses data as a PDF and returns its page count.
// ledongthuc/pdf panics on some malformed inputs, so the parse is isolated
// behind a recover and any panic is reported as a parse error.
func PageCount(data []byte) (pages int, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			pages = 0
			err = fmt.Errorf("parse pdf: %v", rec)
		}
	}()

	if len(data) == 0 {
		return 0, fmt.Errorf("parse pdf: empty payload")
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("parse pdf: %w", err)
	}

	pages = reader.NumPage()
	if pages <= 0 {
		return 0, fmt.Errorf("parse pdf: no pages")
	}
	return pages, nil
}

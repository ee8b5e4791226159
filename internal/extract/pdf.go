// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/pdiddy/confmatch/pkg/types"
)

// extractPDF concatenates page-level text in page order. Multi-column
// layouts may interleave; that is a documented limitation, not corrected
// here. The pdf package panics on some malformed files, so the whole pass
// runs under recover and surfaces KindCorruptFile instead.
func extractPDF(data []byte) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{}
			err = &Error{
				Kind:   KindCorruptFile,
				Format: types.FormatPDF,
				Err:    fmt.Errorf("pdf parser panic: %v", r),
			}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Result{}, &Error{Kind: KindCorruptFile, Format: types.FormatPDF, Err: err}
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, pageErr := page.GetPlainText(nil)
		if pageErr != nil {
			// A single unreadable page does not fail the document.
			continue
		}
		sb.WriteString(text)
		if !strings.HasSuffix(text, "\n") {
			sb.WriteByte('\n')
		}
	}

	return Result{Text: sb.String()}, nil
}

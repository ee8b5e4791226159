// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract converts uploaded paper documents (PDF or Word) into a
// single plain-text string for the downstream segmentation and
// classification stages.
package extract

import (
	"fmt"
	"strings"

	"github.com/pdiddy/confmatch/pkg/types"
)

// FailureKind categorizes an extraction failure.
type FailureKind string

const (
	KindCorruptFile       FailureKind = "corrupt_file"
	KindUnsupportedFormat FailureKind = "unsupported_format"
	KindEmptyContent      FailureKind = "empty_content"
)

// Error reports a recoverable extraction failure. Callers degrade to
// "no text available" rather than aborting the pipeline.
type Error struct {
	Kind   FailureKind
	Format types.Format
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extracting %s: %s: %v", e.Format, e.Kind, e.Err)
	}
	return fmt.Sprintf("extracting %s: %s", e.Format, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Result holds the extracted plain text. TitleHint carries a
// document-structural title (a Word "Title" paragraph style) when the
// source format provides one; PDF has no equivalent and leaves it empty.
type Result struct {
	Text      string
	TitleHint string
}

// Extract converts a document into newline-delimited plain text. Malformed
// input yields an *Error, never a panic; an empty or whitespace-only
// document yields KindEmptyContent.
func Extract(doc types.Document, cfg types.ExtractionConfig) (Result, error) {
	if cfg.MaxBytes > 0 && int64(len(doc.Data)) > cfg.MaxBytes {
		return Result{}, &Error{
			Kind:   KindCorruptFile,
			Format: doc.Format,
			Err:    fmt.Errorf("file exceeds %d bytes", cfg.MaxBytes),
		}
	}
	if len(doc.Data) == 0 {
		return Result{}, &Error{Kind: KindEmptyContent, Format: doc.Format}
	}

	var res Result
	var err error
	switch doc.Format {
	case types.FormatPDF:
		res, err = extractPDF(doc.Data)
	case types.FormatDOCX:
		res, err = extractDOCX(doc.Data)
	default:
		return Result{}, &Error{Kind: KindUnsupportedFormat, Format: doc.Format}
	}
	if err != nil {
		return Result{}, err
	}

	res.Text = normalize(res.Text)
	if strings.TrimSpace(res.Text) == "" {
		return Result{}, &Error{Kind: KindEmptyContent, Format: doc.Format}
	}
	return res, nil
}

// FormatFromName maps a filename extension to a Format.
func FormatFromName(name string) (types.Format, bool) {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".pdf"):
		return types.FormatPDF, true
	case strings.HasSuffix(lower, ".docx"):
		return types.FormatDOCX, true
	}
	return "", false
}

// normalize strips carriage returns and NUL bytes left behind by binary
// container formats so the segmenter sees clean newline-delimited UTF-8.
func normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\x00", "")
	return text
}

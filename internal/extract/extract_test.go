package extract

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/pdiddy/confmatch/pkg/types"
)

// buildDocx assembles a minimal .docx archive in memory. Each entry in
// paragraphs becomes one w:p; a non-empty style becomes its w:pStyle.
func buildDocx(t *testing.T, paragraphs []string, styles []string) []byte {
	t.Helper()

	var doc strings.Builder
	doc.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	doc.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for i, p := range paragraphs {
		doc.WriteString(`<w:p>`)
		if i < len(styles) && styles[i] != "" {
			doc.WriteString(`<w:pPr><w:pStyle w:val="` + styles[i] + `"/></w:pPr>`)
		}
		doc.WriteString(`<w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}
	doc.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("creating zip entry: %v", err)
	}
	if _, err := f.Write([]byte(doc.String())); err != nil {
		t.Fatalf("writing zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}
	return buf.Bytes()
}

func TestExtractDocxParagraphOrder(t *testing.T) {
	data := buildDocx(t,
		[]string{"A Study of Things", "Alice and Bob", "Abstract", "We study things."},
		nil)

	res, err := Extract(types.Document{Name: "paper.docx", Format: types.FormatDOCX, Data: data},
		types.ExtractionConfig{})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	want := "A Study of Things\nAlice and Bob\nAbstract\nWe study things."
	if res.Text != want {
		t.Errorf("Text = %q, want %q", res.Text, want)
	}
}

func TestExtractDocxTitleStyle(t *testing.T) {
	data := buildDocx(t,
		[]string{"Running header", "The Real Title", "Body text"},
		[]string{"", "Title", ""})

	res, err := Extract(types.Document{Name: "paper.docx", Format: types.FormatDOCX, Data: data},
		types.ExtractionConfig{})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if res.TitleHint != "The Real Title" {
		t.Errorf("TitleHint = %q, want %q", res.TitleHint, "The Real Title")
	}
}

func TestExtractEmptyInput(t *testing.T) {
	_, err := Extract(types.Document{Name: "empty.pdf", Format: types.FormatPDF, Data: nil},
		types.ExtractionConfig{})

	var ee *Error
	if !errors.As(err, &ee) {
		t.Fatalf("error = %v, want *extract.Error", err)
	}
	if ee.Kind != KindEmptyContent {
		t.Errorf("Kind = %s, want %s", ee.Kind, KindEmptyContent)
	}
}

func TestExtractCorruptPDF(t *testing.T) {
	_, err := Extract(types.Document{Name: "bad.pdf", Format: types.FormatPDF, Data: []byte("not a pdf at all")},
		types.ExtractionConfig{})

	var ee *Error
	if !errors.As(err, &ee) {
		t.Fatalf("error = %v, want *extract.Error", err)
	}
	if ee.Kind != KindCorruptFile {
		t.Errorf("Kind = %s, want %s", ee.Kind, KindCorruptFile)
	}
}

func TestExtractCorruptDocx(t *testing.T) {
	_, err := Extract(types.Document{Name: "bad.docx", Format: types.FormatDOCX, Data: []byte("PK but not a zip")},
		types.ExtractionConfig{})

	var ee *Error
	if !errors.As(err, &ee) {
		t.Fatalf("error = %v, want *extract.Error", err)
	}
	if ee.Kind != KindCorruptFile {
		t.Errorf("Kind = %s, want %s", ee.Kind, KindCorruptFile)
	}
}

func TestExtractUnsupportedFormat(t *testing.T) {
	_, err := Extract(types.Document{Name: "notes.txt", Format: "txt", Data: []byte("plain text")},
		types.ExtractionConfig{})

	var ee *Error
	if !errors.As(err, &ee) {
		t.Fatalf("error = %v, want *extract.Error", err)
	}
	if ee.Kind != KindUnsupportedFormat {
		t.Errorf("Kind = %s, want %s", ee.Kind, KindUnsupportedFormat)
	}
}

func TestExtractOversizeInput(t *testing.T) {
	data := buildDocx(t, []string{"tiny"}, nil)
	_, err := Extract(types.Document{Name: "big.docx", Format: types.FormatDOCX, Data: data},
		types.ExtractionConfig{MaxBytes: 8})
	if err == nil {
		t.Fatal("Extract() = nil error, want size failure")
	}
}

func TestFormatFromName(t *testing.T) {
	tests := []struct {
		name   string
		want   types.Format
		wantOK bool
	}{
		{"paper.pdf", types.FormatPDF, true},
		{"Paper.PDF", types.FormatPDF, true},
		{"thesis.docx", types.FormatDOCX, true},
		{"notes.txt", "", false},
		{"pdf", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FormatFromName(tt.name)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("FormatFromName(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNormalizeStripsArtifacts(t *testing.T) {
	got := normalize("a\r\nb\rc\x00d")
	if got != "a\nb\ncd" {
		t.Errorf("normalize() = %q, want %q", got, "a\nb\ncd")
	}
}

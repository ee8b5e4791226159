// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/confmatch/pkg/types"
)

const docxDocumentPart = "word/document.xml"

// docxBody mirrors the fragment of WordprocessingML we need: top-level
// paragraphs with an optional style and their text runs.
type docxBody struct {
	Paragraphs []docxParagraph `xml:"body>p"`
}

type docxParagraph struct {
	Props docxParaProps `xml:"pPr"`
	Runs  []docxRun     `xml:"r"`
}

type docxParaProps struct {
	Style docxStyle `xml:"pStyle"`
}

type docxStyle struct {
	Val string `xml:"val,attr"`
}

type docxRun struct {
	Texts []string `xml:"t"`
}

func (p docxParagraph) text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		for _, t := range r.Texts {
			sb.WriteString(t)
		}
	}
	return sb.String()
}

// extractDOCX unzips the document part and joins paragraph text in document
// order, one paragraph per line. A paragraph styled "Title" becomes the
// TitleHint for the segmenter.
func extractDOCX(data []byte) (Result, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Result{}, &Error{Kind: KindCorruptFile, Format: types.FormatDOCX, Err: err}
	}

	var part *zip.File
	for _, f := range zr.File {
		if f.Name == docxDocumentPart {
			part = f
			break
		}
	}
	if part == nil {
		return Result{}, &Error{
			Kind:   KindCorruptFile,
			Format: types.FormatDOCX,
			Err:    fmt.Errorf("missing %s", docxDocumentPart),
		}
	}

	rc, err := part.Open()
	if err != nil {
		return Result{}, &Error{Kind: KindCorruptFile, Format: types.FormatDOCX, Err: err}
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return Result{}, &Error{Kind: KindCorruptFile, Format: types.FormatDOCX, Err: err}
	}

	var body docxBody
	if err := xml.Unmarshal(raw, &body); err != nil {
		return Result{}, &Error{Kind: KindCorruptFile, Format: types.FormatDOCX, Err: err}
	}

	var res Result
	var lines []string
	for _, p := range body.Paragraphs {
		text := p.text()
		if strings.EqualFold(p.Props.Style.Val, "Title") && res.TitleHint == "" && strings.TrimSpace(text) != "" {
			res.TitleHint = strings.TrimSpace(text)
		}
		lines = append(lines, text)
	}
	res.Text = strings.Join(lines, "\n")
	return res, nil
}

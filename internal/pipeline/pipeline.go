// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs a document through extraction, segmentation, and
// subject classification. Stage failures degrade the result instead of
// aborting it: an unreadable file still yields metadata (from the filename)
// and an empty subject score.
package pipeline

import (
	"fmt"
	"io"

	"github.com/pdiddy/confmatch/internal/classify"
	"github.com/pdiddy/confmatch/internal/extract"
	"github.com/pdiddy/confmatch/internal/segment"
	"github.com/pdiddy/confmatch/pkg/types"
)

// Analysis is the combined output of the per-document stages.
type Analysis struct {
	Meta     types.PaperMetadata
	FullText string
	Subjects types.SubjectScore

	// ExtractionErr records a failed extraction; the remaining fields are
	// then derived from the filename alone.
	ExtractionErr error
}

// Degraded reports whether the analysis ran without usable document text.
func (a Analysis) Degraded() bool { return a.ExtractionErr != nil }

// Analyze runs extraction, segmentation, and classification on doc.
// Warnings are written to w; only configuration-level problems (a broken
// taxonomy file) surface as errors.
func Analyze(doc types.Document, taxonomy classify.Taxonomy, cfg types.PipelineConfig, w io.Writer) Analysis {
	var a Analysis

	res, err := extract.Extract(doc, cfg.Extraction)
	if err != nil {
		fmt.Fprintf(w, "warning: extraction failed for %s: %v\n", doc.Name, err)
		a.ExtractionErr = err
	}
	a.FullText = res.Text

	a.Meta = segment.Segment(segment.Input{
		Text:      res.Text,
		TitleHint: res.TitleHint,
		Filename:  doc.Name,
	}, cfg.Segment)

	classifier := classify.New(taxonomy, cfg.Classifier)
	a.Subjects = classifier.Classify(classify.Input(a.Meta))
	return a
}

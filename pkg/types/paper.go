// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Format identifies the declared format of an uploaded document.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// Document is an ephemeral uploaded paper: raw bytes plus the declared
// format. It lives for a single pipeline call and is never persisted.
type Document struct {
	// Name is the original filename, used only for the title placeholder.
	Name string

	// Format is the declared file format (pdf or docx).
	Format Format

	// Data holds the raw file bytes.
	Data []byte
}

// PaperMetadata holds the bibliographic fields segmented out of a paper's
// plain text.
type PaperMetadata struct {
	// Title is never empty; when no title can be located it falls back to
	// a placeholder derived from the filename.
	Title string `json:"title" yaml:"title"`

	// Abstract is the text span following the abstract marker, or empty
	// when no marker was found.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Keywords are trimmed, deduplicated, and non-numeric, in source order.
	// Empty means no keyword line was identified, never a guess.
	Keywords []string `json:"keywords" yaml:"keywords"`

	// Conclusion is the conclusion section when one was located.
	Conclusion string `json:"conclusion,omitempty" yaml:"conclusion,omitempty"`

	// TitleSource records which strategy produced the title (e.g.
	// "style", "line-scan", "first-line", "filename").
	TitleSource string `json:"title_source,omitempty" yaml:"title_source,omitempty"`
}

// HasKeywords reports whether any keyword line was identified.
func (m PaperMetadata) HasKeywords() bool {
	return len(m.Keywords) > 0
}

// SubjectShare is one entry of a subject distribution: a taxonomy label,
// its percentage of the total trigger hits, and the trigger terms that
// literally occurred in the paper text.
type SubjectShare struct {
	// Subject is the taxonomy label (e.g. "控制理论").
	Subject string `json:"subject" yaml:"subject"`

	// Percent is in (0, 100]; shares of a nonempty distribution sum to 100.
	Percent float64 `json:"percent" yaml:"percent"`

	// Hits is the raw trigger occurrence count for this subject.
	Hits int `json:"hits" yaml:"hits"`

	// Triggers lists the trigger terms that matched, in taxonomy order.
	Triggers []string `json:"triggers" yaml:"triggers"`
}

// SubjectScore is a normalized subject distribution, sorted by descending
// percentage with ties in taxonomy declaration order. An empty slice is the
// valid terminal state "no subject identified", distinct from any error.
type SubjectScore []SubjectShare

// Identified reports whether any subject matched at all.
func (s SubjectScore) Identified() bool {
	return len(s) > 0
}

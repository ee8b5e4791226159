// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the confmatch pipeline:
// uploaded documents, segmented paper metadata, subject distributions,
// conference catalog records, match results, and stage configuration.
package types

import "time"

// DaysUnknown marks a deadline that could not be parsed. It sorts after
// every known days-until-deadline value in deadline tie-breaks but does not
// exclude the record from matching.
const DaysUnknown = int(^uint(0) >> 1)

// ConferenceRecord is one validated row of the uploaded conference catalog.
// Records are immutable after load; a re-upload replaces the whole catalog.
type ConferenceRecord struct {
	// Row is the 1-based data row index in the source table, used as the
	// final ranking tie-break.
	Row int `json:"row" yaml:"row"`

	// SeriesName is the conference series (e.g. "ICANN").
	SeriesName string `json:"series_name" yaml:"series_name"`

	// Name is the canonical conference name, resolved from any of the
	// accepted header aliases at load time.
	Name string `json:"name" yaml:"name"`

	// TopicDirection is the free-text topic/direction field.
	TopicDirection string `json:"topic_direction" yaml:"topic_direction"`

	// SubKeywords is the free-text fine-grained keyword field.
	SubKeywords string `json:"sub_keywords" yaml:"sub_keywords"`

	// DynamicPublication is the raw dynamic-publication flag value.
	DynamicPublication string `json:"dynamic_publication" yaml:"dynamic_publication"`

	// DeadlineRaw is the submission deadline exactly as it appeared in the
	// table. Parsing happens at match time; an unparsable value never
	// drops the record.
	DeadlineRaw string `json:"deadline_raw" yaml:"deadline_raw"`

	// Website is the conference website URL.
	Website string `json:"website" yaml:"website"`
}

// FullName joins the series and conference names for display.
func (c ConferenceRecord) FullName() string {
	if c.SeriesName == "" {
		return c.Name
	}
	return c.SeriesName + " - " + c.Name
}

// MatchResult is one ranked recommendation produced by the matcher.
type MatchResult struct {
	// Conference is the catalog record this result refers to.
	Conference ConferenceRecord `json:"conference" yaml:"conference"`

	// Score is the similarity between the paper representation and the
	// record's comparison text. Lexical scores are term-frequency weighted
	// overlap in [0, 1]; embedding scores are cosine similarity.
	Score float64 `json:"score" yaml:"score"`

	// MatchedTerms lists the record's sub-keyword tokens that literally
	// occur in the paper text, for explainability.
	MatchedTerms []string `json:"matched_terms" yaml:"matched_terms"`

	// Deadline is the parsed submission deadline; zero when unparsable.
	Deadline time.Time `json:"deadline,omitempty" yaml:"deadline,omitempty"`

	// DaysUntilDeadline is the whole days from today to the deadline, or
	// DaysUnknown when the deadline could not be parsed. Past deadlines
	// yield negative values.
	DaysUntilDeadline int `json:"days_until_deadline" yaml:"days_until_deadline"`
}

// DeadlineKnown reports whether the deadline was parseable.
func (r MatchResult) DeadlineKnown() bool {
	return r.DaysUntilDeadline != DaysUnknown
}

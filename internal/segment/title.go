// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

import (
	"path/filepath"
	"regexp"
	"strings"
)

// titleStrategy attempts to produce a title from the input. It returns
// ("", false) when the rule does not apply, letting the next rule run.
type titleStrategy struct {
	name string
	fn   func(in Input, lines []string) (string, bool)
}

// titleStrategies are tried in order; first success wins.
var titleStrategies = []titleStrategy{
	{"style", styleHintTitle},
	{"line-scan", preAbstractTitle},
	{"first-line", firstLineTitle},
	{"filename", filenameTitle},
}

func findTitle(in Input, lines []string) (title, source string) {
	for _, s := range titleStrategies {
		if t, ok := s.fn(in, lines); ok {
			return t, s.name
		}
	}
	// filenameTitle always succeeds, so this is unreachable.
	return "Untitled", "filename"
}

// styleHintTitle uses a document-structural title when the source format
// carried one (Word "Title" paragraph style).
func styleHintTitle(in Input, _ []string) (string, bool) {
	if in.TitleHint == "" {
		return "", false
	}
	return in.TitleHint, true
}

var (
	emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)
	yearPattern  = regexp.MustCompile(`^\(?\d{4}\)?$`)
	urlPattern   = regexp.MustCompile(`(?i)^(https?://|www\.|doi:)`)
)

// affiliationMarkers flag author/institution lines that must never be
// mistaken for a title.
var affiliationMarkers = []string{
	"university", "univ.", "institute", "college", "laboratory", "department",
	"school of", "大学", "学院", "研究所", "实验室",
	"copyright", "©", "ieee", "acm",
}

// isMetadataLine reports whether a line looks like author, affiliation,
// copyright, or running-header noise rather than a title.
func isMetadataLine(line string) bool {
	lower := strings.ToLower(line)
	if emailPattern.MatchString(line) || yearPattern.MatchString(line) || urlPattern.MatchString(line) {
		return true
	}
	for _, m := range affiliationMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// preAbstractTitle scans the lines preceding the abstract marker, skipping
// metadata lines, and picks the last qualifying one. Titles sit directly
// above the author block, so the qualifying line nearest the abstract beats
// the very first line, which is often a running header.
func preAbstractTitle(_ Input, lines []string) (string, bool) {
	markerIdx := -1
	for i, line := range lines {
		lower := strings.ToLower(strings.TrimSpace(line))
		for _, m := range abstractMarkers {
			if strings.HasPrefix(lower, m) {
				markerIdx = i
				break
			}
		}
		if markerIdx >= 0 {
			break
		}
	}
	if markerIdx <= 0 {
		return "", false
	}

	for i := markerIdx - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" || isMetadataLine(line) {
			continue
		}
		return line, true
	}
	return "", false
}

// firstLineTitle falls back to the first non-empty line of the document.
func firstLineTitle(_ Input, lines []string) (string, bool) {
	for _, line := range lines {
		if t := strings.TrimSpace(line); t != "" {
			return t, true
		}
	}
	return "", false
}

// filenameTitle derives a placeholder from the upload filename. It always
// succeeds, which keeps the Title-never-empty invariant.
func filenameTitle(in Input, _ []string) (string, bool) {
	base := filepath.Base(in.Filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.TrimSpace(strings.NewReplacer("_", " ", "-", " ").Replace(base))
	if base == "" || base == "." {
		return "Untitled", true
	}
	return base, true
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package segment isolates Title, Abstract, Keywords, and Conclusion spans
// from a paper's plain text. Every rule is a pure function of the text, so
// segmenting the same input twice yields identical metadata. Each field is
// produced by an ordered chain of heuristics; the first one that succeeds
// wins and later ones are never consulted.
package segment

import (
	"strings"
	"unicode"

	"github.com/pdiddy/confmatch/pkg/types"
)

// Input carries everything the segmenter may draw on: the extracted text,
// an optional format-level title hint (Word "Title" paragraph style), and
// the upload filename for the placeholder fallback.
type Input struct {
	Text      string
	TitleHint string
	Filename  string
}

// abstractMarkers open the abstract span, case-insensitive.
var abstractMarkers = []string{"abstract", "摘要"}

// abstractStops close the abstract span when found after the opener.
var abstractStops = []string{
	"introduction", "引言",
	"keywords", "index terms", "关键词", "关键字",
	"1.", "1 ",
}

// conclusionMarkers open the conclusion span.
var conclusionMarkers = []string{"conclusion", "结论"}

// conclusionStops close the conclusion span.
var conclusionStops = []string{"references", "acknowledg", "bibliography", "参考文献", "致谢"}

const defaultAbstractCap = 1500

// Segment produces PaperMetadata from plain text. Empty text still yields
// a placeholder title so the Title invariant (never empty) holds.
func Segment(in Input, cfg types.SegmentConfig) types.PaperMetadata {
	capRunes := cfg.AbstractCap
	if capRunes <= 0 {
		capRunes = defaultAbstractCap
	}

	lines := strings.Split(in.Text, "\n")
	abstract, abstractEnd := findSpan(in.Text, abstractMarkers, abstractStops, capRunes)

	meta := types.PaperMetadata{
		Abstract: abstract,
	}
	meta.Title, meta.TitleSource = findTitle(in, lines)

	meta.Keywords = findLabeledKeywords(lines)
	if len(meta.Keywords) == 0 && abstractEnd >= 0 {
		meta.Keywords = findBulletKeywords(in.Text, abstractEnd)
	}

	meta.Conclusion, _ = findSpan(in.Text, conclusionMarkers, conclusionStops, capRunes)
	return meta
}

// findSpan locates the first opener marker (case-insensitive) and returns
// the text from just after it to the nearest stop marker, capped at maxRunes.
// The second return is the byte offset one past the span in the source
// text, or -1 when no opener was found.
func findSpan(text string, openers, stops []string, maxRunes int) (string, int) {
	lower := strings.ToLower(text)

	start := -1
	markerLen := 0
	for _, m := range openers {
		if idx := strings.Index(lower, m); idx >= 0 && (start < 0 || idx < start) {
			start = idx
			markerLen = len(m)
		}
	}
	if start < 0 {
		return "", -1
	}

	body := text[start+markerLen:]
	trimmed := strings.TrimLeft(body, ":：—–- \t\n")
	skipped := len(body) - len(trimmed)
	body = trimmed

	end := len(body)
	bodyLower := strings.ToLower(body)
	for _, s := range stops {
		// Stops only count at a line start; "introduction" inside a
		// sentence must not close the span.
		if idx := indexAtLineStart(bodyLower, s); idx >= 0 && idx < end {
			end = idx
		}
	}

	span := strings.TrimSpace(body[:end])
	if runes := []rune(span); len(runes) > maxRunes {
		span = strings.TrimSpace(string(runes[:maxRunes]))
	}
	offset := start + markerLen + skipped + end
	if offset > len(text) {
		offset = len(text)
	}
	return span, offset
}

// indexAtLineStart returns the byte offset of the first occurrence of sub
// that begins a line, or -1.
func indexAtLineStart(s, sub string) int {
	if strings.HasPrefix(s, sub) {
		return 0
	}
	if idx := strings.Index(s, "\n"+sub); idx >= 0 {
		return idx + 1
	}
	return -1
}

// keywordLabels are tried in priority order; the first line carrying one
// supplies the keyword list.
var keywordLabels = []string{
	"keywords:", "keywords：", "keywords—", "keywords",
	"index terms:", "index terms—", "index terms",
	"关键词：", "关键词:", "关键词",
	"关键字：", "关键字:", "关键字",
}

// keywordSplitter breaks a keyword line into candidate tokens on ASCII and
// Chinese commas and semicolons.
func keywordSplitter(r rune) bool {
	switch r {
	case ',', '，', ';', '；':
		return true
	}
	return false
}

// findLabeledKeywords scans for an explicitly labeled keyword line.
func findLabeledKeywords(lines []string) []string {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		lower := strings.ToLower(trimmed)
		for _, label := range keywordLabels {
			if !strings.HasPrefix(lower, label) {
				continue
			}
			rest := trimmed[len(label):]
			if kws := splitKeywords(rest); len(kws) > 0 {
				return kws
			}
		}
	}
	return nil
}

// splitKeywords tokenizes, trims, deduplicates, and capitalizes a keyword
// list, dropping pure-numeric tokens.
func splitKeywords(s string) []string {
	// "and"/"与" join the final pair; turn them into delimiters first.
	s = strings.ReplaceAll(s, " and ", ",")
	s = strings.ReplaceAll(s, "与", ",")

	seen := make(map[string]bool)
	var out []string
	for _, tok := range strings.FieldsFunc(s, keywordSplitter) {
		tok = strings.Trim(strings.TrimSpace(tok), ".。")
		if tok == "" || isNumeric(tok) {
			continue
		}
		tok = capitalize(tok)
		key := strings.ToLower(tok)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, tok)
	}
	return out
}

// findBulletKeywords is the fallback: a run of bulleted lines shortly after
// the abstract. At least two bullets are required, otherwise the keywords
// stay empty and are reported as not identified.
func findBulletKeywords(text string, after int) []string {
	if after < 0 || after >= len(text) {
		return nil
	}
	lines := strings.Split(text[after:], "\n")
	if len(lines) > 12 {
		lines = lines[:12]
	}

	var raw []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		for _, bullet := range []string{"•", "·", "- ", "– ", "* "} {
			if strings.HasPrefix(trimmed, bullet) {
				raw = append(raw, strings.TrimSpace(trimmed[len(bullet):]))
				break
			}
		}
	}
	if len(raw) < 2 {
		return nil
	}
	return splitKeywords(strings.Join(raw, ","))
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}

func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

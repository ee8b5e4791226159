// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package match ranks conference records by similarity to a paper
// representation. Two interchangeable scoring strategies sit behind the
// Strategy interface per the Strategy pattern: deterministic lexical
// overlap, and remote embedding cosine similarity with a lexical fallback
// when the service is unreachable.
package match

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/pdiddy/confmatch/pkg/types"
)

// Strategy scores a paper representation against comparison texts in one
// call, so implementations backed by an embedding model can batch-encode
// every text in a single request instead of looping per record.
type Strategy interface {
	Name() types.SimilarityStrategy
	Score(ctx context.Context, paper string, comparisons []string) ([]float64, error)
}

// Paper is the matcher's view of an analyzed paper.
type Paper struct {
	Meta     types.PaperMetadata
	FullText string
}

// Representation returns the text compared against each record: the
// segmented title+abstract+keywords concatenation, or the full extracted
// text when segmentation yielded near-nothing (fewer runes than the
// configured threshold). The fallback is an explicit branch, not a side
// effect.
func (p Paper) Representation(cfg types.MatchConfig) string {
	parts := append([]string{p.Meta.Title, p.Meta.Abstract}, p.Meta.Keywords...)
	segmented := strings.TrimSpace(strings.Join(parts, " "))

	threshold := cfg.FullTextFallbackRunes
	if threshold <= 0 {
		threshold = 40
	}
	if len([]rune(segmented)) < threshold && strings.TrimSpace(p.FullText) != "" {
		return p.FullText
	}
	return segmented
}

// Output holds the ranked recommendations and how they were produced.
type Output struct {
	Results []types.MatchResult

	// Strategy is the strategy that actually scored the records; it
	// differs from the requested one after an embedding fallback.
	Strategy types.SimilarityStrategy

	// FellBack is set when the embedding strategy failed and lexical
	// scoring was used instead.
	FellBack bool

	// NoMatch is the valid terminal state "every record scored zero".
	// Callers present guidance (broaden the search) rather than an empty
	// silent response.
	NoMatch bool
}

// comparisonText joins the record fields the paper is compared against.
func comparisonText(rec types.ConferenceRecord) string {
	return strings.Join([]string{
		rec.TopicDirection, rec.SubKeywords, rec.SeriesName, rec.Name,
	}, " ")
}

// Rank scores every record, sorts by score descending with the
// deadline-then-row tie-break, and truncates to TopN. A record with empty
// topic fields scores zero but is never dropped for formatting problems.
func Rank(ctx context.Context, strategy Strategy, paper Paper, records []types.ConferenceRecord, cfg types.MatchConfig, now time.Time, w io.Writer) (Output, error) {
	if len(records) == 0 {
		return Output{Strategy: strategy.Name(), NoMatch: true}, nil
	}

	repr := paper.Representation(cfg)

	comparisons := make([]string, len(records))
	for i, rec := range records {
		comparisons[i] = comparisonText(rec)
	}

	out := Output{Strategy: strategy.Name()}
	scores, err := strategy.Score(ctx, repr, comparisons)
	if err != nil {
		// Remote strategies degrade to lexical rather than failing the
		// pipeline for one unreachable dependency.
		if strategy.Name() == types.StrategyLexical {
			return Output{}, err
		}
		fmt.Fprintf(w, "warning: %s strategy failed, falling back to lexical: %v\n", strategy.Name(), err)
		fallback := &LexicalStrategy{}
		scores, err = fallback.Score(ctx, repr, comparisons)
		if err != nil {
			return Output{}, err
		}
		out.Strategy = types.StrategyLexical
		out.FellBack = true
	}
	if len(scores) != len(records) {
		return Output{}, fmt.Errorf("strategy returned %d scores for %d records", len(scores), len(records))
	}

	paperLower := strings.ToLower(repr + " " + paper.FullText)

	var results []types.MatchResult
	for i, rec := range records {
		if scores[i] <= 0 {
			continue
		}
		deadline, days := parseDeadline(rec.DeadlineRaw, now)
		results = append(results, types.MatchResult{
			Conference:        rec,
			Score:             scores[i],
			MatchedTerms:      matchedTerms(rec, paperLower),
			Deadline:          deadline,
			DaysUntilDeadline: days,
		})
	}

	if len(results) == 0 {
		out.NoMatch = true
		return out, nil
	}

	// Total order: score desc, then nearer deadline (unknown last), then
	// source row order, so identical inputs always rank identically.
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if results[i].DaysUntilDeadline != results[j].DaysUntilDeadline {
			return results[i].DaysUntilDeadline < results[j].DaysUntilDeadline
		}
		return results[i].Conference.Row < results[j].Conference.Row
	})

	topN := cfg.TopN
	if topN <= 0 {
		topN = 5
	}
	if len(results) > topN {
		results = results[:topN]
	}
	out.Results = results
	return out, nil
}

// subKeywordSplitter breaks the sub-keyword field into individual terms.
func subKeywordSplitter(r rune) bool {
	switch r {
	case ',', '，', ';', '；', '、', '/', '|':
		return true
	}
	return false
}

// matchedTerms lists the record's sub-keyword terms that literally occur
// in the paper text, for explainability. Order follows the record field.
func matchedTerms(rec types.ConferenceRecord, paperLower string) []string {
	seen := make(map[string]bool)
	var terms []string
	for _, term := range strings.FieldsFunc(rec.SubKeywords, subKeywordSplitter) {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		lower := strings.ToLower(term)
		if seen[lower] || !strings.Contains(paperLower, lower) {
			continue
		}
		seen[lower] = true
		terms = append(terms, term)
	}
	return terms
}

// tokenize lowercases and splits text into letter/digit runs. CJK
// characters are letters, so Chinese topic fields tokenize per run of
// characters rather than vanishing.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

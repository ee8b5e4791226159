// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify scores a paper against a fixed subject taxonomy by
// counting literal trigger-term occurrences, producing a normalized
// percentage distribution.
package classify

import (
	"math"
	"sort"
	"strings"

	"github.com/pdiddy/confmatch/pkg/types"
)

// Classifier scores text against one taxonomy. It is stateless apart from
// the immutable taxonomy and safe for concurrent use.
type Classifier struct {
	taxonomy Taxonomy
	topK     int
}

// New builds a Classifier. A nil taxonomy falls back to the built-in one;
// topK <= 0 leaves the distribution unrestricted.
func New(taxonomy Taxonomy, cfg types.ClassifierConfig) *Classifier {
	if taxonomy == nil {
		taxonomy = DefaultTaxonomy()
	}
	return &Classifier{taxonomy: taxonomy, topK: cfg.TopK}
}

// Input joins the segmented fields into the classification text. The full
// text is not used; the segmented fields are what the matcher explains.
func Input(meta types.PaperMetadata) string {
	parts := []string{meta.Title, meta.Abstract}
	parts = append(parts, meta.Keywords...)
	return strings.Join(parts, " ")
}

// Classify returns the normalized subject distribution for text. When no
// trigger matches at all the result is empty: the valid terminal state
// "no subject identified", which callers must render distinctly instead of
// substituting a default subject.
func (c *Classifier) Classify(text string) types.SubjectScore {
	lower := strings.ToLower(text)
	if strings.TrimSpace(lower) == "" {
		return nil
	}

	var shares []types.SubjectShare
	total := 0
	for _, subject := range c.taxonomy {
		hits := 0
		var fired []string
		for _, trigger := range subject.Triggers {
			n := strings.Count(lower, strings.ToLower(trigger))
			if n > 0 {
				hits += n
				fired = append(fired, trigger)
			}
		}
		if hits == 0 {
			continue
		}
		total += hits
		shares = append(shares, types.SubjectShare{
			Subject:  subject.Label,
			Hits:     hits,
			Triggers: fired,
		})
	}
	if total == 0 {
		return nil
	}

	for i := range shares {
		pct := float64(shares[i].Hits) / float64(total) * 100
		shares[i].Percent = math.Round(pct*100) / 100
	}

	// Stable keeps taxonomy declaration order for equal percentages, so
	// the distribution is reproducible across runs.
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Percent > shares[j].Percent
	})

	if c.topK > 0 && len(shares) > c.topK {
		shares = shares[:c.topK]
	}
	return shares
}

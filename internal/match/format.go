// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// FormatTable writes ranked matches as a human-readable table to w.
func FormatTable(out Output, w io.Writer) {
	if out.NoMatch || len(out.Results) == 0 {
		fmt.Fprintln(w, "No matching conferences found. Load a broader catalog or check the paper's subject terms.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-50s  %-6s  %-12s  %-6s  %s\n",
		"Rank", "Conference", "Score", "Deadline", "Days", "Matched terms")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for i, r := range out.Results {
		name := truncate(r.Conference.FullName(), 50)
		days := ""
		if r.DeadlineKnown() {
			days = fmt.Sprintf("%d", r.DaysUntilDeadline)
		}
		deadline := r.Conference.DeadlineRaw
		if len(deadline) > 12 {
			deadline = deadline[:12]
		}
		fmt.Fprintf(w, "%-4d  %-50s  %-6.3f  %-12s  %-6s  %s\n",
			i+1, name, r.Score, deadline, days, formatTerms(r.MatchedTerms))
	}

	fmt.Fprintf(w, "\n%d matches (%s similarity", len(out.Results), out.Strategy)
	if out.FellBack {
		fmt.Fprintf(w, ", after embedding fallback")
	}
	fmt.Fprintln(w, ")")
}

// FormatJSON writes ranked matches as indented JSON to w.
func FormatJSON(out Output, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out.Results)
}

func formatTerms(terms []string) string {
	if len(terms) == 0 {
		return ""
	}
	return truncate(strings.Join(terms, ", "), 40)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

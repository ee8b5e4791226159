// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/confmatch/pkg/types"
)

// FormatTable writes a subject score breakdown as a human-readable table to w.
func FormatTable(score types.SubjectScore, w io.Writer) {
	if !score.Identified() {
		fmt.Fprintln(w, "No subject identified.")
		return
	}

	fmt.Fprintf(w, "%-20s  %-8s  %-5s  %s\n", "Subject", "Percent", "Hits", "Triggers")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	for _, s := range score {
		triggers := strings.Join(s.Triggers, ", ")
		if len(triggers) > 40 {
			triggers = triggers[:37] + "..."
		}
		fmt.Fprintf(w, "%-20s  %7.2f%%  %-5d  %s\n", s.Subject, s.Percent, s.Hits, triggers)
	}
}

// FormatJSON writes a subject score breakdown as indented JSON to w.
func FormatJSON(score types.SubjectScore, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(score)
}

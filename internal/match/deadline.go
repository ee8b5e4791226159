// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"strings"
	"time"

	"github.com/pdiddy/confmatch/pkg/types"
)

// deadlineLayouts are tried in order against the raw deadline cell. The
// Chinese date form is normalized to dashes before parsing.
var deadlineLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	"2006-1-2",
	"2006/1/2",
	"2006.1.2",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// chineseDateReplacer turns 2026年10月1日 into 2026-10-1.
var chineseDateReplacer = strings.NewReplacer("年", "-", "月", "-", "日", "")

// parseDeadline parses the raw deadline and returns the date plus whole
// days from now until it (negative when past). An unparsable value yields
// the zero time and DaysUnknown; it never drops the record, it only sorts
// after every known deadline in tie-breaks.
func parseDeadline(raw string, now time.Time) (time.Time, int) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, types.DaysUnknown
	}
	if strings.ContainsRune(raw, '年') {
		raw = strings.TrimSpace(chineseDateReplacer.Replace(raw))
	}

	for _, layout := range deadlineLayouts {
		t, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		days := int(midnight(t).Sub(midnight(now)).Hours() / 24)
		return t, days
	}
	return time.Time{}, types.DaysUnknown
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog parses the uploaded conference spreadsheet into validated
// ConferenceRecord values. Header names are normalized through a fixed
// alias table; a table missing any required canonical field is rejected
// whole, never partially loaded.
package catalog

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/confmatch/pkg/types"
)

// Canonical field names, used in validation messages and export headers.
const (
	FieldConferenceName     = "conference name"
	FieldSeriesName         = "series name"
	FieldTopicDirection     = "topic direction"
	FieldSubKeywords        = "sub-keywords"
	FieldDynamicPublication = "dynamic publication flag"
	FieldDeadline           = "deadline"
	FieldWebsite            = "website"
)

// headerAliases maps each accepted header spelling to its canonical field.
// The table mirrors the upload convention this domain uses; both the short
// and long Chinese spellings are accepted for name, topic, keyword, flag,
// and deadline columns.
var headerAliases = map[string]string{
	"会议名":    FieldConferenceName,
	"会议名称":   FieldConferenceName,
	"会议系列名":  FieldSeriesName,
	"会议主题方向": FieldTopicDirection,
	"会议方向":   FieldTopicDirection,
	"细分关键词":  FieldSubKeywords,
	"细分方向":   FieldSubKeywords,
	"动态出版标记": FieldDynamicPublication,
	"是否动态出版": FieldDynamicPublication,
	"截稿时间":   FieldDeadline,
	"截稿日期":   FieldDeadline,
	"官网链接":   FieldWebsite,

	// Canonical names are accepted as-is so an exported catalog loads back.
	FieldConferenceName:     FieldConferenceName,
	FieldSeriesName:         FieldSeriesName,
	FieldTopicDirection:     FieldTopicDirection,
	FieldSubKeywords:        FieldSubKeywords,
	FieldDynamicPublication: FieldDynamicPublication,
	FieldDeadline:           FieldDeadline,
	FieldWebsite:            FieldWebsite,
}

// requiredFields must all resolve from the header row for a load to succeed.
var requiredFields = []string{
	FieldConferenceName,
	FieldSeriesName,
	FieldTopicDirection,
	FieldSubKeywords,
	FieldDynamicPublication,
	FieldDeadline,
	FieldWebsite,
}

// SchemaError reports a fail-closed validation failure: the canonical
// fields that could not be resolved from any accepted alias.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("catalog schema invalid: missing required field(s): %s",
		strings.Join(e.Missing, ", "))
}

// LoadStats describes a successful load.
type LoadStats struct {
	// Rows is the number of data rows read from the sheet.
	Rows int

	// Filtered counts rows excluded by the satellite-marker filter.
	Filtered int

	// Skipped counts blank rows and rows with an empty conference name.
	Skipped int
}

// Load parses an xlsx stream into conference records. The first sheet is
// read; row 1 is the header. When the satellite filter is enabled, records
// whose conference name does not contain the marker are excluded; in this
// domain the satellite symposia accept papers, the main events do not.
func Load(r io.Reader, cfg types.CatalogConfig) ([]types.ConferenceRecord, LoadStats, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("opening spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, LoadStats{}, fmt.Errorf("spreadsheet has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("reading sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, LoadStats{}, &SchemaError{Missing: requiredFields}
	}

	columns, err := resolveHeader(rows[0])
	if err != nil {
		return nil, LoadStats{}, err
	}

	marker := strings.ToLower(cfg.SatelliteMarker)

	var records []types.ConferenceRecord
	var stats LoadStats
	for i, row := range rows[1:] {
		stats.Rows++
		cell := func(field string) string {
			idx := columns[field]
			if idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		name := cell(FieldConferenceName)
		if name == "" {
			stats.Skipped++
			continue
		}
		if cfg.SatelliteFilterEnabled && marker != "" &&
			!strings.Contains(strings.ToLower(name), marker) {
			stats.Filtered++
			continue
		}

		records = append(records, types.ConferenceRecord{
			Row:                i + 1,
			SeriesName:         cell(FieldSeriesName),
			Name:               name,
			TopicDirection:     cell(FieldTopicDirection),
			SubKeywords:        cell(FieldSubKeywords),
			DynamicPublication: cell(FieldDynamicPublication),
			DeadlineRaw:        cell(FieldDeadline),
			Website:            cell(FieldWebsite),
		})
	}

	return records, stats, nil
}

// LoadBytes is a convenience wrapper for callers holding the upload in memory.
func LoadBytes(data []byte, cfg types.CatalogConfig) ([]types.ConferenceRecord, LoadStats, error) {
	return Load(bytes.NewReader(data), cfg)
}

// resolveHeader maps canonical fields to column indexes through the alias
// table. The whole table is rejected when any required field is missing.
func resolveHeader(header []string) (map[string]int, error) {
	columns := make(map[string]int)
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		canonical, ok := headerAliases[h]
		if !ok {
			// Unknown columns are ignored, not errors.
			continue
		}
		if _, dup := columns[canonical]; !dup {
			columns[canonical] = i
		}
	}

	var missing []string
	for _, field := range requiredFields {
		if _, ok := columns[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &SchemaError{Missing: missing}
	}
	return columns, nil
}

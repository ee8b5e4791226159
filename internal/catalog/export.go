// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/confmatch/pkg/types"
)

const exportSheet = "Conferences"

// exportHeaders are the canonical column names, in requiredFields order.
var exportHeaders = []string{
	FieldConferenceName,
	FieldSeriesName,
	FieldTopicDirection,
	FieldSubKeywords,
	FieldDynamicPublication,
	FieldDeadline,
	FieldWebsite,
}

// ExportXLSX writes the normalized catalog back out as an xlsx workbook
// with canonical headers, so a cleaned table can be shared regardless of
// which aliases the original upload used.
func ExportXLSX(records []types.ConferenceRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(exportSheet); err != nil {
		return nil, fmt.Errorf("creating sheet: %w", err)
	}
	idx, err := f.GetSheetIndex(exportSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if defIdx, err := f.GetSheetIndex("Sheet1"); err == nil && defIdx >= 0 {
		f.DeleteSheet("Sheet1")
	}

	for col, h := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return nil, err
		}
	}

	for rowIdx, rec := range records {
		values := []string{
			rec.Name,
			rec.SeriesName,
			rec.TopicDirection,
			rec.SubKeywords,
			rec.DynamicPublication,
			rec.DeadlineRaw,
			rec.Website,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"shift-planner/errors"
)

// ParseXLSX reads observation rows from a spreadsheet export. The first
// sheet is used; its first non-empty row must be the same header the CSV
// format carries. Row-level failures are skipped and counted, matching
// Parse.
func ParseXLSX(r io.Reader) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("error opening spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("error reading sheet %q: %w", sheets[0], err)
	}

	var (
		res  Result
		cols map[string]int
	)
	for i, record := range rows {
		lineNum := i + 1
		if len(record) == 0 || (len(record) == 1 && strings.TrimSpace(record[0]) == "") {
			continue
		}
		if cols == nil {
			// Same header handling as the CSV path: a '#'-prefixed row
			// is only a comment if it isn't itself a valid header.
			if strings.HasPrefix(record[0], "#") {
				if c, headerErr := headerColumns(record); headerErr == nil {
					cols = c
				}
				continue
			}
			cols, err = headerColumns(record)
			if err != nil {
				return nil, fmt.Errorf("error reading header at row %d: %w", lineNum, err)
			}
			continue
		}
		if strings.HasPrefix(record[0], "#") {
			continue
		}

		obs, err := parseRow(record, cols)
		if err != nil {
			res.Skipped++
			res.SkipErrors = append(res.SkipErrors, &errors.MalformedObservationError{
				Line:   lineNum,
				Record: record,
				Err:    err,
			})
			continue
		}
		res.Observations = append(res.Observations, obs)
	}

	if cols == nil {
		return nil, fmt.Errorf("no header row found")
	}
	return &res, nil
}

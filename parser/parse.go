package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"shift-planner/errors"
	"shift-planner/models"
)

// Result holds the observations recovered from an input file plus the rows
// that had to be dropped. Partial data is useful for historical analysis, so
// unparseable rows are counted and reported rather than failing the run.
type Result struct {
	Observations []models.Observation
	Skipped      int
	SkipErrors   []error
}

// Column names are matched after normalization: lower-cased, spaces to
// underscores, '#' to "num". This accepts the sales export headers
// "Date", "Hour of Day", "# Transactions", "Total Sales" in any order.
const (
	colDate         = "date"
	colHour         = "hour_of_day"
	colTransactions = "num_transactions"
	colSales        = "total_sales"
)

// Date layouts tried in order. The export writes MM-DD-YYYY; ISO dates are
// accepted as a fallback.
var dateLayouts = []string{"01-02-2006", "2006-01-02", "01/02/2006"}

// Parse reads CSV observation rows from r. The first non-comment row must be
// a header naming the date, hour, transactions, and sales columns. Rows with
// an unparseable date or an hour outside 0-23 are skipped and counted; empty
// numeric fields are read as zero.
func Parse(r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var (
		res     Result
		cols    map[string]int
		lineNum int
	)

	for {
		record, err := reader.Read()
		lineNum++
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV at line %d: %w", lineNum, err)
		}
		if len(record) == 0 || (len(record) == 1 && strings.TrimSpace(record[0]) == "") {
			continue
		}
		if cols == nil {
			// A '#'-prefixed row before the header is usually a comment,
			// but "# Transactions" is a legal leading column: accept the
			// row as the header when it names all required columns.
			if strings.HasPrefix(record[0], "#") {
				if c, headerErr := headerColumns(record); headerErr == nil {
					cols = c
				}
				continue
			}
			cols, err = headerColumns(record)
			if err != nil {
				return nil, fmt.Errorf("error reading header at line %d: %w", lineNum, err)
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

// headerColumns maps the required columns to their positions.
func headerColumns(record []string) (map[string]int, error) {
	cols := make(map[string]int, len(record))
	for i, name := range record {
		cols[normalizeHeader(name)] = i
	}
	for _, required := range []string{colDate, colHour, colTransactions, colSales} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}
	return cols, nil
}

func normalizeHeader(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "#", "num")
	return name
}

func parseRow(record []string, cols map[string]int) (models.Observation, error) {
	var obs models.Observation

	date, err := parseDate(field(record, cols[colDate]))
	if err != nil {
		return obs, fmt.Errorf("invalid date: %w", err)
	}

	hour, err := strconv.Atoi(field(record, cols[colHour]))
	if err != nil {
		return obs, fmt.Errorf("invalid hour: %w", err)
	}
	if hour < 0 || hour > 23 {
		return obs, fmt.Errorf("hour %d out of range", hour)
	}

	txns, err := parseCount(field(record, cols[colTransactions]))
	if err != nil {
		return obs, fmt.Errorf("invalid transaction count: %w", err)
	}

	sales, err := parseAmount(field(record, cols[colSales]))
	if err != nil {
		return obs, fmt.Errorf("invalid sales amount: %w", err)
	}

	obs.Timestamp = time.Date(date.Year(), date.Month(), date.Day(), hour, 0, 0, 0, time.UTC)
	obs.TransactionCount = txns
	obs.SalesAmount = sales
	return obs, nil
}

func field(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func parseDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// parseCount reads an integer, accepting an empty field as zero. The export
// occasionally writes counts with a decimal point, so a float that is a
// whole number is accepted too.
func parseCount(value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(value); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// parseAmount reads a currency amount, accepting an empty field as zero and
// stripping a leading '$' and thousands separators.
func parseAmount(value string) (float64, error) {
	if value == "" {
		return 0, nil
	}
	value = strings.TrimPrefix(value, "$")
	value = strings.ReplaceAll(value, ",", "")
	return strconv.ParseFloat(value, 64)
}

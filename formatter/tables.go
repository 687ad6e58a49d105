package formatter

import (
	"encoding/csv"
	"fmt"
	"strings"

	"shift-planner/models"
	"shift-planner/timeseries"
)

// Table is a flat, column-named result set. Every planner output can be
// reduced to one for export.
type Table struct {
	Columns []string
	Rows    [][]string
}

// CSV serializes the table with a header row.
func (t Table) CSV() string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	w.Write(t.Columns)
	for _, row := range t.Rows {
		w.Write(row)
	}
	w.Flush()
	return sb.String()
}

// SeriesTable exports the normalized series itself, one row per observed
// hour, in the same column shape the sales export uses.
func SeriesTable(series *models.DemandSeries) Table {
	t := Table{Columns: []string{"Date", "Hour", "Transactions", "Total Sales"}}
	for _, p := range series.Points {
		t.Rows = append(t.Rows, []string{
			p.Timestamp.Format("2006-01-02"),
			fmt.Sprintf("%02d:00", p.Features.Hour),
			fmt.Sprintf("%d", p.TransactionCount),
			fmt.Sprintf("%.2f", p.SalesAmount),
		})
	}
	return t
}

// ForecastTable lists predicted demand per future hour.
func ForecastTable(points []models.ForecastPoint) Table {
	t := Table{Columns: []string{"Datetime", "Predicted"}}
	for _, p := range points {
		t.Rows = append(t.Rows, []string{
			p.Timestamp.Format("2006-01-02 15:04"),
			fmt.Sprintf("%.2f", p.Predicted),
		})
	}
	return t
}

// RequirementsTable lists required staff per (day, hour) cell.
func RequirementsTable(reqs []models.StaffingRequirement) Table {
	t := Table{Columns: []string{"Day", "Hour", "Required Staff"}}
	for _, r := range reqs {
		t.Rows = append(t.Rows, []string{
			dayName(r.DayOfWeek),
			fmt.Sprintf("%02d:00", r.Hour),
			fmt.Sprintf("%d", r.RequiredStaff),
		})
	}
	return t
}

// ScheduleTable lists required versus assigned staff per cell.
func ScheduleTable(assignments []models.ScheduleAssignment) Table {
	t := Table{Columns: []string{"Day", "Hour", "Required Staff", "Assigned Staff"}}
	for _, a := range assignments {
		t.Rows = append(t.Rows, []string{
			dayName(a.DayOfWeek),
			fmt.Sprintf("%02d:00", a.Hour),
			fmt.Sprintf("%d", a.RequiredStaff),
			fmt.Sprintf("%d", a.AssignedStaff),
		})
	}
	return t
}

// ShiftPlanTable pivots shift assignments into one row per day with one
// column per shift window, in the windows' order.
func ShiftPlanTable(plan []models.ShiftAssignment, windows []models.ShiftWindow) Table {
	t := Table{Columns: []string{"Day"}}
	for _, w := range windows {
		t.Columns = append(t.Columns, fmt.Sprintf("%s (%02d-%02d)", w.Label, w.StartHour, w.EndHour))
	}

	staff := make(map[int]map[string]int, 7)
	for _, s := range plan {
		if staff[s.DayOfWeek] == nil {
			staff[s.DayOfWeek] = make(map[string]int)
		}
		staff[s.DayOfWeek][s.Label] = s.Staff
	}

	for day := 0; day < 7; day++ {
		row := []string{dayName(day)}
		for _, w := range windows {
			row = append(row, fmt.Sprintf("%d", staff[day][w.Label]))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// HourlySummaryTable exports the hour-of-day breakdown.
func HourlySummaryTable(summaries []timeseries.HourlySummary) Table {
	t := Table{Columns: []string{"Hour", "Total Sales", "Transactions", "Avg Sales/Day", "Avg Txns/Day"}}
	for _, s := range summaries {
		t.Rows = append(t.Rows, []string{
			fmt.Sprintf("%02d:00", s.Hour),
			fmt.Sprintf("%.2f", s.TotalSales),
			fmt.Sprintf("%d", s.Transactions),
			fmt.Sprintf("%.2f", s.AvgSalesPerDay),
			fmt.Sprintf("%.2f", s.AvgTxnsPerDay),
		})
	}
	return t
}

// WeekdaySummaryTable exports the day-of-week breakdown.
func WeekdaySummaryTable(summaries []timeseries.WeekdaySummary) Table {
	t := Table{Columns: []string{"Day", "Total Sales", "Transactions"}}
	for _, s := range summaries {
		t.Rows = append(t.Rows, []string{
			dayName(s.DayOfWeek),
			fmt.Sprintf("%.2f", s.TotalSales),
			fmt.Sprintf("%d", s.Transactions),
		})
	}
	return t
}

// MonthlySummaryTable exports the month-over-month breakdown.
func MonthlySummaryTable(summaries []timeseries.MonthlySummary) Table {
	t := Table{Columns: []string{"Month", "Total Sales", "Transactions"}}
	for _, s := range summaries {
		t.Rows = append(t.Rows, []string{
			fmt.Sprintf("%04d-%02d", s.Year, s.Month),
			fmt.Sprintf("%.2f", s.TotalSales),
			fmt.Sprintf("%d", s.Transactions),
		})
	}
	return t
}

// Package formatter renders planner output as text, JSON, or CSV.
// Numeric fields render with fixed precision so exports are stable
// across runs.
package formatter

import (
	"encoding/json"
	"fmt"
	"strings"

	"shift-planner/models"
)

// PlanReport bundles everything one planning run produced.
type PlanReport struct {
	Metric       models.Metric                `json:"metric"`
	Fingerprint  string                       `json:"series_fingerprint"`
	Observations int                          `json:"observations"`
	SkippedRows  int                          `json:"skipped_rows"`
	Budget       int                          `json:"budget,omitempty"`
	Forecast     []models.ForecastPoint       `json:"-"`
	Requirements []models.StaffingRequirement `json:"-"`
	ShiftWindows []models.ShiftWindow         `json:"-"`
	ShiftPlan    []models.ShiftAssignment     `json:"-"`
	Schedule     []models.ScheduleAssignment  `json:"-"`
}

// FormatText returns a human-readable rendering of the report.
func FormatText(report *PlanReport) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Demand metric: %s\n", report.Metric)
	fmt.Fprintf(&sb, "Observations: %d (skipped rows: %d)\n", report.Observations, report.SkippedRows)
	fmt.Fprintf(&sb, "Series fingerprint: %s\n", report.Fingerprint)

	if len(report.ShiftPlan) > 0 {
		sb.WriteString("\nRecommended weekly shift plan:\n")
		sb.WriteString(RenderTable(ShiftPlanTable(report.ShiftPlan, report.ShiftWindows)))
	}

	if len(report.Schedule) > 0 {
		fmt.Fprintf(&sb, "\nBudgeted schedule (%d staff-hours):\n", report.Budget)
		sb.WriteString(RenderTable(ScheduleTable(report.Schedule)))
		required, assigned := 0, 0
		for _, a := range report.Schedule {
			required += a.RequiredStaff
			assigned += a.AssignedStaff
		}
		if assigned < required {
			fmt.Fprintf(&sb, "  ⚠️  BUDGET WARNING: Required=%d, Assigned=%d, Shortfall=%d\n",
				required, assigned, required-assigned)
		}
	}

	if len(report.Forecast) > 0 {
		sb.WriteString("\nHourly forecast:\n")
		sb.WriteString(RenderTable(ForecastTable(report.Forecast)))
	}

	return sb.String()
}

// jsonReport is the JSON output shape; tabular sections become arrays of
// flat records.
type jsonReport struct {
	PlanReport
	Forecast     []jsonForecastPoint `json:"forecast,omitempty"`
	Requirements []jsonRequirement   `json:"requirements,omitempty"`
	ShiftPlan    []jsonShift         `json:"shift_plan,omitempty"`
	Schedule     []jsonAssignment    `json:"schedule,omitempty"`
}

type jsonForecastPoint struct {
	Datetime  string  `json:"datetime"`
	Predicted float64 `json:"predicted"`
}

type jsonRequirement struct {
	Day           string `json:"day"`
	Hour          int    `json:"hour"`
	RequiredStaff int    `json:"required_staff"`
}

type jsonShift struct {
	Day   string `json:"day"`
	Shift string `json:"shift"`
	Staff int    `json:"staff"`
}

type jsonAssignment struct {
	Day           string `json:"day"`
	Hour          int    `json:"hour"`
	RequiredStaff int    `json:"required_staff"`
	AssignedStaff int    `json:"assigned_staff"`
}

// FormatJSON returns the JSON rendering of the report.
func FormatJSON(report *PlanReport) string {
	out := jsonReport{PlanReport: *report}
	for _, p := range report.Forecast {
		out.Forecast = append(out.Forecast, jsonForecastPoint{
			Datetime:  p.Timestamp.Format("2006-01-02 15:04"),
			Predicted: roundTwo(p.Predicted),
		})
	}
	for _, r := range report.Requirements {
		out.Requirements = append(out.Requirements, jsonRequirement{
			Day: dayName(r.DayOfWeek), Hour: r.Hour, RequiredStaff: r.RequiredStaff,
		})
	}
	for _, s := range report.ShiftPlan {
		out.ShiftPlan = append(out.ShiftPlan, jsonShift{
			Day: dayName(s.DayOfWeek), Shift: s.Label, Staff: s.Staff,
		})
	}
	for _, a := range report.Schedule {
		out.Schedule = append(out.Schedule, jsonAssignment{
			Day: dayName(a.DayOfWeek), Hour: a.Hour,
			RequiredStaff: a.RequiredStaff, AssignedStaff: a.AssignedStaff,
		})
	}
	jsonBytes, _ := json.MarshalIndent(out, "", "  ")
	return string(jsonBytes)
}

// FormatCSV returns the CSV rendering of the report's main table: the
// budgeted schedule when one was produced, otherwise the requirement
// grid, otherwise the raw forecast.
func FormatCSV(report *PlanReport) string {
	switch {
	case len(report.Schedule) > 0:
		return ScheduleTable(report.Schedule).CSV()
	case len(report.Requirements) > 0:
		return RequirementsTable(report.Requirements).CSV()
	default:
		return ForecastTable(report.Forecast).CSV()
	}
}

func dayName(dow int) string {
	if dow < 0 || dow > 6 {
		return fmt.Sprintf("Day%d", dow)
	}
	return models.DayNames[dow]
}

func roundTwo(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

// RenderTable renders a table for text output with aligned columns.
func RenderTable(t Table) string {
	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = len(c)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		sb.WriteString("  ")
		for i, cell := range cells {
			fmt.Fprintf(&sb, "%-*s", widths[i]+2, cell)
		}
		sb.WriteString("\n")
	}
	writeRow(t.Columns)
	for _, row := range t.Rows {
		writeRow(row)
	}
	return sb.String()
}

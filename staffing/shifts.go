package staffing

import "shift-planner/models"

// DefaultShiftWindows is the store's standard day split.
var DefaultShiftWindows = []models.ShiftWindow{
	{Label: "Morning", StartHour: 8, EndHour: 12},
	{Label: "Midday", StartHour: 12, EndHour: 17},
	{Label: "Closing", StartHour: 17, EndHour: 22},
}

// AggregateShifts collapses per-hour requirements into one row per
// (day, window): the maximum requirement among the window's covered
// hours. A shift must cover its peak; averaging would understaff it.
// Windows with no covered hours yield 0. Overlapping windows are legal
// and compute their peaks independently.
//
// Output is ordered day-of-week ascending (Monday first), then by the
// caller's window order.
func AggregateShifts(requirements []models.StaffingRequirement, windows []models.ShiftWindow) []models.ShiftAssignment {
	// peak[day][hour], -1 where no requirement was observed
	var peak [7][24]int
	for d := range peak {
		for h := range peak[d] {
			peak[d][h] = -1
		}
	}
	for _, r := range requirements {
		if r.DayOfWeek < 0 || r.DayOfWeek > 6 || r.Hour < 0 || r.Hour > 23 {
			continue
		}
		if r.RequiredStaff > peak[r.DayOfWeek][r.Hour] {
			peak[r.DayOfWeek][r.Hour] = r.RequiredStaff
		}
	}

	out := make([]models.ShiftAssignment, 0, 7*len(windows))
	for day := 0; day < 7; day++ {
		for _, w := range windows {
			max := 0
			for h := w.StartHour; h < w.EndHour && h < 24; h++ {
				if h < 0 {
					continue
				}
				if peak[day][h] > max {
					max = peak[day][h]
				}
			}
			out = append(out, models.ShiftAssignment{
				DayOfWeek: day,
				Label:     w.Label,
				Staff:     max,
			})
		}
	}
	return out
}

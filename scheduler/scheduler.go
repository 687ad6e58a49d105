// Package scheduler allocates a fixed staff-hour budget across the
// hours that need staff most.
package scheduler

import (
	"sort"

	"shift-planner/errors"
	"shift-planner/models"
)

// Allocate greedily assigns staff-hours to requirement cells in
// descending order of need until the budget runs out. Ties in need are
// broken by the caller's original cell order, so the result is
// deterministic. Every input cell is emitted, in input order, including
// cells that received nothing; downstream grids need the full set.
//
// Guarantees: sum of assigned staff never exceeds the budget, and no
// cell is assigned more than it requires. Greedy-by-peak-need is a
// deliberate policy, not an optimal knapsack solve; a human reviews the
// schedule afterwards.
func Allocate(requirements []models.StaffingRequirement, budget int) ([]models.ScheduleAssignment, error) {
	if budget < 0 {
		return nil, &errors.InvalidParameterError{Name: "budget", Value: float64(budget)}
	}

	ranked := make([]int, len(requirements))
	for i := range ranked {
		ranked[i] = i
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return requirements[ranked[a]].RequiredStaff > requirements[ranked[b]].RequiredStaff
	})

	assigned := make([]int, len(requirements))
	remaining := budget
	for _, i := range ranked {
		if remaining <= 0 {
			break
		}
		req := requirements[i].RequiredStaff
		if req < 0 {
			req = 0
		}
		grant := req
		if grant > remaining {
			grant = remaining
		}
		assigned[i] = grant
		remaining -= grant
	}

	out := make([]models.ScheduleAssignment, len(requirements))
	for i, r := range requirements {
		out[i] = models.ScheduleAssignment{
			DayOfWeek:     r.DayOfWeek,
			Hour:          r.Hour,
			RequiredStaff: r.RequiredStaff,
			AssignedStaff: assigned[i],
		}
	}
	return out, nil
}

// TotalRequired sums the required staff over a requirement set.
func TotalRequired(requirements []models.StaffingRequirement) int {
	total := 0
	for _, r := range requirements {
		total += r.RequiredStaff
	}
	return total
}

// TotalAssigned sums the assigned staff over an assignment set.
func TotalAssigned(assignments []models.ScheduleAssignment) int {
	total := 0
	for _, a := range assignments {
		total += a.AssignedStaff
	}
	return total
}

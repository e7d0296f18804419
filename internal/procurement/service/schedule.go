package service

import (
	"math"
	"time"

	"ctai_backend/internal/procurement/transport"
)

// Phase status values.
const (
	StatusComplete = "complete"
	StatusActive   = "active"
	StatusCritical = "critical"
	StatusFuture   = "future"
)

const dateLayout = "2006-01-02"

// High power capacity stretches the schedule.
const (
	powerDurationThresholdMW = 10.0
	powerDurationFactor      = 1.3
)

type phaseSpec struct {
	name  string
	owner string
	share float64
}

// The fixed phase plan. Shares sum to 100%.
var phasePlan = []phaseSpec{
	{"Site Preparation", "Site Team", 0.08},
	{"Foundation", "Civil Contractor", 0.12},
	{"Structural Framework", "Civil Contractor", 0.20},
	{"MEP Installation", "MEP Contractor", 0.15},
	{"Envelope & Roofing", "Facade Contractor", 0.12},
	{"Interior Finishing", "Interiors Team", 0.18},
	{"Testing & Commissioning", "Commissioning Team", 0.10},
	{"Handover", "Project Management", 0.05},
}

// ScheduleMonths returns the base duration tier for an area, stretched for
// high power capacity (truncated to whole months).
func ScheduleMonths(areaSqft float64, powerMW *float64) int {
	months := 24
	switch {
	case areaSqft <= 50000:
		months = 12
	case areaSqft <= 200000:
		months = 18
	}

	if powerMW != nil && *powerMW > powerDurationThresholdMW {
		months = int(float64(months) * powerDurationFactor)
	}
	return months
}

// GenerateSchedule lays the fixed phase plan contiguously across the
// computed total duration starting at start. The progress/status pattern
// (first phase complete, second active, third critical, rest future) is a
// presentation heuristic, not a real progress tracker.
func GenerateSchedule(areaSqft float64, projectType string, powerMW *float64, start time.Time) []transport.SchedulePhase {
	totalDays := ScheduleMonths(areaSqft, powerMW) * 30

	phases := make([]transport.SchedulePhase, 0, len(phasePlan))
	cursor := start.Truncate(24 * time.Hour)

	for i, spec := range phasePlan {
		duration := int(math.Floor(float64(totalDays) * spec.share))
		end := cursor.AddDate(0, 0, duration)

		phase := transport.SchedulePhase{
			Name:         spec.name,
			Owner:        spec.owner,
			StartDate:    cursor.Format(dateLayout),
			EndDate:      end.Format(dateLayout),
			DurationDays: duration,
			Status:       StatusFuture,
		}

		switch i {
		case 0:
			phase.Status = StatusComplete
			phase.ProgressPercent = 100
		case 1:
			phase.Status = StatusActive
			phase.ProgressPercent = 45
		case 2:
			phase.Status = StatusCritical
			phase.ProgressPercent = 10
		}

		phases = append(phases, phase)
		cursor = end
	}

	return phases
}

package service

import (
	"testing"
	"time"
)

func TestScheduleMonthsTiers(t *testing.T) {
	cases := []struct {
		area  float64
		power *float64
		want  int
	}{
		{10000, nil, 12},
		{50000, nil, 12},
		{50001, nil, 18},
		{200000, nil, 18},
		{200001, nil, 24},
		{500000, nil, 24},
	}
	for _, tc := range cases {
		if got := ScheduleMonths(tc.area, tc.power); got != tc.want {
			t.Fatalf("area %v: months = %d, want %d", tc.area, got, tc.want)
		}
	}
}

func TestScheduleMonthsPowerStretch(t *testing.T) {
	power := 25.0
	// 18 * 1.3 = 23.4, truncated.
	if got := ScheduleMonths(200000, &power); got != 23 {
		t.Fatalf("months = %d, want 23", got)
	}

	lowPower := 10.0
	if got := ScheduleMonths(200000, &lowPower); got != 18 {
		t.Fatalf("months at threshold = %d, want 18", got)
	}
}

func TestGenerateScheduleContiguous(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	phases := GenerateSchedule(120000, TypeCommercial, nil, start)

	if len(phases) != 8 {
		t.Fatalf("expected 8 phases, got %d", len(phases))
	}
	for i := 1; i < len(phases); i++ {
		if phases[i].StartDate != phases[i-1].EndDate {
			t.Fatalf("phase %d starts %s, previous ends %s",
				i, phases[i].StartDate, phases[i-1].EndDate)
		}
	}
}

func TestGenerateScheduleDurations(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	phases := GenerateSchedule(120000, TypeCommercial, nil, start)

	// 18 months * 30 days, shares floored per phase.
	totalDays := 540
	wantDurations := []int{43, 64, 108, 81, 64, 97, 54, 27}

	var sum int
	for i, phase := range phases {
		if phase.DurationDays != wantDurations[i] {
			t.Fatalf("phase %s duration = %d, want %d", phase.Name, phase.DurationDays, wantDurations[i])
		}
		sum += phase.DurationDays
	}
	// Floor rounding may shed at most one day per phase.
	if sum > totalDays || sum < totalDays-len(phases) {
		t.Fatalf("durations sum to %d, want within [%d, %d]", sum, totalDays-len(phases), totalDays)
	}
}

func TestGenerateScheduleStatusPattern(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	phases := GenerateSchedule(50000, TypeResidential, nil, start)

	if phases[0].Status != StatusComplete || phases[0].ProgressPercent != 100 {
		t.Fatalf("phase 0: %s/%d", phases[0].Status, phases[0].ProgressPercent)
	}
	if phases[1].Status != StatusActive || phases[1].ProgressPercent != 45 {
		t.Fatalf("phase 1: %s/%d", phases[1].Status, phases[1].ProgressPercent)
	}
	if phases[2].Status != StatusCritical || phases[2].ProgressPercent != 10 {
		t.Fatalf("phase 2: %s/%d", phases[2].Status, phases[2].ProgressPercent)
	}
	for i := 3; i < len(phases); i++ {
		if phases[i].Status != StatusFuture || phases[i].ProgressPercent != 0 {
			t.Fatalf("phase %d: %s/%d", i, phases[i].Status, phases[i].ProgressPercent)
		}
	}
}

func TestGenerateScheduleStartDate(t *testing.T) {
	start := time.Date(2026, 3, 15, 23, 45, 0, 0, time.UTC)
	phases := GenerateSchedule(50000, TypeResidential, nil, start)

	if phases[0].StartDate != "2026-03-15" {
		t.Fatalf("first phase starts %s, want 2026-03-15", phases[0].StartDate)
	}
}

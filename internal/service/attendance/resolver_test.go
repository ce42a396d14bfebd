package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mrkunal0430/hrms/internal/domain/attendance"
	"github.com/mrkunal0430/hrms/internal/domain/settings"
)

func testSettings() settings.Effective {
	grace := 15
	return settings.Effective{
		WorkingHours: settings.WorkingHours{
			Start: settings.ClockTime{Hour: 9, Minute: 0},
			End:   settings.ClockTime{Hour: 18, Minute: 0},
		},
		GracePeriodMinutes:    grace,
		HalfDayThresholdHours: 4.0,
		HalfDayCutoff:         settings.ClockTime{Hour: 13, Minute: 0},
		WeekendDays:           []time.Weekday{time.Saturday, time.Sunday},
		Geofence: settings.GeofencePolicy{
			Enabled:         true,
			EnforceCheckIn:  true,
			EnforceCheckOut: false,
			AllowWFHBypass:  true,
		},
	}
}

// Monday
var testDate = time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) *time.Time {
	t := time.Date(testDate.Year(), testDate.Month(), testDate.Day(), hour, minute, 0, 0, testDate.Location())
	return &t
}

func resolve(mutate func(*ResolveInput)) Resolution {
	in := ResolveInput{
		Date:     testDate,
		Settings: testSettings(),
	}
	if mutate != nil {
		mutate(&in)
	}
	return Resolve(in)
}

func TestResolve_StatusPrecedence(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ResolveInput)
		want   attendance.Status
	}{
		{
			name:   "no data at all is absent",
			mutate: nil,
			want:   attendance.StatusAbsent,
		},
		{
			name: "holiday without check-in",
			mutate: func(in *ResolveInput) {
				in.IsHoliday = true
			},
			want: attendance.StatusHoliday,
		},
		{
			name: "holiday beats weekend",
			mutate: func(in *ResolveInput) {
				in.IsHoliday = true
				in.IsWeekend = true
			},
			want: attendance.StatusHoliday,
		},
		{
			name: "holiday beats leave",
			mutate: func(in *ResolveInput) {
				in.IsHoliday = true
				in.Leave = &LeaveOverlay{}
			},
			want: attendance.StatusHoliday,
		},
		{
			name: "working a holiday resolves from the evidence",
			mutate: func(in *ResolveInput) {
				in.IsHoliday = true
				in.CheckIn = at(9, 0)
				in.CheckOut = at(18, 0)
			},
			want: attendance.StatusPresent,
		},
		{
			name: "full-day leave wins over check-in evidence",
			mutate: func(in *ResolveInput) {
				in.Leave = &LeaveOverlay{}
				in.CheckIn = at(9, 0)
				in.CheckOut = at(18, 0)
			},
			want: attendance.StatusLeave,
		},
		{
			name: "half-day leave without check-in is leave",
			mutate: func(in *ResolveInput) {
				in.Leave = &LeaveOverlay{HalfDay: true}
			},
			want: attendance.StatusLeave,
		},
		{
			name: "half-day leave with worked time is half day",
			mutate: func(in *ResolveInput) {
				in.Leave = &LeaveOverlay{HalfDay: true}
				in.CheckIn = at(9, 0)
				in.CheckOut = at(13, 30)
			},
			want: attendance.StatusHalfDay,
		},
		{
			name: "weekend without check-in",
			mutate: func(in *ResolveInput) {
				in.IsWeekend = true
			},
			want: attendance.StatusWeekend,
		},
		{
			name: "working a weekend resolves from the evidence",
			mutate: func(in *ResolveInput) {
				in.IsWeekend = true
				in.CheckIn = at(9, 0)
				in.CheckOut = at(18, 0)
			},
			want: attendance.StatusPresent,
		},
		{
			name: "check-in after grace is late",
			mutate: func(in *ResolveInput) {
				in.CheckIn = at(9, 20)
				in.CheckOut = at(18, 0)
			},
			want: attendance.StatusLate,
		},
		{
			name: "check-in inside grace is not late",
			mutate: func(in *ResolveInput) {
				in.CheckIn = at(9, 10)
				in.CheckOut = at(18, 5)
			},
			want: attendance.StatusPresent,
		},
		{
			name: "exactly at the grace limit is not late",
			mutate: func(in *ResolveInput) {
				in.CheckIn = at(9, 15)
				in.CheckOut = at(18, 0)
			},
			want: attendance.StatusPresent,
		},
		{
			name: "waived lateness resolves as present",
			mutate: func(in *ResolveInput) {
				in.CheckIn = at(9, 40)
				in.CheckOut = at(18, 0)
				in.LatenessWaived = true
			},
			want: attendance.StatusPresent,
		},
		{
			name: "late beats wfh bypass",
			mutate: func(in *ResolveInput) {
				in.CheckIn = at(10, 0)
				in.CheckOut = at(19, 0)
				in.Geofence = attendance.GeofenceAnnotation{Validated: true, WFHBypass: true}
			},
			want: attendance.StatusLate,
		},
		{
			name: "wfh bypass with full hours",
			mutate: func(in *ResolveInput) {
				in.CheckIn = at(9, 0)
				in.CheckOut = at(18, 0)
				in.Geofence = attendance.GeofenceAnnotation{Validated: true, WFHBypass: true}
			},
			want: attendance.StatusWFH,
		},
		{
			name: "short day is half day",
			mutate: func(in *ResolveInput) {
				in.CheckIn = at(9, 0)
				in.CheckOut = at(12, 0)
			},
			want: attendance.StatusHalfDay,
		},
		{
			name: "check-out before the cutoff is half day even with enough hours",
			mutate: func(in *ResolveInput) {
				in.CheckIn = at(5, 0)
				in.CheckOut = at(12, 30)
			},
			want: attendance.StatusHalfDay,
		},
		{
			name: "full day present",
			mutate: func(in *ResolveInput) {
				in.CheckIn = at(9, 0)
				in.CheckOut = at(18, 0)
			},
			want: attendance.StatusPresent,
		},
		{
			name: "open session counts as present",
			mutate: func(in *ResolveInput) {
				in.CheckIn = at(9, 0)
			},
			want: attendance.StatusPresent,
		},
		{
			name: "regularized day without check-out is half day",
			mutate: func(in *ResolveInput) {
				in.CheckIn = at(9, 0)
				in.Geofence = attendance.GeofenceAnnotation{Validated: true, Regularized: true}
			},
			want: attendance.StatusHalfDay,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolve(tt.mutate)
			assert.Equal(t, tt.want, got.Status)
		})
	}
}

func TestResolve_WorkHours(t *testing.T) {
	t.Run("rounded to two decimals", func(t *testing.T) {
		res := resolve(func(in *ResolveInput) {
			in.CheckIn = at(9, 0)
			in.CheckOut = at(17, 30)
		})
		assert.Equal(t, "8.50", res.WorkHours.StringFixed(2))
	})

	t.Run("zero without a check-out", func(t *testing.T) {
		res := resolve(func(in *ResolveInput) {
			in.CheckIn = at(9, 0)
		})
		assert.True(t, res.WorkHours.IsZero())
	})

	t.Run("zero on leave day without worked time", func(t *testing.T) {
		res := resolve(func(in *ResolveInput) {
			in.Leave = &LeaveOverlay{}
		})
		assert.True(t, res.WorkHours.IsZero())
	})

	t.Run("never negative", func(t *testing.T) {
		res := resolve(func(in *ResolveInput) {
			in.CheckIn = at(18, 0)
			in.CheckOut = at(9, 0)
		})
		assert.False(t, res.WorkHours.IsNegative())
	})
}

func TestResolve_Idempotent(t *testing.T) {
	mutate := func(in *ResolveInput) {
		in.CheckIn = at(9, 10)
		in.CheckOut = at(18, 5)
	}
	first := resolve(mutate)
	second := resolve(mutate)

	assert.Equal(t, first.Status, second.Status)
	assert.True(t, first.WorkHours.Equal(second.WorkHours))
}

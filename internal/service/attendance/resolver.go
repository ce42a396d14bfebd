package attendance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mrkunal0430/hrms/internal/domain/attendance"
	"github.com/mrkunal0430/hrms/internal/domain/settings"
)

// LeaveOverlay marks the day covered by an approved leave request.
type LeaveOverlay struct {
	HalfDay bool
}

// ResolveInput is everything the status resolver looks at for one
// (employee, date) pair. Malformed timestamps (check-out before check-in) are
// rejected at the ingestion boundary and never reach here. Callers invoke the
// resolver only for days that are in the past or carry evidence; an empty
// future day is never resolved or written.
type ResolveInput struct {
	Date time.Time // midnight in the company timezone

	CheckIn  *time.Time
	CheckOut *time.Time

	Leave     *LeaveOverlay
	IsHoliday bool // non-optional holiday on this date
	IsWeekend bool

	Geofence       attendance.GeofenceAnnotation
	LatenessWaived bool // set when an approved regularization covers the day

	Settings settings.Effective
}

// Resolution is the derived status and work hours for the day.
type Resolution struct {
	Status    attendance.Status
	WorkHours decimal.Decimal
}

// Resolve derives the canonical attendance status. Pure: it never fails and
// has no side effects; absence of data maps to absent, not an error. The
// precedence rules are ordered highest first and the first match wins.
func Resolve(in ResolveInput) Resolution {
	hours := workHours(in.CheckIn, in.CheckOut)

	// A non-optional holiday with no recorded check-in wins over everything,
	// weekend included.
	if in.IsHoliday && in.CheckIn == nil {
		return Resolution{Status: attendance.StatusHoliday, WorkHours: hours}
	}

	if in.Leave != nil {
		// A half-day leave shares the day with worked time: with a check-in
		// the day is a half-day, without one it is plain leave.
		if in.Leave.HalfDay && in.CheckIn != nil {
			return Resolution{Status: attendance.StatusHalfDay, WorkHours: hours}
		}
		return Resolution{Status: attendance.StatusLeave, WorkHours: hours}
	}

	if in.IsWeekend && in.CheckIn == nil {
		return Resolution{Status: attendance.StatusWeekend, WorkHours: hours}
	}

	if in.CheckIn == nil {
		return Resolution{Status: attendance.StatusAbsent, WorkHours: hours}
	}

	scheduledStart := in.Settings.WorkingHours.Start.At(in.Date)
	graceLimit := scheduledStart.Add(in.Settings.GracePeriod())
	if in.CheckIn.After(graceLimit) && !in.LatenessWaived {
		return Resolution{Status: attendance.StatusLate, WorkHours: hours}
	}

	if in.Geofence.WFHBypass {
		return Resolution{Status: attendance.StatusWFH, WorkHours: hours}
	}

	if in.CheckOut != nil {
		threshold := decimal.NewFromFloat(in.Settings.HalfDayThresholdHours)
		cutoff := in.Settings.HalfDayCutoff.At(in.Date)
		if hours.LessThan(threshold) || in.CheckOut.Before(cutoff) {
			return Resolution{Status: attendance.StatusHalfDay, WorkHours: hours}
		}
		return Resolution{Status: attendance.StatusPresent, WorkHours: hours}
	}

	// Check-in only. A regularized day without a check-out is a confirmed
	// partial day; an ordinary open session counts as present until closed.
	if in.Geofence.Regularized {
		return Resolution{Status: attendance.StatusHalfDay, WorkHours: hours}
	}
	return Resolution{Status: attendance.StatusPresent, WorkHours: hours}
}

// workHours computes max(0, checkOut-checkIn) in hours rounded to two
// decimals, and zero when either timestamp is missing.
func workHours(checkIn, checkOut *time.Time) decimal.Decimal {
	if checkIn == nil || checkOut == nil {
		return decimal.Zero
	}
	h := checkOut.Sub(*checkIn).Hours()
	if h < 0 {
		h = 0
	}
	return decimal.NewFromFloat(h).Round(2)
}

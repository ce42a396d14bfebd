package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mrkunal0430/hrms/internal/domain/attendance"
	"github.com/mrkunal0430/hrms/internal/domain/employee"
	"github.com/mrkunal0430/hrms/internal/domain/holiday"
	"github.com/mrkunal0430/hrms/internal/domain/notification"
	"github.com/mrkunal0430/hrms/internal/domain/office"
	"github.com/mrkunal0430/hrms/internal/domain/request"
	"github.com/mrkunal0430/hrms/internal/domain/settings"
	"github.com/mrkunal0430/hrms/internal/pkg/validator"
)

// SettingsProvider supplies the merged configuration for a department.
type SettingsProvider interface {
	Effective(ctx context.Context, departmentID *string) (settings.Effective, error)
}

// TxRunner executes fn atomically. Repository calls made with the context fn
// receives share a single transaction.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

// Service is the attendance record store. It owns the one-record-per
// (employee, date) invariant: every mutation re-runs the resolver before
// persisting, so status and work hours are always a pure function of the
// record's stored fields plus the configuration active at write time.
type Service struct {
	records   attendance.Repository
	requests  request.Repository
	holidays  holiday.Repository
	offices   office.Repository
	directory employee.Directory
	settings  SettingsProvider
	notifier  notification.Service

	tx      TxRunner
	locks   *keyedMutex
	loc     *time.Location
	timeout time.Duration
	now     func() time.Time
}

func NewService(
	records attendance.Repository,
	requests request.Repository,
	holidays holiday.Repository,
	offices office.Repository,
	directory employee.Directory,
	settingsProvider SettingsProvider,
	notifier notification.Service,
	tx TxRunner,
	loc *time.Location,
	timeout time.Duration,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if tx == nil {
		tx = func(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }
	}
	return &Service{
		records:   records,
		requests:  requests,
		holidays:  holidays,
		offices:   offices,
		directory: directory,
		settings:  settingsProvider,
		notifier:  notifier,
		tx:        tx,
		locks:     newKeyedMutex(),
		loc:       loc,
		timeout:   timeout,
		now:       time.Now,
	}
}

// day normalizes a timestamp to midnight of its calendar date in the company
// timezone.
func (s *Service) day(t time.Time) time.Time {
	local := t.In(s.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)
}

func lockKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

// CheckIn records a check-in event for the employee and derives the day's
// status. Fails with ErrDuplicateCheckIn when a check-in already exists and
// no pending regularization explains the second attempt.
func (s *Service) CheckIn(ctx context.Context, employeeID string, ts time.Time, sample *attendance.Location) (attendance.Record, error) {
	if err := validateSample(sample); err != nil {
		return attendance.Record{}, err
	}

	emp, err := s.directory.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.Record{}, err
	}

	date := s.day(ts)
	unlock := s.locks.Lock(lockKey(employeeID, date))
	defer unlock()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	existing, err := s.records.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to load attendance record: %w", err)
	}

	if existing != nil && existing.CheckIn != nil {
		pendingReg, err := s.requests.HasPendingRegularization(ctx, employeeID, date)
		if err != nil {
			return attendance.Record{}, fmt.Errorf("failed to check pending regularization: %w", err)
		}
		if !pendingReg {
			return attendance.Record{}, attendance.ErrDuplicateCheckIn
		}
		// A pending regularization explains the retry; the record stays as-is
		// until the regularization is reviewed.
		return *existing, nil
	}

	eff, err := s.settings.Effective(ctx, emp.DepartmentID)
	if err != nil {
		return attendance.Record{}, err
	}

	wfhApproved, err := s.requests.HasApprovedWFH(ctx, employeeID, date)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to check approved WFH: %w", err)
	}

	offices, err := s.offices.ListActive(ctx)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to list offices: %w", err)
	}

	ann := ValidateLocation(sample, offices, eff.Geofence, eff.Geofence.EnforceCheckIn, wfhApproved)
	if !ann.Validated {
		s.flagForReview(ctx, emp, date, ann)
	}

	overlays, err := s.overlaysFor(ctx, employeeID, date, eff)
	if err != nil {
		return attendance.Record{}, err
	}

	rec := attendance.Record{}
	if existing != nil {
		rec = *existing
	} else {
		rec.ID = uuid.NewString()
		rec.EmployeeID = employeeID
		rec.Date = date
	}
	rec.CheckIn = &ts
	rec.CheckInLocation = sample
	rec.Geofence = ann

	s.applyResolution(&rec, overlays, wfhApproved, eff, false)

	return s.persist(ctx, rec, existing != nil)
}

// CheckOut closes the day's open check-in. Fails with ErrNoOpenCheckIn when
// no check-in exists for the date.
func (s *Service) CheckOut(ctx context.Context, employeeID string, ts time.Time, sample *attendance.Location) (attendance.Record, error) {
	if err := validateSample(sample); err != nil {
		return attendance.Record{}, err
	}

	emp, err := s.directory.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.Record{}, err
	}

	date := s.day(ts)
	unlock := s.locks.Lock(lockKey(employeeID, date))
	defer unlock()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	existing, err := s.records.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to load attendance record: %w", err)
	}
	if existing == nil || existing.CheckIn == nil {
		return attendance.Record{}, attendance.ErrNoOpenCheckIn
	}
	if existing.CheckOut != nil {
		return attendance.Record{}, attendance.ErrAlreadyCheckedOut
	}
	if ts.Before(*existing.CheckIn) {
		return attendance.Record{}, attendance.ErrCheckOutBeforeCheckIn
	}

	eff, err := s.settings.Effective(ctx, emp.DepartmentID)
	if err != nil {
		return attendance.Record{}, err
	}

	wfhApproved, err := s.requests.HasApprovedWFH(ctx, employeeID, date)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to check approved WFH: %w", err)
	}

	offices, err := s.offices.ListActive(ctx)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to list offices: %w", err)
	}

	outAnn := ValidateLocation(sample, offices, eff.Geofence, eff.Geofence.EnforceCheckOut, wfhApproved)
	if !outAnn.Validated {
		s.flagForReview(ctx, emp, date, outAnn)
	}

	overlays, err := s.overlaysFor(ctx, employeeID, date, eff)
	if err != nil {
		return attendance.Record{}, err
	}

	rec := *existing
	rec.CheckOut = &ts
	rec.CheckOutLocation = sample
	rec.Geofence = combineAnnotations(rec.Geofence, outAnn)

	s.applyResolution(&rec, overlays, wfhApproved, eff, false)

	return s.persist(ctx, rec, true)
}

// ApplyRegularization re-resolves the day using the approved request's
// corrected check-in/out values. Regularization is a human override of
// location evidence: the stored geofence annotation is replaced with a
// validated, regularized one and lateness is waived.
func (s *Service) ApplyRegularization(ctx context.Context, req request.Request) (attendance.Record, error) {
	if req.Kind != request.KindRegularization {
		return attendance.Record{}, fmt.Errorf("request %s is not a regularization", req.ID)
	}
	if req.RequestedCheckIn == nil {
		return attendance.Record{}, request.ErrInvalidRequestedTimes
	}
	if req.RequestedCheckOut != nil && req.RequestedCheckOut.Before(*req.RequestedCheckIn) {
		return attendance.Record{}, request.ErrInvalidRequestedTimes
	}

	emp, err := s.directory.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.Record{}, err
	}

	date := s.day(req.StartDate)
	unlock := s.locks.Lock(lockKey(req.EmployeeID, date))
	defer unlock()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	existing, err := s.records.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to load attendance record: %w", err)
	}

	eff, err := s.settings.Effective(ctx, emp.DepartmentID)
	if err != nil {
		return attendance.Record{}, err
	}

	overlays, err := s.overlaysFor(ctx, req.EmployeeID, date, eff)
	if err != nil {
		return attendance.Record{}, err
	}

	rec := attendance.Record{}
	if existing != nil {
		rec = *existing
	} else {
		rec.ID = uuid.NewString()
		rec.EmployeeID = req.EmployeeID
		rec.Date = date
	}
	rec.CheckIn = req.RequestedCheckIn
	rec.CheckOut = req.RequestedCheckOut
	rec.Geofence = attendance.GeofenceAnnotation{Validated: true, Regularized: true}

	s.applyResolution(&rec, overlays, rec.IsWFH, eff, true)

	return s.persist(ctx, rec, existing != nil)
}

// ApplyLeaveOrWFH re-resolves every date covered by an approved leave or WFH
// request. Leave days are materialized across the whole span; WFH days with
// no record yet are written only once they are in the past.
func (s *Service) ApplyLeaveOrWFH(ctx context.Context, req request.Request) ([]attendance.Record, error) {
	if req.Kind != request.KindLeave && req.Kind != request.KindWFH {
		return nil, fmt.Errorf("request %s is not a leave or WFH request", req.ID)
	}

	emp, err := s.directory.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	eff, err := s.settings.Effective(ctx, emp.DepartmentID)
	if err != nil {
		return nil, err
	}

	var updated []attendance.Record
	for _, d := range req.Dates() {
		rec, err := s.reresolveDay(ctx, req, s.day(d), eff)
		if err != nil {
			return updated, fmt.Errorf("failed to re-resolve %s: %w", d.Format("2006-01-02"), err)
		}
		if rec != nil {
			updated = append(updated, *rec)
		}
	}
	return updated, nil
}

// reresolveDay loads, re-resolves and persists one day of an approved leave or
// WFH span inside a transaction. Returns nil for a WFH day that has no record
// yet and is not in the past: the approval carries no worked evidence of its
// own, so the day stays unwritten until the employee checks in or the nightly
// job picks the date up.
func (s *Service) reresolveDay(ctx context.Context, req request.Request, date time.Time, eff settings.Effective) (*attendance.Record, error) {
	unlock := s.locks.Lock(lockKey(req.EmployeeID, date))
	defer unlock()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var out *attendance.Record
	err := s.tx(ctx, func(ctx context.Context) error {
		existing, err := s.records.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
		if err != nil {
			return fmt.Errorf("failed to load attendance record: %w", err)
		}

		if existing == nil && req.Kind == request.KindWFH && !date.Before(s.day(s.now())) {
			return nil
		}

		overlays, err := s.overlaysFor(ctx, req.EmployeeID, date, eff)
		if err != nil {
			return err
		}

		wfhApproved := overlays.wfhApproved || req.Kind == request.KindWFH

		rec := attendance.Record{}
		if existing != nil {
			rec = *existing
		} else {
			rec.ID = uuid.NewString()
			rec.EmployeeID = req.EmployeeID
			rec.Date = date
		}

		if req.Kind == request.KindWFH && rec.CheckIn != nil && eff.Geofence.AllowWFHBypass {
			// The approval retroactively legitimizes the remote location.
			offices, err := s.offices.ListActive(ctx)
			if err != nil {
				return fmt.Errorf("failed to list offices: %w", err)
			}
			rec.Geofence = ValidateLocation(rec.CheckInLocation, offices, eff.Geofence, eff.Geofence.EnforceCheckIn, true)
		}

		s.applyResolution(&rec, overlays, wfhApproved, eff, rec.Geofence.Regularized)

		persisted, err := s.persist(ctx, rec, existing != nil)
		if err != nil {
			return err
		}
		out = &persisted
		return nil
	})
	return out, err
}

// MaterializeDay synthesizes the record for a day with no check-in so that
// absent/holiday/weekend days are queryable. Returns nil without error when a
// record already exists or the date is not in the past; safe to re-run.
func (s *Service) MaterializeDay(ctx context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	date = s.day(date)
	if !date.Before(s.day(s.now())) {
		return nil, nil
	}

	emp, err := s.directory.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if !emp.IsActive() {
		return nil, nil
	}

	unlock := s.locks.Lock(lockKey(employeeID, date))
	defer unlock()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	exists, err := s.records.ExistsForDate(ctx, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to check record existence: %w", err)
	}
	if exists {
		return nil, nil
	}

	eff, err := s.settings.Effective(ctx, emp.DepartmentID)
	if err != nil {
		return nil, err
	}

	overlays, err := s.overlaysFor(ctx, employeeID, date, eff)
	if err != nil {
		return nil, err
	}

	rec := attendance.Record{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		Date:       date,
	}
	s.applyResolution(&rec, overlays, overlays.wfhApproved, eff, false)

	created, err := s.persist(ctx, rec, false)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// ListByEmployee returns the employee's records in the date range.
func (s *Service) ListByEmployee(ctx context.Context, employeeID string, filter attendance.ListFilter) ([]attendance.Record, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if filter.Limit <= 0 {
		filter.Limit = 31
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	return s.records.ListByEmployee(ctx, employeeID, filter)
}

// dayOverlays carries the approved leave/holiday/weekend context consulted by
// the resolver for one day.
type dayOverlays struct {
	leave       *LeaveOverlay
	wfhApproved bool
	isHoliday   bool
	isWeekend   bool
}

func (s *Service) overlaysFor(ctx context.Context, employeeID string, date time.Time, eff settings.Effective) (dayOverlays, error) {
	var o dayOverlays

	leaveReq, err := s.requests.ApprovedLeaveForDate(ctx, employeeID, date)
	if err != nil {
		return o, fmt.Errorf("failed to check approved leave: %w", err)
	}
	if leaveReq != nil {
		o.leave = &LeaveOverlay{HalfDay: leaveReq.IsHalfDay()}
	}

	o.wfhApproved, err = s.requests.HasApprovedWFH(ctx, employeeID, date)
	if err != nil {
		return o, fmt.Errorf("failed to check approved WFH: %w", err)
	}

	hol, err := s.holidays.GetByDate(ctx, date)
	if err != nil {
		return o, fmt.Errorf("failed to check holiday: %w", err)
	}
	o.isHoliday = hol != nil && !hol.IsOptional
	o.isWeekend = eff.IsWeekend(date.Weekday())

	return o, nil
}

// applyResolution runs the resolver and rewrites the record's derived fields
// and overlay flags.
func (s *Service) applyResolution(rec *attendance.Record, overlays dayOverlays, wfhApproved bool, eff settings.Effective, latenessWaived bool) {
	res := Resolve(ResolveInput{
		Date:           rec.Date,
		CheckIn:        rec.CheckIn,
		CheckOut:       rec.CheckOut,
		Leave:          overlays.leave,
		IsHoliday:      overlays.isHoliday,
		IsWeekend:      overlays.isWeekend,
		Geofence:       rec.Geofence,
		LatenessWaived: latenessWaived,
		Settings:       eff,
	})

	rec.Status = res.Status
	rec.WorkHours = res.WorkHours
	rec.IsLeave = overlays.leave != nil
	rec.IsHoliday = overlays.isHoliday
	rec.IsWeekend = overlays.isWeekend
	rec.IsWFH = wfhApproved
}

func (s *Service) persist(ctx context.Context, rec attendance.Record, update bool) (attendance.Record, error) {
	if update {
		if err := s.records.Update(ctx, rec); err != nil {
			return attendance.Record{}, fmt.Errorf("failed to update attendance record: %w", err)
		}
		return rec, nil
	}
	created, err := s.records.Create(ctx, rec)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}
	return created, nil
}

// flagForReview raises a fire-and-forget notification when a check event
// fails geofence validation. Failures are logged, never propagated.
func (s *Service) flagForReview(ctx context.Context, emp employee.Employee, date time.Time, ann attendance.GeofenceAnnotation) {
	if s.notifier == nil {
		return
	}
	data := map[string]interface{}{
		"employee_id": emp.ID,
		"date":        date.Format("2006-01-02"),
	}
	if ann.Distance != nil {
		data["distance_meters"] = *ann.Distance
	}
	if ann.InvalidEvidence {
		data["invalid_evidence"] = true
	}
	err := s.notifier.QueueNotification(ctx, notification.CreateNotificationRequest{
		RecipientID: emp.ID,
		Type:        notification.TypeAttendanceFlagged,
		Title:       "Attendance flagged for review",
		Message:     fmt.Sprintf("Check event for %s on %s failed location validation", emp.FullName, date.Format("2006-01-02")),
		Data:        data,
	})
	if err != nil {
		slog.Warn("failed to queue geofence review notification", "employee_id", emp.ID, "error", err)
	}
}

func validateSample(sample *attendance.Location) error {
	if sample == nil {
		return nil
	}
	if !validator.IsValidLatitude(sample.Latitude) || !validator.IsValidLongitude(sample.Longitude) {
		return attendance.ErrInvalidCoordinates
	}
	return nil
}

// combineAnnotations merges the check-in and check-out validation outcomes.
// The record stays validated only when both events validated; the failing
// event's distance wins so HR sees the evidence that tripped the flag.
func combineAnnotations(in, out attendance.GeofenceAnnotation) attendance.GeofenceAnnotation {
	merged := in
	merged.Validated = in.Validated && out.Validated
	merged.InvalidEvidence = in.InvalidEvidence || out.InvalidEvidence
	merged.WFHBypass = in.WFHBypass || out.WFHBypass
	if !out.Validated && out.Distance != nil {
		merged.Distance = out.Distance
		merged.OfficeID = out.OfficeID
	} else if merged.Distance == nil {
		merged.Distance = out.Distance
		merged.OfficeID = out.OfficeID
	}
	return merged
}

package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mrkunal0430/hrms/internal/domain/settings"
	"github.com/mrkunal0430/hrms/internal/pkg/database"
)

const settingsColumns = `
	work_start, work_end, grace_period_minutes,
	half_day_threshold_hours, half_day_cutoff, weekend_days,
	geofence_enabled, geofence_enforce_check_in, geofence_enforce_check_out,
	geofence_allow_wfh_bypass, geofence_accuracy_ceiling_meters`

type settingsRepository struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.Repository {
	return &settingsRepository{db: db}
}

// GetGlobal implements settings.Repository. A missing or incomplete row is
// returned as-is; the resolver is the one that rejects incomplete
// configuration.
func (r *settingsRepository) GetGlobal(ctx context.Context) (settings.Global, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + settingsColumns + ` FROM global_settings LIMIT 1`

	row, err := scanSettingsRow(q.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settings.Global{}, nil
		}
		return settings.Global{}, fmt.Errorf("failed to get global settings: %w", err)
	}

	fields, err := row.toFields()
	if err != nil {
		return settings.Global{}, fmt.Errorf("failed to parse global settings: %w", err)
	}

	return settings.Global{
		WorkingHours:          fields.workingHours,
		GracePeriodMinutes:    fields.gracePeriodMinutes,
		HalfDayThresholdHours: fields.halfDayThresholdHours,
		HalfDayCutoff:         fields.halfDayCutoff,
		WeekendDays:           fields.weekendDays,
		Geofence:              fields.geofence,
	}, nil
}

// GetDepartmentOverride implements settings.Repository.
func (r *settingsRepository) GetDepartmentOverride(ctx context.Context, departmentID string) (*settings.DepartmentOverride, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + settingsColumns + ` FROM department_settings WHERE department_id = $1`

	row, err := scanSettingsRow(q.QueryRow(ctx, query, departmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get department settings: %w", err)
	}

	fields, err := row.toFields()
	if err != nil {
		return nil, fmt.Errorf("failed to parse department settings: %w", err)
	}

	return &settings.DepartmentOverride{
		DepartmentID:          departmentID,
		WorkingHours:          fields.workingHours,
		GracePeriodMinutes:    fields.gracePeriodMinutes,
		HalfDayThresholdHours: fields.halfDayThresholdHours,
		HalfDayCutoff:         fields.halfDayCutoff,
		WeekendDays:           fields.weekendDays,
		Geofence:              fields.geofence,
	}, nil
}

// settingsRow is the raw nullable column set shared by the global and
// department tables.
type settingsRow struct {
	workStart        *string
	workEnd          *string
	graceMinutes     *int
	halfDayThreshold *float64
	halfDayCutoff    *string
	weekendDays      *string

	geoEnabled         *bool
	geoEnforceCheckIn  *bool
	geoEnforceCheckOut *bool
	geoAllowWFHBypass  *bool
	geoAccuracyCeiling *float64
}

func scanSettingsRow(row pgx.Row) (settingsRow, error) {
	var s settingsRow
	err := row.Scan(
		&s.workStart, &s.workEnd, &s.graceMinutes,
		&s.halfDayThreshold, &s.halfDayCutoff, &s.weekendDays,
		&s.geoEnabled, &s.geoEnforceCheckIn, &s.geoEnforceCheckOut,
		&s.geoAllowWFHBypass, &s.geoAccuracyCeiling,
	)
	return s, err
}

type settingsFields struct {
	workingHours          *settings.WorkingHours
	gracePeriodMinutes    *int
	halfDayThresholdHours *float64
	halfDayCutoff         *settings.ClockTime
	weekendDays           []time.Weekday
	geofence              *settings.GeofencePolicy
}

// toFields converts the raw row into typed fields. Grouped fields (working
// hours, geofence) are present only when their anchor column is non-null, so
// storage cannot express a partially-present group.
func (s settingsRow) toFields() (settingsFields, error) {
	var f settingsFields

	if s.workStart != nil && s.workEnd != nil {
		start, err := settings.ParseClockTime(*s.workStart)
		if err != nil {
			return f, err
		}
		end, err := settings.ParseClockTime(*s.workEnd)
		if err != nil {
			return f, err
		}
		f.workingHours = &settings.WorkingHours{Start: start, End: end}
	}

	f.gracePeriodMinutes = s.graceMinutes
	f.halfDayThresholdHours = s.halfDayThreshold

	if s.halfDayCutoff != nil {
		cutoff, err := settings.ParseClockTime(*s.halfDayCutoff)
		if err != nil {
			return f, err
		}
		f.halfDayCutoff = &cutoff
	}

	if s.weekendDays != nil {
		days, err := parseWeekendDays(*s.weekendDays)
		if err != nil {
			return f, err
		}
		f.weekendDays = days
	}

	if s.geoEnabled != nil {
		policy := settings.GeofencePolicy{Enabled: *s.geoEnabled}
		if s.geoEnforceCheckIn != nil {
			policy.EnforceCheckIn = *s.geoEnforceCheckIn
		}
		if s.geoEnforceCheckOut != nil {
			policy.EnforceCheckOut = *s.geoEnforceCheckOut
		}
		if s.geoAllowWFHBypass != nil {
			policy.AllowWFHBypass = *s.geoAllowWFHBypass
		}
		if s.geoAccuracyCeiling != nil {
			policy.AccuracyCeilingMeters = *s.geoAccuracyCeiling
		}
		f.geofence = &policy
	}

	return f, nil
}

// parseWeekendDays parses a comma-separated weekday list, e.g. "0,6" for
// Sunday and Saturday.
func parseWeekendDays(csv string) ([]time.Weekday, error) {
	if strings.TrimSpace(csv) == "" {
		return []time.Weekday{}, nil
	}

	parts := strings.Split(csv, ",")
	days := make([]time.Weekday, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 || n > 6 {
			return nil, fmt.Errorf("invalid weekend day %q", p)
		}
		days = append(days, time.Weekday(n))
	}

	return days, nil
}

package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mrkunal0430/hrms/internal/domain/attendance"
	"github.com/mrkunal0430/hrms/internal/pkg/database"
)

const attendanceColumns = `
	id, employee_id, date, check_in, check_out, status, work_hours,
	check_in_latitude, check_in_longitude, check_in_accuracy,
	check_out_latitude, check_out_longitude, check_out_accuracy,
	geo_validated, geo_distance_meters, geo_office_id,
	geo_wfh_bypass, geo_regularized, geo_invalid_evidence,
	is_leave, is_holiday, is_weekend, is_wfh,
	created_at, updated_at`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

// Create implements attendance.Repository. The unique index on
// (employee_id, date) is the last line of defense against double insertion.
func (r *attendanceRepository) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (
			id, employee_id, date, check_in, check_out, status, work_hours,
			check_in_latitude, check_in_longitude, check_in_accuracy,
			check_out_latitude, check_out_longitude, check_out_accuracy,
			geo_validated, geo_distance_meters, geo_office_id,
			geo_wfh_bypass, geo_regularized, geo_invalid_evidence,
			is_leave, is_holiday, is_weekend, is_wfh
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22, $23
		) RETURNING created_at, updated_at
	`

	ciLat, ciLon, ciAcc := locationColumns(record.CheckInLocation)
	coLat, coLon, coAcc := locationColumns(record.CheckOutLocation)

	err := q.QueryRow(ctx, query,
		record.ID, record.EmployeeID, record.Date,
		record.CheckIn, record.CheckOut, record.Status, record.WorkHours,
		ciLat, ciLon, ciAcc,
		coLat, coLon, coAcc,
		record.Geofence.Validated, record.Geofence.Distance, record.Geofence.OfficeID,
		record.Geofence.WFHBypass, record.Geofence.Regularized, record.Geofence.InvalidEvidence,
		record.IsLeave, record.IsHoliday, record.IsWeekend, record.IsWFH,
	).Scan(&record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return record, nil
}

// Update implements attendance.Repository.
func (r *attendanceRepository) Update(ctx context.Context, record attendance.Record) error {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records SET
			check_in = $2, check_out = $3, status = $4, work_hours = $5,
			check_in_latitude = $6, check_in_longitude = $7, check_in_accuracy = $8,
			check_out_latitude = $9, check_out_longitude = $10, check_out_accuracy = $11,
			geo_validated = $12, geo_distance_meters = $13, geo_office_id = $14,
			geo_wfh_bypass = $15, geo_regularized = $16, geo_invalid_evidence = $17,
			is_leave = $18, is_holiday = $19, is_weekend = $20, is_wfh = $21,
			updated_at = NOW()
		WHERE id = $1
	`

	ciLat, ciLon, ciAcc := locationColumns(record.CheckInLocation)
	coLat, coLon, coAcc := locationColumns(record.CheckOutLocation)

	tag, err := q.Exec(ctx, query,
		record.ID,
		record.CheckIn, record.CheckOut, record.Status, record.WorkHours,
		ciLat, ciLon, ciAcc,
		coLat, coLon, coAcc,
		record.Geofence.Validated, record.Geofence.Distance, record.Geofence.OfficeID,
		record.Geofence.WFHBypass, record.Geofence.Regularized, record.Geofence.InvalidEvidence,
		record.IsLeave, record.IsHoliday, record.IsWeekend, record.IsWFH,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}

	return nil
}

// GetByEmployeeAndDate implements attendance.Repository.
func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1 AND date = $2
		LIMIT 1
	`

	record, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &record, nil
}

// ListByEmployee implements attendance.Repository.
func (r *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string, filter attendance.ListFilter) ([]attendance.Record, int64, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	var total int64
	countQuery := `
		SELECT COUNT(*) FROM attendance_records
		WHERE employee_id = $1 AND date >= $2 AND date <= $3
	`
	if err := q.QueryRow(ctx, countQuery, employeeID, filter.From, filter.To).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	query := `SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date DESC
		LIMIT $4 OFFSET $5
	`

	offset := (filter.Page - 1) * filter.Limit
	rows, err := q.Query(ctx, query, employeeID, filter.From, filter.To, filter.Limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		record, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read attendance rows: %w", err)
	}

	return records, total, nil
}

// ExistsForDate implements attendance.Repository.
func (r *attendanceRepository) ExistsForDate(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM attendance_records WHERE employee_id = $1 AND date = $2)`
	if err := q.QueryRow(ctx, query, employeeID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check attendance existence: %w", err)
	}

	return exists, nil
}

func scanAttendance(row pgx.Row) (attendance.Record, error) {
	var (
		record              attendance.Record
		ciLat, ciLon, ciAcc *float64
		coLat, coLon, coAcc *float64
	)

	err := row.Scan(
		&record.ID, &record.EmployeeID, &record.Date,
		&record.CheckIn, &record.CheckOut, &record.Status, &record.WorkHours,
		&ciLat, &ciLon, &ciAcc,
		&coLat, &coLon, &coAcc,
		&record.Geofence.Validated, &record.Geofence.Distance, &record.Geofence.OfficeID,
		&record.Geofence.WFHBypass, &record.Geofence.Regularized, &record.Geofence.InvalidEvidence,
		&record.IsLeave, &record.IsHoliday, &record.IsWeekend, &record.IsWFH,
		&record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return attendance.Record{}, err
	}

	record.CheckInLocation = locationFromColumns(ciLat, ciLon, ciAcc)
	record.CheckOutLocation = locationFromColumns(coLat, coLon, coAcc)

	return record, nil
}

func locationColumns(loc *attendance.Location) (lat, lon, acc *float64) {
	if loc == nil {
		return nil, nil, nil
	}
	return &loc.Latitude, &loc.Longitude, loc.Accuracy
}

func locationFromColumns(lat, lon, acc *float64) *attendance.Location {
	if lat == nil || lon == nil {
		return nil
	}
	return &attendance.Location{Latitude: *lat, Longitude: *lon, Accuracy: acc}
}

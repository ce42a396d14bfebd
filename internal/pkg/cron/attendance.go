package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mrkunal0430/hrms/internal/domain/attendance"
	"github.com/mrkunal0430/hrms/internal/domain/employee"
	"github.com/mrkunal0430/hrms/internal/domain/notification"
	"github.com/mrkunal0430/hrms/internal/domain/request"
	attendanceService "github.com/mrkunal0430/hrms/internal/service/attendance"
	"github.com/mrkunal0430/hrms/internal/service/approval"
)

const recomputeBatchSize = 50

type AttendanceJobs struct {
	attendanceSvc   *attendanceService.Service
	engine          *approval.Engine
	directory       employee.Directory
	recomputeQueue  request.RecomputeQueue
	notificationSvc notification.Service
	loc             *time.Location
	now             func() time.Time
}

func NewAttendanceJobs(
	attendanceSvc *attendanceService.Service,
	engine *approval.Engine,
	directory employee.Directory,
	recomputeQueue request.RecomputeQueue,
	notificationSvc notification.Service,
	loc *time.Location,
) *AttendanceJobs {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceJobs{
		attendanceSvc:   attendanceSvc,
		engine:          engine,
		directory:       directory,
		recomputeQueue:  recomputeQueue,
		notificationSvc: notificationSvc,
		loc:             loc,
		now:             time.Now,
	}
}

// MaterializeYesterday creates records for every active employee's previous
// day that has none, so absences and non-working days become queryable. The
// service-level existence check keeps re-runs idempotent.
func (j *AttendanceJobs) MaterializeYesterday(ctx context.Context) error {
	// Only run at midnight (00:00-00:59 company time)
	if j.now().In(j.loc).Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Starting attendance materialization job")

	yesterday := j.now().In(j.loc).AddDate(0, 0, -1)

	employees, err := j.directory.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active employees: %w", err)
	}

	materialized := 0
	for _, emp := range employees {
		rec, err := j.attendanceSvc.MaterializeDay(ctx, emp.ID, yesterday)
		if err != nil {
			slog.Error("Cron: Failed to materialize attendance day",
				"employee_id", emp.ID,
				"date", yesterday.Format("2006-01-02"),
				"error", err)
			continue
		}
		if rec == nil {
			continue
		}

		materialized++

		if rec.Status == attendance.StatusAbsent && j.notificationSvc != nil {
			_ = j.notificationSvc.QueueNotification(ctx, notification.CreateNotificationRequest{
				RecipientID: emp.ID,
				Type:        notification.TypeMarkedAbsent,
				Title:       "Marked absent",
				Message:     fmt.Sprintf("You were marked absent on %s", rec.Date.Format("2006-01-02")),
				Data: map[string]interface{}{
					"record_id": rec.ID,
					"date":      rec.Date.Format("2006-01-02"),
				},
			})
		}
	}

	slog.Info("Cron: Attendance materialization finished",
		"date", yesterday.Format("2006-01-02"),
		"employees", len(employees),
		"materialized", materialized)
	return nil
}

// RetryFailedRecomputations drains the recompute queue. Entries are removed
// only after a successful re-apply; failures stay queued with a bumped
// attempt counter for the next run.
func (j *AttendanceJobs) RetryFailedRecomputations(ctx context.Context) error {
	entries, err := j.recomputeQueue.List(ctx, recomputeBatchSize)
	if err != nil {
		return fmt.Errorf("failed to list recompute queue: %w", err)
	}
	if len(entries) == 0 {
		return nil
	}

	slog.Info("Cron: Retrying failed recomputations", "count", len(entries))

	retried := 0
	for _, entry := range entries {
		if err := j.engine.Reapply(ctx, entry.RequestID); err != nil {
			slog.Error("Cron: Recomputation retry failed",
				"request_id", entry.RequestID,
				"attempts", entry.Attempts,
				"error", err)
			_ = j.recomputeQueue.Enqueue(ctx, entry.RequestID, err.Error())
			continue
		}

		if err := j.recomputeQueue.Remove(ctx, entry.RequestID); err != nil {
			slog.Error("Cron: Failed to remove recompute entry", "request_id", entry.RequestID, "error", err)
			continue
		}
		retried++
	}

	slog.Info("Cron: Recomputation retries finished", "succeeded", retried, "total", len(entries))
	return nil
}

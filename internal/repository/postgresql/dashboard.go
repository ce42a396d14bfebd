package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/mrkunal0430/hrms/internal/domain/dashboard"
	"github.com/mrkunal0430/hrms/internal/pkg/database"
)

type dashboardRepository struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.Repository {
	return &dashboardRepository{db: db}
}

// GetTodayStats implements dashboard.Repository. Leave, holiday and weekend
// are folded into on_leave for the headline chart; the per-record view keeps
// the distinction.
func (r *dashboardRepository) GetTodayStats(ctx context.Context, date time.Time) (dashboard.TodayStatsResponse, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'present')  AS present,
			COUNT(*) FILTER (WHERE status = 'late')     AS late,
			COUNT(*) FILTER (WHERE status = 'half_day') AS half_day,
			COUNT(*) FILTER (WHERE status = 'wfh')      AS wfh,
			COUNT(*) FILTER (WHERE status IN ('leave', 'holiday', 'weekend')) AS on_leave,
			COUNT(*) FILTER (WHERE status = 'absent')   AS absent,
			COUNT(*)                                    AS total
		FROM attendance_records
		WHERE date = $1
	`

	stats := dashboard.TodayStatsResponse{Date: date.Format("2006-01-02")}
	err := q.QueryRow(ctx, query, date).Scan(
		&stats.Present, &stats.Late, &stats.HalfDay, &stats.WFH,
		&stats.OnLeave, &stats.Absent, &stats.Total,
	)
	if err != nil {
		return dashboard.TodayStatsResponse{}, fmt.Errorf("failed to get today stats: %w", err)
	}

	return stats, nil
}

package dashboard

import (
	"context"
	"time"

	"github.com/mrkunal0430/hrms/internal/domain/dashboard"
	"github.com/mrkunal0430/hrms/internal/domain/employee"
)

// Service aggregates today's attendance counts for the admin dashboard.
type Service struct {
	repo      dashboard.Repository
	directory employee.Directory
	loc       *time.Location
	now       func() time.Time
}

func NewService(repo dashboard.Repository, directory employee.Directory, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repo, directory: directory, loc: loc, now: time.Now}
}

// TodayStats returns per-status headcounts for the current calendar date in
// the company timezone. Records for the current day only exist once an
// employee checks in or an approval touches the day, so absence is derived
// from the active headcount: every active employee with no record yet counts
// as absent.
func (s *Service) TodayStats(ctx context.Context) (dashboard.TodayStatsResponse, error) {
	local := s.now().In(s.loc)
	date := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)

	stats, err := s.repo.GetTodayStats(ctx, date)
	if err != nil {
		return dashboard.TodayStatsResponse{}, err
	}

	active, err := s.directory.CountActive(ctx)
	if err != nil {
		return dashboard.TodayStatsResponse{}, err
	}
	if active > stats.Total {
		stats.Absent += active - stats.Total
		stats.Total = active
	}

	return stats, nil
}

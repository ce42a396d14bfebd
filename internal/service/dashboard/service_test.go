package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrkunal0430/hrms/internal/domain/dashboard"
	"github.com/mrkunal0430/hrms/internal/domain/employee"
)

type fakeStatsRepo struct {
	stats    dashboard.TodayStatsResponse
	gotDate  time.Time
	returned bool
}

func (f *fakeStatsRepo) GetTodayStats(_ context.Context, date time.Time) (dashboard.TodayStatsResponse, error) {
	f.gotDate = date
	f.returned = true
	f.stats.Date = date.Format("2006-01-02")
	return f.stats, nil
}

type fakeHeadcount struct {
	active int64
}

func (f *fakeHeadcount) GetByID(context.Context, string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeHeadcount) ListActive(context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeHeadcount) CountActive(context.Context) (int64, error) {
	return f.active, nil
}

func newTestService(recorded dashboard.TodayStatsResponse, active int64) (*Service, *fakeStatsRepo) {
	repo := &fakeStatsRepo{stats: recorded}
	svc := NewService(repo, &fakeHeadcount{active: active}, time.UTC)
	svc.now = func() time.Time {
		return time.Date(2025, time.March, 3, 10, 30, 0, 0, time.UTC)
	}
	return svc, repo
}

func TestService_TodayStats(t *testing.T) {
	ctx := context.Background()

	t.Run("employees with no record yet count as absent", func(t *testing.T) {
		svc, repo := newTestService(dashboard.TodayStatsResponse{
			Present: 3, Late: 1, OnLeave: 1, Total: 5,
		}, 8)

		stats, err := svc.TodayStats(ctx)
		require.NoError(t, err)

		assert.Equal(t, int64(3), stats.Absent)
		assert.Equal(t, int64(8), stats.Total)
		assert.True(t, repo.returned)
	})

	t.Run("derived absence adds to recorded absences", func(t *testing.T) {
		svc, _ := newTestService(dashboard.TodayStatsResponse{
			Present: 4, Absent: 1, Total: 5,
		}, 8)

		stats, err := svc.TodayStats(ctx)
		require.NoError(t, err)

		assert.Equal(t, int64(4), stats.Absent)
		assert.Equal(t, int64(8), stats.Total)
	})

	t.Run("never subtracts when records outnumber active employees", func(t *testing.T) {
		// A recently deactivated employee can leave a record behind.
		svc, _ := newTestService(dashboard.TodayStatsResponse{
			Present: 5, Total: 5,
		}, 4)

		stats, err := svc.TodayStats(ctx)
		require.NoError(t, err)

		assert.Equal(t, int64(0), stats.Absent)
		assert.Equal(t, int64(5), stats.Total)
	})

	t.Run("queries midnight of the current company-timezone date", func(t *testing.T) {
		svc, repo := newTestService(dashboard.TodayStatsResponse{}, 0)

		_, err := svc.TodayStats(ctx)
		require.NoError(t, err)

		assert.Equal(t, time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC), repo.gotDate)
	})
}

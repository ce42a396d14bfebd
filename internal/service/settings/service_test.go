package settings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrkunal0430/hrms/internal/domain/settings"
)

type fakeRepo struct {
	global    settings.Global
	overrides map[string]*settings.DepartmentOverride
}

func (f *fakeRepo) GetGlobal(context.Context) (settings.Global, error) {
	return f.global, nil
}

func (f *fakeRepo) GetDepartmentOverride(_ context.Context, departmentID string) (*settings.DepartmentOverride, error) {
	return f.overrides[departmentID], nil
}

func completeGlobal() settings.Global {
	grace := 15
	threshold := 4.0
	cutoff := settings.ClockTime{Hour: 13, Minute: 0}
	return settings.Global{
		WorkingHours: &settings.WorkingHours{
			Start: settings.ClockTime{Hour: 9, Minute: 0},
			End:   settings.ClockTime{Hour: 18, Minute: 0},
		},
		GracePeriodMinutes:    &grace,
		HalfDayThresholdHours: &threshold,
		HalfDayCutoff:         &cutoff,
		WeekendDays:           []time.Weekday{time.Saturday, time.Sunday},
		Geofence:              &settings.GeofencePolicy{Enabled: true, EnforceCheckIn: true},
	}
}

func TestService_Effective(t *testing.T) {
	ctx := context.Background()

	t.Run("global only", func(t *testing.T) {
		svc := NewService(&fakeRepo{global: completeGlobal()})

		eff, err := svc.Effective(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, 15, eff.GracePeriodMinutes)
	})

	t.Run("department override wins per field", func(t *testing.T) {
		grace := 30
		dept := "dept-eng"
		svc := NewService(&fakeRepo{
			global: completeGlobal(),
			overrides: map[string]*settings.DepartmentOverride{
				dept: {DepartmentID: dept, GracePeriodMinutes: &grace},
			},
		})

		eff, err := svc.Effective(ctx, &dept)
		require.NoError(t, err)
		assert.Equal(t, 30, eff.GracePeriodMinutes)
		// Untouched fields fall through to global.
		assert.Equal(t, 4.0, eff.HalfDayThresholdHours)
	})

	t.Run("department without override uses global", func(t *testing.T) {
		dept := "dept-sales"
		svc := NewService(&fakeRepo{global: completeGlobal()})

		eff, err := svc.Effective(ctx, &dept)
		require.NoError(t, err)
		assert.Equal(t, 15, eff.GracePeriodMinutes)
	})

	t.Run("incomplete configuration fails", func(t *testing.T) {
		global := completeGlobal()
		global.Geofence = nil
		svc := NewService(&fakeRepo{global: global})

		_, err := svc.Effective(ctx, nil)
		assert.ErrorIs(t, err, settings.ErrNoEffectiveSettings)
	})
}

package settings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int             { return &v }
func floatPtr(v float64) *float64   { return &v }
func clockPtr(h, m int) *ClockTime  { return &ClockTime{Hour: h, Minute: m} }
func hoursPtr(wh WorkingHours) *WorkingHours { return &wh }

func completeGlobal() Global {
	return Global{
		WorkingHours:          hoursPtr(WorkingHours{Start: ClockTime{9, 0}, End: ClockTime{18, 0}}),
		GracePeriodMinutes:    intPtr(15),
		HalfDayThresholdHours: floatPtr(4),
		HalfDayCutoff:         clockPtr(13, 0),
		WeekendDays:           []time.Weekday{time.Saturday, time.Sunday},
		Geofence: &GeofencePolicy{
			Enabled:               true,
			EnforceCheckIn:        true,
			EnforceCheckOut:       false,
			AllowWFHBypass:        true,
			AccuracyCeilingMeters: 100,
		},
	}
}

func TestResolveEffective_GlobalOnly(t *testing.T) {
	eff, err := ResolveEffective(completeGlobal(), nil)
	require.NoError(t, err)

	assert.Equal(t, ClockTime{9, 0}, eff.WorkingHours.Start)
	assert.Equal(t, 15, eff.GracePeriodMinutes)
	assert.Equal(t, 4.0, eff.HalfDayThresholdHours)
	assert.True(t, eff.IsWeekend(time.Saturday))
	assert.False(t, eff.IsWeekend(time.Monday))
	assert.True(t, eff.Geofence.Enabled)
}

func TestResolveEffective_OverridesReplaceWholeField(t *testing.T) {
	dept := &DepartmentOverride{
		DepartmentID:       "dept-ops",
		WorkingHours:       hoursPtr(WorkingHours{Start: ClockTime{7, 30}, End: ClockTime{16, 30}}),
		GracePeriodMinutes: intPtr(5),
		WeekendDays:        []time.Weekday{time.Friday},
	}

	eff, err := ResolveEffective(completeGlobal(), dept)
	require.NoError(t, err)

	// Overridden fields come entirely from the department.
	assert.Equal(t, ClockTime{7, 30}, eff.WorkingHours.Start)
	assert.Equal(t, ClockTime{16, 30}, eff.WorkingHours.End)
	assert.Equal(t, 5, eff.GracePeriodMinutes)
	assert.True(t, eff.IsWeekend(time.Friday))
	assert.False(t, eff.IsWeekend(time.Saturday))

	// Absent fields fall through to global.
	assert.Equal(t, 4.0, eff.HalfDayThresholdHours)
	assert.Equal(t, ClockTime{13, 0}, eff.HalfDayCutoff)
	assert.True(t, eff.Geofence.AllowWFHBypass)
}

func TestResolveEffective_GeofenceOverrideIsAllOrNothing(t *testing.T) {
	// The override disables geofencing; none of the global geofence flags
	// survive the merge.
	dept := &DepartmentOverride{
		DepartmentID: "dept-field",
		Geofence:     &GeofencePolicy{Enabled: false},
	}

	eff, err := ResolveEffective(completeGlobal(), dept)
	require.NoError(t, err)

	assert.False(t, eff.Geofence.Enabled)
	assert.False(t, eff.Geofence.EnforceCheckIn)
	assert.False(t, eff.Geofence.AllowWFHBypass)
	assert.Zero(t, eff.Geofence.AccuracyCeilingMeters)
}

func TestResolveEffective_IncompleteGlobalFails(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Global)
	}{
		{"missing working hours", func(g *Global) { g.WorkingHours = nil }},
		{"missing grace period", func(g *Global) { g.GracePeriodMinutes = nil }},
		{"missing half-day threshold", func(g *Global) { g.HalfDayThresholdHours = nil }},
		{"missing half-day cutoff", func(g *Global) { g.HalfDayCutoff = nil }},
		{"missing weekend days", func(g *Global) { g.WeekendDays = nil }},
		{"missing geofence policy", func(g *Global) { g.Geofence = nil }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := completeGlobal()
			tc.mutate(&g)
			_, err := ResolveEffective(g, nil)
			assert.ErrorIs(t, err, ErrNoEffectiveSettings)
		})
	}
}

func TestResolveEffective_OverrideFillsMissingGlobal(t *testing.T) {
	g := completeGlobal()
	g.HalfDayCutoff = nil

	dept := &DepartmentOverride{DepartmentID: "d1", HalfDayCutoff: clockPtr(12, 30)}
	eff, err := ResolveEffective(g, dept)
	require.NoError(t, err)
	assert.Equal(t, ClockTime{12, 30}, eff.HalfDayCutoff)
}

func TestParseClockTime(t *testing.T) {
	ct, err := ParseClockTime("09:05")
	require.NoError(t, err)
	assert.Equal(t, ClockTime{9, 5}, ct)
	assert.Equal(t, "09:05", ct.String())

	_, err = ParseClockTime("25:00")
	assert.Error(t, err)
	_, err = ParseClockTime("nine")
	assert.Error(t, err)
}

func TestClockTimeAt(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	date := time.Date(2024, 1, 10, 0, 0, 0, 0, loc)
	at := ClockTime{9, 15}.At(date)

	assert.Equal(t, 9, at.Hour())
	assert.Equal(t, 15, at.Minute())
	assert.Equal(t, loc, at.Location())
}

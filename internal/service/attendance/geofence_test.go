package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrkunal0430/hrms/internal/domain/attendance"
	"github.com/mrkunal0430/hrms/internal/domain/office"
	"github.com/mrkunal0430/hrms/internal/domain/settings"
)

var testOffices = []office.Location{
	{ID: "office-hq", Name: "HQ", Latitude: 12.9716, Longitude: 77.5946, RadiusMeters: 200, IsActive: true},
	{ID: "office-closed", Name: "Closed", Latitude: 12.9716, Longitude: 77.5946, RadiusMeters: 5000, IsActive: false},
}

func testPolicy() settings.GeofencePolicy {
	return settings.GeofencePolicy{
		Enabled:               true,
		EnforceCheckIn:        true,
		EnforceCheckOut:       false,
		AllowWFHBypass:        true,
		AccuracyCeilingMeters: 100,
	}
}

func TestValidateLocation_WithinRadius(t *testing.T) {
	// ~100m north of HQ
	sample := &attendance.Location{Latitude: 12.9725, Longitude: 77.5946}

	ann := ValidateLocation(sample, testOffices, testPolicy(), true, false)

	assert.True(t, ann.Validated)
	require.NotNil(t, ann.Distance)
	assert.Less(t, *ann.Distance, 200.0)
	require.NotNil(t, ann.OfficeID)
	assert.Equal(t, "office-hq", *ann.OfficeID)
	assert.False(t, ann.InvalidEvidence)
}

func TestValidateLocation_OutsideRadius(t *testing.T) {
	// ~500m north of HQ
	sample := &attendance.Location{Latitude: 12.9761, Longitude: 77.5946}

	ann := ValidateLocation(sample, testOffices, testPolicy(), true, false)

	assert.False(t, ann.Validated)
	assert.False(t, ann.InvalidEvidence)
	require.NotNil(t, ann.Distance)
	assert.Greater(t, *ann.Distance, 200.0)
	require.NotNil(t, ann.OfficeID)
	assert.Equal(t, "office-hq", *ann.OfficeID)
}

func TestValidateLocation_InactiveOfficeIgnored(t *testing.T) {
	// Inside the inactive office's huge radius but outside HQ's.
	sample := &attendance.Location{Latitude: 12.9761, Longitude: 77.5946}

	ann := ValidateLocation(sample, testOffices, testPolicy(), true, false)

	assert.False(t, ann.Validated)
	assert.Equal(t, "office-hq", *ann.OfficeID)
}

func TestValidateLocation_WFHBypass(t *testing.T) {
	// Far from any office, but WFH approved and bypass allowed.
	sample := &attendance.Location{Latitude: 28.6139, Longitude: 77.2090}

	ann := ValidateLocation(sample, testOffices, testPolicy(), true, true)

	assert.True(t, ann.Validated)
	assert.True(t, ann.WFHBypass)
	assert.Nil(t, ann.Distance)
}

func TestValidateLocation_WFHBypassDisallowed(t *testing.T) {
	policy := testPolicy()
	policy.AllowWFHBypass = false
	sample := &attendance.Location{Latitude: 28.6139, Longitude: 77.2090}

	ann := ValidateLocation(sample, testOffices, policy, true, true)

	assert.False(t, ann.Validated)
	assert.False(t, ann.WFHBypass)
}

func TestValidateLocation_EnforcementDisabled(t *testing.T) {
	t.Run("policy disabled", func(t *testing.T) {
		policy := testPolicy()
		policy.Enabled = false

		ann := ValidateLocation(nil, testOffices, policy, true, false)
		assert.True(t, ann.Validated)
	})

	t.Run("direction not enforced", func(t *testing.T) {
		ann := ValidateLocation(nil, testOffices, testPolicy(), false, false)
		assert.True(t, ann.Validated)
	})
}

func TestValidateLocation_NoActiveOfficesFailsOpen(t *testing.T) {
	ann := ValidateLocation(nil, nil, testPolicy(), true, false)
	assert.True(t, ann.Validated)
}

func TestValidateLocation_InvalidEvidence(t *testing.T) {
	t.Run("missing sample", func(t *testing.T) {
		ann := ValidateLocation(nil, testOffices, testPolicy(), true, false)

		assert.False(t, ann.Validated)
		assert.True(t, ann.InvalidEvidence)
		assert.Nil(t, ann.Distance)
	})

	t.Run("accuracy above ceiling", func(t *testing.T) {
		acc := 250.0
		sample := &attendance.Location{Latitude: 12.9716, Longitude: 77.5946, Accuracy: &acc}

		ann := ValidateLocation(sample, testOffices, testPolicy(), true, false)

		assert.False(t, ann.Validated)
		assert.True(t, ann.InvalidEvidence)
	})

	t.Run("accuracy at ceiling is trusted", func(t *testing.T) {
		acc := 100.0
		sample := &attendance.Location{Latitude: 12.9716, Longitude: 77.5946, Accuracy: &acc}

		ann := ValidateLocation(sample, testOffices, testPolicy(), true, false)

		assert.True(t, ann.Validated)
		assert.False(t, ann.InvalidEvidence)
	})
}

package validation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/irishmetals/skipdispatch/internal/errors"
)

func TestIsUUID(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{name: "canonical", value: "7b0f0c1e-3d5a-4c41-9c55-0a7f5c2a9e11", want: true},
		{name: "uppercase", value: "7B0F0C1E-3D5A-4C41-9C55-0A7F5C2A9E11", want: true},
		{name: "no hyphens", value: "7b0f0c1e3d5a4c419c550a7f5c2a9e11", want: false},
		{name: "urn form", value: "urn:uuid:7b0f0c1e-3d5a-4c41-9c55-0a7f5c2a9e11", want: false},
		{name: "empty", value: "", want: false},
		{name: "garbage", value: "not-a-uuid-at-all-not-a-uuid-at-all1", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUUID(tt.value))
		})
	}
}

func TestIsDate(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{name: "valid", value: "2025-03-14", want: true},
		{name: "leap day", value: "2024-02-29", want: true},
		{name: "non leap day", value: "2025-02-29", want: false},
		{name: "rollover", value: "2025-02-30", want: false},
		{name: "wrong layout", value: "14/03/2025", want: false},
		{name: "timestamp", value: "2025-03-14T10:00:00Z", want: false},
		{name: "empty", value: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDate(tt.value))
		})
	}
}

func TestIsNonNegative(t *testing.T) {
	assert.True(t, IsNonNegative(0))
	assert.True(t, IsNonNegative(1840.5))
	assert.False(t, IsNonNegative(-0.1))
	assert.False(t, IsNonNegative(math.NaN()))
	assert.False(t, IsNonNegative(math.Inf(1)))
}

func TestCollectorAccumulatesAllViolations(t *testing.T) {
	notes := "n/a"
	badSize := "9"
	c := New().
		RequireUUID("customer_id", "abc").
		RequireUUID("driver_id", "7b0f0c1e-3d5a-4c41-9c55-0a7f5c2a9e11").
		RequireNonEmpty("truck_reg", "   ").
		RequireDate("job_date", "2025-13-01").
		OptionalOneOf("skip_size", &badSize, []string{"8", "12"}, "must be a valid skip size").
		OptionalOneOf("office_action", nil, []string{"drop"}, "must be drop, pick, or pick_drop").
		OptionalUUID("notes_ref", &notes)

	require.True(t, c.HasErrors())
	assert.Equal(t, []string{
		"customer_id must be a valid UUID",
		"truck_reg is required",
		"job_date must be a valid date (YYYY-MM-DD)",
		"skip_size must be a valid skip size",
		"notes_ref must be a valid UUID if provided",
	}, c.Details())

	resp := c.ToResponse()
	assert.Equal(t, "Validation failed", resp.Error)
	assert.Len(t, resp.Details, 5)

	err := c.Err()
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Len(t, apperrors.GetDetails(err), 5)
}

func TestCollectorNoErrors(t *testing.T) {
	weight := 12.5
	c := New().
		RequireUUID("completion_id", "7b0f0c1e-3d5a-4c41-9c55-0a7f5c2a9e11").
		NonNegative("net_weight_kg", &weight).
		NonNegative("net_weight_kg", nil).
		Check(true, "never recorded")

	assert.False(t, c.HasErrors())
	assert.Empty(t, c.Details())
	assert.NoError(t, c.Err())
}

func TestCollectorNonNegative(t *testing.T) {
	weight := -3.0
	c := New().NonNegative("net_weight_kg", &weight)
	assert.Equal(t, []string{"net_weight_kg must be a non-negative number"}, c.Details())
}

func TestCollectorDetailsIsCopy(t *testing.T) {
	c := New().RequireNonEmpty("truck_reg", "")
	d := c.Details()
	d[0] = "changed"
	assert.Equal(t, "truck_reg is required", c.Details()[0])
}

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/irishmetals/skipdispatch/internal/errors"
)

const (
	testCustomerID = "0c6f8f4e-1f0e-4b8e-9b7a-3f1d2c4b5a60"
	testDriverID   = "5e2d9a1b-7c3f-4e6a-8d2b-1a9c8b7d6e50"
)

func sizePtr(s SkipSize) *SkipSize { return &s }

func floatPtr(f float64) *float64 { return &f }

func TestCreateJobRequestValidate(t *testing.T) {
	req := CreateJobRequest{
		CustomerID: testCustomerID,
		DriverID:   testDriverID,
		TruckReg:   " 06-D-1234 ",
		JobDate:    "2025-06-02",
	}
	req.Normalize()
	assert.Equal(t, "06-D-1234", req.TruckReg)
	assert.NoError(t, req.Validate())
}

func TestCreateJobRequestValidateReportsEverything(t *testing.T) {
	action := SkipAction("swap")
	size := SkipSize("10")
	req := CreateJobRequest{
		CustomerID:   "acme",
		DriverID:     "",
		TruckReg:     "",
		JobDate:      "02/06/2025",
		OfficeAction: &action,
		SkipSize:     &size,
	}
	err := req.Validate()
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, []string{
		"customer_id must be a valid UUID",
		"driver_id must be a valid UUID",
		"truck_reg is required",
		"job_date must be a valid date (YYYY-MM-DD)",
		"office_action must be drop, pick, or pick_drop",
		"skip_size must be a valid skip size",
	}, apperrors.GetDetails(err))
}

func TestCreateJobRequestNormalizeDropsEmptyEnums(t *testing.T) {
	empty := SkipSize("")
	notes := "   "
	req := CreateJobRequest{SkipSize: &empty, Notes: &notes}
	req.Normalize()
	assert.Nil(t, req.SkipSize)
	assert.Nil(t, req.Notes)
}

func TestUpdateJobRequestRejectsNullRequiredColumns(t *testing.T) {
	req := UpdateJobRequest{
		CustomerID: Null[string](),
		JobDate:    Null[string](),
		Notes:      Null[string](),
	}
	err := req.Validate()
	require.Error(t, err)
	assert.Equal(t, []string{
		"customer_id is required",
		"job_date must be a valid date (YYYY-MM-DD)",
	}, apperrors.GetDetails(err))
}

func TestUpdateJobRequestNormalizeClearsBlankEnum(t *testing.T) {
	req := UpdateJobRequest{TruckType: Some(TruckType(""))}
	req.Normalize()
	assert.True(t, req.TruckType.IsNull())
	assert.NoError(t, req.Validate())
}

func TestCompleteJobRequestSizeRules(t *testing.T) {
	tests := []struct {
		name    string
		req     CompleteJobRequest
		details []string
	}{
		{
			name: "pick requires pick_size",
			req:  CompleteJobRequest{Token: "t", Action: SkipActionPick},
			details: []string{
				"pick_size is required when action is pick",
			},
		},
		{
			name: "drop requires drop_size",
			req:  CompleteJobRequest{Token: "t", Action: SkipActionDrop, PickSize: sizePtr(SkipSize12)},
			details: []string{
				"drop_size is required when action is drop",
			},
		},
		{
			name: "pick_drop with only pick_size",
			req:  CompleteJobRequest{Token: "t", Action: SkipActionPickDrop, PickSize: sizePtr(SkipSize12)},
			details: []string{
				"drop_size is required when action is pick_drop",
			},
		},
		{
			name: "unknown action",
			req:  CompleteJobRequest{Token: "t", Action: "swap"},
			details: []string{
				"action must be drop, pick, or pick_drop",
			},
		},
		{
			name: "half a position",
			req: CompleteJobRequest{
				Token: "t", Action: SkipActionDrop, DropSize: sizePtr(SkipSize20),
				Lat: floatPtr(53.5),
			},
			details: []string{
				"lat and lng must be provided together",
			},
		},
		{
			name: "out of range position and negative accuracy",
			req: CompleteJobRequest{
				Token: "t", Action: SkipActionDrop, DropSize: sizePtr(SkipSize20),
				Lat: floatPtr(91), Lng: floatPtr(-6.4), AccuracyM: floatPtr(-1),
			},
			details: []string{
				"lat must be between -90 and 90",
				"accuracy_m must be a non-negative number",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			require.Error(t, err)
			assert.Equal(t, tt.details, apperrors.GetDetails(err))
		})
	}
}

func TestCompleteJobRequestValid(t *testing.T) {
	req := CompleteJobRequest{
		Token:    "7b0f0c1e-3d5a-4c41-9c55-0a7f5c2a9e11",
		Action:   SkipActionPickDrop,
		PickSize: sizePtr(SkipSize12),
		DropSize: sizePtr(SkipSize20),
		Lat:      floatPtr(53.5),
		Lng:      floatPtr(-6.4),
	}
	assert.NoError(t, req.Validate())
	assert.True(t, req.HasPosition())
}

func TestUpdateCompletionWeightRequestValidate(t *testing.T) {
	req := UpdateCompletionWeightRequest{NetWeightKg: Some(-5.0)}
	err := req.Validate("nope")
	require.Error(t, err)
	assert.Equal(t, []string{
		"completion_id must be a valid UUID",
		"net_weight_kg must be a non-negative number",
	}, apperrors.GetDetails(err))

	req = UpdateCompletionWeightRequest{NetWeightKg: Null[float64](), MaterialType: Some("  ")}
	req.Normalize()
	assert.True(t, req.MaterialType.IsNull())
	assert.NoError(t, req.Validate(testCustomerID))
}

func TestParseJobStatus(t *testing.T) {
	s, err := ParseJobStatus("in_progress")
	require.NoError(t, err)
	assert.Equal(t, JobStatusInProgress, s)

	_, err = ParseJobStatus("archived")
	assert.True(t, apperrors.IsValidation(err))
}

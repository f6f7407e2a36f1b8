package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalDecodeDistinguishesAbsentFromNull(t *testing.T) {
	var req UpdateJobRequest
	require.NoError(t, json.Unmarshal([]byte(`{"notes":null,"truck_reg":"06-D-1234"}`), &req))

	assert.False(t, req.CustomerID.Set, "absent field must stay unset")
	assert.True(t, req.Notes.Set)
	assert.True(t, req.Notes.IsNull())
	require.NotNil(t, req.TruckReg.Value)
	assert.Equal(t, "06-D-1234", *req.TruckReg.Value)
	assert.True(t, req.HasChanges())
}

func TestOptionalDecodeTypedEnum(t *testing.T) {
	var req UpdateJobRequest
	require.NoError(t, json.Unmarshal([]byte(`{"skip_size":"14","office_action":"pick_drop"}`), &req))

	require.NotNil(t, req.SkipSize.Value)
	assert.Equal(t, SkipSize14, *req.SkipSize.Value)
	require.NotNil(t, req.OfficeAction.Value)
	assert.Equal(t, SkipActionPickDrop, *req.OfficeAction.Value)
}

func TestOptionalDecodeRejectsWrongType(t *testing.T) {
	var req UpdateCompletionWeightRequest
	err := json.Unmarshal([]byte(`{"net_weight_kg":"heavy"}`), &req)
	assert.Error(t, err)
}

func TestOptionalEncode(t *testing.T) {
	req := UpdateCompletionWeightRequest{NetWeightKg: Some(1250.5)}
	b, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"net_weight_kg":1250.5}`, string(b))

	req = UpdateCompletionWeightRequest{NetWeightKg: Null[float64]()}
	b, err = json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"net_weight_kg":null}`, string(b))
}

func TestUpdateJobRequestNoChanges(t *testing.T) {
	var req UpdateJobRequest
	require.NoError(t, json.Unmarshal([]byte(`{}`), &req))
	assert.False(t, req.HasChanges())
	assert.NoError(t, req.Validate())
}

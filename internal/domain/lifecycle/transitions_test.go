package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irishmetals/skipdispatch/internal/domain/model"
	apperrors "github.com/irishmetals/skipdispatch/internal/errors"
)

func TestTransitionTable(t *testing.T) {
	all := []model.JobStatus{
		model.JobStatusCreated,
		model.JobStatusSent,
		model.JobStatusInProgress,
		model.JobStatusCompleted,
		model.JobStatusCancelled,
	}
	allowed := map[Operation][]model.JobStatus{
		OpSend:     {model.JobStatusCreated, model.JobStatusSent},
		OpStart:    {model.JobStatusCreated, model.JobStatusSent},
		OpComplete: {model.JobStatusCreated, model.JobStatusSent, model.JobStatusInProgress},
		OpUpdate:   {model.JobStatusCreated, model.JobStatusSent, model.JobStatusInProgress},
		OpDelete:   {model.JobStatusCreated, model.JobStatusSent, model.JobStatusInProgress},
	}

	for op, from := range allowed {
		for _, status := range all {
			want := false
			for _, s := range from {
				if s == status {
					want = true
				}
			}
			t.Run(string(op)+"/"+string(status), func(t *testing.T) {
				assert.Equal(t, want, Allowed(op, status))
				err := Check(op, status)
				if want {
					assert.NoError(t, err)
					return
				}
				require.Error(t, err)
				assert.True(t, apperrors.IsConflict(err))
			})
		}
	}
}

func TestCreateHasNoSourceStatus(t *testing.T) {
	for _, s := range model.JobStatusValues() {
		assert.False(t, Allowed(OpCreate, model.JobStatus(s)))
	}
	r, ok := RuleFor(OpCreate)
	require.True(t, ok)
	assert.Equal(t, model.JobStatusCreated, r.To)
	assert.Equal(t, model.ActorOffice, r.Actor)
}

func TestRuleActorsAndTargets(t *testing.T) {
	tests := []struct {
		op      Operation
		to      model.JobStatus
		actor   model.Actor
		records bool
	}{
		{op: OpSend, to: model.JobStatusSent, actor: model.ActorOffice, records: true},
		{op: OpStart, to: model.JobStatusInProgress, actor: model.ActorDriver, records: true},
		{op: OpComplete, to: model.JobStatusCompleted, actor: model.ActorDriver, records: true},
		{op: OpDelete, to: model.JobStatusCancelled, actor: model.ActorOffice, records: true},
		{op: OpUpdate, to: "", actor: model.ActorOffice, records: false},
	}
	for _, tt := range tests {
		t.Run(string(tt.op), func(t *testing.T) {
			r, ok := RuleFor(tt.op)
			require.True(t, ok)
			assert.Equal(t, tt.to, r.To)
			assert.Equal(t, tt.actor, r.Actor)
			assert.Equal(t, tt.records, r.Records)
		})
	}
}

func TestConflictMessages(t *testing.T) {
	assert.EqualError(t, Check(OpComplete, model.JobStatusCompleted), "Job already completed")
	assert.EqualError(t, Check(OpSend, model.JobStatusCompleted), "Job already completed")
	assert.EqualError(t, Check(OpUpdate, model.JobStatusCompleted), "Cannot edit completed jobs")
	assert.EqualError(t, Check(OpDelete, model.JobStatusCompleted), "Cannot delete completed jobs")
	assert.EqualError(t, Check(OpStart, model.JobStatusInProgress), "Job cannot be started from status in_progress")
	assert.EqualError(t, Check(OpSend, model.JobStatusInProgress), "Job cannot be sent from status in_progress")
}

func TestAllowedFromIsCopy(t *testing.T) {
	from := AllowedFrom(OpStart)
	from[0] = model.JobStatusCompleted
	assert.True(t, Allowed(OpStart, model.JobStatusCreated))
}

// Package lifecycle holds the skip job state machine and the pure policies the
// lifecycle service applies around it: completion geometry, docket numbers and
// skip tracking.
package lifecycle

import (
	"slices"

	"github.com/irishmetals/skipdispatch/internal/domain/model"
	apperrors "github.com/irishmetals/skipdispatch/internal/errors"
)

// Operation is one lifecycle action a caller can invoke.
type Operation string

const (
	OpCreate   Operation = "create"
	OpSend     Operation = "send"
	OpStart    Operation = "start"
	OpComplete Operation = "complete"
	OpUpdate   Operation = "update"
	OpDelete   Operation = "delete"
)

// Rule is one row of the transition table. An empty To leaves status unchanged.
type Rule struct {
	Op    Operation
	From  []model.JobStatus
	To    model.JobStatus
	Actor model.Actor
	// Records reports whether the transition appends a status history entry.
	Records bool
}

var nonCompleted = []model.JobStatus{
	model.JobStatusCreated,
	model.JobStatusSent,
	model.JobStatusInProgress,
}

var rules = map[Operation]Rule{
	OpCreate: {Op: OpCreate, To: model.JobStatusCreated, Actor: model.ActorOffice, Records: true},
	OpSend: {
		Op:      OpSend,
		From:    []model.JobStatus{model.JobStatusCreated, model.JobStatusSent},
		To:      model.JobStatusSent,
		Actor:   model.ActorOffice,
		Records: true,
	},
	OpStart: {
		Op:      OpStart,
		From:    []model.JobStatus{model.JobStatusCreated, model.JobStatusSent},
		To:      model.JobStatusInProgress,
		Actor:   model.ActorDriver,
		Records: true,
	},
	OpComplete: {Op: OpComplete, From: nonCompleted, To: model.JobStatusCompleted, Actor: model.ActorDriver, Records: true},
	OpUpdate:   {Op: OpUpdate, From: nonCompleted, Actor: model.ActorOffice},
	OpDelete:   {Op: OpDelete, From: nonCompleted, To: model.JobStatusCancelled, Actor: model.ActorOffice, Records: true},
}

// RuleFor returns the transition rule for op.
func RuleFor(op Operation) (Rule, bool) {
	r, ok := rules[op]
	return r, ok
}

// Allowed reports whether op may run against a job in status from.
func Allowed(op Operation, from model.JobStatus) bool {
	r, ok := rules[op]
	if !ok {
		return false
	}
	return slices.Contains(r.From, from)
}

// AllowedFrom returns a copy of the statuses op may start from.
func AllowedFrom(op Operation) []model.JobStatus {
	return slices.Clone(rules[op].From)
}

// Check returns a Conflict error when op may not run from status from.
func Check(op Operation, from model.JobStatus) error {
	if Allowed(op, from) {
		return nil
	}
	return conflictFor(op, from)
}

func conflictFor(op Operation, from model.JobStatus) error {
	if from == model.JobStatusCompleted {
		switch op {
		case OpUpdate:
			return apperrors.Conflict("Cannot edit completed jobs")
		case OpDelete:
			return apperrors.Conflict("Cannot delete completed jobs")
		default:
			return apperrors.Conflict("Job already completed")
		}
	}
	switch op {
	case OpStart:
		return apperrors.Conflictf("Job cannot be started from status %s", from)
	case OpSend:
		return apperrors.Conflictf("Job cannot be sent from status %s", from)
	default:
		return apperrors.Conflictf("Job cannot be %sd from status %s", op, from)
	}
}

package operation

import (
	"context"
	"errors"

	"github.com/platform9/pcdmanager/domain/model"
	"github.com/platform9/pcdmanager/internal/logging"
	"github.com/platform9/pcdmanager/internal/observability"
)

// messageLimit bounds the stored failure message.
const messageLimit = 1024

// BeginInput describes a workflow about to run.
type BeginInput struct {
	Kind        model.OperationKind
	Environment string
	FQDN        string
	Actor       string
}

// Entry is a running journal record. A nil-safe handle: journal write failures are
// logged and never fail the workflow being recorded.
type Entry struct {
	uc *UseCase
	op *model.Operation
}

// Begin writes a running journal entry.
func (u *UseCase) Begin(ctx context.Context, in BeginInput) *Entry {
	op := &model.Operation{
		Kind:        in.Kind,
		Environment: in.Environment,
		FQDN:        in.FQDN,
		Actor:       in.Actor,
		Status:      model.OperationRunning,
	}
	if u == nil || u.Repos == nil || u.Repos.Operation == nil {
		return &Entry{op: op}
	}
	op.StartedAt = u.now().Now().UTC()
	if err := u.Repos.Operation.Create(ctx, op); err != nil {
		logging.FromContext(ctx).Warn(ctx, "journal write failed", "kind", in.Kind, "err", err)
		return &Entry{op: op}
	}
	return &Entry{uc: u, op: op}
}

// ID returns the journal id, empty when the entry was not persisted.
func (e *Entry) ID() string {
	if e == nil || e.uc == nil {
		return ""
	}
	return e.op.ID
}

// Finish records the outcome of the workflow. A *model.StageError names the failed stage.
func (e *Entry) Finish(ctx context.Context, err error) {
	if e == nil {
		return
	}
	status := model.OperationSucceeded
	if err != nil {
		status = model.OperationFailed
	}
	observability.ObserveWorkflow(string(e.op.Kind), string(status))
	if e.uc == nil {
		return
	}

	e.op.Status = status
	if err != nil {
		var se *model.StageError
		if errors.As(err, &se) {
			e.op.Stage = se.Stage
		}
		msg := err.Error()
		if len(msg) > messageLimit {
			msg = msg[:messageLimit]
		}
		e.op.Message = msg
	}
	now := e.uc.now().Now().UTC()
	e.op.FinishedAt = &now
	if uerr := e.uc.Repos.Operation.Update(ctx, e.op); uerr != nil {
		logging.FromContext(ctx).Warn(ctx, "journal update failed", "id", e.op.ID, "err", uerr)
	}
}

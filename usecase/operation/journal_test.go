package operation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/platform9/pcdmanager/adapters/store/inmem"
	"github.com/platform9/pcdmanager/domain"
	"github.com/platform9/pcdmanager/domain/model"
	clocktesting "k8s.io/utils/clock/testing"
)

func newUseCase() (*UseCase, *clocktesting.FakePassiveClock) {
	clk := clocktesting.NewFakePassiveClock(time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC))
	return &UseCase{Repos: &Repos{Operation: inmem.NewOperationRepository()}, Clock: clk}, clk
}

func TestJournal_Success(t *testing.T) {
	ctx := context.Background()
	uc, clk := newUseCase()

	e := uc.Begin(ctx, BeginInput{Kind: model.OpCreate, Environment: "us-dev", FQDN: "acme.x", Actor: "alice@example.com"})
	if e.ID() == "" {
		t.Fatal("expected persisted entry")
	}
	clk.SetTime(clk.Now().Add(90 * time.Second))
	e.Finish(ctx, nil)

	op, err := uc.Get(ctx, &GetInput{ID: e.ID()})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if op.Status != model.OperationSucceeded || op.FinishedAt == nil || op.FinishedAt.Sub(op.StartedAt) != 90*time.Second {
		t.Errorf("unexpected operation %+v", op)
	}
}

func TestJournal_FailureRecordsStage(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase()

	e := uc.Begin(ctx, BeginInput{Kind: model.OpDelete, Environment: "us-dev", FQDN: "acme.x"})
	e.Finish(ctx, model.Stage("burn", errors.New("remote said no")))

	out, err := uc.List(ctx, &ListInput{Environment: "us-dev"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(out.Operations) != 1 {
		t.Fatalf("expected 1 operation, got %d", len(out.Operations))
	}
	op := out.Operations[0]
	if op.Status != model.OperationFailed || op.Stage != "burn" || op.Message != "burn failed: remote said no" {
		t.Errorf("unexpected operation %+v", op)
	}
}

type failingRepo struct{ domain.OperationRepository }

func (failingRepo) Create(context.Context, *model.Operation) error { return errors.New("disk full") }

func TestJournal_WriteFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	uc := &UseCase{Repos: &Repos{Operation: failingRepo{}}}

	e := uc.Begin(ctx, BeginInput{Kind: model.OpAddTag})
	if e.ID() != "" {
		t.Error("entry should not be persisted")
	}
	e.Finish(ctx, nil)

	var nilUC *UseCase
	nilUC.Begin(ctx, BeginInput{Kind: model.OpAddTag}).Finish(ctx, errors.New("x"))
}

func TestList_Validation(t *testing.T) {
	uc, _ := newUseCase()
	if _, err := uc.List(context.Background(), &ListInput{Limit: -1}); !errors.Is(err, model.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
	if _, err := uc.Get(context.Background(), &GetInput{}); !errors.Is(err, model.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

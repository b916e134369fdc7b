package inmem

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/platform9/pcdmanager/config/pcdcfg"
	"github.com/platform9/pcdmanager/domain"
	"github.com/platform9/pcdmanager/domain/model"
)

func TestEnvironmentRepository(t *testing.T) {
	ctx := context.Background()
	s := NewStore(pcdcfg.Default())

	envs, err := s.EnvironmentRepo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(envs) != 6 || envs[0].ID != "us-dev" || envs[5].ID != "us-prod" {
		t.Fatalf("unexpected environment order: %d entries", len(envs))
	}

	env, err := s.EnvironmentRepo.Get(ctx, "eu-prod")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	env.Label = "mutated"
	again, _ := s.EnvironmentRepo.Get(ctx, "eu-prod")
	if again.Label == "mutated" {
		t.Error("Get must return a copy")
	}

	if _, err := s.EnvironmentRepo.Get(ctx, "mars"); !errors.Is(err, model.ErrEnvironmentNotFound) {
		t.Errorf("expected ErrEnvironmentNotFound, got %v", err)
	}
}

func TestOperationRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewOperationRepository()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	ops := []*model.Operation{
		{Kind: model.OpCreate, Environment: "us-dev", FQDN: "a.example.com", Actor: "alice@example.com", StartedAt: base},
		{Kind: model.OpAddTag, Environment: "us-dev", FQDN: "b.example.com", Actor: "bob@example.com", StartedAt: base.Add(time.Minute)},
		{Kind: model.OpDelete, Environment: "us-qa", FQDN: "a.example.com", Actor: "alice@example.com", StartedAt: base.Add(2 * time.Minute)},
	}
	for _, op := range ops {
		op.Status = model.OperationRunning
		if err := repo.Create(ctx, op); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if op.ID == "" {
			t.Fatal("Create should assign an ID")
		}
	}

	all, _ := repo.List(ctx, domain.OperationFilter{})
	if len(all) != 3 || all[0].Kind != model.OpDelete {
		t.Fatalf("expected newest first, got %+v", all)
	}
	byEnv, _ := repo.List(ctx, domain.OperationFilter{Environment: "us-dev"})
	if len(byEnv) != 2 {
		t.Errorf("expected 2 us-dev operations, got %d", len(byEnv))
	}
	byActor, _ := repo.List(ctx, domain.OperationFilter{Actor: "alice@example.com", Limit: 1})
	if len(byActor) != 1 || byActor[0].Environment != "us-qa" {
		t.Errorf("unexpected actor listing %+v", byActor)
	}

	done := base.Add(3 * time.Minute)
	ops[0].Status = model.OperationSucceeded
	ops[0].FinishedAt = &done
	if err := repo.Update(ctx, ops[0]); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	got, err := repo.Get(ctx, ops[0].ID)
	if err != nil || got.Status != model.OperationSucceeded || got.FinishedAt == nil {
		t.Fatalf("unexpected stored operation %+v, err %v", got, err)
	}

	if err := repo.Update(ctx, &model.Operation{ID: "missing"}); !errors.Is(err, model.ErrOperationNotFound) {
		t.Errorf("expected ErrOperationNotFound, got %v", err)
	}
	if _, err := repo.Get(ctx, "missing"); !errors.Is(err, model.ErrOperationNotFound) {
		t.Errorf("expected ErrOperationNotFound, got %v", err)
	}
}

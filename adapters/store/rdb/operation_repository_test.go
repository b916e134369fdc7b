package rdb

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/platform9/pcdmanager/domain"
	"github.com/platform9/pcdmanager/domain/model"
)

func newTestRepo(t *testing.T) *OperationRepository {
	t.Helper()
	db, err := OpenFromURL("sqlite:" + filepath.Join(t.TempDir(), "ops.db"))
	if err != nil {
		t.Fatalf("OpenFromURL failed: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate failed: %v", err)
	}
	return NewOperationRepository(db)
}

func TestOpenFromURL_UnsupportedScheme(t *testing.T) {
	if _, err := OpenFromURL("postgres://localhost/db"); err == nil {
		t.Fatal("expected error for unsupported scheme")
	}
}

func TestOperationRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	start := time.Date(2025, 4, 2, 8, 0, 0, 0, time.UTC)

	op := &model.Operation{Kind: model.OpCreate, Environment: "us-dev", FQDN: "acme.app.dev-pcd.platform9.com", Actor: "alice@example.com", Status: model.OperationRunning, StartedAt: start}
	if err := repo.Create(ctx, op); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if op.ID == "" {
		t.Fatal("Create should assign an ID")
	}

	later := &model.Operation{Kind: model.OpAddTag, Environment: "us-dev", FQDN: "other.example.com", Actor: "bob@example.com", Status: model.OperationRunning, StartedAt: start.Add(time.Hour)}
	if err := repo.Create(ctx, later); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	finished := start.Add(time.Minute)
	op.Status = model.OperationFailed
	op.Stage = "deploy"
	op.Message = "deploy failed: boom"
	op.FinishedAt = &finished
	if err := repo.Update(ctx, op); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := repo.Get(ctx, op.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Status != model.OperationFailed || got.Stage != "deploy" || got.FinishedAt == nil {
		t.Errorf("unexpected operation %+v", got)
	}

	all, err := repo.List(ctx, domain.OperationFilter{Environment: "us-dev"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 2 || all[0].ID != later.ID {
		t.Errorf("expected newest first, got %+v", all)
	}
	byFQDN, _ := repo.List(ctx, domain.OperationFilter{FQDN: op.FQDN})
	if len(byFQDN) != 1 {
		t.Errorf("expected 1 operation by fqdn, got %d", len(byFQDN))
	}

	if _, err := repo.Get(ctx, "op-missing"); !errors.Is(err, model.ErrOperationNotFound) {
		t.Errorf("expected ErrOperationNotFound, got %v", err)
	}
	if err := repo.Update(ctx, &model.Operation{ID: "op-missing", StartedAt: start}); !errors.Is(err, model.ErrOperationNotFound) {
		t.Errorf("expected ErrOperationNotFound, got %v", err)
	}
}

package credential

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/platform9/pcdmanager/domain/model"
)

func TestFileResolver_Token(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "us-dev-bork-token")
	if err := os.WriteFile(path, []byte("  secret-token\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	emptyPath := filepath.Join(dir, "empty-bork-token")
	if err := os.WriteFile(emptyPath, []byte("\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	r := NewFileResolver()
	ctx := context.Background()

	tests := []struct {
		name     string
		env      *model.Environment
		supplied string
		want     string
		wantErr  error
	}{
		{"supplied wins", &model.Environment{ID: "us-dev", CredentialPath: path}, "caller", "caller", nil},
		{"stored trimmed", &model.Environment{ID: "us-dev", CredentialPath: path}, "", "secret-token", nil},
		{"missing file", &model.Environment{ID: "x", CredentialPath: filepath.Join(dir, "missing")}, "", "", model.ErrCredentialNotFound},
		{"empty file", &model.Environment{ID: "empty", CredentialPath: emptyPath}, "", "", model.ErrCredentialNotFound},
		{"no path", &model.Environment{ID: "none"}, "", "", model.ErrCredentialNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Token(ctx, tt.env, tt.supplied)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Token() = %q, want %q", got, tt.want)
			}
		})
	}
}

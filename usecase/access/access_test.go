package access

import (
	"context"
	"errors"
	"testing"

	"github.com/platform9/pcdmanager/adapters/bork/borkfake"
	"github.com/platform9/pcdmanager/adapters/store/inmem"
	"github.com/platform9/pcdmanager/domain/model"
)

// mockCredentials is a mock implementation for testing.
type mockCredentials struct {
	tokenFunc func(ctx context.Context, env *model.Environment, supplied string) (string, error)
}

func (m *mockCredentials) Token(ctx context.Context, env *model.Environment, supplied string) (string, error) {
	if m.tokenFunc != nil {
		return m.tokenFunc(ctx, env, supplied)
	}
	return "", errors.New("not implemented")
}

func newResolver(tokenFunc func(context.Context, *model.Environment, string) (string, error)) (*Resolver, *borkfake.ControlPlane) {
	fake := borkfake.New()
	return &Resolver{
		Environments: inmem.NewEnvironmentRepository([]*model.Environment{
			{ID: "dev", Domain: ".dev.example.com", Class: model.ClassDev},
			{ID: "prod", Domain: ".example.com", Class: model.ClassProd},
		}),
		Credentials: &mockCredentials{tokenFunc: tokenFunc},
		Dialer:      fake,
	}, fake
}

func stored(_ context.Context, _ *model.Environment, supplied string) (string, error) {
	if supplied != "" {
		return supplied, nil
	}
	return "stored", nil
}

func TestConnect(t *testing.T) {
	ctx := context.Background()
	missing := func(context.Context, *model.Environment, string) (string, error) {
		return "", model.ErrCredentialNotFound
	}
	broken := func(context.Context, *model.Environment, string) (string, error) {
		return "", errors.New("permission denied")
	}

	tests := []struct {
		name      string
		tokenFunc func(context.Context, *model.Environment, string) (string, error)
		req       Request
		wantToken string
		wantErr   error
	}{
		{"optional uses stored", stored, Request{Environment: "dev"}, "stored", nil},
		{"optional falls back to anonymous", missing, Request{Environment: "dev"}, "", nil},
		{"supplied only forwards caller token", stored, Request{Environment: "prod", Credential: CredentialSupplied}, "", nil},
		{"required uses stored on dev", stored, Request{Environment: "dev", Credential: CredentialRequired}, "stored", nil},
		{"required prefers caller token", stored, Request{Environment: "prod", Credential: CredentialRequired, Token: "confirm"}, "confirm", nil},
		{"production gate", stored, Request{Environment: "prod", Credential: CredentialRequired}, "", model.ErrProductionTokenRequired},
		{"system bypasses gate", stored, Request{Environment: "prod", Credential: CredentialRequired, System: true}, "stored", nil},
		{"required missing credential", missing, Request{Environment: "dev", Credential: CredentialRequired}, "", model.ErrCredentialNotFound},
		{"unknown env", stored, Request{Environment: "mars"}, "", model.ErrEnvironmentNotFound},
		{"empty env", stored, Request{}, "", model.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, fake := newResolver(tt.tokenFunc)
			_, cp, err := r.Connect(ctx, tt.req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if len(fake.Tokens()) != 0 {
					t.Error("failed connect must not dial")
				}
				return
			}
			if err != nil || cp == nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := fake.Tokens(); len(got) != 1 || got[0] != tt.wantToken {
				t.Errorf("dialed with %q, want %q", got, tt.wantToken)
			}
		})
	}

	r, _ := newResolver(broken)
	if _, _, err := r.Connect(ctx, Request{Environment: "dev"}); err == nil || errors.Is(err, model.ErrCredentialNotFound) {
		t.Errorf("unreadable credential must fail, got %v", err)
	}
}

func TestTarget_Resolve(t *testing.T) {
	env := &model.Environment{Domain: ".app.dev-pcd.platform9.com"}
	tests := []struct {
		target  Target
		want    string
		wantErr bool
	}{
		{Target{ShortName: "acme"}, "acme.app.dev-pcd.platform9.com", false},
		{Target{ShortName: "acme", RegionName: "INFRA"}, "acme.app.dev-pcd.platform9.com", false},
		{Target{ShortName: "acme", RegionName: "east"}, "acme-east.app.dev-pcd.platform9.com", false},
		{Target{FQDN: " x.example.com ", ShortName: "ignored"}, "x.example.com", false},
		{Target{FQDN: "bad_host!"}, "", true},
		{Target{Namespace: "acme-east", ShortName: "ignored"}, "acme-east.app.dev-pcd.platform9.com", false},
		{Target{Namespace: "acme_east"}, "", true},
		{Target{}, "", true},
	}
	for _, tt := range tests {
		got, err := tt.target.Resolve(env)
		if (err != nil) != tt.wantErr {
			t.Errorf("Resolve(%+v) error = %v, wantErr %v", tt.target, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("Resolve(%+v) = %q, want %q", tt.target, got, tt.want)
		}
	}
}

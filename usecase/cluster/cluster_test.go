package cluster

import (
	"context"
	"errors"
	"testing"

	"github.com/platform9/pcdmanager/adapters/bork/borkfake"
	"github.com/platform9/pcdmanager/adapters/store/inmem"
	"github.com/platform9/pcdmanager/domain/model"
	"github.com/platform9/pcdmanager/usecase/access"
)

type noCredentials struct{}

func (noCredentials) Token(context.Context, *model.Environment, string) (string, error) {
	return "", model.ErrCredentialNotFound
}

func TestList_AcceptingOnly(t *testing.T) {
	fake := borkfake.New().
		AddCluster(model.Cluster{FQDN: "dp1.example.com", Accepting: true}).
		AddCluster(model.Cluster{FQDN: "dp2.example.com"})
	uc := &UseCase{Access: &access.Resolver{
		Environments: inmem.NewEnvironmentRepository([]*model.Environment{{ID: "lab", Domain: ".lab"}}),
		Credentials:  noCredentials{},
		Dialer:       fake,
	}}

	out, err := uc.List(context.Background(), &ListInput{Environment: "lab"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(out.Clusters) != 1 || out.Clusters[0].FQDN != "dp1.example.com" {
		t.Errorf("unexpected clusters %+v", out.Clusters)
	}
	if tokens := fake.Tokens(); len(tokens) != 1 || tokens[0] != "" {
		t.Errorf("missing credential should fall back to anonymous, got %q", tokens)
	}

	fake.FailOn("ListClusters", errors.New("down"))
	if _, err := uc.List(context.Background(), &ListInput{Environment: "lab"}); err == nil {
		t.Error("expected error")
	}
}

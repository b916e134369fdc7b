package metadata

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/platform9/pcdmanager/adapters/bork/borkfake"
	"github.com/platform9/pcdmanager/adapters/store/inmem"
	"github.com/platform9/pcdmanager/domain"
	"github.com/platform9/pcdmanager/domain/model"
	"github.com/platform9/pcdmanager/internal/ttlcache"
	"github.com/platform9/pcdmanager/usecase/access"
	"github.com/platform9/pcdmanager/usecase/operation"
)

// mockCredentials fails the test if a stored credential is ever requested.
type mockCredentials struct{ t *testing.T }

func (m mockCredentials) Token(_ context.Context, env *model.Environment, supplied string) (string, error) {
	m.t.Errorf("metadata operations must not read stored credentials (env %s)", env.ID)
	return supplied, nil
}

const fqdn = "x.example.com"

func newUseCase(t *testing.T, fake *borkfake.ControlPlane) (*UseCase, *inmem.OperationRepository) {
	t.Helper()
	envs := inmem.NewEnvironmentRepository([]*model.Environment{
		{ID: "lab", BorkURL: "https://bork.lab", Domain: ".example.com", Class: model.ClassDev},
		{ID: "live", BorkURL: "https://bork.live", Domain: ".live.example.com", Class: model.ClassProd},
	})
	ops := inmem.NewOperationRepository()
	return &UseCase{
		Access:   &access.Resolver{Environments: envs, Credentials: mockCredentials{t}, Dialer: fake},
		Journal:  &operation.UseCase{Repos: &operation.Repos{Operation: ops}},
		Listings: ttlcache.New[[]*model.RegionGroup]("test", 0),
	}, ops
}

func seeded(md model.Metadata) *borkfake.ControlPlane {
	return borkfake.New().AddRegion(model.Region{FQDN: fqdn, CustomerShortName: "x", RegionName: "Infra", Metadata: md})
}

func TestAddTag_AppendsPreservingOrder(t *testing.T) {
	fake := seeded(model.Metadata{"tags": "Dev,Sales", "owner": "o@x"})
	uc, _ := newUseCase(t, fake)

	out, err := uc.AddTag(context.Background(), &TagInput{RegionRef: RegionRef{Environment: "lab", FQDN: fqdn}, Tag: "QA"})
	if err != nil {
		t.Fatalf("AddTag failed: %v", err)
	}
	if diff := cmp.Diff([]string{"Dev", "Sales", "QA"}, out.Tags); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}
	r, _ := fake.Region(fqdn)
	if r.Metadata.String("tags") != "Dev,Sales,QA" || r.Metadata.Owner() != "o@x" {
		t.Errorf("unexpected stored metadata %v", r.Metadata)
	}
	if diff := cmp.Diff([]string{"GetMetadata " + fqdn, "SetMetadata " + fqdn}, fake.Calls()); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestAddTag_Idempotent(t *testing.T) {
	fake := seeded(model.Metadata{"tags": "Dev,Sales"})
	uc, _ := newUseCase(t, fake)
	in := &TagInput{RegionRef: RegionRef{Environment: "lab", FQDN: fqdn}, Tag: "qa"}

	first, err := uc.AddTag(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	in.Tag = " QA "
	second, err := uc.AddTag(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first.Tags, second.Tags); diff != "" {
		t.Errorf("second add changed the set (-first +second):\n%s", diff)
	}
}

func TestRemoveTag(t *testing.T) {
	tests := []struct {
		name string
		tags string
		tag  string
		want []string
	}{
		{"case-insensitive match", "Dev,Sales", "dev", []string{"Sales"}},
		{"missing tag is a no-op", "Dev,Sales", "ops", []string{"Dev", "Sales"}},
		{"last tag", "Dev", "DEV", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newUseCase(t, seeded(model.Metadata{"tags": tt.tags}))
			out, err := uc.RemoveTag(context.Background(), &TagInput{RegionRef: RegionRef{Environment: "lab", FQDN: fqdn}, Tag: tt.tag})
			if err != nil {
				t.Fatalf("RemoveTag failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, out.Tags); diff != "" {
				t.Errorf("tags mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUpdateLease(t *testing.T) {
	fake := seeded(model.Metadata{"lease_counter": "3", "lease_date": "2025-05-01", "owner": "o@x", "tags": "a", "custom": "keep"})
	uc, ops := newUseCase(t, fake)

	out, err := uc.UpdateLease(context.Background(), &LeaseInput{
		RegionRef: RegionRef{Environment: "lab", FQDN: fqdn, Actor: "alice@example.com"},
		LeaseDate: "2025-06-01",
		Note:      "extend",
	})
	if err != nil {
		t.Fatalf("UpdateLease failed: %v", err)
	}
	want := &LeaseOutput{FQDN: fqdn, LeaseDate: "2025-06-01", LeaseCounter: "4", Note: "extend"}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
	r, _ := fake.Region(fqdn)
	wantMD := model.Metadata{"lease_counter": "4", "lease_date": "2025-06-01", "note": "extend", "owner": "o@x", "tags": "a", "custom": "keep"}
	if diff := cmp.Diff(wantMD, r.Metadata); diff != "" {
		t.Errorf("metadata mismatch (-want +got):\n%s", diff)
	}

	list, _ := ops.List(context.Background(), domainFilter())
	if len(list) != 1 || list[0].Kind != model.OpUpdateLease || list[0].Actor != "alice@example.com" || list[0].Status != model.OperationSucceeded {
		t.Errorf("unexpected journal %+v", list)
	}
}

func TestLeaseMutator_Counter(t *testing.T) {
	for in, want := range map[any]string{nil: "1", "abc": "1", "-4": "1", "0": "1", "9": "10", float64(2): "3"} {
		md := model.Metadata{}
		if in != nil {
			md[model.MetaLeaseCounter] = in
		}
		if err := LeaseMutator("2025-01-01", "")(md); err != nil {
			t.Fatal(err)
		}
		if got := md.String(model.MetaLeaseCounter); got != want {
			t.Errorf("counter from %v = %q, want %q", in, got, want)
		}
	}
}

func TestValidationNeverReachesNetwork(t *testing.T) {
	fake := seeded(model.Metadata{})
	uc, _ := newUseCase(t, fake)
	ctx := context.Background()
	ref := RegionRef{Environment: "lab", FQDN: fqdn}

	cases := map[string]func() error{
		"comma tag":     func() error { _, err := uc.AddTag(ctx, &TagInput{RegionRef: ref, Tag: "a,b"}); return err },
		"empty tag":     func() error { _, err := uc.AddTag(ctx, &TagInput{RegionRef: ref, Tag: "  "}); return err },
		"bad lease":     func() error { _, err := uc.UpdateLease(ctx, &LeaseInput{RegionRef: ref, LeaseDate: "06/01/2025"}); return err },
		"empty owner":   func() error { _, err := uc.SetOwner(ctx, &OwnerInput{RegionRef: ref}); return err },
		"no env":        func() error { _, err := uc.AddTag(ctx, &TagInput{RegionRef: RegionRef{FQDN: fqdn}, Tag: "a"}); return err },
		"no region ref": func() error { _, err := uc.AddTag(ctx, &TagInput{RegionRef: RegionRef{Environment: "lab"}, Tag: "a"}); return err },
	}
	for name, call := range cases {
		if err := call(); !errors.Is(err, model.ErrValidation) {
			t.Errorf("%s: expected validation error, got %v", name, err)
		}
	}
	if calls := fake.Calls(); len(calls) != 0 {
		t.Errorf("validation failures must not call the control plane: %v", calls)
	}
}

func TestMerge_FetchFailureSkipsWrite(t *testing.T) {
	fake := seeded(model.Metadata{}).FailOn("GetMetadata", &model.UpstreamError{Kind: model.UpstreamFetch, StatusCode: 503})
	uc, _ := newUseCase(t, fake)

	_, err := uc.SetOwner(context.Background(), &OwnerInput{RegionRef: RegionRef{Environment: "lab", FQDN: fqdn}, Owner: "bob@example.com"})
	var se *model.StageError
	if !errors.As(err, &se) || se.Stage != "metadata fetch" {
		t.Fatalf("expected metadata fetch stage error, got %v", err)
	}
	for _, c := range fake.Calls() {
		if c == "SetMetadata "+fqdn {
			t.Error("write attempted after fetch failure")
		}
	}
}

func TestSetOwner_ByNameAndSuppliedToken(t *testing.T) {
	fake := borkfake.New().AddRegion(model.Region{FQDN: "acme-east.live.example.com", Metadata: model.Metadata{"owner": "a@x"}})
	uc, _ := newUseCase(t, fake)

	out, err := uc.SetOwner(context.Background(), &OwnerInput{
		RegionRef: RegionRef{Environment: "live", ShortName: "acme", RegionName: "east", Token: "confirm"},
		Owner:     "b@x",
	})
	if err != nil {
		t.Fatalf("SetOwner failed: %v", err)
	}
	if out.FQDN != "acme-east.live.example.com" || out.Owner != "b@x" {
		t.Errorf("unexpected output %+v", out)
	}
	if diff := cmp.Diff([]string{"confirm"}, fake.Tokens()); diff != "" {
		t.Errorf("token mismatch (-want +got):\n%s", diff)
	}
}

func TestInitialMetadata(t *testing.T) {
	got := InitialMetadata("o@x", "2025-07-01", []string{" Dev", "dev", "", "QA"}, true)
	want := model.Metadata{"owner": "o@x", "lease_date": "2025-07-01", "tags": "Dev,QA", "lease_counter": "0", "use_du_specific_le_http_cert": "true"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("metadata mismatch (-want +got):\n%s", diff)
	}
}

func domainFilter() domain.OperationFilter { return domain.OperationFilter{} }

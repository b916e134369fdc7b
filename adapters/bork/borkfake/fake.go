// Package borkfake provides an in-memory control plane for tests.
package borkfake

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/platform9/pcdmanager/domain/model"
)

// Call is one recorded control plane invocation.
type Call struct {
	Method string
	Target string
}

func (c Call) String() string {
	if c.Target == "" {
		return c.Method
	}
	return c.Method + " " + c.Target
}

// ControlPlane is a stateful fake implementing model.ControlPlane and
// model.ControlPlaneDialer. All environments dialed share one state.
type ControlPlane struct {
	mu        sync.Mutex
	customers map[string]*model.Customer
	regions   map[string]*model.Region
	clusters  []*model.Cluster
	calls     []Call
	tokens    []string
	errs      map[string]error

	// BurnDelay makes BURN block until it elapses or the context is done.
	BurnDelay time.Duration
}

// New returns an empty fake.
func New() *ControlPlane {
	return &ControlPlane{
		customers: map[string]*model.Customer{},
		regions:   map[string]*model.Region{},
		errs:      map[string]error{},
	}
}

// Dial records token and returns the fake itself.
func (f *ControlPlane) Dial(_ *model.Environment, token string) model.ControlPlane {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, token)
	return f
}

// FailOn makes the call matching key fail with err. key is "Method" or "Method target".
func (f *ControlPlane) FailOn(key string, err error) *ControlPlane {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[key] = err
	return f
}

// AddCustomer seeds a customer.
func (f *ControlPlane) AddCustomer(c model.Customer) *ControlPlane {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.customers[c.ShortName] = &c
	return f
}

// AddRegion seeds a region.
func (f *ControlPlane) AddRegion(r model.Region) *ControlPlane {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r.Metadata == nil {
		r.Metadata = model.Metadata{}
	}
	f.regions[r.FQDN] = &r
	return f
}

// AddCluster seeds a cluster.
func (f *ControlPlane) AddCluster(c model.Cluster) *ControlPlane {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clusters = append(f.clusters, &c)
	return f
}

// Calls returns the recorded calls as "Method target" strings.
func (f *ControlPlane) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.String())
	}
	return out
}

// Tokens returns the tokens passed to Dial.
func (f *ControlPlane) Tokens() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.tokens...)
}

// Region returns a copy of the stored region.
func (f *ControlPlane) Region(fqdn string) (*model.Region, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.regions[fqdn]
	if !ok {
		return nil, false
	}
	cp := *r
	cp.Metadata = r.Metadata.Clone()
	return &cp, true
}

// HasCustomer reports whether shortName exists.
func (f *ControlPlane) HasCustomer(shortName string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.customers[shortName]
	return ok
}

// record must be called with mu held.
func (f *ControlPlane) record(method, target string) error {
	f.calls = append(f.calls, Call{Method: method, Target: target})
	if err, ok := f.errs[method+" "+target]; ok {
		return err
	}
	return f.errs[method]
}

func (f *ControlPlane) ListCustomers(_ context.Context) ([]*model.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ListCustomers", ""); err != nil {
		return nil, err
	}
	out := make([]*model.Customer, 0, len(f.customers))
	for _, c := range f.customers {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ShortName < out[j].ShortName })
	return out, nil
}

func (f *ControlPlane) CreateCustomer(_ context.Context, c model.Customer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CreateCustomer", c.ShortName); err != nil {
		return err
	}
	if _, ok := f.customers[c.ShortName]; ok {
		return &model.UpstreamError{Kind: model.UpstreamWrite, Op: "CreateCustomer", Method: "POST", Path: "/customers/" + c.ShortName, StatusCode: 409, Body: "customer exists"}
	}
	f.customers[c.ShortName] = &c
	return nil
}

func (f *ControlPlane) DeleteCustomer(_ context.Context, shortName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("DeleteCustomer", shortName); err != nil {
		return err
	}
	delete(f.customers, shortName)
	return nil
}

func (f *ControlPlane) ListRegions(_ context.Context) ([]*model.Region, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ListRegions", ""); err != nil {
		return nil, err
	}
	out := make([]*model.Region, 0, len(f.regions))
	for _, r := range f.regions {
		cp := *r
		cp.Metadata = r.Metadata.Clone()
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FQDN < out[j].FQDN })
	return out, nil
}

func (f *ControlPlane) CreateRegion(_ context.Context, fqdn, customer string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CreateRegion", fqdn); err != nil {
		return err
	}
	f.regions[fqdn] = &model.Region{
		FQDN:              fqdn,
		Namespace:         strings.SplitN(fqdn, ".", 2)[0],
		CustomerShortName: customer,
		TaskState:         "created",
		Metadata:          model.Metadata{},
	}
	return nil
}

func (f *ControlPlane) DeployRegion(_ context.Context, fqdn string, spec model.DeploySpec) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("DeployRegion", fqdn); err != nil {
		return err
	}
	r, ok := f.regions[fqdn]
	if !ok {
		return notFound("DeployRegion", fqdn)
	}
	r.RegionName = spec.RegionName
	r.ChartURL = spec.ChartURL
	r.DBBackend = spec.DBBackend
	r.TaskState = "deploying"
	return nil
}

func (f *ControlPlane) UpgradeRegion(_ context.Context, fqdn string, spec model.UpgradeSpec) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("UpgradeRegion", fqdn); err != nil {
		return err
	}
	r, ok := f.regions[fqdn]
	if !ok {
		return notFound("UpgradeRegion", fqdn)
	}
	r.ChartURL = spec.ChartURL
	r.TaskState = "upgrading"
	return nil
}

func (f *ControlPlane) BurnRegion(ctx context.Context, fqdn string) error {
	f.mu.Lock()
	err := f.record("BurnRegion", fqdn)
	delay := f.BurnDelay
	f.mu.Unlock()
	if err != nil {
		return err
	}
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return &model.UpstreamError{Kind: model.UpstreamTransport, Op: "BurnRegion", Method: "BURN", Path: "/regions/" + fqdn, Err: ctx.Err()}
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.regions, fqdn)
	return nil
}

func (f *ControlPlane) DeleteRegion(_ context.Context, fqdn string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("DeleteRegion", fqdn); err != nil {
		return err
	}
	delete(f.regions, fqdn)
	return nil
}

func (f *ControlPlane) SetRegionState(_ context.Context, fqdn, state string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("SetRegionState", fqdn); err != nil {
		return err
	}
	r, ok := f.regions[fqdn]
	if !ok {
		return notFound("SetRegionState", fqdn)
	}
	r.TaskState = state
	return nil
}

func (f *ControlPlane) GetMetadata(_ context.Context, fqdn string) (model.Metadata, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("GetMetadata", fqdn); err != nil {
		return nil, err
	}
	r, ok := f.regions[fqdn]
	if !ok {
		return nil, notFound("GetMetadata", fqdn)
	}
	return r.Metadata.Clone(), nil
}

func (f *ControlPlane) SetMetadata(_ context.Context, fqdn string, md model.Metadata) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("SetMetadata", fqdn); err != nil {
		return err
	}
	r, ok := f.regions[fqdn]
	if !ok {
		return notFound("SetMetadata", fqdn)
	}
	r.Metadata = md.Clone()
	return nil
}

func (f *ControlPlane) ListClusters(_ context.Context) ([]*model.Cluster, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ListClusters", ""); err != nil {
		return nil, err
	}
	out := make([]*model.Cluster, 0, len(f.clusters))
	for _, c := range f.clusters {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func notFound(op, fqdn string) error {
	return &model.UpstreamError{Kind: model.UpstreamWrite, Op: op, Path: "/regions/" + fqdn, StatusCode: 404, Body: fmt.Sprintf("region %s not found", fqdn)}
}

var (
	_ model.ControlPlane       = (*ControlPlane)(nil)
	_ model.ControlPlaneDialer = (*ControlPlane)(nil)
)

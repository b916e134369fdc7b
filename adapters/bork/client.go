// Package bork implements model.ControlPlane over the bork REST API.
//
// The API uses custom HTTP verbs (DEPLOY, UPGRADE, BURN) on region resources.
// Every call is a single request: nothing is retried here.
package bork

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/platform9/pcdmanager/domain/model"
	"github.com/platform9/pcdmanager/internal/logging"
)

const (
	MethodDeploy  = "DEPLOY"
	MethodUpgrade = "UPGRADE"
	MethodBurn    = "BURN"

	// maxBody bounds how much of an error response is kept for diagnostics.
	maxBody = 4096
)

// Client talks to one environment of the control plane.
type Client struct {
	base   string
	token  string
	http   *http.Client
	envID  string
	onCall func(env, method string, status int, elapsed time.Duration)
}

func (c *Client) url(path string) string {
	return c.base + path
}

func regionPath(fqdn string) string {
	return "/regions/" + url.PathEscape(fqdn)
}

func customerPath(shortName string) string {
	return "/customers/" + url.PathEscape(shortName)
}

// do sends one request. in is JSON-encoded when non-nil; out is decoded when non-nil.
func (c *Client) do(ctx context.Context, op, method, path string, in, out any) (err error) {
	ctx, end := logging.Span(ctx, "BORK", op, "env", c.envID, "method", method, "path", path)
	defer func() { end(err) }()

	kind := model.UpstreamWrite
	if method == http.MethodGet {
		kind = model.UpstreamFetch
	}
	upErr := func(status int, body string, cause error, k model.UpstreamKind) error {
		return &model.UpstreamError{Kind: k, Op: op, Method: method, Path: path, StatusCode: status, Body: body, Err: cause}
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return upErr(0, "", err, model.UpstreamTransport)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(method, 0, start)
		return upErr(0, "", err, model.UpstreamTransport)
	}
	defer resp.Body.Close()
	c.observe(method, resp.StatusCode, start)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxBody))
		return upErr(resp.StatusCode, strings.TrimSpace(string(b)), nil, kind)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return upErr(resp.StatusCode, "", err, model.UpstreamParse)
	}
	return nil
}

func (c *Client) observe(method string, status int, start time.Time) {
	if c.onCall != nil {
		c.onCall(c.envID, method, status, time.Since(start))
	}
}

func (c *Client) ListCustomers(ctx context.Context) ([]*model.Customer, error) {
	var env listEnvelope[model.Customer]
	if err := c.do(ctx, "ListCustomers", http.MethodGet, "/customers/", nil, &env); err != nil {
		return nil, err
	}
	out := make([]*model.Customer, 0, len(env.Items))
	for i := range env.Items {
		out = append(out, &env.Items[i])
	}
	return out, nil
}

// CreateCustomer registers the customer. Repeating it for an existing customer is
// rejected by the remote side and surfaces as an UpstreamError.
func (c *Client) CreateCustomer(ctx context.Context, cust model.Customer) error {
	return c.do(ctx, "CreateCustomer", http.MethodPost, customerPath(cust.ShortName),
		customerBody{AdminEmail: cust.AdminEmail, AIM: model.DefaultAIM}, nil)
}

func (c *Client) DeleteCustomer(ctx context.Context, shortName string) error {
	return c.do(ctx, "DeleteCustomer", http.MethodDelete, customerPath(shortName), nil, nil)
}

func (c *Client) ListRegions(ctx context.Context) ([]*model.Region, error) {
	var env listEnvelope[regionItem]
	if err := c.do(ctx, "ListRegions", http.MethodGet, "/regions", nil, &env); err != nil {
		return nil, err
	}
	out := make([]*model.Region, 0, len(env.Items))
	for i := range env.Items {
		out = append(out, env.Items[i].toModel())
	}
	return out, nil
}

func (c *Client) CreateRegion(ctx context.Context, fqdn, customer string) error {
	return c.do(ctx, "CreateRegion", http.MethodPost, regionPath(fqdn), createRegionBody{Customer: customer}, nil)
}

func (c *Client) DeployRegion(ctx context.Context, fqdn string, spec model.DeploySpec) error {
	body := deployBody{
		AdminPassword: spec.AdminPassword,
		AIM:           spec.AIM,
		DBBackend:     spec.DBBackend,
		RegionName:    spec.RegionName,
		Options: deployOptions{
			MultiRegion:    boolString(spec.MultiRegion),
			SkipComponents: spec.SkipComponents,
			ChartURL:       spec.ChartURL,
		},
		UseDUSpecificLECert: trueOrOmit(spec.UseDUSpecificLECert),
	}
	return c.do(ctx, "DeployRegion", MethodDeploy, regionPath(fqdn), body, nil)
}

func (c *Client) UpgradeRegion(ctx context.Context, fqdn string, spec model.UpgradeSpec) error {
	body := upgradeBody{
		Options:             upgradeOptions{ChartURL: spec.ChartURL},
		UseDUSpecificLECert: trueOrOmit(spec.UseDUSpecificLECert),
	}
	return c.do(ctx, "UpgradeRegion", MethodUpgrade, regionPath(fqdn), body, nil)
}

// BurnRegion triggers the irreversible teardown. The caller bounds the wait through ctx.
func (c *Client) BurnRegion(ctx context.Context, fqdn string) error {
	return c.do(ctx, "BurnRegion", MethodBurn, regionPath(fqdn), nil, nil)
}

func (c *Client) DeleteRegion(ctx context.Context, fqdn string) error {
	return c.do(ctx, "DeleteRegion", http.MethodDelete, regionPath(fqdn), nil, nil)
}

func (c *Client) SetRegionState(ctx context.Context, fqdn, state string) error {
	return c.do(ctx, "SetRegionState", http.MethodPost, regionPath(fqdn)+"/state", stateBody{State: state}, nil)
}

// GetMetadata returns the region metadata bag. A response without a metadata
// object yields an empty bag.
func (c *Client) GetMetadata(ctx context.Context, fqdn string) (model.Metadata, error) {
	var env metadataEnvelope
	if err := c.do(ctx, "GetMetadata", http.MethodGet, regionPath(fqdn)+"/metadata", nil, &env); err != nil {
		return nil, err
	}
	if env.Details.Metadata == nil {
		return model.Metadata{}, nil
	}
	return env.Details.Metadata, nil
}

// SetMetadata replaces the whole metadata bag.
func (c *Client) SetMetadata(ctx context.Context, fqdn string, md model.Metadata) error {
	if md == nil {
		return errors.New("SetMetadata: nil metadata")
	}
	return c.do(ctx, "SetMetadata", http.MethodPost, regionPath(fqdn)+"/metadata", metadataBody{Metadata: md}, nil)
}

func (c *Client) ListClusters(ctx context.Context) ([]*model.Cluster, error) {
	var env listEnvelope[clusterItem]
	if err := c.do(ctx, "ListClusters", http.MethodGet, "/clusters/", nil, &env); err != nil {
		return nil, err
	}
	out := make([]*model.Cluster, 0, len(env.Items))
	for _, it := range env.Items {
		out = append(out, &model.Cluster{FQDN: it.FQDN, Accepting: it.Accepting})
	}
	return out, nil
}

var _ model.ControlPlane = (*Client)(nil)

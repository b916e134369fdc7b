// Package cortex proxies instant queries to a Prometheus-compatible metrics backend.
package cortex

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/api"
	promv1 "github.com/prometheus/client_golang/api/prometheus/v1"
	pmodel "github.com/prometheus/common/model"

	"github.com/platform9/pcdmanager/domain/model"
	"github.com/platform9/pcdmanager/internal/logging"
)

// Client runs instant queries with basic auth.
type Client struct {
	api promv1.API
	now func() time.Time
}

// New returns a client for the backend at address. Credentials are optional.
func New(address, username, password string) (*Client, error) {
	if strings.TrimSpace(address) == "" {
		return nil, errors.New("cortex: address is required")
	}
	c, err := api.NewClient(api.Config{
		Address:      address,
		RoundTripper: &basicAuth{username: username, password: password, next: api.DefaultRoundTripper},
	})
	if err != nil {
		return nil, fmt.Errorf("cortex: %w", err)
	}
	return &Client{api: promv1.NewAPI(c), now: time.Now}, nil
}

// Query implements model.MetricsQueryPort.
func (c *Client) Query(ctx context.Context, query string) (out *model.QueryResult, err error) {
	if strings.TrimSpace(query) == "" {
		return nil, model.Invalidf("query is required")
	}
	ctx, end := logging.Span(ctx, "CORTEX", "Query")
	defer func() { end(err) }()

	v, warnings, err := c.api.Query(ctx, query, c.now())
	if err != nil {
		return nil, upstream(err)
	}
	return &model.QueryResult{ResultType: resultType(v), Result: v, Warnings: warnings}, nil
}

func resultType(v pmodel.Value) string {
	if v == nil {
		return ""
	}
	return v.Type().String()
}

// upstream maps API errors onto the control-plane error taxonomy so the HTTP
// layer reports them uniformly.
func upstream(err error) error {
	ue := &model.UpstreamError{Kind: model.UpstreamFetch, Op: "Query", Method: http.MethodGet, Path: "/api/v1/query", Err: err}
	var apiErr *promv1.Error
	if !errors.As(err, &apiErr) {
		ue.Kind = model.UpstreamTransport
		return ue
	}
	ue.Body = apiErr.Msg
	switch apiErr.Type {
	case promv1.ErrBadData:
		ue.StatusCode = http.StatusBadRequest
	case promv1.ErrTimeout, promv1.ErrCanceled:
		ue.StatusCode = http.StatusGatewayTimeout
	case promv1.ErrBadResponse:
		ue.Kind = model.UpstreamParse
	default:
		ue.StatusCode = http.StatusBadGateway
	}
	return ue
}

type basicAuth struct {
	username, password string
	next               http.RoundTripper
}

func (b *basicAuth) RoundTrip(req *http.Request) (*http.Response, error) {
	if b.username == "" && b.password == "" {
		return b.next.RoundTrip(req)
	}
	req = req.Clone(req.Context())
	req.SetBasicAuth(b.username, b.password)
	return b.next.RoundTrip(req)
}

var _ model.MetricsQueryPort = (*Client)(nil)

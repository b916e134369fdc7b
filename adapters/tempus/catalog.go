// Package tempus reads deployable chart releases from the release catalog.
package tempus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/platform9/pcdmanager/domain/model"
	"github.com/platform9/pcdmanager/internal/logging"
)

// ArtifactTypeChart marks the chart artifact of a release.
const ArtifactTypeChart = "pcd-chart"

const maxErrorBody = 2048

type releasesEnvelope struct {
	Releases []release `json:"releases"`
}

type release struct {
	Version   string     `json:"version"`
	Artifacts []artifact `json:"artifacts"`
}

type artifact struct {
	Type     string `json:"artifact_type"`
	Location string `json:"location"`
}

// Catalog fetches the releases list. Transient failures (transport errors and
// 5xx) are retried with exponential backoff; other statuses fail at once.
type Catalog struct {
	url   string
	token string
	http  *http.Client

	newBackOff func(ctx context.Context) backoff.BackOff
}

// NewCatalog returns a catalog reading releasesURL. A non-empty token is sent
// as an OAuth authorization header.
func NewCatalog(releasesURL, token string, timeout time.Duration) *Catalog {
	return &Catalog{
		url:        releasesURL,
		token:      token,
		http:       &http.Client{Timeout: timeout},
		newBackOff: defaultBackOff,
	}
}

func defaultBackOff(ctx context.Context) backoff.BackOff {
	return backoff.WithContext(backoff.WithMaxRetries(&backoff.ExponentialBackOff{
		InitialInterval:     500 * time.Millisecond,
		RandomizationFactor: 0.5,
		Multiplier:          2,
		MaxInterval:         5 * time.Second,
		MaxElapsedTime:      30 * time.Second,
		Stop:                backoff.Stop,
		Clock:               backoff.SystemClock,
	}, 3), ctx)
}

// Charts implements model.ChartCatalogPort. The catalog is shared by every environment.
func (c *Catalog) Charts(ctx context.Context, env *model.Environment) (charts []model.Chart, err error) {
	ctx, end := logging.Span(ctx, "TEMPUS", "Charts", "env", env.ID)
	defer func() { end(err) }()

	var body releasesEnvelope
	operation := func() error {
		return c.fetch(ctx, &body)
	}
	notify := func(err error, d time.Duration) {
		logging.FromContext(ctx).Warn(ctx, "release catalog fetch failed, retrying", "err", err, "in", d)
	}
	if err := backoff.RetryNotify(operation, c.newBackOff(ctx), notify); err != nil {
		return nil, err
	}
	return chartsOf(body.Releases), nil
}

func (c *Catalog) fetch(ctx context.Context, out *releasesEnvelope) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("tempus: build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "OAuth "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return &model.UpstreamError{Kind: model.UpstreamTransport, Op: "Charts", Method: http.MethodGet, Path: c.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		uerr := &model.UpstreamError{Kind: model.UpstreamFetch, Op: "Charts", Method: http.MethodGet, Path: c.url, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(b))}
		if resp.StatusCode >= 500 {
			return uerr
		}
		return backoff.Permanent(uerr)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return backoff.Permanent(&model.UpstreamError{Kind: model.UpstreamParse, Op: "Charts", Method: http.MethodGet, Path: c.url, Err: err})
	}
	return nil
}

// chartsOf keeps the chart artifact of each release, in catalog order.
func chartsOf(releases []release) []model.Chart {
	out := []model.Chart{}
	for _, r := range releases {
		for _, a := range r.Artifacts {
			if a.Type == ArtifactTypeChart && a.Location != "" {
				out = append(out, model.Chart{Version: r.Version, Location: a.Location})
			}
		}
	}
	return out
}

var _ model.ChartCatalogPort = (*Catalog)(nil)

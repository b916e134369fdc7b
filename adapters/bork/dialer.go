package bork

import (
	"net/http"
	"time"

	"github.com/platform9/pcdmanager/domain/model"
)

// CallObserver receives one callback per completed remote call. status is 0 on transport errors.
type CallObserver func(env, method string, status int, elapsed time.Duration)

// Dialer builds per-environment clients sharing one http.Client.
type Dialer struct {
	HTTPClient *http.Client
	Observer   CallObserver
}

// NewDialer returns a Dialer with the given per-request timeout. Zero disables the timeout.
func NewDialer(timeout time.Duration) *Dialer {
	return &Dialer{HTTPClient: &http.Client{Timeout: timeout}}
}

// Dial binds a client to env. An empty token sends unauthenticated requests.
func (d *Dialer) Dial(env *model.Environment, token string) model.ControlPlane {
	hc := d.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{base: env.APIBase(), token: token, http: hc, envID: env.ID, onCall: d.Observer}
}

var _ model.ControlPlaneDialer = (*Dialer)(nil)

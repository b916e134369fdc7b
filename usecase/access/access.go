// Package access resolves an environment, its credential and a bound control
// plane client for the workflow use cases.
package access

import (
	"context"
	"errors"
	"strings"

	"github.com/platform9/pcdmanager/domain"
	"github.com/platform9/pcdmanager/domain/model"
	"github.com/platform9/pcdmanager/internal/logging"
	"github.com/platform9/pcdmanager/internal/naming"
)

// Credential selects the token policy of a connection.
type Credential int

const (
	// CredentialOptional uses the stored token when one exists and falls back to anonymous calls.
	CredentialOptional Credential = iota
	// CredentialSupplied forwards the caller token only, possibly empty.
	CredentialSupplied
	// CredentialRequired uses the caller token or the stored one and applies the production gate.
	CredentialRequired
)

// Request describes one connection.
type Request struct {
	Environment string
	Token       string
	Credential  Credential
	// System marks calls made by the service itself, which bypass the production gate.
	System bool
}

// Resolver connects use cases to the control plane.
type Resolver struct {
	Environments domain.EnvironmentRepository
	Credentials  model.CredentialPort
	Dialer       model.ControlPlaneDialer
}

// Environment looks up an environment by id.
func (r *Resolver) Environment(ctx context.Context, id string) (*model.Environment, error) {
	if strings.TrimSpace(id) == "" {
		return nil, model.Invalidf("environment is required")
	}
	return r.Environments.Get(ctx, id)
}

// Connect resolves the environment and returns a client bound to the selected token.
func (r *Resolver) Connect(ctx context.Context, req Request) (*model.Environment, model.ControlPlane, error) {
	env, err := r.Environment(ctx, req.Environment)
	if err != nil {
		return nil, nil, err
	}
	var token string
	switch req.Credential {
	case CredentialSupplied:
		token = req.Token
	case CredentialOptional:
		token, err = r.Credentials.Token(ctx, env, req.Token)
		if errors.Is(err, model.ErrCredentialNotFound) {
			logging.FromContext(ctx).Debug(ctx, "no stored credential, calling anonymously", "env", env.ID)
			token, err = "", nil
		}
		if err != nil {
			return nil, nil, err
		}
	case CredentialRequired:
		if env.IsProduction() && req.Token == "" && !req.System {
			return nil, nil, model.ErrProductionTokenRequired
		}
		token, err = r.Credentials.Token(ctx, env, req.Token)
		if err != nil {
			return nil, nil, err
		}
	}
	return env, r.Dialer.Dial(env, token), nil
}

// Target identifies a region by FQDN, by namespace, or by customer and region name,
// in that order of precedence.
type Target struct {
	FQDN       string
	Namespace  string
	ShortName  string
	RegionName string
}

// Resolve returns the FQDN of t within env.
func (t Target) Resolve(env *model.Environment) (string, error) {
	fqdn := strings.TrimSpace(t.FQDN)
	if fqdn == "" {
		if ns := strings.TrimSpace(t.Namespace); ns != "" {
			fqdn = ns + env.Domain
		}
	}
	if fqdn != "" {
		if err := naming.ValidateFQDN(fqdn); err != nil {
			return "", err
		}
		return fqdn, nil
	}
	return naming.RegionDomain(strings.TrimSpace(t.ShortName), strings.TrimSpace(t.RegionName), env.Domain)
}

package region

import (
	"context"
	"strings"

	"github.com/platform9/pcdmanager/domain/model"
	"github.com/platform9/pcdmanager/usecase/access"
	"github.com/platform9/pcdmanager/usecase/operation"
)

// ReadyState is the task state written by ResetState.
const ReadyState = "ready"

// ResetStateInput selects the region whose task state is cleared.
// Namespace is the region host label; FQDN takes precedence when both are set.
type ResetStateInput struct {
	Environment string `json:"env"`
	Namespace   string `json:"namespace,omitempty"`
	FQDN        string `json:"fqdn,omitempty"`
	Token       string `json:"token,omitempty"`
	Actor       string `json:"userEmail,omitempty"`
}

// ResetStateOutput confirms the reset.
type ResetStateOutput struct {
	FQDN    string `json:"fqdn"`
	Message string `json:"message"`
}

// ResetState forces the region task state back to "ready".
func (u *UseCase) ResetState(ctx context.Context, in *ResetStateInput) (_ *ResetStateOutput, err error) {
	if in == nil || (strings.TrimSpace(in.Namespace) == "" && strings.TrimSpace(in.FQDN) == "") {
		return nil, model.Invalidf("namespace or fqdn is required")
	}
	env, cp, err := u.Access.Connect(ctx, access.Request{
		Environment: in.Environment,
		Token:       in.Token,
		Credential:  access.CredentialOptional,
	})
	if err != nil {
		return nil, err
	}
	fqdn, err := access.Target{FQDN: in.FQDN, Namespace: in.Namespace}.Resolve(env)
	if err != nil {
		return nil, err
	}

	entry := u.Journal.Begin(ctx, operation.BeginInput{Kind: model.OpResetState, Environment: env.ID, FQDN: fqdn, Actor: in.Actor})
	defer func() { entry.Finish(ctx, err) }()

	if err := cp.SetRegionState(ctx, fqdn, ReadyState); err != nil {
		return nil, model.Stage(StageStateReset, err)
	}
	u.invalidate(env.ID)
	return &ResetStateOutput{FQDN: fqdn, Message: "Region state reset to 'ready'"}, nil
}

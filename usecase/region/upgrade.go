package region

import (
	"context"
	"strings"

	"github.com/platform9/pcdmanager/domain/model"
	"github.com/platform9/pcdmanager/internal/logging"
	"github.com/platform9/pcdmanager/usecase/access"
	"github.com/platform9/pcdmanager/usecase/operation"
)

// UpgradeInput moves a region to another chart.
type UpgradeInput struct {
	Environment         string `json:"environment"`
	FQDN                string `json:"fqdn,omitempty"`
	Namespace           string `json:"namespace,omitempty"`
	ShortName           string `json:"shortName,omitempty"`
	RegionName          string `json:"regionName,omitempty"`
	ChartURL            string `json:"charturl"`
	UseDUSpecificLECert bool   `json:"use_du_specific_le_http_cert"`
	Token               string `json:"token,omitempty"`
	Actor               string `json:"userEmail,omitempty"`
}

// UpgradeOutput reports the upgraded region.
type UpgradeOutput struct {
	FQDN    string `json:"fqdn"`
	Message string `json:"message"`
}

// Upgrade redeploys a region in place with a new chart. Password and database
// backend are left untouched. Remote failures carry status and body verbatim.
func (u *UseCase) Upgrade(ctx context.Context, in *UpgradeInput) (_ *UpgradeOutput, err error) {
	if in == nil {
		return nil, model.Invalidf("input is required")
	}
	if strings.TrimSpace(in.ChartURL) == "" {
		return nil, model.Invalidf("chart url is required")
	}
	env, cp, err := u.Access.Connect(ctx, access.Request{
		Environment: in.Environment,
		Token:       in.Token,
		Credential:  access.CredentialRequired,
	})
	if err != nil {
		return nil, err
	}
	fqdn, err := access.Target{FQDN: in.FQDN, Namespace: in.Namespace, ShortName: in.ShortName, RegionName: in.RegionName}.Resolve(env)
	if err != nil {
		return nil, err
	}

	ctx, end := logging.Span(ctx, "UC", "region.Upgrade", "env", env.ID, "fqdn", fqdn)
	entry := u.Journal.Begin(ctx, operation.BeginInput{Kind: model.OpUpgrade, Environment: env.ID, FQDN: fqdn, Actor: in.Actor})
	defer func() {
		entry.Finish(ctx, err)
		end(err)
	}()

	if err := cp.UpgradeRegion(ctx, fqdn, model.UpgradeSpec{ChartURL: in.ChartURL, UseDUSpecificLECert: in.UseDUSpecificLECert}); err != nil {
		return nil, model.Stage(StageUpgrade, err)
	}
	u.invalidate(env.ID)
	return &UpgradeOutput{FQDN: fqdn, Message: "Region " + fqdn + " upgrade started"}, nil
}

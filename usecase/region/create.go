package region

import (
	"context"
	"strings"

	"github.com/platform9/pcdmanager/domain/model"
	"github.com/platform9/pcdmanager/internal/logging"
	"github.com/platform9/pcdmanager/internal/naming"
	"github.com/platform9/pcdmanager/usecase/access"
	"github.com/platform9/pcdmanager/usecase/metadata"
	"github.com/platform9/pcdmanager/usecase/operation"
)

// DeployInput carries the fields shared by Create and AddRegion.
type DeployInput struct {
	Environment         string   `json:"environment"`
	ShortName           string   `json:"shortName"`
	AdminEmail          string   `json:"adminEmail"`
	AdminPassword       string   `json:"adminPassword"`
	DBBackend           string   `json:"dbBackend"`
	ChartURL            string   `json:"charturl"`
	UseDUSpecificLECert bool     `json:"use_du_specific_le_http_cert"`
	LeaseDate           string   `json:"leaseDate"`
	Tags                []string `json:"tags,omitempty"`
	// Owner is the caller identity recorded as the region owner.
	Owner string `json:"userEmail"`
	// Token is the caller-supplied bearer token. Required on production.
	Token string `json:"token,omitempty"`
}

func (in *DeployInput) validate() error {
	if strings.TrimSpace(in.Environment) == "" {
		return model.Invalidf("environment is required")
	}
	if err := naming.ValidateShortName(in.ShortName); err != nil {
		return err
	}
	switch {
	case in.AdminPassword == "":
		return model.Invalidf("admin password is required")
	case strings.TrimSpace(in.DBBackend) == "":
		return model.Invalidf("database backend is required")
	case strings.TrimSpace(in.ChartURL) == "":
		return model.Invalidf("chart url is required")
	case strings.TrimSpace(in.Owner) == "":
		return model.Invalidf("owner identity is required")
	}
	if err := metadata.ValidateLeaseDate(in.LeaseDate); err != nil {
		return err
	}
	for _, t := range in.Tags {
		if strings.TrimSpace(t) == "" {
			continue
		}
		if err := naming.ValidateTag(t); err != nil {
			return err
		}
	}
	return nil
}

// CreateInput creates a customer with its Infra region.
type CreateInput struct {
	DeployInput
}

// CreateOutput reports the deployed region.
type CreateOutput struct {
	FQDN    string `json:"fqdn"`
	Message string `json:"message"`
}

// Create registers a new customer, creates and deploys its Infra region and
// attaches the initial metadata. Each stage aborts the workflow on failure and
// earlier stages are not rolled back.
func (u *UseCase) Create(ctx context.Context, in *CreateInput) (*CreateOutput, error) {
	if in == nil {
		return nil, model.Invalidf("input is required")
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.AdminEmail) == "" {
		return nil, model.Invalidf("admin email is required")
	}
	return u.deploy(ctx, model.OpCreate, &in.DeployInput, model.InfraRegionName, true)
}

// AddRegionInput adds a non-Infra region to an existing customer.
type AddRegionInput struct {
	DeployInput
	RegionName string `json:"regionName"`
}

// AddRegion creates and deploys an additional region for an existing customer.
// The deployment parameters are taken as supplied by the caller.
func (u *UseCase) AddRegion(ctx context.Context, in *AddRegionInput) (*CreateOutput, error) {
	if in == nil {
		return nil, model.Invalidf("input is required")
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := naming.ValidateRegionName(in.ShortName, in.RegionName); err != nil {
		return nil, err
	}
	return u.deploy(ctx, model.OpAddRegion, &in.DeployInput, strings.TrimSpace(in.RegionName), false)
}

func (u *UseCase) deploy(ctx context.Context, kind model.OperationKind, in *DeployInput, regionName string, withCustomer bool) (_ *CreateOutput, err error) {
	env, cp, err := u.Access.Connect(ctx, access.Request{
		Environment: in.Environment,
		Token:       in.Token,
		Credential:  access.CredentialRequired,
	})
	if err != nil {
		return nil, err
	}
	shortName := strings.TrimSpace(in.ShortName)
	fqdn, err := naming.RegionDomain(shortName, regionName, env.Domain)
	if err != nil {
		return nil, err
	}

	ctx, end := logging.Span(ctx, "UC", "region."+string(kind), "env", env.ID, "fqdn", fqdn)
	entry := u.Journal.Begin(ctx, operation.BeginInput{Kind: kind, Environment: env.ID, FQDN: fqdn, Actor: in.Owner})
	defer func() {
		entry.Finish(ctx, err)
		end(err)
	}()

	if withCustomer {
		if err := cp.CreateCustomer(ctx, model.Customer{ShortName: shortName, AdminEmail: in.AdminEmail}); err != nil {
			return nil, model.Stage(StageCustomerCreation, err)
		}
	}
	if err := cp.CreateRegion(ctx, fqdn, shortName); err != nil {
		return nil, model.Stage(StageRegionCreation, err)
	}
	// Region shells exist from here on; refresh listings even if a later stage fails.
	u.invalidate(env.ID)

	spec := model.DeploySpec{
		AdminPassword:       in.AdminPassword,
		AIM:                 model.DefaultAIM,
		DBBackend:           in.DBBackend,
		RegionName:          regionName,
		MultiRegion:         true,
		ChartURL:            in.ChartURL,
		UseDUSpecificLECert: in.UseDUSpecificLECert,
	}
	if err := cp.DeployRegion(ctx, fqdn, spec); err != nil {
		return nil, model.Stage(StageDeployment, err)
	}
	md := metadata.InitialMetadata(in.Owner, in.LeaseDate, in.Tags, in.UseDUSpecificLECert)
	if err := cp.SetMetadata(ctx, fqdn, md); err != nil {
		return nil, model.Stage(StageMetadata, err)
	}

	return &CreateOutput{FQDN: fqdn, Message: regionName + " region created and deployed successfully"}, nil
}

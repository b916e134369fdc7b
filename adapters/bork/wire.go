package bork

import "github.com/platform9/pcdmanager/domain/model"

// Wire shapes of the control-plane API.

type listEnvelope[T any] struct {
	Items []T `json:"items"`
}

type regionItem struct {
	FQDN              string         `json:"fqdn"`
	Namespace         string         `json:"namespace"`
	CustomerShortName string         `json:"customer_shortname"`
	RegionName        string         `json:"region_name"`
	Cluster           string         `json:"cluster"`
	DBBackend         string         `json:"dbbackend"`
	TaskState         string         `json:"task_state"`
	DeployedAt        string         `json:"deployed_at"`
	Options           regionOptions  `json:"options"`
	Metadata          model.Metadata `json:"metadata"`
}

type regionOptions struct {
	ChartURL string `json:"chart_url"`
}

func (it *regionItem) toModel() *model.Region {
	return &model.Region{
		FQDN:              it.FQDN,
		Namespace:         it.Namespace,
		CustomerShortName: it.CustomerShortName,
		RegionName:        it.RegionName,
		ChartURL:          it.Options.ChartURL,
		Cluster:           it.Cluster,
		DBBackend:         it.DBBackend,
		TaskState:         it.TaskState,
		DeployedAt:        it.DeployedAt,
		Metadata:          it.Metadata,
	}
}

type customerBody struct {
	AdminEmail string `json:"admin_email"`
	AIM        string `json:"aim"`
}

type createRegionBody struct {
	Customer string `json:"customer"`
}

type deployOptions struct {
	MultiRegion    string `json:"multi_region"`
	SkipComponents string `json:"skip_components"`
	ChartURL       string `json:"chart_url"`
}

type deployBody struct {
	AdminPassword       string        `json:"admin_password"`
	AIM                 string        `json:"aim"`
	DBBackend           string        `json:"dbbackend"`
	RegionName          string        `json:"regionname"`
	Options             deployOptions `json:"options"`
	UseDUSpecificLECert *bool         `json:"use_du_specific_le_http_cert,omitempty"`
}

type upgradeOptions struct {
	ChartURL string `json:"chart_url"`
}

type upgradeBody struct {
	Options             upgradeOptions `json:"options"`
	UseDUSpecificLECert *bool          `json:"use_du_specific_le_http_cert,omitempty"`
}

type stateBody struct {
	State string `json:"state"`
}

type metadataEnvelope struct {
	Details struct {
		Metadata model.Metadata `json:"metadata"`
	} `json:"details"`
}

type metadataBody struct {
	Metadata model.Metadata `json:"metadata"`
}

type clusterItem struct {
	FQDN      string `json:"fqdn"`
	Accepting bool   `json:"accepting"`
}

// trueOrOmit renders an optional flag that the API expects only when set.
func trueOrOmit(b bool) *bool {
	if !b {
		return nil
	}
	return &b
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

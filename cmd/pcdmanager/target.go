package main

import (
	"github.com/spf13/cobra"

	"github.com/platform9/pcdmanager/usecase/metadata"
)

// targetFlags address one region within an environment.
type targetFlags struct {
	env        string
	fqdn       string
	namespace  string
	shortName  string
	regionName string
	token      string
}

func (t *targetFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&t.env, "env", "", "Environment id (required)")
	f.StringVar(&t.fqdn, "fqdn", "", "Region FQDN")
	f.StringVar(&t.namespace, "namespace", "", "Region namespace, the FQDN without the environment domain")
	f.StringVar(&t.shortName, "short-name", "", "Customer short name, combined with --region-name")
	f.StringVar(&t.regionName, "region-name", "", "Region name, Infra when empty")
	f.StringVar(&t.token, "token", "", "Control-plane token, the environment secret file when empty")
	_ = cmd.MarkFlagRequired("env")
}

func (t *targetFlags) ref(actor string) metadata.RegionRef {
	return metadata.RegionRef{
		Environment: t.env,
		FQDN:        t.fqdn,
		Namespace:   t.namespace,
		ShortName:   t.shortName,
		RegionName:  t.regionName,
		Token:       t.token,
		Actor:       actor,
	}
}

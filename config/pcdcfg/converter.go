package pcdcfg

import (
	"path/filepath"

	"github.com/platform9/pcdmanager/domain/model"
)

// ToModels converts the environment table into domain environments.
func (r *Root) ToModels() []*model.Environment {
	out := make([]*model.Environment, 0, len(r.Environments))
	for _, e := range r.Environments {
		path := e.TokenFile
		if path == "" {
			path = CredentialPath(r.SecretsDir, e.ID)
		}
		out = append(out, &model.Environment{
			ID:             e.ID,
			Label:          e.Label,
			BorkURL:        e.BorkURL,
			Domain:         e.Domain,
			CredentialPath: path,
			Class:          model.EnvironmentClass(e.Class),
			TempusURL:      e.TempusURL,
			SlackChannel:   e.SlackChannel,
			Teardown:       model.Teardown(e.Teardown),
		})
	}
	return out
}

// CredentialPath returns the secret file path convention <dir>/<envID>-bork-token.
func CredentialPath(dir, envID string) string {
	return filepath.Join(dir, envID+"-bork-token")
}

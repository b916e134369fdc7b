// Package credential resolves control-plane bearer tokens from mounted secret files.
package credential

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/platform9/pcdmanager/domain/model"
	"github.com/platform9/pcdmanager/internal/logging"
)

// FileResolver reads <env>-bork-token style secret files.
type FileResolver struct {
	readFile func(string) ([]byte, error)
}

// NewFileResolver returns a resolver reading from the local filesystem.
func NewFileResolver() *FileResolver {
	return &FileResolver{readFile: os.ReadFile}
}

// Token returns supplied when non-empty, otherwise the trimmed content of the
// environment's credential file. A missing or empty file yields ErrCredentialNotFound.
func (r *FileResolver) Token(ctx context.Context, env *model.Environment, supplied string) (string, error) {
	if supplied != "" {
		return supplied, nil
	}
	if env.CredentialPath == "" {
		return "", fmt.Errorf("%w: no credential path for %s", model.ErrCredentialNotFound, env.ID)
	}
	data, err := r.readFile(env.CredentialPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.FromContext(ctx).Warn(ctx, "credential file missing", "env", env.ID, "path", env.CredentialPath)
			return "", fmt.Errorf("%w: %s", model.ErrCredentialNotFound, env.ID)
		}
		return "", fmt.Errorf("read credential for %s: %w", env.ID, err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("%w: %s is empty", model.ErrCredentialNotFound, env.CredentialPath)
	}
	return token, nil
}

var _ model.CredentialPort = (*FileResolver)(nil)

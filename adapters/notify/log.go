package notify

import (
	"context"

	"github.com/platform9/pcdmanager/domain/model"
	"github.com/platform9/pcdmanager/internal/logging"
)

// Log writes expiry warnings to the context logger. Used when no Slack token is configured.
type Log struct{}

func (Log) NotifyExpiring(ctx context.Context, env *model.Environment, days int, regions []model.ExpiringRegion) error {
	ctx, end := logging.Span(ctx, "NOTIFY", "NotifyExpiring", "env", env.ID, "days", days)
	logger := logging.FromContext(ctx)
	for _, r := range regions {
		logger.Warn(ctx, "region lease expiring", "fqdn", r.FQDN, "owner", r.Owner, "leaseDate", r.LeaseDate)
	}
	end(nil)
	return nil
}

var _ model.NotifierPort = Log{}

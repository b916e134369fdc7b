// Package notify delivers expiry warnings to region owners.
package notify

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/slack-go/slack"

	"github.com/platform9/pcdmanager/domain/model"
	"github.com/platform9/pcdmanager/internal/logging"
)

// SlackAPI is the subset of the Slack Web API used by the sink.
type SlackAPI interface {
	GetUserByEmailContext(ctx context.Context, email string) (*slack.User, error)
	UploadFileV2Context(ctx context.Context, params slack.UploadFileV2Parameters) (*slack.FileSummary, error)
}

// Slack posts one CSV attachment per batch, mentioning every owner.
type Slack struct {
	api            SlackAPI
	defaultChannel string
}

// NewSlack returns a sink posting through api. Batches go to the environment's
// channel when set, otherwise to defaultChannel.
func NewSlack(api SlackAPI, defaultChannel string) *Slack {
	return &Slack{api: api, defaultChannel: defaultChannel}
}

// NewSlackWithToken builds the Web API client from a bot token.
func NewSlackWithToken(token, defaultChannel string, opts ...slack.Option) *Slack {
	return NewSlack(slack.New(token, opts...), defaultChannel)
}

// NotifyExpiring implements model.NotifierPort.
func (s *Slack) NotifyExpiring(ctx context.Context, env *model.Environment, days int, regions []model.ExpiringRegion) (err error) {
	if len(regions) == 0 {
		return nil
	}
	channel := s.defaultChannel
	if env.SlackChannel != "" {
		channel = env.SlackChannel
	}
	if channel == "" {
		return fmt.Errorf("slack: no channel configured for %s", env.ID)
	}
	ctx, end := logging.Span(ctx, "SLACK", "NotifyExpiring", "env", env.ID, "days", days, "regions", len(regions))
	defer func() { end(err) }()

	body, err := ExpiringCSV(regions)
	if err != nil {
		return err
	}
	_, err = s.api.UploadFileV2Context(ctx, slack.UploadFileV2Parameters{
		Reader:         bytes.NewReader(body),
		FileSize:       len(body),
		Filename:       fmt.Sprintf("%s_expiring_regions.csv", env.ID),
		Title:          fmt.Sprintf("Regions expiring in %d day(s)", days),
		AltTxt:         "Expiring region list",
		Channel:        channel,
		InitialComment: fmt.Sprintf("%s\n\n*PCD `%s` Regions expiring in %d day(s) 🚨*", s.mentions(ctx, regions), env.ID, days),
	})
	if err != nil {
		return fmt.Errorf("slack: upload to %s: %w", channel, err)
	}
	return nil
}

// mentions resolves each distinct owner to a user mention, falling back to the raw email.
func (s *Slack) mentions(ctx context.Context, regions []model.ExpiringRegion) string {
	seen := map[string]bool{}
	var out []string
	for _, r := range regions {
		m := r.Owner
		if u, err := s.api.GetUserByEmailContext(ctx, r.Owner); err == nil && u != nil && u.ID != "" {
			m = "<@" + u.ID + ">"
		} else if err != nil {
			logging.FromContext(ctx).Debug(ctx, "slack user lookup failed", "owner", r.Owner, "err", err)
		}
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return strings.Join(out, " ")
}

// ExpiringCSV renders a batch with the header FQDN,Owner Email,Lease Date.
func ExpiringCSV(regions []model.ExpiringRegion) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"FQDN", "Owner Email", "Lease Date"}); err != nil {
		return nil, err
	}
	for _, r := range regions {
		if err := w.Write([]string{r.FQDN, r.Owner, r.LeaseDate}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

var _ model.NotifierPort = (*Slack)(nil)

package notify

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/slack-go/slack"

	"github.com/platform9/pcdmanager/domain/model"
	"github.com/platform9/pcdmanager/internal/logging"
)

// mockSlackAPI is a mock implementation for testing.
type mockSlackAPI struct {
	users     map[string]string
	uploadErr error
	uploads   []slack.UploadFileV2Parameters
	contents  []string
}

func (m *mockSlackAPI) GetUserByEmailContext(_ context.Context, email string) (*slack.User, error) {
	id, ok := m.users[email]
	if !ok {
		return nil, errors.New("users_not_found")
	}
	return &slack.User{ID: id}, nil
}

func (m *mockSlackAPI) UploadFileV2Context(_ context.Context, params slack.UploadFileV2Parameters) (*slack.FileSummary, error) {
	m.uploads = append(m.uploads, params)
	b, _ := io.ReadAll(params.Reader)
	m.contents = append(m.contents, string(b))
	if m.uploadErr != nil {
		return nil, m.uploadErr
	}
	return &slack.FileSummary{ID: "F1"}, nil
}

var batch = []model.ExpiringRegion{
	{FQDN: "acme.app.qa-pcd.platform9.com", Owner: "alice@platform9.com", LeaseDate: "2025-06-15"},
	{FQDN: "acme-east.app.qa-pcd.platform9.com", Owner: "alice@platform9.com", LeaseDate: "2025-06-15"},
	{FQDN: "zed.app.qa-pcd.platform9.com", Owner: "ghost@platform9.com", LeaseDate: "2025-06-15"},
}

func TestSlack_NotifyExpiring(t *testing.T) {
	api := &mockSlackAPI{users: map[string]string{"alice@platform9.com": "U123"}}
	s := NewSlack(api, "C0935NGUC6B")

	err := s.NotifyExpiring(context.Background(), &model.Environment{ID: "us-qa"}, 5, batch)
	if err != nil {
		t.Fatalf("NotifyExpiring() error = %v", err)
	}
	if len(api.uploads) != 1 {
		t.Fatalf("expected one upload, got %d", len(api.uploads))
	}
	up := api.uploads[0]
	if up.Channel != "C0935NGUC6B" || up.Filename != "us-qa_expiring_regions.csv" || up.Title != "Regions expiring in 5 day(s)" {
		t.Errorf("unexpected upload parameters %+v", up)
	}
	wantComment := "<@U123> ghost@platform9.com\n\n*PCD `us-qa` Regions expiring in 5 day(s) 🚨*"
	if up.InitialComment != wantComment {
		t.Errorf("InitialComment = %q, want %q", up.InitialComment, wantComment)
	}
	if up.FileSize != len(api.contents[0]) {
		t.Errorf("FileSize = %d, content is %d bytes", up.FileSize, len(api.contents[0]))
	}
	lines := strings.Split(strings.TrimSpace(api.contents[0]), "\n")
	want := []string{
		"FQDN,Owner Email,Lease Date",
		"acme.app.qa-pcd.platform9.com,alice@platform9.com,2025-06-15",
		"acme-east.app.qa-pcd.platform9.com,alice@platform9.com,2025-06-15",
		"zed.app.qa-pcd.platform9.com,ghost@platform9.com,2025-06-15",
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("csv mismatch (-want +got):\n%s", diff)
	}
}

func TestSlack_Channels(t *testing.T) {
	api := &mockSlackAPI{}
	if err := NewSlack(api, "CDEFAULT").NotifyExpiring(context.Background(), &model.Environment{ID: "us-dev", SlackChannel: "CENV"}, 1, batch[:1]); err != nil {
		t.Fatal(err)
	}
	if api.uploads[0].Channel != "CENV" {
		t.Errorf("environment channel should win, got %q", api.uploads[0].Channel)
	}

	if err := NewSlack(api, "").NotifyExpiring(context.Background(), &model.Environment{ID: "us-dev"}, 1, batch[:1]); err == nil {
		t.Error("expected error without any channel")
	}
	if err := NewSlack(api, "C").NotifyExpiring(context.Background(), &model.Environment{ID: "us-dev"}, 1, nil); err != nil {
		t.Errorf("empty batch should be a no-op, got %v", err)
	}
	if len(api.uploads) != 1 {
		t.Errorf("expected no further uploads, got %d", len(api.uploads))
	}
}

func TestSlack_UploadError(t *testing.T) {
	api := &mockSlackAPI{uploadErr: errors.New("not_in_channel")}
	err := NewSlack(api, "C1").NotifyExpiring(context.Background(), &model.Environment{ID: "us-dev"}, 1, batch)
	if err == nil || !strings.Contains(err.Error(), "not_in_channel") {
		t.Errorf("expected upload error, got %v", err)
	}
}

func TestExpiringCSV_Quoting(t *testing.T) {
	out, err := ExpiringCSV([]model.ExpiringRegion{{FQDN: "a.example.com", Owner: "Doe, Jane", LeaseDate: "2025-01-01"}})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), `a.example.com,"Doe, Jane",2025-01-01`) {
		t.Errorf("owner with comma should be quoted:\n%s", out)
	}
}

func TestLog_NotifyExpiring(t *testing.T) {
	var buf bytes.Buffer
	l, err := logging.NewWithWriter("text", slog.LevelInfo, &buf)
	if err != nil {
		t.Fatal(err)
	}
	ctx := logging.WithLogger(context.Background(), l)
	if err := (Log{}).NotifyExpiring(ctx, &model.Environment{ID: "us-dev"}, 5, batch); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(buf.String(), "region lease expiring"); got != len(batch) {
		t.Errorf("expected %d log lines, got %d:\n%s", len(batch), got, buf.String())
	}
}

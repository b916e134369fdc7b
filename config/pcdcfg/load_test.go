package pcdcfg

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/platform9/pcdmanager/domain/model"
)

func TestLoad_Success(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pcdmanager.yml")

	content := `
version: v1
secretsDir: /etc/pcd
environments:
  - id: lab
    label: Lab
    borkURL: https://bork.lab.example.com
    domain: .lab.example.com
    class: dev
  - id: lab-prod
    label: Lab Prod
    borkURL: https://bork.prod.example.com/
    domain: .prod.example.com
    class: prod
    teardown: delete
    tokenFile: /tmp/prod-token
server:
  listen: 127.0.0.1:9090
  allowedOrigins: ["https://ui.example.com"]
store:
  url: sqlite:/var/lib/pcd/ops.db
cache:
  listingTTL: 30s
sweep:
  schedule: "0 6 * * *"
  environments: [lab]
  windows: [7, 1]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp yaml: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Listen != "127.0.0.1:9090" {
		t.Errorf("expected listen 127.0.0.1:9090, got %s", cfg.Server.Listen)
	}
	if cfg.Cache.ListingTTL != 30*time.Second {
		t.Errorf("expected listing ttl 30s, got %v", cfg.Cache.ListingTTL)
	}
	if cfg.Cache.ChartsTTL != DefaultChartsTTL {
		t.Errorf("expected default charts ttl, got %v", cfg.Cache.ChartsTTL)
	}
	if cfg.Sweep.BurnTimeout != DefaultBurnTimeout {
		t.Errorf("expected default burn timeout, got %v", cfg.Sweep.BurnTimeout)
	}
	if cfg.Environments[0].Teardown != "burn" {
		t.Errorf("expected default teardown burn, got %s", cfg.Environments[0].Teardown)
	}

	envs := cfg.ToModels()
	if len(envs) != 2 {
		t.Fatalf("expected 2 environments, got %d", len(envs))
	}
	if envs[0].CredentialPath != "/etc/pcd/lab-bork-token" {
		t.Errorf("unexpected credential path %q", envs[0].CredentialPath)
	}
	if envs[1].CredentialPath != "/tmp/prod-token" {
		t.Errorf("unexpected token file override %q", envs[1].CredentialPath)
	}
	if !envs[1].IsProduction() || envs[1].Teardown != model.TeardownDelete {
		t.Errorf("unexpected prod environment %+v", envs[1])
	}
	if envs[1].APIBase() != "https://bork.prod.example.com/api/v1" {
		t.Errorf("unexpected api base %q", envs[1].APIBase())
	}
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(cfg.Environments) != 6 {
		t.Fatalf("expected 6 built-in environments, got %d", len(cfg.Environments))
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	prod := 0
	for _, e := range cfg.ToModels() {
		if e.IsProduction() {
			prod++
		}
	}
	if prod != 2 {
		t.Errorf("expected 2 production environments, got %d", prod)
	}
	if got := cfg.Sweep.Windows; len(got) != 2 || got[0] != 5 || got[1] != 1 {
		t.Errorf("unexpected default windows %v", got)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/pcdmanager.yml")
	if err == nil || !strings.Contains(err.Error(), "failed to read file") {
		t.Fatalf("expected read error, got %v", err)
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("environments: [")); err == nil {
		t.Fatal("expected unmarshal error")
	}
}

package pcdcfg

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/platform9/pcdmanager/domain/model"
	"github.com/robfig/cron/v3"
)

// Validate performs semantic validation on the configuration tree.
func (r *Root) Validate() error {
	if r.Version != "" && r.Version != "v1" {
		return fmt.Errorf("version: unsupported %q", r.Version)
	}
	seen := make(map[string]struct{}, len(r.Environments))
	for i, e := range r.Environments {
		if err := e.validate(); err != nil {
			return fmt.Errorf("environments[%d]: %w", i, err)
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("environments[%d].id: duplicate environment %q", i, e.ID)
		}
		seen[e.ID] = struct{}{}
	}
	if err := r.Sweep.validate(seen); err != nil {
		return fmt.Errorf("sweep: %w", err)
	}
	if !strings.HasPrefix(r.Store.URL, "memory:") && !strings.HasPrefix(r.Store.URL, "sqlite:") {
		return fmt.Errorf("store.url: unsupported scheme in %q", r.Store.URL)
	}
	return nil
}

func (e *Environment) validate() error {
	if e.ID == "" {
		return fmt.Errorf("id must not be empty")
	}
	u, err := url.Parse(e.BorkURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("borkURL: invalid URL %q", e.BorkURL)
	}
	if !strings.HasPrefix(e.Domain, ".") {
		return fmt.Errorf("domain: %q must start with a dot", e.Domain)
	}
	if !model.EnvironmentClass(e.Class).Valid() {
		return fmt.Errorf("class: invalid %q, must be dev, qa, stage or prod", e.Class)
	}
	switch model.Teardown(e.Teardown) {
	case model.TeardownBurn, model.TeardownDelete:
	default:
		return fmt.Errorf("teardown: invalid %q, must be %q or %q", e.Teardown, model.TeardownBurn, model.TeardownDelete)
	}
	return nil
}

func (s *Sweep) validate(envs map[string]struct{}) error {
	if s.Schedule != "" {
		if _, err := cron.ParseStandard(s.Schedule); err != nil {
			return fmt.Errorf("schedule: %w", err)
		}
	}
	for i, id := range s.Environments {
		if _, ok := envs[id]; !ok {
			return fmt.Errorf("environments[%d]: unknown environment %q", i, id)
		}
	}
	for i, w := range s.Windows {
		if w < 1 {
			return fmt.Errorf("windows[%d]: must be at least 1 day, got %d", i, w)
		}
	}
	if s.BurnTimeout < 0 {
		return fmt.Errorf("burnTimeout: must not be negative")
	}
	return nil
}

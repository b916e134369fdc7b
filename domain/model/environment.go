package model

import "strings"

// EnvironmentClass classifies an environment. Production gates extra confirmation.
type EnvironmentClass string

const (
	ClassDev   EnvironmentClass = "dev"
	ClassQA    EnvironmentClass = "qa"
	ClassStage EnvironmentClass = "stage"
	ClassProd  EnvironmentClass = "prod"
)

// Valid reports whether c is one of the known classes.
func (c EnvironmentClass) Valid() bool {
	switch c {
	case ClassDev, ClassQA, ClassStage, ClassProd:
		return true
	}
	return false
}

// Teardown selects how the control plane tears a region down on delete.
type Teardown string

const (
	// TeardownBurn issues the BURN verb with a bounded wait.
	TeardownBurn Teardown = "burn"
	// TeardownDelete issues a plain DELETE on the region record.
	TeardownDelete Teardown = "delete"
)

// Environment is one control-plane deployment (e.g. "us-dev", "us-prod").
// Environments are loaded at process start and never mutated.
type Environment struct {
	ID             string           `json:"id"`
	Label          string           `json:"label"`
	BorkURL        string           `json:"borkURL"`
	Domain         string           `json:"domain"` // FQDN suffix including the leading dot
	CredentialPath string           `json:"-"`
	Class          EnvironmentClass `json:"class"`
	TempusURL      string           `json:"tempusURL,omitempty"`
	SlackChannel   string           `json:"slackChannel,omitempty"`
	Teardown       Teardown         `json:"teardown"`
}

// APIBase returns the versioned API root of the control plane.
func (e *Environment) APIBase() string {
	return strings.TrimRight(e.BorkURL, "/") + "/api/v1"
}

// IsProduction reports whether the environment is production-classified.
func (e *Environment) IsProduction() bool {
	return e.Class == ClassProd
}

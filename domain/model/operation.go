package model

import "time"

// OperationKind names a journaled mutation.
type OperationKind string

const (
	OpCreate      OperationKind = "create"
	OpAddRegion   OperationKind = "add-region"
	OpUpgrade     OperationKind = "upgrade"
	OpDelete      OperationKind = "delete"
	OpResetState  OperationKind = "reset-state"
	OpAddTag      OperationKind = "add-tag"
	OpRemoveTag   OperationKind = "remove-tag"
	OpUpdateLease OperationKind = "update-lease"
	OpSetOwner    OperationKind = "set-owner"
)

// OperationStatus is the lifecycle of a journal entry.
type OperationStatus string

const (
	OperationRunning   OperationStatus = "running"
	OperationSucceeded OperationStatus = "succeeded"
	OperationFailed    OperationStatus = "failed"
)

// Operation is an audit record of one workflow invocation.
type Operation struct {
	ID          string          `json:"id"`
	Kind        OperationKind   `json:"kind"`
	Environment string          `json:"environment"`
	FQDN        string          `json:"fqdn"`
	Actor       string          `json:"actor"`
	Status      OperationStatus `json:"status"`
	Stage       string          `json:"stage,omitempty"` // failed stage, if any
	Message     string          `json:"message,omitempty"`
	StartedAt   time.Time       `json:"startedAt"`
	FinishedAt  *time.Time      `json:"finishedAt,omitempty"`
}

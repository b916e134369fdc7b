package rdb

import "time"

// OperationRecord is the RDB persistence model for domain Operation.
// Table name: operations
type OperationRecord struct {
	ID          string     `gorm:"primaryKey;type:text;not null"`
	Kind        string     `gorm:"type:text;not null"`
	Environment string     `gorm:"type:text;not null;index"`
	FQDN        string     `gorm:"type:text;index"`
	Actor       string     `gorm:"type:text;index"`
	Status      string     `gorm:"type:text;not null"`
	Stage       string     `gorm:"type:text"`
	Message     string     `gorm:"type:text"`
	StartedAt   time.Time  `gorm:"not null;index"`
	FinishedAt  *time.Time
}

func (OperationRecord) TableName() string { return "operations" }

package models

import "time"

// BatchRun is the audit record of one bulk create or delete invocation.
type BatchRun struct {
	ID            string `gorm:"type:uuid;primaryKey"`
	Kind          string `gorm:"type:text;not null"`
	Status        string `gorm:"type:text;not null"`
	TotalRecords  int    `gorm:"not null;default:0"`
	SuccessCount  int    `gorm:"not null;default:0"`
	FailureCount  int    `gorm:"not null;default:0"`
	ElapsedMillis int64  `gorm:"not null;default:0"`
	StartedAt     time.Time
	FinishedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (BatchRun) TableName() string {
	return "batch_runs"
}

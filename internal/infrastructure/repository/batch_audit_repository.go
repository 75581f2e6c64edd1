package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/gorm"

	app "github.com/campushub/user-gateway/internal/application/user"
	"github.com/campushub/user-gateway/internal/infrastructure/db/models"
)

// BatchAuditRepository persists the audit trail of bulk runs: the run row
// goes through GORM, the per-record failures are bulk-copied with pgx since
// a large batch can fail thousands of rows at once.
type BatchAuditRepository struct {
	db   *gorm.DB
	pool *pgxpool.Pool
}

func NewBatchAuditRepository(db *gorm.DB, pool *pgxpool.Pool) *BatchAuditRepository {
	return &BatchAuditRepository{db: db, pool: pool}
}

func (r *BatchAuditRepository) StartRun(ctx context.Context, kind string, total int) (string, error) {
	run := models.BatchRun{
		ID:           uuid.NewString(),
		Kind:         kind,
		Status:       "running",
		TotalRecords: total,
		StartedAt:    time.Now(),
	}

	if err := r.db.WithContext(ctx).Create(&run).Error; err != nil {
		return "", fmt.Errorf("create batch run: %w", err)
	}

	return run.ID, nil
}

func (r *BatchAuditRepository) CompleteRun(ctx context.Context, runID string, success, failure int, elapsedMillis int64) error {
	now := time.Now()
	updates := map[string]any{
		"status":         "completed",
		"success_count":  success,
		"failure_count":  failure,
		"elapsed_millis": elapsedMillis,
		"finished_at":    &now,
	}

	if err := r.db.WithContext(ctx).Model(&models.BatchRun{}).Where("id = ?", runID).Updates(updates).Error; err != nil {
		return fmt.Errorf("complete batch run: %w", err)
	}
	return nil
}

func (r *BatchAuditRepository) RecordFailures(ctx context.Context, runID string, failures []app.BatchFailure) error {
	if len(failures) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(failures))
	for _, f := range failures {
		rows = append(rows, []any{runID, f.Position, f.Identifier, f.UserID, f.Reason})
	}

	if _, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"batch_failures"},
		[]string{"run_id", "position", "identifier", "user_id", "reason"},
		pgx.CopyFromRows(rows),
	); err != nil {
		return fmt.Errorf("copy batch failures: %w", err)
	}

	return nil
}

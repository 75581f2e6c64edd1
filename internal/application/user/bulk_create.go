package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	domain "github.com/campushub/user-gateway/internal/domain/user"
)

// RecordSource yields the raw rows of one uploaded file. Close releases the
// backing resource (the temporary upload) and must be safe to call on every
// exit path.
type RecordSource interface {
	Records() ([]domain.Record, error)
	Close() error
}

// BatchFailure is one failed record as persisted to the audit trail.
type BatchFailure struct {
	Position   int
	Identifier string
	UserID     string
	Reason     string
}

type batchAuditor interface {
	StartRun(ctx context.Context, kind string, total int) (string, error)
	CompleteRun(ctx context.Context, runID string, success, failure int, elapsedMillis int64) error
	RecordFailures(ctx context.Context, runID string, failures []BatchFailure) error
}

type BulkCreateUsersInput struct {
	Source RecordSource
}

type BulkCreateUsers interface {
	Execute(ctx context.Context, in BulkCreateUsersInput) (domain.BulkCreateResult, error)
}

type bulkCreateUsers struct {
	directory domain.DirectoryClient
	audit     batchAuditor
	pacing    PacingPolicy
	log       *zap.Logger
}

// NewBulkCreateUsers builds the bulk-create batch executor. audit may be nil
// when no audit store is configured.
func NewBulkCreateUsers(directory domain.DirectoryClient, audit batchAuditor, pacing PacingPolicy, log *zap.Logger) BulkCreateUsers {
	if pacing.Every == 0 && pacing.Pause == 0 {
		pacing = DefaultPacing()
	}
	return &bulkCreateUsers{directory: directory, audit: audit, pacing: pacing, log: log}
}

// Execute processes the source rows strictly in order. A record that fails
// validation or is rejected by the directory is recorded and the loop moves
// on; only an unreadable source aborts the whole batch.
func (uc *bulkCreateUsers) Execute(ctx context.Context, in BulkCreateUsersInput) (domain.BulkCreateResult, error) {
	defer func() {
		if err := in.Source.Close(); err != nil {
			uc.log.Error("failed to release batch input", zap.Error(err))
		}
	}()

	start := time.Now()

	records, err := in.Source.Records()
	if err != nil {
		return domain.BulkCreateResult{}, fmt.Errorf("%w: %v", ErrBatchSetup, err)
	}

	result := domain.BulkCreateResult{
		TotalRecords: len(records),
		Errors:       []domain.RowError{},
	}

	runID := startAudit(ctx, uc.audit, uc.log, "create", len(records))
	uc.log.Info("processing bulk user creation", zap.Int("records", len(records)))

	for i, record := range records {
		if err := record.Validate(); err != nil {
			result.FailureCount++
			result.Errors = append(result.Errors, domain.RowError{
				Position: i,
				Email:    record.Identifier(),
				Reason:   err.Error(),
			})
			uc.pacing.pause(i)
			continue
		}

		if _, err := uc.directory.CreateUser(ctx, normalizeRecord(record)); err != nil {
			result.FailureCount++
			result.Errors = append(result.Errors, domain.RowError{
				Position: i,
				Email:    record.Email,
				Reason:   err.Error(),
			})
			uc.log.Error("failed to create user",
				zap.Int("position", i),
				zap.String("email", record.Email),
				zap.Error(err))
		} else {
			result.SuccessCount++
		}

		uc.pacing.pause(i)
	}

	result.ElapsedMillis = time.Since(start).Milliseconds()
	result.ElapsedFormatted = domain.FormatElapsed(result.ElapsedMillis)

	completeAudit(ctx, uc.audit, uc.log, runID, result.SuccessCount, result.FailureCount, result.ElapsedMillis, createFailures(result.Errors))
	uc.log.Info("bulk user creation completed",
		zap.Int("succeeded", result.SuccessCount),
		zap.Int("failed", result.FailureCount),
		zap.String("elapsed", result.ElapsedFormatted))

	return result, nil
}

// normalizeRecord trims the row fields and fills in a generated password
// when the row omits one.
func normalizeRecord(record domain.Record) domain.CreateUser {
	password := strings.TrimSpace(record.Password)
	if password == "" {
		password = GeneratePassword()
	}

	role, _ := domain.ParseRole(record.Role)

	return domain.CreateUser{
		Email:      strings.TrimSpace(record.Email),
		Password:   password,
		Role:       role,
		GivenName:  strings.TrimSpace(record.GivenName),
		FamilyName: strings.TrimSpace(record.FamilyName),
		Name:       strings.TrimSpace(record.Name),
	}
}

func createFailures(errs []domain.RowError) []BatchFailure {
	failures := make([]BatchFailure, 0, len(errs))
	for _, e := range errs {
		failures = append(failures, BatchFailure{
			Position:   e.Position,
			Identifier: e.Email,
			Reason:     e.Reason,
		})
	}
	return failures
}

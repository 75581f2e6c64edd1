package user

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	domain "github.com/campushub/user-gateway/internal/domain/user"
)

// listPageSize is how many users each directory listing call fetches while
// resolving deletion criteria. The directory cannot filter by role server
// side, so resolution always walks the full listing.
const listPageSize = 100

type BulkDeleteUsersInput struct {
	Criteria domain.DeleteCriteria
}

type BulkDeleteUsers interface {
	Execute(ctx context.Context, in BulkDeleteUsersInput) (domain.BulkDeleteResult, error)
}

type bulkDeleteUsers struct {
	directory domain.DirectoryClient
	audit     batchAuditor
	pacing    PacingPolicy
	pageSize  int
	log       *zap.Logger
}

func NewBulkDeleteUsers(directory domain.DirectoryClient, audit batchAuditor, pacing PacingPolicy, log *zap.Logger) BulkDeleteUsers {
	if pacing.Every == 0 && pacing.Pause == 0 {
		pacing = DefaultPacing()
	}
	return &bulkDeleteUsers{directory: directory, audit: audit, pacing: pacing, pageSize: listPageSize, log: log}
}

// Execute resolves the criterion to a concrete user set, then deletes the
// users one by one with the same pacing and continue-on-failure behavior as
// bulk creation. The safety gate runs before any directory call: "all"
// without confirmation and "role" without a recognized role never reach the
// resolver.
func (uc *bulkDeleteUsers) Execute(ctx context.Context, in BulkDeleteUsersInput) (domain.BulkDeleteResult, error) {
	criteria := in.Criteria
	switch criteria.Criteria {
	case domain.CriteriaAll:
		if !criteria.Confirm {
			return domain.BulkDeleteResult{}, ErrConfirmationRequired
		}
	case domain.CriteriaByRole:
		if _, ok := domain.ParseRole(string(criteria.Role)); !ok {
			return domain.BulkDeleteResult{}, ErrRoleRequired
		}
	default:
		return domain.BulkDeleteResult{}, fmt.Errorf("%w: criteria must be either %q or %q", ErrValidation, domain.CriteriaAll, domain.CriteriaByRole)
	}

	start := time.Now()

	targets, err := uc.resolve(ctx, criteria)
	if err != nil {
		return domain.BulkDeleteResult{}, fmt.Errorf("%w: %v", ErrBatchSetup, err)
	}

	result := domain.BulkDeleteResult{
		TotalUsers: len(targets),
		Failures:   []domain.DeleteFailure{},
	}

	runID := startAudit(ctx, uc.audit, uc.log, "delete", len(targets))
	uc.log.Info("processing bulk user deletion",
		zap.String("criteria", string(criteria.Criteria)),
		zap.Int("users", len(targets)))

	for i, target := range targets {
		if err := uc.directory.DeleteUser(ctx, target.ID); err != nil {
			result.FailedCount++
			result.Failures = append(result.Failures, domain.DeleteFailure{
				Email:  target.Email,
				UserID: target.ID,
				Reason: err.Error(),
			})
			uc.log.Error("failed to delete user",
				zap.String("email", target.Email),
				zap.String("user_id", target.ID),
				zap.Error(err))
		} else {
			result.DeletedCount++
		}

		uc.pacing.pause(i)
	}

	result.ElapsedMillis = time.Since(start).Milliseconds()
	result.ElapsedFormatted = domain.FormatElapsed(result.ElapsedMillis)

	completeAudit(ctx, uc.audit, uc.log, runID, result.DeletedCount, result.FailedCount, result.ElapsedMillis, deleteFailures(result.Failures))
	uc.log.Info("bulk user deletion completed",
		zap.Int("deleted", result.DeletedCount),
		zap.Int("failed", result.FailedCount),
		zap.String("elapsed", result.ElapsedFormatted))

	return result, nil
}

// resolve fetches the entire directory page by page until the reported total
// is accumulated, then filters by role when asked to. This is an eager full
// scan; the result set is held in memory for the duration of the batch only.
func (uc *bulkDeleteUsers) resolve(ctx context.Context, criteria domain.DeleteCriteria) ([]domain.DirectoryUser, error) {
	var all []domain.DirectoryUser

	for page := 0; ; page++ {
		users, total, err := uc.directory.ListUsers(ctx, page, uc.pageSize)
		if err != nil {
			return nil, fmt.Errorf("list users page %d: %w", page, err)
		}

		all = append(all, users...)
		if len(all) >= total || len(users) == 0 {
			break
		}
	}

	if criteria.Criteria != domain.CriteriaByRole {
		return all, nil
	}

	filtered := make([]domain.DirectoryUser, 0, len(all))
	for _, u := range all {
		if u.Role == criteria.Role {
			filtered = append(filtered, u)
		}
	}
	return filtered, nil
}

func deleteFailures(failures []domain.DeleteFailure) []BatchFailure {
	out := make([]BatchFailure, 0, len(failures))
	for _, f := range failures {
		out = append(out, BatchFailure{
			Identifier: f.Email,
			UserID:     f.UserID,
			Reason:     f.Reason,
		})
	}
	return out
}

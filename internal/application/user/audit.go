package user

import (
	"context"

	"go.uber.org/zap"
)

// The audit trail is best-effort relative to the batch itself: a failed
// write is logged and the batch result is returned regardless.

func startAudit(ctx context.Context, audit batchAuditor, log *zap.Logger, kind string, total int) string {
	if audit == nil {
		return ""
	}
	runID, err := audit.StartRun(ctx, kind, total)
	if err != nil {
		log.Error("failed to record batch run", zap.Error(err))
		return ""
	}
	return runID
}

func completeAudit(ctx context.Context, audit batchAuditor, log *zap.Logger, runID string, success, failure int, elapsedMillis int64, failures []BatchFailure) {
	if audit == nil || runID == "" {
		return
	}
	if len(failures) > 0 {
		if err := audit.RecordFailures(ctx, runID, failures); err != nil {
			log.Error("failed to record batch failures", zap.Error(err))
		}
	}
	if err := audit.CompleteRun(ctx, runID, success, failure, elapsedMillis); err != nil {
		log.Error("failed to complete batch run", zap.Error(err))
	}
}

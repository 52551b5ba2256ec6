package domain

import (
	"context"

	"gorm.io/gorm"
)

// Service is the audit trail. Record and RecordIn are fire-and-forget:
// a failed write must never abort the mutation that triggered it, so
// neither returns an error. Failures surface only through the warn log
// and the activity-failure counter.
type Service interface {
	Record(ctx context.Context, action, details string)
	// RecordIn writes through the caller's transaction so bulk operations
	// keep their audit rows inside the same commit.
	RecordIn(ctx context.Context, tx *gorm.DB, action, details string)
	Recent(ctx context.Context, limit int) ([]ActivityLog, error)
	CountsByAction(ctx context.Context) ([]ActionCount, error)
}

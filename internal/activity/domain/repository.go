package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, entry *ActivityLog) error
	Recent(ctx context.Context, db *gorm.DB, limit int) ([]ActivityLog, error)
	CountByAction(ctx context.Context, db *gorm.DB) ([]ActionCount, error)
}

package repository

import (
	"context"

	"github.com/dukastack/dukani/internal/expiry/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Upsert(ctx context.Context, db *gorm.DB, record *domain.ExpiryRecord) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO expiry (item, expiry_date, expiry_status)
		 VALUES (?, ?, ?)
		 ON CONFLICT(item) DO UPDATE SET
		     expiry_date = excluded.expiry_date,
		     expiry_status = excluded.expiry_status`,
		record.ItemName,
		record.Date,
		record.Status,
	).Error
}

func (r *repo) Statuses(ctx context.Context, db *gorm.DB) ([]domain.ItemExpiry, error) {
	// Every current item, with N/A for items that never got an expiry row.
	var rows []domain.ItemExpiry
	err := db.WithContext(ctx).Raw(
		`SELECT i.item, COALESCE(e.expiry_date, '') AS expiry_date, COALESCE(e.expiry_status, 'N/A') AS expiry_status
		 FROM items i
		 LEFT JOIN expiry e ON e.item = i.item
		 ORDER BY i.item ASC`,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) CountExpired(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM expiry WHERE expiry_status = 'Expired'`,
	).Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

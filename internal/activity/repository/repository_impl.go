package repository

import (
	"context"

	"github.com/dukastack/dukani/internal/activity/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, entry *domain.ActivityLog) error {
	if entry == nil {
		return nil
	}
	return db.WithContext(ctx).Exec(
		`INSERT INTO activities (id, action, details, date) VALUES (?, ?, ?, ?)`,
		entry.ID,
		entry.Action,
		entry.Details,
		entry.Date,
	).Error
}

func (r *repo) Recent(ctx context.Context, db *gorm.DB, limit int) ([]domain.ActivityLog, error) {
	var entries []domain.ActivityLog
	err := db.WithContext(ctx).Raw(
		`SELECT id, action, details, date FROM activities ORDER BY id DESC LIMIT ?`,
		limit,
	).Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repo) CountByAction(ctx context.Context, db *gorm.DB) ([]domain.ActionCount, error) {
	var counts []domain.ActionCount
	err := db.WithContext(ctx).Raw(
		`SELECT action, COUNT(*) AS count FROM activities GROUP BY action ORDER BY COUNT(*) DESC`,
	).Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	activitydomain "github.com/dukastack/dukani/internal/activity/domain"
	"github.com/dukastack/dukani/internal/clock"
	"github.com/dukastack/dukani/internal/config"
	"github.com/dukastack/dukani/internal/expiry/domain"
	dbpkg "github.com/dukastack/dukani/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Cfg      config.Config
	DB       *gorm.DB
	Log      *zap.Logger
	Clock    clock.Clock
	Repo     domain.Repository
	Activity activitydomain.Service
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	clock    clock.Clock
	repo     domain.Repository
	activity activitydomain.Service
	retry    dbpkg.RetryPolicy
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("expiry.service"),
		clock:    p.Clock,
		repo:     p.Repo,
		activity: p.Activity,
		retry:    dbpkg.RetryPolicy{Attempts: p.Cfg.DBLockRetries, Delay: p.Cfg.DBLockRetryDelay},
	}
}

func (s *Service) Set(ctx context.Context, name, date string) (*domain.ExpiryRecord, error) {
	record, err := s.buildRecord(name, date)
	if err != nil {
		return nil, err
	}

	if err := dbpkg.WithRetry(ctx, s.log, s.retry, func() error {
		return s.repo.Upsert(ctx, s.db, record)
	}); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, activitydomain.ActionUpdateExpiry,
		fmt.Sprintf("Expiry for %q set to %q (%s)", record.ItemName, record.Date, record.Status))
	return record, nil
}

func (s *Service) SetAll(ctx context.Context, dates map[string]string) ([]domain.ExpiryRecord, error) {
	names := make([]string, 0, len(dates))
	for name := range dates {
		names = append(names, name)
	}
	sort.Strings(names)

	records := make([]domain.ExpiryRecord, 0, len(names))
	for _, name := range names {
		record, err := s.buildRecord(name, dates[name])
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	if err := dbpkg.WithRetry(ctx, s.log, s.retry, func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			for i := range records {
				if err := s.repo.Upsert(ctx, tx, &records[i]); err != nil {
					return err
				}
			}
			return nil
		})
	}); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, activitydomain.ActionUpdateExpiry,
		fmt.Sprintf("Updated expiry information for %d item(s)", len(records)))
	return records, nil
}

func (s *Service) Statuses(ctx context.Context) ([]domain.ItemExpiry, error) {
	return s.repo.Statuses(ctx, s.db)
}

func (s *Service) buildRecord(name, date string) (*domain.ExpiryRecord, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	date = strings.TrimSpace(date)
	status, err := domain.StatusFor(date, s.clock.Now())
	if err != nil {
		return nil, err
	}

	return &domain.ExpiryRecord{
		ItemName: name,
		Date:     date,
		Status:   status,
	}, nil
}

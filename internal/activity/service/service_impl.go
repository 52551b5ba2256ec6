package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/dukastack/dukani/internal/activity/domain"
	"github.com/dukastack/dukani/internal/clock"
	obsmetrics "github.com/dukastack/dukani/internal/observability/metrics"
	dbpkg "github.com/dukastack/dukani/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Repo    domain.Repository
	Metrics *obsmetrics.Metrics
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	repo    domain.Repository
	metrics *obsmetrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("activity.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		repo:    p.Repo,
		metrics: p.Metrics,
	}
}

func (s *Service) Record(ctx context.Context, action, details string) {
	s.RecordIn(ctx, s.db, action, details)
}

func (s *Service) RecordIn(ctx context.Context, tx *gorm.DB, action, details string) {
	entry := &domain.ActivityLog{
		ID:      s.genID.Generate().Int64(),
		Action:  action,
		Details: details,
		Date:    s.clock.Now().Format(dbpkg.TimeFormat),
	}

	if err := s.repo.Insert(ctx, tx, entry); err != nil {
		// The triggering operation must not fail because its audit row did.
		s.log.Warn("failed to write activity log",
			zap.String("action", action),
			zap.Error(err),
		)
		if s.metrics != nil {
			s.metrics.ActivityLogFailures.Inc()
		}
	}
}

func (s *Service) Recent(ctx context.Context, limit int) ([]domain.ActivityLog, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 200 {
		limit = 200
	}
	return s.repo.Recent(ctx, s.db, limit)
}

func (s *Service) CountsByAction(ctx context.Context) ([]domain.ActionCount, error) {
	return s.repo.CountByAction(ctx, s.db)
}

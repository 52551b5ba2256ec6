package service

import (
	"context"
	"sort"
	"strings"

	"github.com/dukastack/dukani/internal/clock"
	expirydomain "github.com/dukastack/dukani/internal/expiry/domain"
	"github.com/dukastack/dukani/internal/report/domain"
	dbpkg "github.com/dukastack/dukani/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	Clock      clock.Clock
	Repo       domain.Repository
	ExpiryRepo expirydomain.Repository
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	clock      clock.Clock
	repo       domain.Repository
	expiryRepo expirydomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("report.service"),
		clock:      p.Clock,
		repo:       p.Repo,
		expiryRepo: p.ExpiryRepo,
	}
}

func (s *Service) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	today := s.clock.Now().Format(dbpkg.DateFormat)

	totalItems, err := s.repo.CountItems(ctx, s.db)
	if err != nil {
		return nil, err
	}
	salesToday, err := s.repo.SalesTotalOn(ctx, s.db, today)
	if err != nil {
		return nil, err
	}
	newStock, err := s.repo.CountItemsAddedOn(ctx, s.db, today)
	if err != nil {
		return nil, err
	}
	expired, err := s.expiryRepo.CountExpired(ctx, s.db)
	if err != nil {
		return nil, err
	}
	stockValue, err := s.repo.TotalStockValue(ctx, s.db)
	if err != nil {
		return nil, err
	}

	return &domain.DashboardStats{
		TotalItems:      totalItems,
		SalesToday:      salesToday,
		NewStockToday:   newStock,
		ExpiredProducts: expired,
		TotalStockValue: stockValue,
	}, nil
}

func (s *Service) SalesByDay(ctx context.Context, days int) ([]domain.SalesPoint, error) {
	if days <= 0 || days > 366 {
		return nil, domain.ErrInvalidRange
	}

	now := s.clock.Now()
	from := now.AddDate(0, 0, -(days - 1)).Format(dbpkg.DateFormat)

	totals, err := s.repo.SalesTotalsSince(ctx, s.db, from)
	if err != nil {
		return nil, err
	}
	byDay := make(map[string]float64, len(totals))
	for _, t := range totals {
		byDay[t.Day] = t.Total
	}

	// One point per day, oldest first, zero-filled.
	points := make([]domain.SalesPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i).Format(dbpkg.DateFormat)
		points = append(points, domain.SalesPoint{
			Date:  day,
			Total: byDay[day],
		})
	}
	return points, nil
}

func (s *Service) TopSellers(ctx context.Context, limit int) ([]domain.TopSeller, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.repo.TopSellers(ctx, s.db, limit)
}

func (s *Service) Substitutes(ctx context.Context) ([]domain.SubstituteGroup, error) {
	quantities, err := s.repo.ItemQuantities(ctx, s.db)
	if err != nil {
		return nil, err
	}

	index := map[string]int{}
	var groups []domain.SubstituteGroup
	for _, q := range quantities {
		family := domain.NormalizeFamily(q.Name)
		i, ok := index[family]
		if !ok {
			groups = append(groups, domain.SubstituteGroup{Family: family})
			i = len(groups) - 1
			index[family] = i
		}
		groups[i].Frequency++
		groups[i].TotalQuantity += q.Quantity
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Family < groups[j].Family
	})
	return groups, nil
}

func (s *Service) SalesOn(ctx context.Context, day string) ([]domain.SaleLine, float64, error) {
	day = strings.TrimSpace(day)
	if day == "" {
		day = s.clock.Now().Format(dbpkg.DateFormat)
	}

	lines, err := s.repo.SaleLinesOn(ctx, s.db, day)
	if err != nil {
		return nil, 0, err
	}

	var total float64
	for _, line := range lines {
		total += line.TotalAmount
	}
	return lines, total, nil
}

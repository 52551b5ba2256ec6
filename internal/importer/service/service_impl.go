package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/bwmarrin/snowflake"
	activitydomain "github.com/dukastack/dukani/internal/activity/domain"
	"github.com/dukastack/dukani/internal/clock"
	"github.com/dukastack/dukani/internal/config"
	"github.com/dukastack/dukani/internal/importer/domain"
	inventorydomain "github.com/dukastack/dukani/internal/inventory/domain"
	obsmetrics "github.com/dukastack/dukani/internal/observability/metrics"
	dbpkg "github.com/dukastack/dukani/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Cfg       config.Config
	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Clock     clock.Clock
	Inventory inventorydomain.Repository
	Activity  activitydomain.Service
	Metrics   *obsmetrics.Metrics
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	clock     clock.Clock
	inventory inventorydomain.Repository
	activity  activitydomain.Service
	metrics   *obsmetrics.Metrics
	retry     dbpkg.RetryPolicy
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("importer.service"),
		genID:     p.GenID,
		clock:     p.Clock,
		inventory: p.Inventory,
		activity:  p.Activity,
		metrics:   p.Metrics,
		retry:     dbpkg.RetryPolicy{Attempts: p.Cfg.DBLockRetries, Delay: p.Cfg.DBLockRetryDelay},
	}
}

func (s *Service) ImportFile(ctx context.Context, filename string, file io.Reader) (*domain.Summary, error) {
	var (
		rows []domain.Row
		err  error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		rows, err = decodeCSV(file)
	case ".xlsx":
		rows, err = decodeXLSX(file)
	default:
		return nil, domain.ErrUnsupportedFile
	}
	if err != nil {
		return nil, err
	}

	return s.ImportRows(ctx, rows)
}

// ImportRows applies every row inside one transaction: a single failed row
// rolls the whole upload back. Audit rows ride in the same transaction so
// they never describe changes that were rolled back.
func (s *Service) ImportRows(ctx context.Context, rows []domain.Row) (*domain.Summary, error) {
	summary := &domain.Summary{}
	now := s.clock.Now().Format(dbpkg.TimeFormat)

	err := dbpkg.WithRetry(ctx, s.log, s.retry, func() error {
		summary.Inserted = 0
		summary.Updated = 0
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			for i, row := range rows {
				if err := s.applyRow(ctx, tx, row, now, summary); err != nil {
					return fmt.Errorf("row %d (%s): %w", i+1, row.Name, err)
				}
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.ImportRows.WithLabelValues("inserted").Add(float64(summary.Inserted))
		s.metrics.ImportRows.WithLabelValues("updated").Add(float64(summary.Updated))
	}
	s.log.Info("bulk import applied",
		zap.Int("inserted", summary.Inserted),
		zap.Int("updated", summary.Updated),
	)
	return summary, nil
}

func (s *Service) applyRow(ctx context.Context, tx *gorm.DB, row domain.Row, now string, summary *domain.Summary) error {
	existing, err := s.inventory.FindItemByName(ctx, tx, row.Name)
	if err != nil {
		return err
	}

	stockValue := row.UnitPrice * row.Quantity

	if existing == nil {
		item := &inventorydomain.Item{
			ID:          s.genID.Generate().Int64(),
			Name:        row.Name,
			Description: row.Description,
			UnitPrice:   row.UnitPrice,
			Quantity:    row.Quantity,
			StockValue:  stockValue,
			DateAdded:   now,
		}
		if err := s.inventory.InsertItem(ctx, tx, item); err != nil {
			return err
		}
		summary.Inserted++
		s.activity.RecordIn(ctx, tx, activitydomain.ActionAddItemUpload,
			fmt.Sprintf("Inserted %q, qty: %v, price: %.2f", row.Name, row.Quantity, row.UnitPrice))
		return nil
	}

	if existing.UnitPrice != row.UnitPrice {
		if err := s.inventory.InsertVariation(ctx, tx, &inventorydomain.PriceVariation{
			ID:         s.genID.Generate().Int64(),
			ItemID:     existing.ID,
			OldPrice:   existing.UnitPrice,
			NewPrice:   row.UnitPrice,
			ChangeDate: now,
		}); err != nil {
			return err
		}
		s.activity.RecordIn(ctx, tx, activitydomain.ActionPriceChange,
			fmt.Sprintf("%s (id:%d) changed price %.2f -> %.2f", row.Name, existing.ID, existing.UnitPrice, row.UnitPrice))
	}

	// Re-imported items count as fresh stock: date_added resets to now.
	updated := &inventorydomain.Item{
		ID:          existing.ID,
		Name:        existing.Name,
		Description: row.Description,
		UnitPrice:   row.UnitPrice,
		Quantity:    row.Quantity,
		StockValue:  stockValue,
		DateAdded:   now,
	}
	if err := s.inventory.UpdateItem(ctx, tx, updated); err != nil {
		return err
	}
	summary.Updated++
	s.activity.RecordIn(ctx, tx, activitydomain.ActionUpdateItemUpload,
		fmt.Sprintf("Updated %q, qty: %v, price: %.2f", row.Name, row.Quantity, row.UnitPrice))
	return nil
}

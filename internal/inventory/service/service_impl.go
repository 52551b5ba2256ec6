package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	activitydomain "github.com/dukastack/dukani/internal/activity/domain"
	"github.com/dukastack/dukani/internal/clock"
	"github.com/dukastack/dukani/internal/config"
	"github.com/dukastack/dukani/internal/inventory/domain"
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
	GenID    *snowflake.Node
	Clock    clock.Clock
	Repo     domain.Repository
	Activity activitydomain.Service
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	repo     domain.Repository
	activity activitydomain.Service
	retry    dbpkg.RetryPolicy
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("inventory.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		repo:     p.Repo,
		activity: p.Activity,
		retry:    dbpkg.RetryPolicy{Attempts: p.Cfg.DBLockRetries, Delay: p.Cfg.DBLockRetryDelay},
	}
}

// inTx runs one ledger mutation as a single transaction, retrying the whole
// transaction on sqlite lock contention.
func (s *Service) inTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return dbpkg.WithRetry(ctx, s.log, s.retry, func() error {
		return s.db.WithContext(ctx).Transaction(fn)
	})
}

func (s *Service) Add(ctx context.Context, req domain.AddRequest) (*domain.Item, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	price, err := parseAmount(req.UnitPrice)
	if err != nil {
		return nil, domain.ErrInvalidPrice
	}
	quantity, err := parseAmount(req.Quantity)
	if err != nil {
		return nil, domain.ErrInvalidQuantity
	}

	item := &domain.Item{
		ID:          s.genID.Generate().Int64(),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		UnitPrice:   price,
		Quantity:    quantity,
		StockValue:  price * quantity,
		DateAdded:   s.clock.Now().Format(dbpkg.TimeFormat),
	}

	if err := s.inTx(ctx, func(tx *gorm.DB) error {
		return s.repo.InsertItem(ctx, tx, item)
	}); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, activitydomain.ActionAddItem,
		fmt.Sprintf("Item %q added, qty: %v, price: %.2f, total: %.2f", item.Name, item.Quantity, item.UnitPrice, item.StockValue))
	return item, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Item, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	newPrice, err := parseAmount(req.UnitPrice)
	if err != nil {
		return nil, domain.ErrInvalidPrice
	}
	quantity, err := parseAmount(req.Quantity)
	if err != nil {
		return nil, domain.ErrInvalidQuantity
	}

	var (
		updated      *domain.Item
		priceChanged bool
		oldPrice     float64
	)
	if err := s.inTx(ctx, func(tx *gorm.DB) error {
		existing, err := s.repo.FindItemByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}

		oldPrice = existing.UnitPrice
		priceChanged = oldPrice != newPrice
		if priceChanged {
			if err := s.repo.InsertVariation(ctx, tx, &domain.PriceVariation{
				ID:         s.genID.Generate().Int64(),
				ItemID:     existing.ID,
				OldPrice:   oldPrice,
				NewPrice:   newPrice,
				ChangeDate: s.clock.Now().Format(dbpkg.TimeFormat),
			}); err != nil {
				return err
			}
		}

		updated = &domain.Item{
			ID:          existing.ID,
			Name:        name,
			Description: strings.TrimSpace(req.Description),
			UnitPrice:   newPrice,
			Quantity:    quantity,
			StockValue:  newPrice * quantity,
			DateAdded:   existing.DateAdded,
		}
		return s.repo.UpdateItem(ctx, tx, updated)
	}); err != nil {
		return nil, err
	}

	if priceChanged {
		s.activity.Record(ctx, activitydomain.ActionPriceChange,
			fmt.Sprintf("%s (id:%d) changed price %.2f -> %.2f", updated.Name, updated.ID, oldPrice, newPrice))
	}
	s.activity.Record(ctx, activitydomain.ActionUpdateItem,
		fmt.Sprintf("Item %q (id:%d) updated, qty: %v, price: %.2f", updated.Name, updated.ID, updated.Quantity, updated.UnitPrice))
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}

	// Best-effort label: the audit entry carries the item's last known name,
	// falling back to the raw id when the row is already gone.
	label := fmt.Sprintf("ID %d", id)
	if err := s.inTx(ctx, func(tx *gorm.DB) error {
		existing, err := s.repo.FindItemByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if existing != nil {
			label = existing.Name
		}
		return s.repo.DeleteItem(ctx, tx, id)
	}); err != nil {
		return err
	}

	s.activity.Record(ctx, activitydomain.ActionDeleteItem,
		fmt.Sprintf("Item %q (id:%d) deleted.", label, id))
	return nil
}

func (s *Service) Sell(ctx context.Context, req domain.SellRequest) (*domain.SellResult, error) {
	id, err := parseID(req.ItemID)
	if err != nil {
		return nil, err
	}
	quantity, err := parseAmount(req.Quantity)
	if err != nil {
		return nil, domain.ErrInvalidQuantity
	}

	var result *domain.SellResult
	if err := s.inTx(ctx, func(tx *gorm.DB) error {
		item, err := s.repo.FindItemByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if quantity > item.Quantity {
			return domain.ErrInsufficientStock
		}

		remaining := item.Quantity - quantity
		total := quantity * item.UnitPrice
		if err := s.repo.UpdateItemStock(ctx, tx, item.ID, remaining, remaining*item.UnitPrice); err != nil {
			return err
		}
		if err := s.repo.InsertSale(ctx, tx, &domain.Sale{
			ID:           s.genID.Generate().Int64(),
			ItemID:       item.ID,
			QuantitySold: quantity,
			TotalAmount:  total,
			Date:         s.clock.Now().Format(dbpkg.TimeFormat),
		}); err != nil {
			return err
		}

		result = &domain.SellResult{
			ItemName:     item.Name,
			QuantitySold: quantity,
			TotalAmount:  total,
			Remaining:    remaining,
		}
		return nil
	}); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, activitydomain.ActionSale,
		fmt.Sprintf("Sold %v units of %q (id:%d) for %.2f", result.QuantitySold, result.ItemName, id, result.TotalAmount))
	return result, nil
}

func (s *Service) ChangePrice(ctx context.Context, rawID, rawPrice string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}
	newPrice, err := parseAmount(rawPrice)
	if err != nil {
		return domain.ErrInvalidPrice
	}

	var (
		itemName string
		oldPrice float64
		changed  bool
	)
	if err := s.inTx(ctx, func(tx *gorm.DB) error {
		item, err := s.repo.FindItemByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}

		itemName = item.Name
		oldPrice = item.UnitPrice
		if oldPrice == newPrice {
			return nil
		}
		changed = true

		if err := s.repo.InsertVariation(ctx, tx, &domain.PriceVariation{
			ID:         s.genID.Generate().Int64(),
			ItemID:     item.ID,
			OldPrice:   oldPrice,
			NewPrice:   newPrice,
			ChangeDate: s.clock.Now().Format(dbpkg.TimeFormat),
		}); err != nil {
			return err
		}
		return s.repo.UpdateItemPrice(ctx, tx, item.ID, newPrice)
	}); err != nil {
		return err
	}

	if changed {
		s.activity.Record(ctx, activitydomain.ActionPriceChange,
			fmt.Sprintf("%s (id:%d) changed price %.2f -> %.2f", itemName, id, oldPrice, newPrice))
	}
	return nil
}

func (s *Service) DeleteVariation(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}

	// The audit entry needs the values being removed, so read before delete.
	var detail *domain.VariationDetail
	if err := s.inTx(ctx, func(tx *gorm.DB) error {
		found, err := s.repo.FindVariationByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if found == nil {
			return domain.ErrVariationNotFound
		}
		detail = found
		return s.repo.DeleteVariation(ctx, tx, id)
	}); err != nil {
		return err
	}

	s.activity.Record(ctx, activitydomain.ActionVariationDeleted,
		fmt.Sprintf("Deleted price variation for %s: %v -> %v", detail.ItemName, detail.OldPrice, detail.NewPrice))
	return nil
}

func (s *Service) List(ctx context.Context) ([]domain.Item, error) {
	return s.repo.FindAllItems(ctx, s.db)
}

func (s *Service) Search(ctx context.Context, query string) ([]domain.Item, error) {
	return s.repo.SearchItems(ctx, s.db, strings.TrimSpace(query))
}

func (s *Service) Suggest(ctx context.Context, query string, limit int) ([]domain.Suggestion, error) {
	query = strings.TrimSpace(query)
	if limit <= 0 {
		limit = 10
	}
	if query == "" {
		limit = 20
	}
	return s.repo.SuggestItems(ctx, s.db, query, limit)
}

func (s *Service) AddedOn(ctx context.Context, day string) ([]domain.Item, error) {
	day = strings.TrimSpace(day)
	if day == "" {
		day = s.clock.Now().Format(dbpkg.DateFormat)
	}
	return s.repo.FindItemsAddedOn(ctx, s.db, day)
}

func (s *Service) PriceHistory(ctx context.Context) ([]domain.ItemHistory, error) {
	details, err := s.repo.HistoryDetails(ctx, s.db)
	if err != nil {
		return nil, err
	}

	var (
		history []domain.ItemHistory
		index   = map[string]int{}
	)
	for _, d := range details {
		i, ok := index[d.ItemName]
		if !ok {
			history = append(history, domain.ItemHistory{
				Item:        d.ItemName,
				Description: d.Description,
			})
			i = len(history) - 1
			index[d.ItemName] = i
		}
		history[i].Variations = append(history[i].Variations, domain.VariationEntry{
			ID:         d.ID,
			OldPrice:   d.OldPrice,
			NewPrice:   d.NewPrice,
			ChangeDate: d.ChangeDate,
		})
	}
	return history, nil
}

func (s *Service) PriceHistoryRows(ctx context.Context) ([]domain.HistoryRow, error) {
	return s.repo.HistoryRows(ctx, s.db)
}

// parseAmount accepts only finite, non-negative numbers.
func parseAmount(raw string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return 0, fmt.Errorf("amount out of range: %v", value)
	}
	return value, nil
}

func parseID(raw string) (int64, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, domain.ErrInvalidID
	}
	return id.Int64(), nil
}

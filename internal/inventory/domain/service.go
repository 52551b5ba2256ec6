package domain

import (
	"context"
	"errors"
)

// Service owns the inventory ledger: items, price-variation history and
// sales. Every mutation keeps stock value equal to unit price times
// quantity and produces exactly one audit row on success.
type Service interface {
	Add(ctx context.Context, req AddRequest) (*Item, error)
	Update(ctx context.Context, req UpdateRequest) (*Item, error)
	Delete(ctx context.Context, id string) error
	Sell(ctx context.Context, req SellRequest) (*SellResult, error)
	ChangePrice(ctx context.Context, id, newPrice string) error
	DeleteVariation(ctx context.Context, id string) error

	List(ctx context.Context) ([]Item, error)
	Search(ctx context.Context, query string) ([]Item, error)
	Suggest(ctx context.Context, query string, limit int) ([]Suggestion, error)
	AddedOn(ctx context.Context, day string) ([]Item, error)
	PriceHistory(ctx context.Context) ([]ItemHistory, error)
	PriceHistoryRows(ctx context.Context) ([]HistoryRow, error)
}

// Price and quantity arrive as raw form/query strings; the ledger owns
// their validation.
type AddRequest struct {
	Name        string
	Description string
	UnitPrice   string
	Quantity    string
}

type UpdateRequest struct {
	ID          string
	Name        string
	Description string
	UnitPrice   string
	Quantity    string
}

type SellRequest struct {
	ItemID   string
	Quantity string
}

type SellResult struct {
	ItemName     string  `json:"item"`
	QuantitySold float64 `json:"quantity_sold"`
	TotalAmount  float64 `json:"total_amount"`
	Remaining    float64 `json:"total_quantity_available"`
}

var (
	ErrInvalidName       = errors.New("invalid_name")
	ErrInvalidPrice      = errors.New("invalid_price")
	ErrInvalidQuantity   = errors.New("invalid_quantity")
	ErrInvalidID         = errors.New("invalid_id")
	ErrNotFound          = errors.New("not_found")
	ErrVariationNotFound = errors.New("variation_not_found")
	ErrInsufficientStock = errors.New("insufficient_stock")
)

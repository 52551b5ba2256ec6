package domain

import (
	"context"
	"errors"
)

// Service exposes the read-only aggregations. No operation here mutates
// state or writes audit rows.
type Service interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
	SalesByDay(ctx context.Context, days int) ([]SalesPoint, error)
	TopSellers(ctx context.Context, limit int) ([]TopSeller, error)
	Substitutes(ctx context.Context) ([]SubstituteGroup, error)
	SalesOn(ctx context.Context, day string) ([]SaleLine, float64, error)
}

var ErrInvalidRange = errors.New("invalid_range")

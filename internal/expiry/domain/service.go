package domain

import (
	"context"
	"errors"
)

type Service interface {
	// Set upserts one item's expiry date and derives its status. An empty
	// date clears the record back to N/A.
	Set(ctx context.Context, name, date string) (*ExpiryRecord, error)
	// SetAll applies Set for every entry in one transaction and writes a
	// single audit row.
	SetAll(ctx context.Context, dates map[string]string) ([]ExpiryRecord, error)
	Statuses(ctx context.Context) ([]ItemExpiry, error)
}

var (
	ErrInvalidName = errors.New("invalid_item_name")
	ErrInvalidDate = errors.New("invalid_expiry_date")
)

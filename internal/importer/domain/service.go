package domain

import (
	"context"
	"errors"
	"io"
)

// Row is one parsed line of an uploaded stock sheet. The stock amount is
// always derived, never read from the file.
type Row struct {
	Name        string
	Description string
	UnitPrice   float64
	Quantity    float64
}

type Summary struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
}

// Service applies a bulk stock sheet with the same variation-on-change and
// update rules as the single-item path. All rows commit or none do.
type Service interface {
	// ImportFile decodes a .csv or .xlsx upload and applies it.
	ImportFile(ctx context.Context, filename string, file io.Reader) (*Summary, error)
	ImportRows(ctx context.Context, rows []Row) (*Summary, error)
}

// Required header columns for an uploaded sheet, matched case-insensitively
// in any order.
var RequiredColumns = []string{"ITEM", "DESCRIPTION", "PRICE_PER_PC_OR_KG", "TOTAL_QUANTITY_AVAILABLE"}

var (
	ErrMissingColumns  = errors.New("missing_required_columns")
	ErrUnsupportedFile = errors.New("unsupported_file_type")
	ErrInvalidRow      = errors.New("invalid_row")
	ErrEmptyFile       = errors.New("empty_file")
)

package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/dukastack/dukani/internal/importer/domain"
	"github.com/xuri/excelize/v2"
)

// decodeCSV reads a delimited sheet: header row first, then one item per line.
func decodeCSV(file io.Reader) ([]domain.Row, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return recordsToRows(records)
}

// decodeXLSX reads the first sheet of a workbook.
func decodeXLSX(file io.Reader) ([]domain.Row, error) {
	book, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("read xlsx: %w", err)
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.ErrEmptyFile
	}

	records, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return recordsToRows(records)
}

func recordsToRows(records [][]string) ([]domain.Row, error) {
	if len(records) == 0 {
		return nil, domain.ErrEmptyFile
	}

	columns, err := mapColumns(records[0])
	if err != nil {
		return nil, err
	}

	rows := make([]domain.Row, 0, len(records)-1)
	for i, record := range records[1:] {
		if isBlank(record) {
			continue
		}

		name := strings.TrimSpace(cell(record, columns["ITEM"]))
		if name == "" {
			return nil, fmt.Errorf("row %d: empty item name: %w", i+2, domain.ErrInvalidRow)
		}

		price, err := parseCellNumber(cell(record, columns["PRICE_PER_PC_OR_KG"]))
		if err != nil {
			return nil, fmt.Errorf("row %d: price: %w", i+2, domain.ErrInvalidRow)
		}
		quantity, err := parseCellNumber(cell(record, columns["TOTAL_QUANTITY_AVAILABLE"]))
		if err != nil {
			return nil, fmt.Errorf("row %d: quantity: %w", i+2, domain.ErrInvalidRow)
		}

		rows = append(rows, domain.Row{
			Name:        name,
			Description: strings.TrimSpace(cell(record, columns["DESCRIPTION"])),
			UnitPrice:   price,
			Quantity:    quantity,
		})
	}
	return rows, nil
}

// mapColumns resolves the required headers case-insensitively, any order.
func mapColumns(header []string) (map[string]int, error) {
	positions := map[string]int{}
	for i, h := range header {
		positions[strings.ToUpper(strings.TrimSpace(h))] = i
	}

	columns := map[string]int{}
	for _, required := range domain.RequiredColumns {
		i, ok := positions[required]
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrMissingColumns, required)
		}
		columns[required] = i
	}
	return columns, nil
}

func cell(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}

func parseCellNumber(raw string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return 0, fmt.Errorf("number out of range: %v", value)
	}
	return value, nil
}

func isBlank(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

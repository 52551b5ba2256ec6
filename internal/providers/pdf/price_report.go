package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	inventorydomain "github.com/dukastack/dukani/internal/inventory/domain"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// PriceVariationReport renders the price-change history as a PDF, one line
// per variation, mirroring the CSV export columns.
func (p *Provider) PriceVariationReport(ctx context.Context, rows []inventorydomain.HistoryRow, generatedAt string) (io.Reader, error) {
	_ = ctx

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(16,
		text.NewCol(8, "Price Variation Report", props.Text{
			Size:  16,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
		text.NewCol(4, "Generated "+generatedAt, props.Text{
			Size:  9,
			Align: align.Right,
			Top:   4,
		}),
	)

	m.AddRow(10,
		text.NewCol(3, "Item", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(3, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Old price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "New price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Change date", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, row := range rows {
		m.AddRow(8,
			text.NewCol(3, row.Item, props.Text{Size: 9}),
			text.NewCol(3, row.Description, props.Text{Size: 9}),
			text.NewCol(2, fmt.Sprintf("%.2f", row.OldPrice), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, fmt.Sprintf("%.2f", row.NewPrice), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, row.ChangeDate, props.Text{Size: 9, Align: align.Right}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate price variation pdf: %w", err)
	}
	return bytes.NewReader(doc.GetBytes()), nil
}

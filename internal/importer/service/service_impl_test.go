package service_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	activitydomain "github.com/dukastack/dukani/internal/activity/domain"
	activityrepo "github.com/dukastack/dukani/internal/activity/repository"
	activityservice "github.com/dukastack/dukani/internal/activity/service"
	"github.com/dukastack/dukani/internal/clock"
	"github.com/dukastack/dukani/internal/config"
	"github.com/dukastack/dukani/internal/importer/domain"
	"github.com/dukastack/dukani/internal/importer/service"
	inventorydomain "github.com/dukastack/dukani/internal/inventory/domain"
	inventoryrepo "github.com/dukastack/dukani/internal/inventory/repository"
	obsmetrics "github.com/dukastack/dukani/internal/observability/metrics"
)

func setupService(t *testing.T) (domain.Service, *gorm.DB, *obsmetrics.Metrics) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&inventorydomain.Item{},
		&inventorydomain.PriceVariation{},
		&activitydomain.ActivityLog{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	fake := clock.NewFakeClock(time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC))
	metrics := obsmetrics.New(prometheus.NewRegistry())

	activitySvc := activityservice.New(activityservice.Params{
		DB:      conn,
		Log:     zap.NewNop(),
		GenID:   node,
		Clock:   fake,
		Repo:    activityrepo.Provide(),
		Metrics: metrics,
	})

	svc := service.New(service.Params{
		Cfg:       config.Config{DBLockRetries: 3, DBLockRetryDelay: time.Millisecond},
		DB:        conn,
		Log:       zap.NewNop(),
		GenID:     node,
		Clock:     fake,
		Inventory: inventoryrepo.Provide(),
		Activity:  activitySvc,
		Metrics:   metrics,
	})
	return svc, conn, metrics
}

const sampleCSV = `ITEM,DESCRIPTION,PRICE_PER_PC_OR_KG,TOTAL_QUANTITY_AVAILABLE
Sugar 1kg,Granulated white sugar,150,40
Milk 500ml,Long-life whole milk,65,50
`

func TestImportFileInsertsNewItems(t *testing.T) {
	svc, conn, metrics := setupService(t)
	ctx := context.Background()

	summary, err := svc.ImportFile(ctx, "stock.csv", strings.NewReader(sampleCSV))
	require.NoError(t, err)
	assert.Equal(t, &domain.Summary{Inserted: 2, Updated: 0}, summary)

	var item inventorydomain.Item
	require.NoError(t, conn.First(&item, "item = ?", "Sugar 1kg").Error)
	assert.Equal(t, float64(150), item.UnitPrice)
	assert.Equal(t, float64(40), item.Quantity)
	assert.Equal(t, float64(6000), item.StockValue)
	assert.Equal(t, "2026-03-10 10:00:00", item.DateAdded)

	var auditCount int64
	require.NoError(t, conn.Raw(
		`SELECT COUNT(*) FROM activities WHERE action = ?`, activitydomain.ActionAddItemUpload,
	).Scan(&auditCount).Error)
	assert.EqualValues(t, 2, auditCount)

	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.ImportRows.WithLabelValues("inserted")))
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.ImportRows.WithLabelValues("updated")))
}

func TestImportUpdatesExistingItem(t *testing.T) {
	svc, conn, _ := setupService(t)
	ctx := context.Background()

	require.NoError(t, conn.Exec(
		`INSERT INTO items (id, item, description, price_per_pc_or_kg, total_quantity_available, total_stock_amount, date_added)
		 VALUES (1, 'Sugar 1kg', 'old description', 120, 10, 1200, '2026-01-01 08:00:00')`,
	).Error)

	summary, err := svc.ImportRows(ctx, []domain.Row{
		{Name: "Sugar 1kg", Description: "Granulated white sugar", UnitPrice: 150, Quantity: 40},
	})
	require.NoError(t, err)
	assert.Equal(t, &domain.Summary{Inserted: 0, Updated: 1}, summary)

	var item inventorydomain.Item
	require.NoError(t, conn.First(&item, "item = ?", "Sugar 1kg").Error)
	assert.Equal(t, float64(150), item.UnitPrice)
	assert.Equal(t, float64(6000), item.StockValue)
	assert.Equal(t, "Granulated white sugar", item.Description)
	// Re-imported stock counts as fresh.
	assert.Equal(t, "2026-03-10 10:00:00", item.DateAdded)

	var variation inventorydomain.PriceVariation
	require.NoError(t, conn.First(&variation, "item_id = ?", 1).Error)
	assert.Equal(t, float64(120), variation.OldPrice)
	assert.Equal(t, float64(150), variation.NewPrice)
}

func TestImportSamePriceWritesNoVariation(t *testing.T) {
	svc, conn, _ := setupService(t)
	ctx := context.Background()

	require.NoError(t, conn.Exec(
		`INSERT INTO items (id, item, description, price_per_pc_or_kg, total_quantity_available, total_stock_amount, date_added)
		 VALUES (1, 'Sugar 1kg', '', 150, 10, 1500, '2026-01-01 08:00:00')`,
	).Error)

	_, err := svc.ImportRows(ctx, []domain.Row{
		{Name: "Sugar 1kg", UnitPrice: 150, Quantity: 40},
	})
	require.NoError(t, err)

	var variationCount int64
	require.NoError(t, conn.Raw(`SELECT COUNT(*) FROM price_variations`).Scan(&variationCount).Error)
	assert.EqualValues(t, 0, variationCount)
}

func TestImportFileMissingColumns(t *testing.T) {
	svc, _, _ := setupService(t)

	_, err := svc.ImportFile(context.Background(), "stock.csv", strings.NewReader(
		"ITEM,PRICE_PER_PC_OR_KG\nSugar 1kg,150\n",
	))
	assert.ErrorIs(t, err, domain.ErrMissingColumns)
}

func TestImportFileUnsupportedExtension(t *testing.T) {
	svc, _, _ := setupService(t)

	_, err := svc.ImportFile(context.Background(), "stock.pdf", strings.NewReader("whatever"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFile)
}

func TestImportFileRejectsBadRow(t *testing.T) {
	svc, conn, _ := setupService(t)

	_, err := svc.ImportFile(context.Background(), "stock.csv", strings.NewReader(
		"ITEM,DESCRIPTION,PRICE_PER_PC_OR_KG,TOTAL_QUANTITY_AVAILABLE\nSugar 1kg,,abc,40\n",
	))
	require.ErrorIs(t, err, domain.ErrInvalidRow)

	var itemCount int64
	require.NoError(t, conn.Raw(`SELECT COUNT(*) FROM items`).Scan(&itemCount).Error)
	assert.EqualValues(t, 0, itemCount)
}

func TestImportFileHeaderOrderAndCaseInsensitive(t *testing.T) {
	svc, conn, _ := setupService(t)

	csv := "total_quantity_available,item,description,price_per_pc_or_kg\n7,Bread,Sliced loaf,80\n"
	summary, err := svc.ImportFile(context.Background(), "stock.csv", strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, &domain.Summary{Inserted: 1, Updated: 0}, summary)

	var item inventorydomain.Item
	require.NoError(t, conn.First(&item, "item = ?", "Bread").Error)
	assert.Equal(t, float64(80), item.UnitPrice)
	assert.Equal(t, float64(7), item.Quantity)
}

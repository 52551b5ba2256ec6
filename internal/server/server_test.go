package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/prometheus/client_golang/prometheus"
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
	expirydomain "github.com/dukastack/dukani/internal/expiry/domain"
	expiryrepo "github.com/dukastack/dukani/internal/expiry/repository"
	expiryservice "github.com/dukastack/dukani/internal/expiry/service"
	importerservice "github.com/dukastack/dukani/internal/importer/service"
	inventorydomain "github.com/dukastack/dukani/internal/inventory/domain"
	inventoryrepo "github.com/dukastack/dukani/internal/inventory/repository"
	inventoryservice "github.com/dukastack/dukani/internal/inventory/service"
	obsmetrics "github.com/dukastack/dukani/internal/observability/metrics"
	"github.com/dukastack/dukani/internal/providers/pdf"
	reportrepo "github.com/dukastack/dukani/internal/report/repository"
	reportservice "github.com/dukastack/dukani/internal/report/service"
	"github.com/dukastack/dukani/internal/server"
)

func setupEngine(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&inventorydomain.Item{},
		&inventorydomain.PriceVariation{},
		&inventorydomain.Sale{},
		&expirydomain.ExpiryRecord{},
		&activitydomain.ActivityLog{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	fake := clock.NewFakeClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
	log := zap.NewNop()
	metrics := obsmetrics.New(prometheus.NewRegistry())
	cfg := config.Config{
		AppName:          "dukani",
		AppVersion:       "test",
		DBLockRetries:    3,
		DBLockRetryDelay: time.Millisecond,
	}

	activitySvc := activityservice.New(activityservice.Params{
		DB: conn, Log: log, GenID: node, Clock: fake,
		Repo: activityrepo.Provide(), Metrics: metrics,
	})
	inventorySvc := inventoryservice.New(inventoryservice.Params{
		Cfg: cfg, DB: conn, Log: log, GenID: node, Clock: fake,
		Repo: inventoryrepo.Provide(), Activity: activitySvc,
	})
	expirySvc := expiryservice.New(expiryservice.Params{
		Cfg: cfg, DB: conn, Log: log, Clock: fake,
		Repo: expiryrepo.Provide(), Activity: activitySvc,
	})
	reportSvc := reportservice.New(reportservice.Params{
		DB: conn, Log: log, Clock: fake,
		Repo: reportrepo.Provide(), ExpiryRepo: expiryrepo.Provide(),
	})
	importerSvc := importerservice.New(importerservice.Params{
		Cfg: cfg, DB: conn, Log: log, GenID: node, Clock: fake,
		Inventory: inventoryrepo.Provide(), Activity: activitySvc, Metrics: metrics,
	})

	srv := server.NewServer(server.Params{
		Config:    cfg,
		Log:       log,
		Clock:     fake,
		Inventory: inventorySvc,
		Expiry:    expirySvc,
		Report:    reportSvc,
		Importer:  importerSvc,
		Activity:  activitySvc,
		PDF:       pdf.New(log),
	})

	engine := server.NewEngine(cfg, log, metrics)
	server.RegisterRoutes(engine, srv)
	return engine, conn
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func addItem(t *testing.T, engine *gin.Engine, name, price, quantity string) int64 {
	t.Helper()

	rec := doJSON(t, engine, http.MethodPost, "/api/items", gin.H{
		"item":                     name,
		"description":              "",
		"price_per_pc_or_kg":       price,
		"total_quantity_available": quantity,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created inventorydomain.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	return created.ID
}

func TestHealth(t *testing.T) {
	engine, _ := setupEngine(t)

	rec := doJSON(t, engine, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestItemLifecycle(t *testing.T) {
	engine, _ := setupEngine(t)

	id := addItem(t, engine, "Sugar 1kg", "150", "40")

	rec := doJSON(t, engine, http.MethodGet, "/api/items", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var listing struct {
		Items []inventorydomain.Item `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	require.Len(t, listing.Items, 1)
	assert.Equal(t, float64(6000), listing.Items[0].StockValue)

	rec = doJSON(t, engine, http.MethodPost, fmt.Sprintf("/api/items/%d/sell", id), gin.H{"quantity": "15"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var sold inventorydomain.SellResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sold))
	assert.Equal(t, float64(2250), sold.TotalAmount)
	assert.Equal(t, float64(25), sold.Remaining)

	rec = doJSON(t, engine, http.MethodDelete, fmt.Sprintf("/api/items/%d", id), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSellInsufficientStockMapsToConflict(t *testing.T) {
	engine, _ := setupEngine(t)

	id := addItem(t, engine, "Milk 500ml", "65", "5")

	rec := doJSON(t, engine, http.MethodPost, fmt.Sprintf("/api/items/%d/sell", id), gin.H{"quantity": "6"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "insufficient_stock")
}

func TestAddItemValidationMapsToBadRequest(t *testing.T) {
	engine, _ := setupEngine(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/items", gin.H{
		"item":                     "Bread",
		"price_per_pc_or_kg":       "free",
		"total_quantity_available": "1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation_error")
}

func TestDeleteUnknownVariationMapsToNotFound(t *testing.T) {
	engine, _ := setupEngine(t)

	rec := doJSON(t, engine, http.MethodDelete, "/api/price-variations/12345", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")
}

func TestPriceVariationCSVExport(t *testing.T) {
	engine, _ := setupEngine(t)

	id := addItem(t, engine, "Sugar 1kg", "150", "40")
	rec := doJSON(t, engine, http.MethodPut, fmt.Sprintf("/api/items/%d/price", id), gin.H{"price_per_pc_or_kg": "170"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, engine, http.MethodGet, "/api/price-variations/export.csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "ITEM,DESCRIPTION,OLD PRICE,NEW PRICE,CHANGE DATE", lines[0])
	assert.Contains(t, lines[1], "Sugar 1kg")
	assert.Contains(t, lines[1], "150.00")
	assert.Contains(t, lines[1], "170.00")
}

func TestExpiryBulkUpdate(t *testing.T) {
	engine, _ := setupEngine(t)

	addItem(t, engine, "Sugar 1kg", "150", "40")
	addItem(t, engine, "Milk 500ml", "65", "20")

	rec := doJSON(t, engine, http.MethodPut, "/api/expiry", map[string]string{
		"Sugar 1kg":  "2026-03-01",
		"Milk 500ml": "2026-04-01",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, engine, http.MethodGet, "/api/expiry", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var listing struct {
		Items []expirydomain.ItemExpiry `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	require.Len(t, listing.Items, 2)
	assert.Equal(t, expirydomain.StatusValid, listing.Items[0].Status)
	assert.Equal(t, expirydomain.StatusExpired, listing.Items[1].Status)
}

func TestImportUpload(t *testing.T) {
	engine, conn := setupEngine(t)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "stock.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("ITEM,DESCRIPTION,PRICE_PER_PC_OR_KG,TOTAL_QUANTITY_AVAILABLE\nBread,Sliced loaf,80,7\n"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/import", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"inserted":1,"updated":0}`, rec.Body.String())

	var count int64
	require.NoError(t, conn.WithContext(context.Background()).Raw(`SELECT COUNT(*) FROM items`).Scan(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestImportWithoutFileField(t *testing.T) {
	engine, _ := setupEngine(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/import", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDashboardShape(t *testing.T) {
	engine, _ := setupEngine(t)

	addItem(t, engine, "Sugar 1kg", "150", "40")

	rec := doJSON(t, engine, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Stats struct {
			TotalItems      int64   `json:"total_items"`
			TotalStockValue float64 `json:"total_stock_value"`
		} `json:"stats"`
		Sales []any `json:"sales_last_7days"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.EqualValues(t, 1, payload.Stats.TotalItems)
	assert.Equal(t, float64(6000), payload.Stats.TotalStockValue)
	assert.Len(t, payload.Sales, 7)
}

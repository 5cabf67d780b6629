package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"replenish-backend/internal/domains/inventory/model"
	"replenish-backend/pkg/cache"
)

type stubRepository struct {
	replacedJob    *model.ImportJob
	replacedStocks []model.WarehouseStock
	availability   []model.StockAvailability
}

func (s *stubRepository) GetWarehouseStocks(ctx context.Context) ([]model.WarehouseStock, error) {
	return s.replacedStocks, nil
}

func (s *stubRepository) GetWarehouseStock(ctx context.Context, sku string) (*model.WarehouseStock, error) {
	for _, ws := range s.replacedStocks {
		if ws.SKU == sku {
			return &ws, nil
		}
	}
	return nil, model.ErrStockNotFound
}

func (s *stubRepository) GetAvailability(ctx context.Context, skus []string) ([]model.StockAvailability, error) {
	return s.availability, nil
}

func (s *stubRepository) GetFBAStock(ctx context.Context) (map[string]int, error) {
	return nil, nil
}

func (s *stubRepository) ReplaceWarehouseStocks(ctx context.Context, job *model.ImportJob, stocks []model.WarehouseStock) error {
	s.replacedJob = job
	s.replacedStocks = stocks
	return nil
}

type stubCache struct {
	sets map[string]interface{}
}

func (s *stubCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}

func (s *stubCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if s.sets == nil {
		s.sets = make(map[string]interface{})
	}
	s.sets[key] = value
	return nil
}

func (s *stubCache) Delete(ctx context.Context, keys ...string) error { return nil }

func (s *stubCache) Ping(ctx context.Context) error { return nil }

var _ cache.Cache = (*stubCache)(nil)

func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestImportStocks(t *testing.T) {
	repo := &stubRepository{}
	svc := NewService(repo, &stubCache{})

	buf := buildWorkbook(t, [][]interface{}{
		{"SKU", "Main", "RSL", "Logi"},
		{"SKU-1", 50, 20, 30},
		{"SKU-2", 0, 0, 5},
	})

	result, err := svc.ImportStocks(context.Background(), "stocks.xlsx", buf)
	require.NoError(t, err)

	assert.Equal(t, 2, result.RowsTotal)
	assert.Equal(t, 2, result.RowsApplied)
	assert.Empty(t, result.RowErrors)

	require.Len(t, repo.replacedStocks, 2)
	assert.Equal(t, "SKU-1", repo.replacedStocks[0].SKU)
	assert.Equal(t, 50, repo.replacedStocks[0].MainQty)
	assert.Equal(t, 20, repo.replacedStocks[0].RslQty)
	assert.Equal(t, 30, repo.replacedStocks[0].LogiQty)
	assert.Equal(t, 100, repo.replacedStocks[0].TotalQty)

	require.NotNil(t, repo.replacedJob)
	assert.Equal(t, "stocks.xlsx", repo.replacedJob.Filename)
}

func TestImportStocks_SkipsBadRowsWithErrors(t *testing.T) {
	repo := &stubRepository{}
	svc := NewService(repo, &stubCache{})

	buf := buildWorkbook(t, [][]interface{}{
		{"product_code", "main_qty", "rsl_qty", "logi_qty"},
		{"", 10, 0, 0},
		{"SKU-2", "lots", 0, 0},
		{"SKU-3", -4, 0, 0},
		{"SKU-4", 7, "", ""},
	})

	result, err := svc.ImportStocks(context.Background(), "stocks.xlsx", buf)
	require.NoError(t, err)

	assert.Equal(t, 4, result.RowsTotal)
	assert.Equal(t, 1, result.RowsApplied)
	require.Len(t, result.RowErrors, 3)

	assert.Equal(t, 2, result.RowErrors[0].Row)
	assert.Equal(t, "sku", result.RowErrors[0].Column)
	assert.Equal(t, 3, result.RowErrors[1].Row)
	assert.Equal(t, "main", result.RowErrors[1].Column)
	assert.Equal(t, 4, result.RowErrors[2].Row)

	// The good row still lands: empty quantity cells read as zero.
	require.Len(t, repo.replacedStocks, 1)
	assert.Equal(t, "SKU-4", repo.replacedStocks[0].SKU)
	assert.Equal(t, 7, repo.replacedStocks[0].TotalQty)
}

func TestImportStocks_MissingColumn(t *testing.T) {
	svc := NewService(&stubRepository{}, &stubCache{})

	buf := buildWorkbook(t, [][]interface{}{
		{"SKU", "Main", "RSL"},
		{"SKU-1", 1, 2},
	})

	_, err := svc.ImportStocks(context.Background(), "stocks.xlsx", buf)
	assert.ErrorIs(t, err, model.ErrMissingColumn)
}

func TestImportStocks_EmptyFile(t *testing.T) {
	svc := NewService(&stubRepository{}, &stubCache{})

	buf := buildWorkbook(t, [][]interface{}{
		{"SKU", "Main", "RSL", "Logi"},
	})

	_, err := svc.ImportStocks(context.Background(), "stocks.xlsx", buf)
	assert.ErrorIs(t, err, model.ErrEmptyImportFile)
}

func TestRefreshAvailabilityCache(t *testing.T) {
	repo := &stubRepository{
		availability: []model.StockAvailability{
			{SKU: "SKU-1", OnHand: 10, Reserved: 2, Available: 8},
			{SKU: "SKU-2", OnHand: 5, Reserved: 0, Available: 5},
		},
	}
	c := &stubCache{}
	svc := NewService(repo, c)

	count, err := svc.RefreshAvailabilityCache(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, count)
	assert.Contains(t, c.sets, "inventory:availability")
}

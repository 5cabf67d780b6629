package service

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"replenish-backend/internal/domains/inventory/model"
	"replenish-backend/internal/domains/inventory/repository"
	"replenish-backend/pkg/cache"
	"replenish-backend/pkg/logger"
)

const (
	availabilityCacheKey = "inventory:availability"
	availabilityCacheTTL = time.Hour
)

// Accepted header spellings per logical column. Sheets come from several
// seller tools, so the mapping is forgiving.
var importColumns = map[string][]string{
	"sku":  {"sku", "product_code", "product code"},
	"main": {"main", "main_qty", "main qty"},
	"rsl":  {"rsl", "rsl_qty", "rsl qty"},
	"logi": {"logi", "logi_qty", "logi qty"},
}

type InventoryService struct {
	repo  repository.RepositoryInterface
	cache cache.Cache
}

// NewService creates a new inventory service
func NewService(repo repository.RepositoryInterface, cache cache.Cache) ServiceInterface {
	return &InventoryService{
		repo:  repo,
		cache: cache,
	}
}

// ImportStocks implements Service.ImportStocks.
// 1. Parse the workbook and map header names to column indexes.
// 2. Validate each row; bad rows are reported and skipped, not fatal.
// 3. Swap the snapshot in one transaction and record the import job.
func (s *InventoryService) ImportStocks(ctx context.Context, filename string, file io.Reader) (*model.ImportResult, error) {
	rows, err := readFirstSheet(file)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, model.ErrEmptyImportFile
	}

	colMap, err := buildColumnIndexMap(rows[0])
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var (
		stocks    []model.WarehouseStock
		rowErrors []model.RowError
	)

	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, after the header
		stock, rowErr := parseStockRow(row, colMap, rowNum)
		if rowErr != nil {
			rowErrors = append(rowErrors, *rowErr)
			continue
		}
		stock.UpdatedAt = now
		stocks = append(stocks, stock)
	}

	job := &model.ImportJob{
		ID:          uuid.New(),
		Filename:    filename,
		RowsTotal:   len(rows) - 1,
		RowsApplied: len(stocks),
		CreatedAt:   now,
	}

	if len(stocks) > 0 {
		if err := s.repo.ReplaceWarehouseStocks(ctx, job, stocks); err != nil {
			return nil, fmt.Errorf("failed to apply stock import: %w", err)
		}
	}

	logger.Info("inventory: stock import applied", map[string]interface{}{
		"job_id":       job.ID.String(),
		"rows_total":   job.RowsTotal,
		"rows_applied": job.RowsApplied,
		"rows_failed":  len(rowErrors),
	})

	return &model.ImportResult{
		JobID:       job.ID.String(),
		RowsTotal:   job.RowsTotal,
		RowsApplied: job.RowsApplied,
		RowErrors:   rowErrors,
	}, nil
}

func (s *InventoryService) GetWarehouseStock(ctx context.Context, sku string) (*model.WarehouseStock, error) {
	return s.repo.GetWarehouseStock(ctx, sku)
}

// RefreshAvailabilityCache implements Service.RefreshAvailabilityCache.
func (s *InventoryService) RefreshAvailabilityCache(ctx context.Context) (int, error) {
	availability, err := s.repo.GetAvailability(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to load availability: %w", err)
	}

	if err := s.cache.Set(ctx, availabilityCacheKey, availability, availabilityCacheTTL); err != nil {
		return 0, fmt.Errorf("failed to cache availability: %w", err)
	}

	return len(availability), nil
}

func readFirstSheet(file io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidImportFile, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, model.ErrInvalidImportFile
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidImportFile, err)
	}
	return rows, nil
}

// buildColumnIndexMap maps the logical columns to their position in the
// header row, tolerating the known header spellings.
func buildColumnIndexMap(header []string) (map[string]int, error) {
	colMap := make(map[string]int, len(importColumns))

	for idx, name := range header {
		normalized := strings.ToLower(strings.TrimSpace(name))
		for logical, aliases := range importColumns {
			for _, alias := range aliases {
				if normalized == alias {
					colMap[logical] = idx
				}
			}
		}
	}

	for logical := range importColumns {
		if _, ok := colMap[logical]; !ok {
			return nil, fmt.Errorf("%w: %s", model.ErrMissingColumn, logical)
		}
	}

	return colMap, nil
}

func parseStockRow(row []string, colMap map[string]int, rowNum int) (model.WarehouseStock, *model.RowError) {
	cell := func(col string) string {
		idx := colMap[col]
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	sku := cell("sku")
	if sku == "" {
		return model.WarehouseStock{}, &model.RowError{Row: rowNum, Column: "sku", Message: "sku is empty"}
	}

	qty := func(col string) (int, *model.RowError) {
		raw := cell(col)
		if raw == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, &model.RowError{Row: rowNum, Column: col, Message: fmt.Sprintf("not a whole number: %q", raw)}
		}
		if n < 0 {
			return 0, &model.RowError{Row: rowNum, Column: col, Message: "quantity cannot be negative"}
		}
		return n, nil
	}

	main, rowErr := qty("main")
	if rowErr != nil {
		return model.WarehouseStock{}, rowErr
	}
	rsl, rowErr := qty("rsl")
	if rowErr != nil {
		return model.WarehouseStock{}, rowErr
	}
	logi, rowErr := qty("logi")
	if rowErr != nil {
		return model.WarehouseStock{}, rowErr
	}

	return model.WarehouseStock{
		SKU:      sku,
		MainQty:  main,
		RslQty:   rsl,
		LogiQty:  logi,
		TotalQty: main + rsl + logi,
	}, nil
}

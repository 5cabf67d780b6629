package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"replenish-backend/internal/domains/shipment/model"
)

// BucketRows flattens a plan into export rows: only lines with a
// positive final quantity appear, one row per non-zero bucket, in line
// order with the TOOU bucket first.
func BucketRows(plan model.ShipmentPlan) []model.ExportRow {
	var rows []model.ExportRow

	for _, line := range plan.Lines {
		if line.FinalQuantity <= 0 {
			continue
		}
		if line.ToouQty > 0 {
			rows = append(rows, model.ExportRow{SKU: line.SKU, Bucket: "TOOU", Quantity: line.ToouQty})
		}
		if line.LogiQty > 0 {
			rows = append(rows, model.ExportRow{SKU: line.SKU, Bucket: "LOGI", Quantity: line.LogiQty})
		}
	}

	return rows
}

// ExportFilename names an export file with the plan's creation date,
// e.g. "shipment_plan_2026-08-30.csv".
func ExportFilename(plan model.ShipmentPlan, ext string) string {
	return fmt.Sprintf("shipment_plan_%s.%s", plan.CreatedAt.Format("2006-01-02"), ext)
}

// WriteCSV renders the bucketed rows as CSV. encoding/csv handles the
// quoting rules (commas, quotes, newlines via doubled quotes).
func WriteCSV(plan model.ShipmentPlan) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"sku", "bucket", "quantity"}); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range BucketRows(plan) {
		if err := w.Write([]string{row.SKU, row.Bucket, strconv.Itoa(row.Quantity)}); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteExcel renders the bucketed rows as an xlsx workbook with a bold
// header row and a summary block under the data.
func WriteExcel(plan model.ShipmentPlan) (*excelize.File, error) {
	f := excelize.NewFile()

	sheetName := "Shipment plan"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"SKU", "Bucket", "Quantity"}
	for colIdx, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
	})
	if err == nil {
		f.SetCellStyle(sheetName, "A1", "C1", headerStyle)
	}

	rows := BucketRows(plan)
	for i, row := range rows {
		rowNum := i + 2

		cellFor := func(col int) string {
			cell, _ := excelize.CoordinatesToCellName(col, rowNum)
			return cell
		}

		f.SetCellValue(sheetName, cellFor(1), row.SKU)
		f.SetCellValue(sheetName, cellFor(2), row.Bucket)
		f.SetCellValue(sheetName, cellFor(3), row.Quantity)
	}

	summaryRow := len(rows) + 3
	totalCell, _ := excelize.CoordinatesToCellName(1, summaryRow)
	f.SetCellValue(sheetName, totalCell, fmt.Sprintf(
		"%d shippable SKUs, %d units total, generated %s",
		plan.Summary.TotalItems, plan.Summary.TotalQuantity,
		plan.CreatedAt.Format(time.RFC3339)))

	return f, nil
}

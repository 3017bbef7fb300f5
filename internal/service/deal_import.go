package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"crm-backend/internal/database/models"
	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/logger"
	"crm-backend/internal/revalidate"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// ImportResult summarizes a bulk deal import
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors"`
}

var importColumns = []string{"name", "amount", "stage", "close_date"}

// Import creates one deal per row of a CSV or XLSX sheet. Rows without name or stage are skipped,
// rows the deal form rejects are counted as failed. Rows already imported stay when a later row fails.
func (s *DealService) Import(ctx context.Context, orgID uuid.UUID, filename string, r io.Reader) (*ImportResult, error) {
	rows, err := readImportRows(filename, r)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("validation failed: %w", apperrors.ErrImportHeaderNeeded)
	}

	columns := headerIndex(rows[0])
	if _, ok := columns["name"]; !ok {
		return nil, fmt.Errorf("validation failed: %w", apperrors.ErrImportHeaderNeeded)
	}
	if _, ok := columns["stage"]; !ok {
		return nil, fmt.Errorf("validation failed: %w", apperrors.ErrImportHeaderNeeded)
	}

	result := &ImportResult{Errors: []string{}}
	for n, row := range rows[1:] {
		line := n + 2
		values := make(map[string]string, len(importColumns))
		for _, col := range importColumns {
			if i, ok := columns[col]; ok && i < len(row) {
				values[col] = strings.TrimSpace(row[i])
			}
		}

		if values["name"] == "" || values["stage"] == "" {
			result.Skipped++
			continue
		}

		req := &DealRequest{
			Name:   values["name"],
			Amount: ParseAmount(values["amount"]),
			Stage:  models.DealStage(values["stage"]),
		}
		closeDate, err := ParseDate(values["close_date"])
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", line, err))
			continue
		}
		req.CloseDate = closeDate

		if _, err := s.create(ctx, orgID, req); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", line, err))
			continue
		}
		result.Imported++
	}

	logger.WithContext(ctx).WithFields(map[string]interface{}{
		"file":     filename,
		"imported": result.Imported,
		"skipped":  result.Skipped,
		"failed":   result.Failed,
	}).Info("deal import finished")

	if result.Imported > 0 {
		notify(ctx, s.notifier, orgID, revalidate.PathDeals, revalidate.PathDashboard)
	}
	return result, nil
}

func readImportRows(filename string, r io.Reader) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		reader := csv.NewReader(r)
		reader.FieldsPerRecord = -1
		reader.TrimLeadingSpace = true
		rows, err := reader.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("validation failed: %w", apperrors.NewValidationError("file", "malformed csv: "+err.Error()))
		}
		return rows, nil
	case ".xlsx":
		f, err := excelize.OpenReader(r)
		if err != nil {
			return nil, fmt.Errorf("validation failed: %w", apperrors.NewValidationError("file", "malformed xlsx: "+err.Error()))
		}
		defer f.Close()

		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil
		}
		rows, err := f.GetRows(sheets[0])
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
		}
		return rows, nil
	default:
		return nil, fmt.Errorf("validation failed: %w", apperrors.ErrUnsupportedImport)
	}
}

func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		key = strings.ReplaceAll(key, " ", "_")
		if _, seen := index[key]; !seen {
			index[key] = i
		}
	}
	return index
}

package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/entity"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/enum"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/repository"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/pkg/apperror"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/pkg/pagination"
)

// Export formats
const (
	ExportFormatCSV  = "csv"
	ExportFormatXLSX = "xlsx"
)

var transactionExportHeader = []string{
	"Reference", "Type", "Issued At", "Guest", "Status",
	"Gross Subtotal", "Discount", "Base Value", "Tax", "Total", "Paid", "Balance",
}

var inventoryExportHeader = []string{
	"Name", "Category", "Unit", "Price", "Initial Stock", "Sold", "Remaining", "Revenue",
}

// ExportFile is a rendered export ready to stream to the client
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders transaction registers and inventory reports as
// CSV or XLSX downloads.
type ExportService struct {
	txnRepo      repository.TransactionRepository
	menuItemRepo repository.MenuItemRepository
	maxRows      int
}

// NewExportService creates a new export service
func NewExportService(txnRepo repository.TransactionRepository, menuItemRepo repository.MenuItemRepository, maxRows int) *ExportService {
	if maxRows <= 0 {
		maxRows = 50000
	}
	return &ExportService{
		txnRepo:      txnRepo,
		menuItemRepo: menuItemRepo,
		maxRows:      maxRows,
	}
}

// ExportTransactionsInput represents the export filter
type ExportTransactionsInput struct {
	Format    string
	Type      *enum.TransactionType
	Status    *enum.SettlementStatus
	StartDate *time.Time
	EndDate   *time.Time
}

// ExportTransactions renders the filtered transaction register
func (s *ExportService) ExportTransactions(ctx context.Context, input *ExportTransactionsInput) (*ExportFile, error) {
	format, err := normalizeFormat(input.Format)
	if err != nil {
		return nil, err
	}

	params := &repository.TransactionFilterParams{
		Type:      input.Type,
		Status:    input.Status,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		SortBy:    "issued_at",
		SortOrder: "ASC",
	}
	// List clamps per-page for API responses; exports page through until
	// maxRows or the result set runs out.
	rows := make([][]string, 0, 256)
	fetched := 0
	for page := 1; fetched < s.maxRows; page++ {
		params.Pagination = &pagination.PaginationParams{Page: page, PerPage: 100}
		txns, _, err := s.txnRepo.List(ctx, params)
		if err != nil {
			return nil, err
		}
		if len(txns) == 0 {
			break
		}
		for _, txn := range txns {
			if fetched >= s.maxRows {
				break
			}
			rows = append(rows, transactionRow(&txn))
			fetched++
		}
		if len(txns) < 100 {
			break
		}
	}

	stamp := time.Now().Format("20060102-150405")
	return renderExport(format, "transactions-"+stamp, "Transactions", transactionExportHeader, rows)
}

// ExportInventory renders the current stock position of every menu item
func (s *ExportService) ExportInventory(ctx context.Context, format string) (*ExportFile, error) {
	normalized, err := normalizeFormat(format)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, 256)
	fetched := 0
	for page := 1; fetched < s.maxRows; page++ {
		items, _, err := s.menuItemRepo.List(ctx, &repository.MenuItemFilterParams{
			Pagination: &pagination.PaginationParams{Page: page, PerPage: 100},
			SortBy:     "name",
			SortOrder:  "ASC",
		})
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			break
		}
		for _, item := range items {
			if fetched >= s.maxRows {
				break
			}
			rows = append(rows, inventoryRow(&item))
			fetched++
		}
		if len(items) < 100 {
			break
		}
	}

	stamp := time.Now().Format("20060102-150405")
	return renderExport(normalized, "inventory-"+stamp, "Inventory", inventoryExportHeader, rows)
}

func transactionRow(txn *entity.Transaction) []string {
	return []string{
		txn.Reference,
		txn.Type.String(),
		txn.IssuedAt.Format("2006-01-02 15:04"),
		txn.GuestName,
		txn.Status.String(),
		money(txn.GrossSubtotal),
		money(txn.Discount),
		money(txn.BaseValue),
		money(txn.TotalAmount - txn.BaseValue),
		money(txn.TotalAmount),
		money(txn.PaidAmount),
		money(txn.Balance),
	}
}

func inventoryRow(item *entity.MenuItem) []string {
	return []string{
		item.Name,
		item.Category,
		item.MeasureUnit,
		money(item.Price),
		strconv.Itoa(item.InitialStock),
		strconv.Itoa(item.Sold),
		strconv.Itoa(item.Remaining()),
		money(item.Revenue()),
	}
}

func money(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}

func normalizeFormat(format string) (string, error) {
	switch format {
	case "", ExportFormatCSV:
		return ExportFormatCSV, nil
	case ExportFormatXLSX:
		return ExportFormatXLSX, nil
	default:
		return "", apperror.NewBadRequestError("Unsupported export format: " + format)
	}
}

func renderExport(format, baseName, sheetName string, header []string, rows [][]string) (*ExportFile, error) {
	if format == ExportFormatXLSX {
		data, err := renderXLSX(sheetName, header, rows)
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			Filename:    baseName + ".xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}, nil
	}

	data, err := renderCSV(header, rows)
	if err != nil {
		return nil, err
	}
	return &ExportFile{
		Filename:    baseName + ".csv",
		ContentType: "text/csv",
		Data:        data,
	}, nil
}

func renderCSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderXLSX(sheetName string, header []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	headerRow := make([]interface{}, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &headerRow); err != nil {
		return nil, err
	}

	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

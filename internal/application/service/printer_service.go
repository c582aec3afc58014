package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/entity"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/enum"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/repository"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/pkg/apperror"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/pkg/printer"
)

// Full-width paper for folio and proforma documents
const folioCharWidth = 48

// PrinterService renders transactions into thermal dockets and prints them.
type PrinterService struct {
	printer         printer.Printer
	txnRepo         repository.TransactionRepository
	settingsService *SettingsService
	printerType     string
	posCharWidth    int
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	txnRepo repository.TransactionRepository,
	settingsService *SettingsService,
	printerType string,
	posCharWidth int,
) *PrinterService {
	if posCharWidth <= 0 {
		posCharWidth = 32
	}
	return &PrinterService{
		printer:         p,
		txnRepo:         txnRepo,
		settingsService: settingsService,
		printerType:     printerType,
		posCharWidth:    posCharWidth,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// TestPrint sends a test page to the printer.
// Returns the docket data so the handler can return it as JSON when printing
// is disabled.
func (s *PrinterService) TestPrint() (*entity.Docket, error) {
	docket := &entity.Docket{
		Header: entity.DocketHeader{
			PropertyName: "PRINTER TEST",
			Address:      "Test Address",
			Phone:        "+234 000 000 0000",
		},
		Reference: "TEST-0001",
		Kind:      "POS",
		Date:      "Test Date",
		Cashier:   "System",
		Items: []entity.DocketItem{
			{Name: "Test Item 1", Quantity: 1, UnitPrice: 1000, Total: 1000},
			{Name: "Test Item 2", Quantity: 2, UnitPrice: 500, Total: 1000},
		},
		SubTotal: 2000,
		Total:    2000,
		Paid:     2000,
	}

	data := FormatDocket(docket, s.posCharWidth)
	if err := s.printer.Print(data); err != nil {
		return docket, fmt.Errorf("test print failed: %w", err)
	}
	return docket, nil
}

// PrintTransaction renders a transaction's docket and sends it to the
// printer. POS sales print narrow; folios and proformas print full width
// with settlement instructions.
func (s *PrinterService) PrintTransaction(ctx context.Context, id uuid.UUID) (*entity.Docket, error) {
	docket, err := s.BuildDocket(ctx, id)
	if err != nil {
		return nil, err
	}

	width := s.posCharWidth
	if docket.Kind != enum.TransactionTypePOS.String() {
		width = folioCharWidth
	}

	data := FormatDocket(docket, width)
	if err := s.printer.Print(data); err != nil {
		log.Printf("Printer error (transaction %s): %v", id, err)
		return docket, fmt.Errorf("failed to print docket: %w", err)
	}
	return docket, nil
}

// BuildDocket composes the printable document from a transaction and the
// current receipt header settings. Financials come from the transaction's
// stored snapshot, never recomputed at print time.
func (s *PrinterService) BuildDocket(ctx context.Context, id uuid.UUID) (*entity.Docket, error) {
	txn, err := s.txnRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}

	settings, err := s.settingsService.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	docket := &entity.Docket{
		Header: entity.DocketHeader{
			PropertyName: settings.ReceiptName,
			Address:      settings.ReceiptAddress,
			Phone:        settings.ReceiptPhone,
			TaxID:        settings.ReceiptTaxID,
		},
		Reference: txn.Reference,
		Kind:      txn.Type.String(),
		Date:      txn.IssuedAt.Format("2006-01-02 15:04"),
		Guest:     txn.GuestName,
		SubTotal:  txn.GrossSubtotal,
		Discount:  txn.Discount,
		Total:     txn.TotalAmount,
		Paid:      txn.PaidAmount,
		Balance:   txn.Balance,
		Footer:    settings.ReceiptFooter,
	}

	if txn.Unit != nil {
		docket.Header.UnitName = txn.Unit.Name
	}
	if txn.User.FirstName != "" || txn.User.LastName != "" {
		docket.Cashier = txn.User.FirstName + " " + txn.User.LastName
	}
	if txn.StayStart != nil && txn.StayEnd != nil {
		docket.Stay = txn.StayStart.Format("02 Jan 2006") + " - " + txn.StayEnd.Format("02 Jan 2006")
	}

	for _, line := range txn.Lines {
		docket.Items = append(docket.Items, entity.DocketItem{
			Name:      line.Description,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Total:     line.LineTotal,
		})
	}

	// Visible taxes only; VAT-like kinds share one line, service charge
	// prints on its own
	var vatTotal float64
	var hasVAT bool
	for _, tax := range txn.Taxes {
		if !tax.VisibleOnReceipt {
			continue
		}
		if tax.Kind.IsVATLike() {
			vatTotal += tax.Amount
			hasVAT = true
			continue
		}
		docket.Taxes = append(docket.Taxes, entity.DocketTax{
			Name:   tax.Name,
			Amount: tax.Amount,
		})
	}
	if hasVAT {
		docket.Taxes = append([]entity.DocketTax{{Name: "VAT", Amount: vatTotal}}, docket.Taxes...)
	}

	// Settlement instructions only make sense while a balance is open
	if txn.Type != enum.TransactionTypePOS && txn.Unit != nil && txn.Balance > 0 {
		for _, bank := range txn.Unit.BankAccounts {
			docket.Banks = append(docket.Banks, entity.DocketBank{
				BankName:      bank.BankName,
				AccountName:   bank.AccountName,
				AccountNumber: bank.AccountNumber,
			})
		}
	}

	return docket, nil
}

// FormatDocket converts a Docket into ESC/POS bytes at the given paper width.
func FormatDocket(d *entity.Docket, charWidth int) []byte {
	doc := printer.NewDocument(charWidth)

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(d.Header.PropertyName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if d.Header.UnitName != "" {
		doc.Text(d.Header.UnitName)
	}
	if d.Header.Address != "" {
		doc.WrappedText(d.Header.Address)
	}
	if d.Header.Phone != "" {
		doc.Text(d.Header.Phone)
	}
	if d.Header.TaxID != "" {
		doc.TextF("Tax ID: %s", d.Header.TaxID)
	}

	if d.Kind == enum.TransactionTypeProforma.String() {
		doc.LineFeed().
			SetBold(true).
			Text("PROFORMA INVOICE").
			SetBold(false).
			Text("This is not a receipt of payment")
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	// Document info
	doc.KeyValue("Ref:", d.Reference).
		KeyValue("Date:", d.Date)

	if d.Cashier != "" {
		doc.KeyValue("Cashier:", d.Cashier)
	}
	if d.Guest != "" {
		doc.KeyValue("Guest:", d.Guest)
	}
	if d.Stay != "" {
		doc.KeyValue("Stay:", d.Stay)
	}

	doc.Separator('-')

	// Charge lines
	for _, item := range d.Items {
		doc.ItemLine(item.Quantity, item.Name, printer.FormatMoney(item.Total))
		if item.Quantity > 1 {
			doc.TextF("  @ %s each", printer.FormatMoney(item.UnitPrice))
		}
	}

	doc.Separator('-')

	// Totals
	doc.KeyValue("Subtotal:", printer.FormatMoney(d.SubTotal))
	if d.Discount > 0 {
		doc.KeyValue("Discount:", "-"+printer.FormatMoney(d.Discount))
	}
	for _, tax := range d.Taxes {
		doc.KeyValue(tax.Name+":", printer.FormatMoney(tax.Amount))
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", printer.FormatMoney(d.Total)).
		SetBold(false)

	if d.Paid > 0 {
		doc.KeyValue("Paid:", printer.FormatMoney(d.Paid))
	}
	if d.Balance > 0 {
		doc.SetBold(true).
			KeyValue("BALANCE DUE:", printer.FormatMoney(d.Balance)).
			SetBold(false)
	}

	// Settlement instructions
	if len(d.Banks) > 0 {
		doc.Separator('-').
			SetBold(true).
			Text("Payment details").
			SetBold(false)
		for _, bank := range d.Banks {
			doc.Text(bank.BankName).
				KeyValue(bank.AccountName, bank.AccountNumber)
		}
	}

	doc.Separator('-')

	// Footer
	if d.Footer != "" {
		doc.SetAlign(printer.AlignCenter).
			LineFeed().
			WrappedText(d.Footer).
			LineFeed().
			SetAlign(printer.AlignLeft)
	}

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}

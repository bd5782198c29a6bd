package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tmcosta/vendas-pos-api/internal/config"
	"github.com/tmcosta/vendas-pos-api/internal/domain/entity"
	"github.com/tmcosta/vendas-pos-api/internal/domain/enum"
	domainRepo "github.com/tmcosta/vendas-pos-api/internal/domain/repository"
	"github.com/tmcosta/vendas-pos-api/pkg/apperror"
	"github.com/tmcosta/vendas-pos-api/pkg/printer"
	"go.uber.org/zap"
)

// PrinterService assembles receipts from posted sales and drives the
// configured thermal printer. Amounts are carried over from the sale
// verbatim; this service never recomputes totals.
type PrinterService struct {
	saleRepo domainRepo.SaleRepository
	userRepo domainRepo.UserRepository
	device   printer.Printer
	company  config.CompanyConfig
	width    int
}

// NewPrinterService creates a new printer service
func NewPrinterService(
	saleRepo domainRepo.SaleRepository,
	userRepo domainRepo.UserRepository,
	device printer.Printer,
	company config.CompanyConfig,
	width int,
) *PrinterService {
	if width <= 0 {
		width = 32
	}
	return &PrinterService{
		saleRepo: saleRepo,
		userRepo: userRepo,
		device:   device,
		company:  company,
		width:    width,
	}
}

// BuildReceipt assembles a receipt value object from a posted sale.
func (s *PrinterService) BuildReceipt(ctx context.Context, saleID uuid.UUID) (*entity.Receipt, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, saleID)
	if err != nil {
		return nil, apperror.NewStorageError(err)
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}

	receipt := &entity.Receipt{
		Header: entity.ReceiptHeader{
			StoreName: s.company.Name,
			Address:   s.company.Address,
			Phone:     s.company.Phone,
			NIF:       s.company.NIF,
		},
		SaleNumber:     sale.SaleNumber,
		Date:           sale.CreatedAt.Format("2006-01-02 15:04:05"),
		PaymentMethod:  sale.PaymentMethod.String(),
		Subtotal:       sale.Subtotal,
		DiscountAmount: sale.DiscountAmount,
		TaxAmount:      sale.TaxAmount,
		Total:          sale.Total,
		AmountTendered: sale.AmountTendered,
		ChangeDue:      sale.ChangeDue,
		Currency:       s.company.CurrencySymbol,
	}

	if sale.Customer != nil {
		receipt.Customer = sale.Customer.Name
	}
	cashier, err := s.userRepo.GetByID(ctx, sale.CashierID)
	if err == nil && cashier != nil {
		receipt.Cashier = cashier.FullName
	}

	receipt.Items = make([]entity.ReceiptItem, 0, len(sale.Items))
	for _, item := range sale.Items {
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			Name:      item.ProductName,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			IVARate:   item.IVARate,
			LineTotal: item.LineTotal,
		})
	}
	return receipt, nil
}

// FormatReceipt renders a receipt as an ESC/POS byte stream.
func (s *PrinterService) FormatReceipt(receipt *entity.Receipt) []byte {
	doc := printer.NewDocument(s.width)

	doc.Align(printer.AlignCenter).Bold(true).Size(printer.SizeDouble)
	doc.Line(receipt.Header.StoreName)
	doc.Size(printer.SizeNormal).Bold(false)
	if receipt.Header.Address != "" {
		doc.Line(receipt.Header.Address)
	}
	if receipt.Header.Phone != "" {
		doc.Line("Tel: " + receipt.Header.Phone)
	}
	if receipt.Header.NIF != "" {
		doc.Line("NIF: " + receipt.Header.NIF)
	}
	doc.Align(printer.AlignLeft).Rule('=')

	doc.Cols("Venda: "+receipt.SaleNumber, "")
	doc.Line(receipt.Date)
	if receipt.Cashier != "" {
		doc.Line("Operador: " + receipt.Cashier)
	}
	if receipt.Customer != "" {
		doc.Line("Cliente: " + receipt.Customer)
	}
	doc.Rule('-')

	for _, item := range receipt.Items {
		doc.Line(item.Name)
		doc.Cols(
			fmt.Sprintf("  %d x %s %s", item.Quantity, item.UnitPrice.StringFixed(2), ivaBadge(item.IVARate)),
			item.LineTotal.StringFixed(2)+" "+receipt.Currency,
		)
	}
	doc.Rule('-')

	doc.Cols("Subtotal", receipt.Subtotal.StringFixed(2)+" "+receipt.Currency)
	if receipt.DiscountAmount.IsPositive() {
		doc.Cols("Desconto", "-"+receipt.DiscountAmount.StringFixed(2)+" "+receipt.Currency)
		discounted := receipt.Subtotal.Sub(receipt.DiscountAmount)
		doc.Cols("Subtotal c/ Desc", discounted.StringFixed(2)+" "+receipt.Currency)
	}
	doc.Cols("IVA", receipt.TaxAmount.StringFixed(2)+" "+receipt.Currency)
	doc.Bold(true)
	doc.Cols("TOTAL", receipt.Total.StringFixed(2)+" "+receipt.Currency)
	doc.Bold(false)

	if receipt.PaymentMethod == enum.PaymentCash.String() {
		doc.Cols("Valor Pago", receipt.AmountTendered.StringFixed(2)+" "+receipt.Currency)
		doc.Cols("Troco", receipt.ChangeDue.StringFixed(2)+" "+receipt.Currency)
	}
	doc.Cols("Pagamento", receipt.PaymentMethod)

	doc.Rule('=')
	doc.Align(printer.AlignCenter)
	doc.Line("Obrigado pela sua visita!")
	doc.Feed(3).Cut()

	return doc.Bytes()
}

// PrintSaleReceipt builds, formats and sends a sale's receipt to the printer.
func (s *PrinterService) PrintSaleReceipt(ctx context.Context, saleID uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.BuildReceipt(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if err := s.device.Print(s.FormatReceipt(receipt)); err != nil {
		zap.L().Error("receipt print failed", zap.String("sale_number", receipt.SaleNumber), zap.Error(err))
		return nil, apperror.NewAppError(503, "Printer error: "+err.Error())
	}
	return receipt, nil
}

// TestPrint sends a short test page to the printer
func (s *PrinterService) TestPrint() error {
	doc := printer.NewDocument(s.width)
	doc.Align(printer.AlignCenter).Bold(true)
	doc.Line(s.company.Name)
	doc.Bold(false)
	doc.Line("Teste de impressora OK")
	doc.Feed(3).Cut()

	if err := s.device.Print(doc.Bytes()); err != nil {
		return apperror.NewAppError(503, "Printer error: "+err.Error())
	}
	return nil
}

// IsConnected reports whether the configured printer is reachable
func (s *PrinterService) IsConnected() bool {
	return s.device.IsConnected()
}

// ivaBadge renders the per-line tax marker: ISENTO at 0%, otherwise the
// percent value, e.g. "IVA 14%".
func ivaBadge(rate decimal.Decimal) string {
	if rate.IsZero() {
		return "ISENTO"
	}
	return "IVA " + rate.Mul(decimal.NewFromInt(100)).Round(0).String() + "%"
}

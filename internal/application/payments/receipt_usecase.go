package payments

import (
	"context"
	"fmt"

	"github.com/jhoicas/boutique-api/internal/application/ports"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/ledger"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

// ReceiptUseCase genera el comprobante PDF de un abono.
type ReceiptUseCase struct {
	paymentRepo  repository.PaymentRepository
	orderRepo    repository.OrderRepository
	generator    ports.ReceiptPDFGenerator
	businessName string
}

// NewReceiptUseCase construye el caso de uso inyectando todas sus dependencias.
func NewReceiptUseCase(paymentRepo repository.PaymentRepository, orderRepo repository.OrderRepository, generator ports.ReceiptPDFGenerator, businessName string) *ReceiptUseCase {
	return &ReceiptUseCase{paymentRepo: paymentRepo, orderRepo: orderRepo, generator: generator, businessName: businessName}
}

// Download devuelve (pdfBytes, filename). El saldo impreso se recalcula desde los abonos.
func (uc *ReceiptUseCase) Download(ctx context.Context, paymentID string) ([]byte, string, error) {
	p, err := uc.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: obtener pago: %w", err)
	}
	if p == nil {
		return nil, "", domain.ErrNotFound
	}
	order, err := uc.orderRepo.GetByID(ctx, p.OrderID)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: obtener orden: %w", err)
	}
	if order == nil {
		return nil, "", domain.ErrNotFound
	}
	history, err := uc.paymentRepo.ListByOrder(ctx, order.ID)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: listar pagos: %w", err)
	}
	ledger.Reconcile(order, history)
	for _, h := range history {
		if h.ID == p.ID {
			p = h
		}
	}
	pdf, err := uc.generator.GenerateReceiptPDF(ctx, ports.ReceiptData{
		BusinessName: uc.businessName,
		Payment:      p,
		Order:        order,
		Status:       ledger.PaymentStatus(p),
		History:      history,
	})
	if err != nil {
		return nil, "", fmt.Errorf("receipt: generar pdf: %w", err)
	}
	return pdf, fmt.Sprintf("recibo_%s.pdf", p.PaymentCode), nil
}

package ports

import (
	"context"

	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// ReceiptData datos necesarios para el comprobante de un abono.
type ReceiptData struct {
	BusinessName string
	Payment      *entity.Payment
	Order        *entity.Order
	Status       entity.PaymentStatus
	// History todos los abonos de la orden en orden cronológico (incluye Payment).
	History []*entity.Payment
}

// ReceiptPDFGenerator puerto de salida para generar el comprobante en PDF.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, data ReceiptData) ([]byte, error)
}

package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/boutique-api/internal/application/ports"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":         "$0.00",
		"999.9":     "$999.90",
		"1000":      "$1,000.00",
		"12500.5":   "$12,500.50",
		"1234567.1": "$1,234,567.10",
		"-2500":     "-$2,500.00",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestGenerateReceiptPDF(t *testing.T) {
	day := time.Date(2030, 5, 15, 10, 0, 0, 0, time.UTC)
	order := &entity.Order{
		ID: "o1", OrderCode: "ORD001", CustomerName: "Ana", DressType: "Lehenga",
		DeliveryDate: day.AddDate(0, 0, 10), Status: entity.OrderStatusInStitching,
		Amount: decimal.NewFromInt(1000),
	}
	first := &entity.Payment{
		ID: "p1", PaymentCode: "PAY001", OrderID: "o1", OrderCode: "ORD001",
		TotalOrderAmount: decimal.NewFromInt(1000), AdvancePaid: decimal.NewFromInt(600),
		BalanceAmount: decimal.NewFromInt(400), PaymentMode: entity.PaymentModeCash, PaymentDate: day,
	}

	out, err := NewMarotoPDFGenerator().GenerateReceiptPDF(context.Background(), ports.ReceiptData{
		BusinessName: "Boutique Ana",
		Payment:      first,
		Order:        order,
		Status:       entity.PaymentStatusPartial,
		History:      []*entity.Payment{first},
	})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateReceiptPDF_RequiresPaymentAndOrder(t *testing.T) {
	_, err := NewMarotoPDFGenerator().GenerateReceiptPDF(context.Background(), ports.ReceiptData{})
	assert.Error(t, err)
}

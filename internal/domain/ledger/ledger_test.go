package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/ledger"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestStatusOf(t *testing.T) {
	assert.Equal(t, entity.PaymentStatusPending, ledger.StatusOf(d(1000), d(1000)))
	assert.Equal(t, entity.PaymentStatusPartial, ledger.StatusOf(d(1000), d(400)))
	assert.Equal(t, entity.PaymentStatusCompleted, ledger.StatusOf(d(1000), d(0)))
	assert.Equal(t, entity.PaymentStatusCompleted, ledger.StatusOf(d(0), d(0)))
}

// El saldo de cada pago es siempre amount - suma de abonos de la orden.
func TestReconcile_EveryPaymentCarriesOrderBalance(t *testing.T) {
	order := &entity.Order{Amount: d(1000)}
	payments := []*entity.Payment{
		{AdvancePaid: d(600)},
		{AdvancePaid: d(300)},
	}

	balance := ledger.Reconcile(order, payments)

	assert.True(t, balance.Equal(d(100)))
	for _, p := range payments {
		assert.True(t, p.TotalOrderAmount.Equal(d(1000)))
		assert.True(t, p.BalanceAmount.Equal(d(100)))
		assert.Equal(t, entity.PaymentStatusPartial, ledger.PaymentStatus(p))
	}
}

func TestCanAccept(t *testing.T) {
	assert.True(t, ledger.CanAccept(d(1000), d(600), d(400)))
	assert.False(t, ledger.CanAccept(d(1000), d(1000), d(1)))
	assert.False(t, ledger.CanAccept(d(1000), d(0), d(1001)))
}

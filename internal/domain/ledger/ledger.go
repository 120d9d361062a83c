// Package ledger deriva saldos y estados de pago a partir de los abonos de una orden.
// Todo aquí es puro: el conciliador lo invoca dentro de la transacción que bloquea la orden.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// TotalPaid suma los abonos (modelo por cuota).
func TotalPaid(payments []*entity.Payment) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range payments {
		sum = sum.Add(p.AdvancePaid)
	}
	return sum
}

// Balance saldo pendiente = total de la orden - lo pagado.
func Balance(orderAmount, paid decimal.Decimal) decimal.Decimal {
	return orderAmount.Sub(paid)
}

// StatusOf deriva el estado: saldo <= 0 -> Completed; nada pagado -> Pending; si no -> Partial.
func StatusOf(total, balance decimal.Decimal) entity.PaymentStatus {
	if balance.LessThanOrEqual(decimal.Zero) {
		return entity.PaymentStatusCompleted
	}
	if total.Sub(balance).LessThanOrEqual(decimal.Zero) {
		return entity.PaymentStatusPending
	}
	return entity.PaymentStatusPartial
}

// PaymentStatus estado derivado de un pago ya conciliado.
func PaymentStatus(p *entity.Payment) entity.PaymentStatus {
	return StatusOf(p.TotalOrderAmount, p.BalanceAmount)
}

// Reconcile recalcula, en sitio, el total y el saldo de TODOS los pagos de una orden.
// Cada pago refleja el saldo de la orden completa: amount - sum(abonos).
func Reconcile(order *entity.Order, payments []*entity.Payment) decimal.Decimal {
	balance := Balance(order.Amount, TotalPaid(payments))
	for _, p := range payments {
		p.TotalOrderAmount = order.Amount
		p.BalanceAmount = balance
	}
	return balance
}

// CanAccept informa si un abono de amount cabe en el saldo dado lo ya pagado.
func CanAccept(orderAmount, alreadyPaid, amount decimal.Decimal) bool {
	return !Balance(orderAmount, alreadyPaid.Add(amount)).IsNegative()
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMode medio de pago.
type PaymentMode string

const (
	PaymentModeCash         PaymentMode = "Cash"
	PaymentModeUPI          PaymentMode = "UPI"
	PaymentModeCard         PaymentMode = "Card"
	PaymentModeCheque       PaymentMode = "Cheque"
	PaymentModeBankTransfer PaymentMode = "Bank Transfer"
)

// PaymentModes todos los medios aceptados.
var PaymentModes = []PaymentMode{
	PaymentModeCash, PaymentModeUPI, PaymentModeCard, PaymentModeCheque, PaymentModeBankTransfer,
}

// Valid informa si el medio es aceptado.
func (m PaymentMode) Valid() bool {
	for _, k := range PaymentModes {
		if k == m {
			return true
		}
	}
	return false
}

// PaymentStatus estado derivado del saldo.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "Pending"
	PaymentStatusPartial   PaymentStatus = "Partial"
	PaymentStatusCompleted PaymentStatus = "Completed"
)

// Valid informa si el estado es uno de los conocidos.
func (s PaymentStatus) Valid() bool {
	return s == PaymentStatusPending || s == PaymentStatusPartial || s == PaymentStatusCompleted
}

// Payment un abono contra una orden. AdvancePaid es el monto de ESTE abono (modelo por cuota).
// TotalOrderAmount y BalanceAmount los recalcula el conciliador en cada escritura sobre la orden;
// nunca se asignan desde la entrada del cliente.
type Payment struct {
	ID               string
	PaymentCode      string // PAY001
	OrderID          string
	OrderCode        string // solo lectura (join)
	CustomerID       string
	CustomerName     string
	TotalOrderAmount decimal.Decimal
	AdvancePaid      decimal.Decimal
	BalanceAmount    decimal.Decimal
	PaymentMode      PaymentMode
	PaymentDate      time.Time
	Notes            string
	RecordedBy       string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

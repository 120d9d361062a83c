// Package payments concilia los abonos contra el monto de cada orden.
//
// Modelo por cuota: cada Payment guarda el monto de ESE abono. El saldo de la orden es
// amount - sum(abonos) y se escribe en todos los pagos de la orden en cada alta, edición o
// baja, dentro de una transacción que bloquea la fila de la orden. Así dos abonos
// concurrentes nunca calculan el saldo sobre datos viejos.
package payments

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/application/ports"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/ledger"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
	"github.com/jhoicas/boutique-api/internal/domain/sequence"
)

// UseCase conciliador de pagos.
type UseCase struct {
	tx          ports.TxRunner
	paymentRepo repository.PaymentRepository
	orderRepo   repository.OrderRepository
	metrics     ports.Metrics
	now         func() time.Time
}

// NewUseCase construye el conciliador. metrics puede ser nil.
func NewUseCase(tx ports.TxRunner, paymentRepo repository.PaymentRepository, orderRepo repository.OrderRepository, metrics ports.Metrics) *UseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &UseCase{tx: tx, paymentRepo: paymentRepo, orderRepo: orderRepo, metrics: metrics, now: time.Now}
}

// Record registra un abono. Rechaza con ErrAmountExceedsBalance si lo pagado superaría el
// monto de la orden; en ese caso nada cambia.
func (uc *UseCase) Record(ctx context.Context, actorID string, in dto.RecordPaymentRequest) (*dto.PaymentResponse, error) {
	if err := domain.Required("order_id", in.OrderID); err != nil {
		return nil, err
	}
	if !in.Amount.IsPositive() {
		return nil, domain.NewValidationError("amount", "debe ser mayor que cero")
	}
	if err := domain.CheckScale("amount", in.Amount); err != nil {
		return nil, err
	}
	mode, err := ParseMode(in.PaymentMode)
	if err != nil {
		return nil, err
	}

	var payment *entity.Payment
	err = uc.tx.Run(ctx, func(repos ports.TxRepos) error {
		order, err := repos.Orders.GetForUpdate(ctx, in.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("orden %s: %w", in.OrderID, domain.ErrNotFound)
		}
		existing, err := repos.Payments.ListByOrder(ctx, order.ID)
		if err != nil {
			return err
		}
		paid := ledger.TotalPaid(existing)
		if !ledger.CanAccept(order.Amount, paid, in.Amount) {
			return domain.ErrAmountExceedsBalance
		}
		n, err := repos.Sequences.Next(ctx, sequence.PrefixPayment)
		if err != nil {
			return err
		}
		now := uc.now()
		paymentDate := now
		if in.PaymentDate != nil && !in.PaymentDate.IsZero() {
			paymentDate = *in.PaymentDate
		}
		payment = &entity.Payment{
			ID:           uuid.New().String(),
			PaymentCode:  sequence.Format(sequence.PrefixPayment, n),
			OrderID:      order.ID,
			OrderCode:    order.OrderCode,
			CustomerID:   order.CustomerID,
			CustomerName: order.CustomerName,
			AdvancePaid:  in.Amount,
			PaymentMode:  mode,
			PaymentDate:  paymentDate,
			Notes:        strings.TrimSpace(in.Notes),
			RecordedBy:   actorID,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		ledger.Reconcile(order, append(existing, payment))
		if err := repos.Payments.Create(ctx, payment); err != nil {
			return err
		}
		return repos.Payments.SetBalances(ctx, order.ID, payment.TotalOrderAmount, payment.BalanceAmount)
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.PaymentRecorded(string(mode))
	return ToPaymentResponse(payment), nil
}

// Update corrige monto, medio, fecha o notas de un abono y recalcula todos los pagos de la orden.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdatePaymentRequest) (*dto.PaymentResponse, error) {
	var payment *entity.Payment
	err := uc.tx.Run(ctx, func(repos ports.TxRepos) error {
		order, all, target, err := lockOrderOf(ctx, repos, id)
		if err != nil {
			return err
		}
		if in.Amount != nil {
			if !in.Amount.IsPositive() {
				return domain.NewValidationError("amount", "debe ser mayor que cero")
			}
			if err := domain.CheckScale("amount", *in.Amount); err != nil {
				return err
			}
			target.AdvancePaid = *in.Amount
		}
		if in.PaymentMode != nil {
			mode, err := ParseMode(*in.PaymentMode)
			if err != nil {
				return err
			}
			target.PaymentMode = mode
		}
		if in.PaymentDate != nil && !in.PaymentDate.IsZero() {
			target.PaymentDate = *in.PaymentDate
		}
		if in.Notes != nil {
			target.Notes = strings.TrimSpace(*in.Notes)
		}
		if ledger.Reconcile(order, all).IsNegative() {
			return domain.ErrAmountExceedsBalance
		}
		target.UpdatedAt = uc.now()
		if err := repos.Payments.Update(ctx, target); err != nil {
			return err
		}
		payment = target
		return repos.Payments.SetBalances(ctx, order.ID, target.TotalOrderAmount, target.BalanceAmount)
	})
	if err != nil {
		return nil, err
	}
	return ToPaymentResponse(payment), nil
}

// Delete borra un abono y recalcula los restantes de la orden.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	return uc.tx.Run(ctx, func(repos ports.TxRepos) error {
		order, all, target, err := lockOrderOf(ctx, repos, id)
		if err != nil {
			return err
		}
		remaining := make([]*entity.Payment, 0, len(all)-1)
		for _, p := range all {
			if p.ID != target.ID {
				remaining = append(remaining, p)
			}
		}
		if err := repos.Payments.Delete(ctx, target.ID); err != nil {
			return err
		}
		balance := ledger.Reconcile(order, remaining)
		return repos.Payments.SetBalances(ctx, order.ID, order.Amount, balance)
	})
}

// lockOrderOf bloquea la orden del pago y devuelve todos sus pagos releídos bajo el bloqueo,
// con target apuntando al pago pedido dentro de ese slice.
func lockOrderOf(ctx context.Context, repos ports.TxRepos, paymentID string) (*entity.Order, []*entity.Payment, *entity.Payment, error) {
	p, err := repos.Payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, nil, nil, err
	}
	if p == nil {
		return nil, nil, nil, domain.ErrNotFound
	}
	order, err := repos.Orders.GetForUpdate(ctx, p.OrderID)
	if err != nil {
		return nil, nil, nil, err
	}
	if order == nil {
		return nil, nil, nil, fmt.Errorf("orden %s del pago %s: %w", p.OrderID, p.ID, domain.ErrNotFound)
	}
	all, err := repos.Payments.ListByOrder(ctx, order.ID)
	if err != nil {
		return nil, nil, nil, err
	}
	for _, candidate := range all {
		if candidate.ID == paymentID {
			return order, all, candidate, nil
		}
	}
	return nil, nil, nil, domain.ErrNotFound
}

// GetByID obtiene un abono con su estado derivado.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.PaymentResponse, error) {
	p, err := uc.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return ToPaymentResponse(p), nil
}

// List abonos con filtros. El filtro de estado se aplica sobre el estado derivado.
func (uc *UseCase) List(ctx context.Context, in dto.PaymentFilterRequest) ([]dto.PaymentResponse, error) {
	var status entity.PaymentStatus
	if in.Status != "" {
		status = entity.PaymentStatus(in.Status)
		if !status.Valid() {
			return nil, domain.NewValidationError("status", fmt.Sprintf("estado desconocido %q", in.Status))
		}
	}
	list, err := uc.paymentRepo.List(ctx, repository.PaymentFilter{OrderID: in.OrderID, CustomerID: in.CustomerID})
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		if status != "" && ledger.PaymentStatus(p) != status {
			continue
		}
		out = append(out, *ToPaymentResponse(p))
	}
	return out, nil
}

// OrderBalance resumen financiero de una orden, recalculado desde los abonos.
func (uc *UseCase) OrderBalance(ctx context.Context, orderID string) (*dto.OrderBalanceResponse, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.paymentRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	balance := ledger.Reconcile(order, list)
	out := &dto.OrderBalanceResponse{
		OrderID:   order.ID,
		Amount:    order.Amount,
		TotalPaid: ledger.TotalPaid(list),
		Balance:   balance,
		Status:    string(ledger.StatusOf(order.Amount, balance)),
		Payments:  make([]dto.PaymentResponse, 0, len(list)),
	}
	for _, p := range list {
		out.Payments = append(out.Payments, *ToPaymentResponse(p))
	}
	return out, nil
}

// ParseMode valida el medio de pago.
func ParseMode(s string) (entity.PaymentMode, error) {
	m := entity.PaymentMode(strings.TrimSpace(s))
	if !m.Valid() {
		return "", domain.NewValidationError("payment_mode", fmt.Sprintf("medio de pago desconocido %q", s))
	}
	return m, nil
}

// ToPaymentResponse convierte la entidad a DTO derivando el estado.
func ToPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:               p.ID,
		PaymentCode:      p.PaymentCode,
		OrderID:          p.OrderID,
		OrderCode:        p.OrderCode,
		CustomerID:       p.CustomerID,
		CustomerName:     p.CustomerName,
		TotalOrderAmount: p.TotalOrderAmount,
		AdvancePaid:      p.AdvancePaid,
		BalanceAmount:    p.BalanceAmount,
		PaymentMode:      string(p.PaymentMode),
		PaymentDate:      p.PaymentDate,
		Status:           string(ledger.PaymentStatus(p)),
		Notes:            p.Notes,
		RecordedBy:       p.RecordedBy,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

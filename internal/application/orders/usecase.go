// Package orders gestiona el ciclo de vida de las órdenes: alta, cambios de estado con
// timeline append-only, asignación, edición y borrado.
package orders

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

// UseCase casos de uso de órdenes.
type UseCase struct {
	tx           ports.TxRunner
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	now          func() time.Time
}

// NewUseCase construye el gestor de órdenes.
func NewUseCase(tx ports.TxRunner, orderRepo repository.OrderRepository, customerRepo repository.CustomerRepository) *UseCase {
	return &UseCase{tx: tx, orderRepo: orderRepo, customerRepo: customerRepo, now: time.Now}
}

// Create registra una orden en estado New con el timeline sembrado con esa entrada.
func (uc *UseCase) Create(ctx context.Context, actorID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if err := domain.Required("customer_id", in.CustomerID); err != nil {
		return nil, err
	}
	if err := domain.Required("dress_type", in.DressType); err != nil {
		return nil, err
	}
	if in.DeliveryDate.IsZero() {
		return nil, domain.NewValidationError("delivery_date", "es obligatorio")
	}
	if !in.Amount.IsPositive() {
		return nil, domain.NewValidationError("amount", "debe ser mayor que cero")
	}
	if err := domain.CheckScale("amount", in.Amount); err != nil {
		return nil, err
	}
	if err := checkTrial(in.TrialDate, in.DeliveryDate); err != nil {
		return nil, err
	}
	customer, err := uc.customerRepo.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.NewValidationError("customer_id", "cliente inexistente")
	}

	now := uc.now()
	orderDate := now
	if in.OrderDate != nil && !in.OrderDate.IsZero() {
		orderDate = *in.OrderDate
	}
	order := &entity.Order{
		ID:           uuid.New().String(),
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		DressType:    strings.TrimSpace(in.DressType),
		FabricType:   strings.TrimSpace(in.FabricType),
		OrderDate:    orderDate,
		TrialDate:    in.TrialDate,
		DeliveryDate: in.DeliveryDate,
		Status:       entity.OrderStatusNew,
		AssignedTo:   strings.TrimSpace(in.AssignedTo),
		Amount:       in.Amount,
		Notes:        strings.TrimSpace(in.Notes),
		CreatedBy:    actorID,
		Timeline: []entity.TimelineEntry{
			{Status: entity.OrderStatusNew, Date: now, Notes: "Orden creada", ChangedBy: actorID},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = uc.tx.Run(ctx, func(repos ports.TxRepos) error {
		n, err := repos.Sequences.Next(ctx, sequence.PrefixOrder)
		if err != nil {
			return err
		}
		order.OrderCode = sequence.Format(sequence.PrefixOrder, n)
		return repos.Orders.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(order), nil
}

// GetByID obtiene una orden con su timeline.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.OrderResponse, error) {
	o, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	return ToOrderResponse(o), nil
}

// List órdenes con filtros opcionales.
func (uc *UseCase) List(ctx context.Context, in dto.OrderFilterRequest) ([]dto.OrderResponse, error) {
	filter := repository.OrderFilter{CustomerID: in.CustomerID, AssignedTo: in.AssignedTo}
	if in.Status != "" {
		st, err := ParseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = st
	}
	list, err := uc.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *ToOrderResponse(o))
	}
	return out, nil
}

// ChangeStatus fija el nuevo estado y agrega exactamente una entrada al timeline.
// Cualquier estado puede pasar a cualquier otro, incluso al mismo.
func (uc *UseCase) ChangeStatus(ctx context.Context, actorID, id string, in dto.ChangeStatusRequest) (*dto.OrderResponse, error) {
	status, err := ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}
	var order *entity.Order
	err = uc.tx.Run(ctx, func(repos ports.TxRepos) error {
		o, err := repos.Orders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		now := uc.now()
		entry := entity.TimelineEntry{Status: status, Date: now, Notes: strings.TrimSpace(in.Notes), ChangedBy: actorID}
		if err := repos.Orders.AppendTimeline(ctx, o.ID, entry); err != nil {
			return err
		}
		o.Status = status
		o.UpdatedAt = now
		o.Timeline = append(o.Timeline, entry)
		if err := repos.Orders.Update(ctx, o); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(order), nil
}

// Assign fija el responsable. No se valida que sea un usuario activo.
func (uc *UseCase) Assign(ctx context.Context, id string, in dto.AssignOrderRequest) (*dto.OrderResponse, error) {
	var order *entity.Order
	err := uc.tx.Run(ctx, func(repos ports.TxRepos) error {
		o, err := repos.Orders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		o.AssignedTo = strings.TrimSpace(in.AssignedTo)
		o.UpdatedAt = uc.now()
		if err := repos.Orders.Update(ctx, o); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(order), nil
}

// Update edita campos que no son estado ni asignación. Si cambia el monto, se recalculan
// en la misma transacción los saldos de todos los pagos de la orden; el monto no puede
// quedar por debajo de lo ya pagado.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	var order *entity.Order
	err := uc.tx.Run(ctx, func(repos ports.TxRepos) error {
		o, err := repos.Orders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		if err := applyUpdate(o, in); err != nil {
			return err
		}
		if in.Amount != nil {
			payments, err := repos.Payments.ListByOrder(ctx, o.ID)
			if err != nil {
				return err
			}
			paid := ledger.TotalPaid(payments)
			if o.Amount.LessThan(paid) {
				return domain.ErrAmountBelowPaid
			}
			if err := repos.Payments.SetBalances(ctx, o.ID, o.Amount, ledger.Balance(o.Amount, paid)); err != nil {
				return fmt.Errorf("recalcular saldos: %w", err)
			}
		}
		o.UpdatedAt = uc.now()
		if err := repos.Orders.Update(ctx, o); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(order), nil
}

func applyUpdate(o *entity.Order, in dto.UpdateOrderRequest) error {
	if in.DressType != nil {
		if err := domain.Required("dress_type", *in.DressType); err != nil {
			return err
		}
		o.DressType = strings.TrimSpace(*in.DressType)
	}
	if in.FabricType != nil {
		o.FabricType = strings.TrimSpace(*in.FabricType)
	}
	if in.OrderDate != nil && !in.OrderDate.IsZero() {
		o.OrderDate = *in.OrderDate
	}
	if in.DeliveryDate != nil {
		if in.DeliveryDate.IsZero() {
			return domain.NewValidationError("delivery_date", "es obligatorio")
		}
		o.DeliveryDate = *in.DeliveryDate
	}
	if in.TrialDate != nil {
		if in.TrialDate.IsZero() {
			o.TrialDate = nil
		} else {
			t := *in.TrialDate
			o.TrialDate = &t
		}
	}
	if err := checkTrial(o.TrialDate, o.DeliveryDate); err != nil {
		return err
	}
	if in.Amount != nil {
		if !in.Amount.IsPositive() {
			return domain.NewValidationError("amount", "debe ser mayor que cero")
		}
		if err := domain.CheckScale("amount", *in.Amount); err != nil {
			return err
		}
		o.Amount = *in.Amount
	}
	if in.Notes != nil {
		o.Notes = strings.TrimSpace(*in.Notes)
	}
	return nil
}

// Delete elimina una orden sin pagos. Con pagos se rechaza para no dejar registros financieros huérfanos.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	return uc.tx.Run(ctx, func(repos ports.TxRepos) error {
		o, err := repos.Orders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		n, err := repos.Payments.CountByOrder(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrOrderHasPayments
		}
		return repos.Orders.Delete(ctx, id)
	})
}

// ParseStatus valida un estado recibido del cliente.
func ParseStatus(s string) (entity.OrderStatus, error) {
	st := entity.OrderStatus(strings.TrimSpace(s))
	if !st.Valid() {
		return "", domain.NewValidationError("status", fmt.Sprintf("estado desconocido %q", s))
	}
	return st, nil
}

func checkTrial(trial *time.Time, delivery time.Time) error {
	if trial != nil && !trial.IsZero() && trial.After(delivery) {
		return domain.NewValidationError("trial_date", "no puede ser posterior a la entrega")
	}
	return nil
}

// ToOrderResponse convierte la entidad a DTO.
func ToOrderResponse(o *entity.Order) *dto.OrderResponse {
	out := &dto.OrderResponse{
		ID:           o.ID,
		OrderCode:    o.OrderCode,
		CustomerID:   o.CustomerID,
		CustomerName: o.CustomerName,
		DressType:    o.DressType,
		FabricType:   o.FabricType,
		OrderDate:    o.OrderDate,
		TrialDate:    o.TrialDate,
		DeliveryDate: o.DeliveryDate,
		Status:       string(o.Status),
		AssignedTo:   o.AssignedTo,
		Amount:       o.Amount,
		Notes:        o.Notes,
		CreatedBy:    o.CreatedBy,
		Timeline:     make([]dto.TimelineEntryResponse, 0, len(o.Timeline)),
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
	for _, e := range o.Timeline {
		out.Timeline = append(out.Timeline, dto.TimelineEntryResponse{
			Status:    string(e.Status),
			Date:      e.Date,
			Notes:     e.Notes,
			ChangedBy: e.ChangedBy,
		})
	}
	return out
}

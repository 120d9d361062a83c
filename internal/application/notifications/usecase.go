// Package notifications genera avisos (solo datos, sin entrega) a partir del estado de
// órdenes, pagos e inventario, y permite a cada usuario consultarlos.
package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/application/ports"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
	"github.com/jhoicas/boutique-api/internal/domain/sequence"
)

// Repos puertos que consulta el escaneo.
type Repos struct {
	Users         repository.UserRepository
	Orders        repository.OrderRepository
	Items         repository.InventoryItemRepository
	Analytics     repository.AnalyticsRepository
	Notifications repository.NotificationRepository
	Sequences     repository.SequenceRepository
}

// UseCase escaneo de recordatorios y bandeja de avisos.
type UseCase struct {
	repos   Repos
	metrics ports.Metrics
	log     zerolog.Logger
	now     func() time.Time
}

// NewUseCase construye el caso de uso. metrics puede ser nil.
func NewUseCase(repos Repos, metrics ports.Metrics, log zerolog.Logger) *UseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &UseCase{repos: repos, metrics: metrics, log: log, now: time.Now}
}

// ScanResult avisos creados por tipo en una pasada.
type ScanResult map[entity.NotificationType]int

// Scan genera, sin duplicar, los avisos del día:
//   - entregas de mañana (al responsable y a los owners)
//   - pruebas de mañana (al responsable y a los owners)
//   - materiales en Low u Out of Stock (a los owners, uno por día)
//   - órdenes entregadas con saldo pendiente (a los owners, uno por orden)
func (uc *UseCase) Scan(ctx context.Context) (ScanResult, error) {
	now := uc.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := today.AddDate(0, 0, 1)
	dayAfter := today.AddDate(0, 0, 2)

	owners, err := uc.repos.Users.ListActiveByRoleName(ctx, entity.RoleOwner)
	if err != nil {
		return nil, fmt.Errorf("avisos: listar owners: %w", err)
	}
	ownerIDs := make([]string, 0, len(owners))
	for _, o := range owners {
		ownerIDs = append(ownerIDs, o.ID)
	}
	result := ScanResult{}

	deliveries, err := uc.repos.Orders.List(ctx, repository.OrderFilter{
		DeliveryFrom: &tomorrow, DeliveryTo: &dayAfter, ExcludeStatus: entity.OrderStatusDelivered,
	})
	if err != nil {
		return nil, fmt.Errorf("avisos: entregas de mañana: %w", err)
	}
	for _, o := range deliveries {
		msg := fmt.Sprintf("Entrega de %s (%s) para %s programada para mañana", o.OrderCode, o.DressType, o.CustomerName)
		due := o.DeliveryDate
		if err := uc.notifyAll(ctx, result, uc.recipients(ctx, o, ownerIDs), entity.NotificationDeliveryReminder, o.ID, msg, &due); err != nil {
			return nil, err
		}
	}

	trials, err := uc.repos.Orders.List(ctx, repository.OrderFilter{
		TrialFrom: &tomorrow, TrialTo: &dayAfter, ExcludeStatus: entity.OrderStatusDelivered,
	})
	if err != nil {
		return nil, fmt.Errorf("avisos: pruebas de mañana: %w", err)
	}
	for _, o := range trials {
		msg := fmt.Sprintf("Prueba de %s (%s) con %s programada para mañana", o.OrderCode, o.DressType, o.CustomerName)
		due := *o.TrialDate
		if err := uc.notifyAll(ctx, result, uc.recipients(ctx, o, ownerIDs), entity.NotificationTrialReminder, o.ID, msg, &due); err != nil {
			return nil, err
		}
	}

	items, err := uc.repos.Items.List(ctx, repository.ItemFilter{NeedsRestock: true})
	if err != nil {
		return nil, fmt.Errorf("avisos: stock bajo: %w", err)
	}
	for _, item := range items {
		msg := fmt.Sprintf("%s (%s): quedan %s %s, mínimo %s", item.ItemName, item.ItemCode,
			item.Quantity.String(), item.Unit, item.MinStock.String())
		if err := uc.notifyAll(ctx, result, ownerIDs, entity.NotificationLowStock, item.ID, msg, &today); err != nil {
			return nil, err
		}
	}

	outstanding, err := uc.repos.Analytics.OutstandingOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("avisos: pagos pendientes: %w", err)
	}
	for _, o := range outstanding {
		if o.Status != string(entity.OrderStatusDelivered) {
			continue
		}
		msg := fmt.Sprintf("%s de %s entregada con saldo pendiente de %s", o.OrderCode, o.CustomerName, o.Balance.StringFixed(2))
		due := o.DeliveryDate
		if err := uc.notifyAll(ctx, result, ownerIDs, entity.NotificationPendingPayment, o.OrderID, msg, &due); err != nil {
			return nil, err
		}
	}

	for kind, n := range result {
		uc.metrics.NotificationsCreated(string(kind), n)
	}
	return result, nil
}

// recipients owners más el responsable de la orden si es un usuario activo.
func (uc *UseCase) recipients(ctx context.Context, o *entity.Order, ownerIDs []string) []string {
	out := append([]string(nil), ownerIDs...)
	if o.AssignedTo == "" {
		return out
	}
	for _, id := range ownerIDs {
		if id == o.AssignedTo {
			return out
		}
	}
	u, err := uc.repos.Users.GetByID(ctx, o.AssignedTo)
	if err != nil {
		uc.log.Warn().Err(err).Str("order_id", o.ID).Msg("avisos: no se pudo cargar el responsable")
		return out
	}
	// AssignedTo puede ser un nombre de rol; en ese caso no hay usuario.
	if u != nil && u.IsActive() {
		out = append(out, u.ID)
	}
	return out
}

func (uc *UseCase) notifyAll(ctx context.Context, result ScanResult, userIDs []string, kind entity.NotificationType, relatedID, msg string, due *time.Time) error {
	for _, userID := range userIDs {
		n := &entity.Notification{
			UserID:    userID,
			Type:      kind,
			RelatedID: relatedID,
			Message:   msg,
			DueDate:   due,
			CreatedAt: uc.now(),
		}
		exists, err := uc.repos.Notifications.Exists(ctx, n)
		if err != nil {
			return fmt.Errorf("avisos: verificar duplicado: %w", err)
		}
		if exists {
			continue
		}
		seq, err := uc.repos.Sequences.Next(ctx, sequence.PrefixNotification)
		if err != nil {
			return err
		}
		n.ID = uuid.New().String()
		n.NotificationCode = sequence.Format(sequence.PrefixNotification, seq)
		created, err := uc.repos.Notifications.CreateIfAbsent(ctx, n)
		if err != nil {
			return fmt.Errorf("avisos: crear: %w", err)
		}
		if created {
			result[kind]++
		}
	}
	return nil
}

// ListForUser avisos del usuario, más recientes primero.
func (uc *UseCase) ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]dto.NotificationResponse, error) {
	list, err := uc.repos.Notifications.ListByUser(ctx, userID, unreadOnly)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, dto.NotificationResponse{
			ID:               n.ID,
			NotificationCode: n.NotificationCode,
			Type:             string(n.Type),
			RelatedID:        n.RelatedID,
			Message:          n.Message,
			DueDate:          n.DueDate,
			IsRead:           n.IsRead,
			ReadAt:           n.ReadAt,
			CreatedAt:        n.CreatedAt,
		})
	}
	return out, nil
}

// MarkRead marca como leído un aviso propio. Un aviso ajeno responde NotFound.
func (uc *UseCase) MarkRead(ctx context.Context, userID, id string) error {
	ok, err := uc.repos.Notifications.MarkRead(ctx, id, userID, uc.now())
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

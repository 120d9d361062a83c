package repository

import (
	"context"
	"time"

	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// NotificationRepository define el puerto de persistencia de avisos.
type NotificationRepository interface {
	// Exists informa si ya hay un aviso con el mismo usuario, tipo, entidad relacionada y
	// día de vencimiento.
	Exists(ctx context.Context, n *entity.Notification) (bool, error)
	// CreateIfAbsent inserta salvo que Exists sea true. Devuelve true si insertó.
	CreateIfAbsent(ctx context.Context, n *entity.Notification) (bool, error)
	ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]*entity.Notification, error)
	// MarkRead devuelve false si el aviso no existe o no pertenece al usuario.
	MarkRead(ctx context.Context, id, userID string, at time.Time) (bool, error)
}

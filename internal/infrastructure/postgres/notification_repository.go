package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo implementación de NotificationRepository sobre PostgreSQL.
// La unicidad (usuario, tipo, relacionado, día) la garantiza notifications_dedupe_idx.
type NotificationRepo struct {
	q Querier
}

func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// dueDay día calendario del vencimiento, o nil si no tiene.
func dueDay(n *entity.Notification) *string {
	if n.DueDate == nil {
		return nil
	}
	d := n.DueDate.Format(time.DateOnly)
	return &d
}

func (r *NotificationRepo) Exists(ctx context.Context, n *entity.Notification) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM notifications
			WHERE user_id = $1 AND type = $2 AND related_id = $3 AND due_day IS NOT DISTINCT FROM $4::date
		)`
	var ok bool
	if err := r.q.QueryRow(ctx, query, n.UserID, string(n.Type), n.RelatedID, dueDay(n)).Scan(&ok); err != nil {
		return false, fmt.Errorf("notification exists: %w", err)
	}
	return ok, nil
}

func (r *NotificationRepo) CreateIfAbsent(ctx context.Context, n *entity.Notification) (bool, error) {
	query := `
		INSERT INTO notifications (id, notification_code, user_id, type, related_id, message, due_date, due_day,
			is_read, read_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8::date, $9, $10, $11)
		ON CONFLICT DO NOTHING`
	tag, err := r.q.Exec(ctx, query,
		n.ID, n.NotificationCode, n.UserID, string(n.Type), n.RelatedID, n.Message, n.DueDate, dueDay(n),
		n.IsRead, n.ReadAt, n.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("insert notification: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ListByUser más recientes primero.
func (r *NotificationRepo) ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]*entity.Notification, error) {
	query := `
		SELECT id, notification_code, user_id, type, related_id, message, due_date, is_read, read_at, created_at
		FROM notifications WHERE user_id = $1`
	if unreadOnly {
		query += ` AND NOT is_read`
	}
	rows, err := r.q.Query(ctx, query+` ORDER BY seq DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()
	var out []*entity.Notification
	for rows.Next() {
		var (
			n   entity.Notification
			typ string
		)
		if err := rows.Scan(&n.ID, &n.NotificationCode, &n.UserID, &typ, &n.RelatedID, &n.Message, &n.DueDate, &n.IsRead, &n.ReadAt, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		n.Type = entity.NotificationType(typ)
		out = append(out, &n)
	}
	return out, rows.Err()
}

// MarkRead conserva read_at de la primera lectura.
func (r *NotificationRepo) MarkRead(ctx context.Context, id, userID string, at time.Time) (bool, error) {
	query := `
		UPDATE notifications SET is_read = TRUE, read_at = COALESCE(read_at, $3)
		WHERE id = $1 AND user_id = $2`
	tag, err := r.q.Exec(ctx, query, id, userID, at)
	if err != nil {
		if isInvalidTextRepresentation(err) {
			return false, nil
		}
		return false, fmt.Errorf("mark notification read: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

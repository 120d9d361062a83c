package memory

import (
	"context"
	"time"

	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo implementación en memoria de NotificationRepository.
type NotificationRepo struct {
	s  *Store
	tx bool
}

func (r *NotificationRepo) Exists(_ context.Context, n *entity.Notification) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.exists(n), nil
}

func (r *NotificationRepo) CreateIfAbsent(_ context.Context, n *entity.Notification) (bool, error) {
	defer r.s.lockWrite(r.tx)()
	if r.exists(n) {
		return false, nil
	}
	r.s.st.notifications = append(r.s.st.notifications, cloneNotification(n))
	return true, nil
}

// exists requiere el lock tomado.
func (r *NotificationRepo) exists(n *entity.Notification) bool {
	for _, existing := range r.s.st.notifications {
		if existing.UserID == n.UserID && existing.Type == n.Type &&
			existing.RelatedID == n.RelatedID && sameDay(existing.DueDate, n.DueDate) {
			return true
		}
	}
	return false
}

func sameDay(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Format(time.DateOnly) == b.Format(time.DateOnly)
}

// ListByUser más recientes primero.
func (r *NotificationRepo) ListByUser(_ context.Context, userID string, unreadOnly bool) ([]*entity.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Notification
	for i := len(r.s.st.notifications) - 1; i >= 0; i-- {
		n := r.s.st.notifications[i]
		if n.UserID != userID || (unreadOnly && n.IsRead) {
			continue
		}
		out = append(out, cloneNotification(n))
	}
	return out, nil
}

func (r *NotificationRepo) MarkRead(_ context.Context, id, userID string, at time.Time) (bool, error) {
	defer r.s.lockWrite(r.tx)()
	for _, n := range r.s.st.notifications {
		if n.ID == id && n.UserID == userID {
			if !n.IsRead {
				n.IsRead = true
				n.ReadAt = &at
			}
			return true, nil
		}
	}
	return false, nil
}

package dto

import "time"

// NotificationResponse salida de un aviso.
type NotificationResponse struct {
	ID               string     `json:"id"`
	NotificationCode string     `json:"notification_id"`
	Type             string     `json:"type"`
	RelatedID        string     `json:"related_id,omitempty"`
	Message          string     `json:"message"`
	DueDate          *time.Time `json:"due_date,omitempty"`
	IsRead           bool       `json:"is_read"`
	ReadAt           *time.Time `json:"read_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

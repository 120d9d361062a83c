package entity

import "time"

// NotificationType tipo de aviso generado por el escaneo programado.
type NotificationType string

const (
	NotificationDeliveryReminder NotificationType = "Delivery Reminder"
	NotificationTrialReminder    NotificationType = "Trial Reminder"
	NotificationLowStock         NotificationType = "Low Stock Alert"
	NotificationPendingPayment   NotificationType = "Pending Payment"
)

// Notification aviso para un usuario. Solo se almacena; la entrega (SMS, email) queda fuera del sistema.
type Notification struct {
	ID               string
	NotificationCode string // NTF001
	UserID           string
	Type             NotificationType
	RelatedID        string // orden o ítem relacionado
	Message          string
	DueDate          *time.Time
	IsRead           bool
	ReadAt           *time.Time
	CreatedAt        time.Time
}

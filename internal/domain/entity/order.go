package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado de una orden. El conjunto es cerrado; las transiciones son libres (any-to-any)
// y cada una queda registrada en el timeline.
type OrderStatus string

const (
	OrderStatusNew         OrderStatus = "New"
	OrderStatusInStitching OrderStatus = "In Stitching"
	OrderStatusTrialDone   OrderStatus = "Trial Done"
	OrderStatusAlteration  OrderStatus = "Alteration"
	OrderStatusReady       OrderStatus = "Ready"
	OrderStatusDelivered   OrderStatus = "Delivered"
)

// OrderStatuses en el orden natural del flujo de trabajo.
var OrderStatuses = []OrderStatus{
	OrderStatusNew, OrderStatusInStitching, OrderStatusTrialDone,
	OrderStatusAlteration, OrderStatusReady, OrderStatusDelivered,
}

// Valid informa si el estado pertenece al conjunto.
func (s OrderStatus) Valid() bool {
	for _, k := range OrderStatuses {
		if k == s {
			return true
		}
	}
	return false
}

// Terminal informa si es el estado final (Delivered).
func (s OrderStatus) Terminal() bool { return s == OrderStatusDelivered }

// Order representa un pedido de confección.
// CustomerName es una copia tomada al crear y no se resincroniza si el cliente cambia de nombre.
type Order struct {
	ID           string
	OrderCode    string // ORD001
	CustomerID   string
	CustomerName string
	DressType    string
	FabricType   string
	OrderDate    time.Time
	TrialDate    *time.Time
	DeliveryDate time.Time
	Status       OrderStatus
	AssignedTo   string // id de usuario o nombre de rol; vacío = sin asignar
	Amount       decimal.Decimal
	Notes        string
	CreatedBy    string
	Timeline     []TimelineEntry // append-only, en orden cronológico
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TimelineEntry una transición de estado registrada.
type TimelineEntry struct {
	Status    OrderStatus
	Date      time.Time
	Notes     string
	ChangedBy string
}

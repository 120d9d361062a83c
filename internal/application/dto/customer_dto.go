package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name        string              `json:"name" validate:"required,max=200"`
	Phone       string              `json:"phone" validate:"required"`
	Email       string              `json:"email,omitempty"`
	Address     string              `json:"address,omitempty"`
	Measurement *MeasurementRequest `json:"measurement,omitempty"`
}

// UpdateCustomerRequest cambios de contacto. Las medidas se agregan por separado.
type UpdateCustomerRequest struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
	Address *string `json:"address,omitempty"`
}

// MeasurementRequest snapshot de medidas (pulgadas).
type MeasurementRequest struct {
	Shoulder     decimal.Decimal `json:"shoulder"`
	Bust         decimal.Decimal `json:"bust"`
	Waist        decimal.Decimal `json:"waist"`
	Hip          decimal.Decimal `json:"hip"`
	SleeveLength decimal.Decimal `json:"sleeve_length"`
	DressLength  decimal.Decimal `json:"dress_length"`
	Notes        string          `json:"notes,omitempty"`
}

// MeasurementResponse medida registrada.
type MeasurementResponse struct {
	MeasurementRequest
	RecordedAt time.Time `json:"recorded_at"`
}

// CustomerResponse salida de un cliente con su historial de medidas.
type CustomerResponse struct {
	ID           string                `json:"id"`
	CustomerCode string                `json:"customer_id"`
	Name         string                `json:"name"`
	Phone        string                `json:"phone"`
	Email        string                `json:"email,omitempty"`
	Address      string                `json:"address,omitempty"`
	Measurements []MeasurementResponse `json:"measurements"`
	DateAdded    time.Time             `json:"date_added"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// CustomerListResponse listado paginado.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

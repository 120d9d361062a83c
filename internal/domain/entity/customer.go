package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer representa una clienta del taller. CustomerCode (CUST001) es legible e inmutable;
// la clave primaria es ID.
type Customer struct {
	ID           string
	CustomerCode string
	Name         string
	Phone        string
	Email        string
	Address      string
	Measurements []Measurement // historial append-only, nunca se edita en sitio
	CreatedAt    time.Time     // dateAdded
	UpdatedAt    time.Time
}

// Measurement snapshot de medidas corporales (en pulgadas).
type Measurement struct {
	Shoulder     decimal.Decimal
	Bust         decimal.Decimal
	Waist        decimal.Decimal
	Hip          decimal.Decimal
	SleeveLength decimal.Decimal
	DressLength  decimal.Decimal
	Notes        string
	RecordedAt   time.Time
}

// LatestMeasurement devuelve la medida más reciente o nil si no hay.
func (c *Customer) LatestMeasurement() *Measurement {
	if c == nil || len(c.Measurements) == 0 {
		return nil
	}
	m := c.Measurements[len(c.Measurements)-1]
	return &m
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemCategory categoría de material.
type ItemCategory string

const (
	CategoryFabric ItemCategory = "Fabric"
	CategoryLace   ItemCategory = "Lace"
	CategoryButton ItemCategory = "Button"
	CategoryThread ItemCategory = "Thread"
	CategoryZipper ItemCategory = "Zipper"
	CategoryOther  ItemCategory = "Other"
)

// ItemCategories todas las categorías válidas.
var ItemCategories = []ItemCategory{
	CategoryFabric, CategoryLace, CategoryButton, CategoryThread, CategoryZipper, CategoryOther,
}

// Valid informa si la categoría es válida.
func (c ItemCategory) Valid() bool {
	for _, k := range ItemCategories {
		if k == c {
			return true
		}
	}
	return false
}

// StockStatus etiqueta derivada de (Quantity, MinStock).
type StockStatus string

const (
	StockStatusInStock    StockStatus = "In Stock"
	StockStatusLowStock   StockStatus = "Low Stock"
	StockStatusOutOfStock StockStatus = "Out of Stock"
)

// DefaultMinStock umbral por defecto cuando no se indica.
var DefaultMinStock = decimal.NewFromInt(10)

// InventoryItem material del taller. El estado de stock no se guarda: ver inventory.StockStatusOf.
type InventoryItem struct {
	ID              string
	ItemCode        string // ITM001
	ItemName        string
	Category        ItemCategory
	Quantity        decimal.Decimal
	MinStock        decimal.Decimal
	Unit            string // metros, piezas, carretes...
	PurchaseCost    *decimal.Decimal
	SupplierName    string
	Notes           string
	LastRestockedAt *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

package entity

import (
	"math"
	"time"
)

// Stock asiento del libro de existencias: cada escritura es una línea nueva.
// Quantity negativa = pendiente o salida. El stock del producto es la suma.
type Stock struct {
	ID        int64
	ProductID int64
	Quantity  int64
	CreatedAt time.Time
}

// Límites de un asiento: la columna quantity es INTEGER.
const (
	MinStockQuantity int64 = math.MinInt32
	MaxStockQuantity int64 = math.MaxInt32
)

// ValidStockQuantity informa si la cantidad cabe en un asiento.
func ValidStockQuantity(q int64) bool {
	return q >= MinStockQuantity && q <= MaxStockQuantity
}

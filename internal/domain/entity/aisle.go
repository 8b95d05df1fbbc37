package entity

import "time"

// Aisle pasillo de una tienda; agrupa categorías.
type Aisle struct {
	ID        int64
	Name      string
	StoreID   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

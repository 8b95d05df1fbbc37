package entity

import "time"

// Category categoría de productos. AisleID nil = categoría sin pasillo.
type Category struct {
	ID        int64
	Name      string
	AisleID   *int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

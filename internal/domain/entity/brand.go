package entity

import "time"

// Brand marca comercial. No pertenece a ninguna tienda.
type Brand struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

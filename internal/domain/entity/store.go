package entity

import "time"

// Store es la raíz de tenencia: pasillos, productos, proveedores, usuarios y roles
// con tienda cuelgan de ella (borrado en cascada).
type Store struct {
	ID        int64
	Name      string
	Address   string
	Postcode  string
	City      string
	Siren     string // 9 dígitos
	Siret     string // 14 dígitos, único global
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

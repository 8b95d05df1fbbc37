package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supplier proveedor de una tienda.
type Supplier struct {
	ID        int64
	Name      string
	Phone     string
	Address   string
	Postcode  string
	City      string
	Contact   string
	Siren     string
	Siret     string
	IsActive  bool
	StoreID   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProductSupplier relación producto-proveedor con precio de compra.
type ProductSupplier struct {
	ProductID     int64
	SupplierID    int64
	PurchasePrice decimal.Decimal
}

package ports

import "context"

// NutritionInfo datos de Open Food Facts para un código de producto.
type NutritionInfo struct {
	NutriScore  string
	EcoScore    string
	Ingredients string
}

// CompanyInfo datos del registro de empresas para un SIRET.
type CompanyInfo struct {
	Name     string
	Siren    string
	Address  string
	Postcode string
	City     string
}

// NutritionLookup puerto de salida hacia la base de datos de productos alimentarios.
// Solo enriquece: un error o (nil, nil) deja los campos vacíos, nunca bloquea la escritura.
type NutritionLookup interface {
	LookupProduct(ctx context.Context, code string) (*NutritionInfo, error)
}

// CompanyLookup puerto de salida hacia el registro de empresas.
type CompanyLookup interface {
	LookupCompany(ctx context.Context, siret string) (*CompanyInfo, error)
}

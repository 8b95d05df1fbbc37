package ports

import (
	"context"

	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/entity"
)

// StockReportGenerator genera el informe de stock de una tienda (PDF).
type StockReportGenerator interface {
	GenerateStockReport(ctx context.Context, store *entity.Store, products []*entity.Product) ([]byte, error)
}

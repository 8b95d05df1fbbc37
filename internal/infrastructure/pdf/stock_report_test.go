package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/entity"
)

func TestGenerateStockReport(t *testing.T) {
	g := NewStockReportGenerator()
	g.Now = func() time.Time { return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC) }
	store := &entity.Store{ID: 1, Name: "Centro", Siret: "12345678900011", City: "Paris"}
	products := []*entity.Product{
		{ID: 1, Code: "3017620422003", Name: "Nutella", Price: decimal.RequireFromString("3.49"), InStock: 2, Threshold: 10},
		{ID: 2, Code: "3274080005003", Name: "Agua", Price: decimal.NewFromInt(1), InStock: 40, Threshold: 10},
	}

	doc, err := g.GenerateStockReport(context.Background(), store, products)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")), "salida PDF")
}

func TestGenerateStockReport_SinProductos(t *testing.T) {
	doc, err := NewStockReportGenerator().GenerateStockReport(context.Background(), &entity.Store{Name: "Vacía"}, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, doc)
}

func TestProductRow_MarcaReposicion(t *testing.T) {
	assert.True(t, (&entity.Product{InStock: 2, Threshold: 10}).BelowThreshold())
	assert.False(t, (&entity.Product{InStock: 10, Threshold: 10}).BelowThreshold())
	assert.Equal(t, "—", nonEmpty("", "—"))
}

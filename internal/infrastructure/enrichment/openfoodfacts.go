package enrichment

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/application/ports"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/pkg/config"
)

var _ ports.NutritionLookup = (*OpenFoodFacts)(nil)

// OpenFoodFacts consulta la API de productos por código EAN.
type OpenFoodFacts struct {
	baseURL string
	http    *httpJSON
}

// NewOpenFoodFacts construye el adaptador a partir de la configuración de enriquecimiento.
func NewOpenFoodFacts(cfg config.EnrichConfig, userAgent string) *OpenFoodFacts {
	return &OpenFoodFacts{
		baseURL: strings.TrimRight(cfg.OFFBaseURL, "/"),
		http:    newHTTPJSON(cfg, userAgent),
	}
}

type offResponse struct {
	Status  int `json:"status"`
	Product struct {
		NutriscoreGrade string `json:"nutriscore_grade"`
		EcoscoreGrade   string `json:"ecoscore_grade"`
		IngredientsText string `json:"ingredients_text"`
	} `json:"product"`
}

// LookupProduct devuelve nil sin error si el código no existe en la base.
func (o *OpenFoodFacts) LookupProduct(ctx context.Context, code string) (*ports.NutritionInfo, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil
	}
	return cached(o.http, "off:"+code, func() (*ports.NutritionInfo, error) {
		var resp offResponse
		u := fmt.Sprintf("%s/api/v2/product/%s.json", o.baseURL, url.PathEscape(code))
		if err := o.http.getJSON(ctx, u, &resp); err != nil {
			return nil, fmt.Errorf("open food facts %s: %w", code, err)
		}
		if resp.Status != 1 {
			return nil, errNotFound
		}
		return &ports.NutritionInfo{
			NutriScore:  normalizeGrade(resp.Product.NutriscoreGrade),
			EcoScore:    normalizeGrade(resp.Product.EcoscoreGrade),
			Ingredients: strings.TrimSpace(resp.Product.IngredientsText),
		}, nil
	})
}

// normalizeGrade a..e en mayúsculas; "unknown", "not-applicable" y similares quedan vacíos.
func normalizeGrade(g string) string {
	g = strings.ToUpper(strings.TrimSpace(g))
	switch g {
	case "A", "B", "C", "D", "E":
		return g
	}
	return ""
}

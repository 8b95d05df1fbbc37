package enrichment

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/application/ports"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/pkg/config"
)

var _ ports.CompanyLookup = (*CompanyRegistry)(nil)

// CompanyRegistry consulta la API pública recherche-entreprises por SIRET.
type CompanyRegistry struct {
	baseURL string
	http    *httpJSON
}

// NewCompanyRegistry construye el adaptador.
func NewCompanyRegistry(cfg config.EnrichConfig, userAgent string) *CompanyRegistry {
	return &CompanyRegistry{
		baseURL: strings.TrimRight(cfg.RegistryBaseURL, "/"),
		http:    newHTTPJSON(cfg, userAgent),
	}
}

type registryEstablishment struct {
	Siret          string `json:"siret"`
	Adresse        string `json:"adresse"`
	CodePostal     string `json:"code_postal"`
	LibelleCommune string `json:"libelle_commune"`
}

type registryResponse struct {
	Results []struct {
		Siren                  string                  `json:"siren"`
		NomComplet             string                  `json:"nom_complet"`
		Siege                  registryEstablishment   `json:"siege"`
		MatchingEtablissements []registryEstablishment `json:"matching_etablissements"`
	} `json:"results"`
}

// LookupCompany devuelve nil sin error si ningún resultado corresponde al SIRET.
func (r *CompanyRegistry) LookupCompany(ctx context.Context, siret string) (*ports.CompanyInfo, error) {
	siret = strings.TrimSpace(siret)
	if siret == "" {
		return nil, nil
	}
	return cached(r.http, "siret:"+siret, func() (*ports.CompanyInfo, error) {
		var resp registryResponse
		u := fmt.Sprintf("%s/search?q=%s&page=1&per_page=1", r.baseURL, url.QueryEscape(siret))
		if err := r.http.getJSON(ctx, u, &resp); err != nil {
			return nil, fmt.Errorf("registro de empresas %s: %w", siret, err)
		}
		for _, res := range resp.Results {
			est, ok := findEstablishment(siret, res.Siege, res.MatchingEtablissements)
			if !ok {
				continue
			}
			return &ports.CompanyInfo{
				Name:     res.NomComplet,
				Siren:    res.Siren,
				Address:  est.Adresse,
				Postcode: est.CodePostal,
				City:     est.LibelleCommune,
			}, nil
		}
		return nil, errNotFound
	})
}

func findEstablishment(siret string, siege registryEstablishment, matching []registryEstablishment) (registryEstablishment, bool) {
	for _, e := range matching {
		if e.Siret == siret {
			return e, true
		}
	}
	if siege.Siret == siret {
		return siege, true
	}
	return registryEstablishment{}, false
}

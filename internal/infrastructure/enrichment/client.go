// Package enrichment adaptadores HTTP hacia Open Food Facts y el registro francés de empresas.
// Solo enriquecen datos: cualquier fallo se devuelve al caso de uso, que lo registra y sigue.
package enrichment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/pkg/config"
)

// errNotFound el servicio respondió 404; se cachea como ausencia de datos.
var errNotFound = errors.New("recurso externo no encontrado")

// httpJSON cliente compartido: timeout por petición, límite de redirecciones y caché en memoria.
type httpJSON struct {
	httpClient *http.Client
	cache      *gocache.Cache
	userAgent  string
}

func newHTTPJSON(cfg config.EnrichConfig, userAgent string) *httpJSON {
	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	maxRedirects := cfg.MaxRedirects
	ttl := cfg.CacheTTL()
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &httpJSON{
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(_ *http.Request, via []*http.Request) error {
				if len(via) > maxRedirects {
					return fmt.Errorf("demasiadas redirecciones (%d)", len(via))
				}
				return nil
			},
		},
		cache:     gocache.New(ttl, 10*time.Minute),
		userAgent: userAgent,
	}
}

// cached devuelve el valor en caché para key o ejecuta fetch y guarda el resultado.
// Las respuestas 404 se guardan como nil para no repetir la consulta.
func cached[T any](h *httpJSON, key string, fetch func() (*T, error)) (*T, error) {
	if v, ok := h.cache.Get(key); ok {
		t, _ := v.(*T)
		return t, nil
	}
	t, err := fetch()
	if errors.Is(err, errNotFound) {
		h.cache.SetDefault(key, (*T)(nil))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	h.cache.SetDefault(key, t)
	return t, nil
}

// getJSON hace GET a url y decodifica el cuerpo en out.
func (h *httpJSON) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("crear request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", h.userAgent)

	resp, err := h.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("timeout o cancelación: %w", ctx.Err())
		}
		return fmt.Errorf("llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(out); err != nil {
		return fmt.Errorf("deserializar respuesta: %w", err)
	}
	return nil
}

package usecase

import (
	"context"

	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/access"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/repository"
)

// storeExists comprueba que la tienda existe (sin scope: la asignación ya se decidió con AssignStore).
func storeExists(ctx context.Context, stores repository.StoreRepository, id int64) error {
	s, err := stores.GetByID(ctx, access.Unrestricted(), id)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	return nil
}

// assignStore resuelve la tienda destino de una escritura y comprueba que exista.
func assignStore(ctx context.Context, stores repository.StoreRepository, c access.Caller, requested *int64) (int64, error) {
	storeID, err := access.AssignStore(c, requested)
	if err != nil {
		return 0, err
	}
	if err := storeExists(ctx, stores, storeID); err != nil {
		return 0, err
	}
	return storeID, nil
}

func setIfNotNil[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/access"
)

// Códigos SQLSTATE que el dominio distingue.
const (
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
	codeForeignKeyViolation = "23503"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == codeUniqueViolation
}

// mapWriteError traduce errores de INSERT/UPDATE a errores de dominio.
// 23503 en escritura = la referencia no existe.
func mapWriteError(op string, err error) error {
	switch pgCode(err) {
	case codeUniqueViolation:
		return fmt.Errorf("%w: %s", domain.ErrConflict, constraintName(err))
	case codeCheckViolation:
		return fmt.Errorf("%w: %s", domain.ErrConstraintViolation, constraintName(err))
	case codeForeignKeyViolation:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, constraintName(err))
	}
	return fmt.Errorf("%s: %w", op, err)
}

// mapDeleteError traduce errores de DELETE: 23503 = fila aún referenciada.
func mapDeleteError(op string, err error) error {
	if pgCode(err) == codeForeignKeyViolation {
		return fmt.Errorf("%w: %s", domain.ErrConflict, constraintName(err))
	}
	return fmt.Errorf("%s: %w", op, err)
}

func constraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.ConstraintName != "" {
		return pgErr.ConstraintName
	}
	return "constraint"
}

// scopeClause añade " AND <column> = $n" cuando el scope no es global.
func scopeClause(scope access.Scope, column string, args []any) (string, []any) {
	if scope.Global {
		return "", args
	}
	args = append(args, scope.StoreID)
	return fmt.Sprintf(" AND %s = $%d", column, len(args)), args
}

// nullableID convierte 0 en NULL para columnas FK opcionales.
func nullableID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

func derefID(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}

func notFound(resource string, id int64) error {
	return fmt.Errorf("%w: %s %d", domain.ErrNotFound, resource, id)
}

package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/stock-ledger/internal/domain"
)

// Códigos SQLSTATE usados por los repositorios.
const (
	sqlStateUniqueViolation = "23505"
	sqlStateCheckViolation  = "23514"
	sqlStateFKViolation     = "23503"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return hasSQLState(err, sqlStateUniqueViolation)
}

// isCheckViolation verifica si un error es una violación de CHECK (23514), p.ej. quantity >= 0.
func isCheckViolation(err error) bool {
	return hasSQLState(err, sqlStateCheckViolation)
}

func hasSQLState(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}

// missingReference traduce una violación de FK (23503) a un ValidationError que nombra la
// referencia faltante. Devuelve nil si err no es una violación de FK.
func missingReference(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != sqlStateFKViolation {
		return nil
	}
	switch {
	case strings.Contains(pgErr.ConstraintName, "product"):
		return domain.NewValidationError("el producto referenciado no existe")
	case strings.Contains(pgErr.ConstraintName, "store"):
		return domain.NewValidationError("la tienda referenciada no existe")
	}
	return domain.NewValidationError("referencia inexistente: %s", pgErr.ConstraintName)
}

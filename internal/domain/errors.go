package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// ValidationError describe la primera regla violada por un payload de movimiento.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Unwrap permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError construye un ValidationError con mensaje formateado.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// DuplicateTransactionError indica que el código ya existe dentro del tipo de transacción.
type DuplicateTransactionError struct {
	Kind string
	Code string
}

func (e *DuplicateTransactionError) Error() string {
	return fmt.Sprintf("el código de transacción %q ya existe en %s", e.Code, e.Kind)
}

func (e *DuplicateTransactionError) Unwrap() error { return ErrDuplicate }

// InsufficientStockError nombra el producto y la ubicación sin saldo suficiente.
type InsufficientStockError struct {
	ProductID int64
	Location  string
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para el producto %d en %s: solicitado %d, disponible %d",
		e.ProductID, e.Location, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// NotFoundError indica que la entidad referenciada no existe.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d no encontrado", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

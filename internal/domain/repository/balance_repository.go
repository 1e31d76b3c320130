package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// BalanceRepository define el puerto sobre los saldos por producto y ubicación.
// Usado dentro de transacciones para garantizar consistencia.
type BalanceRepository interface {
	// Get devuelve nil si no existe saldo.
	Get(ctx context.Context, productID int64, loc entity.Location) (*entity.Balance, error)
	// GetForUpdate igual que Get pero bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, productID int64, loc entity.Location) (*entity.Balance, error)
	// Increment crea el saldo con amount si no existe, o lo suma al existente.
	Increment(ctx context.Context, productID int64, loc entity.Location, amount, actorID int64) (*entity.Balance, error)
	// Decrement resta amount solo si el saldo alcanza; si no, *domain.InsufficientStockError.
	Decrement(ctx context.Context, productID int64, loc entity.Location, amount, actorID int64) (*entity.Balance, error)
}

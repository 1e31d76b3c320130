package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// LedgerRepository define el puerto de escritura del libro de movimientos.
// Las transacciones creadas no se actualizan ni se borran.
type LedgerRepository interface {
	CodeExists(ctx context.Context, kind entity.MovementKind, code string) (bool, error)
	// Create* insertan cabecera y líneas; completan ID y timestamps. Código repetido
	// devuelve *domain.DuplicateTransactionError.
	CreateStockIn(ctx context.Context, in *entity.StockIn) error
	CreateStockOut(ctx context.Context, out *entity.StockOut) error
	CreateStockMutation(ctx context.Context, m *entity.StockMutation) error
	// LastID id más alto del tipo, 0 si no hay registros.
	LastID(ctx context.Context, kind entity.MovementKind) (int64, error)
}

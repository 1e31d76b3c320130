package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/filter"
)

// ProjectionRepository define el puerto de lectura: listados y detalle con nombres de
// productos, tiendas y usuarios. Los Get* devuelven nil si no existe el registro.
type ProjectionRepository interface {
	ListStockIns(ctx context.Context, q filter.Query) ([]entity.StockInView, int64, error)
	ListStockOuts(ctx context.Context, q filter.Query) ([]entity.StockOutView, int64, error)
	ListStockMutations(ctx context.Context, q filter.Query) ([]entity.StockMutationView, int64, error)

	GetStockIn(ctx context.Context, id int64) (*entity.StockInView, error)
	GetStockOut(ctx context.Context, id int64) (*entity.StockOutView, error)
	GetStockMutation(ctx context.Context, id int64) (*entity.StockMutationView, error)

	ListBalances(ctx context.Context, loc entity.Location, q filter.Query) ([]entity.BalanceView, int64, error)
}

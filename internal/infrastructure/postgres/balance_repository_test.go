package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectBalance(t *testing.T) {
	sql, args, err := selectBalance(5, entity.Warehouse(), false).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "FROM warehouse_stocks WHERE product_id = $1")
	assert.NotContains(t, sql, "FOR UPDATE")
	assert.Equal(t, []any{int64(5)}, args)

	sql, args, err = selectBalance(5, entity.Store(2), true).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "FROM store_stocks")
	assert.Contains(t, sql, "product_id = $1")
	assert.Contains(t, sql, "store_id = $2")
	assert.True(t, strings.HasSuffix(sql, "FOR UPDATE"))
	assert.Equal(t, []any{int64(5), int64(2)}, args)
}

func TestIncrementBalance_Upsert(t *testing.T) {
	sql, args, err := incrementBalance(5, entity.Warehouse(), 10, 1).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "INSERT INTO warehouse_stocks")
	assert.Contains(t, sql, "ON CONFLICT (product_id) DO UPDATE SET quantity = warehouse_stocks.quantity + EXCLUDED.quantity")
	assert.Contains(t, sql, "RETURNING "+balanceReturning)
	assert.Equal(t, []any{int64(5), int64(10), entity.StatusAvailable, int64(1)}, args)

	sql, _, err = incrementBalance(5, entity.Store(3), 10, 1).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "ON CONFLICT (product_id, store_id)")
	assert.Contains(t, sql, "store_stocks.quantity + EXCLUDED.quantity")
}

func TestDecrementBalance_Condicional(t *testing.T) {
	sql, args, err := decrementBalance(5, entity.Store(3), 4, 9).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "UPDATE store_stocks SET quantity = quantity - $1")
	assert.Contains(t, sql, "quantity >= $")
	assert.Contains(t, sql, "RETURNING "+balanceReturning)
	assert.Contains(t, args, int64(4))
	assert.Contains(t, args, int64(9))
}

// failingQuerier devuelve err en cada consulta y cuenta cuántas se intentaron.
type failingQuerier struct {
	err     error
	queries int
}

func (f *failingQuerier) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	f.queries++
	return pgconn.CommandTag{}, f.err
}

func (f *failingQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	f.queries++
	return nil, f.err
}

func (f *failingQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	f.queries++
	return nil
}

// Tras una violación de CHECK la transacción está abortada: no se consulta de nuevo el saldo.
func TestDecrement_CheckViolationNoVuelveAConsultar(t *testing.T) {
	q := &failingQuerier{err: &pgconn.PgError{Code: "23514", ConstraintName: "store_stocks_quantity_check"}}
	repo := NewBalanceRepository(q)

	_, err := repo.Decrement(context.Background(), 4, entity.Store(1), 3, 9)
	var insuf *domain.InsufficientStockError
	require.ErrorAs(t, err, &insuf)
	assert.Equal(t, int64(4), insuf.ProductID)
	assert.Equal(t, int64(3), insuf.Requested)
	assert.Zero(t, insuf.Available)
	assert.Equal(t, "tienda 1", insuf.Location)
	assert.Equal(t, 1, q.queries)
}

func TestDecrement_OtroErrorSeEnvuelve(t *testing.T) {
	cause := errors.New("conexión perdida")
	q := &failingQuerier{err: cause}

	_, err := NewBalanceRepository(q).Decrement(context.Background(), 4, entity.Warehouse(), 3, 9)
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 1, q.queries)
}

package postgres

import (
	"errors"
	"testing"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyClauses_RangoYBusqueda(t *testing.T) {
	clauses := []filter.Clause{
		filter.Range{Field: "date", From: "2024-01-01", To: "2024-01-31"},
		filter.Contains{Field: "transaction_code", Value: "T_1%"},
	}
	q, err := applyClauses(stockInProjection.base(), stockInProjection, clauses)
	require.NoError(t, err)

	sql, args, err := q.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "h.date >= $1")
	assert.Contains(t, sql, "h.date <= $2")
	assert.Contains(t, sql, "h.transaction_code ILIKE $3")
	assert.Equal(t, []any{"2024-01-01", "2024-01-31", `%T\_1\%%`}, args)
}

func TestApplyClauses_RangoAbierto(t *testing.T) {
	q, err := applyClauses(stockOutProjection.base(), stockOutProjection,
		[]filter.Clause{filter.Range{Field: "date", From: "2024-01-01"}})
	require.NoError(t, err)

	sql, args, err := q.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "h.date >= $1")
	assert.NotContains(t, sql, "h.date <=")
	assert.Len(t, args, 1)
}

func TestApplyClauses_ProductoFiltraPorLineas(t *testing.T) {
	clauses := []filter.Clause{
		filter.In{Field: "store_id", Values: []any{int64(3)}},
		filter.In{Field: "product_id", Values: []any{int64(7), int64(9)}},
	}
	q, err := applyClauses(stockOutProjection.base(), stockOutProjection, clauses)
	require.NoError(t, err)

	sql, args, err := q.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "h.store_id IN ($1)")
	assert.Contains(t, sql, "h.id IN (SELECT stock_out_id FROM stock_out_details WHERE product_id IN ($2,$3))")
	assert.Equal(t, []any{int64(3), int64(7), int64(9)}, args)
}

func TestApplyClauses_CampoNoPermitido(t *testing.T) {
	_, err := applyClauses(stockInProjection.base(), stockInProjection,
		[]filter.Clause{filter.In{Field: "password_hash", Values: []any{"x"}}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestApplyClauses_InVacio(t *testing.T) {
	_, err := applyClauses(stockInProjection.base(), stockInProjection,
		[]filter.Clause{filter.In{Field: "store_id"}})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestApplySort(t *testing.T) {
	q, err := applySort(stockMutationProjection.base(), stockMutationProjection, nil)
	require.NoError(t, err)
	sql, _, err := q.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "ORDER BY h.date DESC, h.id DESC")

	q, err = applySort(stockMutationProjection.base(), stockMutationProjection,
		&filter.Sort{Field: "transaction_code"})
	require.NoError(t, err)
	sql, _, err = q.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "ORDER BY h.transaction_code ASC, h.id ASC")

	q, err = applySort(stockMutationProjection.base(), stockMutationProjection,
		&filter.Sort{Field: "id", Desc: true})
	require.NoError(t, err)
	sql, _, err = q.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "ORDER BY h.id DESC")
	assert.NotContains(t, sql, "h.id DESC, h.id")

	_, err = applySort(stockMutationProjection.base(), stockMutationProjection, &filter.Sort{Field: "h.id; DROP"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestApplyPage_Normaliza(t *testing.T) {
	sql, _, err := applyPage(stockInProjection.base(), filter.Page{Limit: 500, Offset: -3}).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "LIMIT 100")
	assert.Contains(t, sql, "OFFSET 0")
}

func TestBalanceProjection_Tienda(t *testing.T) {
	p := balanceProjection(entity.Store(4))
	q, err := applyClauses(p.base(), p, []filter.Clause{filter.Contains{Field: "name", Value: "arroz"}})
	require.NoError(t, err)

	sql, args, err := q.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "FROM store_stocks b")
	assert.Contains(t, sql, "b.store_id = $1")
	assert.Contains(t, sql, "p.name ILIKE $2")
	assert.Equal(t, []any{int64(4), "%arroz%"}, args)

	sql, _, err = balanceProjection(entity.Warehouse()).base().ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "FROM warehouse_stocks b")
	assert.NotContains(t, sql, "store_id")
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\%\_a\\b`, escapeLike(`50%_a\b`))
}

package postgres

import (
	"testing"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTablesFor(t *testing.T) {
	tbl, err := tablesFor(entity.KindStockMutation)
	require.NoError(t, err)
	assert.Equal(t, "stock_mutations", tbl.header)
	assert.Equal(t, "stock_mutation_details", tbl.detail)
	assert.Equal(t, "stock_mutation_id", tbl.fk)

	_, err = tablesFor(entity.MovementKind("ajuste"))
	assert.Error(t, err)
}

func TestProjectionsUsanTablasDelLibro(t *testing.T) {
	cases := map[entity.MovementKind]projection{
		entity.KindStockIn:       stockInProjection,
		entity.KindStockOut:      stockOutProjection,
		entity.KindStockMutation: stockMutationProjection,
	}
	for kind, p := range cases {
		tbl, err := tablesFor(kind)
		require.NoError(t, err)
		assert.Equal(t, tbl.detail, p.detail, kind)
		assert.Equal(t, tbl.fk, p.fk, kind)

		sql, _, err := p.base().ToSql()
		require.NoError(t, err)
		assert.Contains(t, sql, "FROM "+tbl.header+" h", kind)
	}
}

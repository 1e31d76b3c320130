package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPage_Limites(t *testing.T) {
	assert.Equal(t, Page{Limit: DefaultLimit, Offset: 0}, NewPage(0, -5))
	assert.Equal(t, Page{Limit: MaxLimit, Offset: 10}, NewPage(500, 10))
	assert.Equal(t, Page{Limit: 15, Offset: 30}, NewPage(15, 30))
}

func TestPageFromNumber(t *testing.T) {
	assert.Equal(t, Page{Limit: 10, Offset: 0}, PageFromNumber(1, 10))
	assert.Equal(t, Page{Limit: 10, Offset: 20}, PageFromNumber(3, 10))
	assert.Equal(t, Page{Limit: DefaultLimit, Offset: 0}, PageFromNumber(0, 0))
}

func TestQueryWhere_NoComparteSlice(t *testing.T) {
	base := Query{}.Where(In{Field: "store_id", Values: []any{int64(1)}})
	a := base.Where(Contains{Field: "transaction_code", Value: "A"})
	b := base.Where(Contains{Field: "transaction_code", Value: "B"})

	assert.Len(t, base.Clauses, 1)
	assert.Equal(t, "A", a.Clauses[1].(Contains).Value)
	assert.Equal(t, "B", b.Clauses[1].(Contains).Value)
}

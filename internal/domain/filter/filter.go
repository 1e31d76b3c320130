// Package filter define cláusulas tipadas para listar proyecciones del libro de movimientos.
package filter

// Clause cláusula de filtro. Solo Range, In y Contains la implementan.
type Clause interface {
	clause()
}

// Range acota un campo entre From y To (inclusive). Un límite nil queda abierto.
type Range struct {
	Field string
	From  any
	To    any
}

// In exige que el campo pertenezca al conjunto de valores.
type In struct {
	Field  string
	Values []any
}

// Contains búsqueda por subcadena, sin distinguir mayúsculas.
type Contains struct {
	Field string
	Value string
}

func (Range) clause()    {}
func (In) clause()       {}
func (Contains) clause() {}

// Sort orden del listado.
type Sort struct {
	Field string
	Desc  bool
}

// Límites de paginación.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Page ventana de resultados.
type Page struct {
	Limit  int
	Offset int
}

// NewPage normaliza limit y offset a valores válidos.
func NewPage(limit, offset int) Page {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return Page{Limit: limit, Offset: offset}
}

// PageFromNumber convierte un número de página (desde 1) a offset.
func PageFromNumber(page, limit int) Page {
	p := NewPage(limit, 0)
	if page > 1 {
		p.Offset = (page - 1) * p.Limit
	}
	return p
}

// Query filtros, orden y página de un listado.
type Query struct {
	Clauses []Clause
	Sort    *Sort
	Page    Page
}

// Where agrega una cláusula y devuelve la query resultante.
func (q Query) Where(c Clause) Query {
	q.Clauses = append(append([]Clause(nil), q.Clauses...), c)
	return q
}

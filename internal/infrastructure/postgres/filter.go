package postgres

import (
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/filter"
)

// projection describe una consulta de lectura: campos lógicos permitidos y su columna real.
type projection struct {
	base   func() squirrel.SelectBuilder
	fields map[string]string
	// detail y fk permiten filtrar cabeceras por product_id de sus líneas.
	detail string
	fk     string
	// idColumn desempata el orden y se usa en los Get por id.
	idColumn    string
	defaultSort string
}

func (p projection) column(field string) (string, error) {
	col, ok := p.fields[field]
	if !ok {
		return "", domain.NewValidationError("campo de filtro u orden no permitido: %s", field)
	}
	return col, nil
}

// applyClauses traduce las cláusulas a condiciones WHERE. Solo acepta campos de la lista blanca.
func applyClauses(q squirrel.SelectBuilder, p projection, clauses []filter.Clause) (squirrel.SelectBuilder, error) {
	for _, c := range clauses {
		switch c := c.(type) {
		case filter.Range:
			col, err := p.column(c.Field)
			if err != nil {
				return q, err
			}
			if c.From != nil {
				q = q.Where(squirrel.GtOrEq{col: c.From})
			}
			if c.To != nil {
				q = q.Where(squirrel.LtOrEq{col: c.To})
			}
		case filter.In:
			if len(c.Values) == 0 {
				return q, domain.NewValidationError("el filtro %s necesita al menos un valor", c.Field)
			}
			if c.Field == "product_id" && p.detail != "" {
				sub, args, err := squirrel.Select(p.fk).From(p.detail).
					Where(squirrel.Eq{"product_id": c.Values}).ToSql()
				if err != nil {
					return q, err
				}
				q = q.Where(squirrel.Expr(p.idColumn+" IN ("+sub+")", args...))
				continue
			}
			col, err := p.column(c.Field)
			if err != nil {
				return q, err
			}
			q = q.Where(squirrel.Eq{col: c.Values})
		case filter.Contains:
			col, err := p.column(c.Field)
			if err != nil {
				return q, err
			}
			q = q.Where(squirrel.ILike{col: "%" + escapeLike(c.Value) + "%"})
		default:
			return q, domain.NewValidationError("cláusula de filtro no soportada")
		}
	}
	return q, nil
}

// applySort ordena por el campo pedido (o el de defecto) y desempata por id.
func applySort(q squirrel.SelectBuilder, p projection, s *filter.Sort) (squirrel.SelectBuilder, error) {
	col, dir := p.defaultSort, "DESC"
	if s != nil {
		c, err := p.column(s.Field)
		if err != nil {
			return q, err
		}
		col = c
		if !s.Desc {
			dir = "ASC"
		}
	}
	order := col + " " + dir
	if col != p.idColumn {
		order += ", " + p.idColumn + " " + dir
	}
	return q.OrderBy(order), nil
}

func applyPage(q squirrel.SelectBuilder, page filter.Page) squirrel.SelectBuilder {
	page = filter.NewPage(page.Limit, page.Offset)
	return q.Limit(uint64(page.Limit)).Offset(uint64(page.Offset))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

package http

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/filter"
)

// listParams qué parámetros de query acepta un listado y a qué campo lógico se traducen.
type listParams struct {
	// idLists parámetro de lista separada por comas → campo lógico.
	idLists map[string]string
	// searchField campo sobre el que actúa search.
	searchField string
	// dateField campo sobre el que actúan date_from y date_to; vacío si no aplica.
	dateField string
}

var (
	stockInParams = listParams{
		idLists:     map[string]string{"store_id": "store_id", "product_id": "product_id"},
		searchField: "transaction_code",
		dateField:   "date",
	}
	stockOutParams = stockInParams
	// En traslados store_id filtra por la tienda destino.
	stockMutationParams = listParams{
		idLists: map[string]string{
			"store_id":      "to_store_id",
			"to_store_id":   "to_store_id",
			"from_store_id": "from_store_id",
			"product_id":    "product_id",
		},
		searchField: "transaction_code",
		dateField:   "date",
	}
	balanceParams = listParams{
		idLists:     map[string]string{"product_id": "product_id"},
		searchField: "name",
	}
)

const dateOnly = "2006-01-02"

// parseListQuery arma un filter.Query desde limit, offset|page, sort, order, fechas, listas de ids y search.
func parseListQuery(c *fiber.Ctx, p listParams) (filter.Query, error) {
	var q filter.Query

	limit, err := queryInt(c, "limit")
	if err != nil {
		return q, err
	}
	if page := c.Query("page"); page != "" && c.Query("offset") == "" {
		n, err := queryInt(c, "page")
		if err != nil {
			return q, err
		}
		q.Page = filter.PageFromNumber(n, limit)
	} else {
		offset, err := queryInt(c, "offset")
		if err != nil {
			return q, err
		}
		q.Page = filter.NewPage(limit, offset)
	}

	if field := strings.TrimSpace(c.Query("sort")); field != "" {
		s := &filter.Sort{Field: field, Desc: true}
		switch strings.ToLower(c.Query("order")) {
		case "", "desc":
		case "asc":
			s.Desc = false
		default:
			return q, domain.NewValidationError("order debe ser asc o desc")
		}
		q.Sort = s
	}

	if p.dateField != "" {
		var r filter.Range
		r.Field = p.dateField
		if v := c.Query("date_from"); v != "" {
			t, _, err := parseQueryDate("date_from", v)
			if err != nil {
				return q, err
			}
			r.From = t
		}
		if v := c.Query("date_to"); v != "" {
			t, onlyDate, err := parseQueryDate("date_to", v)
			if err != nil {
				return q, err
			}
			if onlyDate {
				t = t.Add(24*time.Hour - time.Nanosecond)
			}
			r.To = t
		}
		if r.From != nil || r.To != nil {
			q = q.Where(r)
		}
	}

	// Orden estable de parámetros para que el SQL resultante sea determinista.
	for _, param := range []string{"store_id", "from_store_id", "to_store_id", "product_id"} {
		field, ok := p.idLists[param]
		if !ok {
			continue
		}
		raw := c.Query(param)
		if raw == "" {
			continue
		}
		values, err := parseIDList(param, raw)
		if err != nil {
			return q, err
		}
		q = q.Where(filter.In{Field: field, Values: values})
	}

	if search := strings.TrimSpace(c.Query("search")); search != "" && p.searchField != "" {
		q = q.Where(filter.Contains{Field: p.searchField, Value: search})
	}
	return q, nil
}

func queryInt(c *fiber.Ctx, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, domain.NewValidationError("%s debe ser un entero no negativo", name)
	}
	return n, nil
}

func parseIDList(name, raw string) ([]any, error) {
	parts := strings.Split(raw, ",")
	values := make([]any, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			return nil, domain.NewValidationError("%s debe ser una lista de enteros positivos", name)
		}
		values = append(values, id)
	}
	if len(values) == 0 {
		return nil, domain.NewValidationError("%s debe ser una lista de enteros positivos", name)
	}
	return values, nil
}

func parseQueryDate(name, raw string) (time.Time, bool, error) {
	if t, err := time.Parse(dateOnly, raw); err == nil {
		return t.UTC(), true, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), false, nil
	}
	return time.Time{}, false, domain.NewValidationError("%s debe ser una fecha válida (YYYY-MM-DD o RFC3339)", name)
}

// paramID lee un parámetro de ruta entero positivo.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("%s debe ser un entero positivo", name)
	}
	return id, nil
}

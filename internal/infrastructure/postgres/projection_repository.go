package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/filter"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.ProjectionRepository = (*ProjectionRepo)(nil)

// ProjectionRepo consultas de lectura del libro y de saldos con nombres de catálogo.
type ProjectionRepo struct {
	q Querier
}

// NewProjectionRepository construye el adaptador de lectura.
func NewProjectionRepository(q Querier) *ProjectionRepo {
	return &ProjectionRepo{q: q}
}

// ──────────────────────────────────────────────────────────────────────────────
// Definición de proyecciones
// ──────────────────────────────────────────────────────────────────────────────

var movementFields = map[string]string{
	"id":               "h.id",
	"transaction_code": "h.transaction_code",
	"date":             "h.date",
	"created_by":       "h.created_by",
	"created_at":       "h.created_at",
	"updated_at":       "h.updated_at",
}

func withFields(extra map[string]string) map[string]string {
	out := make(map[string]string, len(movementFields)+len(extra))
	for k, v := range movementFields {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

func movementBase(header string, extra ...string) squirrel.SelectBuilder {
	cols := append([]string{
		"h.id", "h.transaction_code", "h.date",
		"h.created_by", "COALESCE(cu.name, '') AS created_by_name",
		"h.updated_by", "COALESCE(uu.name, '') AS updated_by_name",
		"h.created_at", "h.updated_at",
	}, extra...)
	return psql.Select(cols...).
		From(header + " h").
		LeftJoin("users cu ON cu.id = h.created_by").
		LeftJoin("users uu ON uu.id = h.updated_by")
}

var stockInProjection = projection{
	base: func() squirrel.SelectBuilder {
		return movementBase("stock_ins", "h.to_warehouse", "h.store_id", "s.name AS store_name").
			LeftJoin("stores s ON s.id = h.store_id")
	},
	fields:      withFields(map[string]string{"store_id": "h.store_id", "to_warehouse": "h.to_warehouse"}),
	detail:      "stock_in_details",
	fk:          "stock_in_id",
	idColumn:    "h.id",
	defaultSort: "h.date",
}

var stockOutProjection = projection{
	base: func() squirrel.SelectBuilder {
		return movementBase("stock_outs", "h.store_id", "COALESCE(s.name, '') AS store_name").
			LeftJoin("stores s ON s.id = h.store_id")
	},
	fields:      withFields(map[string]string{"store_id": "h.store_id"}),
	detail:      "stock_out_details",
	fk:          "stock_out_id",
	idColumn:    "h.id",
	defaultSort: "h.date",
}

var stockMutationProjection = projection{
	base: func() squirrel.SelectBuilder {
		return movementBase("stock_mutations",
			"h.from_warehouse", "h.from_store_id", "fs.name AS from_store_name",
			"h.to_store_id", "COALESCE(ts.name, '') AS to_store_name").
			LeftJoin("stores fs ON fs.id = h.from_store_id").
			LeftJoin("stores ts ON ts.id = h.to_store_id")
	},
	fields: withFields(map[string]string{
		"from_warehouse": "h.from_warehouse",
		"from_store_id":  "h.from_store_id",
		"to_store_id":    "h.to_store_id",
	}),
	detail:      "stock_mutation_details",
	fk:          "stock_mutation_id",
	idColumn:    "h.id",
	defaultSort: "h.date",
}

func balanceProjection(loc entity.Location) projection {
	return projection{
		base: func() squirrel.SelectBuilder {
			q := psql.Select(
				"b.product_id", "COALESCE(p.code, '') AS product_code", "COALESCE(p.name, '') AS product_name",
				"b.quantity", "b.status", "b.updated_at",
			).
				From(balanceTable(loc) + " b").
				LeftJoin("products p ON p.id = b.product_id")
			if !loc.IsWarehouse() {
				q = q.Where(squirrel.Eq{"b.store_id": loc.StoreID})
			}
			return q
		},
		fields: map[string]string{
			"product_id": "b.product_id",
			"quantity":   "b.quantity",
			"status":     "b.status",
			"updated_at": "b.updated_at",
			"name":       "p.name",
			"code":       "p.code",
		},
		idColumn:    "b.product_id",
		defaultSort: "b.updated_at",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Filas escaneadas
// ──────────────────────────────────────────────────────────────────────────────

type movementRow struct {
	ID              int64     `db:"id"`
	TransactionCode string    `db:"transaction_code"`
	Date            time.Time `db:"date"`
	CreatedBy       int64     `db:"created_by"`
	CreatedByName   string    `db:"created_by_name"`
	UpdatedBy       int64     `db:"updated_by"`
	UpdatedByName   string    `db:"updated_by_name"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (r movementRow) toView(lines []entity.LineView) entity.MovementView {
	if lines == nil {
		lines = []entity.LineView{}
	}
	return entity.MovementView{
		ID:              r.ID,
		TransactionCode: r.TransactionCode,
		Date:            r.Date,
		CreatedBy:       entity.Ref{ID: r.CreatedBy, Name: r.CreatedByName},
		UpdatedBy:       entity.Ref{ID: r.UpdatedBy, Name: r.UpdatedByName},
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
		Lines:           lines,
	}
}

type stockInRow struct {
	movementRow
	ToWarehouse bool    `db:"to_warehouse"`
	StoreID     *int64  `db:"store_id"`
	StoreName   *string `db:"store_name"`
}

type stockOutRow struct {
	movementRow
	StoreID   int64  `db:"store_id"`
	StoreName string `db:"store_name"`
}

type stockMutationRow struct {
	movementRow
	FromWarehouse bool    `db:"from_warehouse"`
	FromStoreID   *int64  `db:"from_store_id"`
	FromStoreName *string `db:"from_store_name"`
	ToStoreID     int64   `db:"to_store_id"`
	ToStoreName   string  `db:"to_store_name"`
}

type lineRow struct {
	ID          int64  `db:"id"`
	MovementID  int64  `db:"movement_id"`
	ProductID   int64  `db:"product_id"`
	ProductCode string `db:"product_code"`
	ProductName string `db:"product_name"`
	Quantity    int64  `db:"quantity"`
}

type balanceViewRow struct {
	ProductID   int64     `db:"product_id"`
	ProductCode string    `db:"product_code"`
	ProductName string    `db:"product_name"`
	Quantity    int64     `db:"quantity"`
	Status      string    `db:"status"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func optionalRef(id *int64, name *string) *entity.Ref {
	if id == nil {
		return nil
	}
	ref := &entity.Ref{ID: *id}
	if name != nil {
		ref.Name = *name
	}
	return ref
}

func (r stockInRow) toView(lines []entity.LineView) entity.StockInView {
	return entity.StockInView{
		MovementView: r.movementRow.toView(lines),
		ToWarehouse:  r.ToWarehouse,
		Store:        optionalRef(r.StoreID, r.StoreName),
	}
}

func (r stockOutRow) toView(lines []entity.LineView) entity.StockOutView {
	return entity.StockOutView{
		MovementView: r.movementRow.toView(lines),
		Store:        entity.Ref{ID: r.StoreID, Name: r.StoreName},
	}
}

func (r stockMutationRow) toView(lines []entity.LineView) entity.StockMutationView {
	return entity.StockMutationView{
		MovementView:  r.movementRow.toView(lines),
		FromWarehouse: r.FromWarehouse,
		FromStore:     optionalRef(r.FromStoreID, r.FromStoreName),
		ToStore:       entity.Ref{ID: r.ToStoreID, Name: r.ToStoreName},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

// list aplica filtros, cuenta el total sin paginar y escanea la página en dest.
func (r *ProjectionRepo) list(ctx context.Context, p projection, q filter.Query, dest any) (int64, error) {
	filtered, err := applyClauses(p.base(), p, q.Clauses)
	if err != nil {
		return 0, err
	}

	countSQL, countArgs, err := psql.Select("COUNT(*)").FromSelect(filtered, "sub").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}
	var total int64
	if err := r.q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}

	sorted, err := applySort(filtered, p, q.Sort)
	if err != nil {
		return 0, err
	}
	sql, args, err := applyPage(sorted, q.Page).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build list: %w", err)
	}
	if err := pgxscan.Select(ctx, r.q, dest, sql, args...); err != nil {
		return 0, fmt.Errorf("list: %w", err)
	}
	return total, nil
}

// get escanea la fila con id en dest; false si no existe.
func (r *ProjectionRepo) get(ctx context.Context, p projection, id int64, dest any) (bool, error) {
	sql, args, err := p.base().Where(squirrel.Eq{p.idColumn: id}).ToSql()
	if err != nil {
		return false, fmt.Errorf("build get: %w", err)
	}
	if err := pgxscan.Get(ctx, r.q, dest, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("get: %w", err)
	}
	return true, nil
}

// lines devuelve las líneas de las cabeceras indicadas, agrupadas por id de cabecera.
func (r *ProjectionRepo) lines(ctx context.Context, p projection, ids []int64) (map[int64][]entity.LineView, error) {
	out := make(map[int64][]entity.LineView, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	sql, args, err := psql.Select(
		"d.id", "d."+p.fk+" AS movement_id", "d.product_id",
		"COALESCE(pr.code, '') AS product_code", "COALESCE(pr.name, '') AS product_name", "d.quantity",
	).
		From(p.detail + " d").
		LeftJoin("products pr ON pr.id = d.product_id").
		Where(squirrel.Eq{"d." + p.fk: ids}).
		OrderBy("d.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build lines: %w", err)
	}
	var rows []lineRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("lines %s: %w", p.detail, err)
	}
	for _, l := range rows {
		out[l.MovementID] = append(out[l.MovementID], entity.LineView{
			ProductID:   l.ProductID,
			ProductCode: l.ProductCode,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
		})
	}
	return out, nil
}

// ListStockIns lista entradas con sus líneas.
func (r *ProjectionRepo) ListStockIns(ctx context.Context, q filter.Query) ([]entity.StockInView, int64, error) {
	var rows []stockInRow
	total, err := r.list(ctx, stockInProjection, q, &rows)
	if err != nil {
		return nil, 0, err
	}
	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	lines, err := r.lines(ctx, stockInProjection, ids)
	if err != nil {
		return nil, 0, err
	}
	out := make([]entity.StockInView, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toView(lines[row.ID]))
	}
	return out, total, nil
}

// ListStockOuts lista salidas con sus líneas.
func (r *ProjectionRepo) ListStockOuts(ctx context.Context, q filter.Query) ([]entity.StockOutView, int64, error) {
	var rows []stockOutRow
	total, err := r.list(ctx, stockOutProjection, q, &rows)
	if err != nil {
		return nil, 0, err
	}
	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	lines, err := r.lines(ctx, stockOutProjection, ids)
	if err != nil {
		return nil, 0, err
	}
	out := make([]entity.StockOutView, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toView(lines[row.ID]))
	}
	return out, total, nil
}

// ListStockMutations lista traslados con sus líneas.
func (r *ProjectionRepo) ListStockMutations(ctx context.Context, q filter.Query) ([]entity.StockMutationView, int64, error) {
	var rows []stockMutationRow
	total, err := r.list(ctx, stockMutationProjection, q, &rows)
	if err != nil {
		return nil, 0, err
	}
	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	lines, err := r.lines(ctx, stockMutationProjection, ids)
	if err != nil {
		return nil, 0, err
	}
	out := make([]entity.StockMutationView, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toView(lines[row.ID]))
	}
	return out, total, nil
}

// GetStockIn devuelve la entrada con sus líneas; nil si no existe.
func (r *ProjectionRepo) GetStockIn(ctx context.Context, id int64) (*entity.StockInView, error) {
	var row stockInRow
	found, err := r.get(ctx, stockInProjection, id, &row)
	if err != nil || !found {
		return nil, err
	}
	lines, err := r.lines(ctx, stockInProjection, []int64{id})
	if err != nil {
		return nil, err
	}
	v := row.toView(lines[id])
	return &v, nil
}

// GetStockOut devuelve la salida con sus líneas; nil si no existe.
func (r *ProjectionRepo) GetStockOut(ctx context.Context, id int64) (*entity.StockOutView, error) {
	var row stockOutRow
	found, err := r.get(ctx, stockOutProjection, id, &row)
	if err != nil || !found {
		return nil, err
	}
	lines, err := r.lines(ctx, stockOutProjection, []int64{id})
	if err != nil {
		return nil, err
	}
	v := row.toView(lines[id])
	return &v, nil
}

// GetStockMutation devuelve el traslado con sus líneas; nil si no existe.
func (r *ProjectionRepo) GetStockMutation(ctx context.Context, id int64) (*entity.StockMutationView, error) {
	var row stockMutationRow
	found, err := r.get(ctx, stockMutationProjection, id, &row)
	if err != nil || !found {
		return nil, err
	}
	lines, err := r.lines(ctx, stockMutationProjection, []int64{id})
	if err != nil {
		return nil, err
	}
	v := row.toView(lines[id])
	return &v, nil
}

// ListBalances lista los saldos de una ubicación con nombre y código de producto.
func (r *ProjectionRepo) ListBalances(ctx context.Context, loc entity.Location, q filter.Query) ([]entity.BalanceView, int64, error) {
	var rows []balanceViewRow
	total, err := r.list(ctx, balanceProjection(loc), q, &rows)
	if err != nil {
		return nil, 0, err
	}
	out := make([]entity.BalanceView, 0, len(rows))
	for _, row := range rows {
		out = append(out, entity.BalanceView{
			ProductID:   row.ProductID,
			ProductCode: row.ProductCode,
			ProductName: row.ProductName,
			Location:    loc,
			Quantity:    row.Quantity,
			Status:      row.Status,
			UpdatedAt:   row.UpdatedAt,
		})
	}
	return out, total, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// ledgerTables cabecera, detalle y FK del detalle para un tipo de transacción.
type ledgerTables struct {
	header string
	detail string
	fk     string
}

var ledgerTablesByKind = map[entity.MovementKind]ledgerTables{
	entity.KindStockIn:       {header: "stock_ins", detail: "stock_in_details", fk: "stock_in_id"},
	entity.KindStockOut:      {header: "stock_outs", detail: "stock_out_details", fk: "stock_out_id"},
	entity.KindStockMutation: {header: "stock_mutations", detail: "stock_mutation_details", fk: "stock_mutation_id"},
}

func tablesFor(kind entity.MovementKind) (ledgerTables, error) {
	t, ok := ledgerTablesByKind[kind]
	if !ok {
		return ledgerTables{}, fmt.Errorf("tipo de movimiento desconocido: %q", kind)
	}
	return t, nil
}

// LedgerRepo persiste el libro de movimientos (usable con pool o tx). Solo inserta.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador del libro. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// CodeExists indica si el código ya fue usado dentro del tipo.
func (r *LedgerRepo) CodeExists(ctx context.Context, kind entity.MovementKind, code string) (bool, error) {
	t, err := tablesFor(kind)
	if err != nil {
		return false, err
	}
	sql, args, err := psql.Select("1").From(t.header).Where("transaction_code = ?", code).
		Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return false, fmt.Errorf("build code exists: %w", err)
	}
	var exists bool
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("code exists %s: %w", t.header, err)
	}
	return exists, nil
}

// CreateStockIn inserta la entrada y sus líneas.
func (r *LedgerRepo) CreateStockIn(ctx context.Context, in *entity.StockIn) error {
	return r.create(ctx, entity.KindStockIn, &in.Movement,
		[]string{"to_warehouse", "store_id"},
		[]any{in.ToWarehouse, in.StoreID})
}

// CreateStockOut inserta la salida y sus líneas.
func (r *LedgerRepo) CreateStockOut(ctx context.Context, out *entity.StockOut) error {
	return r.create(ctx, entity.KindStockOut, &out.Movement,
		[]string{"store_id"},
		[]any{out.StoreID})
}

// CreateStockMutation inserta el traslado y sus líneas.
func (r *LedgerRepo) CreateStockMutation(ctx context.Context, m *entity.StockMutation) error {
	return r.create(ctx, entity.KindStockMutation, &m.Movement,
		[]string{"from_warehouse", "from_store_id", "to_store_id"},
		[]any{m.FromWarehouse, m.FromStoreID, m.ToStoreID})
}

func (r *LedgerRepo) create(ctx context.Context, kind entity.MovementKind, m *entity.Movement, cols []string, vals []any) error {
	t, err := tablesFor(kind)
	if err != nil {
		return err
	}
	if len(m.Lines) == 0 {
		return fmt.Errorf("insert %s: sin líneas", t.header)
	}

	sql, args, err := psql.Insert(t.header).
		Columns(append([]string{"transaction_code", "date", "created_by", "updated_by"}, cols...)...).
		Values(append([]any{m.TransactionCode, m.Date, m.CreatedBy, m.UpdatedBy}, vals...)...).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert %s: %w", t.header, err)
	}
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return &domain.DuplicateTransactionError{Kind: kind.Label(), Code: m.TransactionCode}
		}
		if refErr := missingReference(err); refErr != nil {
			return refErr
		}
		return fmt.Errorf("insert %s: %w", t.header, err)
	}

	lines := psql.Insert(t.detail).Columns(t.fk, "product_id", "quantity")
	for _, l := range m.Lines {
		lines = lines.Values(m.ID, l.ProductID, l.Quantity)
	}
	sql, args, err = lines.ToSql()
	if err != nil {
		return fmt.Errorf("build insert %s: %w", t.detail, err)
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		if refErr := missingReference(err); refErr != nil {
			return refErr
		}
		return fmt.Errorf("insert %s: %w", t.detail, err)
	}
	return nil
}

// LastID id más alto registrado para el tipo; 0 si no hay registros.
func (r *LedgerRepo) LastID(ctx context.Context, kind entity.MovementKind) (int64, error) {
	t, err := tablesFor(kind)
	if err != nil {
		return 0, err
	}
	sql, _, err := psql.Select("COALESCE(MAX(id), 0)").From(t.header).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build last id: %w", err)
	}
	var id int64
	if err := r.q.QueryRow(ctx, sql).Scan(&id); err != nil {
		return 0, fmt.Errorf("last id %s: %w", t.header, err)
	}
	return id, nil
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.BalanceRepository = (*BalanceRepo)(nil)

const balanceReturning = "product_id, quantity, status, updated_by, updated_at"

// BalanceRepo implementación de BalanceRepository sobre PostgreSQL (usable con pool o tx).
// La bodega vive en warehouse_stocks y cada tienda en store_stocks.
type BalanceRepo struct {
	q Querier
}

// NewBalanceRepository construye el adaptador de saldos. Pasar pool o tx (Querier).
func NewBalanceRepository(q Querier) *BalanceRepo {
	return &BalanceRepo{q: q}
}

type balanceRow struct {
	ProductID int64     `db:"product_id"`
	Quantity  int64     `db:"quantity"`
	Status    string    `db:"status"`
	UpdatedBy *int64    `db:"updated_by"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r balanceRow) toEntity(loc entity.Location) *entity.Balance {
	b := &entity.Balance{
		ProductID: r.ProductID,
		Location:  loc,
		Quantity:  r.Quantity,
		Status:    r.Status,
		UpdatedAt: r.UpdatedAt,
	}
	if r.UpdatedBy != nil {
		b.UpdatedBy = *r.UpdatedBy
	}
	return b
}

func balanceTable(loc entity.Location) string {
	if loc.IsWarehouse() {
		return "warehouse_stocks"
	}
	return "store_stocks"
}

func balanceKey(productID int64, loc entity.Location) squirrel.Eq {
	if loc.IsWarehouse() {
		return squirrel.Eq{"product_id": productID}
	}
	return squirrel.Eq{"product_id": productID, "store_id": loc.StoreID}
}

func selectBalance(productID int64, loc entity.Location, forUpdate bool) squirrel.SelectBuilder {
	q := psql.Select(balanceReturning).
		From(balanceTable(loc)).
		Where(balanceKey(productID, loc))
	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}
	return q
}

func incrementBalance(productID int64, loc entity.Location, amount, actorID int64) squirrel.InsertBuilder {
	table := balanceTable(loc)
	conflict := "(product_id)"
	ins := psql.Insert(table)
	if loc.IsWarehouse() {
		ins = ins.Columns("product_id", "quantity", "status", "updated_by", "updated_at").
			Values(productID, amount, entity.StatusAvailable, actorID, squirrel.Expr("now()"))
	} else {
		conflict = "(product_id, store_id)"
		ins = ins.Columns("product_id", "store_id", "quantity", "status", "updated_by", "updated_at").
			Values(productID, loc.StoreID, amount, entity.StatusAvailable, actorID, squirrel.Expr("now()"))
	}
	return ins.Suffix(fmt.Sprintf(
		"ON CONFLICT %s DO UPDATE SET quantity = %s.quantity + EXCLUDED.quantity, updated_by = EXCLUDED.updated_by, updated_at = now() RETURNING %s",
		conflict, table, balanceReturning))
}

func decrementBalance(productID int64, loc entity.Location, amount, actorID int64) squirrel.UpdateBuilder {
	return psql.Update(balanceTable(loc)).
		Set("quantity", squirrel.Expr("quantity - ?", amount)).
		Set("updated_by", actorID).
		Set("updated_at", squirrel.Expr("now()")).
		Where(balanceKey(productID, loc)).
		Where(squirrel.GtOrEq{"quantity": amount}).
		Suffix("RETURNING " + balanceReturning)
}

// Get obtiene el saldo actual; nil si el producto nunca tuvo saldo en la ubicación.
func (r *BalanceRepo) Get(ctx context.Context, productID int64, loc entity.Location) (*entity.Balance, error) {
	return r.get(ctx, productID, loc, false)
}

// GetForUpdate obtiene el saldo y bloquea la fila para update (SELECT FOR UPDATE).
func (r *BalanceRepo) GetForUpdate(ctx context.Context, productID int64, loc entity.Location) (*entity.Balance, error) {
	return r.get(ctx, productID, loc, true)
}

func (r *BalanceRepo) get(ctx context.Context, productID int64, loc entity.Location, forUpdate bool) (*entity.Balance, error) {
	sql, args, err := selectBalance(productID, loc, forUpdate).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get balance: %w", err)
	}
	var row balanceRow
	if err := pgxscan.Get(ctx, r.q, &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get balance: %w", err)
	}
	return row.toEntity(loc), nil
}

// Increment suma amount al saldo, creándolo si no existe.
func (r *BalanceRepo) Increment(ctx context.Context, productID int64, loc entity.Location, amount, actorID int64) (*entity.Balance, error) {
	sql, args, err := incrementBalance(productID, loc, amount, actorID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build increment balance: %w", err)
	}
	var row balanceRow
	if err := pgxscan.Get(ctx, r.q, &row, sql, args...); err != nil {
		if refErr := missingReference(err); refErr != nil {
			return nil, refErr
		}
		return nil, fmt.Errorf("increment balance: %w", err)
	}
	return row.toEntity(loc), nil
}

// Decrement resta amount con un UPDATE condicional (quantity >= amount). Si no se actualiza
// ninguna fila el saldo no alcanza o no existe.
func (r *BalanceRepo) Decrement(ctx context.Context, productID int64, loc entity.Location, amount, actorID int64) (*entity.Balance, error) {
	sql, args, err := decrementBalance(productID, loc, amount, actorID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build decrement balance: %w", err)
	}
	var row balanceRow
	err = pgxscan.Get(ctx, r.q, &row, sql, args...)
	if err == nil {
		return row.toEntity(loc), nil
	}
	var available int64
	switch {
	case pgxscan.NotFound(err):
		current, getErr := r.Get(ctx, productID, loc)
		if getErr != nil {
			return nil, getErr
		}
		if current != nil {
			available = current.Quantity
		}
	case isCheckViolation(err):
		// La transacción quedó abortada: no se puede leer el saldo actual.
	default:
		return nil, fmt.Errorf("decrement balance: %w", err)
	}
	return nil, &domain.InsufficientStockError{
		ProductID: productID,
		Location:  loc.String(),
		Requested: amount,
		Available: available,
	}
}

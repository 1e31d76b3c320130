package stock

import (
	"context"
	"math"
	"sort"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/rs/zerolog"
)

// Engine registra entradas, salidas y traslados. Cada registro corre en una única transacción:
// verificación de código, bloqueo y verificación de saldos, cambios de saldo e inserción en el libro.
type Engine struct {
	txRunner TxRunner
	log      zerolog.Logger
}

// NewEngine construye el motor de movimientos.
func NewEngine(txRunner TxRunner, log zerolog.Logger) *Engine {
	return &Engine{txRunner: txRunner, log: log}
}

// ProcessStockIn valida la entrada, suma cada línea al saldo destino y guarda la transacción.
func (e *Engine) ProcessStockIn(ctx context.Context, req *dto.StockInRequest, actor entity.Actor) (*dto.StockInResponse, error) {
	if actor.ID <= 0 {
		return nil, domain.ErrUnauthorized
	}
	in, err := ValidateStockIn(req)
	if err != nil {
		return nil, err
	}
	stamp(&in.Movement, actor)

	err = e.txRunner.Run(ctx, func(balances repository.BalanceRepository, ledger repository.LedgerRepository) error {
		if err := ensureUniqueCode(ctx, ledger, entity.KindStockIn, in.TransactionCode); err != nil {
			return err
		}
		target := in.Target()
		if _, err := lockBalances(ctx, balances, lockKeys(in.Lines, target)); err != nil {
			return err
		}
		for _, l := range in.Lines {
			if _, err := balances.Increment(ctx, l.ProductID, target, l.Quantity, actor.ID); err != nil {
				return err
			}
		}
		return ledger.CreateStockIn(ctx, in)
	})
	if err != nil {
		return nil, err
	}
	e.logCommitted(entity.KindStockIn, &in.Movement, actor)
	return toStockInResponse(in, actor), nil
}

// ProcessStockOut descuenta de la bodega cada línea y guarda la salida. Si algún producto no
// alcanza, no se aplica ningún cambio.
func (e *Engine) ProcessStockOut(ctx context.Context, req *dto.StockOutRequest, actor entity.Actor) (*dto.StockOutResponse, error) {
	if actor.ID <= 0 {
		return nil, domain.ErrUnauthorized
	}
	out, err := ValidateStockOut(req)
	if err != nil {
		return nil, err
	}
	stamp(&out.Movement, actor)

	err = e.txRunner.Run(ctx, func(balances repository.BalanceRepository, ledger repository.LedgerRepository) error {
		if err := ensureUniqueCode(ctx, ledger, entity.KindStockOut, out.TransactionCode); err != nil {
			return err
		}
		source := out.Source()
		current, err := lockBalances(ctx, balances, lockKeys(out.Lines, source))
		if err != nil {
			return err
		}
		if err := checkAvailable(current, out.Lines, source); err != nil {
			return err
		}
		for _, l := range out.Lines {
			if _, err := balances.Decrement(ctx, l.ProductID, source, l.Quantity, actor.ID); err != nil {
				return err
			}
		}
		return ledger.CreateStockOut(ctx, out)
	})
	if err != nil {
		return nil, err
	}
	e.logCommitted(entity.KindStockOut, &out.Movement, actor)
	return toStockOutResponse(out, actor), nil
}

// ProcessStockMutation mueve cantidades del origen a la tienda destino: descuenta el origen y
// suma en destino, de modo que el total por producto no cambia.
func (e *Engine) ProcessStockMutation(ctx context.Context, req *dto.StockMutationRequest, actor entity.Actor) (*dto.StockMutationResponse, error) {
	if actor.ID <= 0 {
		return nil, domain.ErrUnauthorized
	}
	m, err := ValidateStockMutation(req)
	if err != nil {
		return nil, err
	}
	stamp(&m.Movement, actor)

	err = e.txRunner.Run(ctx, func(balances repository.BalanceRepository, ledger repository.LedgerRepository) error {
		if err := ensureUniqueCode(ctx, ledger, entity.KindStockMutation, m.TransactionCode); err != nil {
			return err
		}
		source, dest := m.Source(), m.Destination()
		// Origen y destino en una sola pasada ordenada: un traslado 1->2 y otro 2->1 piden las
		// mismas filas en el mismo orden.
		current, err := lockBalances(ctx, balances, append(lockKeys(m.Lines, source), lockKeys(m.Lines, dest)...))
		if err != nil {
			return err
		}
		if err := checkAvailable(current, m.Lines, source); err != nil {
			return err
		}
		for _, l := range m.Lines {
			if _, err := balances.Decrement(ctx, l.ProductID, source, l.Quantity, actor.ID); err != nil {
				return err
			}
		}
		for _, l := range m.Lines {
			if _, err := balances.Increment(ctx, l.ProductID, dest, l.Quantity, actor.ID); err != nil {
				return err
			}
		}
		return ledger.CreateStockMutation(ctx, m)
	})
	if err != nil {
		return nil, err
	}
	e.logCommitted(entity.KindStockMutation, &m.Movement, actor)
	return toStockMutationResponse(m, actor), nil
}

func (e *Engine) logCommitted(kind entity.MovementKind, m *entity.Movement, actor entity.Actor) {
	e.log.Info().
		Str("kind", string(kind)).
		Int64("id", m.ID).
		Str("transaction_code", m.TransactionCode).
		Int("lines", len(m.Lines)).
		Int64("actor_id", actor.ID).
		Msg("movimiento registrado")
}

func stamp(m *entity.Movement, actor entity.Actor) {
	m.CreatedBy = actor.ID
	m.UpdatedBy = actor.ID
}

func ensureUniqueCode(ctx context.Context, ledger repository.LedgerRepository, kind entity.MovementKind, code string) error {
	exists, err := ledger.CodeExists(ctx, kind, code)
	if err != nil {
		return err
	}
	if exists {
		return &domain.DuplicateTransactionError{Kind: kind.Label(), Code: code}
	}
	return nil
}

// demand agrupa la cantidad pedida por producto conservando el orden de primera aparición.
// Falla si la suma de un producto no cabe en int64.
func demand(lines []entity.MovementLine) (order []int64, need map[int64]int64, err error) {
	need = make(map[int64]int64, len(lines))
	for _, l := range lines {
		prev, ok := need[l.ProductID]
		if !ok {
			order = append(order, l.ProductID)
		}
		if l.Quantity > math.MaxInt64-prev {
			return nil, nil, domain.NewValidationError("la cantidad total del producto %d excede el máximo permitido", l.ProductID)
		}
		need[l.ProductID] = prev + l.Quantity
	}
	return order, need, nil
}

// balanceKey identifica una fila de saldo.
type balanceKey struct {
	loc       entity.Location
	productID int64
}

// before es el orden global de bloqueo: bodega antes que tiendas, luego id de tienda y
// por último id de producto.
func (k balanceKey) before(o balanceKey) bool {
	if k.loc.IsWarehouse() != o.loc.IsWarehouse() {
		return k.loc.IsWarehouse()
	}
	if k.loc.StoreID != o.loc.StoreID {
		return k.loc.StoreID < o.loc.StoreID
	}
	return k.productID < o.productID
}

func lockKeys(lines []entity.MovementLine, loc entity.Location) []balanceKey {
	keys := make([]balanceKey, 0, len(lines))
	for _, l := range lines {
		keys = append(keys, balanceKey{loc: loc, productID: l.ProductID})
	}
	return keys
}

// lockBalances bloquea cada fila una sola vez siguiendo el orden global, para que dos
// transacciones concurrentes no se esperen mutuamente. Devuelve la cantidad leída por fila;
// las filas inexistentes quedan en cero.
func lockBalances(ctx context.Context, balances repository.BalanceRepository, keys []balanceKey) (map[balanceKey]int64, error) {
	sorted := append([]balanceKey(nil), keys...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].before(sorted[j]) })

	current := make(map[balanceKey]int64, len(sorted))
	for i, k := range sorted {
		if i > 0 && sorted[i-1] == k {
			continue
		}
		b, err := balances.GetForUpdate(ctx, k.productID, k.loc)
		if err != nil {
			return nil, err
		}
		current[k] = 0
		if b != nil {
			current[k] = b.Quantity
		}
	}
	return current, nil
}

// checkAvailable verifica sobre los saldos ya bloqueados, en el orden de las líneas, que cada
// producto cubra la suma pedida en loc. No modifica saldos.
func checkAvailable(current map[balanceKey]int64, lines []entity.MovementLine, loc entity.Location) error {
	order, need, err := demand(lines)
	if err != nil {
		return err
	}
	for _, id := range order {
		have := current[balanceKey{loc: loc, productID: id}]
		if have < need[id] {
			return &domain.InsufficientStockError{
				ProductID: id,
				Location:  loc.String(),
				Requested: need[id],
				Available: have,
			}
		}
	}
	return nil
}

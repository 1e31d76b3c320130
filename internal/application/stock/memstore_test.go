package stock_test

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/filter"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria con transacciones por snapshot
// ──────────────────────────────────────────────────────────────────────────────

type balanceKey struct {
	productID int64
	loc       entity.Location
}

type memStore struct {
	mu       sync.Mutex
	balances map[balanceKey]entity.Balance
	codes    map[entity.MovementKind]map[string]bool
	lastID   map[entity.MovementKind]int64
	ins      []entity.StockIn
	outs     []entity.StockOut
	muts     []entity.StockMutation

	// locked registra el orden de GetForUpdate dentro de la última transacción.
	locked []balanceKey
	// failCreate se devuelve desde Create* para simular una falla de BD.
	failCreate error
}

func newMemStore() *memStore {
	return &memStore{
		balances: map[balanceKey]entity.Balance{},
		codes:    map[entity.MovementKind]map[string]bool{},
		lastID:   map[entity.MovementKind]int64{},
	}
}

func (s *memStore) set(productID int64, loc entity.Location, qty int64) {
	s.balances[balanceKey{productID, loc}] = entity.Balance{
		ProductID: productID, Location: loc, Quantity: qty, Status: entity.StatusAvailable,
	}
}

func (s *memStore) qty(productID int64, loc entity.Location) int64 {
	return s.balances[balanceKey{productID, loc}].Quantity
}

func (s *memStore) ledgerRows() int {
	return len(s.ins) + len(s.outs) + len(s.muts)
}

type memSnapshot struct {
	balances map[balanceKey]entity.Balance
	codes    map[entity.MovementKind]map[string]bool
	lastID   map[entity.MovementKind]int64
	ins      int
	outs     int
	muts     int
}

func (s *memStore) snapshot() memSnapshot {
	snap := memSnapshot{
		balances: make(map[balanceKey]entity.Balance, len(s.balances)),
		codes:    map[entity.MovementKind]map[string]bool{},
		lastID:   map[entity.MovementKind]int64{},
		ins:      len(s.ins),
		outs:     len(s.outs),
		muts:     len(s.muts),
	}
	for k, v := range s.balances {
		snap.balances[k] = v
	}
	for k, m := range s.codes {
		cp := map[string]bool{}
		for c := range m {
			cp[c] = true
		}
		snap.codes[k] = cp
	}
	for k, v := range s.lastID {
		snap.lastID[k] = v
	}
	return snap
}

func (s *memStore) restore(snap memSnapshot) {
	s.balances = snap.balances
	s.codes = snap.codes
	s.lastID = snap.lastID
	s.ins = s.ins[:snap.ins]
	s.outs = s.outs[:snap.outs]
	s.muts = s.muts[:snap.muts]
}

// memRunner serializa las transacciones y revierte el snapshot si fn falla.
type memRunner struct{ s *memStore }

func (r memRunner) Run(ctx context.Context, fn func(repository.BalanceRepository, repository.LedgerRepository) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.locked = nil
	snap := r.s.snapshot()
	if err := fn(memBalances{r.s}, memLedger{r.s}); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

type memBalances struct{ s *memStore }

func (b memBalances) Get(_ context.Context, productID int64, loc entity.Location) (*entity.Balance, error) {
	v, ok := b.s.balances[balanceKey{productID, loc}]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (b memBalances) GetForUpdate(ctx context.Context, productID int64, loc entity.Location) (*entity.Balance, error) {
	b.s.locked = append(b.s.locked, balanceKey{productID, loc})
	return b.Get(ctx, productID, loc)
}

func (b memBalances) Increment(_ context.Context, productID int64, loc entity.Location, amount, actorID int64) (*entity.Balance, error) {
	k := balanceKey{productID, loc}
	v, ok := b.s.balances[k]
	if !ok {
		v = entity.Balance{ProductID: productID, Location: loc, Status: entity.StatusAvailable}
	}
	v.Quantity += amount
	v.UpdatedBy = actorID
	b.s.balances[k] = v
	return &v, nil
}

func (b memBalances) Decrement(_ context.Context, productID int64, loc entity.Location, amount, actorID int64) (*entity.Balance, error) {
	k := balanceKey{productID, loc}
	v, ok := b.s.balances[k]
	if !ok || v.Quantity < amount {
		return nil, &domain.InsufficientStockError{ProductID: productID, Location: loc.String(), Requested: amount, Available: v.Quantity}
	}
	v.Quantity -= amount
	v.UpdatedBy = actorID
	b.s.balances[k] = v
	return &v, nil
}

type memLedger struct{ s *memStore }

func (l memLedger) CodeExists(_ context.Context, kind entity.MovementKind, code string) (bool, error) {
	return l.s.codes[kind][code], nil
}

func (l memLedger) register(kind entity.MovementKind, m *entity.Movement) error {
	if l.s.failCreate != nil {
		return l.s.failCreate
	}
	if l.s.codes[kind] == nil {
		l.s.codes[kind] = map[string]bool{}
	}
	if l.s.codes[kind][m.TransactionCode] {
		return &domain.DuplicateTransactionError{Kind: kind.Label(), Code: m.TransactionCode}
	}
	l.s.codes[kind][m.TransactionCode] = true
	l.s.lastID[kind]++
	m.ID = l.s.lastID[kind]
	return nil
}

func (l memLedger) CreateStockIn(_ context.Context, in *entity.StockIn) error {
	if err := l.register(entity.KindStockIn, &in.Movement); err != nil {
		return err
	}
	l.s.ins = append(l.s.ins, *in)
	return nil
}

func (l memLedger) CreateStockOut(_ context.Context, out *entity.StockOut) error {
	if err := l.register(entity.KindStockOut, &out.Movement); err != nil {
		return err
	}
	l.s.outs = append(l.s.outs, *out)
	return nil
}

func (l memLedger) CreateStockMutation(_ context.Context, m *entity.StockMutation) error {
	if err := l.register(entity.KindStockMutation, &m.Movement); err != nil {
		return err
	}
	l.s.muts = append(l.s.muts, *m)
	return nil
}

func (l memLedger) LastID(_ context.Context, kind entity.MovementKind) (int64, error) {
	return l.s.lastID[kind], nil
}

// fakeProjections devuelve vistas fijas para los tests del QueryService.
type fakeProjections struct {
	stockIns []entity.StockInView
	balances []entity.BalanceView
	lastQ    filter.Query
	err      error
}

func (p *fakeProjections) ListStockIns(_ context.Context, q filter.Query) ([]entity.StockInView, int64, error) {
	p.lastQ = q
	return p.stockIns, int64(len(p.stockIns)), p.err
}

func (p *fakeProjections) ListStockOuts(context.Context, filter.Query) ([]entity.StockOutView, int64, error) {
	return nil, 0, p.err
}

func (p *fakeProjections) ListStockMutations(context.Context, filter.Query) ([]entity.StockMutationView, int64, error) {
	return nil, 0, p.err
}

func (p *fakeProjections) GetStockIn(_ context.Context, id int64) (*entity.StockInView, error) {
	for i := range p.stockIns {
		if p.stockIns[i].ID == id {
			return &p.stockIns[i], nil
		}
	}
	return nil, p.err
}

func (p *fakeProjections) GetStockOut(context.Context, int64) (*entity.StockOutView, error) {
	return nil, p.err
}

func (p *fakeProjections) GetStockMutation(context.Context, int64) (*entity.StockMutationView, error) {
	return nil, p.err
}

func (p *fakeProjections) ListBalances(_ context.Context, loc entity.Location, q filter.Query) ([]entity.BalanceView, int64, error) {
	p.lastQ = q
	var out []entity.BalanceView
	for _, b := range p.balances {
		if b.Location == loc {
			out = append(out, b)
		}
	}
	return out, int64(len(out)), p.err
}

var errDB = errors.New("conexión perdida")

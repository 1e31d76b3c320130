package stock

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/filter"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// QueryService casos de uso de lectura del libro y de los saldos.
type QueryService struct {
	projections repository.ProjectionRepository
	ledger      repository.LedgerRepository
	balances    repository.BalanceRepository
}

// NewQueryService construye el servicio de consultas.
func NewQueryService(projections repository.ProjectionRepository, ledger repository.LedgerRepository, balances repository.BalanceRepository) *QueryService {
	return &QueryService{projections: projections, ledger: ledger, balances: balances}
}

// ListStockIns lista entradas con filtros, orden y página.
func (s *QueryService) ListStockIns(ctx context.Context, q filter.Query) (*dto.ListResponse[dto.StockInResponse], error) {
	items, total, err := s.projections.ListStockIns(ctx, q)
	if err != nil {
		return nil, err
	}
	out := newList[dto.StockInResponse](q.Page, total, len(items))
	for i := range items {
		out.Data = append(out.Data, fromStockInView(&items[i]))
	}
	return out, nil
}

// ListStockOuts lista salidas.
func (s *QueryService) ListStockOuts(ctx context.Context, q filter.Query) (*dto.ListResponse[dto.StockOutResponse], error) {
	items, total, err := s.projections.ListStockOuts(ctx, q)
	if err != nil {
		return nil, err
	}
	out := newList[dto.StockOutResponse](q.Page, total, len(items))
	for i := range items {
		out.Data = append(out.Data, fromStockOutView(&items[i]))
	}
	return out, nil
}

// ListStockMutations lista traslados.
func (s *QueryService) ListStockMutations(ctx context.Context, q filter.Query) (*dto.ListResponse[dto.StockMutationResponse], error) {
	items, total, err := s.projections.ListStockMutations(ctx, q)
	if err != nil {
		return nil, err
	}
	out := newList[dto.StockMutationResponse](q.Page, total, len(items))
	for i := range items {
		out.Data = append(out.Data, fromStockMutationView(&items[i]))
	}
	return out, nil
}

// GetStockIn devuelve una entrada con sus líneas.
func (s *QueryService) GetStockIn(ctx context.Context, id int64) (*dto.StockInResponse, error) {
	if id <= 0 {
		return nil, domain.NewValidationError("id inválido")
	}
	v, err := s.projections.GetStockIn(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, &domain.NotFoundError{Entity: "entrada", ID: id}
	}
	out := fromStockInView(v)
	return &out, nil
}

// GetStockOut devuelve una salida con sus líneas.
func (s *QueryService) GetStockOut(ctx context.Context, id int64) (*dto.StockOutResponse, error) {
	if id <= 0 {
		return nil, domain.NewValidationError("id inválido")
	}
	v, err := s.projections.GetStockOut(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, &domain.NotFoundError{Entity: "salida", ID: id}
	}
	out := fromStockOutView(v)
	return &out, nil
}

// GetStockMutation devuelve un traslado con sus líneas.
func (s *QueryService) GetStockMutation(ctx context.Context, id int64) (*dto.StockMutationResponse, error) {
	if id <= 0 {
		return nil, domain.NewValidationError("id inválido")
	}
	v, err := s.projections.GetStockMutation(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, &domain.NotFoundError{Entity: "traslado", ID: id}
	}
	out := fromStockMutationView(v)
	return &out, nil
}

// NextIndex devuelve el último id del tipo más uno. Es solo una sugerencia para la interfaz:
// dos llamadas concurrentes pueden recibir el mismo valor.
func (s *QueryService) NextIndex(ctx context.Context, kind entity.MovementKind) (*dto.NextIndexResponse, error) {
	last, err := s.ledger.LastID(ctx, kind)
	if err != nil {
		return nil, err
	}
	return &dto.NextIndexResponse{NextIndex: last + 1}, nil
}

// ListBalances lista los saldos de una ubicación.
func (s *QueryService) ListBalances(ctx context.Context, loc entity.Location, q filter.Query) (*dto.ListResponse[dto.BalanceResponse], error) {
	if !loc.IsWarehouse() && loc.StoreID <= 0 {
		return nil, domain.NewValidationError("storeId inválido")
	}
	items, total, err := s.projections.ListBalances(ctx, loc, q)
	if err != nil {
		return nil, err
	}
	out := newList[dto.BalanceResponse](q.Page, total, len(items))
	for i := range items {
		out.Data = append(out.Data, fromBalanceView(&items[i]))
	}
	return out, nil
}

// GetBalance devuelve el saldo de un producto; cantidad 0 si nunca tuvo movimientos.
func (s *QueryService) GetBalance(ctx context.Context, productID int64, loc entity.Location) (*dto.BalanceResponse, error) {
	if productID <= 0 {
		return nil, domain.NewValidationError("productId inválido")
	}
	if !loc.IsWarehouse() && loc.StoreID <= 0 {
		return nil, domain.NewValidationError("storeId inválido")
	}
	b, err := s.balances.Get(ctx, productID, loc)
	if err != nil {
		return nil, err
	}
	if b == nil {
		b = &entity.Balance{ProductID: productID, Location: loc, Status: entity.StatusAvailable}
	}
	out := fromBalanceView(&entity.BalanceView{
		ProductID: b.ProductID,
		Location:  b.Location,
		Quantity:  b.Quantity,
		Status:    b.Status,
		UpdatedAt: b.UpdatedAt,
	})
	return &out, nil
}

func newList[T any](page filter.Page, total int64, n int) *dto.ListResponse[T] {
	return &dto.ListResponse[T]{
		PageResponse: dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
		Data:         make([]T, 0, n),
	}
}

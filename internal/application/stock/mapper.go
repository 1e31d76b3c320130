package stock

import (
	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

func toMovementResponse(m *entity.Movement, actor entity.Actor) dto.MovementResponse {
	ref := dto.RefResponse{ID: actor.ID, Name: actor.Name}
	details := make([]dto.MovementLineResponse, 0, len(m.Lines))
	for _, l := range m.Lines {
		details = append(details, dto.MovementLineResponse{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return dto.MovementResponse{
		ID:              m.ID,
		TransactionCode: m.TransactionCode,
		Date:            m.Date,
		CreatedBy:       ref,
		UpdatedBy:       ref,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		Details:         details,
	}
}

func toStockInResponse(in *entity.StockIn, actor entity.Actor) *dto.StockInResponse {
	return &dto.StockInResponse{
		MovementResponse: toMovementResponse(&in.Movement, actor),
		ToWarehouse:      in.ToWarehouse,
		StoreID:          in.StoreID,
	}
}

func toStockOutResponse(out *entity.StockOut, actor entity.Actor) *dto.StockOutResponse {
	return &dto.StockOutResponse{
		MovementResponse: toMovementResponse(&out.Movement, actor),
		StoreID:          out.StoreID,
	}
}

func toStockMutationResponse(m *entity.StockMutation, actor entity.Actor) *dto.StockMutationResponse {
	return &dto.StockMutationResponse{
		MovementResponse: toMovementResponse(&m.Movement, actor),
		FromWarehouse:    m.FromWarehouse,
		FromStoreID:      m.FromStoreID,
		ToStoreID:        m.ToStoreID,
	}
}

func toRef(r entity.Ref) dto.RefResponse {
	return dto.RefResponse{ID: r.ID, Name: r.Name}
}

func toRefPtr(r *entity.Ref) *dto.RefResponse {
	if r == nil {
		return nil
	}
	out := toRef(*r)
	return &out
}

func fromMovementView(v *entity.MovementView) dto.MovementResponse {
	details := make([]dto.MovementLineResponse, 0, len(v.Lines))
	for _, l := range v.Lines {
		details = append(details, dto.MovementLineResponse{
			ProductID:   l.ProductID,
			ProductCode: l.ProductCode,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
		})
	}
	return dto.MovementResponse{
		ID:              v.ID,
		TransactionCode: v.TransactionCode,
		Date:            v.Date,
		CreatedBy:       toRef(v.CreatedBy),
		UpdatedBy:       toRef(v.UpdatedBy),
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
		Details:         details,
	}
}

func fromStockInView(v *entity.StockInView) dto.StockInResponse {
	out := dto.StockInResponse{
		MovementResponse: fromMovementView(&v.MovementView),
		ToWarehouse:      v.ToWarehouse,
		ToStore:          toRefPtr(v.Store),
	}
	if v.Store != nil {
		id := v.Store.ID
		out.StoreID = &id
	}
	return out
}

func fromStockOutView(v *entity.StockOutView) dto.StockOutResponse {
	store := toRef(v.Store)
	return dto.StockOutResponse{
		MovementResponse: fromMovementView(&v.MovementView),
		StoreID:          v.Store.ID,
		Store:            &store,
	}
}

func fromStockMutationView(v *entity.StockMutationView) dto.StockMutationResponse {
	to := toRef(v.ToStore)
	out := dto.StockMutationResponse{
		MovementResponse: fromMovementView(&v.MovementView),
		FromWarehouse:    v.FromWarehouse,
		FromStore:        toRefPtr(v.FromStore),
		ToStoreID:        v.ToStore.ID,
		ToStore:          &to,
	}
	if v.FromStore != nil {
		id := v.FromStore.ID
		out.FromStoreID = &id
	}
	return out
}

func fromBalanceView(v *entity.BalanceView) dto.BalanceResponse {
	out := dto.BalanceResponse{
		ProductID:   v.ProductID,
		ProductCode: v.ProductCode,
		ProductName: v.ProductName,
		Location:    string(v.Location.Kind),
		Quantity:    v.Quantity,
		Status:      v.Status,
	}
	if !v.Location.IsWarehouse() {
		id := v.Location.StoreID
		out.StoreID = &id
	}
	if !v.UpdatedAt.IsZero() {
		t := v.UpdatedAt
		out.UpdatedAt = &t
	}
	return out
}

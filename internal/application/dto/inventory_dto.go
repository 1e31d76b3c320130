package dto

import "time"

// MovementLineRequest línea de producto en el body de un movimiento.
type MovementLineRequest struct {
	ProductID *int64 `json:"productId"`
	Quantity  *int64 `json:"quantity"`
}

// StockInRequest body para POST /api/stock-in.
type StockInRequest struct {
	TransactionCode *string               `json:"transactionCode"`
	Date            *string               `json:"date"`
	ToWarehouse     *bool                 `json:"toWarehouse"`
	StoreID         *int64                `json:"storeId,omitempty"`
	Products        []MovementLineRequest `json:"products"`
}

// StockOutRequest body para POST /api/stock-out.
type StockOutRequest struct {
	TransactionCode *string               `json:"transactionCode"`
	Date            *string               `json:"date"`
	StoreID         *int64                `json:"storeId"`
	Products        []MovementLineRequest `json:"products"`
}

// StockMutationRequest body para POST /api/stock-mutation.
type StockMutationRequest struct {
	TransactionCode *string               `json:"transactionCode"`
	Date            *string               `json:"date"`
	FromWarehouse   *bool                 `json:"fromWarehouse"`
	FromStoreID     *int64                `json:"fromStoreId,omitempty"`
	ToStoreID       *int64                `json:"toStoreId"`
	Products        []MovementLineRequest `json:"products"`
}

// RefResponse referencia con nombre (tienda, usuario).
type RefResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// MovementLineResponse línea de una transacción.
type MovementLineResponse struct {
	ProductID   int64  `json:"productId"`
	ProductCode string `json:"productCode,omitempty"`
	ProductName string `json:"productName,omitempty"`
	Quantity    int64  `json:"quantity"`
}

// MovementResponse campos comunes de las transacciones.
type MovementResponse struct {
	ID              int64                  `json:"id"`
	TransactionCode string                 `json:"transactionCode"`
	Date            time.Time              `json:"date"`
	CreatedBy       RefResponse            `json:"createdBy"`
	UpdatedBy       RefResponse            `json:"updatedBy"`
	CreatedAt       time.Time              `json:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
	Details         []MovementLineResponse `json:"details"`
}

// StockInResponse entrada registrada o consultada.
type StockInResponse struct {
	MovementResponse
	ToWarehouse bool         `json:"toWarehouse"`
	StoreID     *int64       `json:"storeId"`
	ToStore     *RefResponse `json:"toStore,omitempty"`
}

// StockOutResponse salida registrada o consultada.
type StockOutResponse struct {
	MovementResponse
	StoreID int64        `json:"storeId"`
	Store   *RefResponse `json:"store,omitempty"`
}

// StockMutationResponse traslado registrado o consultado.
type StockMutationResponse struct {
	MovementResponse
	FromWarehouse bool         `json:"fromWarehouse"`
	FromStoreID   *int64       `json:"fromStoreId"`
	FromStore     *RefResponse `json:"fromStore,omitempty"`
	ToStoreID     int64        `json:"toStoreId"`
	ToStore       *RefResponse `json:"toStore,omitempty"`
}

// NextIndexResponse sugerencia del siguiente id para mostrar en pantalla. No reserva nada.
type NextIndexResponse struct {
	NextIndex int64 `json:"nextIndex"`
}

// BalanceResponse saldo de un producto en una ubicación.
type BalanceResponse struct {
	ProductID   int64      `json:"productId"`
	ProductCode string     `json:"productCode,omitempty"`
	ProductName string     `json:"productName,omitempty"`
	Location    string     `json:"location"` // warehouse | store
	StoreID     *int64     `json:"storeId"`
	Quantity    int64      `json:"quantity"`
	Status      string     `json:"status"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

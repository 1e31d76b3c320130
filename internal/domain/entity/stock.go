package entity

import "time"

// Estados posibles de un saldo.
const (
	StatusAvailable = "available"
)

// Balance representa la cantidad disponible de un producto en una ubicación.
// Solo se modifica a través de incrementos y decrementos del BalanceRepository.
type Balance struct {
	ProductID int64
	Location  Location
	Quantity  int64
	Status    string
	UpdatedBy int64
	UpdatedAt time.Time
}

// BalanceView saldo con datos de producto para listados.
type BalanceView struct {
	ProductID   int64
	ProductCode string
	ProductName string
	Location    Location
	Quantity    int64
	Status      string
	UpdatedAt   time.Time
}

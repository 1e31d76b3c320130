package entity

import "time"

// Ref referencia con nombre para mostrar (tienda, usuario).
type Ref struct {
	ID   int64
	Name string
}

// LineView línea con datos del producto.
type LineView struct {
	ProductID   int64
	ProductCode string
	ProductName string
	Quantity    int64
}

// MovementView campos comunes de las proyecciones de lectura.
type MovementView struct {
	ID              int64
	TransactionCode string
	Date            time.Time
	CreatedBy       Ref
	UpdatedBy       Ref
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Lines           []LineView
}

// StockInView proyección de una entrada.
type StockInView struct {
	MovementView
	ToWarehouse bool
	Store       *Ref
}

// StockOutView proyección de una salida.
type StockOutView struct {
	MovementView
	Store Ref
}

// StockMutationView proyección de un traslado.
type StockMutationView struct {
	MovementView
	FromWarehouse bool
	FromStore     *Ref
	ToStore       Ref
}

package entity

import "time"

// MovementKind tipo de transacción del libro de movimientos. Cada tipo tiene su propio
// espacio de códigos de transacción.
type MovementKind string

const (
	KindStockIn       MovementKind = "stock_in"
	KindStockOut      MovementKind = "stock_out"
	KindStockMutation MovementKind = "stock_mutation"
)

// Label nombre legible del tipo (para mensajes).
func (k MovementKind) Label() string {
	switch k {
	case KindStockIn:
		return "entradas"
	case KindStockOut:
		return "salidas"
	case KindStockMutation:
		return "traslados"
	default:
		return string(k)
	}
}

// MovementLine línea de producto dentro de una transacción. Quantity siempre > 0.
type MovementLine struct {
	ID        int64
	ProductID int64
	Quantity  int64
}

// Movement cabecera común a los tres tipos de transacción. Inmutable tras su creación.
type Movement struct {
	ID              int64
	TransactionCode string
	Date            time.Time
	CreatedBy       int64
	UpdatedBy       int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Lines           []MovementLine
}

// StockIn entrada de mercancía a la bodega o a una tienda.
type StockIn struct {
	Movement
	ToWarehouse bool
	StoreID     *int64 // nil cuando ToWarehouse
}

// Target ubicación que recibe la mercancía.
func (s *StockIn) Target() Location {
	if s.ToWarehouse || s.StoreID == nil {
		return Warehouse()
	}
	return Store(*s.StoreID)
}

// StockOut salida de mercancía desde la bodega hacia una tienda.
type StockOut struct {
	Movement
	StoreID int64
}

// Source ubicación de la que sale la mercancía.
func (s *StockOut) Source() Location {
	return Warehouse()
}

// StockMutation traslado desde la bodega o una tienda hacia otra tienda.
type StockMutation struct {
	Movement
	FromWarehouse bool
	FromStoreID   *int64 // nil cuando FromWarehouse
	ToStoreID     int64
}

// Source ubicación de origen del traslado.
func (m *StockMutation) Source() Location {
	if m.FromWarehouse || m.FromStoreID == nil {
		return Warehouse()
	}
	return Store(*m.FromStoreID)
}

// Destination tienda destino del traslado.
func (m *StockMutation) Destination() Location {
	return Store(m.ToStoreID)
}

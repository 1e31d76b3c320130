package entity

import "fmt"

// LocationKind distingue la bodega central de las tiendas.
type LocationKind string

const (
	LocationWarehouse LocationKind = "warehouse"
	LocationStore     LocationKind = "store"
)

// Location identifica dónde se mantiene un saldo. StoreID es 0 para la bodega.
type Location struct {
	Kind    LocationKind
	StoreID int64
}

// Warehouse devuelve la ubicación de la bodega central.
func Warehouse() Location {
	return Location{Kind: LocationWarehouse}
}

// Store devuelve la ubicación de una tienda.
func Store(id int64) Location {
	return Location{Kind: LocationStore, StoreID: id}
}

// IsWarehouse indica si la ubicación es la bodega central.
func (l Location) IsWarehouse() bool {
	return l.Kind == LocationWarehouse
}

func (l Location) String() string {
	if l.IsWarehouse() {
		return "bodega"
	}
	return fmt.Sprintf("tienda %d", l.StoreID)
}

package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeEntrada = "entrada" // aumento de stock
	MovementTypeSalida  = "salida"  // disminución de stock
)

// Movement es el registro inmutable de un cambio de cantidad sobre un Item.
// La colección es append-only: no existen operaciones de edición ni borrado.
//
// ItemID es una referencia débil: el Item puede eliminarse después y el
// movimiento se conserva. ItemName es un snapshot desnormalizado del nombre
// en el momento del movimiento para que el historial siga siendo legible
// tras el borrado del artículo.
type Movement struct {
	ID              string    `json:"id"`
	ItemID          string    `json:"itemId"`
	ItemName        string    `json:"itemName"`
	Type            string    `json:"type"`            // entrada | salida
	QuantityChanged int       `json:"quantityChanged"` // magnitud absoluta, siempre > 0
	Reason          string    `json:"reason"`
	Date            time.Time `json:"date"`
}

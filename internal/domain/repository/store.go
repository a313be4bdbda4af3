package repository

import (
	"context"

	"github.com/qmd-apps/inventario-ledger/internal/domain/entity"
)

// Store define el puerto de persistencia para las dos colecciones del motor
// de inventario (DIP). El adaptador es un espejo durable, no la fuente de
// verdad durante la sesión: el motor opera sobre su copia en memoria y
// sincroniza como efecto secundario.
//
// Un fallo de Load se trata como "todavía no hay datos"; un fallo de Save se
// registra y no revierte la mutación en memoria ya aplicada.
type Store interface {
	LoadItems(ctx context.Context) ([]entity.Item, error)
	SaveItems(ctx context.Context, items []entity.Item) error
	LoadMovements(ctx context.Context) ([]entity.Movement, error)
	SaveMovements(ctx context.Context, movements []entity.Movement) error
}

// LiveStore es la variante con suscripción en vivo: las colecciones en
// memoria del motor pasan a ser una proyección de los eventos del store
// remoto en lugar de una caché write-through independiente.
//
// Cada Subscribe devuelve una función de cancelación. El callback recibe el
// contenido completo de la colección tras cada cambio.
type LiveStore interface {
	Store
	SubscribeItems(ctx context.Context, fn func([]entity.Item)) (func(), error)
	SubscribeMovements(ctx context.Context, fn func([]entity.Movement)) (func(), error)
}

package repository

import (
	"context"

	"github.com/jhoicas/inventario-sync/internal/domain/entity"
)

// CatalogSource puerto de entrada del catálogo: una fuente tabular externa
// (CSV local o PostgreSQL) que entrega las filas iniciales con su ID estable
// ya asignado. Se lee una sola vez, al arranque.
type CatalogSource interface {
	Load(ctx context.Context) ([]entity.Product, error)
}

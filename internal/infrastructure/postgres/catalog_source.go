package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/inventario-sync/internal/domain"
	"github.com/jhoicas/inventario-sync/internal/domain/entity"
	"github.com/jhoicas/inventario-sync/internal/domain/repository"
)

// CatalogSource fuente de catálogo sobre la tabla catalog_items.
// El ID estable de cada fila es el ID de la tabla; el orden de presentación
// es el orden de inserción (ORDER BY id).
type CatalogSource struct {
	pool *pgxpool.Pool
}

var _ repository.CatalogSource = (*CatalogSource)(nil)

// NewCatalogSource construye la fuente sobre el pool dado.
func NewCatalogSource(pool *pgxpool.Pool) *CatalogSource {
	return &CatalogSource{pool: pool}
}

// Load lee todas las filas del catálogo.
func (s *CatalogSource) Load(ctx context.Context) ([]entity.Product, error) {
	query := `
		SELECT id, name, category, plu, base_price, stock_quantity, stock_status
		FROM catalog_items ORDER BY id`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("consultar catalog_items: %w", err)
	}
	defer rows.Close()

	var out []entity.Product
	for rows.Next() {
		var p entity.Product
		var status string
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.PLU, &p.BasePrice, &p.StockQuantity, &status); err != nil {
			return nil, fmt.Errorf("scan de catalog_items: %w", err)
		}
		p.StockStatus = entity.StockStatus(status)
		if !p.StockStatus.Valid() {
			return nil, fmt.Errorf("fila id=%d: stock status %q: %w", p.ID, status, domain.ErrValidation)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar catalog_items: %w", err)
	}
	return out, nil
}

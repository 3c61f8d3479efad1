// seed_catalog carga un export CSV del POS en la tabla catalog_items.
//
// Uso: go run ./cmd/seed_catalog [ruta/items.csv]
// Por defecto usa CATALOG_CSV_PATH de la configuración. La conexión se toma
// de DATABASE_URL / DB_*. Las filas existentes con el mismo PLU se actualizan.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/inventario-sync/internal/infrastructure/csvsource"
	"github.com/jhoicas/inventario-sync/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-sync/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	csvPath := cfg.Catalog.CSVPath
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}

	ctx := context.Background()
	rows, err := csvsource.NewLoader(csvPath).Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "leer CSV: %v\n", err)
		os.Exit(1)
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	tx, err := pool.Begin(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "abrir transacción: %v\n", err)
		os.Exit(1)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO catalog_items (name, category, plu, base_price, stock_quantity, stock_status)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (plu) DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			base_price = EXCLUDED.base_price,
			stock_quantity = EXCLUDED.stock_quantity,
			stock_status = EXCLUDED.stock_status`

	for _, row := range rows {
		if _, err := tx.Exec(ctx, query,
			row.Name, row.Category, row.PLU, row.BasePrice, row.StockQuantity, string(row.StockStatus),
		); err != nil {
			fmt.Fprintf(os.Stderr, "insertar plu=%s: %v\n", row.PLU, err)
			os.Exit(1)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "commit: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("catálogo sembrado: %d ítems desde %s\n", len(rows), csvPath)
}

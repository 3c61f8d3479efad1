package csvsource

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/inventario-sync/internal/domain"
	"github.com/jhoicas/inventario-sync/internal/domain/entity"
	"github.com/jhoicas/inventario-sync/internal/domain/repository"
)

// Columnas esperadas en el CSV de origen. Stock Status y Stock Quantity son
// opcionales y se completan con los valores por defecto del dominio.
const (
	colName     = "Name"
	colCategory = "Category 1"
	colPLU      = "PLU"
	colPrice    = "Base Price"
	colStatus   = "Stock Status"
	colQuantity = "Stock Quantity"
)

// Loader fuente de catálogo sobre un archivo CSV local (export del POS).
type Loader struct {
	path string
}

var _ repository.CatalogSource = (*Loader)(nil)

// NewLoader construye la fuente apuntando al archivo dado.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load lee y parsea el archivo completo. Los IDs se asignan secuencialmente
// en orden de aparición, empezando en 1, y nunca se reutilizan.
func (l *Loader) Load(_ context.Context) ([]entity.Product, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("leer catálogo %s: %w", l.path, err)
	}
	return Parse(data)
}

// Parse decodifica el contenido del CSV a filas del catálogo.
// Los exports de POS legados suelen venir en Windows-1252; si los bytes no
// son UTF-8 válido se decodifican con ese charmap antes de parsear.
func Parse(data []byte) ([]entity.Product, error) {
	if !utf8.Valid(data) {
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err == nil {
			data = decoded
		}
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("leer encabezado: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{colName, colCategory, colPLU, colPrice} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("columna requerida %q ausente: %w", required, domain.ErrValidation)
		}
	}

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("leer filas: %w", err)
	}

	rows := make([]entity.Product, 0, len(records))
	seenPLU := make(map[string]struct{}, len(records))
	var nextID int64 = 1

	for i, rec := range records {
		line := i + 2 // +1 por el encabezado, +1 por índice base 1

		plu := strings.TrimSpace(rec[cols[colPLU]])
		if plu == "" {
			return nil, fmt.Errorf("fila %d: PLU vacío: %w", line, domain.ErrValidation)
		}
		if _, dup := seenPLU[plu]; dup {
			return nil, fmt.Errorf("fila %d: PLU %s: %w", line, plu, domain.ErrDuplicatePLU)
		}
		seenPLU[plu] = struct{}{}

		price, err := decimal.NewFromString(strings.TrimSpace(rec[cols[colPrice]]))
		if err != nil || price.IsNegative() {
			return nil, fmt.Errorf("fila %d: precio inválido %q: %w", line, rec[cols[colPrice]], domain.ErrValidation)
		}

		status := entity.StockStatusIn
		if idx, ok := cols[colStatus]; ok && strings.TrimSpace(rec[idx]) != "" {
			status = entity.StockStatus(strings.TrimSpace(rec[idx]))
			if !status.Valid() {
				return nil, fmt.Errorf("fila %d: stock status inválido %q: %w", line, rec[idx], domain.ErrValidation)
			}
		}

		qty := entity.DefaultStockQuantity
		if idx, ok := cols[colQuantity]; ok && strings.TrimSpace(rec[idx]) != "" {
			qty, err = strconv.Atoi(strings.TrimSpace(rec[idx]))
			if err != nil || qty < 0 {
				return nil, fmt.Errorf("fila %d: stock quantity inválido %q: %w", line, rec[idx], domain.ErrValidation)
			}
		}

		rows = append(rows, entity.Product{
			ID:            nextID,
			Name:          strings.TrimSpace(rec[cols[colName]]),
			Category:      strings.TrimSpace(rec[cols[colCategory]]),
			PLU:           plu,
			BasePrice:     price,
			StockQuantity: qty,
			StockStatus:   status,
		})
		nextID++
	}

	return rows, nil
}

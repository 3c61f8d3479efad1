package inventory

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-sync/internal/domain/entity"
)

// UploadRecord representación externa de una fila para la carga de inventario
// a Deliverect. Se deriva del Product en el momento del sync; nunca se persiste.
type UploadRecord struct {
	Location    string
	PLU         string
	StockStatus entity.StockStatus
	Stock       int
	Price       decimal.Decimal
}

// FormatUpload proyecta filas del catálogo al esquema de carga.
// Función pura: un UploadRecord por fila, mismo orden de entrada; location es
// la constante configurada por el operador para todos los registros. Un lote
// de tamaño 1 se comporta idéntico a una fila suelta.
func FormatUpload(rows []entity.Product, location string) []UploadRecord {
	records := make([]UploadRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, UploadRecord{
			Location:    location,
			PLU:         row.PLU,
			StockStatus: row.StockStatus,
			Stock:       row.StockQuantity,
			Price:       row.BasePrice,
		})
	}
	return records
}

// Encabezado fijo del CSV de carga. Nótese el espacio en "stock status":
// así lo exige el formato de Deliverect.
var uploadHeader = []string{"location", "plu", "stock status", "stock", "price"}

// WriteCSV serializa los registros al formato de cable (CSV UTF-8 con fila de
// encabezado, orden de columnas fijo). El precio se escribe tal cual lo
// representa el decimal, sin redondeo ni formateo adicional.
func WriteCSV(records []UploadRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(uploadHeader); err != nil {
		return nil, fmt.Errorf("escribir encabezado: %w", err)
	}
	for _, rec := range records {
		fields := []string{
			rec.Location,
			rec.PLU,
			string(rec.StockStatus),
			strconv.Itoa(rec.Stock),
			rec.Price.String(),
		}
		if err := w.Write(fields); err != nil {
			return nil, fmt.Errorf("escribir registro plu=%s: %w", rec.PLU, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("serializar CSV: %w", err)
	}
	return buf.Bytes(), nil
}

package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-sync/internal/domain"
	"github.com/jhoicas/inventario-sync/internal/domain/entity"
)

// FieldEdit edición de un único campo de una fila. Exactamente uno de los
// punteros debe venir asignado; PLU, Name y Category no son editables.
type FieldEdit struct {
	BasePrice     *decimal.Decimal
	StockQuantity *int
	StockStatus   *entity.StockStatus
}

func (e FieldEdit) fieldCount() int {
	n := 0
	if e.BasePrice != nil {
		n++
	}
	if e.StockQuantity != nil {
		n++
	}
	if e.StockStatus != nil {
		n++
	}
	return n
}

// ApplyEdit aplica una edición de campo sobre la fila indicada.
//
// Si el valor nuevo es igual al actual la llamada es un no-op: no escribe ni
// marca dirty (una edición solo cuenta cuando cambia estado). Si cambia,
// valida el dominio del campo (precio y stock no negativos, status dentro del
// enum), escribe el valor y marca la fila dirty, capturando el snapshot
// original si es la primera edición.
//
// Devuelve changed=true solo cuando la fila efectivamente cambió.
func (s *Store) ApplyEdit(id int64, edit FieldEdit) (bool, error) {
	if edit.fieldCount() != 1 {
		return false, domain.ErrValidation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[id]
	if !ok {
		return false, domain.ErrNotFound
	}

	switch {
	case edit.BasePrice != nil:
		price := *edit.BasePrice
		if price.IsNegative() {
			return false, domain.ErrValidation
		}
		if price.Equal(row.BasePrice) {
			return false, nil
		}
		if err := s.markDirtyLocked(id); err != nil {
			return false, err
		}
		row.BasePrice = price

	case edit.StockQuantity != nil:
		qty := *edit.StockQuantity
		if qty < 0 {
			return false, domain.ErrValidation
		}
		if qty == row.StockQuantity {
			return false, nil
		}
		if err := s.markDirtyLocked(id); err != nil {
			return false, err
		}
		row.StockQuantity = qty

	case edit.StockStatus != nil:
		status := *edit.StockStatus
		if !status.Valid() {
			return false, domain.ErrValidation
		}
		if status == row.StockStatus {
			return false, nil
		}
		if err := s.markDirtyLocked(id); err != nil {
			return false, err
		}
		row.StockStatus = status
	}

	return true, nil
}

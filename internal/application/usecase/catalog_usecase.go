package usecase

import (
	"sort"
	"strings"

	"github.com/jhoicas/inventario-sync/internal/application/dto"
	"github.com/jhoicas/inventario-sync/internal/domain"
	"github.com/jhoicas/inventario-sync/internal/domain/catalog"
	"github.com/jhoicas/inventario-sync/internal/domain/entity"
	"github.com/jhoicas/inventario-sync/pkg/metrics"
)

// CatalogUseCase operaciones del operador sobre la tabla: listado con
// búsqueda/filtros/paginación, edición de campos y revert.
type CatalogUseCase struct {
	store *catalog.Store
}

// NewCatalogUseCase construye el caso de uso sobre el store dado.
func NewCatalogUseCase(store *catalog.Store) *CatalogUseCase {
	return &CatalogUseCase{store: store}
}

// List aplica búsqueda (nombre o PLU, case-insensitive), filtro de categoría,
// filtro de stock status y paginación, en ese orden.
func (uc *CatalogUseCase) List(q dto.ListItemsQuery) (*dto.ItemListResponse, error) {
	if q.StockStatus != "" && !entity.StockStatus(q.StockStatus).Valid() {
		return nil, domain.ErrValidation
	}
	q.Page.DefaultPage()

	search := strings.ToLower(strings.TrimSpace(q.Search))
	filtered := make([]entity.Product, 0)
	for _, row := range uc.store.All() {
		if search != "" &&
			!strings.Contains(strings.ToLower(row.Name), search) &&
			!strings.Contains(strings.ToLower(row.PLU), search) {
			continue
		}
		if q.Category != "" && row.Category != q.Category {
			continue
		}
		if q.StockStatus != "" && string(row.StockStatus) != q.StockStatus {
			continue
		}
		filtered = append(filtered, row)
	}

	total := len(filtered)
	start := q.Page.Offset
	if start > total {
		start = total
	}
	end := start + q.Page.Limit
	if end > total {
		end = total
	}

	items := make([]dto.ItemResponse, 0, end-start)
	for _, row := range filtered[start:end] {
		items = append(items, uc.toItemResponse(row))
	}
	return &dto.ItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Page.Limit, Offset: q.Page.Offset, Total: total},
	}, nil
}

// GetByID obtiene una fila por su ID interno.
func (uc *CatalogUseCase) GetByID(id int64) (*dto.ItemResponse, error) {
	row, err := uc.store.Get(id)
	if err != nil {
		return nil, err
	}
	out := uc.toItemResponse(row)
	return &out, nil
}

// Update aplica las ediciones de la solicitud. Cada campo presente es una
// edición independiente: valores iguales al actual no ensucian la fila.
func (uc *CatalogUseCase) Update(id int64, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	if in.BasePrice == nil && in.StockQuantity == nil && in.StockStatus == nil {
		return nil, domain.ErrValidation
	}

	if in.BasePrice != nil {
		if _, err := uc.store.ApplyEdit(id, catalog.FieldEdit{BasePrice: in.BasePrice}); err != nil {
			return nil, err
		}
	}
	if in.StockQuantity != nil {
		if _, err := uc.store.ApplyEdit(id, catalog.FieldEdit{StockQuantity: in.StockQuantity}); err != nil {
			return nil, err
		}
	}
	if in.StockStatus != nil {
		status := entity.StockStatus(*in.StockStatus)
		if _, err := uc.store.ApplyEdit(id, catalog.FieldEdit{StockStatus: &status}); err != nil {
			return nil, err
		}
	}

	metrics.DirtyItems.Set(float64(uc.store.DirtyCount()))
	return uc.GetByID(id)
}

// Revert restaura la fila a sus valores pre-edición y la saca del dirty set.
// Sobre una fila sin cambios es un no-op.
func (uc *CatalogUseCase) Revert(id int64) (*dto.ItemResponse, error) {
	row, err := uc.store.Revert(id)
	if err != nil {
		return nil, err
	}
	metrics.DirtyItems.Set(float64(uc.store.DirtyCount()))
	out := uc.toItemResponse(row)
	return &out, nil
}

// Categories devuelve las categorías distintas del catálogo, ordenadas.
func (uc *CatalogUseCase) Categories() *dto.CategoriesResponse {
	seen := make(map[string]struct{})
	for _, row := range uc.store.All() {
		if row.Category != "" {
			seen[row.Category] = struct{}{}
		}
	}
	cats := make([]string, 0, len(seen))
	for c := range seen {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return &dto.CategoriesResponse{Categories: cats}
}

func (uc *CatalogUseCase) toItemResponse(row entity.Product) dto.ItemResponse {
	return dto.ItemResponse{
		ID:            row.ID,
		Name:          row.Name,
		Category:      row.Category,
		PLU:           row.PLU,
		BasePrice:     row.BasePrice,
		StockQuantity: row.StockQuantity,
		StockStatus:   string(row.StockStatus),
		Modified:      uc.store.IsDirty(row.ID),
	}
}

package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-sync/internal/application/dto"
	"github.com/jhoicas/inventario-sync/internal/application/usecase"
	"github.com/jhoicas/inventario-sync/internal/domain"
	"github.com/jhoicas/inventario-sync/internal/domain/catalog"
	"github.com/jhoicas/inventario-sync/internal/domain/entity"
)

func buildCatalogUC(t *testing.T) (*usecase.CatalogUseCase, *catalog.Store) {
	t.Helper()
	store := catalog.NewStore([]entity.Product{
		{ID: 1, Name: "Empanada de carne", Category: "Snacks", PLU: "10001", BasePrice: dec(t, "2.00"), StockQuantity: 10, StockStatus: entity.StockStatusIn},
		{ID: 2, Name: "Café americano", Category: "Bebidas", PLU: "10002", BasePrice: dec(t, "1.50"), StockQuantity: 25, StockStatus: entity.StockStatusIn},
		{ID: 3, Name: "Café con leche", Category: "Bebidas", PLU: "10003", BasePrice: dec(t, "2.25"), StockQuantity: 0, StockStatus: entity.StockStatusOut},
		{ID: 5, Name: "Pretzel", Category: "Snacks", PLU: "10234", BasePrice: dec(t, "3.00"), StockQuantity: 7, StockStatus: entity.StockStatusIn},
	})
	return usecase.NewCatalogUseCase(store), store
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests List (búsqueda, filtros y paginación)
// ──────────────────────────────────────────────────────────────────────────────

func TestCatalogList_SinFiltros_DevuelveTodoEnOrden(t *testing.T) {
	uc, _ := buildCatalogUC(t)

	out, err := uc.List(dto.ListItemsQuery{})
	require.NoError(t, err)

	require.Len(t, out.Items, 4)
	assert.Equal(t, 4, out.Page.Total)
	assert.Equal(t, int64(1), out.Items[0].ID, "el listado conserva el orden de carga")
	assert.Equal(t, int64(5), out.Items[3].ID)
}

func TestCatalogList_BusquedaPorNombre_IgnoraMayusculas(t *testing.T) {
	uc, _ := buildCatalogUC(t)

	out, err := uc.List(dto.ListItemsQuery{Search: "CAFÉ"})
	require.NoError(t, err)

	require.Len(t, out.Items, 2)
	assert.Equal(t, "Café americano", out.Items[0].Name)
	assert.Equal(t, "Café con leche", out.Items[1].Name)
}

func TestCatalogList_BusquedaPorPLU(t *testing.T) {
	uc, _ := buildCatalogUC(t)

	out, err := uc.List(dto.ListItemsQuery{Search: "10234"})
	require.NoError(t, err)

	require.Len(t, out.Items, 1)
	assert.Equal(t, "Pretzel", out.Items[0].Name)
}

func TestCatalogList_FiltroDeCategoriaExacta(t *testing.T) {
	uc, _ := buildCatalogUC(t)

	out, err := uc.List(dto.ListItemsQuery{Category: "Bebidas"})
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)

	out, err = uc.List(dto.ListItemsQuery{Category: "bebidas"})
	require.NoError(t, err)
	assert.Empty(t, out.Items, "la categoría se compara exacta, sin normalizar")
}

func TestCatalogList_FiltroDeStatus(t *testing.T) {
	uc, _ := buildCatalogUC(t)

	out, err := uc.List(dto.ListItemsQuery{StockStatus: "OUT_OF_STOCK"})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, int64(3), out.Items[0].ID)
}

func TestCatalogList_StatusInvalido_RetornaValidation(t *testing.T) {
	uc, _ := buildCatalogUC(t)

	_, err := uc.List(dto.ListItemsQuery{StockStatus: "AGOTADO"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCatalogList_Paginacion(t *testing.T) {
	uc, _ := buildCatalogUC(t)

	out, err := uc.List(dto.ListItemsQuery{Page: dto.PageRequest{Limit: 2, Offset: 2}})
	require.NoError(t, err)

	require.Len(t, out.Items, 2)
	assert.Equal(t, int64(3), out.Items[0].ID)
	assert.Equal(t, 4, out.Page.Total, "total cuenta el resultado filtrado, no la página")

	// Offset más allá del final: página vacía, sin error.
	out, err = uc.List(dto.ListItemsQuery{Page: dto.PageRequest{Limit: 2, Offset: 99}})
	require.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.Equal(t, 4, out.Page.Total)
}

func TestCatalogList_FiltrosCombinados(t *testing.T) {
	uc, _ := buildCatalogUC(t)

	out, err := uc.List(dto.ListItemsQuery{
		Search:      "café",
		Category:    "Bebidas",
		StockStatus: "IN_STOCK",
	})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Café americano", out.Items[0].Name)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Update y Revert
// ──────────────────────────────────────────────────────────────────────────────

func TestCatalogUpdate_MarcaModified(t *testing.T) {
	uc, store := buildCatalogUC(t)

	price := dec(t, "3.50")
	out, err := uc.Update(5, dto.UpdateItemRequest{BasePrice: &price})
	require.NoError(t, err)

	assert.True(t, out.Modified, "la respuesta debe reflejar la fila como modificada")
	assert.True(t, dec(t, "3.50").Equal(out.BasePrice))
	assert.Equal(t, []int64{5}, store.DirtyIDs())
}

func TestCatalogUpdate_MismoValor_NoMarcaModified(t *testing.T) {
	uc, store := buildCatalogUC(t)

	price := dec(t, "3.00") // valor actual de la fila 5
	out, err := uc.Update(5, dto.UpdateItemRequest{BasePrice: &price})
	require.NoError(t, err)

	assert.False(t, out.Modified)
	assert.Empty(t, store.DirtyIDs())
}

func TestCatalogUpdate_VariosCampos_SeAplicanComoEdicionesIndependientes(t *testing.T) {
	uc, store := buildCatalogUC(t)

	price := dec(t, "3.50")
	qty := 0
	status := "OUT_OF_STOCK"
	out, err := uc.Update(5, dto.UpdateItemRequest{
		BasePrice:     &price,
		StockQuantity: &qty,
		StockStatus:   &status,
	})
	require.NoError(t, err)

	assert.True(t, out.Modified)
	assert.Equal(t, 0, out.StockQuantity)
	assert.Equal(t, "OUT_OF_STOCK", out.StockStatus)
	assert.Equal(t, 1, store.DirtyCount(), "varios campos de la misma fila = una sola fila dirty")
}

func TestCatalogUpdate_SinCampos_RetornaValidation(t *testing.T) {
	uc, _ := buildCatalogUC(t)

	_, err := uc.Update(5, dto.UpdateItemRequest{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCatalogUpdate_IDInexistente_RetornaNotFound(t *testing.T) {
	uc, _ := buildCatalogUC(t)

	price := dec(t, "1.00")
	_, err := uc.Update(404, dto.UpdateItemRequest{BasePrice: &price})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogRevert_RestauraYDesmarcaModified(t *testing.T) {
	uc, store := buildCatalogUC(t)

	price := dec(t, "9.99")
	_, err := uc.Update(5, dto.UpdateItemRequest{BasePrice: &price})
	require.NoError(t, err)

	out, err := uc.Revert(5)
	require.NoError(t, err)

	assert.False(t, out.Modified)
	assert.True(t, dec(t, "3.00").Equal(out.BasePrice), "el precio vuelve al valor de carga")
	assert.Empty(t, store.DirtyIDs())
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests GetByID y Categories
// ──────────────────────────────────────────────────────────────────────────────

func TestCatalogGetByID(t *testing.T) {
	uc, _ := buildCatalogUC(t)

	out, err := uc.GetByID(2)
	require.NoError(t, err)
	assert.Equal(t, "Café americano", out.Name)
	assert.False(t, out.Modified)

	_, err = uc.GetByID(404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogCategories_DistintasYOrdenadas(t *testing.T) {
	uc, _ := buildCatalogUC(t)

	out := uc.Categories()
	assert.Equal(t, []string{"Bebidas", "Snacks"}, out.Categories)
}

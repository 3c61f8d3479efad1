package dto

import "github.com/shopspring/decimal"

// ItemResponse una fila del catálogo. Modified indica que tiene ediciones
// locales pendientes de sincronizar.
type ItemResponse struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	PLU           string          `json:"plu"`
	BasePrice     decimal.Decimal `json:"base_price"`
	StockQuantity int             `json:"stock_quantity"`
	StockStatus   string          `json:"stock_status"`
	Modified      bool            `json:"modified"`
}

// ItemListResponse listado paginado del catálogo.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// ListItemsQuery filtros del listado: búsqueda por nombre o PLU
// (case-insensitive), categoría exacta y stock status.
type ListItemsQuery struct {
	Search      string `query:"search"`
	Category    string `query:"category"`
	StockStatus string `query:"status"`
	Page        PageRequest
}

// UpdateItemRequest edición parcial de una fila. Cada campo presente se
// aplica como una edición independiente; PLU no es editable.
type UpdateItemRequest struct {
	BasePrice     *decimal.Decimal `json:"base_price"`
	StockQuantity *int             `json:"stock_quantity"`
	StockStatus   *string          `json:"stock_status"`
}

// CategoriesResponse categorías distintas del catálogo, ordenadas.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

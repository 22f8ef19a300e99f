package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto con su inventario
// inicial. MinStock/MaxStock/InitialStock nil aplican los defaults (10/100/0).
type CreateProductRequest struct {
	Name         string          `json:"nombre"`
	Description  string          `json:"descripcion"`
	PriceUSD     decimal.Decimal `json:"precio_usd"`
	Category     string          `json:"categoria"`
	MinStock     *int            `json:"stock_minimo"`
	MaxStock     *int            `json:"stock_maximo"`
	InitialStock *int            `json:"stock_inicial"`
}

// UpdateProductRequest actualización parcial de un producto. El precio se
// cambia por el endpoint de precio; el stock solo mediante movimientos.
type UpdateProductRequest struct {
	Name        *string `json:"nombre"`
	Description *string `json:"descripcion"`
	Category    *string `json:"categoria"`
}

// ChangePriceRequest cambio del precio base en USD.
type ChangePriceRequest struct {
	PriceUSD decimal.Decimal `json:"precio_usd"`
}

// ProductResponse salida de un producto con precios derivados.
type ProductResponse struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"empresa_id"`
	Code        string          `json:"codigo"`
	Name        string          `json:"nombre"`
	Description string          `json:"descripcion"`
	PriceUSD    decimal.Decimal `json:"precio_usd"`
	PriceCOP    decimal.Decimal `json:"precio_cop"`
	PriceEUR    decimal.Decimal `json:"precio_eur"`
	Category    string          `json:"categoria"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"fecha_creacion"`
	UpdatedAt   time.Time       `json:"fecha_actualizacion"`
}

// ProductSummary resumen mínimo de producto para respuestas compuestas.
type ProductSummary struct {
	ID   string `json:"id"`
	Code string `json:"codigo"`
	Name string `json:"nombre"`
}

// ProductListResponse lista de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}

// CreateProductResponse producto creado junto con su inventario inicial.
type CreateProductResponse struct {
	Product   ProductResponse   `json:"producto"`
	Inventory InventoryResponse `json:"inventario"`
	Message   string            `json:"mensaje"`
}

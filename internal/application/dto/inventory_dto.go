package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest entrada para registrar un movimiento.
// Para AJUSTE, cantidad es el stock objetivo absoluto, no un delta.
type RegisterMovementRequest struct {
	Type      string `json:"tipo_movimiento"`
	ProductID string `json:"producto_id"`
	Quantity  int    `json:"cantidad"`
	Notes     string `json:"observaciones"`
}

// UpdateLimitsRequest actualización parcial de umbrales de stock.
type UpdateLimitsRequest struct {
	MinStock *int `json:"stock_minimo"`
	MaxStock *int `json:"stock_maximo"`
}

// InventoryResponse salida del registro de inventario.
type InventoryResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"producto_id"`
	CompanyID       string          `json:"empresa_id"`
	CurrentStock    int             `json:"stock_actual"`
	MinStock        int             `json:"stock_minimo"`
	MaxStock        int             `json:"stock_maximo"`
	NeedsReorder    bool            `json:"requiere_reorden"`
	StockPercentage decimal.Decimal `json:"porcentaje_stock"`
	HealthTier      string          `json:"estado_stock"`
	UpdatedAt       time.Time       `json:"ultima_actualizacion"`
}

// InventoryListResponse lista de registros de inventario.
type InventoryListResponse struct {
	Items []InventoryResponse `json:"items"`
	Total int                 `json:"total"`
}

// MovementResponse salida de un movimiento persistido.
type MovementResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"tipo_movimiento"`
	ProductID string    `json:"producto_id"`
	Quantity  int       `json:"cantidad"`
	CompanyID string    `json:"empresa_id"`
	UserID    string    `json:"usuario_id"`
	Notes     string    `json:"observaciones"`
	CreatedAt time.Time `json:"fecha_movimiento"`
}

// MovementListResponse historial de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Total int                `json:"total"`
}

// StockSnapshot foto del stock antes y después de aplicar un movimiento.
type StockSnapshot struct {
	Before int `json:"anterior"`
	After  int `json:"actual"`
	Delta  int `json:"diferencia"`
}

// Tipos de alerta post-movimiento.
const (
	AlertCritico     = "CRITICO"
	AlertAdvertencia = "ADVERTENCIA"
	AlertReorden     = "REORDEN"
	AlertInfo        = "INFO"
)

// Alert alerta generada tras aplicar un movimiento.
type Alert struct {
	Type    string `json:"tipo"`
	Message string `json:"mensaje"`
}

// MovementResult resultado completo de registrar un movimiento.
type MovementResult struct {
	Movement  MovementResponse  `json:"movimiento"`
	Inventory InventoryResponse `json:"inventario"`
	Product   ProductSummary    `json:"producto"`
	Stock     StockSnapshot     `json:"stock"`
	Alerts    []Alert           `json:"alertas"`
	Message   string            `json:"mensaje"`
}

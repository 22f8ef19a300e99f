package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
)

// Estados de stock según porcentaje del máximo.
const (
	StockCritico = "CRITICO"
	StockBajo    = "BAJO"
	StockNormal  = "NORMAL"
	StockAlto    = "ALTO"
)

// InventoryRecord es el libro de stock de un producto (relación 1:1).
// Invariantes, mantenidas en cada mutación:
//
//	0 <= CurrentStock <= MaxStock
//	MinStock < MaxStock
//	NeedsReorder == (CurrentStock <= MinStock)
//
// Las cantidades son enteros; los porcentajes derivados usan decimal.
type InventoryRecord struct {
	ID           string
	ProductID    string
	CompanyID    string
	CurrentStock int
	MinStock     int
	MaxStock     int
	NeedsReorder bool // derivado, recalculado tras cada mutación
	UpdatedAt    time.Time
}

// NewInventoryRecord construye el registro, valida invariantes y evalúa el
// flag de reorden.
func NewInventoryRecord(id, productID, companyID string, current, min, max int) (*InventoryRecord, error) {
	r := &InventoryRecord{
		ID:           id,
		ProductID:    productID,
		CompanyID:    companyID,
		CurrentStock: current,
		MinStock:     min,
		MaxStock:     max,
		UpdatedAt:    time.Now(),
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	r.evaluateReorder()
	return r, nil
}

// Validate aplica las invariantes del registro de inventario.
func (r *InventoryRecord) Validate() error {
	if r.CurrentStock < 0 {
		return domain.NewNegativeStock(r.ProductID, r.CurrentStock)
	}
	if r.MinStock < 0 {
		return domain.NewInvalidData("stock_minimo", "el stock mínimo no puede ser negativo")
	}
	if r.MaxStock < 0 {
		return domain.NewInvalidData("stock_maximo", "el stock máximo no puede ser negativo")
	}
	if r.MinStock >= r.MaxStock {
		return domain.NewInvalidStockLimits(r.MinStock, r.MaxStock)
	}
	if r.CurrentStock > r.MaxStock {
		return domain.NewAdjustmentExceedsMax(r.ProductID, r.CurrentStock, r.MaxStock)
	}
	if r.ProductID == "" {
		return domain.NewInvalidData("producto_id", "el inventario debe estar asociado a un producto válido")
	}
	if r.CompanyID == "" {
		return domain.NewInvalidData("empresa_id", "el inventario debe estar asociado a una empresa válida")
	}
	return nil
}

// evaluateReorder recalcula el flag de reorden: stock actual en o por
// debajo del mínimo.
func (r *InventoryRecord) evaluateReorder() {
	r.NeedsReorder = r.CurrentStock <= r.MinStock
}

// CanAcceptEntry indica si una entrada cabe sin exceder el stock máximo.
func (r *InventoryRecord) CanAcceptEntry(qty int) bool {
	return r.CurrentStock+qty <= r.MaxStock
}

// HasSufficientStock indica si hay stock para una salida.
func (r *InventoryRecord) HasSufficientStock(qty int) bool {
	return r.CurrentStock >= qty
}

// ApplyEntry incrementa el stock. Falla sin mutar si la cantidad no es
// positiva o si la entrada excedería el máximo.
func (r *InventoryRecord) ApplyEntry(qty int) error {
	if qty <= 0 {
		return domain.NewInvalidData("cantidad", "la cantidad de entrada debe ser positiva")
	}
	if !r.CanAcceptEntry(qty) {
		return domain.NewCapacityExceeded(r.ProductID, r.CurrentStock, qty, r.MaxStock)
	}
	r.CurrentStock += qty
	r.UpdatedAt = time.Now()
	r.evaluateReorder()
	return nil
}

// ApplyExit decrementa el stock. Falla sin mutar si la cantidad no es
// positiva o si no hay stock suficiente.
func (r *InventoryRecord) ApplyExit(qty int) error {
	if qty <= 0 {
		return domain.NewInvalidData("cantidad", "la cantidad de salida debe ser positiva")
	}
	if !r.HasSufficientStock(qty) {
		return domain.NewInsufficientStock(r.ProductID, r.CurrentStock, qty)
	}
	r.CurrentStock -= qty
	r.UpdatedAt = time.Now()
	r.evaluateReorder()
	return nil
}

// ApplyAdjustment fija el stock en un valor absoluto (no es un delta).
// Usado en ajustes por inventario físico.
func (r *InventoryRecord) ApplyAdjustment(newStock int) error {
	if newStock < 0 {
		return domain.NewNegativeStock(r.ProductID, newStock)
	}
	if newStock > r.MaxStock {
		return domain.NewAdjustmentExceedsMax(r.ProductID, newStock, r.MaxStock)
	}
	r.CurrentStock = newStock
	r.UpdatedAt = time.Now()
	r.evaluateReorder()
	return nil
}

// UpdateLimits actualiza los umbrales de forma parcial. Valida min < max
// sobre los valores resultantes antes de aplicar; si falla no muta nada.
func (r *InventoryRecord) UpdateLimits(min, max *int) error {
	newMin, newMax := r.MinStock, r.MaxStock
	if min != nil {
		if *min < 0 {
			return domain.NewInvalidData("stock_minimo", "el stock mínimo no puede ser negativo")
		}
		newMin = *min
	}
	if max != nil {
		if *max < 0 {
			return domain.NewInvalidData("stock_maximo", "el stock máximo no puede ser negativo")
		}
		newMax = *max
	}
	if newMin >= newMax {
		return domain.NewInvalidStockLimits(newMin, newMax)
	}
	r.MinStock = newMin
	r.MaxStock = newMax
	r.UpdatedAt = time.Now()
	r.evaluateReorder()
	return nil
}

// StockPercentage porcentaje del stock actual respecto al máximo,
// redondeado a 2 decimales. 0 si el máximo es 0.
func (r *InventoryRecord) StockPercentage() decimal.Decimal {
	if r.MaxStock == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(r.CurrentStock)).
		Div(decimal.NewFromInt(int64(r.MaxStock))).
		Mul(decimal.NewFromInt(100)).
		Round(2)
}

// HealthTier clasifica el nivel de stock. CRITICO corta primero (stock en o
// bajo el mínimo), independiente del porcentaje; luego BAJO <=50%,
// NORMAL <=80%, ALTO >80%.
func (r *InventoryRecord) HealthTier() string {
	if r.CurrentStock <= r.MinStock {
		return StockCritico
	}
	pct := r.StockPercentage()
	switch {
	case pct.LessThanOrEqual(decimal.NewFromInt(50)):
		return StockBajo
	case pct.LessThanOrEqual(decimal.NewFromInt(80)):
		return StockNormal
	default:
		return StockAlto
	}
}

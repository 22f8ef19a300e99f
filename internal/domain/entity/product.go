package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
)

// ExchangeRates tasas de conversión para los precios derivados. Se inyectan
// desde configuración para que los tests y un futuro servicio de tasas las
// controlen; nunca se hardcodean en la entidad.
type ExchangeRates struct {
	USDToCOP decimal.Decimal
	USDToEUR decimal.Decimal
}

// DefaultExchangeRates tasas usadas cuando la configuración no define otras.
func DefaultExchangeRates() ExchangeRates {
	return ExchangeRates{
		USDToCOP: decimal.NewFromInt(4200),
		USDToEUR: decimal.RequireFromString("0.92"),
	}
}

// Product representa un producto del inventario. El código PPNNNN se genera
// desde el prefijo de la categoría; PriceCOP y PriceEUR son derivados y nunca
// se asignan de forma independiente.
type Product struct {
	ID          string
	CompanyID   string
	Code        string // ej. TE0001; vacío hasta GenerateCode
	Name        string
	Description string
	PriceUSD    decimal.Decimal
	PriceCOP    decimal.Decimal // derivado: PriceUSD * tasa COP
	PriceEUR    decimal.Decimal // derivado: PriceUSD * tasa EUR
	Category    Category
	Status      string // active, inactive
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProduct construye un producto activo, valida y calcula los precios
// derivados. El código se asigna aparte con GenerateCode.
func NewProduct(id, companyID, name, description string, priceUSD decimal.Decimal, category Category, rates ExchangeRates) (*Product, error) {
	now := time.Now()
	p := &Product{
		ID:          id,
		CompanyID:   companyID,
		Name:        name,
		Description: description,
		PriceUSD:    priceUSD,
		Category:    category,
		Status:      StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.recomputeDerivedPrices(rates)
	return p, nil
}

// Validate aplica las reglas de negocio de Product.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return domain.NewInvalidData("nombre", "el nombre del producto es obligatorio")
	}
	if len(p.Name) < 3 {
		return domain.NewInvalidData("nombre", "el nombre del producto debe tener al menos 3 caracteres")
	}
	if strings.TrimSpace(p.Description) == "" {
		return domain.NewInvalidData("descripcion", "la descripción del producto es obligatoria")
	}
	if !p.PriceUSD.GreaterThan(decimal.Zero) {
		return domain.NewInvalidData("precio_usd", "el precio debe ser mayor a cero")
	}
	if !p.Category.Valid() {
		return domain.NewInvalidCategory(string(p.Category))
	}
	if p.CompanyID == "" {
		return domain.NewInvalidData("empresa_id", "el producto debe estar asociado a una empresa válida")
	}
	return nil
}

// recomputeDerivedPrices sincroniza PriceCOP y PriceEUR con PriceUSD.
func (p *Product) recomputeDerivedPrices(rates ExchangeRates) {
	p.PriceCOP = p.PriceUSD.Mul(rates.USDToCOP)
	p.PriceEUR = p.PriceUSD.Mul(rates.USDToEUR)
}

// GenerateCode asigna el código del producto: PREFIJO + secuencial de 4
// dígitos con ceros a la izquierda (ej. TE0001, OF0042).
func (p *Product) GenerateCode(prefix string, sequence int) error {
	if len(prefix) != 2 {
		return domain.NewInvalidData("prefijo", "el prefijo debe tener exactamente 2 caracteres")
	}
	if sequence <= 0 {
		return domain.NewInvalidData("secuencia", "el número secuencial debe ser positivo")
	}
	p.Code = fmt.Sprintf("%s%04d", strings.ToUpper(prefix), sequence)
	return nil
}

// UpdatePrice cambia el precio base y recalcula los precios derivados.
// Los precios siempre quedan sincronizados.
func (p *Product) UpdatePrice(newPriceUSD decimal.Decimal, rates ExchangeRates) error {
	if !newPriceUSD.GreaterThan(decimal.Zero) {
		return domain.NewInvalidData("precio_usd", "el precio debe ser mayor a cero")
	}
	p.PriceUSD = newPriceUSD
	p.recomputeDerivedPrices(rates)
	p.UpdatedAt = time.Now()
	return nil
}

// UpdateInfo actualiza solo los campos proporcionados y re-valida.
func (p *Product) UpdateInfo(name, description *string, category *Category) error {
	if name != nil {
		p.Name = *name
	}
	if description != nil {
		p.Description = *description
	}
	if category != nil {
		p.Category = *category
	}
	p.UpdatedAt = time.Now()
	return p.Validate()
}

// PriceIn devuelve el precio en la moneda indicada (USD, COP o EUR).
func (p *Product) PriceIn(currency string) (decimal.Decimal, error) {
	switch strings.ToUpper(currency) {
	case "USD":
		return p.PriceUSD, nil
	case "COP":
		return p.PriceCOP, nil
	case "EUR":
		return p.PriceEUR, nil
	default:
		return decimal.Zero, domain.NewInvalidData("moneda", "moneda no soportada: "+currency)
	}
}

// Activate reactiva el producto.
func (p *Product) Activate() {
	p.Status = StatusActive
	p.UpdatedAt = time.Now()
}

// Deactivate desactiva el producto (soft delete).
func (p *Product) Deactivate() {
	p.Status = StatusInactive
	p.UpdatedAt = time.Now()
}

// IsActive indica si el producto está activo.
func (p *Product) IsActive() bool { return p.Status == StatusActive }

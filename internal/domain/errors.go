package domain

import (
	"errors"
	"fmt"
)

// Códigos de error estables, legibles por máquina. El handler HTTP los usa
// para decidir el status y el frontend para decidir el mensaje a mostrar.
const (
	CodeProductNotFound     = "PRODUCTO_NO_ENCONTRADO"
	CodeProductInactive     = "PRODUCTO_INACTIVO"
	CodeCompanyNotFound     = "EMPRESA_NO_ENCONTRADA"
	CodeCompanyInactive     = "EMPRESA_INACTIVA"
	CodeInventoryNotFound   = "INVENTARIO_NO_ENCONTRADO"
	CodeMovementNotFound    = "MOVIMIENTO_NO_ENCONTRADO"
	CodeUserNotFound        = "USUARIO_NO_ENCONTRADO"
	CodeInsufficientStock   = "STOCK_INSUFICIENTE"
	CodeCapacityExceeded    = "STOCK_MAXIMO_EXCEDIDO"
	CodeNegativeStock       = "STOCK_NEGATIVO"
	CodeInvalidStockLimits  = "LIMITES_STOCK_INVALIDOS"
	CodeInvalidData         = "DATOS_INVALIDOS"
	CodeInvalidCategory     = "CATEGORIA_INVALIDA"
	CodeInvalidMovementType = "TIPO_MOVIMIENTO_INVALIDO"
	CodeDuplicateCode       = "CODIGO_DUPLICADO"
	CodeDuplicateNIT        = "NIT_DUPLICADO"
	CodeInvalidCredentials  = "CREDENCIALES_INVALIDAS"
	CodeEmailAlreadyExists  = "EMAIL_YA_REGISTRADO"
)

// Error error de dominio: código estable + mensaje para el usuario.
// Details lleva las cantidades involucradas en errores de stock para que la
// capa de presentación no tenga que parsear el mensaje.
type Error struct {
	Code    string
	Message string
	Details map[string]any
}

// Error implementa la interfaz error.
func (e *Error) Error() string { return e.Message }

// Is permite comparar por código con errors.Is (dos *Error con el mismo
// código se consideran el mismo error).
func (e *Error) Is(target error) bool {
	var de *Error
	if !errors.As(target, &de) {
		return false
	}
	return e.Code == de.Code
}

// CodeOf devuelve el código de dominio de un error, o "" si no es un *Error.
func CodeOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

func newError(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// === Producto ===

// NewProductNotFound producto inexistente.
func NewProductNotFound(productID string) *Error {
	return newError(CodeProductNotFound, "el producto %s no fue encontrado", productID)
}

// NewProductInactive operación sobre un producto desactivado.
func NewProductInactive(productID string) *Error {
	return newError(CodeProductInactive, "el producto %s está inactivo", productID)
}

// NewDuplicateCode ya existe un producto con el código generado.
func NewDuplicateCode(code string) *Error {
	return newError(CodeDuplicateCode, "ya existe un producto con el código %s", code)
}

// === Empresa ===

// NewCompanyNotFound empresa inexistente.
func NewCompanyNotFound(companyID string) *Error {
	return newError(CodeCompanyNotFound, "la empresa %s no fue encontrada", companyID)
}

// NewCompanyInactive operación sobre una empresa desactivada.
func NewCompanyInactive(companyID string) *Error {
	return newError(CodeCompanyInactive, "la empresa %s está inactiva", companyID)
}

// NewDuplicateNIT ya existe una empresa con ese NIT.
func NewDuplicateNIT(nit string) *Error {
	return newError(CodeDuplicateNIT, "ya existe una empresa con el NIT %s", nit)
}

// === Inventario ===

// NewInventoryNotFound el producto no tiene registro de inventario.
func NewInventoryNotFound(productID string) *Error {
	return newError(CodeInventoryNotFound, "no existe registro de inventario para el producto %s", productID)
}

// NewInsufficientStock stock insuficiente para una salida. Reporta
// disponible vs solicitado en Details.
func NewInsufficientStock(productID string, available, requested int) *Error {
	e := newError(CodeInsufficientStock,
		"stock insuficiente para el producto %s. Disponible: %d, Solicitado: %d",
		productID, available, requested)
	e.Details = map[string]any{"disponible": available, "solicitado": requested}
	return e
}

// NewCapacityExceeded una entrada excedería el stock máximo.
func NewCapacityExceeded(productID string, current, entry, max int) *Error {
	e := newError(CodeCapacityExceeded,
		"la entrada de %d unidades excedería el stock máximo del producto %s. Stock actual: %d, Máximo permitido: %d",
		entry, productID, current, max)
	e.Details = map[string]any{"stock_actual": current, "cantidad_entrada": entry, "stock_maximo": max}
	return e
}

// NewAdjustmentExceedsMax un ajuste apunta por encima del stock máximo.
// Comparte código con NewCapacityExceeded: para el consumidor es la misma
// violación de capacidad.
func NewAdjustmentExceedsMax(productID string, value, max int) *Error {
	e := newError(CodeCapacityExceeded,
		"el ajuste de stock (%d) excedería el stock máximo del producto %s (%d)",
		value, productID, max)
	e.Details = map[string]any{"stock_solicitado": value, "stock_maximo": max}
	return e
}

// NewNegativeStock intento de dejar el stock en negativo.
func NewNegativeStock(productID string, attempted int) *Error {
	e := newError(CodeNegativeStock,
		"el stock del producto %s no puede ser negativo (intentado: %d)", productID, attempted)
	e.Details = map[string]any{"stock_intentado": attempted}
	return e
}

// NewInvalidStockLimits mínimo >= máximo.
func NewInvalidStockLimits(min, max int) *Error {
	e := newError(CodeInvalidStockLimits,
		"límites de stock inválidos. El stock mínimo (%d) debe ser menor que el máximo (%d)", min, max)
	e.Details = map[string]any{"stock_minimo": min, "stock_maximo": max}
	return e
}

// === Movimiento ===

// NewMovementNotFound movimiento inexistente.
func NewMovementNotFound(movementID string) *Error {
	return newError(CodeMovementNotFound, "el movimiento %s no fue encontrado", movementID)
}

// NewInvalidMovementType tipo de movimiento desconocido.
func NewInvalidMovementType(movType string) *Error {
	return newError(CodeInvalidMovementType, "tipo de movimiento inválido: %s", movType)
}

// === Usuario ===

// NewUserNotFound usuario inexistente.
func NewUserNotFound(userID string) *Error {
	return newError(CodeUserNotFound, "el usuario %s no fue encontrado", userID)
}

// NewInvalidCredentials credenciales de login incorrectas.
func NewInvalidCredentials() *Error {
	return newError(CodeInvalidCredentials, "las credenciales proporcionadas son inválidas")
}

// NewEmailAlreadyExists el email ya está registrado en la empresa.
func NewEmailAlreadyExists(email string) *Error {
	return newError(CodeEmailAlreadyExists, "el email %s ya está registrado", email)
}

// === Validación ===

// NewInvalidData regla de validación incumplida en un campo.
func NewInvalidData(field, reason string) *Error {
	return newError(CodeInvalidData, "datos inválidos en el campo '%s': %s", field, reason)
}

// NewInvalidCategory categoría fuera del catálogo cerrado.
func NewInvalidCategory(category string) *Error {
	return newError(CodeInvalidCategory, "categoría inválida: %s", category)
}

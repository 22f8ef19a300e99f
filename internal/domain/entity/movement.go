package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain"
)

// Tipos de movimiento de inventario. ENTRADA y DEVOLUCION incrementan stock;
// SALIDA y TRANSFERENCIA lo decrementan; AJUSTE lo fija de forma absoluta.
const (
	MovementTypeEntrada       = "ENTRADA"
	MovementTypeSalida        = "SALIDA"
	MovementTypeAjuste        = "AJUSTE"
	MovementTypeDevolucion    = "DEVOLUCION"
	MovementTypeTransferencia = "TRANSFERENCIA"
)

// MovementTypes devuelve los tipos válidos en orden estable.
func MovementTypes() []string {
	return []string{
		MovementTypeEntrada, MovementTypeSalida, MovementTypeAjuste,
		MovementTypeDevolucion, MovementTypeTransferencia,
	}
}

// ParseMovementType valida un tipo proveniente de un request. Único punto de
// entrada para tipos externos.
func ParseMovementType(s string) (string, error) {
	t := strings.ToUpper(strings.TrimSpace(s))
	switch t {
	case MovementTypeEntrada, MovementTypeSalida, MovementTypeAjuste,
		MovementTypeDevolucion, MovementTypeTransferencia:
		return t, nil
	}
	return "", domain.NewInvalidMovementType(s)
}

// Movement representa un movimiento de inventario. Es inmutable una vez
// persistido: el historial es append-only.
//
// Para AJUSTE, Quantity es el valor absoluto objetivo del stock, no un
// delta. Esa asimetría viene del inventario físico y los consumidores
// dependen de ella.
type Movement struct {
	ID        string
	Type      string
	ProductID string
	Quantity  int
	CompanyID string
	UserID    string
	Notes     string
	CreatedAt time.Time
}

// NewMovement construye y valida un movimiento.
func NewMovement(id, movType, productID string, quantity int, companyID, userID, notes string) (*Movement, error) {
	m := &Movement{
		ID:        id,
		Type:      movType,
		ProductID: productID,
		Quantity:  quantity,
		CompanyID: companyID,
		UserID:    userID,
		Notes:     strings.TrimSpace(notes),
		CreatedAt: time.Now(),
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate aplica las reglas de negocio del movimiento.
func (m *Movement) Validate() error {
	if _, err := ParseMovementType(m.Type); err != nil {
		return err
	}
	if m.IsAdjustment() {
		// En un ajuste la cantidad es el stock objetivo; cero es válido
		// (conteo físico en cero).
		if m.Quantity < 0 {
			return domain.NewInvalidData("cantidad", "el stock objetivo de un ajuste no puede ser negativo")
		}
	} else if m.Quantity <= 0 {
		return domain.NewInvalidData("cantidad", "la cantidad del movimiento debe ser positiva")
	}
	if m.ProductID == "" {
		return domain.NewInvalidData("producto_id", "el movimiento debe estar asociado a un producto válido")
	}
	if m.CompanyID == "" {
		return domain.NewInvalidData("empresa_id", "el movimiento debe estar asociado a una empresa válida")
	}
	if m.UserID == "" {
		return domain.NewInvalidData("usuario_id", "el movimiento debe tener un usuario responsable")
	}
	return nil
}

// IsEntry indica si el movimiento incrementa el stock.
func (m *Movement) IsEntry() bool {
	return m.Type == MovementTypeEntrada || m.Type == MovementTypeDevolucion
}

// IsExit indica si el movimiento decrementa el stock.
func (m *Movement) IsExit() bool {
	return m.Type == MovementTypeSalida || m.Type == MovementTypeTransferencia
}

// IsAdjustment indica si el movimiento es un ajuste absoluto.
func (m *Movement) IsAdjustment() bool {
	return m.Type == MovementTypeAjuste
}

// StockImpact delta que el movimiento aplica al stock: positivo para
// entradas, negativo para salidas. Los ajustes no son un delta y retornan 0.
func (m *Movement) StockImpact() int {
	switch {
	case m.IsEntry():
		return m.Quantity
	case m.IsExit():
		return -m.Quantity
	default:
		return 0
	}
}

// Description descripción legible del movimiento.
func (m *Movement) Description() string {
	return fmt.Sprintf("%s de %d unidades", m.Type, m.Quantity)
}

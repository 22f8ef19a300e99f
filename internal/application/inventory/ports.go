package inventory

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// inventario: el libro de stock y el movimiento se confirman juntos o no se
// confirma nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		invRepo repository.InventoryRecordRepository,
		productRepo repository.ProductRepository,
	) error) error
}

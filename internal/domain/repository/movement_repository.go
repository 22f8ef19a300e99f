package repository

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para movimientos.
// El historial es append-only: no hay Update ni Delete.
type MovementRepository interface {
	Save(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	// ListByProduct historial de un producto, más reciente primero.
	ListByProduct(productID string, limit int) ([]*entity.Movement, error)
	// ListByCompany filtra opcionalmente por tipo y ventana de fechas.
	ListByCompany(companyID, movType string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
	CountByProduct(productID string) (int64, error)
}

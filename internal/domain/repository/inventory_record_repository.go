package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// InventoryRecordRepository define el puerto de persistencia para el libro
// de stock. Las mutaciones se hacen dentro de transacciones para garantizar
// consistencia.
type InventoryRecordRepository interface {
	Save(record *entity.InventoryRecord) error
	GetByID(id string) (*entity.InventoryRecord, error)
	GetByProduct(productID string) (*entity.InventoryRecord, error)
	// GetByProductForUpdate bloquea la fila del registro (SELECT FOR UPDATE);
	// usar solo dentro de una transacción.
	GetByProductForUpdate(productID string) (*entity.InventoryRecord, error)
	ListByCompany(companyID string) ([]*entity.InventoryRecord, error)
	// ListNeedingReorder registros con reorden pendiente; companyID vacío = todas.
	ListNeedingReorder(ctx context.Context, companyID string) ([]*entity.InventoryRecord, error)
	// ListByHealthTier registros en un estado de stock (CRITICO, BAJO, NORMAL, ALTO).
	ListByHealthTier(ctx context.Context, tier, companyID string) ([]*entity.InventoryRecord, error)
	Update(record *entity.InventoryRecord) error
	ExistsForProduct(productID string) (bool, error)
}

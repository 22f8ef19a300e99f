package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.InventoryRecordRepository = (*InventoryRecordRepo)(nil)

// InventoryRecordRepo implementación del libro de stock sobre PostgreSQL
// (usable con pool o tx).
type InventoryRecordRepo struct {
	q Querier
}

// NewInventoryRecordRepository construye el adaptador del libro de stock.
// Pasar pool o tx (Querier).
func NewInventoryRecordRepository(q Querier) *InventoryRecordRepo {
	return &InventoryRecordRepo{q: q}
}

const inventoryColumns = `id, product_id, company_id, current_stock, min_stock, max_stock, needs_reorder, updated_at`

func scanInventoryRecord(row pgx.Row) (*entity.InventoryRecord, error) {
	var rec entity.InventoryRecord
	err := row.Scan(
		&rec.ID, &rec.ProductID, &rec.CompanyID,
		&rec.CurrentStock, &rec.MinStock, &rec.MaxStock,
		&rec.NeedsReorder, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Save persiste el registro de inventario de un producto. La unicidad por
// producto la respalda el índice único sobre product_id.
func (r *InventoryRecordRepo) Save(record *entity.InventoryRecord) error {
	query := `
		INSERT INTO inventory_records (` + inventoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		record.ID, record.ProductID, record.CompanyID,
		record.CurrentStock, record.MinStock, record.MaxStock,
		record.NeedsReorder, record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory record: %w", err)
	}
	return nil
}

// GetByID obtiene un registro por ID, nil si no existe.
func (r *InventoryRecordRepo) GetByID(id string) (*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_records WHERE id = $1`
	rec, err := scanInventoryRecord(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory record: %w", err)
	}
	return rec, nil
}

// GetByProduct obtiene el registro del producto, nil si no existe.
func (r *InventoryRecordRepo) GetByProduct(productID string) (*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_records WHERE product_id = $1`
	rec, err := scanInventoryRecord(r.q.QueryRow(context.Background(), query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory record by product: %w", err)
	}
	return rec, nil
}

// GetByProductForUpdate obtiene el registro bloqueando la fila
// (SELECT FOR UPDATE). Usar solo dentro de una transacción: dos movimientos
// concurrentes sobre el mismo producto se serializan aquí.
func (r *InventoryRecordRepo) GetByProductForUpdate(productID string) (*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_records WHERE product_id = $1 FOR UPDATE`
	rec, err := scanInventoryRecord(r.q.QueryRow(context.Background(), query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory record for update: %w", err)
	}
	return rec, nil
}

// ListByCompany lista los registros de inventario de una empresa.
func (r *InventoryRecordRepo) ListByCompany(companyID string) ([]*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_records WHERE company_id = $1 ORDER BY updated_at DESC`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list inventory records: %w", err)
	}
	defer rows.Close()
	return collectInventoryRecords(rows)
}

// ListNeedingReorder registros con el flag de reorden activo. companyID
// vacío = todas las empresas.
func (r *InventoryRecordRepo) ListNeedingReorder(ctx context.Context, companyID string) ([]*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_records WHERE needs_reorder AND ($1 = '' OR company_id = $1) ORDER BY current_stock`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list needing reorder: %w", err)
	}
	defer rows.Close()
	return collectInventoryRecords(rows)
}

// ListByHealthTier registros en un estado de stock. La clasificación en SQL
// replica HealthTier: CRITICO en o bajo el mínimo, después por porcentaje
// del máximo (<=50 BAJO, <=80 NORMAL, resto ALTO).
func (r *InventoryRecordRepo) ListByHealthTier(ctx context.Context, tier, companyID string) ([]*entity.InventoryRecord, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory_records
		WHERE ($2 = '' OR company_id = $2)
		  AND CASE
		        WHEN current_stock <= min_stock THEN 'CRITICO'
		        WHEN max_stock > 0 AND current_stock * 100.0 / max_stock <= 50 THEN 'BAJO'
		        WHEN max_stock > 0 AND current_stock * 100.0 / max_stock <= 80 THEN 'NORMAL'
		        ELSE 'ALTO'
		      END = $1
		ORDER BY current_stock`
	rows, err := r.q.Query(ctx, query, tier, companyID)
	if err != nil {
		return nil, fmt.Errorf("list by health tier: %w", err)
	}
	defer rows.Close()
	return collectInventoryRecords(rows)
}

// Update persiste el estado completo del registro tras una mutación.
func (r *InventoryRecordRepo) Update(record *entity.InventoryRecord) error {
	query := `
		UPDATE inventory_records
		SET current_stock = $2, min_stock = $3, max_stock = $4,
		    needs_reorder = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		record.ID, record.CurrentStock, record.MinStock, record.MaxStock,
		record.NeedsReorder, record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory record: %w", err)
	}
	return nil
}

// ExistsForProduct verifica si el producto ya tiene libro de stock.
func (r *InventoryRecordRepo) ExistsForProduct(productID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM inventory_records WHERE product_id = $1)`, productID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists inventory record: %w", err)
	}
	return exists, nil
}

func collectInventoryRecords(rows pgx.Rows) ([]*entity.InventoryRecord, error) {
	var list []*entity.InventoryRecord
	for rows.Next() {
		rec, err := scanInventoryRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory record: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

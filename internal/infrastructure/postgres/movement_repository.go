package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del historial de movimientos sobre PostgreSQL
// (usable con pool o tx). El historial es append-only.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador de movimientos. Pasar pool o
// tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, type, product_id, quantity, company_id, user_id, notes, created_at`

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	err := row.Scan(
		&m.ID, &m.Type, &m.ProductID, &m.Quantity,
		&m.CompanyID, &m.UserID, &m.Notes, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Save persiste un movimiento nuevo.
func (r *MovementRepo) Save(movement *entity.Movement) error {
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.Type, movement.ProductID, movement.Quantity,
		movement.CompanyID, movement.UserID, movement.Notes, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID, nil si no existe.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// ListByProduct historial de un producto, más reciente primero.
func (r *MovementRepo) ListByProduct(productID string, limit int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE product_id = $1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("list movements by product: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// ListByCompany historial de una empresa con filtros opcionales por tipo y
// ventana de fechas, más reciente primero.
func (r *MovementRepo) ListByCompany(companyID, movType string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE company_id = $1`
	args := []any{companyID}
	if movType != "" {
		args = append(args, movType)
		query += fmt.Sprintf(` AND type = $%d`, len(args))
	}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(` AND created_at >= $%d`, len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(` AND created_at <= $%d`, len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements by company: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// CountByProduct total de movimientos registrados para un producto.
func (r *MovementRepo) CountByProduct(productID string) (int64, error) {
	var count int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM movements WHERE product_id = $1`, productID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return count, nil
}

func collectMovements(rows pgx.Rows) ([]*entity.Movement, error) {
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

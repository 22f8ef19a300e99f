package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación de CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	pool *pgxpool.Pool
}

// NewCompanyRepository construye el adaptador de empresas.
func NewCompanyRepository(pool *pgxpool.Pool) *CompanyRepo {
	return &CompanyRepo{pool: pool}
}

const companyColumns = `id, name, nit, address, phone, email, status, created_at, updated_at`

func scanCompany(row pgx.Row) (*entity.Company, error) {
	var c entity.Company
	err := row.Scan(
		&c.ID, &c.Name, &c.NIT, &c.Address, &c.Phone, &c.Email,
		&c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Save persiste una empresa nueva. El índice único sobre nit respalda la
// unicidad bajo concurrencia.
func (r *CompanyRepo) Save(company *entity.Company) error {
	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(context.Background(), query,
		company.ID, company.Name, company.NIT, company.Address, company.Phone,
		company.Email, company.Status, company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewDuplicateNIT(company.NIT)
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID, nil si no existe.
func (r *CompanyRepo) GetByID(id string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	c, err := scanCompany(r.pool.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return c, nil
}

// GetByNIT obtiene una empresa por su NIT.
func (r *CompanyRepo) GetByNIT(nit string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE nit = $1`
	c, err := scanCompany(r.pool.QueryRow(context.Background(), query, nit))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company by nit: %w", err)
	}
	return c, nil
}

// ExistsNIT verifica si ya hay una empresa con ese NIT, excluyendo
// opcionalmente un ID.
func (r *CompanyRepo) ExistsNIT(nit, excludeID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM companies WHERE nit = $1 AND ($2 = '' OR id <> $2))`
	var exists bool
	if err := r.pool.QueryRow(context.Background(), query, nit, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists nit: %w", err)
	}
	return exists, nil
}

// ListActive lista las empresas activas por nombre.
func (r *CompanyRepo) ListActive() ([]*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE status = 'active' ORDER BY name`
	rows, err := r.pool.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()
	var list []*entity.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update actualiza una empresa existente. El NIT no cambia.
func (r *CompanyRepo) Update(company *entity.Company) error {
	query := `
		UPDATE companies
		SET name = $2, address = $3, phone = $4, email = $5, status = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		company.ID, company.Name, company.Address, company.Phone,
		company.Email, company.Status, company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// Deactivate soft delete: marca la empresa como inactiva. Devuelve false si
// no existe.
func (r *CompanyRepo) Deactivate(id string) (bool, error) {
	cmd, err := r.pool.Exec(context.Background(),
		`UPDATE companies SET status = 'inactive', updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("deactivate company: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

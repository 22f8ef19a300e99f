package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
// Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, company_id, code, name, description, price_usd, price_cop, price_eur, category, status, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.Code, &p.Name, &p.Description,
		&p.PriceUSD, &p.PriceCOP, &p.PriceEUR, &p.Category, &p.Status,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Save persiste un producto nuevo. El índice único sobre code convierte una
// carrera de códigos en error de dominio CODIGO_DUPLICADO.
func (r *ProductRepo) Save(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.CompanyID, product.Code, product.Name, product.Description,
		product.PriceUSD, product.PriceCOP, product.PriceEUR, product.Category, product.Status,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewDuplicateCode(product.Code)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID, nil si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByCode obtiene un producto por su código generado.
func (r *ProductRepo) GetByCode(code string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE code = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by code: %w", err)
	}
	return p, nil
}

// ListByCompany lista productos por empresa, opcionalmente solo activos.
func (r *ProductRepo) ListByCompany(companyID string, activeOnly bool) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE company_id = $1`
	if activeOnly {
		query += ` AND status = 'active'`
	}
	query += ` ORDER BY code`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// SearchByName busca productos por término en el nombre (case-insensitive).
// companyID vacío busca en todas las empresas.
func (r *ProductRepo) SearchByName(term, companyID string) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE name ILIKE '%' || $1 || '%'`
	args := []any{term}
	if companyID != "" {
		query += ` AND company_id = $2`
		args = append(args, companyID)
	}
	query += ` ORDER BY code`
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// ExistsCode verifica si un código ya está en uso, excluyendo opcionalmente
// un producto (para actualizaciones).
func (r *ProductRepo) ExistsCode(code, excludeID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM products WHERE code = $1 AND ($2 = '' OR id <> $2))`
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, code, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists code: %w", err)
	}
	return exists, nil
}

// NextSequenceNumber devuelve el siguiente secuencial para un prefijo: el
// mayor sufijo numérico existente más 1, o 1 si no hay códigos con el
// prefijo. Llamar dentro de la misma transacción que inserta el producto;
// el índice único sobre code cubre la carrera (detectar y reintentar).
func (r *ProductRepo) NextSequenceNumber(prefix string) (int, error) {
	query := `SELECT code FROM products WHERE code LIKE $1 || '%' ORDER BY code DESC LIMIT 1`
	var code string
	err := r.q.QueryRow(context.Background(), query, prefix).Scan(&code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 1, nil
		}
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	seq, err := strconv.Atoi(code[len(prefix):])
	if err != nil {
		return 0, fmt.Errorf("next sequence: código malformado %q: %w", code, err)
	}
	return seq + 1, nil
}

// Update actualiza un producto existente. El código y el stock no se tocan
// aquí (el stock solo vía movimientos).
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price_usd = $4, price_cop = $5,
		    price_eur = $6, category = $7, status = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description,
		product.PriceUSD, product.PriceCOP, product.PriceEUR,
		product.Category, product.Status, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Deactivate soft delete: marca el producto como inactivo. Devuelve false si
// no existe.
func (r *ProductRepo) Deactivate(id string) (bool, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET status = 'inactive', updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("deactivate product: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func collectProducts(rows pgx.Rows) ([]*entity.Product, error) {
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

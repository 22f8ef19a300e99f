package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Save(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCode(code string) (*entity.Product, error)
	ListByCompany(companyID string, activeOnly bool) ([]*entity.Product, error)
	// SearchByName busca por término en el nombre; companyID vacío = todas.
	SearchByName(term, companyID string) ([]*entity.Product, error)
	ExistsCode(code, excludeID string) (bool, error)
	// NextSequenceNumber devuelve el siguiente secuencial para un prefijo de
	// código. Solo es seguro dentro de la misma transacción que persiste el
	// producto; el índice único sobre code respalda la unicidad bajo
	// concurrencia (detectar y reintentar).
	NextSequenceNumber(prefix string) (int, error)
	Update(product *entity.Product) error
	Deactivate(id string) (bool, error)
}

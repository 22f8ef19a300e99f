package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Save(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	GetByNIT(nit string) (*entity.Company, error)
	// ExistsNIT verifica si ya hay una empresa con ese NIT, excluyendo
	// opcionalmente un ID (para actualizaciones). excludeID vacío = sin exclusión.
	ExistsNIT(nit, excludeID string) (bool, error)
	ListActive() ([]*entity.Company, error)
	Update(company *entity.Company) error
	Deactivate(id string) (bool, error)
}

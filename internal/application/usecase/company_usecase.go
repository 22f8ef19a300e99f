package usecase

import (
	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// CompanyUseCase casos de uso de empresas (tenants).
type CompanyUseCase struct {
	companyRepo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso de empresas.
func NewCompanyUseCase(companyRepo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{companyRepo: companyRepo}
}

// Create registra una empresa. El NIT debe ser único en todo el sistema.
func (uc *CompanyUseCase) Create(in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	exists, err := uc.companyRepo.ExistsNIT(in.NIT, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.NewDuplicateNIT(in.NIT)
	}
	company, err := entity.NewCompany(uuid.New().String(), in.Name, in.NIT, in.Address, in.Phone, in.Email)
	if err != nil {
		return nil, err
	}
	if err := uc.companyRepo.Save(company); err != nil {
		return nil, err
	}
	resp := toCompanyResponse(company)
	return &resp, nil
}

// GetByID obtiene una empresa por ID.
func (uc *CompanyUseCase) GetByID(id string) (*dto.CompanyResponse, error) {
	company, err := uc.companyRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.NewCompanyNotFound(id)
	}
	resp := toCompanyResponse(company)
	return &resp, nil
}

// GetByNIT obtiene una empresa por su NIT.
func (uc *CompanyUseCase) GetByNIT(nit string) (*dto.CompanyResponse, error) {
	company, err := uc.companyRepo.GetByNIT(nit)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.NewCompanyNotFound(nit)
	}
	resp := toCompanyResponse(company)
	return &resp, nil
}

// ListActive lista las empresas activas.
func (uc *CompanyUseCase) ListActive() (*dto.CompanyListResponse, error) {
	list, err := uc.companyRepo.ListActive()
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, toCompanyResponse(c))
	}
	return &dto.CompanyListResponse{Items: items, Total: len(items)}, nil
}

// Update actualiza la información básica de una empresa. El NIT no cambia.
func (uc *CompanyUseCase) Update(id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.companyRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.NewCompanyNotFound(id)
	}
	if err := company.UpdateInfo(in.Name, in.Address, in.Phone, in.Email); err != nil {
		return nil, err
	}
	if err := uc.companyRepo.Update(company); err != nil {
		return nil, err
	}
	resp := toCompanyResponse(company)
	return &resp, nil
}

// Deactivate desactiva una empresa (soft delete).
func (uc *CompanyUseCase) Deactivate(id string) error {
	ok, err := uc.companyRepo.Deactivate(id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewCompanyNotFound(id)
	}
	return nil
}

func toCompanyResponse(c *entity.Company) dto.CompanyResponse {
	return dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		NIT:       c.NIT,
		Address:   c.Address,
		Phone:     c.Phone,
		Email:     c.Email,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

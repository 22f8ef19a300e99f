package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Defaults del inventario inicial cuando el request no los especifica.
const (
	defaultMinStock     = 10
	defaultMaxStock     = 100
	defaultInitialStock = 0
)

// maxCodeRetries reintentos de la transacción de creación cuando otra
// petición concurrente ganó el mismo código (violación del índice único).
const maxCodeRetries = 3

// ProductUseCase casos de uso de productos: creación con asignación de
// código e inventario inicial en una sola transacción, y CRUD.
type ProductUseCase struct {
	txRunner    inventory.TxRunner
	productRepo repository.ProductRepository
	companyRepo repository.CompanyRepository
	rates       entity.ExchangeRates
}

// NewProductUseCase construye el caso de uso. Las tasas de cambio se
// inyectan desde configuración.
func NewProductUseCase(
	txRunner inventory.TxRunner,
	productRepo repository.ProductRepository,
	companyRepo repository.CompanyRepository,
	rates entity.ExchangeRates,
) *ProductUseCase {
	return &ProductUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		companyRepo: companyRepo,
		rates:       rates,
	}
}

// Create crea un producto con código generado y su libro de stock inicial.
// La lectura del secuencial, el insert del producto y el insert del
// inventario corren en una transacción; si otro caller concurrente tomó el
// mismo código, el índice único lo detecta y se reintenta completa.
func (uc *ProductUseCase) Create(ctx context.Context, companyID string, in dto.CreateProductRequest) (*dto.CreateProductResponse, error) {
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.NewCompanyNotFound(companyID)
	}
	if !company.IsActive() {
		return nil, domain.NewCompanyInactive(companyID)
	}

	category, err := entity.ParseCategory(in.Category)
	if err != nil {
		return nil, err
	}
	prefix := category.Prefix()

	minStock, maxStock, initialStock := defaultMinStock, defaultMaxStock, defaultInitialStock
	if in.MinStock != nil {
		minStock = *in.MinStock
	}
	if in.MaxStock != nil {
		maxStock = *in.MaxStock
	}
	if in.InitialStock != nil {
		initialStock = *in.InitialStock
	}

	var product *entity.Product
	var record *entity.InventoryRecord

	for attempt := 0; attempt < maxCodeRetries; attempt++ {
		product, record = nil, nil
		err = uc.txRunner.Run(ctx, func(
			_ repository.MovementRepository,
			invRepo repository.InventoryRecordRepository,
			productRepo repository.ProductRepository,
		) error {
			seq, err := productRepo.NextSequenceNumber(prefix)
			if err != nil {
				return err
			}
			p, err := entity.NewProduct(
				uuid.New().String(), companyID, in.Name, in.Description,
				in.PriceUSD, category, uc.rates,
			)
			if err != nil {
				return err
			}
			if err := p.GenerateCode(prefix, seq); err != nil {
				return err
			}
			if err := productRepo.Save(p); err != nil {
				return err
			}
			r, err := entity.NewInventoryRecord(
				uuid.New().String(), p.ID, companyID,
				initialStock, minStock, maxStock,
			)
			if err != nil {
				return err
			}
			if err := invRepo.Save(r); err != nil {
				return err
			}
			product, record = p, r
			return nil
		})
		if err == nil {
			break
		}
		if domain.CodeOf(err) != domain.CodeDuplicateCode {
			return nil, err
		}
	}
	if err != nil {
		return nil, err
	}

	return &dto.CreateProductResponse{
		Product:   toProductResponse(product),
		Inventory: inventory.ToInventoryResponse(record),
		Message:   fmt.Sprintf("Producto %s creado exitosamente", product.Code),
	}, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewProductNotFound(id)
	}
	resp := toProductResponse(product)
	return &resp, nil
}

// GetByCode obtiene un producto por su código generado.
func (uc *ProductUseCase) GetByCode(code string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewProductNotFound(code)
	}
	resp := toProductResponse(product)
	return &resp, nil
}

// List lista los productos de una empresa.
func (uc *ProductUseCase) List(companyID string, activeOnly bool) (*dto.ProductListResponse, error) {
	list, err := uc.productRepo.ListByCompany(companyID, activeOnly)
	if err != nil {
		return nil, err
	}
	return toProductList(list), nil
}

// Search busca productos por término en el nombre.
func (uc *ProductUseCase) Search(term, companyID string) (*dto.ProductListResponse, error) {
	list, err := uc.productRepo.SearchByName(term, companyID)
	if err != nil {
		return nil, err
	}
	return toProductList(list), nil
}

// Update actualiza la información básica del producto. El precio se cambia
// con ChangePrice y el stock solo mediante movimientos.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewProductNotFound(id)
	}
	var category *entity.Category
	if in.Category != nil {
		c, err := entity.ParseCategory(*in.Category)
		if err != nil {
			return nil, err
		}
		category = &c
	}
	if err := product.UpdateInfo(in.Name, in.Description, category); err != nil {
		return nil, err
	}
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	resp := toProductResponse(product)
	return &resp, nil
}

// ChangePrice cambia el precio base USD y recalcula los precios derivados.
func (uc *ProductUseCase) ChangePrice(id string, in dto.ChangePriceRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewProductNotFound(id)
	}
	if err := product.UpdatePrice(in.PriceUSD, uc.rates); err != nil {
		return nil, err
	}
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	resp := toProductResponse(product)
	return &resp, nil
}

// Deactivate desactiva un producto (soft delete).
func (uc *ProductUseCase) Deactivate(id string) error {
	ok, err := uc.productRepo.Deactivate(id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewProductNotFound(id)
	}
	return nil
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		CompanyID:   p.CompanyID,
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		PriceUSD:    p.PriceUSD,
		PriceCOP:    p.PriceCOP,
		PriceEUR:    p.PriceEUR,
		Category:    string(p.Category),
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProductList(list []*entity.Product) *dto.ProductListResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Total: len(items)}
}

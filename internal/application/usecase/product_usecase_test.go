package usecase_test

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. El repo de productos simula el índice único sobre code y
// puede devolver secuenciales obsoletos para provocar la carrera de códigos.
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product // por ID

	// staleSeqs secuenciales obsoletos a devolver antes del cálculo real,
	// simulando otra transacción que ganó el mismo código.
	staleSeqs []int
}

func (r *fakeProductRepo) Save(p *entity.Product) error {
	for _, existing := range r.products {
		if existing.Code == p.Code {
			return domain.NewDuplicateCode(p.Code)
		}
	}
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) NextSequenceNumber(prefix string) (int, error) {
	if len(r.staleSeqs) > 0 {
		seq := r.staleSeqs[0]
		r.staleSeqs = r.staleSeqs[1:]
		return seq, nil
	}
	var suffixes []int
	for _, p := range r.products {
		if strings.HasPrefix(p.Code, prefix) {
			n, err := strconv.Atoi(p.Code[len(prefix):])
			if err == nil {
				suffixes = append(suffixes, n)
			}
		}
	}
	if len(suffixes) == 0 {
		return 1, nil
	}
	sort.Ints(suffixes)
	return suffixes[len(suffixes)-1] + 1, nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) { return r.products[id], nil }
func (r *fakeProductRepo) GetByCode(code string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, nil
}
func (r *fakeProductRepo) ListByCompany(string, bool) ([]*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) SearchByName(string, string) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) ExistsCode(string, string) (bool, error) { return false, nil }
func (r *fakeProductRepo) Update(p *entity.Product) error          { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) Deactivate(id string) (bool, error) {
	p, ok := r.products[id]
	if !ok {
		return false, nil
	}
	p.Deactivate()
	return true, nil
}

type fakeCompanyRepo struct {
	companies map[string]*entity.Company
}

func (r *fakeCompanyRepo) Save(c *entity.Company) error                 { r.companies[c.ID] = c; return nil }
func (r *fakeCompanyRepo) GetByID(id string) (*entity.Company, error)   { return r.companies[id], nil }
func (r *fakeCompanyRepo) GetByNIT(string) (*entity.Company, error)     { return nil, nil }
func (r *fakeCompanyRepo) ExistsNIT(string, string) (bool, error)       { return false, nil }
func (r *fakeCompanyRepo) ListActive() ([]*entity.Company, error)       { return nil, nil }
func (r *fakeCompanyRepo) Update(c *entity.Company) error               { r.companies[c.ID] = c; return nil }
func (r *fakeCompanyRepo) Deactivate(id string) (bool, error)           { return false, nil }

type fakeInventoryRepo struct {
	records map[string]*entity.InventoryRecord // por productID
}

func (r *fakeInventoryRepo) Save(rec *entity.InventoryRecord) error {
	r.records[rec.ProductID] = rec
	return nil
}
func (r *fakeInventoryRepo) Update(rec *entity.InventoryRecord) error {
	r.records[rec.ProductID] = rec
	return nil
}
func (r *fakeInventoryRepo) GetByID(string) (*entity.InventoryRecord, error) { return nil, nil }
func (r *fakeInventoryRepo) GetByProduct(productID string) (*entity.InventoryRecord, error) {
	return r.records[productID], nil
}
func (r *fakeInventoryRepo) GetByProductForUpdate(productID string) (*entity.InventoryRecord, error) {
	return r.records[productID], nil
}
func (r *fakeInventoryRepo) ListByCompany(string) ([]*entity.InventoryRecord, error) {
	return nil, nil
}
func (r *fakeInventoryRepo) ListNeedingReorder(context.Context, string) ([]*entity.InventoryRecord, error) {
	return nil, nil
}
func (r *fakeInventoryRepo) ListByHealthTier(context.Context, string, string) ([]*entity.InventoryRecord, error) {
	return nil, nil
}
func (r *fakeInventoryRepo) ExistsForProduct(productID string) (bool, error) {
	_, ok := r.records[productID]
	return ok, nil
}

type fakeMovementRepo struct{}

func (fakeMovementRepo) Save(*entity.Movement) error            { return nil }
func (fakeMovementRepo) GetByID(string) (*entity.Movement, error) { return nil, nil }
func (fakeMovementRepo) ListByProduct(string, int) ([]*entity.Movement, error) {
	return nil, nil
}
func (fakeMovementRepo) ListByCompany(string, string, *time.Time, *time.Time, int, int) ([]*entity.Movement, error) {
	return nil, nil
}
func (fakeMovementRepo) CountByProduct(string) (int64, error) { return 0, nil }

// fakeTxRunner pasa los repos directo; el rollback no se simula porque el
// repo de productos ya rechaza el duplicado antes de escribir.
type fakeTxRunner struct {
	productRepo *fakeProductRepo
	invRepo     *fakeInventoryRepo
}

func (t *fakeTxRunner) Run(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	invRepo repository.InventoryRecordRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(fakeMovementRepo{}, t.invRepo, t.productRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

const testCompanyID = "emp-1"

func setup(t *testing.T) (*fakeProductRepo, *fakeInventoryRepo, *usecase.ProductUseCase) {
	t.Helper()
	company, err := entity.NewCompany(testCompanyID, "Distribuciones Andinas", "900123456", "", "6015551234", "contacto@andinas.co")
	require.NoError(t, err)

	productRepo := &fakeProductRepo{products: map[string]*entity.Product{}}
	companyRepo := &fakeCompanyRepo{companies: map[string]*entity.Company{testCompanyID: company}}
	invRepo := &fakeInventoryRepo{records: map[string]*entity.InventoryRecord{}}
	txRunner := &fakeTxRunner{productRepo: productRepo, invRepo: invRepo}

	uc := usecase.NewProductUseCase(txRunner, productRepo, companyRepo, entity.DefaultExchangeRates())
	return productRepo, invRepo, uc
}

func createRequest(name, category string) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Name:        name,
		Description: "Producto de prueba",
		PriceUSD:    decimal.NewFromInt(100),
		Category:    category,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación con asignación de código e inventario inicial
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_PrimerCodigoDeCategoria(t *testing.T) {
	_, _, uc := setup(t)

	out, err := uc.Create(context.Background(), testCompanyID, createRequest("Monitor 24", "TECNOLOGIA"))
	require.NoError(t, err)
	assert.Equal(t, "TE0001", out.Product.Code)
	assert.Equal(t, "Producto TE0001 creado exitosamente", out.Message)
}

func TestCreate_SecuencialIncrementaPorPrefijo(t *testing.T) {
	_, _, uc := setup(t)

	first, err := uc.Create(context.Background(), testCompanyID, createRequest("Monitor 24", "TECNOLOGIA"))
	require.NoError(t, err)
	second, err := uc.Create(context.Background(), testCompanyID, createRequest("Teclado mecánico", "TECNOLOGIA"))
	require.NoError(t, err)
	office, err := uc.Create(context.Background(), testCompanyID, createRequest("Resma de papel", "OFICINA"))
	require.NoError(t, err)

	assert.Equal(t, "TE0001", first.Product.Code)
	assert.Equal(t, "TE0002", second.Product.Code)
	assert.Equal(t, "OF0001", office.Product.Code, "cada prefijo lleva su propio secuencial")
}

func TestCreate_InventarioInicialConDefaults(t *testing.T) {
	_, invRepo, uc := setup(t)

	out, err := uc.Create(context.Background(), testCompanyID, createRequest("Monitor 24", "TECNOLOGIA"))
	require.NoError(t, err)

	assert.Equal(t, 0, out.Inventory.CurrentStock)
	assert.Equal(t, 10, out.Inventory.MinStock)
	assert.Equal(t, 100, out.Inventory.MaxStock)
	assert.True(t, out.Inventory.NeedsReorder, "stock inicial 0 queda bajo el mínimo")

	rec := invRepo.records[out.Product.ID]
	require.NotNil(t, rec, "el libro de stock debe persistirse junto al producto")
}

func TestCreate_InventarioInicialExplicito(t *testing.T) {
	_, _, uc := setup(t)

	min, max, initial := 5, 200, 50
	req := createRequest("Monitor 24", "TECNOLOGIA")
	req.MinStock, req.MaxStock, req.InitialStock = &min, &max, &initial

	out, err := uc.Create(context.Background(), testCompanyID, req)
	require.NoError(t, err)
	assert.Equal(t, 50, out.Inventory.CurrentStock)
	assert.Equal(t, 5, out.Inventory.MinStock)
	assert.Equal(t, 200, out.Inventory.MaxStock)
}

func TestCreate_LimitesInvalidos(t *testing.T) {
	_, invRepo, uc := setup(t)

	min, max := 100, 100
	req := createRequest("Monitor 24", "TECNOLOGIA")
	req.MinStock, req.MaxStock = &min, &max

	_, err := uc.Create(context.Background(), testCompanyID, req)
	require.Error(t, err)
	assert.Equal(t, domain.CodeInvalidStockLimits, domain.CodeOf(err))
	assert.Empty(t, invRepo.records, "no debe quedar libro de stock tras el fallo")
}

func TestCreate_CategoriaInvalida(t *testing.T) {
	_, _, uc := setup(t)
	_, err := uc.Create(context.Background(), testCompanyID, createRequest("Monitor 24", "ROPA"))
	require.Error(t, err)
	assert.Equal(t, domain.CodeInvalidCategory, domain.CodeOf(err))
}

func TestCreate_EmpresaInexistente(t *testing.T) {
	_, _, uc := setup(t)
	_, err := uc.Create(context.Background(), "emp-fantasma", createRequest("Monitor 24", "TECNOLOGIA"))
	require.Error(t, err)
	assert.Equal(t, domain.CodeCompanyNotFound, domain.CodeOf(err))
}

func TestCreate_CodigoDuplicado_Reintenta(t *testing.T) {
	productRepo, _, uc := setup(t)

	// Primer producto toma TE0001.
	_, err := uc.Create(context.Background(), testCompanyID, createRequest("Monitor 24", "TECNOLOGIA"))
	require.NoError(t, err)

	// El siguiente lee un secuencial obsoleto (1) como si otra transacción
	// hubiera ganado TE0001; el índice único lo rechaza y debe reintentar.
	productRepo.staleSeqs = []int{1}
	out, err := uc.Create(context.Background(), testCompanyID, createRequest("Teclado", "TECNOLOGIA"))
	require.NoError(t, err)
	assert.Equal(t, "TE0002", out.Product.Code)
}

func TestCreate_CodigoDuplicadoPersistente_Falla(t *testing.T) {
	productRepo, _, uc := setup(t)

	_, err := uc.Create(context.Background(), testCompanyID, createRequest("Monitor 24", "TECNOLOGIA"))
	require.NoError(t, err)

	// Secuencial obsoleto en todos los reintentos: el caso de uso debe
	// rendirse con el error de duplicado, no colgarse.
	productRepo.staleSeqs = []int{1, 1, 1, 1, 1}
	_, err = uc.Create(context.Background(), testCompanyID, createRequest("Teclado", "TECNOLOGIA"))
	require.Error(t, err)
	assert.Equal(t, domain.CodeDuplicateCode, domain.CodeOf(err))
}

// ──────────────────────────────────────────────────────────────────────────────
// Precio
// ──────────────────────────────────────────────────────────────────────────────

func TestChangePrice_RecalculaDerivados(t *testing.T) {
	_, _, uc := setup(t)

	created, err := uc.Create(context.Background(), testCompanyID, createRequest("Monitor 24", "TECNOLOGIA"))
	require.NoError(t, err)

	out, err := uc.ChangePrice(created.Product.ID, dto.ChangePriceRequest{PriceUSD: decimal.NewFromInt(50)})
	require.NoError(t, err)
	assert.True(t, out.PriceCOP.Equal(decimal.RequireFromString("210000")))
	assert.True(t, out.PriceEUR.Equal(decimal.RequireFromString("46")))
}

func TestDeactivate_ProductoInexistente(t *testing.T) {
	_, _, uc := setup(t)
	err := uc.Deactivate("prod-fantasma")
	require.Error(t, err)
	assert.Equal(t, domain.CodeProductNotFound, domain.CodeOf(err))
}

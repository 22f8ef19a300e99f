package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. El TxRunner simula el rollback restaurando el estado si
// el callback falla, igual que la transacción real.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	products  map[string]*entity.Product
	users     map[string]*entity.User
	records   map[string]*entity.InventoryRecord // por productID
	movements []*entity.Movement

	failMovementSave bool
}

func copyRecord(r *entity.InventoryRecord) *entity.InventoryRecord {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Save(p *entity.Product) error   { r.s.products[p.ID] = p; return nil }
func (r *memProductRepo) Update(p *entity.Product) error { r.s.products[p.ID] = p; return nil }
func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.s.products[id], nil
}
func (r *memProductRepo) GetByCode(code string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, nil
}
func (r *memProductRepo) ListByCompany(string, bool) ([]*entity.Product, error) { return nil, nil }
func (r *memProductRepo) SearchByName(string, string) ([]*entity.Product, error) {
	return nil, nil
}
func (r *memProductRepo) ExistsCode(string, string) (bool, error) { return false, nil }
func (r *memProductRepo) NextSequenceNumber(string) (int, error)  { return 1, nil }
func (r *memProductRepo) Deactivate(string) (bool, error)         { return false, nil }

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) Save(u *entity.User) error               { r.s.users[u.ID] = u; return nil }
func (r *memUserRepo) GetByID(id string) (*entity.User, error) { return r.s.users[id], nil }
func (r *memUserRepo) GetByEmail(string) (*entity.User, error) { return nil, nil }
func (r *memUserRepo) HasPermission(string, string) (bool, error) {
	return true, nil
}

type memInventoryRepo struct{ s *memStore }

func (r *memInventoryRepo) Save(rec *entity.InventoryRecord) error {
	r.s.records[rec.ProductID] = copyRecord(rec)
	return nil
}
func (r *memInventoryRepo) Update(rec *entity.InventoryRecord) error {
	r.s.records[rec.ProductID] = copyRecord(rec)
	return nil
}
func (r *memInventoryRepo) GetByID(id string) (*entity.InventoryRecord, error) {
	for _, rec := range r.s.records {
		if rec.ID == id {
			return copyRecord(rec), nil
		}
	}
	return nil, nil
}
func (r *memInventoryRepo) GetByProduct(productID string) (*entity.InventoryRecord, error) {
	return copyRecord(r.s.records[productID]), nil
}
func (r *memInventoryRepo) GetByProductForUpdate(productID string) (*entity.InventoryRecord, error) {
	return copyRecord(r.s.records[productID]), nil
}
func (r *memInventoryRepo) ListByCompany(string) ([]*entity.InventoryRecord, error) {
	return nil, nil
}
func (r *memInventoryRepo) ListNeedingReorder(context.Context, string) ([]*entity.InventoryRecord, error) {
	return nil, nil
}
func (r *memInventoryRepo) ListByHealthTier(context.Context, string, string) ([]*entity.InventoryRecord, error) {
	return nil, nil
}
func (r *memInventoryRepo) ExistsForProduct(productID string) (bool, error) {
	_, ok := r.s.records[productID]
	return ok, nil
}

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Save(m *entity.Movement) error {
	if r.s.failMovementSave {
		return errors.New("insert movement: conexión perdida")
	}
	r.s.movements = append(r.s.movements, m)
	return nil
}
func (r *memMovementRepo) GetByID(string) (*entity.Movement, error) { return nil, nil }
func (r *memMovementRepo) ListByProduct(string, int) ([]*entity.Movement, error) {
	return nil, nil
}
func (r *memMovementRepo) ListByCompany(string, string, *time.Time, *time.Time, int, int) ([]*entity.Movement, error) {
	return nil, nil
}
func (r *memMovementRepo) CountByProduct(string) (int64, error) { return 0, nil }

type memTxRunner struct{ s *memStore }

func (t *memTxRunner) Run(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	invRepo repository.InventoryRecordRepository,
	productRepo repository.ProductRepository,
) error) error {
	// Snapshot para simular rollback.
	snapshot := make(map[string]*entity.InventoryRecord, len(t.s.records))
	for k, v := range t.s.records {
		snapshot[k] = copyRecord(v)
	}
	movCount := len(t.s.movements)

	err := fn(&memMovementRepo{t.s}, &memInventoryRepo{t.s}, &memProductRepo{t.s})
	if err != nil {
		t.s.records = snapshot
		t.s.movements = t.s.movements[:movCount]
	}
	return err
}

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

const (
	companyID = "emp-1"
	userID    = "user-1"
	productID = "prod-1"
)

func setup(t *testing.T, currentStock, minStock, maxStock int) (*memStore, *inventory.RegisterMovementUseCase) {
	t.Helper()
	s := &memStore{
		products: map[string]*entity.Product{},
		users:    map[string]*entity.User{},
		records:  map[string]*entity.InventoryRecord{},
	}

	product, err := entity.NewProduct(
		productID, companyID, "Monitor 24 pulgadas", "Monitor LED",
		decimal.NewFromInt(100), entity.CategoryTecnologia, entity.DefaultExchangeRates(),
	)
	require.NoError(t, err)
	require.NoError(t, product.GenerateCode("TE", 1))
	s.products[productID] = product

	user, err := entity.NewUser(userID, companyID, "bodega@andinas.co", "hash", "Bodeguero Uno", entity.RoleExterno)
	require.NoError(t, err)
	s.users[userID] = user

	rec, err := entity.NewInventoryRecord("inv-1", productID, companyID, currentStock, minStock, maxStock)
	require.NoError(t, err)
	s.records[productID] = rec

	uc := inventory.NewRegisterMovementUseCase(
		&memTxRunner{s}, &memProductRepo{s}, &memUserRepo{s}, &memInventoryRepo{s},
	)
	return s, uc
}

func register(uc *inventory.RegisterMovementUseCase, movType string, qty int) (*dto.MovementResult, error) {
	return uc.RegisterMovement(context.Background(), inventory.MovementInput{
		CompanyID: companyID,
		UserID:    userID,
		ProductID: productID,
		Type:      movType,
		Quantity:  qty,
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenarios
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_Entrada(t *testing.T) {
	s, uc := setup(t, 50, 10, 100)

	out, err := register(uc, "ENTRADA", 20)
	require.NoError(t, err)

	assert.Equal(t, 70, out.Inventory.CurrentStock)
	assert.Equal(t, dto.StockSnapshot{Before: 50, After: 70, Delta: 20}, out.Stock)
	assert.Equal(t, "TE0001", out.Product.Code)
	assert.Equal(t, "ENTRADA de 20 unidades registrado exitosamente. Stock actual: 70 unidades.", out.Message)
	assert.Empty(t, out.Alerts)

	require.Len(t, s.movements, 1)
	assert.Equal(t, "ENTRADA", s.movements[0].Type)
	assert.Equal(t, 70, s.records[productID].CurrentStock)
}

func TestRegisterMovement_TipoEnMinusculas(t *testing.T) {
	_, uc := setup(t, 50, 10, 100)
	out, err := register(uc, "entrada", 5)
	require.NoError(t, err)
	assert.Equal(t, "ENTRADA", out.Movement.Type)
}

func TestRegisterMovement_SalidaInsuficiente_NoEscribeNada(t *testing.T) {
	s, uc := setup(t, 30, 10, 100)

	_, err := register(uc, "SALIDA", 31)
	require.Error(t, err)
	assert.Equal(t, domain.CodeInsufficientStock, domain.CodeOf(err))

	assert.Equal(t, 30, s.records[productID].CurrentStock, "el libro no debe mutar")
	assert.Empty(t, s.movements, "no debe registrarse el movimiento")
}

func TestRegisterMovement_EntradaExcedeMaximo(t *testing.T) {
	s, uc := setup(t, 90, 10, 100)

	_, err := register(uc, "ENTRADA", 11)
	require.Error(t, err)
	assert.Equal(t, domain.CodeCapacityExceeded, domain.CodeOf(err))
	assert.Equal(t, 90, s.records[productID].CurrentStock)
}

func TestRegisterMovement_AjusteEsAbsoluto(t *testing.T) {
	s, uc := setup(t, 80, 10, 100)

	out, err := register(uc, "AJUSTE", 25)
	require.NoError(t, err)
	assert.Equal(t, 25, out.Inventory.CurrentStock, "la cantidad del ajuste es el stock objetivo")
	assert.Equal(t, dto.StockSnapshot{Before: 80, After: 25, Delta: -55}, out.Stock)
	assert.Equal(t, 25, s.records[productID].CurrentStock)
}

func TestRegisterMovement_AjusteACero(t *testing.T) {
	_, uc := setup(t, 80, 10, 100)
	out, err := register(uc, "AJUSTE", 0)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Inventory.CurrentStock)
}

func TestRegisterMovement_DevolucionIncrementa(t *testing.T) {
	_, uc := setup(t, 50, 10, 100)
	out, err := register(uc, "DEVOLUCION", 5)
	require.NoError(t, err)
	assert.Equal(t, 55, out.Inventory.CurrentStock)
}

func TestRegisterMovement_TransferenciaDecrementa(t *testing.T) {
	_, uc := setup(t, 50, 10, 100)
	out, err := register(uc, "TRANSFERENCIA", 5)
	require.NoError(t, err)
	assert.Equal(t, 45, out.Inventory.CurrentStock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Precondiciones
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_ProductoDeOtraEmpresa_NotFound(t *testing.T) {
	_, uc := setup(t, 50, 10, 100)

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		CompanyID: "emp-otra",
		UserID:    userID,
		ProductID: productID,
		Type:      "ENTRADA",
		Quantity:  5,
	})
	require.Error(t, err)
	// El cruce de tenant responde not-found, no forbidden: no se revela que
	// el producto existe.
	assert.Equal(t, domain.CodeProductNotFound, domain.CodeOf(err))
}

func TestRegisterMovement_ProductoInactivo(t *testing.T) {
	s, uc := setup(t, 50, 10, 100)
	s.products[productID].Deactivate()

	_, err := register(uc, "ENTRADA", 5)
	require.Error(t, err)
	assert.Equal(t, domain.CodeProductInactive, domain.CodeOf(err))
}

func TestRegisterMovement_UsuarioInexistente(t *testing.T) {
	_, uc := setup(t, 50, 10, 100)

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		CompanyID: companyID,
		UserID:    "user-fantasma",
		ProductID: productID,
		Type:      "ENTRADA",
		Quantity:  5,
	})
	require.Error(t, err)
	assert.Equal(t, domain.CodeUserNotFound, domain.CodeOf(err))
}

func TestRegisterMovement_SinLibroDeStock(t *testing.T) {
	s, uc := setup(t, 50, 10, 100)
	delete(s.records, productID)

	_, err := register(uc, "ENTRADA", 5)
	require.Error(t, err)
	assert.Equal(t, domain.CodeInventoryNotFound, domain.CodeOf(err))
}

func TestRegisterMovement_TipoInvalido(t *testing.T) {
	s, uc := setup(t, 50, 10, 100)

	_, err := register(uc, "PRESTAMO", 5)
	require.Error(t, err)
	assert.Equal(t, domain.CodeInvalidMovementType, domain.CodeOf(err))
	assert.Empty(t, s.movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// Atomicidad: libro y movimiento se confirman juntos o ninguno
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_FallaAlGuardarMovimiento_RevierteElLibro(t *testing.T) {
	s, uc := setup(t, 50, 10, 100)
	s.failMovementSave = true

	_, err := register(uc, "ENTRADA", 20)
	require.Error(t, err)

	assert.Equal(t, 50, s.records[productID].CurrentStock,
		"si el movimiento no se persiste, el libro debe quedar intacto")
	assert.Empty(t, s.movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// Alertas
// ──────────────────────────────────────────────────────────────────────────────

func alertTypes(alerts []dto.Alert) []string {
	types := make([]string, 0, len(alerts))
	for _, a := range alerts {
		types = append(types, a.Type)
	}
	return types
}

func TestRegisterMovement_AlertasCriticoYReorden(t *testing.T) {
	_, uc := setup(t, 50, 10, 100)

	out, err := register(uc, "SALIDA", 45) // queda en 5, bajo el mínimo
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{dto.AlertCritico, dto.AlertReorden}, alertTypes(out.Alerts))
	assert.True(t, out.Inventory.NeedsReorder)
	assert.Equal(t, entity.StockCritico, out.Inventory.HealthTier)
}

func TestRegisterMovement_AlertaAdvertenciaStockBajo(t *testing.T) {
	_, uc := setup(t, 60, 10, 100)

	out, err := register(uc, "SALIDA", 20) // queda en 40 = 40% (BAJO, sobre el mínimo)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{dto.AlertAdvertencia}, alertTypes(out.Alerts))
}

func TestRegisterMovement_AlertaInfoStockAlto(t *testing.T) {
	_, uc := setup(t, 80, 10, 100)

	out, err := register(uc, "ENTRADA", 15) // queda en 95%
	require.NoError(t, err)
	require.ElementsMatch(t, []string{dto.AlertInfo}, alertTypes(out.Alerts))
	assert.Equal(t, "Stock alto: 95.0% del máximo", out.Alerts[0].Message)
}

func TestRegisterMovement_90PorCientoExactoNoGeneraInfo(t *testing.T) {
	_, uc := setup(t, 80, 10, 100)

	out, err := register(uc, "ENTRADA", 10) // queda en 90% exacto
	require.NoError(t, err)
	assert.Empty(t, out.Alerts, "la alerta INFO exige estrictamente más de 90%")
}

package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos de inventario de forma
// transaccional (ENTRADA, SALIDA, AJUSTE, DEVOLUCION, TRANSFERENCIA) con
// bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
//
// Orden de escritura dentro de la transacción: primero el libro de stock,
// después el movimiento. Un movimiento perdido se reconcilia desde el
// historial; un libro desactualizado cuenta stock de menos o de más en
// silencio.
type RegisterMovementUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	invRepo     repository.InventoryRecordRepository
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	invRepo repository.InventoryRecordRepository,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		userRepo:    userRepo,
		invRepo:     invRepo,
	}
}

// MovementInput entrada para registrar un movimiento de inventario.
// Para AJUSTE, Quantity es el stock objetivo absoluto.
type MovementInput struct {
	CompanyID string
	UserID    string
	ProductID string
	Type      string
	Quantity  int
	Notes     string
}

// RegisterMovement valida precondiciones, aplica el movimiento al libro de
// stock dentro de una transacción y devuelve el resultado completo con
// alertas. Toda falla de precondición aborta antes de cualquier escritura.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInput) (*dto.MovementResult, error) {
	// 1. Producto debe existir, estar activo y pertenecer a la empresa.
	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != input.CompanyID {
		return nil, domain.NewProductNotFound(input.ProductID)
	}
	if !product.IsActive() {
		return nil, domain.NewProductInactive(input.ProductID)
	}

	// 2. Usuario responsable debe existir y tener el permiso. El RBAC de
	// rutas vive en el middleware; esto cubre el caso de uso invocado
	// directamente.
	user, err := uc.userRepo.GetByID(input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewUserNotFound(input.UserID)
	}
	if !user.HasPermission("registrar_movimiento") {
		return nil, domain.NewInvalidData("usuario", "el usuario no tiene permiso para registrar movimientos")
	}

	// 3. El producto debe tener libro de stock: es precondición, no se crea
	// implícitamente aquí.
	existing, err := uc.invRepo.GetByProduct(input.ProductID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.NewInventoryNotFound(input.ProductID)
	}

	// 4. Construir el movimiento (corre la validación de la entidad).
	movType, err := entity.ParseMovementType(input.Type)
	if err != nil {
		return nil, err
	}
	movement, err := entity.NewMovement(
		uuid.New().String(), movType, input.ProductID,
		input.Quantity, input.CompanyID, input.UserID, input.Notes,
	)
	if err != nil {
		return nil, err
	}

	// 5-7. Transacción: re-leer el libro con la fila bloqueada, aplicar la
	// mutación, persistir libro y movimiento juntos.
	var record *entity.InventoryRecord
	var stockBefore int
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		invRepo repository.InventoryRecordRepository,
		_ repository.ProductRepository,
	) error {
		rec, err := invRepo.GetByProductForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.NewInventoryNotFound(input.ProductID)
		}
		stockBefore = rec.CurrentStock

		if err := applyMovement(rec, movement); err != nil {
			return err
		}
		if err := invRepo.Update(rec); err != nil {
			return err
		}
		if err := movRepo.Save(movement); err != nil {
			return err
		}
		record = rec
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 8-9. Alertas y respuesta.
	result := &dto.MovementResult{
		Movement:  ToMovementResponse(movement),
		Inventory: ToInventoryResponse(record),
		Product: dto.ProductSummary{
			ID:   product.ID,
			Code: product.Code,
			Name: product.Name,
		},
		Stock: dto.StockSnapshot{
			Before: stockBefore,
			After:  record.CurrentStock,
			Delta:  record.CurrentStock - stockBefore,
		},
		Alerts:  buildAlerts(record),
		Message: successMessage(movement, record),
	}
	return result, nil
}

// applyMovement despacha la mutación según la clasificación del movimiento.
// El libro de stock levanta los errores de dominio específicos
// (STOCK_INSUFICIENTE, STOCK_MAXIMO_EXCEDIDO, STOCK_NEGATIVO).
func applyMovement(rec *entity.InventoryRecord, mov *entity.Movement) error {
	switch {
	case mov.IsEntry():
		return rec.ApplyEntry(mov.Quantity)
	case mov.IsExit():
		return rec.ApplyExit(mov.Quantity)
	case mov.IsAdjustment():
		// La cantidad del ajuste es el nuevo stock, no un delta.
		return rec.ApplyAdjustment(mov.Quantity)
	}
	return domain.NewInvalidMovementType(mov.Type)
}

// buildAlerts genera las alertas post-movimiento según el estado del libro.
func buildAlerts(rec *entity.InventoryRecord) []dto.Alert {
	alerts := []dto.Alert{}

	switch rec.HealthTier() {
	case entity.StockCritico:
		alerts = append(alerts, dto.Alert{
			Type:    dto.AlertCritico,
			Message: fmt.Sprintf("Stock crítico: %d unidades (mínimo: %d)", rec.CurrentStock, rec.MinStock),
		})
	case entity.StockBajo:
		alerts = append(alerts, dto.Alert{
			Type:    dto.AlertAdvertencia,
			Message: fmt.Sprintf("Stock bajo: %d unidades", rec.CurrentStock),
		})
	}

	if rec.NeedsReorder {
		alerts = append(alerts, dto.Alert{
			Type:    dto.AlertReorden,
			Message: "Se requiere reabastecimiento",
		})
	}

	if pct := rec.StockPercentage(); pct.GreaterThan(decimal.NewFromInt(90)) {
		alerts = append(alerts, dto.Alert{
			Type:    dto.AlertInfo,
			Message: fmt.Sprintf("Stock alto: %s%% del máximo", pct.StringFixed(1)),
		})
	}

	return alerts
}

// successMessage mensaje legible de confirmación.
func successMessage(mov *entity.Movement, rec *entity.InventoryRecord) string {
	return fmt.Sprintf("%s de %d unidades registrado exitosamente. Stock actual: %d unidades.",
		mov.Type, mov.Quantity, rec.CurrentStock)
}

// ToMovementResponse convierte la entidad a DTO.
func ToMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:        m.ID,
		Type:      m.Type,
		ProductID: m.ProductID,
		Quantity:  m.Quantity,
		CompanyID: m.CompanyID,
		UserID:    m.UserID,
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
	}
}

// ToInventoryResponse convierte la entidad a DTO, incluyendo los derivados
// porcentaje y estado de stock.
func ToInventoryResponse(r *entity.InventoryRecord) dto.InventoryResponse {
	return dto.InventoryResponse{
		ID:              r.ID,
		ProductID:       r.ProductID,
		CompanyID:       r.CompanyID,
		CurrentStock:    r.CurrentStock,
		MinStock:        r.MinStock,
		MaxStock:        r.MaxStock,
		NeedsReorder:    r.NeedsReorder,
		StockPercentage: r.StockPercentage(),
		HealthTier:      r.HealthTier(),
		UpdatedAt:       r.UpdatedAt,
	}
}

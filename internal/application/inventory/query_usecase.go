package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// QueryUseCase consultas de inventario y actualización de umbrales.
type QueryUseCase struct {
	invRepo repository.InventoryRecordRepository
	movRepo repository.MovementRepository
}

// NewQueryUseCase construye el caso de uso de consultas.
func NewQueryUseCase(invRepo repository.InventoryRecordRepository, movRepo repository.MovementRepository) *QueryUseCase {
	return &QueryUseCase{invRepo: invRepo, movRepo: movRepo}
}

// GetByProduct obtiene el libro de stock de un producto.
func (uc *QueryUseCase) GetByProduct(productID string) (*dto.InventoryResponse, error) {
	rec, err := uc.invRepo.GetByProduct(productID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.NewInventoryNotFound(productID)
	}
	resp := ToInventoryResponse(rec)
	return &resp, nil
}

// ListByCompany lista los registros de inventario de una empresa.
func (uc *QueryUseCase) ListByCompany(companyID string) (*dto.InventoryListResponse, error) {
	list, err := uc.invRepo.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	return toInventoryList(list), nil
}

// ListNeedingReorder productos con reabastecimiento pendiente.
func (uc *QueryUseCase) ListNeedingReorder(ctx context.Context, companyID string) (*dto.InventoryListResponse, error) {
	list, err := uc.invRepo.ListNeedingReorder(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return toInventoryList(list), nil
}

// ListByHealthTier registros en un estado de stock dado.
func (uc *QueryUseCase) ListByHealthTier(ctx context.Context, tier, companyID string) (*dto.InventoryListResponse, error) {
	switch tier {
	case entity.StockCritico, entity.StockBajo, entity.StockNormal, entity.StockAlto:
	default:
		return nil, domain.NewInvalidData("estado", "estado de stock inválido: "+tier)
	}
	list, err := uc.invRepo.ListByHealthTier(ctx, tier, companyID)
	if err != nil {
		return nil, err
	}
	return toInventoryList(list), nil
}

// UpdateLimits actualiza los umbrales del libro de un producto y recalcula
// el flag de reorden.
func (uc *QueryUseCase) UpdateLimits(productID string, in dto.UpdateLimitsRequest) (*dto.InventoryResponse, error) {
	rec, err := uc.invRepo.GetByProduct(productID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.NewInventoryNotFound(productID)
	}
	if err := rec.UpdateLimits(in.MinStock, in.MaxStock); err != nil {
		return nil, err
	}
	if err := uc.invRepo.Update(rec); err != nil {
		return nil, err
	}
	resp := ToInventoryResponse(rec)
	return &resp, nil
}

// ListMovementsByProduct historial de un producto, más reciente primero.
// Total refleja el conteo completo aunque la página esté limitada.
func (uc *QueryUseCase) ListMovementsByProduct(productID string, limit int) (*dto.MovementListResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	list, err := uc.movRepo.ListByProduct(productID, limit)
	if err != nil {
		return nil, err
	}
	total, err := uc.movRepo.CountByProduct(productID)
	if err != nil {
		return nil, err
	}
	resp := toMovementList(list)
	resp.Total = int(total)
	return resp, nil
}

// ListMovementsByCompany historial de una empresa con filtros opcionales.
func (uc *QueryUseCase) ListMovementsByCompany(companyID, movType string, from, to *time.Time, limit, offset int) (*dto.MovementListResponse, error) {
	if movType != "" {
		t, err := entity.ParseMovementType(movType)
		if err != nil {
			return nil, err
		}
		movType = t
	}
	if limit <= 0 {
		limit = 50
	}
	list, err := uc.movRepo.ListByCompany(companyID, movType, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	return toMovementList(list), nil
}

// GetMovement obtiene un movimiento por ID.
func (uc *QueryUseCase) GetMovement(id string) (*dto.MovementResponse, error) {
	mov, err := uc.movRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.NewMovementNotFound(id)
	}
	resp := ToMovementResponse(mov)
	return &resp, nil
}

func toInventoryList(list []*entity.InventoryRecord) *dto.InventoryListResponse {
	items := make([]dto.InventoryResponse, 0, len(list))
	for _, r := range list {
		items = append(items, ToInventoryResponse(r))
	}
	return &dto.InventoryListResponse{Items: items, Total: len(items)}
}

func toMovementList(list []*entity.Movement) *dto.MovementListResponse {
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, ToMovementResponse(m))
	}
	return &dto.MovementListResponse{Items: items, Total: len(items)}
}

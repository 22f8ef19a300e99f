package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP de inventario y movimientos
// (protegido).
type InventoryHandler struct {
	register *inventory.RegisterMovementUseCase
	query    *inventory.QueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(register *inventory.RegisterMovementUseCase, query *inventory.QueryUseCase) *InventoryHandler {
	return &InventoryHandler{register: register, query: query}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  ENTRADA, SALIDA, AJUSTE, DEVOLUCION o TRANSFERENCIA. En
//	AJUSTE la cantidad es el stock objetivo absoluto. La respuesta incluye el
//	estado del inventario, el snapshot anterior/actual y alertas.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.MovementResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.register.RegisterMovement(c.Context(), inventory.MovementInput{
		CompanyID: companyID,
		UserID:    userID,
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Notes:     in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByProduct godoc
// @Summary      Estado de inventario de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{productId} [get]
func (h *InventoryHandler) GetByProduct(c *fiber.Ctx) error {
	out, err := h.query.GetByProduct(c.Params("productId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Inventario de la empresa
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        tier  query  string  false  "Filtrar por estado de stock (CRITICO, BAJO, NORMAL, ALTO)"
// @Success      200   {object}  dto.InventoryListResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if tier := c.Query("tier"); tier != "" {
		out, err := h.query.ListByHealthTier(c.Context(), tier, companyID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
	out, err := h.query.ListByCompany(companyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListNeedingReorder godoc
// @Summary      Productos con reorden pendiente
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryListResponse
// @Router       /api/inventory/reorder [get]
func (h *InventoryHandler) ListNeedingReorder(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	out, err := h.query.ListNeedingReorder(c.Context(), companyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateLimits godoc
// @Summary      Actualizar límites de stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Param        body       body  dto.UpdateLimitsRequest  true  "Nuevos límites"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{productId}/limits [put]
func (h *InventoryHandler) UpdateLimits(c *fiber.Ctx) error {
	var in dto.UpdateLimitsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.query.UpdateLimits(c.Params("productId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListMovementsByProduct godoc
// @Summary      Historial de movimientos de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  path   string  true   "ID del producto"
// @Param        limit      query  int     false  "Límite"  default(50)
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/inventory/products/{productId}/movements [get]
func (h *InventoryHandler) ListMovementsByProduct(c *fiber.Ctx) error {
	out, err := h.query.ListMovementsByProduct(c.Params("productId"), c.QueryInt("limit", 50))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListMovements godoc
// @Summary      Historial de movimientos de la empresa
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        type    query  string  false  "Filtrar por tipo (ENTRADA, SALIDA, ...)"
// @Param        from    query  string  false  "Desde (RFC3339)"
// @Param        to      query  string  false  "Hasta (RFC3339)"
// @Param        limit   query  int     false  "Límite"   default(50)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.MovementListResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var from, to *time.Time
	if s := c.Query("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC3339"})
		}
		from = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC3339"})
		}
		to = &t
	}
	limit := c.QueryInt("limit", 50)
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	out, err := h.query.ListMovementsByCompany(companyID, c.Query("type"), from, to, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetMovement godoc
// @Summary      Obtener movimiento por ID
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id} [get]
func (h *InventoryHandler) GetMovement(c *fiber.Ctx) error {
	out, err := h.query.GetMovement(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

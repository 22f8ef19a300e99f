package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
)

// statusForCode mapea códigos de dominio a status HTTP. Los conflictos de
// stock y los duplicados responden 409; todo lo que no se reconoce es 500.
func statusForCode(code string) int {
	switch code {
	case domain.CodeProductNotFound, domain.CodeCompanyNotFound,
		domain.CodeInventoryNotFound, domain.CodeMovementNotFound,
		domain.CodeUserNotFound:
		return fiber.StatusNotFound
	case domain.CodeInsufficientStock, domain.CodeCapacityExceeded,
		domain.CodeNegativeStock, domain.CodeDuplicateCode,
		domain.CodeDuplicateNIT, domain.CodeEmailAlreadyExists,
		domain.CodeProductInactive, domain.CodeCompanyInactive:
		return fiber.StatusConflict
	case domain.CodeInvalidData, domain.CodeInvalidCategory,
		domain.CodeInvalidMovementType, domain.CodeInvalidStockLimits:
		return fiber.StatusBadRequest
	case domain.CodeInvalidCredentials:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError traduce un error a la respuesta JSON. Errores de dominio
// conservan código, mensaje y detalles; el resto responde INTERNAL sin
// filtrar el error hacia el cliente.
func respondError(c *fiber.Ctx, err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return c.Status(statusForCode(de.Code)).JSON(dto.ErrorResponse{
			Code:    de.Code,
			Message: de.Message,
			Details: de.Details,
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code:    "INTERNAL",
		Message: "error interno del servidor",
	})
}

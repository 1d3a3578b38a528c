package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Warehousing-api/internal/application/dto"
	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
)

// Statuses godoc
// @Summary      Estados de órdenes y traslados
// @Tags         catalogs
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StatusesResponse
// @Router       /api/statuses [get]
func Statuses(c *fiber.Ctx) error {
	return c.JSON(dto.StatusesResponse{Orders: entity.OrderStatuses, Transfers: entity.TransferStatuses})
}

// TransactionTypes godoc
// @Summary      Tipos de transacción de inventario
// @Tags         catalogs
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CatalogResponse
// @Router       /api/transaction-types [get]
func TransactionTypes(c *fiber.Ctx) error {
	return c.JSON(dto.CatalogResponse{Items: entity.TransactionTypes})
}

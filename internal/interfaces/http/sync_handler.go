package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-sync/internal/application/dto"
	"github.com/jhoicas/inventario-sync/internal/application/usecase"
	"github.com/jhoicas/inventario-sync/internal/domain"
	"github.com/jhoicas/inventario-sync/internal/infrastructure/deliverect"
)

// SyncHandler maneja el disparo y el estado de la sincronización.
type SyncHandler struct {
	uc *usecase.SyncUseCase
}

// NewSyncHandler construye el handler.
func NewSyncHandler(uc *usecase.SyncUseCase) *SyncHandler {
	return &SyncHandler{uc: uc}
}

// Sync godoc
// @Summary      Sincronizar los ítems modificados hacia Deliverect
// @Tags         sync
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SyncRequest  false  "account_id opcional (sobreescribe la configuración)"
// @Success      200   {object}  dto.SyncResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Failure      504   {object}  dto.ErrorResponse
// @Router       /api/sync [post]
func (h *SyncHandler) Sync(c *fiber.Ctx) error {
	var in dto.SyncRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}

	out, err := h.uc.Sync(c.UserContext(), in.AccountID)
	if err != nil {
		return mapSyncError(c, err)
	}
	return c.JSON(out)
}

// Status godoc
// @Summary      Estado de la sincronización y del dirty set
// @Tags         sync
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SyncStatusResponse
// @Router       /api/sync/status [get]
func (h *SyncHandler) Status(c *fiber.Ctx) error {
	return c.JSON(h.uc.Status())
}

func mapSyncError(c *fiber.Ctx, err error) error {
	var upstream *deliverect.UpstreamError
	var transport *deliverect.TransportError
	switch {
	case errors.Is(err, domain.ErrMissingAccount):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "CONFIG", Message: "account id requerido"})
	case errors.Is(err, domain.ErrSyncInProgress):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SYNC_IN_PROGRESS", Message: "ya hay una sincronización en curso"})
	case errors.As(err, &upstream):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Code:    "UPSTREAM",
			Message: fmt.Sprintf("el servicio de catálogo respondió %d: %s", upstream.StatusCode, upstream.Body),
		})
	case errors.As(err, &transport):
		return c.Status(fiber.StatusGatewayTimeout).JSON(dto.ErrorResponse{Code: "TRANSPORT", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

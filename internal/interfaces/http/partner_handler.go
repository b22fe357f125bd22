package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rescate-api/internal/application/dto"
	"github.com/jhoicas/rescate-api/internal/application/partner"
)

// PartnerHandler directorio público de partners.
type PartnerHandler struct {
	uc *partner.PartnerUseCase
}

// NewPartnerHandler construye el handler.
func NewPartnerHandler(uc *partner.PartnerUseCase) *PartnerHandler {
	return &PartnerHandler{uc: uc}
}

// List godoc
// @Summary      Listar partners (público)
// @Tags         partners
// @Produce      json
// @Success      200  {array}  dto.PartnerSummary
// @Router       /api/partners [get]
func (h *PartnerHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	appbag "github.com/jhoicas/rescate-api/internal/application/bag"
	"github.com/jhoicas/rescate-api/internal/application/dto"
	"github.com/jhoicas/rescate-api/internal/domain"
)

// PublicHandler catálogo público de bolsas y reserva anónima.
type PublicHandler struct {
	bagUC     *appbag.BagUseCase
	reserveUC *appbag.ReserveUseCase
}

// NewPublicHandler construye el handler.
func NewPublicHandler(bagUC *appbag.BagUseCase, reserveUC *appbag.ReserveUseCase) *PublicHandler {
	return &PublicHandler{bagUC: bagUC, reserveUC: reserveUC}
}

// ListBags godoc
// @Summary      Listar bolsas activas (público, paginado)
// @Tags         public-bags
// @Produce      json
// @Param        page       query  int     false  "Página"   default(1)
// @Param        size       query  int     false  "Tamaño"   default(20)
// @Param        search     query  string  false  "Texto en nombre/descripción"
// @Param        min_price  query  number  false  "Precio mínimo"
// @Param        max_price  query  number  false  "Precio máximo"
// @Param        sort_by    query  string  false  "Columna"  default(id)
// @Param        sort_dir   query  string  false  "asc|desc" default(desc)
// @Success      200  {object}  dto.BagListResponse
// @Router       /api/public/bags [get]
func (h *PublicHandler) ListBags(c *fiber.Ctx) error {
	q := appbag.PublicQuery{
		ListQuery: appbag.ListQuery{
			Page:    c.QueryInt("page", 1),
			Size:    c.QueryInt("size", 20),
			SortBy:  c.Query("sort_by", "id"),
			SortDir: c.Query("sort_dir", "desc"),
			Search:  c.Query("search"),
		},
	}
	if s := c.Query("min_price"); s != "" {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "min_price inválido"})
		}
		q.MinPrice = &d
	}
	if s := c.Query("max_price"); s != "" {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "max_price inválido"})
		}
		q.MaxPrice = &d
	}
	out, err := h.bagUC.PublicList(c.Context(), q)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetBag godoc
// @Summary      Detalle de una bolsa (público)
// @Tags         public-bags
// @Produce      json
// @Param        id  path  int  true  "ID de la bolsa"
// @Success      200  {object}  dto.BagResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/public/bags/{id} [get]
func (h *PublicHandler) GetBag(c *fiber.Ctx) error {
	bagID, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	out, err := h.bagUC.GetByID(c.Context(), bagID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "bolsa no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Reserve godoc
// @Summary      Reservar una unidad de la bolsa (público)
// @Tags         public-bags
// @Produce      json
// @Param        id  path  int  true  "ID de la bolsa"
// @Success      200  {object}  dto.ReserveResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/public/bags/{id}/reserve [post]
func (h *PublicHandler) Reserve(c *fiber.Ctx) error {
	bagID, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	out, err := h.reserveUC.Reserve(c.Context(), bagID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "bolsa no encontrada"})
		case errors.Is(err, domain.ErrBagUnavailable):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "BAG_UNAVAILABLE", Message: "la bolsa no está disponible"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.JSON(out)
}

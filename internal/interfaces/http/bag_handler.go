package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	appbag "github.com/jhoicas/rescate-api/internal/application/bag"
	"github.com/jhoicas/rescate-api/internal/application/dto"
	"github.com/jhoicas/rescate-api/internal/domain"
)

// BagHandler endpoints de gestión de bolsas del partner (protegidos).
// El acceso a bolsas ajenas responde 404, nunca 403: la propiedad forma parte
// de la clave de búsqueda y la existencia de bolsas de otros no se revela.
type BagHandler struct {
	uc *appbag.BagUseCase
}

// NewBagHandler construye el handler.
func NewBagHandler(uc *appbag.BagUseCase) *BagHandler {
	return &BagHandler{uc: uc}
}

// List godoc
// @Summary      Listar bolsas del partner (paginado)
// @Tags         partner-bags
// @Security     Bearer
// @Produce      json
// @Param        page      query  int     false  "Página"        default(1)
// @Param        size      query  int     false  "Tamaño"        default(20)
// @Param        sort_by   query  string  false  "Columna"       default(id)
// @Param        sort_dir  query  string  false  "asc|desc"      default(desc)
// @Param        search    query  string  false  "Texto en nombre/descripción"
// @Success      200  {object}  dto.BagListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/partner/bags [get]
func (h *BagHandler) List(c *fiber.Ctx) error {
	identity, _ := GetIdentity(c)
	out, err := h.uc.ListByPartner(c.Context(), identity.ID, appbag.ListQuery{
		Page:    c.QueryInt("page", 1),
		Size:    c.QueryInt("size", 20),
		SortBy:  c.Query("sort_by", "id"),
		SortDir: c.Query("sort_dir", "desc"),
		Search:  c.Query("search"),
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Counts godoc
// @Summary      Conteos de bolsas por estado
// @Tags         partner-bags
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.BagCountsResponse
// @Router       /api/partner/bags/counts [get]
func (h *BagHandler) Counts(c *fiber.Ctx) error {
	identity, _ := GetIdentity(c)
	out, err := h.uc.Counts(c.Context(), identity.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear bolsa
// @Tags         partner-bags
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBagRequest  true  "Datos de la bolsa"
// @Success      201   {object}  dto.BagResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/partner/bags [post]
func (h *BagHandler) Create(c *fiber.Ctx) error {
	identity, _ := GetIdentity(c)
	var in dto.CreateBagRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), identity.ID, in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "campos inválidos (name requerido, price/quantity >= 0, status y coordenadas válidos)"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar bolsa (patch de campos presentes)
// @Tags         partner-bags
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la bolsa"
// @Param        body  body  dto.UpdateBagRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.BagResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/partner/bags/{id} [put]
func (h *BagHandler) Update(c *fiber.Ctx) error {
	identity, _ := GetIdentity(c)
	bagID, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	var in dto.UpdateBagRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), identity.ID, bagID, in)
	if err != nil {
		return bagError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar bolsa
// @Tags         partner-bags
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la bolsa"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/partner/bags/{id} [delete]
func (h *BagHandler) Delete(c *fiber.Ctx) error {
	identity, _ := GetIdentity(c)
	bagID, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	if err := h.uc.Delete(c.Context(), identity.ID, bagID); err != nil {
		return bagError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// SetStatus godoc
// @Summary      Cambiar estado de la bolsa
// @Tags         partner-bags
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la bolsa"
// @Param        body  body  object{status=string}  true  "active | sold_out | archived"
// @Success      200   {object}  map[string]bool
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/partner/bags/{id}/status [patch]
func (h *BagHandler) SetStatus(c *fiber.Ctx) error {
	identity, _ := GetIdentity(c)
	bagID, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	var in struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.SetStatus(c.Context(), identity.ID, bagID, in.Status); err != nil {
		return bagError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func parseID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

func bagError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "bolsa no encontrada"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "campos inválidos"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

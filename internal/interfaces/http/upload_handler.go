package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rescate-api/internal/application/dto"
)

// blobStore contrato mínimo del almacenamiento de imágenes (lo implementa blob.LocalStore).
type blobStore interface {
	Save(originalName string, data []byte) (url, path string, err error)
}

// UploadHandler subida de imágenes (thumbnails de partners y bolsas). Protegido: solo partners.
type UploadHandler struct {
	store blobStore
}

// NewUploadHandler construye el handler.
func NewUploadHandler(store blobStore) *UploadHandler {
	return &UploadHandler{store: store}
}

// Image godoc
// @Summary      Subir imagen
// @Tags         upload
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Imagen"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/upload/image [post]
func (h *UploadHandler) Image(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "campo 'file' requerido"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer el archivo"})
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer el archivo"})
	}
	url, path, err := h.store.Save(fileHeader.Filename, data)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"url": url, "path": path})
}

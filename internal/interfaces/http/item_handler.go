package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/neuhauss/example-gemini/internal/application/dto"
	"github.com/neuhauss/example-gemini/internal/application/usecase"
)

// ItemHandler maneja las peticiones HTTP sobre ítems del inventario.
type ItemHandler struct {
	uc *usecase.ItemUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *usecase.ItemUseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// List godoc
// @Summary      Listar ítems
// @Description  Filtra por término (nombre o descripción, sin distinguir mayúsculas) y categoría exacta.
// @Tags         items
// @Produce      json
// @Param        search    query  string  false  "Término de búsqueda"
// @Param        category  query  string  false  "Categoría o 'all'"  default(all)
// @Success      200  {object}  dto.ItemListResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.uc.List(c.Query("search"), c.Query("category")))
}

// Create godoc
// @Summary      Crear ítem
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ItemRequest  true  "Datos del ítem"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.ItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener ítem por ID
// @Tags         items
// @Produce      json
// @Param        id   path  string  true  "ID del ítem"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(pathID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar ítem
// @Description  Reemplaza todos los campos editables; id y fecha de alta no cambian.
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del ítem"
// @Param        body  body  dto.ItemRequest  true  "Datos del ítem"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.ItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), pathID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RequestDelete godoc
// @Summary      Solicitar borrado
// @Description  Primer paso del borrado: devuelve un token de un solo uso que confirma DELETE /api/items/{id}.
// @Tags         items
// @Produce      json
// @Param        id   path  string  true  "ID del ítem"
// @Success      201  {object}  dto.DeleteTicketResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/delete-request [post]
func (h *ItemHandler) RequestDelete(c *fiber.Ctx) error {
	out, err := h.uc.RequestDelete(pathID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ConfirmDelete godoc
// @Summary      Confirmar borrado
// @Tags         items
// @Param        id     path   string  true  "ID del ítem"
// @Param        token  query  string  true  "Token de confirmación"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      410  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) ConfirmDelete(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "token de confirmación requerido", Field: "token",
		})
	}
	if err := h.uc.ConfirmDelete(c.Context(), pathID(c), token); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Export godoc
// @Summary      Exportar colección
// @Description  Devuelve el blob persistido (arreglo JSON) tal como se guarda.
// @Tags         items
// @Produce      json
// @Success      200
// @Router       /api/items/export [get]
func (h *ItemHandler) Export(c *fiber.Ctx) error {
	raw, err := h.uc.Export()
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="inventory_items.json"`)
	return c.SendString(raw)
}

// Categories godoc
// @Summary      Categorías sugeridas
// @Tags         items
// @Produce      json
// @Success      200  {object}  dto.CategoriesResponse
// @Router       /api/categories [get]
func (h *ItemHandler) Categories(c *fiber.Ctx) error {
	return c.JSON(h.uc.Categories())
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/neuhauss/example-gemini/internal/application/dto"
	"github.com/neuhauss/example-gemini/internal/application/usecase"
)

// DraftHandler maneja el formulario de alta/edición (borradores en sesión).
type DraftHandler struct {
	uc *usecase.DraftUseCase
}

// NewDraftHandler construye el handler.
func NewDraftHandler(uc *usecase.DraftUseCase) *DraftHandler {
	return &DraftHandler{uc: uc}
}

// Open godoc
// @Summary      Abrir formulario
// @Description  Sin item_id abre un alta con valores por defecto; con item_id, la edición de ese ítem.
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpenDraftRequest  false  "Ítem a editar"
// @Success      201   {object}  dto.DraftResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/drafts [post]
func (h *DraftHandler) Open(c *fiber.Ctx) error {
	var in dto.OpenDraftRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.uc.Open(in.ItemID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Estado del formulario
// @Tags         drafts
// @Produce      json
// @Param        id   path  string  true  "ID del formulario"
// @Success      200  {object}  dto.DraftResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drafts/{id} [get]
func (h *DraftHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(pathID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Edit godoc
// @Summary      Editar formulario
// @Description  Reemplaza los campos. Cambiar el nombre invalida la sugerencia de IA en curso.
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del formulario"
// @Param        body  body  dto.ItemRequest  true  "Campos"
// @Success      200   {object}  dto.DraftResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/drafts/{id} [put]
func (h *DraftHandler) Edit(c *fiber.Ctx) error {
	var in dto.ItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Edit(pathID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Enrich godoc
// @Summary      Sugerir datos con IA
// @Description  Pide categoría, valor y descripción para el nombre actual. Si no hay sugerencia, applied=false.
// @Tags         drafts
// @Produce      json
// @Param        id   path  string  true  "ID del formulario"
// @Success      200  {object}  dto.DraftEnrichResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/enrich [post]
func (h *DraftHandler) Enrich(c *fiber.Ctx) error {
	out, err := h.uc.Enrich(c.Context(), pathID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Submit godoc
// @Summary      Guardar formulario
// @Tags         drafts
// @Produce      json
// @Param        id   path  string  true  "ID del formulario"
// @Success      200  {object}  dto.ItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/submit [post]
func (h *DraftHandler) Submit(c *fiber.Ctx) error {
	out, err := h.uc.Submit(c.Context(), pathID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Discard godoc
// @Summary      Descartar formulario
// @Tags         drafts
// @Param        id   path  string  true  "ID del formulario"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drafts/{id} [delete]
func (h *DraftHandler) Discard(c *fiber.Ctx) error {
	if err := h.uc.Discard(pathID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

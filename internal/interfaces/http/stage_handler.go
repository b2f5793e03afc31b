package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pipeline-crm/internal/application/dto"
	"github.com/jhoicas/pipeline-crm/internal/application/pipeline"
)

// StageHandler administración de etapas del embudo (solo admin).
type StageHandler struct {
	uc *pipeline.RegistryUseCase
}

// NewStageHandler construye el handler.
func NewStageHandler(uc *pipeline.RegistryUseCase) *StageHandler {
	return &StageHandler{uc: uc}
}

// List godoc
// @Summary      Listar etapas en orden
// @Tags         pipeline-stages
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StageResponse
// @Router       /api/pipeline-stages [get]
func (h *StageHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(pipeline.ToStageResponses(list))
}

// Create godoc
// @Summary      Crear etapa al final del embudo
// @Tags         pipeline-stages
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStageRequest  true  "name"
// @Success      201   {object}  dto.StageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pipeline-stages [post]
func (h *StageHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStageRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	st, err := h.uc.Create(c.UserContext(), in.Name)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(pipeline.ToStageResponse(st))
}

// Rename godoc
// @Summary      Renombrar etapa
// @Tags         pipeline-stages
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la etapa"
// @Param        body  body  dto.RenameStageRequest  true  "name"
// @Success      200   {object}  dto.StageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/pipeline-stages/{id} [put]
func (h *StageHandler) Rename(c *fiber.Ctx) error {
	var in dto.RenameStageRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	st, err := h.uc.Rename(c.UserContext(), c.Params("id"), in.Name)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(pipeline.ToStageResponse(st))
}

// SetDefault godoc
// @Summary      Marcar etapa por defecto
// @Tags         pipeline-stages
// @Security     Bearer
// @Param        id   path  string  true  "ID de la etapa"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pipeline-stages/{id}/default [post]
func (h *StageHandler) SetDefault(c *fiber.Ctx) error {
	if err := h.uc.SetDefault(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Reorder godoc
// @Summary      Reordenar todas las etapas
// @Tags         pipeline-stages
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReorderStagesRequest  true  "ids en el nuevo orden"
// @Success      200   {array}  dto.StageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pipeline-stages/order [put]
func (h *StageHandler) Reorder(c *fiber.Ctx) error {
	var in dto.ReorderStagesRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	list, err := h.uc.Reorder(c.UserContext(), in.IDs)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(pipeline.ToStageResponses(list))
}

// Delete godoc
// @Summary      Eliminar etapa sin clientes
// @Tags         pipeline-stages
// @Security     Bearer
// @Param        id   path  string  true  "ID de la etapa"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "IN_USE o DEFAULT_STAGE"
// @Router       /api/pipeline-stages/{id} [delete]
func (h *StageHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), actorID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pipeline-crm/internal/application/crm"
	"github.com/jhoicas/pipeline-crm/internal/application/dto"
	"github.com/jhoicas/pipeline-crm/internal/application/pipeline"
)

// CustomerHandler clientes y sus acciones de embudo (mover de etapa, asignar, historial).
type CustomerHandler struct {
	customers   *crm.CustomerUseCase
	transitions *pipeline.TransitionService
	registry    *pipeline.RegistryUseCase
	history     *pipeline.HistoryReader
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(
	customers *crm.CustomerUseCase,
	transitions *pipeline.TransitionService,
	registry *pipeline.RegistryUseCase,
	history *pipeline.HistoryReader,
) *CustomerHandler {
	return &CustomerHandler{customers: customers, transitions: transitions, registry: registry, history: history}
}

// Create godoc
// @Summary      Crear cliente
// @Description  Sin pipeline_stage_id se usa la etapa por defecto. Solo admin puede fijar employee_id.
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCustomerRequest  true  "Datos del cliente"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.customers.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar clientes por pestaña
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        tab     query  string  false  "all | my | archived | slug de etapa"  default(all)
// @Param        search  query  string  false  "Nombre, email o teléfono"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.CustomerPage
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := bindQuery(c, &page); err != nil {
		return writeError(c, err)
	}
	out, err := h.customers.List(c.UserContext(), GetActor(c), c.Query("tab", crm.TabAll), c.Query("search"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Tabs godoc
// @Summary      Pestañas del listado con contadores
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CustomerTabResponse
// @Router       /api/customers/tabs [get]
func (h *CustomerHandler) Tabs(c *fiber.Ctx) error {
	out, err := h.customers.Tabs(c.UserContext(), GetActor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener cliente
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	out, err := h.customers.Get(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar cliente
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del cliente"
// @Param        body  body  dto.UpdateCustomerRequest  true  "Datos del cliente"
// @Success      200   {object}  dto.CustomerResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCustomerRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.customers.Update(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Archivar cliente
// @Tags         customers
// @Security     Bearer
// @Param        id   path  string  true  "ID del cliente"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	if err := h.customers.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Restore godoc
// @Summary      Restaurar cliente archivado
// @Tags         customers
// @Security     Bearer
// @Param        id   path  string  true  "ID del cliente"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/restore [post]
func (h *CustomerHandler) Restore(c *fiber.Ctx) error {
	if err := h.customers.Restore(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ChangeStage godoc
// @Summary      Mover cliente a otra etapa
// @Description  Siempre agrega una entrada al historial, aunque la etapa sea la misma.
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del cliente"
// @Param        body  body  dto.ChangeStageRequest  true  "Etapa destino y notas"
// @Success      200   {object}  dto.CustomerResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/stage [post]
func (h *CustomerHandler) ChangeStage(c *fiber.Ctx) error {
	var in dto.ChangeStageRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	id := c.Params("id")
	if _, err := h.transitions.ChangeStage(c.UserContext(), id, in.PipelineStageID, in.Notes, actorID(c)); err != nil {
		return writeError(c, err)
	}
	out, err := h.customers.Get(c.UserContext(), GetActor(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SuggestStage godoc
// @Summary      Etapa sugerida para "Mover a etapa"
// @Description  Primera etapa posterior a la actual; 204 si el cliente ya está en la última.
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.StageResponse
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/stage/suggestion [get]
func (h *CustomerHandler) SuggestStage(c *fiber.Ctx) error {
	cust, err := h.customers.Get(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if cust.PipelineStageID == nil {
		st, err := h.registry.Default(c.UserContext())
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(pipeline.ToStageResponse(st))
	}
	next, err := h.registry.NextStage(c.UserContext(), *cust.PipelineStageID)
	if err != nil {
		return writeError(c, err)
	}
	if next == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(pipeline.ToStageResponse(next))
}

// ChangeEmployee godoc
// @Summary      Asignar o quitar empleado (admin)
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del cliente"
// @Param        body  body  dto.ChangeEmployeeRequest  true  "employee_id (null = quitar)"
// @Success      200   {object}  dto.CustomerResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/employee [put]
func (h *CustomerHandler) ChangeEmployee(c *fiber.Ctx) error {
	var in dto.ChangeEmployeeRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.customers.AssignEmployee(c.UserContext(), GetActor(c), c.Params("id"), in.EmployeeID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de etapas y asignaciones
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {array}  dto.HistoryEntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/history [get]
func (h *CustomerHandler) History(c *fiber.Ctx) error {
	out, err := h.history.Collect(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pipeline-crm/internal/application/dto"
	"github.com/jhoicas/pipeline-crm/internal/application/pipeline"
)

// BoardHandler tablero kanban de clientes por etapa.
type BoardHandler struct {
	uc *pipeline.BoardUseCase
}

// NewBoardHandler construye el handler.
func NewBoardHandler(uc *pipeline.BoardUseCase) *BoardHandler {
	return &BoardHandler{uc: uc}
}

// Board godoc
// @Summary      Columnas del tablero
// @Description  Los empleados solo ven sus clientes. Un admin puede filtrar con employee_id o mine=1.
// @Tags         board
// @Security     Bearer
// @Produce      json
// @Param        employee_id  query  string  false  "Filtrar por empleado (admin)"
// @Param        mine         query  bool    false  "Solo mis clientes"
// @Success      200  {array}  dto.BoardColumnResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/board [get]
func (h *BoardHandler) Board(c *fiber.Ctx) error {
	actor := GetActor(c)
	var employeeID *string
	switch {
	case !actor.IsAdmin() || c.QueryBool("mine"):
		employeeID = actor.IDPtr()
	case c.Query("employee_id") != "":
		id := c.Query("employee_id")
		employeeID = &id
	}
	out, err := h.uc.Board(c.UserContext(), employeeID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Move godoc
// @Summary      Soltar una tarjeta en otra columna
// @Tags         board
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BoardMoveRequest  true  "Movimiento"
// @Success      200   {object}  map[string]interface{}
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/board/moves [post]
func (h *BoardHandler) Move(c *fiber.Ctx) error {
	var in dto.BoardMoveRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	entry, err := h.uc.Move(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"id":                entry.ID,
		"customer_id":       entry.CustomerID,
		"pipeline_stage_id": entry.PipelineStageID,
		"created_at":        entry.CreatedAt,
	})
}

package pipeline

import (
	"context"

	"github.com/jhoicas/pipeline-crm/internal/application/dto"
	"github.com/jhoicas/pipeline-crm/internal/domain"
	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
	dompipeline "github.com/jhoicas/pipeline-crm/internal/domain/pipeline"
	"github.com/jhoicas/pipeline-crm/internal/domain/repository"
)

// BoardGroup grupo de arrastre compartido por todas las columnas del tablero de clientes.
const BoardGroup = "customers"

// BoardUseCase vista Kanban de clientes por etapa.
type BoardUseCase struct {
	stages      repository.PipelineStageRepository
	customers   repository.CustomerRepository
	transitions *TransitionService
}

// NewBoardUseCase construye el caso de uso.
func NewBoardUseCase(stages repository.PipelineStageRepository, customers repository.CustomerRepository, transitions *TransitionService) *BoardUseCase {
	return &BoardUseCase{stages: stages, customers: customers, transitions: transitions}
}

// Board arma las columnas con los clientes activos (sin archivados) en orden de inserción.
// Si employeeID no es nil, solo se incluyen sus clientes.
func (uc *BoardUseCase) Board(ctx context.Context, employeeID *string) ([]dto.BoardColumnResponse, error) {
	stages, err := uc.stages.List(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := uc.customers.List(ctx, repository.CustomerFilter{EmployeeID: employeeID})
	if err != nil {
		return nil, err
	}
	return toBoardResponse(dompipeline.BoardFor(BoardGroup, stages, customers)), nil
}

// Move aplica un arrastre: el par (cliente, etapa destino) se pasa tal cual a ChangeStage.
// La posición dentro de la columna no se persiste. Un empleado solo mueve las tarjetas que ve
// en su tablero (clientes asignados a él); el resto devuelve domain.ErrForbidden.
func (uc *BoardUseCase) Move(ctx context.Context, actor dto.Actor, req dto.BoardMoveRequest) (*entity.StageLog, error) {
	if actor.UserID != "" && !actor.IsAdmin() {
		c, err := uc.customers.GetByID(ctx, req.CustomerID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, domain.ErrNotFound
		}
		if c.EmployeeID == nil || *c.EmployeeID != actor.UserID {
			return nil, domain.ErrForbidden
		}
	}
	return uc.transitions.ChangeStage(ctx, req.CustomerID, req.StageID, nil, actor.IDPtr())
}

func toBoardResponse(cols []dompipeline.BoardColumn) []dto.BoardColumnResponse {
	out := make([]dto.BoardColumnResponse, 0, len(cols))
	for _, c := range cols {
		records := make([]dto.BoardCardResponse, 0, len(c.Records))
		for _, r := range c.Records {
			records = append(records, dto.BoardCardResponse{ID: r.ID, Title: r.Title})
		}
		out = append(out, dto.BoardColumnResponse{
			ID:        c.ID,
			Title:     c.Title,
			Group:     c.Group,
			ColumnKey: c.ColumnKey,
			Records:   records,
		})
	}
	return out
}

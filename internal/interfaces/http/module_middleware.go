package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pipeline-crm/internal/application/dto"
	"github.com/jhoicas/pipeline-crm/internal/domain"
	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
)

// defaultStageChecker es el contrato mínimo que necesita el middleware; lo cumple *pipeline.RegistryUseCase.
type defaultStageChecker interface {
	Default(ctx context.Context) (*entity.PipelineStage, error)
}

// RequirePipeline corta la petición si el embudo no tiene etapa por defecto
// (no se pueden crear clientes ni armar el tablero).
//
// Comportamiento:
//   - 409 Conflict → no hay etapas configuradas.
//   - 503 Service Unavailable → fallo de infraestructura al consultar la DB.
func RequirePipeline(checker defaultStageChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, err := checker.Default(c.UserContext())
		switch {
		case err == nil:
			return c.Next()
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Code:    "PIPELINE_NOT_CONFIGURED",
				Message: "cree al menos una etapa del embudo antes de continuar",
			})
		default:
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "PIPELINE_CHECK_FAILED",
				Message: "no se pudo verificar el embudo, intente más tarde",
			})
		}
	}
}

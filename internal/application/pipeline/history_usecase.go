package pipeline

import (
	"context"
	"iter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jhoicas/pipeline-crm/internal/application/dto"
	"github.com/jhoicas/pipeline-crm/internal/domain"
	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
	"github.com/jhoicas/pipeline-crm/internal/domain/repository"
)

// SystemUserName nombre mostrado cuando la entrada no tiene actor.
const SystemUserName = "System"

// HistoryReader lectura del historial de etapas de un cliente.
type HistoryReader struct {
	customers repository.CustomerRepository
	logs      repository.StageLogRepository
	now       func() time.Time
}

// NewHistoryReader construye el lector.
func NewHistoryReader(customers repository.CustomerRepository, logs repository.StageLogRepository) *HistoryReader {
	return &HistoryReader{customers: customers, logs: logs, now: time.Now}
}

// HistoryFor devuelve el historial del cliente de la entrada más antigua a la más reciente.
// No lee nada hasta que se recorre; cada recorrido vuelve a consultar.
// Si el cliente no existe se produce un único par (cero, domain.ErrNotFound).
func (h *HistoryReader) HistoryFor(ctx context.Context, customerID string) iter.Seq2[dto.HistoryEntryResponse, error] {
	return func(yield func(dto.HistoryEntryResponse, error) bool) {
		customer, err := h.customers.GetByID(ctx, customerID)
		if err == nil && customer == nil {
			err = domain.ErrNotFound
		}
		if err != nil {
			yield(dto.HistoryEntryResponse{}, err)
			return
		}
		list, err := h.logs.ListByCustomer(ctx, customerID)
		if err != nil {
			yield(dto.HistoryEntryResponse{}, err)
			return
		}
		now := h.now()
		for _, d := range list {
			if !yield(h.toEntry(d, now), nil) {
				return
			}
		}
	}
}

// Collect recorre el historial completo; corta en el primer error.
func (h *HistoryReader) Collect(ctx context.Context, customerID string) ([]dto.HistoryEntryResponse, error) {
	out := []dto.HistoryEntryResponse{}
	for e, err := range h.HistoryFor(ctx, customerID) {
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (h *HistoryReader) toEntry(d *entity.StageLogDetail, now time.Time) dto.HistoryEntryResponse {
	e := dto.HistoryEntryResponse{
		ID:         d.ID,
		User:       SystemUserName,
		StageID:    d.PipelineStageID,
		EmployeeID: d.EmployeeID,
		CreatedAt:  d.CreatedAt,
		CreatedAgo: humanize.RelTime(d.CreatedAt, now, "atrás", "después"),
	}
	if d.UserID != nil && d.UserName != nil {
		e.User = *d.UserName
	}
	if d.StageName != nil {
		e.StageName = *d.StageName
	}
	if d.EmployeeName != nil {
		e.EmployeeName = *d.EmployeeName
	}
	if d.Notes != nil {
		e.Notes = *d.Notes
	}
	return e
}

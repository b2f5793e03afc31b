package crm

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/pipeline-crm/internal/application/dto"
	"github.com/jhoicas/pipeline-crm/internal/application/ports"
	"github.com/jhoicas/pipeline-crm/internal/domain"
	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
	"github.com/jhoicas/pipeline-crm/internal/domain/repository"
	"github.com/microcosm-cc/bluemonday"
)

const dueDateLayout = "2006-01-02"

// TaskUseCase tareas de seguimiento. Los empleados solo ven y editan las suyas.
type TaskUseCase struct {
	tasks     repository.TaskRepository
	customers repository.CustomerRepository
	users     repository.UserRepository
	notifier  ports.Notifier
	strip     *bluemonday.Policy
}

// NewTaskUseCase construye el caso de uso.
func NewTaskUseCase(tasks repository.TaskRepository, customers repository.CustomerRepository, users repository.UserRepository, notifier ports.Notifier) *TaskUseCase {
	return &TaskUseCase{
		tasks:     tasks,
		customers: customers,
		users:     users,
		notifier:  notifier,
		strip:     bluemonday.StrictPolicy(),
	}
}

func parseDueDate(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	d, err := time.Parse(dueDateLayout, strings.TrimSpace(*s))
	if err != nil {
		return nil, fmt.Errorf("%w: due_date %q", domain.ErrInvalidInput, *s)
	}
	return &d, nil
}

// assignee resuelve el responsable: un empleado siempre se asigna a sí mismo.
func (uc *TaskUseCase) assignee(ctx context.Context, actor dto.Actor, userID *string) (*string, error) {
	if !actor.IsAdmin() && actor.UserID != "" {
		if userID != nil && *userID != actor.UserID {
			return nil, domain.ErrForbidden
		}
		return actor.IDPtr(), nil
	}
	if userID == nil {
		return nil, nil
	}
	u, err := uc.users.GetByID(ctx, *userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("%w: usuario", domain.ErrNotFound)
	}
	return userID, nil
}

func (uc *TaskUseCase) Create(ctx context.Context, actor dto.Actor, in dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	if strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%w: descripción requerida", domain.ErrInvalidInput)
	}
	c, err := uc.customers.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if c == nil || c.IsDeleted() {
		return nil, domain.ErrNotFound
	}
	due, err := parseDueDate(in.DueDate)
	if err != nil {
		return nil, err
	}
	userID, err := uc.assignee(ctx, actor, in.UserID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	task := &entity.Task{
		ID:          uuid.New().String(),
		CustomerID:  in.CustomerID,
		UserID:      userID,
		Description: in.Description,
		DueDate:     due,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return toTaskResponse(task), nil
}

// get carga la tarea y verifica que el actor pueda verla.
func (uc *TaskUseCase) get(ctx context.Context, actor dto.Actor, id string) (*entity.Task, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, domain.ErrNotFound
	}
	if !actor.IsAdmin() && actor.UserID != "" && (task.UserID == nil || *task.UserID != actor.UserID) {
		return nil, domain.ErrForbidden
	}
	return task, nil
}

func (uc *TaskUseCase) Get(ctx context.Context, actor dto.Actor, id string) (*dto.TaskResponse, error) {
	task, err := uc.get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toTaskResponse(task), nil
}

func (uc *TaskUseCase) Update(ctx context.Context, actor dto.Actor, id string, in dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	task, err := uc.get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	due, err := parseDueDate(in.DueDate)
	if err != nil {
		return nil, err
	}
	userID, err := uc.assignee(ctx, actor, in.UserID)
	if err != nil {
		return nil, err
	}
	task.UserID = userID
	task.Description = in.Description
	task.DueDate = due
	task.IsCompleted = in.IsCompleted
	task.UpdatedAt = time.Now().UTC()
	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return toTaskResponse(task), nil
}

// Complete marca la tarea como completada y avisa al actor.
func (uc *TaskUseCase) Complete(ctx context.Context, actor dto.Actor, id string) (*dto.TaskResponse, error) {
	task, err := uc.get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !task.IsCompleted {
		task.IsCompleted = true
		task.UpdatedAt = time.Now().UTC()
		if err := uc.tasks.Update(ctx, task); err != nil {
			return nil, err
		}
	}
	uc.notifier.Notify(ctx, ports.Notification{
		UserID: actor.IDPtr(), Level: ports.NotificationSuccess, Title: "Task marked as completed",
	})
	return toTaskResponse(task), nil
}

func (uc *TaskUseCase) Delete(ctx context.Context, actor dto.Actor, id string) error {
	if _, err := uc.get(ctx, actor, id); err != nil {
		return err
	}
	return uc.tasks.Delete(ctx, id)
}

// List tareas visibles para el actor; completed nil = todas.
func (uc *TaskUseCase) List(ctx context.Context, actor dto.Actor, completed *bool) ([]*dto.TaskResponse, error) {
	f := repository.TaskFilter{Completed: completed}
	if !actor.IsAdmin() {
		f.UserID = actor.IDPtr()
	}
	list, err := uc.tasks.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return toTaskResponses(list), nil
}

// ForCustomer tareas del cliente separadas en completadas y pendientes.
func (uc *TaskUseCase) ForCustomer(ctx context.Context, customerID string) (*dto.CustomerTasksResponse, error) {
	list, err := uc.tasks.List(ctx, repository.TaskFilter{CustomerID: &customerID})
	if err != nil {
		return nil, err
	}
	out := &dto.CustomerTasksResponse{Completed: []*dto.TaskResponse{}, Incomplete: []*dto.TaskResponse{}}
	for _, t := range list {
		if t.IsCompleted {
			out.Completed = append(out.Completed, toTaskResponse(t))
		} else {
			out.Incomplete = append(out.Incomplete, toTaskResponse(t))
		}
	}
	return out, nil
}

// Calendar eventos con vencimiento en [start, end]. El título es la descripción sin HTML.
func (uc *TaskUseCase) Calendar(ctx context.Context, actor dto.Actor, start, end time.Time) ([]dto.CalendarEventResponse, error) {
	f := repository.TaskFilter{DueFrom: &start, DueTo: &end}
	if !actor.IsAdmin() {
		f.UserID = actor.IDPtr()
	}
	list, err := uc.tasks.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CalendarEventResponse, 0, len(list))
	for _, t := range list {
		day := t.DueDate.Format(dueDateLayout)
		out = append(out, dto.CalendarEventResponse{
			ID:    t.ID,
			Title: uc.plainText(t.Description),
			Start: day,
			End:   day,
			URL:   "/api/tasks/" + t.ID,
		})
	}
	return out, nil
}

func (uc *TaskUseCase) plainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(uc.strip.Sanitize(s)))
}

func toTaskResponse(t *entity.Task) *dto.TaskResponse {
	return &dto.TaskResponse{
		ID:          t.ID,
		CustomerID:  t.CustomerID,
		UserID:      t.UserID,
		Description: t.Description,
		DueDate:     t.DueDate,
		IsCompleted: t.IsCompleted,
		CreatedAt:   t.CreatedAt,
	}
}

func toTaskResponses(list []*entity.Task) []*dto.TaskResponse {
	out := make([]*dto.TaskResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTaskResponse(t))
	}
	return out
}

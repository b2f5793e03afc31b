package dto

import "time"

// CreateTaskRequest body para POST /api/tasks. DueDate en formato YYYY-MM-DD.
type CreateTaskRequest struct {
	CustomerID  string  `json:"customer_id" validate:"required"`
	UserID      *string `json:"user_id,omitempty"`
	Description string  `json:"description" validate:"required,max=65535"`
	DueDate     *string `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateTaskRequest body para PUT /api/tasks/:id.
type UpdateTaskRequest struct {
	UserID      *string `json:"user_id,omitempty"`
	Description string  `json:"description" validate:"required,max=65535"`
	DueDate     *string `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	IsCompleted bool    `json:"is_completed"`
}

// TaskResponse tarea.
type TaskResponse struct {
	ID          string     `json:"id"`
	CustomerID  string     `json:"customer_id"`
	UserID      *string    `json:"user_id,omitempty"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	IsCompleted bool       `json:"is_completed"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CustomerTasksResponse tareas de un cliente separadas por estado.
type CustomerTasksResponse struct {
	Completed  []*TaskResponse `json:"completed"`
	Incomplete []*TaskResponse `json:"incomplete"`
}

// CalendarEventResponse evento del calendario de tareas.
type CalendarEventResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Start string `json:"start"`
	End   string `json:"end"`
	URL   string `json:"url"`
}

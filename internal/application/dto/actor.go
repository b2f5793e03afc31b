package dto

import "github.com/jhoicas/pipeline-crm/internal/domain/entity"

// Actor usuario que ejecuta la operación (extraído del JWT). UserID vacío = sistema.
type Actor struct {
	UserID string
	Role   string
}

// SystemActor actor para procesos sin usuario autenticado (seed, CLI).
var SystemActor = Actor{}

// IDPtr devuelve el UserID como puntero; nil para el sistema.
func (a Actor) IDPtr() *string {
	if a.UserID == "" {
		return nil
	}
	id := a.UserID
	return &id
}

// IsAdmin informa si el actor puede gestionar configuración y asignaciones.
func (a Actor) IsAdmin() bool {
	return a.Role == entity.RoleAdmin
}

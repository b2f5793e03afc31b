package entity

import "time"

// Invitation invitación pendiente para unirse al equipo como empleado.
type Invitation struct {
	ID        string
	Email     string
	CreatedAt time.Time
}

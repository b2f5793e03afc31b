package entity

import "time"

// LeadSource origen de un prospecto (web, referido, feria...).
type LeadSource struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Tag etiqueta libre para clientes.
type Tag struct {
	ID        string
	Name      string
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CustomField definición de un campo adicional de cliente (ej. "Fecha de nacimiento").
type CustomField struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

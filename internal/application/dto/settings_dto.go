package dto

// NameRequest body para crear/editar recursos de configuración con solo nombre.
type NameRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// TagRequest body para crear/editar etiquetas.
type TagRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Color string `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

// LeadSourceResponse origen de prospecto.
type LeadSourceResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TagResponse etiqueta.
type TagResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// CustomFieldResponse definición de campo personalizado.
type CustomFieldResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

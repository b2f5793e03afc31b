package dto

import "time"

// CustomFieldValueRequest valor de un campo personalizado.
type CustomFieldValueRequest struct {
	CustomFieldID string `json:"custom_field_id" validate:"required"`
	Value         string `json:"value" validate:"required"`
}

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	FirstName       string                    `json:"first_name" validate:"max=255"`
	LastName        string                    `json:"last_name" validate:"max=255"`
	Email           string                    `json:"email,omitempty" validate:"omitempty,email,max=255"`
	PhoneNumber     string                    `json:"phone_number,omitempty" validate:"max=255"`
	Description     string                    `json:"description,omitempty" validate:"max=65535"`
	LeadSourceID    *string                   `json:"lead_source_id,omitempty"`
	PipelineStageID *string                   `json:"pipeline_stage_id,omitempty"`
	EmployeeID      *string                   `json:"employee_id,omitempty"` // solo admin
	TagIDs          []string                  `json:"tag_ids,omitempty"`
	CustomFields    []CustomFieldValueRequest `json:"custom_fields,omitempty" validate:"dive"`
}

// UpdateCustomerRequest body para PUT /api/customers/:id. La etapa se cambia con /stage.
type UpdateCustomerRequest struct {
	FirstName    string                    `json:"first_name" validate:"max=255"`
	LastName     string                    `json:"last_name" validate:"max=255"`
	Email        string                    `json:"email,omitempty" validate:"omitempty,email,max=255"`
	PhoneNumber  string                    `json:"phone_number,omitempty" validate:"max=255"`
	Description  string                    `json:"description,omitempty" validate:"max=65535"`
	LeadSourceID *string                   `json:"lead_source_id,omitempty"`
	TagIDs       []string                  `json:"tag_ids,omitempty"`
	CustomFields []CustomFieldValueRequest `json:"custom_fields,omitempty" validate:"dive"`
}

// CustomFieldValueResponse valor de campo personalizado.
type CustomFieldValueResponse struct {
	CustomFieldID string `json:"custom_field_id"`
	Name          string `json:"name"`
	Value         string `json:"value"`
}

// CustomerResponse cliente en respuestas. EmployeeID solo se expone a administradores.
type CustomerResponse struct {
	ID              string                     `json:"id"`
	FirstName       string                     `json:"first_name"`
	LastName        string                     `json:"last_name"`
	Email           string                     `json:"email,omitempty"`
	PhoneNumber     string                     `json:"phone_number,omitempty"`
	Description     string                     `json:"description,omitempty"`
	LeadSourceID    *string                    `json:"lead_source_id,omitempty"`
	PipelineStageID *string                    `json:"pipeline_stage_id,omitempty"`
	EmployeeID      *string                    `json:"employee_id,omitempty"`
	Tags            []TagResponse              `json:"tags,omitempty"`
	CustomFields    []CustomFieldValueResponse `json:"custom_fields,omitempty"`
	CreatedAt       time.Time                  `json:"created_at"`
	UpdatedAt       time.Time                  `json:"updated_at"`
	DeletedAt       *time.Time                 `json:"deleted_at,omitempty"`
}

// CustomerTabResponse pestaña del listado de clientes con su contador.
type CustomerTabResponse struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

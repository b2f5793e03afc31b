package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pipeline-crm/internal/application/crm"
	"github.com/jhoicas/pipeline-crm/internal/application/dto"
)

// SettingsHandler catálogos de configuración: orígenes, etiquetas y campos personalizados.
type SettingsHandler struct {
	uc *crm.SettingsUseCase
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(uc *crm.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// ListLeadSources godoc
// @Summary      Listar orígenes de lead
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LeadSourceResponse
// @Router       /api/settings/lead-sources [get]
func (h *SettingsHandler) ListLeadSources(c *fiber.Ctx) error {
	out, err := h.uc.ListLeadSources(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateLeadSource godoc
// @Summary      Crear origen de lead
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.NameRequest  true  "name"
// @Success      201   {object}  dto.LeadSourceResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/settings/lead-sources [post]
func (h *SettingsHandler) CreateLeadSource(c *fiber.Ctx) error {
	var in dto.NameRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CreateLeadSource(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateLeadSource godoc
// @Summary      Renombrar origen de lead
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID"
// @Param        body  body  dto.NameRequest  true  "name"
// @Success      200   {object}  dto.LeadSourceResponse
// @Router       /api/settings/lead-sources/{id} [put]
func (h *SettingsHandler) UpdateLeadSource(c *fiber.Ctx) error {
	var in dto.NameRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdateLeadSource(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteLeadSource godoc
// @Summary      Eliminar origen de lead
// @Tags         settings
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/settings/lead-sources/{id} [delete]
func (h *SettingsHandler) DeleteLeadSource(c *fiber.Ctx) error {
	if err := h.uc.DeleteLeadSource(c.UserContext(), actorID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListTags godoc
// @Summary      Listar etiquetas
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TagResponse
// @Router       /api/settings/tags [get]
func (h *SettingsHandler) ListTags(c *fiber.Ctx) error {
	out, err := h.uc.ListTags(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateTag godoc
// @Summary      Crear etiqueta
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TagRequest  true  "Etiqueta"
// @Success      201   {object}  dto.TagResponse
// @Router       /api/settings/tags [post]
func (h *SettingsHandler) CreateTag(c *fiber.Ctx) error {
	var in dto.TagRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CreateTag(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateTag godoc
// @Summary      Actualizar etiqueta
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID"
// @Param        body  body  dto.TagRequest  true  "Etiqueta"
// @Success      200   {object}  dto.TagResponse
// @Router       /api/settings/tags/{id} [put]
func (h *SettingsHandler) UpdateTag(c *fiber.Ctx) error {
	var in dto.TagRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdateTag(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteTag godoc
// @Summary      Eliminar etiqueta
// @Tags         settings
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Router       /api/settings/tags/{id} [delete]
func (h *SettingsHandler) DeleteTag(c *fiber.Ctx) error {
	if err := h.uc.DeleteTag(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListCustomFields godoc
// @Summary      Listar campos personalizados
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CustomFieldResponse
// @Router       /api/settings/custom-fields [get]
func (h *SettingsHandler) ListCustomFields(c *fiber.Ctx) error {
	out, err := h.uc.ListCustomFields(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateCustomField godoc
// @Summary      Crear campo personalizado
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.NameRequest  true  "name"
// @Success      201   {object}  dto.CustomFieldResponse
// @Router       /api/settings/custom-fields [post]
func (h *SettingsHandler) CreateCustomField(c *fiber.Ctx) error {
	var in dto.NameRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CreateCustomField(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateCustomField godoc
// @Summary      Renombrar campo personalizado
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID"
// @Param        body  body  dto.NameRequest  true  "name"
// @Success      200   {object}  dto.CustomFieldResponse
// @Router       /api/settings/custom-fields/{id} [put]
func (h *SettingsHandler) UpdateCustomField(c *fiber.Ctx) error {
	var in dto.NameRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdateCustomField(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteCustomField godoc
// @Summary      Eliminar campo personalizado
// @Tags         settings
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Router       /api/settings/custom-fields/{id} [delete]
func (h *SettingsHandler) DeleteCustomField(c *fiber.Ctx) error {
	if err := h.uc.DeleteCustomField(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pipeline-crm/internal/application/dto"
	"github.com/jhoicas/pipeline-crm/internal/application/ports"
	"github.com/jhoicas/pipeline-crm/internal/infrastructure/notify"
)

type notificationDrainer interface {
	Drain(userID string) []ports.Notification
}

// NotificationHandler entrega los avisos pendientes (flash) del usuario.
type NotificationHandler struct {
	store notificationDrainer
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(store notificationDrainer) *NotificationHandler {
	return &NotificationHandler{store: store}
}

// Drain godoc
// @Summary      Leer y vaciar avisos pendientes
// @Description  Los admin reciben además los avisos del sistema.
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.NotificationResponse
// @Router       /api/notifications [get]
func (h *NotificationHandler) Drain(c *fiber.Ctx) error {
	actor := GetActor(c)
	pending := h.store.Drain(actor.UserID)
	if actor.IsAdmin() {
		pending = append(pending, h.store.Drain(notify.SystemQueue)...)
	}
	out := make([]dto.NotificationResponse, 0, len(pending))
	for _, n := range pending {
		out = append(out, dto.NotificationResponse{Level: n.Level, Title: n.Title, Body: n.Body})
	}
	return c.JSON(out)
}

package ports

import "context"

// Niveles de notificación visibles para el usuario.
const (
	NotificationSuccess = "success"
	NotificationWarning = "warning"
	NotificationDanger  = "danger"
)

// Notification mensaje breve que se muestra al usuario después de una operación.
// UserID nil = notificación del sistema (sin actor autenticado).
type Notification struct {
	UserID *string
	Level  string
	Title  string
	Body   string
}

// Notifier puerto de salida para avisos al usuario (flash messages).
// Un fallo al notificar nunca debe deshacer la operación que lo originó.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

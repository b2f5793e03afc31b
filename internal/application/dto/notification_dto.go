package dto

// NotificationResponse aviso pendiente para el usuario.
type NotificationResponse struct {
	Level string `json:"level"`
	Title string `json:"title"`
	Body  string `json:"body,omitempty"`
}

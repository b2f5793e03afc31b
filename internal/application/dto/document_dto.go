package dto

import "time"

// DocumentResponse adjunto de un cliente.
type DocumentResponse struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	FileName   string    `json:"file_name"`
	Comments   string    `json:"comments,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

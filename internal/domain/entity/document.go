package entity

import "time"

// Document adjunto de un cliente. FilePath es la ruta relativa dentro del almacenamiento.
type Document struct {
	ID         string
	CustomerID string
	FilePath   string
	Comments   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

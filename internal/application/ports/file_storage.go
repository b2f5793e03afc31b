package ports

import (
	"context"
	"io"
)

// FileStorage puerto para guardar los adjuntos de clientes.
// Las rutas son relativas a la raíz del almacenamiento.
type FileStorage interface {
	Save(ctx context.Context, path string, r io.Reader) error
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	// Delete no falla si el archivo ya no existe.
	Delete(ctx context.Context, path string) error
}

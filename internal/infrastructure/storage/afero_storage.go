// Package storage adaptador de almacenamiento de adjuntos sobre afero.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/spf13/afero"
)

// FileStorage guarda archivos bajo una raíz de un afero.Fs.
// Con afero.NewOsFs en producción y afero.NewMemMapFs en pruebas.
type FileStorage struct {
	fs afero.Fs
}

// NewFileStorage crea el almacenamiento con root como raíz (se crea si no existe).
func NewFileStorage(base afero.Fs, root string) (*FileStorage, error) {
	if root != "" {
		if err := base.MkdirAll(root, 0o755); err != nil {
			return nil, fmt.Errorf("crear raíz de almacenamiento: %w", err)
		}
		base = afero.NewBasePathFs(base, root)
	}
	return &FileStorage{fs: base}, nil
}

// NewOSFileStorage almacenamiento en disco bajo root.
func NewOSFileStorage(root string) (*FileStorage, error) {
	return NewFileStorage(afero.NewOsFs(), root)
}

func clean(p string) (string, error) {
	c := path.Clean("/" + strings.TrimSpace(p))
	if c == "/" {
		return "", errors.New("ruta vacía")
	}
	return c, nil
}

// Save escribe el contenido completo de r en p, creando los directorios intermedios.
func (s *FileStorage) Save(_ context.Context, p string, r io.Reader) error {
	p, err := clean(p)
	if err != nil {
		return err
	}
	if err := s.fs.MkdirAll(path.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := s.fs.Create(p)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = s.fs.Remove(p)
		return err
	}
	return f.Close()
}

// Open abre p para lectura.
func (s *FileStorage) Open(_ context.Context, p string) (io.ReadCloser, error) {
	p, err := clean(p)
	if err != nil {
		return nil, err
	}
	return s.fs.Open(p)
}

// Delete borra p; un archivo inexistente no es error.
func (s *FileStorage) Delete(_ context.Context, p string) error {
	p, err := clean(p)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Exists informa si p existe.
func (s *FileStorage) Exists(p string) (bool, error) {
	p, err := clean(p)
	if err != nil {
		return false, err
	}
	return afero.Exists(s.fs, p)
}

package crm

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/pipeline-crm/internal/application/dto"
	"github.com/jhoicas/pipeline-crm/internal/application/ports"
	"github.com/jhoicas/pipeline-crm/internal/domain"
	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
	"github.com/jhoicas/pipeline-crm/internal/domain/repository"
)

// DocumentUseCase adjuntos de clientes. El archivo vive en FileStorage y la fila en la BD.
type DocumentUseCase struct {
	docs      repository.DocumentRepository
	customers repository.CustomerRepository
	storage   ports.FileStorage
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(docs repository.DocumentRepository, customers repository.CustomerRepository, storage ports.FileStorage) *DocumentUseCase {
	return &DocumentUseCase{docs: docs, customers: customers, storage: storage}
}

// Upload guarda el archivo en customers/<cliente>/<documento>/<nombre> y registra la fila.
// Si falla la inserción se borra el archivo recién escrito.
func (uc *DocumentUseCase) Upload(ctx context.Context, customerID, fileName, comments string, r io.Reader) (*dto.DocumentResponse, error) {
	name := path.Base(strings.ReplaceAll(strings.TrimSpace(fileName), "\\", "/"))
	if name == "" || name == "." || name == "/" || name == ".." {
		return nil, fmt.Errorf("%w: nombre de archivo", domain.ErrInvalidInput)
	}
	c, err := uc.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if c == nil || c.IsDeleted() {
		return nil, domain.ErrNotFound
	}
	now := time.Now().UTC()
	doc := &entity.Document{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		Comments:   comments,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	doc.FilePath = path.Join("customers", customerID, doc.ID, name)
	if err := uc.storage.Save(ctx, doc.FilePath, r); err != nil {
		return nil, fmt.Errorf("guardar archivo: %w", err)
	}
	if err := uc.docs.Create(ctx, doc); err != nil {
		_ = uc.storage.Delete(ctx, doc.FilePath)
		return nil, err
	}
	return toDocumentResponse(doc), nil
}

// List adjuntos del cliente.
func (uc *DocumentUseCase) List(ctx context.Context, customerID string) ([]*dto.DocumentResponse, error) {
	list, err := uc.docs.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.DocumentResponse, 0, len(list))
	for _, d := range list {
		out = append(out, toDocumentResponse(d))
	}
	return out, nil
}

// Open abre el archivo para descarga. El llamador cierra el reader.
func (uc *DocumentUseCase) Open(ctx context.Context, id string) (io.ReadCloser, *dto.DocumentResponse, error) {
	doc, err := uc.docs.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if doc == nil {
		return nil, nil, domain.ErrNotFound
	}
	rc, err := uc.storage.Open(ctx, doc.FilePath)
	if err != nil {
		return nil, nil, err
	}
	return rc, toDocumentResponse(doc), nil
}

// Delete borra la fila y después el archivo.
func (uc *DocumentUseCase) Delete(ctx context.Context, id string) error {
	doc, err := uc.docs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if doc == nil {
		return domain.ErrNotFound
	}
	if err := uc.docs.Delete(ctx, id); err != nil {
		return err
	}
	return uc.storage.Delete(ctx, doc.FilePath)
}

func toDocumentResponse(d *entity.Document) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		ID:         d.ID,
		CustomerID: d.CustomerID,
		FileName:   path.Base(d.FilePath),
		Comments:   d.Comments,
		CreatedAt:  d.CreatedAt,
	}
}

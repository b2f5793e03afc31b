package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	// ErrInUse: el recurso está referenciado por clientes y no puede eliminarse.
	ErrInUse = errors.New("recurso en uso")
	// ErrDefaultStage: la etapa por defecto no puede eliminarse mientras existan otras.
	ErrDefaultStage = errors.New("la etapa por defecto no puede eliminarse")
)

package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound       = errors.New("ítem no encontrado")
	ErrValidation     = errors.New("entrada inválida")
	ErrDuplicatePLU   = errors.New("PLU duplicado en el catálogo")
	ErrMissingAccount = errors.New("account id requerido")
	ErrSyncInProgress = errors.New("sincronización en curso")
	ErrUnauthorized   = errors.New("no autorizado")
)

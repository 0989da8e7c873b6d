package models

import "errors"

// Sentinel errors for the intake pipeline. Handlers map these to HTTP
// statuses and user-visible messages; collaborators return them wrapped.
var (
	ErrOfferNotFound        = errors.New("oferta no encontrada")
	ErrOfferInactive        = errors.New("oferta no está activa")
	ErrOfferExpired         = errors.New("oferta ha expirado")
	ErrRateLimitExceeded    = errors.New("límite de postulaciones alcanzado")
	ErrDuplicateApplication = errors.New("postulación duplicada")
	ErrApplicationNotFound  = errors.New("postulación no encontrada")
	ErrEmployerNotFound     = errors.New("empleador no encontrado")
	ErrEmployerExists       = errors.New("empleador ya registrado")
	ErrObjectExists         = errors.New("objeto ya existe en storage")
	ErrObjectNotFound       = errors.New("objeto no encontrado en storage")
	ErrAIResponseMalformed  = errors.New("respuesta del modelo no es JSON válido")
	ErrCVUnreadable         = errors.New("el CV parece ser una imagen escaneada o no contiene texto legible")
)

// ValidationError describes a rejected input. The message is safe to show
// to the end user.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a validation error for a field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

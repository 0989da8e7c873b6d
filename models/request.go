package models

import "time"

// ErrorResponse represents an API error response
// @Description Standard error response
type ErrorResponse struct {
	Error   string `json:"error" example:"Archivo CV es requerido"`
	Code    string `json:"code,omitempty" example:"RATE_LIMIT_EXCEEDED"`
	Details string `json:"details,omitempty"`
}

// Error codes surfaced to clients so they can render distinct messaging.
const (
	CodeRateLimitExceeded    = "RATE_LIMIT_EXCEEDED"
	CodeOfferInactive        = "OFERTA_INACTIVA"
	CodeOfferExpired         = "OFERTA_EXPIRADA"
	CodeDuplicateApplication = "POSTULACION_DUPLICADA"
)

// ApplicationResponse is returned on successful intake
// @Description Successful application submission
type ApplicationResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Message   string    `json:"message" example:"Postulación enviada exitosamente"`
}

// ParseCVRequest represents a parser invocation
// @Description CV parser invocation payload
type ParseCVRequest struct {
	ApplicationID string `json:"applicationId" binding:"required"`
	CVStorageKey  string `json:"cvStorageKey" binding:"required"`
}

// ParseCVData is the success payload of a parser invocation
type ParseCVData struct {
	ApplicationID   string      `json:"applicationId"`
	Metadata        *CVMetadata `json:"metadata"`
	ConfidenceScore float64     `json:"confidenceScore"`
	ExtractedChars  int         `json:"extractedChars"`
}

// ParseCVResponse wraps the parser outcome. Stage names the pipeline step
// that failed so an automated trigger can decide whether to retry.
type ParseCVResponse struct {
	Success bool         `json:"success"`
	Data    *ParseCVData `json:"data,omitempty"`
	Error   string       `json:"error,omitempty"`
	Stage   string       `json:"stage,omitempty" example:"extraction"`
}

// CreateOfferRequest represents an offer creation request
// @Description New job offer data
type CreateOfferRequest struct {
	Title       string `json:"titulo" binding:"required"`
	Description string `json:"descripcion" binding:"required"`
	Company     string `json:"empresa" binding:"required"`
	Jornada     string `json:"tipo_jornada" binding:"required"`
	Category    string `json:"categoria"`
	Comuna      string `json:"comuna" binding:"required"`
	ExpiresAt   string `json:"expires_at" binding:"required" example:"2026-10-01"`
}

// ToggleOfferResponse reports the new active state of an offer
type ToggleOfferResponse struct {
	Success bool   `json:"success"`
	Active  bool   `json:"activa"`
	Message string `json:"message"`
}

// CVDownloadRequest asks for a signed download link for a stored CV
type CVDownloadRequest struct {
	CVStorageKey string `json:"cv_url" binding:"required"`
}

// CVDownloadResponse carries a time-limited signed URL
type CVDownloadResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
}

// RegisterRequest represents employer registration
// @Description Employer registration request
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"nombre" binding:"required"`
	Company  string `json:"empresa" binding:"required"`
}

// LoginRequest represents employer login
// @Description Employer login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents authentication response with JWT token
type AuthResponse struct {
	Token    string    `json:"token"`
	Employer *Employer `json:"empleador"`
	Message  string    `json:"message,omitempty"`
}

// CleanupRequest controls the retention sweep
type CleanupRequest struct {
	Preview bool `json:"preview"`
	Days    int  `json:"dias,omitempty"`
}

// CleanupResponse reports the outcome of a retention sweep
type CleanupResponse struct {
	Preview             bool     `json:"preview"`
	CutoffDate          string   `json:"cutoff_date"`
	ApplicationsDeleted int      `json:"postulaciones_eliminadas"`
	FilesDeleted        int      `json:"archivos_eliminados"`
	FilesFailed         int      `json:"archivos_fallidos"`
	Errors              []string `json:"errores,omitempty"`
}

// HealthResponse represents health check response
// @Description Server health status
type HealthResponse struct {
	Status    string `json:"status" example:"healthy"`
	Version   string `json:"version" example:"1.0.0"`
	Timestamp string `json:"timestamp"`
}

package handlers

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/portalempleos/backend/models"
	"github.com/portalempleos/backend/ratelimit"
	"github.com/portalempleos/backend/storage"
	"github.com/portalempleos/backend/validation"
)

// IntakeStore is the datastore surface the intake pipeline needs
type IntakeStore interface {
	GetOffer(ctx context.Context, id string) (*models.Offer, error)
	HasApplication(ctx context.Context, offerID, email string) (bool, error)
	CreateApplication(ctx context.Context, app *models.Application) error
	UpdateApplicationCVRef(ctx context.Context, id, cvRef string) error
	DeleteApplication(ctx context.Context, id string) error
}

// ObjectUploader writes and removes stored CV objects
type ObjectUploader interface {
	Upload(ctx context.Context, key string, content []byte, contentType string) error
	Delete(ctx context.Context, key string) error
}

// RateLimiter gates submissions per client
type RateLimiter interface {
	Allow(ctx context.Context, clientID string, now time.Time) error
}

// Notifier sends the post-submission emails
type Notifier interface {
	SendApplicantConfirmation(ctx context.Context, name, email, offerTitle, company string) error
	SendEmployerNotification(ctx context.Context, applicantName, employerEmail, offerTitle, company, dashboardURL string) error
}

// ApplicationHandler handles candidate application intake
type ApplicationHandler struct {
	store   IntakeStore
	objects ObjectUploader
	limiter RateLimiter
	mailer  Notifier
	siteURL string
}

// NewApplicationHandler creates a new application handler
func NewApplicationHandler(store IntakeStore, objects ObjectUploader, limiter RateLimiter, mailer Notifier, siteURL string) *ApplicationHandler {
	return &ApplicationHandler{
		store:   store,
		objects: objects,
		limiter: limiter,
		mailer:  mailer,
		siteURL: siteURL,
	}
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const rollbackTimeout = 15 * time.Second

// Submit receives a candidate application with its CV
// @Summary Submit an application
// @Description Submit a candidate application with an attached CV for an active job offer
// @Tags Applications
// @Accept multipart/form-data
// @Produce json
// @Param oferta_id formData string true "Offer id"
// @Param nombre formData string true "Applicant full name"
// @Param email formData string true "Applicant email"
// @Param telefono formData string true "Applicant phone"
// @Param mensaje formData string false "Optional message"
// @Param cv formData file true "CV file (PDF, DOC or DOCX, max 5MB)"
// @Success 201 {object} models.ApplicationResponse "Application received"
// @Failure 400 {object} models.ErrorResponse "Invalid input or offer not accepting applications"
// @Failure 404 {object} models.ErrorResponse "Offer not found"
// @Failure 429 {object} models.ErrorResponse "Rate limit exceeded"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /applications [post]
func (h *ApplicationHandler) Submit(c *gin.Context) {
	ctx := c.Request.Context()
	now := time.Now()
	clientID := resolveClientID(c)

	if err := h.limiter.Allow(ctx, clientID, now); err != nil {
		c.JSON(http.StatusTooManyRequests, models.ErrorResponse{
			Error: "Has alcanzado el límite de postulaciones por hora. Intenta nuevamente más tarde.",
			Code:  models.CodeRateLimitExceeded,
		})
		return
	}

	offerID := strings.TrimSpace(c.PostForm("oferta_id"))
	name := strings.TrimSpace(c.PostForm("nombre"))
	email := strings.ToLower(strings.TrimSpace(c.PostForm("email")))
	phone := strings.TrimSpace(c.PostForm("telefono"))
	message := strings.TrimSpace(c.PostForm("mensaje"))

	if verr := validateIntakeFields(offerID, name, email, phone); verr != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: verr.Message})
		return
	}

	offer, err := h.store.GetOffer(ctx, offerID)
	if err != nil {
		if errors.Is(err, models.ErrOfferNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Oferta no encontrada"})
			return
		}
		log.Printf("[ApplicationHandler] offer lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al procesar la postulación"})
		return
	}
	if err := offer.Acceptable(now); err != nil {
		switch {
		case errors.Is(err, models.ErrOfferInactive):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "Esta oferta ya no está recibiendo postulaciones",
				Code:  models.CodeOfferInactive,
			})
		default:
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "Esta oferta ha expirado",
				Code:  models.CodeOfferExpired,
			})
		}
		return
	}

	exists, err := h.store.HasApplication(ctx, offerID, email)
	if err != nil {
		log.Printf("[ApplicationHandler] duplicate check failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al procesar la postulación"})
		return
	}
	if exists {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "Ya enviaste una postulación para esta oferta",
			Code:  models.CodeDuplicateApplication,
		})
		return
	}

	file, header, err := c.Request.FormFile("cv")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Archivo CV es requerido"})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if err := validation.ValidateCVFile(contentType, header.Size, header.Filename); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "No se pudo leer el archivo CV"})
		return
	}

	app := &models.Application{
		ID:             uuid.NewString(),
		OfferID:        offerID,
		Name:           name,
		Email:          email,
		Phone:          phone,
		Message:        message,
		CVFileRef:      models.CVRefPending,
		CVOriginalName: header.Filename,
		CVSizeBytes:    header.Size,
		ClientIP:       clientID,
		CreatedAt:      now,
	}

	if err := h.store.CreateApplication(ctx, app); err != nil {
		if errors.Is(err, models.ErrDuplicateApplication) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "Ya enviaste una postulación para esta oferta",
				Code:  models.CodeDuplicateApplication,
			})
			return
		}
		log.Printf("[ApplicationHandler] failed to create application: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al guardar la postulación"})
		return
	}

	key := storage.CVObjectKey(offerID, app.ID, header.Filename)
	if err := h.objects.Upload(ctx, key, content, contentType); err != nil {
		log.Printf("[ApplicationHandler] CV upload failed for %s: %v", app.ID, err)
		// Compensations run on a detached context: the request context may
		// already be canceled (client disconnect), and an aborted rollback
		// would orphan the placeholder record.
		rollbackCtx, cancel := context.WithTimeout(context.Background(), rollbackTimeout)
		if derr := h.store.DeleteApplication(rollbackCtx, app.ID); derr != nil {
			log.Printf("[ApplicationHandler] failed to roll back application %s: %v", app.ID, derr)
		}
		cancel()
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al subir el archivo CV"})
		return
	}

	if err := h.store.UpdateApplicationCVRef(ctx, app.ID, key); err != nil {
		log.Printf("[ApplicationHandler] failed to patch CV reference for %s: %v", app.ID, err)
		rollbackCtx, cancel := context.WithTimeout(context.Background(), rollbackTimeout)
		if derr := h.objects.Delete(rollbackCtx, key); derr != nil {
			log.Printf("[ApplicationHandler] failed to roll back CV object %s: %v", key, derr)
		}
		cancel()
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al guardar la postulación"})
		return
	}

	// Notifications are best-effort and must not delay or fail the submission
	go h.notify(app, offer)

	log.Printf("[ApplicationHandler] application %s received for offer %s", app.ID, offerID)
	c.JSON(http.StatusCreated, models.ApplicationResponse{
		ID:        app.ID,
		CreatedAt: app.CreatedAt,
		Message:   "Postulación enviada exitosamente",
	})
}

// MethodNotAllowed rejects unsupported verbs on the intake route
func (h *ApplicationHandler) MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, models.ErrorResponse{Error: "Método no permitido"})
}

func (h *ApplicationHandler) notify(app *models.Application, offer *models.Offer) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := h.mailer.SendApplicantConfirmation(ctx, app.Name, app.Email, offer.Title, offer.Company); err != nil {
		log.Printf("[ApplicationHandler] applicant confirmation failed for %s: %v", app.ID, err)
	}
	dashboardURL := h.siteURL + "/empleador/ofertas/" + offer.ID + "/postulaciones"
	if err := h.mailer.SendEmployerNotification(ctx, app.Name, offer.EmployerID, offer.Title, offer.Company, dashboardURL); err != nil {
		log.Printf("[ApplicationHandler] employer notification failed for %s: %v", app.ID, err)
	}
}

func validateIntakeFields(offerID, name, email, phone string) *models.ValidationError {
	if offerID == "" {
		return models.NewValidationError("oferta_id", "El identificador de la oferta es requerido")
	}
	if name == "" {
		return models.NewValidationError("nombre", "El nombre es requerido")
	}
	if email == "" || !emailRe.MatchString(email) {
		return models.NewValidationError("email", "El email no es válido")
	}
	if phone == "" {
		return models.NewValidationError("telefono", "El teléfono es requerido")
	}
	return nil
}

// resolveClientID picks the rate-limit identity for this request: first
// entry of X-Forwarded-For, then the socket peer, then a fixed fallback so
// identity-less requests share one bucket.
func resolveClientID(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		if first := strings.TrimSpace(strings.Split(fwd, ",")[0]); first != "" {
			return first
		}
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return ratelimit.FallbackClientID
}

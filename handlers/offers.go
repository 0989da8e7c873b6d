package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/portalempleos/backend/auth"
	"github.com/portalempleos/backend/models"
	"github.com/portalempleos/backend/storage"
)

// Offer field limits
const (
	minTitleLen       = 3
	maxTitleLen       = 100
	minDescriptionLen = 50
	maxDescriptionLen = 2000
	maxOfferLifetime  = 90 * 24 * time.Hour
)

// OfferStore is the datastore surface for offer management and review
type OfferStore interface {
	CreateOffer(ctx context.Context, offer *models.Offer) error
	GetOffer(ctx context.Context, id string) (*models.Offer, error)
	ListActiveOffers(ctx context.Context) ([]*models.Offer, error)
	SetOfferActive(ctx context.Context, id string, active bool) error
	ListApplicationsByOffer(ctx context.Context, offerID string) ([]*models.Application, error)
	FindApplicationByCVRef(ctx context.Context, offerID, cvRef string) (*models.Application, error)
}

// URLSigner produces time-limited download links for stored CVs
type URLSigner interface {
	SignedURL(key string, expiry time.Duration) (string, error)
}

// OfferHandler handles offer management and the employer review surface
type OfferHandler struct {
	store  OfferStore
	signer URLSigner
}

// NewOfferHandler creates a new offer handler
func NewOfferHandler(store OfferStore, signer URLSigner) *OfferHandler {
	return &OfferHandler{store: store, signer: signer}
}

// Create publishes a new job offer
// @Summary Create a job offer
// @Description Create a new job offer owned by the authenticated employer
// @Tags Offers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateOfferRequest true "Offer data"
// @Success 201 {object} models.Offer "Offer created"
// @Failure 400 {object} models.ErrorResponse "Invalid offer data"
// @Failure 401 {object} models.ErrorResponse "Not authenticated"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /offers [post]
func (h *OfferHandler) Create(c *gin.Context) {
	claims := auth.GetAuthClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "No autenticado"})
		return
	}

	var req models.CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Cuerpo de la solicitud inválido",
			Details: err.Error(),
		})
		return
	}

	now := time.Now()
	expiresAt, verr := validateOfferRequest(&req, now)
	if verr != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: verr.Message})
		return
	}

	offer := &models.Offer{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Company:     req.Company,
		Jornada:     req.Jornada,
		Category:    req.Category,
		Comuna:      req.Comuna,
		EmployerID:  claims.EmployerID,
		Active:      true,
		ExpiresAt:   expiresAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.store.CreateOffer(c.Request.Context(), offer); err != nil {
		log.Printf("[OfferHandler] failed to create offer: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al crear la oferta"})
		return
	}

	log.Printf("[OfferHandler] offer %s created by %s", offer.ID, claims.EmployerID)
	c.JSON(http.StatusCreated, offer)
}

// Toggle flips the active state of an offer
// @Summary Toggle offer active state
// @Description Activate or pause an offer owned by the authenticated employer
// @Tags Offers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Offer id"
// @Success 200 {object} models.ToggleOfferResponse "New state"
// @Failure 401 {object} models.ErrorResponse "Not authenticated"
// @Failure 403 {object} models.ErrorResponse "Not the offer owner"
// @Failure 404 {object} models.ErrorResponse "Offer not found"
// @Router /offers/{id}/toggle [post]
func (h *OfferHandler) Toggle(c *gin.Context) {
	offer, ok := h.ownedOffer(c)
	if !ok {
		return
	}

	newState := !offer.Active
	if err := h.store.SetOfferActive(c.Request.Context(), offer.ID, newState); err != nil {
		log.Printf("[OfferHandler] failed to toggle offer %s: %v", offer.ID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al actualizar la oferta"})
		return
	}

	message := "Oferta pausada"
	if newState {
		message = "Oferta activada"
	}
	c.JSON(http.StatusOK, models.ToggleOfferResponse{
		Success: true,
		Active:  newState,
		Message: message,
	})
}

// Get returns one offer
// @Summary Get an offer
// @Description Get a job offer by id
// @Tags Offers
// @Produce json
// @Param id path string true "Offer id"
// @Success 200 {object} models.Offer "Offer"
// @Failure 404 {object} models.ErrorResponse "Offer not found"
// @Router /offers/{id} [get]
func (h *OfferHandler) Get(c *gin.Context) {
	offer, err := h.store.GetOffer(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, models.ErrOfferNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Oferta no encontrada"})
			return
		}
		log.Printf("[OfferHandler] offer lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al obtener la oferta"})
		return
	}
	c.JSON(http.StatusOK, offer)
}

// List returns all active offers
// @Summary List active offers
// @Description List all currently active job offers
// @Tags Offers
// @Produce json
// @Success 200 {array} models.Offer "Active offers"
// @Router /offers [get]
func (h *OfferHandler) List(c *gin.Context) {
	offers, err := h.store.ListActiveOffers(c.Request.Context())
	if err != nil {
		log.Printf("[OfferHandler] failed to list offers: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al obtener las ofertas"})
		return
	}
	c.JSON(http.StatusOK, offers)
}

// ListApplications returns the applications received by an offer
// @Summary List applications for an offer
// @Description List the applications received by an offer owned by the authenticated employer
// @Tags Offers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Offer id"
// @Success 200 {array} models.Application "Applications"
// @Failure 401 {object} models.ErrorResponse "Not authenticated"
// @Failure 403 {object} models.ErrorResponse "Not the offer owner"
// @Failure 404 {object} models.ErrorResponse "Offer not found"
// @Router /offers/{id}/applications [get]
func (h *OfferHandler) ListApplications(c *gin.Context) {
	offer, ok := h.ownedOffer(c)
	if !ok {
		return
	}

	apps, err := h.store.ListApplicationsByOffer(c.Request.Context(), offer.ID)
	if err != nil {
		log.Printf("[OfferHandler] failed to list applications for %s: %v", offer.ID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al obtener las postulaciones"})
		return
	}
	c.JSON(http.StatusOK, apps)
}

// DownloadCV issues a time-limited download link for an application's CV
// @Summary Get a CV download link
// @Description Issue a one-hour signed download URL for a CV belonging to an application on an offer owned by the authenticated employer
// @Tags Offers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Offer id"
// @Param request body models.CVDownloadRequest true "Stored CV reference"
// @Success 200 {object} models.CVDownloadResponse "Signed URL"
// @Failure 401 {object} models.ErrorResponse "Not authenticated"
// @Failure 403 {object} models.ErrorResponse "Not the offer owner"
// @Failure 404 {object} models.ErrorResponse "Offer or CV not found"
// @Router /offers/{id}/cv-download [post]
func (h *OfferHandler) DownloadCV(c *gin.Context) {
	offer, ok := h.ownedOffer(c)
	if !ok {
		return
	}

	var req models.CVDownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Cuerpo de la solicitud inválido",
			Details: err.Error(),
		})
		return
	}

	// The requested key must belong to an application on this offer, so an
	// employer cannot sign URLs for other employers' CVs.
	app, err := h.store.FindApplicationByCVRef(c.Request.Context(), offer.ID, req.CVStorageKey)
	if err != nil {
		if errors.Is(err, models.ErrApplicationNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "CV no encontrado en esta oferta"})
			return
		}
		log.Printf("[OfferHandler] CV lookup failed for offer %s: %v", offer.ID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al obtener el CV"})
		return
	}

	url, err := h.signer.SignedURL(app.CVFileRef, storage.ReviewURLExpiry)
	if err != nil {
		log.Printf("[OfferHandler] failed to sign URL for %s: %v", app.CVFileRef, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al generar el enlace de descarga"})
		return
	}

	c.JSON(http.StatusOK, models.CVDownloadResponse{Success: true, URL: url})
}

// ownedOffer loads the offer in the path and checks the caller owns it.
// On failure it writes the response and returns ok=false.
func (h *OfferHandler) ownedOffer(c *gin.Context) (*models.Offer, bool) {
	claims := auth.GetAuthClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "No autenticado"})
		return nil, false
	}

	offer, err := h.store.GetOffer(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, models.ErrOfferNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Oferta no encontrada"})
			return nil, false
		}
		log.Printf("[OfferHandler] offer lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al obtener la oferta"})
		return nil, false
	}

	if offer.EmployerID != claims.EmployerID {
		c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "No tienes permiso sobre esta oferta"})
		return nil, false
	}
	return offer, true
}

func validateOfferRequest(req *models.CreateOfferRequest, now time.Time) (time.Time, *models.ValidationError) {
	if n := utf8.RuneCountInString(req.Title); n < minTitleLen || n > maxTitleLen {
		return time.Time{}, models.NewValidationError("titulo", "El título debe tener entre 3 y 100 caracteres")
	}
	if n := utf8.RuneCountInString(req.Description); n < minDescriptionLen || n > maxDescriptionLen {
		return time.Time{}, models.NewValidationError("descripcion", "La descripción debe tener entre 50 y 2000 caracteres")
	}
	if !validJornada(req.Jornada) {
		return time.Time{}, models.NewValidationError("tipo_jornada", "Tipo de jornada no válido")
	}
	if req.Comuna == "" {
		return time.Time{}, models.NewValidationError("comuna", "La comuna es requerida")
	}

	expiresAt, err := time.ParseInLocation("2006-01-02", req.ExpiresAt, now.Location())
	if err != nil {
		return time.Time{}, models.NewValidationError("expires_at", "La fecha de expiración debe tener formato YYYY-MM-DD")
	}
	// Expiry applies at end of the chosen day
	expiresAt = expiresAt.Add(24*time.Hour - time.Second)
	if !expiresAt.After(now) {
		return time.Time{}, models.NewValidationError("expires_at", "La fecha de expiración debe ser futura")
	}
	if expiresAt.After(now.Add(maxOfferLifetime)) {
		return time.Time{}, models.NewValidationError("expires_at", "La fecha de expiración no puede superar los 90 días")
	}
	return expiresAt, nil
}

func validJornada(jornada string) bool {
	for _, valid := range models.ValidJornadas {
		if jornada == valid {
			return true
		}
	}
	return false
}

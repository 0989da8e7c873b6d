package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/portalempleos/backend/models"
)

// CleanupStore is the datastore surface for the retention sweep
type CleanupStore interface {
	ListApplicationsBefore(ctx context.Context, cutoff time.Time) ([]*models.Application, error)
	DeleteApplication(ctx context.Context, id string) error
	DeleteCVMetadata(ctx context.Context, applicationID string) error
}

// ObjectDeleter removes stored CV objects
type ObjectDeleter interface {
	Delete(ctx context.Context, key string) error
}

// AdminHandler handles maintenance endpoints
type AdminHandler struct {
	store         CleanupStore
	objects       ObjectDeleter
	retentionDays int
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(store CleanupStore, objects ObjectDeleter, retentionDays int) *AdminHandler {
	return &AdminHandler{
		store:         store,
		objects:       objects,
		retentionDays: retentionDays,
	}
}

// CleanupCVs removes applications and stored CVs past the retention window
// @Summary Clean up old CVs
// @Description Delete applications, their stored CVs and parsed metadata older than the retention window. Preview mode reports what would be deleted without deleting.
// @Tags Admin
// @Accept json
// @Produce json
// @Param X-Admin-Token header string true "Admin token"
// @Param request body models.CleanupRequest false "Cleanup options"
// @Success 200 {object} models.CleanupResponse "Sweep outcome"
// @Failure 401 {object} models.ErrorResponse "Missing or invalid admin token"
// @Failure 500 {object} models.ErrorResponse "Sweep failed"
// @Router /admin/cleanup-cvs [post]
func (h *AdminHandler) CleanupCVs(c *gin.Context) {
	var req models.CleanupRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "Cuerpo de la solicitud inválido",
				Details: err.Error(),
			})
			return
		}
	}

	days := h.retentionDays
	if req.Days > 0 {
		days = req.Days
	}
	cutoff := time.Now().AddDate(0, 0, -days)

	apps, err := h.store.ListApplicationsBefore(c.Request.Context(), cutoff)
	if err != nil {
		log.Printf("[AdminHandler] failed to list expired applications: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al ejecutar la limpieza"})
		return
	}

	resp := models.CleanupResponse{
		Preview:    req.Preview,
		CutoffDate: cutoff.Format("2006-01-02"),
	}

	if req.Preview {
		resp.ApplicationsDeleted = len(apps)
		for _, app := range apps {
			if app.CVReady() {
				resp.FilesDeleted++
			}
		}
		c.JSON(http.StatusOK, resp)
		return
	}

	ctx := c.Request.Context()
	for _, app := range apps {
		if app.CVReady() {
			if err := h.objects.Delete(ctx, app.CVFileRef); err != nil {
				resp.FilesFailed++
				resp.Errors = append(resp.Errors, fmt.Sprintf("objeto %s: %v", app.CVFileRef, err))
				// Keep the record so a later sweep retries the object
				continue
			}
			resp.FilesDeleted++
		}
		if err := h.store.DeleteCVMetadata(ctx, app.ID); err != nil {
			log.Printf("[AdminHandler] failed to delete metadata for %s: %v", app.ID, err)
		}
		if err := h.store.DeleteApplication(ctx, app.ID); err != nil {
			resp.Errors = append(resp.Errors, fmt.Sprintf("postulación %s: %v", app.ID, err))
			continue
		}
		resp.ApplicationsDeleted++
	}

	log.Printf("[AdminHandler] cleanup removed %d applications, %d files (%d failed)",
		resp.ApplicationsDeleted, resp.FilesDeleted, resp.FilesFailed)
	c.JSON(http.StatusOK, resp)
}

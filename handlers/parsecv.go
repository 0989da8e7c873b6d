package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/portalempleos/backend/models"
	"github.com/portalempleos/backend/parser"
)

// CVParser runs the parsing pipeline for one stored CV
type CVParser interface {
	Parse(ctx context.Context, applicationID, storageKey string) (*models.ParseCVData, error)
}

// ParseCVHandler handles CV parsing invocations
type ParseCVHandler struct {
	parser CVParser
}

// NewParseCVHandler creates a new parse-cv handler
func NewParseCVHandler(p CVParser) *ParseCVHandler {
	return &ParseCVHandler{parser: p}
}

// ParseCV extracts structured metadata from a stored CV
// @Summary Parse a stored CV
// @Description Download a stored CV, extract its text and produce structured metadata with a confidence score. Re-parsing an application overwrites its previous metadata.
// @Tags Parser
// @Accept json
// @Produce json
// @Param request body models.ParseCVRequest true "Parser invocation"
// @Success 200 {object} models.ParseCVResponse "Parse outcome (success flag inside)"
// @Failure 400 {object} models.ErrorResponse "Invalid request body"
// @Failure 404 {object} models.ParseCVResponse "Stored CV not found"
// @Failure 500 {object} models.ParseCVResponse "Pipeline infrastructure failure"
// @Router /parse-cv [post]
func (h *ParseCVHandler) ParseCV(c *gin.Context) {
	var req models.ParseCVRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Cuerpo de la solicitud inválido",
			Details: err.Error(),
		})
		return
	}

	data, err := h.parser.Parse(c.Request.Context(), req.ApplicationID, req.CVStorageKey)
	if err != nil {
		status, resp := parseFailureResponse(err)
		log.Printf("[ParseCVHandler] parse failed for %s at stage %s: %v", req.ApplicationID, resp.Stage, err)
		c.JSON(status, resp)
		return
	}

	log.Printf("[ParseCVHandler] parsed CV for %s (confidence %.2f, %d chars)",
		data.ApplicationID, data.ConfidenceScore, data.ExtractedChars)
	c.JSON(http.StatusOK, models.ParseCVResponse{
		Success: true,
		Data:    data,
	})
}

// parseFailureResponse maps a pipeline failure to an HTTP status and payload.
// Content-level failures (unreadable document, malformed model output) come
// back 200 with success:false so an automated trigger does not retry them;
// infrastructure failures keep their transport status.
func parseFailureResponse(err error) (int, models.ParseCVResponse) {
	resp := models.ParseCVResponse{Success: false, Error: err.Error()}

	var stageErr *parser.StageError
	if !errors.As(err, &stageErr) {
		return http.StatusInternalServerError, resp
	}
	resp.Stage = stageErr.Stage
	resp.Error = stageErr.Err.Error()

	switch stageErr.Stage {
	case parser.StageDownload:
		if errors.Is(err, models.ErrObjectNotFound) {
			return http.StatusNotFound, resp
		}
		return http.StatusInternalServerError, resp
	case parser.StageExtraction, parser.StageAIResponse:
		return http.StatusOK, resp
	case parser.StageAIRequest:
		return http.StatusBadGateway, resp
	default:
		return http.StatusInternalServerError, resp
	}
}

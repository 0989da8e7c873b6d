package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portalempleos/backend/models"
	"github.com/portalempleos/backend/parser"
)

type fakeParser struct {
	data *models.ParseCVData
	err  error
}

func (f *fakeParser) Parse(_ context.Context, applicationID, _ string) (*models.ParseCVData, error) {
	if f.err != nil {
		return nil, f.err
	}
	data := *f.data
	data.ApplicationID = applicationID
	return &data, nil
}

func parseCVRouter(p CVParser) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/parse-cv", NewParseCVHandler(p).ParseCV)
	return router
}

func postParseCV(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/parse-cv", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestParseCV_Success(t *testing.T) {
	router := parseCVRouter(&fakeParser{data: &models.ParseCVData{
		Metadata:        &models.CVMetadata{FullName: "Ana Pérez"},
		ConfidenceScore: 0.85,
		ExtractedChars:  1200,
	}})

	rec := postParseCV(t, router, `{"applicationId":"app-1","cvStorageKey":"cvs/offer-1/app-1.pdf"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.ParseCVResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "app-1", resp.Data.ApplicationID)
	assert.Equal(t, 0.85, resp.Data.ConfidenceScore)
}

func TestParseCV_MissingFields(t *testing.T) {
	router := parseCVRouter(&fakeParser{})

	rec := postParseCV(t, router, `{"applicationId":"app-1"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestParseCV_FailureMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantStage  string
	}{
		{
			name:       "stored object missing",
			err:        &parser.StageError{Stage: parser.StageDownload, Err: models.ErrObjectNotFound},
			wantStatus: http.StatusNotFound,
			wantStage:  parser.StageDownload,
		},
		{
			name:       "unreadable document reported not retried",
			err:        &parser.StageError{Stage: parser.StageExtraction, Err: models.ErrCVUnreadable},
			wantStatus: http.StatusOK,
			wantStage:  parser.StageExtraction,
		},
		{
			name:       "malformed model output reported not retried",
			err:        &parser.StageError{Stage: parser.StageAIResponse, Err: models.ErrAIResponseMalformed},
			wantStatus: http.StatusOK,
			wantStage:  parser.StageAIResponse,
		},
		{
			name:       "model unreachable",
			err:        &parser.StageError{Stage: parser.StageAIRequest, Err: errors.New("deadline exceeded")},
			wantStatus: http.StatusBadGateway,
			wantStage:  parser.StageAIRequest,
		},
		{
			name:       "persist failure",
			err:        &parser.StageError{Stage: parser.StagePersist, Err: errors.New("store unavailable")},
			wantStatus: http.StatusInternalServerError,
			wantStage:  parser.StagePersist,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := parseCVRouter(&fakeParser{err: tt.err})

			rec := postParseCV(t, router, `{"applicationId":"app-1","cvStorageKey":"cvs/k.pdf"}`)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var resp models.ParseCVResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantStage, resp.Stage)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portalempleos/backend/auth"
	"github.com/portalempleos/backend/config"
	"github.com/portalempleos/backend/models"
)

type fakeEmployerStore struct {
	employers map[string]*models.Employer
}

func newFakeEmployerStore() *fakeEmployerStore {
	return &fakeEmployerStore{employers: make(map[string]*models.Employer)}
}

func (s *fakeEmployerStore) CreateEmployer(_ context.Context, employer *models.Employer) error {
	if _, ok := s.employers[employer.ID]; ok {
		return models.ErrEmployerExists
	}
	s.employers[employer.ID] = employer
	return nil
}

func (s *fakeEmployerStore) GetEmployer(_ context.Context, id string) (*models.Employer, error) {
	employer, ok := s.employers[id]
	if !ok {
		return nil, models.ErrEmployerNotFound
	}
	return employer, nil
}

type noopWelcomeMailer struct{}

func (noopWelcomeMailer) SendEmployerWelcome(context.Context, string, string, string) error {
	return nil
}

func authRouter(store EmployerStore) (*gin.Engine, *auth.JWTService) {
	gin.SetMode(gin.TestMode)
	jwtService := auth.NewJWTService(&config.Config{JWTSecret: "test-secret", JWTExpiryHours: 1})
	h := NewAuthHandler(store, jwtService, noopWelcomeMailer{})
	router := gin.New()
	router.POST("/api/auth/register", h.Register)
	router.POST("/api/auth/login", h.Login)
	protected := router.Group("/api/auth")
	protected.Use(auth.AuthMiddleware(jwtService))
	protected.GET("/profile", h.Profile)
	return router, jwtService
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

const registerBody = `{"email":"empleador@acme.cl","password":"secreto1","nombre":"Pat Soto","empresa":"Acme Chile"}`

func TestRegister(t *testing.T) {
	t.Run("success issues token", func(t *testing.T) {
		store := newFakeEmployerStore()
		router, _ := authRouter(store)

		rec := postJSON(t, router, "/api/auth/register", registerBody)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var resp models.AuthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)

		stored := store.employers["empleador@acme.cl"]
		require.NotNil(t, stored)
		assert.NotEqual(t, "secreto1", stored.Password, "password must be stored hashed")
		assert.True(t, auth.CheckPassword("secreto1", stored.Password))
		assert.NotContains(t, rec.Body.String(), stored.Password, "hash must not be serialized")
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		store := newFakeEmployerStore()
		router, _ := authRouter(store)

		postJSON(t, router, "/api/auth/register", registerBody)
		rec := postJSON(t, router, "/api/auth/register", registerBody)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("short password rejected", func(t *testing.T) {
		router, _ := authRouter(newFakeEmployerStore())
		rec := postJSON(t, router, "/api/auth/register",
			`{"email":"a@b.cl","password":"abc","nombre":"X","empresa":"Y"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLogin(t *testing.T) {
	store := newFakeEmployerStore()
	router, _ := authRouter(store)
	postJSON(t, router, "/api/auth/register", registerBody)

	t.Run("valid credentials", func(t *testing.T) {
		rec := postJSON(t, router, "/api/auth/login",
			`{"email":"empleador@acme.cl","password":"secreto1"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		var resp models.AuthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := postJSON(t, router, "/api/auth/login",
			`{"email":"empleador@acme.cl","password":"incorrecta"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown account gets the same message", func(t *testing.T) {
		rec := postJSON(t, router, "/api/auth/login",
			`{"email":"nadie@acme.cl","password":"secreto1"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Email o contraseña incorrectos")
	})
}

func TestProfile(t *testing.T) {
	store := newFakeEmployerStore()
	router, _ := authRouter(store)

	rec := postJSON(t, router, "/api/auth/register", registerBody)
	var registered models.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))

	t.Run("with token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
		req.Header.Set("Authorization", "Bearer "+registered.Token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Acme Chile")
	})

	t.Run("without token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

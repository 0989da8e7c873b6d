package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/portalempleos/backend/auth"
	"github.com/portalempleos/backend/models"
)

// EmployerStore is the datastore surface for employer accounts
type EmployerStore interface {
	CreateEmployer(ctx context.Context, employer *models.Employer) error
	GetEmployer(ctx context.Context, id string) (*models.Employer, error)
}

// WelcomeMailer sends the registration welcome email
type WelcomeMailer interface {
	SendEmployerWelcome(ctx context.Context, name, email, company string) error
}

// AuthHandler handles employer authentication
type AuthHandler struct {
	store      EmployerStore
	jwtService *auth.JWTService
	mailer     WelcomeMailer
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(store EmployerStore, jwtService *auth.JWTService, mailer WelcomeMailer) *AuthHandler {
	return &AuthHandler{
		store:      store,
		jwtService: jwtService,
		mailer:     mailer,
	}
}

// Register handles employer registration with email/password
// @Summary Register a new employer
// @Description Register a new employer account with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration request"
// @Success 201 {object} models.AuthResponse "Registration successful"
// @Failure 400 {object} models.ErrorResponse "Invalid request body"
// @Failure 409 {object} models.ErrorResponse "Employer already exists"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Cuerpo de la solicitud inválido",
			Details: err.Error(),
		})
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Printf("[AuthHandler] failed to hash password: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al procesar el registro"})
		return
	}

	now := time.Now()
	employer := &models.Employer{
		ID:        strings.ToLower(strings.TrimSpace(req.Email)),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Name:      req.Name,
		Company:   req.Company,
		Password:  hashedPassword,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.store.CreateEmployer(c.Request.Context(), employer); err != nil {
		if errors.Is(err, models.ErrEmployerExists) {
			c.JSON(http.StatusConflict, models.ErrorResponse{Error: "Ya existe una cuenta con este email"})
			return
		}
		log.Printf("[AuthHandler] failed to create employer: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al procesar el registro"})
		return
	}

	token, err := h.jwtService.GenerateToken(employer)
	if err != nil {
		log.Printf("[AuthHandler] failed to generate token: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al generar el token"})
		return
	}

	// Welcome email is best-effort
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := h.mailer.SendEmployerWelcome(ctx, employer.Name, employer.Email, employer.Company); err != nil {
			log.Printf("[AuthHandler] welcome email failed for %s: %v", employer.Email, err)
		}
	}()

	log.Printf("[AuthHandler] employer registered: %s", employer.Email)
	c.JSON(http.StatusCreated, models.AuthResponse{
		Token:    token,
		Employer: employer,
		Message:  "Registro exitoso",
	})
}

// Login handles employer login with email/password
// @Summary Login employer
// @Description Login with email and password to get a JWT token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login request"
// @Success 200 {object} models.AuthResponse "Login successful"
// @Failure 400 {object} models.ErrorResponse "Invalid request body"
// @Failure 401 {object} models.ErrorResponse "Invalid credentials"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Cuerpo de la solicitud inválido",
			Details: err.Error(),
		})
		return
	}

	employer, err := h.store.GetEmployer(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Email o contraseña incorrectos"})
		return
	}

	if !auth.CheckPassword(req.Password, employer.Password) {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Email o contraseña incorrectos"})
		return
	}

	token, err := h.jwtService.GenerateToken(employer)
	if err != nil {
		log.Printf("[AuthHandler] failed to generate token: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al generar el token"})
		return
	}

	log.Printf("[AuthHandler] employer logged in: %s", employer.Email)
	c.JSON(http.StatusOK, models.AuthResponse{
		Token:    token,
		Employer: employer,
		Message:  "Inicio de sesión exitoso",
	})
}

// Profile returns the authenticated employer's account
// @Summary Get employer profile
// @Description Get the authenticated employer's account information
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Employer "Employer account"
// @Failure 401 {object} models.ErrorResponse "Not authenticated"
// @Failure 404 {object} models.ErrorResponse "Account not found"
// @Router /auth/profile [get]
func (h *AuthHandler) Profile(c *gin.Context) {
	claims := auth.GetAuthClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "No autenticado"})
		return
	}

	employer, err := h.store.GetEmployer(c.Request.Context(), claims.EmployerID)
	if err != nil {
		if errors.Is(err, models.ErrEmployerNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Cuenta no encontrada"})
			return
		}
		log.Printf("[AuthHandler] profile lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error al obtener el perfil"})
		return
	}

	c.JSON(http.StatusOK, employer)
}

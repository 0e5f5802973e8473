package handler

import (
	"net/http"

	domainerr "github.com/sportxbet/tipstore/internal/domain/error"
	coreport "github.com/sportxbet/tipstore/internal/domain/port/core"
	sessionUseCase "github.com/sportxbet/tipstore/internal/domain/usecase/session"
	"github.com/sportxbet/tipstore/internal/infrastructure/adapter/api/dto"
	"github.com/sportxbet/tipstore/internal/infrastructure/adapter/api/middleware"
	"github.com/sportxbet/tipstore/internal/infrastructure/metrics"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles registration, login and bot-handshake HTTP requests
type AuthHandler struct {
	sessionService *sessionUseCase.Service
	metrics        *metrics.Metrics
	logger         coreport.Logger
}

// NewAuthHandler creates a new auth handler instance
func NewAuthHandler(sessionService *sessionUseCase.Service, m *metrics.Metrics, logger coreport.Logger) *AuthHandler {
	return &AuthHandler{
		sessionService: sessionService,
		metrics:        m,
		logger:         logger,
	}
}

// Register handles the POST /auth/register endpoint
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	session, err := h.sessionService.Register(c.Request.Context(), req.Email, req.Password, req.Username)
	if err != nil {
		respondError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.SessionsOpened.WithLabelValues("register").Inc()
	}
	c.JSON(http.StatusCreated, dto.SessionResponse{
		Token: session.Token,
		User:  dto.NewUserResponse(session.User),
	})
}

// Login handles the POST /auth/login endpoint
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	session, err := h.sessionService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.SessionsOpened.WithLabelValues("login").Inc()
	}
	c.JSON(http.StatusOK, dto.SessionResponse{
		Token: session.Token,
		User:  dto.NewUserResponse(session.User),
	})
}

// Logout handles the POST /auth/logout endpoint
func (h *AuthHandler) Logout(c *gin.Context) {
	identity := middleware.IdentityFrom(c)

	if err := h.sessionService.Logout(c.Request.Context(), identity); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RedeemTelegramToken handles the GET /auth/telegram endpoint. The token
// arrives as a query parameter because the bot hands out clickable links.
func (h *AuthHandler) RedeemTelegramToken(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		respondError(c, domainerr.ErrTokenExpiredOrUsed)
		return
	}

	session, err := h.sessionService.RedeemToken(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.SessionsOpened.WithLabelValues("telegram").Inc()
	}
	c.JSON(http.StatusOK, dto.SessionResponse{
		Token: session.Token,
		User:  dto.NewUserResponse(session.User),
	})
}

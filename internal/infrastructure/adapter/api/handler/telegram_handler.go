package handler

import (
	"net/http"
	"strings"

	coreport "github.com/sportxbet/tipstore/internal/domain/port/core"
	sessionUseCase "github.com/sportxbet/tipstore/internal/domain/usecase/session"
	"github.com/sportxbet/tipstore/internal/infrastructure/adapter/api/dto"
	"github.com/sportxbet/tipstore/internal/infrastructure/metrics"
	"github.com/gin-gonic/gin"
)

// TelegramHandler handles Telegram webhook updates. The webhook always
// answers 200: Telegram retries non-2xx responses and a malformed update is
// not worth a retry storm.
type TelegramHandler struct {
	sessionService *sessionUseCase.Service
	metrics        *metrics.Metrics
	logger         coreport.Logger
}

// NewTelegramHandler creates a new telegram handler instance
func NewTelegramHandler(sessionService *sessionUseCase.Service, m *metrics.Metrics, logger coreport.Logger) *TelegramHandler {
	return &TelegramHandler{
		sessionService: sessionService,
		metrics:        m,
		logger:         logger,
	}
}

// Webhook handles the POST /telegram/webhook endpoint
func (h *TelegramHandler) Webhook(c *gin.Context) {
	var update dto.TelegramUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		h.logger.Warn("Malformed Telegram update", map[string]any{
			"error": err.Error(),
		})
		c.Status(http.StatusOK)
		return
	}

	if update.Message == nil || update.Message.From == nil || update.Message.From.IsBot {
		c.Status(http.StatusOK)
		return
	}

	sender := sessionUseCase.TelegramSender{
		ID:        update.Message.From.ID,
		Username:  update.Message.From.Username,
		FirstName: update.Message.From.FirstName,
		LastName:  update.Message.From.LastName,
	}
	chatID := update.Message.Chat.ID
	command := strings.TrimSpace(update.Message.Text)

	var err error
	switch {
	case strings.HasPrefix(command, "/start"):
		err = h.sessionService.HandleStart(c.Request.Context(), sender, chatID)
		if err == nil && h.metrics != nil {
			h.metrics.HandshakesIssued.Inc()
		}
	case strings.HasPrefix(command, "/help"):
		err = h.sessionService.HandleHelp(c.Request.Context(), chatID)
	default:
		// Unknown commands get the help text rather than silence
		err = h.sessionService.HandleHelp(c.Request.Context(), chatID)
	}

	if err != nil {
		h.logger.Error("Failed to handle Telegram update", map[string]any{
			"telegram_id": sender.ID,
			"command":     command,
			"error":       err.Error(),
		})
	}
	c.Status(http.StatusOK)
}

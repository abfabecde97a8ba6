// Package http exposes the assistant over HTTP: the Telegram webhook
// endpoint plus a small JSON chat API for smoke tests and non-Telegram
// callers.
package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ragbot/src/core/assistant"
	"ragbot/src/infrastructure/integrations/telegram"
)

type Handler struct {
	assistant    *assistant.Service
	bot          *telegram.Bot
	webhookToken string
}

// NewHandler wires the HTTP surface. bot may be nil, in which case only
// the JSON API and health routes are served.
func NewHandler(svc *assistant.Service, bot *telegram.Bot, webhookToken string) *Handler {
	return &Handler{
		assistant:    svc,
		bot:          bot,
		webhookToken: webhookToken,
	}
}

// RegisterRoutes registers all routes on the engine.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", h.Health)

	if h.bot != nil {
		// The bot token in the path gates the webhook, as Telegram
		// recommends for webhook URLs.
		r.POST("/webhook/:token", h.Webhook)
	}

	api := r.Group("/api/v1")
	api.POST("/chat", h.Chat)
	api.POST("/chat/reset", h.ResetChat)
}

func (h *Handler) Health(c *gin.Context) {
	sendJSON(c, http.StatusOK, gin.H{"status": "ok"})
}

// Webhook receives one Telegram update. It always acknowledges with 200
// once the token checks out; update handling failures are the bot's to
// log, not Telegram's to retry.
func (h *Handler) Webhook(c *gin.Context) {
	if c.Param("token") != h.webhookToken {
		sendError(c, http.StatusForbidden, fmt.Errorf("unknown webhook token"))
		return
	}

	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		sendError(c, http.StatusBadRequest, err)
		return
	}

	h.bot.HandleUpdate(c.Request.Context(), update)
	c.String(http.StatusOK, "OK")
}

type chatRequest struct {
	ConversationID int64  `json:"conversation_id" binding:"required"`
	Message        string `json:"message" binding:"required"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

func (h *Handler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, err)
		return
	}

	reply := h.assistant.HandleTurn(c.Request.Context(), req.ConversationID, req.Message)
	sendJSON(c, http.StatusOK, chatResponse{Reply: reply})
}

type resetRequest struct {
	ConversationID int64 `json:"conversation_id" binding:"required"`
}

func (h *Handler) ResetChat(c *gin.Context) {
	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, err)
		return
	}

	h.assistant.Reset(req.ConversationID)
	c.Status(http.StatusNoContent)
}

// Common error response structure
type ErrorResponse struct {
	Message string `json:"message"`
}

func sendError(c *gin.Context, status int, err error) {
	c.JSON(status, ErrorResponse{Message: err.Error()})
}

func sendJSON(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

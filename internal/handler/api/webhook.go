package api

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"slotgate/internal/usecase/commands"
)

// maxWebhookBodyBytes caps the webhook payload read; provider events are
// small and anything larger is hostile.
const maxWebhookBodyBytes = 1 << 16

// EventVerifier authenticates a raw webhook request. Implemented by the
// Stripe gateway.
type EventVerifier interface {
	VerifyAndParse(body []byte, sigHeader string) (commands.ProviderEvent, error)
}

type WebhookHandler struct {
	verifier   EventVerifier
	reconciler commands.WebhookCommands
}

func NewWebhookHandler(verifier EventVerifier, reconciler commands.WebhookCommands) *WebhookHandler {
	return &WebhookHandler{verifier: verifier, reconciler: reconciler}
}

// @Summary Payment provider webhook
// @Description Verifies the event signature and reconciles completed checkout sessions into records. A 5xx response makes the provider redeliver.
// @Tags webhook
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /webhook [post]
func (h *WebhookHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBodyBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Failed to read request body",
		})
		return
	}

	event, err := h.verifier.VerifyAndParse(body, c.GetHeader("Stripe-Signature"))
	if err != nil {
		slog.Warn("webhook signature rejected", "error", err.Error(), "client_ip", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid signature",
		})
		return
	}

	if err := h.reconciler.HandleEvent(c.Request.Context(), event); err != nil {
		// 5xx so the provider retries; the reconciler is idempotent
		slog.Error("webhook reconciliation failed",
			"event_id", event.ID, "type", event.Type, "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Event processing failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true, "event": event.Type})
}

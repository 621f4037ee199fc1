package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cympfh/shellbot-slack/internal/models"
)

// maxEventBodySize caps how much of an inbound request body is read.
// Slack event payloads are a few KB; 1 MB is generous headroom.
const maxEventBodySize = 1 << 20

// EventDispatcher processes one decoded event envelope.
type EventDispatcher interface {
	Dispatch(ctx context.Context, env *models.EventEnvelope)
}

// RegisterEventRoutes registers the Slack Events API endpoint.
//
// POST /
//   - url_verification: echoes the challenge string back
//   - event_callback: acknowledges immediately and processes in the
//     background (Slack retries anything not answered within 3 seconds)
//   - anything else: acknowledged and ignored, never rejected
func RegisterEventRoutes(r gin.IRoutes, d EventDispatcher, logger *slog.Logger) {
	r.POST("/", func(c *gin.Context) {
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxEventBodySize))
		if err != nil {
			logger.Error("event body read failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "body read failed"})
			return
		}

		in := models.DecodeInbound(body)
		switch in.Kind {
		case models.KindChallenge:
			logger.Info("challenge mode", "challenge", in.Challenge.Challenge)
			c.JSON(http.StatusOK, in.Challenge.Challenge)

		case models.KindEvent:
			env := in.Event
			// Delivery identifier fallback chain, so the dedup ledger
			// always has a key: event_id, else a generated UUID.
			if env.EventID == "" {
				env.EventID = uuid.New().String()
			}
			logger.Info("event received",
				"event_id", env.EventID,
				"channel", env.Event.Channel,
				"user", env.Event.User,
			)

			// Ack first; the request context dies with this response,
			// so the pipeline runs on its own context.
			go d.Dispatch(context.Background(), env)
			c.JSON(http.StatusOK, gin.H{})

		default:
			logger.Info("unknown payload, ignoring", "bytes", len(body))
			c.JSON(http.StatusOK, gin.H{})
		}
	})
}

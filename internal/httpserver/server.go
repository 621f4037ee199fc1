package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cympfh/shellbot-slack/internal/auth"
	"github.com/cympfh/shellbot-slack/internal/config"
	"github.com/cympfh/shellbot-slack/internal/handlers"
	"github.com/cympfh/shellbot-slack/internal/store"
)

// NewRouter wires the bot's endpoints.
// Public: /health, /ready, /executions
// Event endpoint: POST / (signature-verified when a signing secret is
// configured, open otherwise).
func NewRouter(cfg config.Config, d handlers.EventDispatcher, st *store.AuditLog, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())

	// Liveness: confirms the process is running.
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Readiness: confirms the audit store is reachable when one is
	// configured. Without a store the bot has no dependencies.
	r.GET("/ready", func(c *gin.Context) {
		if st == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ready"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()

		if err := st.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	handlers.RegisterExecutionRoutes(r, st)

	eventRoutes := gin.IRoutes(r)
	if cfg.Slack.SigningSecret != "" {
		group := r.Group("/")
		group.Use(auth.SignatureMiddleware(cfg.Slack.SigningSecret))
		eventRoutes = group
	}
	handlers.RegisterEventRoutes(eventRoutes, d, logger)

	return r
}

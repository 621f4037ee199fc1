package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cympfh/shellbot-slack/internal/store"
)

// executionView is one audit row as served over HTTP.
type executionView struct {
	EventID     string    `json:"event_id"`
	Channel     string    `json:"channel"`
	Sender      string    `json:"sender"`
	CommandLine string    `json:"command_line"`
	OK          bool      `json:"ok"`
	Output      string    `json:"output"`
	ProcessedAt time.Time `json:"processed_at"`
}

// RegisterExecutionRoutes registers the audit-log read endpoint.
//
// GET /executions?limit=N
// Returns recent processed events, newest first. Serves 503 when no
// audit store is configured.
func RegisterExecutionRoutes(r gin.IRoutes, st *store.AuditLog) {
	r.GET("/executions", func(c *gin.Context) {
		if st == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "audit log not configured"})
			return
		}

		limit := 50
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
				return
			}
			limit = n
		}

		records, err := st.RecentExecutions(c.Request.Context(), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "audit query failed"})
			return
		}

		views := make([]executionView, len(records))
		for i, rec := range records {
			views[i] = executionView{
				EventID:     rec.EventID,
				Channel:     rec.Channel,
				Sender:      rec.Sender,
				CommandLine: rec.CommandLine,
				OK:          rec.OK,
				Output:      rec.Output,
				ProcessedAt: rec.ProcessedAt,
			}
		}

		c.JSON(http.StatusOK, gin.H{"executions": views})
	})
}

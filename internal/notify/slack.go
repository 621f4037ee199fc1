// Package notify posts execution results to a Slack incoming webhook.
//
// Delivery is best-effort: a failed POST is logged and dropped, never
// retried, and never surfaced back into the event flow.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cympfh/shellbot-slack/internal/command"
)

const (
	colorSuccess = "#202020"
	colorFailure = "#f02020"
)

// Options configures a Notifier from the slack section of the config.
type Options struct {
	WebhookURL string
	Channel    string
	Username   string
	// Icon selects the bot icon: a ":name:" emoji, an http(s) URL, or
	// anything else (including empty) for no icon.
	Icon string
}

// Notifier formats results as Slack attachment payloads and posts them
// to the configured incoming webhook.
type Notifier struct {
	opts   Options
	client *http.Client
	logger *slog.Logger
}

// NewNotifier builds a notifier with a bounded-timeout HTTP client.
func NewNotifier(opts Options, logger *slog.Logger) *Notifier {
	return &Notifier{
		opts:   opts,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

// payload is the incoming-webhook JSON body.
type payload struct {
	Username  string  `json:"username"`
	Channel   string  `json:"channel"`
	Color     string  `json:"color"`
	Fields    []field `json:"fields"`
	IconEmoji string  `json:"icon_emoji,omitempty"`
	IconURL   string  `json:"icon_url,omitempty"`
}

type field struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

// buildPayload maps a result onto the webhook body: dark gray for
// success, red for failure, the result text as a single full-width
// field.
func (n *Notifier) buildPayload(result command.Result) payload {
	channel := n.opts.Channel
	if !strings.HasPrefix(channel, "#") {
		channel = "#" + channel
	}

	color := colorSuccess
	if !result.OK {
		color = colorFailure
	}

	p := payload{
		Username: n.opts.Username,
		Channel:  channel,
		Color:    color,
		Fields:   []field{{Title: "", Value: result.Text, Short: false}},
	}

	switch {
	case strings.HasPrefix(n.opts.Icon, ":"):
		p.IconEmoji = n.opts.Icon
	case strings.HasPrefix(n.opts.Icon, "http"):
		p.IconURL = n.opts.Icon
	}

	return p
}

// Notify posts the result. Errors are logged only.
func (n *Notifier) Notify(ctx context.Context, result command.Result) {
	n.logger.Info("notify", "result", result.String())

	body, err := json.Marshal(n.buildPayload(result))
	if err != nil {
		n.logger.Error("webhook payload marshal failed", "error", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.opts.WebhookURL, bytes.NewReader(body))
	if err != nil {
		n.logger.Error("webhook request build failed", "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Error("webhook post failed", "error", err)
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		n.logger.Error("webhook post rejected", "status", resp.StatusCode)
	}
}

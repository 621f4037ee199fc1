// Package dispatch orchestrates the per-event pipeline:
// dedup check, parse, execute, notify, mark.
package dispatch

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/cympfh/shellbot-slack/internal/command"
	"github.com/cympfh/shellbot-slack/internal/dedup"
	"github.com/cympfh/shellbot-slack/internal/models"
	"github.com/cympfh/shellbot-slack/internal/store"
)

// Executor runs a parsed command and folds every failure into the Result.
type Executor interface {
	Execute(ctx context.Context, tokens []string) command.Result
}

// Notifier delivers a result to the chat audience, best-effort.
type Notifier interface {
	Notify(ctx context.Context, result command.Result)
}

// Auditor records processed events. Optional.
type Auditor interface {
	RecordExecution(ctx context.Context, rec store.ExecutionRecord) error
}

// Dispatcher processes inbound event envelopes. The ledger is the only
// shared mutable state; its Contains/Add calls are internally locked,
// and the parse/execute/notify body runs without any lock held.
type Dispatcher struct {
	ledger   *dedup.Ledger
	executor Executor
	notifier Notifier
	auditor  Auditor // nil disables auditing
	logger   *slog.Logger
}

// New wires a dispatcher. auditor may be nil.
func New(ledger *dedup.Ledger, executor Executor, notifier Notifier, auditor Auditor, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		ledger:   ledger,
		executor: executor,
		notifier: notifier,
		auditor:  auditor,
		logger:   logger,
	}
}

// Dispatch runs one event through the pipeline.
//
// The event is marked as seen only after parse, execute, and notify
// have all completed: a crash mid-processing leaves the id unrecorded,
// so a Slack redelivery reprocesses it. Redelivery over silent loss.
func (d *Dispatcher) Dispatch(ctx context.Context, env *models.EventEnvelope) {
	if d.ledger.Contains(env.EventID) {
		d.logger.Info("event already processed, skipping", "event_id", env.EventID)
		return
	}

	tokens, err := command.Parse(env.Event.Text)
	if err != nil {
		// Degrade to an empty command: the executor rejects it and the
		// failure reaches the chat audience through the notifier.
		d.logger.Warn("message text parse failed", "event_id", env.EventID, "error", err)
		tokens = nil
	}

	result := d.executor.Execute(ctx, tokens)
	d.notifier.Notify(ctx, result)

	d.ledger.Add(env.EventID)

	if d.auditor != nil {
		rec := store.ExecutionRecord{
			EventID:     env.EventID,
			Channel:     env.Event.Channel,
			Sender:      env.Event.User,
			CommandLine: strings.Join(tokens, " "),
			OK:          result.OK,
			Output:      result.Text,
			ProcessedAt: time.Now().UTC(),
		}
		if err := d.auditor.RecordExecution(ctx, rec); err != nil {
			d.logger.Error("audit record failed", "event_id", env.EventID, "error", err)
		}
	}

	d.logger.Info("event processed", "event_id", env.EventID, "ok", result.OK)
}

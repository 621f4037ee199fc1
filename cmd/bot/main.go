package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/cympfh/shellbot-slack/internal/command"
	"github.com/cympfh/shellbot-slack/internal/config"
	"github.com/cympfh/shellbot-slack/internal/dedup"
	"github.com/cympfh/shellbot-slack/internal/dispatch"
	"github.com/cympfh/shellbot-slack/internal/httpserver"
	"github.com/cympfh/shellbot-slack/internal/notify"
	"github.com/cympfh/shellbot-slack/internal/store"
)

// main boots the bot: flags → config → audit store → pipeline → HTTP server.
func main() {
	configPath := pflag.String("config", "conf.toml", "path to the TOML configuration file")
	listen := pflag.String("listen", "", "listen address (overrides server.listen)")
	pflag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("config load failed", "path", *configPath, "error", err)
		os.Exit(1)
	}
	if *listen != "" {
		cfg.Server.Listen = *listen
	}

	// Optional Postgres audit log; the bot runs fine without one.
	var audit *store.AuditLog
	if cfg.Database.URL != "" {
		audit, err = store.NewAuditLog(cfg.Database.URL)
		if err != nil {
			logger.Error("audit store connect failed", "error", err)
			os.Exit(1)
		}
		defer audit.Close()

		if err := audit.EnsureSchema(context.Background()); err != nil {
			logger.Error("audit schema apply failed", "error", err)
			os.Exit(1)
		}
	}

	ledger := dedup.NewLedger(dedup.DefaultCapacity)
	executor := command.NewExecutor(
		cfg.Command.Allows,
		time.Duration(cfg.Command.Timeout)*time.Second,
		logger,
	)
	notifier := notify.NewNotifier(notify.Options{
		WebhookURL: cfg.Slack.Webhook,
		Channel:    cfg.Slack.Channel,
		Username:   cfg.Slack.Username,
		Icon:       cfg.Slack.Icon,
	}, logger)

	var auditor dispatch.Auditor
	if audit != nil {
		auditor = audit
	}
	dispatcher := dispatch.New(ledger, executor, notifier, auditor, logger)

	router := httpserver.NewRouter(cfg, dispatcher, audit, logger)

	logger.Info("server started",
		"listen", cfg.Server.Listen,
		"allows", cfg.Command.Allows,
		"audit", audit != nil,
	)
	if err := router.Run(cfg.Server.Listen); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

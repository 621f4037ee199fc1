// Package store provides the optional Postgres execution audit log.
//
// The audit log is operator-facing history only: duplicate suppression
// uses the in-memory ledger, never this table, so dedup state still
// resets on restart. The whole package is inactive unless database.url
// is configured.
package store

import (
	"context"
	_ "embed"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaSQL is embedded so the bot can self-bootstrap its table.
//
//go:embed schema.sql
var schemaSQL string

// ExecutionRecord is one processed event: what was asked, by whom,
// and what came back.
type ExecutionRecord struct {
	EventID     string
	Channel     string
	Sender      string
	CommandLine string
	OK          bool
	Output      string
	ProcessedAt time.Time
}

// AuditLog records processed events in Postgres.
type AuditLog struct {
	pool *pgxpool.Pool
}

// NewAuditLog creates a connection pool and fails fast if the database
// is unreachable.
func NewAuditLog(dbURL string) (*AuditLog, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &AuditLog{pool: pool}, nil
}

// EnsureSchema applies schema.sql. Safe to run multiple times.
func (a *AuditLog) EnsureSchema(ctx context.Context) error {
	_, err := a.pool.Exec(ctx, schemaSQL)
	return err
}

// Ping is used by the readiness endpoint to validate connectivity.
func (a *AuditLog) Ping(ctx context.Context) error {
	return a.pool.Ping(ctx)
}

// Close shuts down the connection pool.
func (a *AuditLog) Close() {
	a.pool.Close()
}

// RecordExecution inserts one audit row. A redelivered event that
// slipped past the ledger is absorbed by the event_id uniqueness
// constraint rather than erroring.
func (a *AuditLog) RecordExecution(ctx context.Context, rec ExecutionRecord) error {
	if rec.EventID == "" {
		return errors.New("event id required")
	}
	if rec.ProcessedAt.IsZero() {
		rec.ProcessedAt = time.Now().UTC()
	}

	_, err := a.pool.Exec(ctx, `
		INSERT INTO executions(event_id, channel, sender, command_line, ok, output, processed_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (event_id) DO NOTHING
	`, rec.EventID, rec.Channel, rec.Sender, rec.CommandLine, rec.OK, rec.Output, rec.ProcessedAt)

	return err
}

// RecentExecutions returns up to limit audit rows, newest first.
func (a *AuditLog) RecentExecutions(ctx context.Context, limit int) ([]ExecutionRecord, error) {
	if limit <= 0 || limit > 1000 {
		limit = 50
	}

	rows, err := a.pool.Query(ctx, `
		SELECT event_id, channel, sender, command_line, ok, output, processed_at
		FROM executions
		ORDER BY processed_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []ExecutionRecord
	for rows.Next() {
		var rec ExecutionRecord
		if err := rows.Scan(
			&rec.EventID,
			&rec.Channel,
			&rec.Sender,
			&rec.CommandLine,
			&rec.OK,
			&rec.Output,
			&rec.ProcessedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

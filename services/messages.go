package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"coffee-pickup/db"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	KindDaily = "daily"
	KindOpen  = "open"
	KindClose = "close"
)

// Delivery is one post attempt made by the dispatcher.
type Delivery struct {
	RunID   string
	Kind    string
	Content string
	Success bool
	Meta    map[string]interface{}
}

// DeliveryLog records delivery attempts. Errors never affect the send result.
type DeliveryLog interface {
	Record(ctx context.Context, d Delivery) error
}

// PostgresDeliveryLog stores deliveries in coffee_messages.
type PostgresDeliveryLog struct{}

func (PostgresDeliveryLog) Record(ctx context.Context, d Delivery) error {
	return SaveOutboundMessage(ctx, d)
}

// execer is the part of *pgxpool.Pool the delivery log writes through.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// SaveOutboundMessage persists a delivery attempt with its JSON meta.
// A missing table is created once and the insert retried once.
func SaveOutboundMessage(ctx context.Context, d Delivery) error {
	return saveOutboundMessage(ctx, db.Pool, d)
}

func saveOutboundMessage(ctx context.Context, ex execer, d Delivery) error {
	metaJSON := "{}"
	if len(d.Meta) > 0 {
		b, err := json.Marshal(d.Meta)
		if err != nil {
			return fmt.Errorf("marshal meta: %w", err)
		}
		metaJSON = string(b)
	}
	err := insertOutboundMessage(ctx, ex, d, metaJSON)
	if err != nil && isRelationNotExist(err) {
		if ensureErr := ensureMessagesTable(ctx, ex); ensureErr != nil {
			return ensureErr
		}
		err = insertOutboundMessage(ctx, ex, d, metaJSON)
	}
	return err
}

func insertOutboundMessage(ctx context.Context, ex execer, d Delivery, metaJSON string) error {
	_, err := ex.Exec(ctx, `
		INSERT INTO coffee_messages (run_id, kind, content, success, meta)
		VALUES ($1, $2, $3, $4, $5::jsonb)`,
		d.RunID, d.Kind, d.Content, d.Success, metaJSON,
	)
	return err
}

// EnsureMessagesTable creates coffee_messages if missing (safety net when migrate was not run).
func EnsureMessagesTable(ctx context.Context) error {
	return ensureMessagesTable(ctx, db.Pool)
}

func ensureMessagesTable(ctx context.Context, ex execer) error {
	_, err := ex.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS coffee_messages (
			id BIGSERIAL PRIMARY KEY,
			run_id UUID NOT NULL,
			kind TEXT NOT NULL CHECK (kind IN ('daily','open','close')),
			content TEXT NOT NULL,
			success BOOLEAN NOT NULL,
			meta JSONB NOT NULL DEFAULT '{}'::jsonb,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_coffee_messages_created_at ON coffee_messages(created_at);
	`)
	return err
}

func isRelationNotExist(err error) bool {
	return err != nil && strings.Contains(err.Error(), "coffee_messages") && strings.Contains(err.Error(), "does not exist")
}

// CountDeliveries returns how many successful deliveries of kind were made
// on the calendar day of date, in date's location.
func CountDeliveries(ctx context.Context, kind string, date time.Time) (int, error) {
	start, end := DayBounds(date)
	var count int
	err := db.Pool.QueryRow(ctx, `
		SELECT COUNT(*)::int FROM coffee_messages
		WHERE kind = $1 AND success AND created_at >= $2 AND created_at < $3`,
		kind, start, end,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

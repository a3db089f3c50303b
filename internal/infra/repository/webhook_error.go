package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"slotgate/internal/domain/booking"
	"slotgate/internal/infra"
)

// WebhookErrorRepository is append-only: rows exist for operators digging
// into failed reconciliations, nothing in the service reads them back.
type WebhookErrorRepository struct {
	pool *pgxpool.Pool
}

func NewWebhookErrorRepository(pool *pgxpool.Pool) *WebhookErrorRepository {
	return &WebhookErrorRepository{pool: pool}
}

func (r *WebhookErrorRepository) Append(ctx context.Context, entry *booking.WebhookErrorLog) error {
	rawMetadata, err := json.Marshal(entry.RawMetadata)
	if err != nil {
		return infra.WrapDBErr("failed to encode webhook metadata", err)
	}

	query, args, err := psql.Insert("webhook_error_logs").
		Columns("id", "event_id", "event_type", "error_message", "raw_metadata").
		Values(entry.ID, entry.EventID, entry.EventType, entry.ErrorMessage, rawMetadata).
		ToSql()
	if err != nil {
		return infra.WrapDBErr("failed to build webhook error insert", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return infra.WrapDBErr("failed to insert webhook error log", err)
	}
	return nil
}

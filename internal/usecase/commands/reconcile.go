package commands

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"slotgate/internal/domain/booking"
	"slotgate/internal/infra"
	"slotgate/internal/pkg/chunkmeta"
	"slotgate/internal/pkg/clock"
	"slotgate/internal/pkg/errs"
)

var (
	ErrPayloadDecode     = errs.New("webhook payload decode failed")
	ErrUnknownKind       = errs.New("unknown payload kind")
	ErrRecordCommit      = errs.New("record commit failed")
	ErrIdempotencyLookup = errs.New("idempotency lookup failed")
)

// WebhookCommands is the reconciler: the single writer of confirmed records.
// HandleEvent must be safe under duplicate and concurrent delivery of the
// same event; any error it returns is retryable from the provider's side.
type WebhookCommands interface {
	HandleEvent(ctx context.Context, ev ProviderEvent) error
}

type eventHandler func(ctx context.Context, ev ProviderEvent) error

type webhookUseCaseImpl struct {
	appointments AppointmentRepository
	listings     ListingRepository
	errorLog     WebhookErrorRepository
	dispatcher   NotificationDispatcher
	clock        clock.Clock

	// closed dispatch table: event kind -> handler, one store write each
	handlers map[string]eventHandler
}

func NewWebhookCommands(
	appointments AppointmentRepository,
	listings ListingRepository,
	errorLog WebhookErrorRepository,
	dispatcher NotificationDispatcher,
	clk clock.Clock,
) WebhookCommands {
	u := &webhookUseCaseImpl{
		appointments: appointments,
		listings:     listings,
		errorLog:     errorLog,
		dispatcher:   dispatcher,
		clock:        clk,
	}
	u.handlers = map[string]eventHandler{
		EventCheckoutCompleted: u.handleCompleted,
		EventCheckoutExpired:   u.handleExpired,
	}
	return u
}

func (u *webhookUseCaseImpl) HandleEvent(ctx context.Context, ev ProviderEvent) error {
	h, ok := u.handlers[ev.Type]
	if !ok {
		slog.Debug("webhook event ignored", "event_id", ev.ID, "type", ev.Type)
		return nil
	}
	return h(ctx, ev)
}

// handleExpired is a terminal no-op: the unpaid payload simply evaporates
// with the session.
func (u *webhookUseCaseImpl) handleExpired(_ context.Context, ev ProviderEvent) error {
	slog.Debug("checkout session expired without payment", "session_id", ev.SessionID)
	return nil
}

func (u *webhookUseCaseImpl) handleCompleted(ctx context.Context, ev ProviderEvent) error {
	// Advisory fast path. The unique index on provider_session_id is the
	// real guarantee; this just short-circuits provider redeliveries.
	committed, err := u.alreadyCommitted(ctx, ev.SessionID)
	if err != nil {
		return errs.Mark(err, ErrIdempotencyLookup)
	}
	if committed {
		slog.Info("duplicate webhook delivery, record already committed", "session_id", ev.SessionID)
		return nil
	}

	switch kind := booking.PayloadKind(chunkmeta.Kind(ev.Metadata)); kind {
	case booking.KindAppointment:
		return u.commitAppointment(ctx, ev)
	case booking.KindListing:
		return u.commitListing(ctx, ev)
	default:
		err := errs.Mark(errs.New("payload kind "+string(kind)), ErrUnknownKind)
		u.recordFailure(ctx, ev, err)
		return err
	}
}

func (u *webhookUseCaseImpl) alreadyCommitted(ctx context.Context, sessionID string) (bool, error) {
	if _, err := u.appointments.FindBySessionID(ctx, sessionID); err == nil {
		return true, nil
	} else if !infra.IsKind(err, infra.KindNotFound) {
		return false, err
	}
	if _, err := u.listings.FindBySessionID(ctx, sessionID); err == nil {
		return true, nil
	} else if !infra.IsKind(err, infra.KindNotFound) {
		return false, err
	}
	return false, nil
}

func (u *webhookUseCaseImpl) commitAppointment(ctx context.Context, ev ProviderEvent) error {
	var payload booking.AppointmentPayload
	if err := chunkmeta.Decode(ev.Metadata, &payload); err != nil {
		u.recordFailure(ctx, ev, err)
		return errs.Mark(err, ErrPayloadDecode)
	}
	if err := payload.Validate(); err != nil {
		u.recordFailure(ctx, ev, err)
		return errs.Mark(err, ErrPayloadDecode)
	}

	// Slot state may have changed between form submission and payment.
	// The payer keeps the slot either way; an overlap only downgrades the
	// record to pending_review for a human to resolve.
	status := booking.StatusConfirmed
	date, _ := payload.DateValue()
	slot, _ := payload.TimeValue()
	if taken, err := u.appointments.CountActiveAt(ctx, date, slot); err != nil {
		slog.Warn("conflict check failed, committing without it",
			"session_id", ev.SessionID, "error", err.Error())
	} else if taken > 0 {
		slog.Warn("slot already booked, flagging paid appointment for manual review",
			"session_id", ev.SessionID, "date", payload.Date, "time", payload.Time, "existing", taken)
		status = booking.StatusPendingReview
	}

	rec, err := booking.NewAppointment(&payload, ev.SessionID, ev.PaymentID, status)
	if err != nil {
		u.recordFailure(ctx, ev, err)
		return errs.Mark(err, ErrPayloadDecode)
	}

	if err := u.appointments.Create(ctx, rec); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			// lost the race against a concurrent delivery: already committed
			slog.Info("concurrent delivery already committed this session", "session_id", ev.SessionID)
			return nil
		}
		return errs.Mark(err, ErrRecordCommit)
	}

	slog.Info("appointment committed",
		"appointment_id", rec.ID, "session_id", ev.SessionID, "status", rec.Status.String())

	u.notify(ctx, "appointment_confirmed", rec.Email, map[string]any{
		"appointment_id": rec.ID.String(),
		"name":           rec.Name,
		"date":           payload.Date,
		"time":           payload.Time,
		"services":       rec.Services,
		"status":         rec.Status.String(),
	})
	return nil
}

func (u *webhookUseCaseImpl) commitListing(ctx context.Context, ev ProviderEvent) error {
	var payload booking.ListingPayload
	if err := chunkmeta.Decode(ev.Metadata, &payload); err != nil {
		u.recordFailure(ctx, ev, err)
		return errs.Mark(err, ErrPayloadDecode)
	}
	if err := payload.Validate(); err != nil {
		u.recordFailure(ctx, ev, err)
		return errs.Mark(err, ErrPayloadDecode)
	}

	rec := booking.NewRentalListing(&payload, ev.SessionID, ev.PaymentID)
	if err := u.listings.Create(ctx, rec); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			slog.Info("concurrent delivery already committed this session", "session_id", ev.SessionID)
			return nil
		}
		return errs.Mark(err, ErrRecordCommit)
	}

	slog.Info("rental listing committed", "listing_id", rec.ID, "session_id", ev.SessionID)

	u.notify(ctx, "listing_received", rec.Email, map[string]any{
		"listing_id": rec.ID.String(),
		"title":      rec.Title,
		"status":     rec.Status.String(),
	})
	return nil
}

// notify runs after the durability point: failures are logged, never
// propagated, so a flaky broker can't fail an already-committed record.
func (u *webhookUseCaseImpl) notify(ctx context.Context, kind, recipient string, payload map[string]any) {
	if err := u.dispatcher.Send(ctx, kind, recipient, payload); err != nil {
		slog.Warn("notification dispatch failed", "kind", kind, "error", err.Error())
	}
}

func (u *webhookUseCaseImpl) recordFailure(ctx context.Context, ev ProviderEvent, cause error) {
	entry := &booking.WebhookErrorLog{
		ID:           uuid.New(),
		EventID:      ev.ID,
		EventType:    ev.Type,
		ErrorMessage: cause.Error(),
		RawMetadata:  ev.Metadata,
		CreatedAt:    u.clock.Now(),
	}
	if err := u.errorLog.Append(ctx, entry); err != nil {
		slog.Error("failed to append webhook error log", "event_id", ev.ID, "error", err.Error())
	}
}

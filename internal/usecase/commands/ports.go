package commands

import (
	"context"
	"time"

	"slotgate/internal/domain/booking"
	"slotgate/internal/domain/schedule"

	"github.com/google/uuid"
)

// Provider event types the reconciler reacts to. Anything else is
// acknowledged and ignored.
const (
	EventCheckoutCompleted = "checkout.session.completed"
	EventCheckoutExpired   = "checkout.session.expired"
)

// ProviderEvent is a verified webhook event, already authenticated by the
// payment gateway adapter. The reconciler never sees unverified input.
type ProviderEvent struct {
	ID        string
	Type      string
	SessionID string
	PaymentID string
	Metadata  map[string]string
}

// PriceSpec is what the buyer pays before the record becomes real.
type PriceSpec struct {
	Name        string
	Currency    string
	AmountCents int64
}

type CheckoutSession struct {
	ID  string
	URL string
}

// CheckoutProvider creates hosted checkout sessions carrying the encoded
// payload as metadata. Implemented by the Stripe gateway.
type CheckoutProvider interface {
	CreateSession(ctx context.Context, metadata map[string]string, spec PriceSpec) (*CheckoutSession, error)
}

// NotificationDispatcher is fire-and-forget: callers log failures and never
// let them affect a committed record.
type NotificationDispatcher interface {
	Send(ctx context.Context, kind, recipient string, payload map[string]any) error
}

type AppointmentRepository interface {
	Create(ctx context.Context, rec *booking.Appointment) error
	FindBySessionID(ctx context.Context, sessionID string) (*booking.Appointment, error)
	CountActiveAt(ctx context.Context, date time.Time, t schedule.TimeOfDay) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status booking.Status) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ListingRepository interface {
	Create(ctx context.Context, rec *booking.RentalListing) error
	FindBySessionID(ctx context.Context, sessionID string) (*booking.RentalListing, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status booking.Status) error
}

type WebhookErrorRepository interface {
	Append(ctx context.Context, entry *booking.WebhookErrorLog) error
}

type ScheduleRepository interface {
	UpsertRule(ctx context.Context, rule *schedule.WorkingHourRule) error
	AddBlockedDate(ctx context.Context, date time.Time, reason string) error
	RemoveBlockedDate(ctx context.Context, date time.Time) error
}

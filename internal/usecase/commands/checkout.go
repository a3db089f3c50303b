package commands

import (
	"context"
	"log/slog"

	"slotgate/internal/domain/booking"
	"slotgate/internal/pkg/chunkmeta"
	"slotgate/internal/pkg/config"
	"slotgate/internal/pkg/errs"
)

var (
	ErrInvalidPayload      = errs.New("invalid checkout payload")
	ErrProviderUnavailable = errs.New("payment provider unavailable")
)

type CheckoutCommands interface {
	InitiateAppointment(ctx context.Context, payload *booking.AppointmentPayload) (string, error)
	InitiateListing(ctx context.Context, payload *booking.ListingPayload) (string, error)
}

type checkoutUseCaseImpl struct {
	provider CheckoutProvider
	pricing  config.StripeConfig
}

func NewCheckoutCommands(provider CheckoutProvider, cfg config.Config) CheckoutCommands {
	return &checkoutUseCaseImpl{
		provider: provider,
		pricing:  cfg.Stripe,
	}
}

// InitiateAppointment validates the booking form once more (never trust that
// client-side validation ran), encodes it into session metadata and returns
// the provider's hosted redirect URL. Nothing is written to the record store
// here: the record only becomes real when the webhook confirms payment.
func (c *checkoutUseCaseImpl) InitiateAppointment(ctx context.Context, payload *booking.AppointmentPayload) (string, error) {
	if err := payload.Validate(); err != nil {
		return "", errs.Mark(err, ErrInvalidPayload)
	}

	metadata, err := chunkmeta.Encode(string(booking.KindAppointment), payload)
	if err != nil {
		return "", errs.Mark(err, ErrInvalidPayload)
	}

	session, err := c.provider.CreateSession(ctx, metadata, PriceSpec{
		Name:        "Appointment deposit",
		Currency:    c.pricing.Currency,
		AmountCents: c.pricing.AppointmentDepositCents,
	})
	if err != nil {
		return "", errs.Mark(err, ErrProviderUnavailable)
	}

	slog.Info("appointment checkout initiated",
		"session_id", session.ID, "date", payload.Date, "time", payload.Time)
	return session.URL, nil
}

func (c *checkoutUseCaseImpl) InitiateListing(ctx context.Context, payload *booking.ListingPayload) (string, error) {
	if err := payload.Validate(); err != nil {
		return "", errs.Mark(err, ErrInvalidPayload)
	}

	metadata, err := chunkmeta.Encode(string(booking.KindListing), payload)
	if err != nil {
		return "", errs.Mark(err, ErrInvalidPayload)
	}

	session, err := c.provider.CreateSession(ctx, metadata, PriceSpec{
		Name:        "Listing publication fee",
		Currency:    c.pricing.Currency,
		AmountCents: c.pricing.ListingFeeCents,
	})
	if err != nil {
		return "", errs.Mark(err, ErrProviderUnavailable)
	}

	slog.Info("listing checkout initiated", "session_id", session.ID, "title", payload.Title)
	return session.URL, nil
}

package queries

import (
	"context"

	"github.com/google/uuid"

	"slotgate/internal/domain/booking"
)

// AppointmentQueries serves the admin views and the post-payment
// confirmation lookup by session ID.
type AppointmentQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*booking.Appointment, error)
	GetBySessionID(ctx context.Context, sessionID string) (*booking.Appointment, error)
	List(ctx context.Context, filter AppointmentFilter) ([]booking.Appointment, error)
}

type appointmentQueriesImpl struct {
	store AppointmentReadStore
}

func NewAppointmentQueries(store AppointmentReadStore) AppointmentQueries {
	return &appointmentQueriesImpl{store: store}
}

func (q *appointmentQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*booking.Appointment, error) {
	return q.store.FindByID(ctx, id)
}

func (q *appointmentQueriesImpl) GetBySessionID(ctx context.Context, sessionID string) (*booking.Appointment, error) {
	return q.store.FindBySessionID(ctx, sessionID)
}

func (q *appointmentQueriesImpl) List(ctx context.Context, filter AppointmentFilter) ([]booking.Appointment, error) {
	return q.store.List(ctx, filter)
}

type ListingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*booking.RentalListing, error)
	GetBySessionID(ctx context.Context, sessionID string) (*booking.RentalListing, error)
	List(ctx context.Context, filter ListingFilter) ([]booking.RentalListing, error)
}

type listingQueriesImpl struct {
	store ListingReadStore
}

func NewListingQueries(store ListingReadStore) ListingQueries {
	return &listingQueriesImpl{store: store}
}

func (q *listingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*booking.RentalListing, error) {
	return q.store.FindByID(ctx, id)
}

func (q *listingQueriesImpl) GetBySessionID(ctx context.Context, sessionID string) (*booking.RentalListing, error) {
	return q.store.FindBySessionID(ctx, sessionID)
}

func (q *listingQueriesImpl) List(ctx context.Context, filter ListingFilter) ([]booking.RentalListing, error) {
	return q.store.List(ctx, filter)
}

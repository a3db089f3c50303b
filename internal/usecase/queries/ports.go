package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"slotgate/internal/domain/booking"
	"slotgate/internal/domain/schedule"
)

// ScheduleReadStore serves the availability computation. RuleForWeekday
// returns (nil, nil) when the business is closed on that weekday.
type ScheduleReadStore interface {
	RuleForWeekday(ctx context.Context, dow time.Weekday) (*schedule.WorkingHourRule, error)
	ListRules(ctx context.Context) ([]schedule.WorkingHourRule, error)
	BlockedDatesBetween(ctx context.Context, from, to time.Time) ([]schedule.BlockedDate, error)
	BookedTimes(ctx context.Context, date time.Time) ([]schedule.TimeOfDay, error)
}

type AppointmentReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Appointment, error)
	FindBySessionID(ctx context.Context, sessionID string) (*booking.Appointment, error)
	List(ctx context.Context, filter AppointmentFilter) ([]booking.Appointment, error)
}

type ListingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*booking.RentalListing, error)
	FindBySessionID(ctx context.Context, sessionID string) (*booking.RentalListing, error)
	List(ctx context.Context, filter ListingFilter) ([]booking.RentalListing, error)
}

// AppointmentFilter narrows the admin listing. Zero values mean "no filter".
type AppointmentFilter struct {
	Status booking.Status
	From   time.Time
	To     time.Time
}

type ListingFilter struct {
	Status booking.Status
}

package booking

import (
	"time"

	"slotgate/internal/domain/schedule"

	"github.com/google/uuid"
)

// Appointment is the durable record the webhook reconciler commits once a
// checkout session completes. provider_session_id is the idempotency key:
// at most one record exists per session, enforced by a unique index.
type Appointment struct {
	ID                uuid.UUID
	Name              string
	Email             string
	Phone             string
	Services          []string
	Date              time.Time
	Time              schedule.TimeOfDay
	Description       string
	AttachmentURL     string
	PaymentStatus     string
	ProviderSessionID string
	ProviderPaymentID string
	Status            Status
	CreatedAt         time.Time
}

// NewAppointment builds the confirmed record from a validated payload and
// the provider identifiers of the completed session.
func NewAppointment(p *AppointmentPayload, sessionID, paymentID string, status Status) (*Appointment, error) {
	date, err := p.DateValue()
	if err != nil {
		return nil, err
	}
	slot, err := p.TimeValue()
	if err != nil {
		return nil, err
	}
	return &Appointment{
		ID:                uuid.New(),
		Name:              p.Name,
		Email:             p.Email,
		Phone:             p.Phone,
		Services:          p.Services,
		Date:              date,
		Time:              slot,
		Description:       p.Description,
		AttachmentURL:     p.AttachmentURL,
		PaymentStatus:     PaymentStatusPaid,
		ProviderSessionID: sessionID,
		ProviderPaymentID: paymentID,
		Status:            status,
	}, nil
}

type RentalListing struct {
	ID                uuid.UUID
	Name              string
	Email             string
	Phone             string
	Title             string
	Address           string
	Rooms             int
	SizeSqm           float64
	RentCents         int64
	Description       string
	ImageURLs         []string
	PaymentStatus     string
	ProviderSessionID string
	ProviderPaymentID string
	Status            Status
	CreatedAt         time.Time
}

func NewRentalListing(p *ListingPayload, sessionID, paymentID string) *RentalListing {
	return &RentalListing{
		ID:                uuid.New(),
		Name:              p.Name,
		Email:             p.Email,
		Phone:             p.Phone,
		Title:             p.Title,
		Address:           p.Address,
		Rooms:             p.Rooms,
		SizeSqm:           p.SizeSqm,
		RentCents:         p.RentCents,
		Description:       p.Description,
		ImageURLs:         p.ImageURLs,
		PaymentStatus:     PaymentStatusPaid,
		ProviderSessionID: sessionID,
		ProviderPaymentID: paymentID,
		// listings need administrative approval before going public
		Status: StatusPendingReview,
	}
}

// WebhookErrorLog is the append-only diagnostic trail for events whose
// payload failed to reconcile. Written, never read, by the service.
type WebhookErrorLog struct {
	ID           uuid.UUID
	EventID      string
	EventType    string
	ErrorMessage string
	RawMetadata  map[string]string
	CreatedAt    time.Time
}

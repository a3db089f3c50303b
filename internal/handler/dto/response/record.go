package response

import (
	"time"

	"github.com/google/uuid"

	"slotgate/internal/domain/booking"
	"slotgate/internal/domain/schedule"
)

type CheckoutResponse struct {
	RedirectURL string `json:"redirectUrl"`
}

type AppointmentResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Services      []string  `json:"services"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Description   string    `json:"description,omitempty"`
	AttachmentURL string    `json:"attachmentUrl,omitempty"`
	PaymentStatus string    `json:"paymentStatus"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

type ListingResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Title         string    `json:"title"`
	Address       string    `json:"address"`
	Rooms         int       `json:"rooms"`
	SizeSqm       float64   `json:"sizeSqm"`
	RentCents     int64     `json:"rentCents"`
	Description   string    `json:"description,omitempty"`
	ImageURLs     []string  `json:"imageUrls"`
	PaymentStatus string    `json:"paymentStatus"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

func FromAppointment(rec *booking.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:            rec.ID,
		Name:          rec.Name,
		Email:         rec.Email,
		Phone:         rec.Phone,
		Services:      rec.Services,
		Date:          schedule.DateKey(rec.Date),
		Time:          rec.Time.String(),
		Description:   rec.Description,
		AttachmentURL: rec.AttachmentURL,
		PaymentStatus: rec.PaymentStatus,
		Status:        rec.Status.String(),
		CreatedAt:     rec.CreatedAt,
	}
}

func FromAppointments(recs []booking.Appointment) []AppointmentResponse {
	out := make([]AppointmentResponse, 0, len(recs))
	for i := range recs {
		out = append(out, *FromAppointment(&recs[i]))
	}
	return out
}

func FromListing(rec *booking.RentalListing) *ListingResponse {
	return &ListingResponse{
		ID:            rec.ID,
		Name:          rec.Name,
		Email:         rec.Email,
		Phone:         rec.Phone,
		Title:         rec.Title,
		Address:       rec.Address,
		Rooms:         rec.Rooms,
		SizeSqm:       rec.SizeSqm,
		RentCents:     rec.RentCents,
		Description:   rec.Description,
		ImageURLs:     rec.ImageURLs,
		PaymentStatus: rec.PaymentStatus,
		Status:        rec.Status.String(),
		CreatedAt:     rec.CreatedAt,
	}
}

func FromListings(recs []booking.RentalListing) []ListingResponse {
	out := make([]ListingResponse, 0, len(recs))
	for i := range recs {
		out = append(out, *FromListing(&recs[i]))
	}
	return out
}

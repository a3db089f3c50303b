//go:build unit || e2e

package builder

import (
	"time"

	"github.com/google/uuid"

	"slotgate/internal/domain/booking"
	"slotgate/internal/domain/schedule"
	reqdto "slotgate/internal/handler/dto/request"
)

type AppointmentBuilder struct {
	Name              string
	Email             string
	Phone             string
	Services          []string
	Date              string
	Time              string
	Description       string
	Status            booking.Status
	ProviderSessionID string
	ProviderPaymentID string
	CreatedAt         time.Time
}

func NewAppointmentBuilder() *AppointmentBuilder {
	return &AppointmentBuilder{
		Name:              "山田太郎",
		Email:             "taro@example.com",
		Phone:             "090-1234-5678",
		Services:          []string{"haircut"},
		Date:              "2026-03-02",
		Time:              "10:00",
		Status:            booking.StatusConfirmed,
		ProviderSessionID: "cs_test_" + uuid.NewString()[:8],
		ProviderPaymentID: "pi_test_" + uuid.NewString()[:8],
		CreatedAt:         time.Now(),
	}
}

func (b *AppointmentBuilder) WithStatus(s booking.Status) *AppointmentBuilder {
	b.Status = s
	return b
}

func (b *AppointmentBuilder) WithSessionID(id string) *AppointmentBuilder {
	b.ProviderSessionID = id
	return b
}

func (b *AppointmentBuilder) BuildPayload() *booking.AppointmentPayload {
	return &booking.AppointmentPayload{
		Name:        b.Name,
		Email:       b.Email,
		Phone:       b.Phone,
		Services:    b.Services,
		Date:        b.Date,
		Time:        b.Time,
		Description: b.Description,
	}
}

func (b *AppointmentBuilder) BuildRecord() *booking.Appointment {
	date, _ := time.Parse("2006-01-02", b.Date)
	slot, _ := schedule.ParseTimeOfDay(b.Time)
	return &booking.Appointment{
		ID:                uuid.New(),
		Name:              b.Name,
		Email:             b.Email,
		Phone:             b.Phone,
		Services:          b.Services,
		Date:              date,
		Time:              slot,
		Description:       b.Description,
		PaymentStatus:     booking.PaymentStatusPaid,
		ProviderSessionID: b.ProviderSessionID,
		ProviderPaymentID: b.ProviderPaymentID,
		Status:            b.Status,
		CreatedAt:         b.CreatedAt,
	}
}

func (b *AppointmentBuilder) BuildCheckoutRequestDTO() reqdto.CheckoutAppointmentRequest {
	return reqdto.CheckoutAppointmentRequest{
		Name:        b.Name,
		Email:       b.Email,
		Phone:       b.Phone,
		Services:    b.Services,
		Date:        b.Date,
		Time:        b.Time,
		Description: b.Description,
	}
}

type ListingBuilder struct {
	Name              string
	Email             string
	Phone             string
	Title             string
	Address           string
	Rooms             int
	SizeSqm           float64
	RentCents         int64
	ProviderSessionID string
	CreatedAt         time.Time
}

func NewListingBuilder() *ListingBuilder {
	return &ListingBuilder{
		Name:              "鈴木花子",
		Email:             "hanako@example.com",
		Phone:             "080-0000-1111",
		Title:             "Sunny 2LDK near the station",
		Address:           "Shibuya 1-2-3",
		Rooms:             2,
		SizeSqm:           55.5,
		RentCents:         15000000,
		ProviderSessionID: "cs_test_" + uuid.NewString()[:8],
		CreatedAt:         time.Now(),
	}
}

func (b *ListingBuilder) BuildPayload() *booking.ListingPayload {
	return &booking.ListingPayload{
		Name:      b.Name,
		Email:     b.Email,
		Phone:     b.Phone,
		Title:     b.Title,
		Address:   b.Address,
		Rooms:     b.Rooms,
		SizeSqm:   b.SizeSqm,
		RentCents: b.RentCents,
	}
}

func (b *ListingBuilder) BuildRecord() *booking.RentalListing {
	rec := booking.NewRentalListing(b.BuildPayload(), b.ProviderSessionID, "pi_test")
	rec.CreatedAt = b.CreatedAt
	return rec
}

func (b *ListingBuilder) BuildCheckoutRequestDTO() reqdto.CheckoutListingRequest {
	return reqdto.CheckoutListingRequest{
		Name:      b.Name,
		Email:     b.Email,
		Phone:     b.Phone,
		Title:     b.Title,
		Address:   b.Address,
		Rooms:     b.Rooms,
		SizeSqm:   b.SizeSqm,
		RentCents: b.RentCents,
	}
}

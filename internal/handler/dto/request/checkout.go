package request

import (
	"strings"

	"slotgate/internal/domain/booking"
)

type CheckoutAppointmentRequest struct {
	Name          string   `json:"name" binding:"required"`
	Email         string   `json:"email" binding:"required"`
	Phone         string   `json:"phone" binding:"required"`
	Services      []string `json:"services" binding:"required"`
	Date          string   `json:"date" binding:"required"`
	Time          string   `json:"time" binding:"required"`
	Description   string   `json:"description,omitempty"`
	AttachmentURL string   `json:"attachment_url,omitempty"`
}

func (r CheckoutAppointmentRequest) ToPayload() *booking.AppointmentPayload {
	return &booking.AppointmentPayload{
		Name:          strings.TrimSpace(r.Name),
		Email:         strings.TrimSpace(r.Email),
		Phone:         strings.TrimSpace(r.Phone),
		Services:      r.Services,
		Date:          r.Date,
		Time:          r.Time,
		Description:   r.Description,
		AttachmentURL: r.AttachmentURL,
	}
}

type CheckoutListingRequest struct {
	Name        string   `json:"name" binding:"required"`
	Email       string   `json:"email" binding:"required"`
	Phone       string   `json:"phone" binding:"required"`
	Title       string   `json:"title" binding:"required"`
	Address     string   `json:"address" binding:"required"`
	Rooms       int      `json:"rooms" binding:"required"`
	SizeSqm     float64  `json:"size_sqm,omitempty"`
	RentCents   int64    `json:"rent_cents" binding:"required"`
	Description string   `json:"description,omitempty"`
	ImageURLs   []string `json:"image_urls,omitempty"`
}

func (r CheckoutListingRequest) ToPayload() *booking.ListingPayload {
	return &booking.ListingPayload{
		Name:        strings.TrimSpace(r.Name),
		Email:       strings.TrimSpace(r.Email),
		Phone:       strings.TrimSpace(r.Phone),
		Title:       strings.TrimSpace(r.Title),
		Address:     strings.TrimSpace(r.Address),
		Rooms:       r.Rooms,
		SizeSqm:     r.SizeSqm,
		RentCents:   r.RentCents,
		Description: r.Description,
		ImageURLs:   r.ImageURLs,
	}
}

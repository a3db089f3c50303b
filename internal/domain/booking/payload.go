package booking

import (
	"regexp"
	"strings"
	"time"

	"slotgate/internal/domain/schedule"
	"slotgate/internal/pkg/errs"
)

var (
	ErrMissingName        = errs.New("name is required")
	ErrInvalidEmail       = errs.New("invalid email address")
	ErrMissingPhone       = errs.New("phone is required")
	ErrNoServicesSelected = errs.New("at least one service must be selected")
	ErrInvalidDate        = errs.New("invalid date")
	ErrInvalidTime        = errs.New("invalid time")
	ErrMissingTitle       = errs.New("listing title is required")
	ErrInvalidRent        = errs.New("rent must be positive")
	ErrInvalidRooms       = errs.New("rooms must be positive")
	ErrTooManyImages      = errs.New("too many image URLs")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const maxListingImages = 20

// AppointmentPayload is the full user-entered booking form. It is never
// persisted before payment: it lives in the checkout session metadata until
// the reconciler commits it. JSON tags define the canonical encoding.
type AppointmentPayload struct {
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone"`
	Services      []string `json:"services"`
	Date          string   `json:"date"` // 2006-01-02
	Time          string   `json:"time"` // 15:04
	Description   string   `json:"description,omitempty"`
	AttachmentURL string   `json:"attachment_url,omitempty"`
}

func (p *AppointmentPayload) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrMissingName
	}
	if !emailPattern.MatchString(p.Email) {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(p.Phone) == "" {
		return ErrMissingPhone
	}
	if len(p.Services) == 0 {
		return ErrNoServicesSelected
	}
	if _, err := p.DateValue(); err != nil {
		return err
	}
	if _, err := p.TimeValue(); err != nil {
		return err
	}
	return nil
}

func (p *AppointmentPayload) DateValue() (time.Time, error) {
	d, err := time.Parse("2006-01-02", p.Date)
	if err != nil {
		return time.Time{}, errs.Mark(err, ErrInvalidDate)
	}
	return d, nil
}

func (p *AppointmentPayload) TimeValue() (schedule.TimeOfDay, error) {
	t, err := schedule.ParseTimeOfDay(p.Time)
	if err != nil {
		return 0, errs.Mark(err, ErrInvalidTime)
	}
	return t, nil
}

// ListingPayload is the rental-listing submission form, gated on the listing
// fee the same way appointments are gated on the deposit.
type ListingPayload struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Title       string   `json:"title"`
	Address     string   `json:"address"`
	Rooms       int      `json:"rooms"`
	SizeSqm     float64  `json:"size_sqm"`
	RentCents   int64    `json:"rent_cents"`
	Description string   `json:"description,omitempty"`
	ImageURLs   []string `json:"image_urls,omitempty"`
}

func (p *ListingPayload) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrMissingName
	}
	if !emailPattern.MatchString(p.Email) {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(p.Phone) == "" {
		return ErrMissingPhone
	}
	if strings.TrimSpace(p.Title) == "" {
		return ErrMissingTitle
	}
	if p.Rooms <= 0 {
		return ErrInvalidRooms
	}
	if p.RentCents <= 0 {
		return ErrInvalidRent
	}
	if len(p.ImageURLs) > maxListingImages {
		return ErrTooManyImages
	}
	return nil
}

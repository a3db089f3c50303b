package commands

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"slotgate/internal/domain/booking"
	"slotgate/internal/pkg/errs"
)

var ErrInvalidStatus = errs.New("invalid record status")

// RecordCommands covers the back-office mutations on committed records,
// mainly resolving pending_review flags left by the reconciler.
type RecordCommands interface {
	UpdateAppointmentStatus(ctx context.Context, id uuid.UUID, status booking.Status) error
	DeleteAppointment(ctx context.Context, id uuid.UUID) error
	UpdateListingStatus(ctx context.Context, id uuid.UUID, status booking.Status) error
}

type recordUseCaseImpl struct {
	appointments AppointmentRepository
	listings     ListingRepository
}

func NewRecordCommands(appointments AppointmentRepository, listings ListingRepository) RecordCommands {
	return &recordUseCaseImpl{appointments: appointments, listings: listings}
}

func (u *recordUseCaseImpl) UpdateAppointmentStatus(ctx context.Context, id uuid.UUID, status booking.Status) error {
	if !status.IsValid() {
		return errs.Mark(errs.New("status "+status.String()), ErrInvalidStatus)
	}
	if err := u.appointments.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	slog.Info("appointment status updated", "appointment_id", id, "status", status.String())
	return nil
}

func (u *recordUseCaseImpl) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	if err := u.appointments.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("appointment deleted", "appointment_id", id)
	return nil
}

func (u *recordUseCaseImpl) UpdateListingStatus(ctx context.Context, id uuid.UUID, status booking.Status) error {
	if !status.IsValid() {
		return errs.Mark(errs.New("status "+status.String()), ErrInvalidStatus)
	}
	if err := u.listings.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	slog.Info("listing status updated", "listing_id", id, "status", status.String())
	return nil
}

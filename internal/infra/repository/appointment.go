package repository

import (
	"context"
	"encoding/json"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"slotgate/internal/domain/booking"
	"slotgate/internal/domain/schedule"
	"slotgate/internal/infra"
	"slotgate/internal/usecase/queries"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var appointmentColumns = []string{
	"id", "name", "email", "phone", "services", "date", "start_time",
	"description", "attachment_url", "payment_status",
	"provider_session_id", "provider_payment_id", "status", "created_at",
}

type AppointmentRepository struct {
	pool *pgxpool.Pool
}

func NewAppointmentRepository(pool *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{pool: pool}
}

func (r *AppointmentRepository) Create(ctx context.Context, rec *booking.Appointment) error {
	services, err := json.Marshal(rec.Services)
	if err != nil {
		return infra.WrapDBErr("failed to encode appointment services", err)
	}

	query, args, err := psql.Insert("appointments").
		Columns(
			"id", "name", "email", "phone", "services", "date", "start_time",
			"description", "attachment_url", "payment_status",
			"provider_session_id", "provider_payment_id", "status",
		).
		Values(
			rec.ID, rec.Name, rec.Email, rec.Phone, services, rec.Date,
			int(rec.Time), rec.Description, rec.AttachmentURL, rec.PaymentStatus,
			rec.ProviderSessionID, rec.ProviderPaymentID, string(rec.Status),
		).
		ToSql()
	if err != nil {
		return infra.WrapDBErr("failed to build appointment insert", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return infra.WrapDBErr("failed to insert appointment", err)
	}
	return nil
}

func (r *AppointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Appointment, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

func (r *AppointmentRepository) FindBySessionID(ctx context.Context, sessionID string) (*booking.Appointment, error) {
	return r.findOne(ctx, sq.Eq{"provider_session_id": sessionID})
}

func (r *AppointmentRepository) findOne(ctx context.Context, pred any) (*booking.Appointment, error) {
	query, args, err := psql.Select(appointmentColumns...).
		From("appointments").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, infra.WrapDBErr("failed to build appointment select", err)
	}

	rec, err := scanAppointment(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, infra.WrapDBErr("failed to find appointment", err)
	}
	return rec, nil
}

// CountActiveAt counts non-cancelled appointments holding the given slot.
// Used by the reconciler's advisory conflict check and the availability read.
func (r *AppointmentRepository) CountActiveAt(ctx context.Context, date time.Time, t schedule.TimeOfDay) (int64, error) {
	query, args, err := psql.Select("COUNT(*)").
		From("appointments").
		Where(sq.Eq{"date": date, "start_time": int(t)}).
		Where(sq.NotEq{"status": string(booking.StatusCancelled)}).
		ToSql()
	if err != nil {
		return 0, infra.WrapDBErr("failed to build appointment count", err)
	}

	var n int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, infra.WrapDBErr("failed to count appointments", err)
	}
	return n, nil
}

func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status booking.Status) error {
	query, args, err := psql.Update("appointments").
		Set("status", string(status)).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return infra.WrapDBErr("failed to build appointment status update", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapDBErr("failed to update appointment status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "appointment not found")
	}
	return nil
}

func (r *AppointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := psql.Delete("appointments").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return infra.WrapDBErr("failed to build appointment delete", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapDBErr("failed to delete appointment", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "appointment not found")
	}
	return nil
}

func (r *AppointmentRepository) List(ctx context.Context, filter queries.AppointmentFilter) ([]booking.Appointment, error) {
	builder := psql.Select(appointmentColumns...).
		From("appointments").
		OrderBy("date ASC", "start_time ASC")
	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": string(filter.Status)})
	}
	if !filter.From.IsZero() {
		builder = builder.Where(sq.GtOrEq{"date": filter.From})
	}
	if !filter.To.IsZero() {
		builder = builder.Where(sq.LtOrEq{"date": filter.To})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, infra.WrapDBErr("failed to build appointment list", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapDBErr("failed to list appointments", err)
	}
	defer rows.Close()

	var recs []booking.Appointment
	for rows.Next() {
		rec, err := scanAppointment(rows)
		if err != nil {
			return nil, infra.WrapDBErr("failed to scan appointment", err)
		}
		recs = append(recs, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapDBErr("failed to read appointment rows", err)
	}
	return recs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAppointment(row rowScanner) (*booking.Appointment, error) {
	var (
		rec       booking.Appointment
		services  []byte
		startTime int
		status    string
	)
	err := row.Scan(
		&rec.ID, &rec.Name, &rec.Email, &rec.Phone, &services, &rec.Date,
		&startTime, &rec.Description, &rec.AttachmentURL, &rec.PaymentStatus,
		&rec.ProviderSessionID, &rec.ProviderPaymentID, &status, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(services, &rec.Services); err != nil {
		return nil, err
	}
	rec.Time = schedule.TimeOfDay(startTime)
	rec.Status = booking.Status(status)
	return &rec, nil
}

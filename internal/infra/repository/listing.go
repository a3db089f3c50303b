package repository

import (
	"context"
	"encoding/json"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"slotgate/internal/domain/booking"
	"slotgate/internal/infra"
	"slotgate/internal/usecase/queries"
)

var listingColumns = []string{
	"id", "name", "email", "phone", "title", "address", "rooms", "size_sqm",
	"rent_cents", "description", "image_urls", "payment_status",
	"provider_session_id", "provider_payment_id", "status", "created_at",
}

type ListingRepository struct {
	pool *pgxpool.Pool
}

func NewListingRepository(pool *pgxpool.Pool) *ListingRepository {
	return &ListingRepository{pool: pool}
}

func (r *ListingRepository) Create(ctx context.Context, rec *booking.RentalListing) error {
	imageURLs, err := json.Marshal(rec.ImageURLs)
	if err != nil {
		return infra.WrapDBErr("failed to encode listing image urls", err)
	}

	query, args, err := psql.Insert("rental_listings").
		Columns(
			"id", "name", "email", "phone", "title", "address", "rooms",
			"size_sqm", "rent_cents", "description", "image_urls",
			"payment_status", "provider_session_id", "provider_payment_id", "status",
		).
		Values(
			rec.ID, rec.Name, rec.Email, rec.Phone, rec.Title, rec.Address,
			rec.Rooms, rec.SizeSqm, rec.RentCents, rec.Description, imageURLs,
			rec.PaymentStatus, rec.ProviderSessionID, rec.ProviderPaymentID,
			string(rec.Status),
		).
		ToSql()
	if err != nil {
		return infra.WrapDBErr("failed to build listing insert", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return infra.WrapDBErr("failed to insert listing", err)
	}
	return nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.RentalListing, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

func (r *ListingRepository) FindBySessionID(ctx context.Context, sessionID string) (*booking.RentalListing, error) {
	return r.findOne(ctx, sq.Eq{"provider_session_id": sessionID})
}

func (r *ListingRepository) findOne(ctx context.Context, pred any) (*booking.RentalListing, error) {
	query, args, err := psql.Select(listingColumns...).
		From("rental_listings").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, infra.WrapDBErr("failed to build listing select", err)
	}

	rec, err := scanListing(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, infra.WrapDBErr("failed to find listing", err)
	}
	return rec, nil
}

func (r *ListingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status booking.Status) error {
	query, args, err := psql.Update("rental_listings").
		Set("status", string(status)).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return infra.WrapDBErr("failed to build listing status update", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapDBErr("failed to update listing status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "listing not found")
	}
	return nil
}

func (r *ListingRepository) List(ctx context.Context, filter queries.ListingFilter) ([]booking.RentalListing, error) {
	builder := psql.Select(listingColumns...).
		From("rental_listings").
		OrderBy("created_at DESC")
	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": string(filter.Status)})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, infra.WrapDBErr("failed to build listing list", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapDBErr("failed to list listings", err)
	}
	defer rows.Close()

	var recs []booking.RentalListing
	for rows.Next() {
		rec, err := scanListing(rows)
		if err != nil {
			return nil, infra.WrapDBErr("failed to scan listing", err)
		}
		recs = append(recs, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapDBErr("failed to read listing rows", err)
	}
	return recs, nil
}

func scanListing(row rowScanner) (*booking.RentalListing, error) {
	var (
		rec       booking.RentalListing
		imageURLs []byte
		status    string
	)
	err := row.Scan(
		&rec.ID, &rec.Name, &rec.Email, &rec.Phone, &rec.Title, &rec.Address,
		&rec.Rooms, &rec.SizeSqm, &rec.RentCents, &rec.Description, &imageURLs,
		&rec.PaymentStatus, &rec.ProviderSessionID, &rec.ProviderPaymentID,
		&status, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(imageURLs, &rec.ImageURLs); err != nil {
		return nil, err
	}
	rec.Status = booking.Status(status)
	return &rec, nil
}

package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"slotgate/internal/domain/booking"
	"slotgate/internal/domain/schedule"
	"slotgate/internal/infra"
)

var ruleColumns = []string{
	"id", "day_of_week", "start_time", "end_time", "slot_duration",
	"is_active", "created_at", "updated_at",
}

// ScheduleRepository persists the availability configuration and serves the
// reads the slot computation needs, including booked times off the
// appointments table.
type ScheduleRepository struct {
	pool *pgxpool.Pool
}

func NewScheduleRepository(pool *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{pool: pool}
}

// UpsertRule keeps one rule per weekday: a second write for the same
// day_of_week replaces the window instead of adding a row.
func (r *ScheduleRepository) UpsertRule(ctx context.Context, rule *schedule.WorkingHourRule) error {
	query, args, err := psql.Insert("working_hour_rules").
		Columns("id", "day_of_week", "start_time", "end_time", "slot_duration", "is_active").
		Values(
			uuid.New(), int(rule.DayOfWeek), int(rule.StartTime), int(rule.EndTime),
			rule.SlotDuration, rule.IsActive,
		).
		Suffix(`ON CONFLICT (day_of_week) DO UPDATE SET
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			slot_duration = EXCLUDED.slot_duration,
			is_active = EXCLUDED.is_active,
			updated_at = NOW()`).
		ToSql()
	if err != nil {
		return infra.WrapDBErr("failed to build rule upsert", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return infra.WrapDBErr("failed to upsert working hour rule", err)
	}
	return nil
}

func (r *ScheduleRepository) RuleForWeekday(ctx context.Context, dow time.Weekday) (*schedule.WorkingHourRule, error) {
	query, args, err := psql.Select(ruleColumns...).
		From("working_hour_rules").
		Where(sq.Eq{"day_of_week": int(dow)}).
		ToSql()
	if err != nil {
		return nil, infra.WrapDBErr("failed to build rule select", err)
	}

	rule, err := scanRule(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		wrapped := infra.WrapDBErr("failed to find working hour rule", err)
		if infra.IsKind(wrapped, infra.KindNotFound) {
			// closed weekday, not an error
			return nil, nil
		}
		return nil, wrapped
	}
	return rule, nil
}

func (r *ScheduleRepository) ListRules(ctx context.Context) ([]schedule.WorkingHourRule, error) {
	query, args, err := psql.Select(ruleColumns...).
		From("working_hour_rules").
		OrderBy("day_of_week ASC").
		ToSql()
	if err != nil {
		return nil, infra.WrapDBErr("failed to build rule list", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapDBErr("failed to list working hour rules", err)
	}
	defer rows.Close()

	var rules []schedule.WorkingHourRule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, infra.WrapDBErr("failed to scan working hour rule", err)
		}
		rules = append(rules, *rule)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapDBErr("failed to read rule rows", err)
	}
	return rules, nil
}

func (r *ScheduleRepository) AddBlockedDate(ctx context.Context, date time.Time, reason string) error {
	query, args, err := psql.Insert("blocked_dates").
		Columns("id", "date", "reason").
		Values(uuid.New(), date, reason).
		ToSql()
	if err != nil {
		return infra.WrapDBErr("failed to build blocked date insert", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return infra.WrapDBErr("failed to insert blocked date", err)
	}
	return nil
}

func (r *ScheduleRepository) RemoveBlockedDate(ctx context.Context, date time.Time) error {
	query, args, err := psql.Delete("blocked_dates").
		Where(sq.Eq{"date": date}).
		ToSql()
	if err != nil {
		return infra.WrapDBErr("failed to build blocked date delete", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapDBErr("failed to delete blocked date", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "blocked date not found")
	}
	return nil
}

func (r *ScheduleRepository) BlockedDatesBetween(ctx context.Context, from, to time.Time) ([]schedule.BlockedDate, error) {
	query, args, err := psql.Select("id", "date", "reason", "created_at").
		From("blocked_dates").
		Where(sq.GtOrEq{"date": from}).
		Where(sq.LtOrEq{"date": to}).
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return nil, infra.WrapDBErr("failed to build blocked date select", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapDBErr("failed to query blocked dates", err)
	}
	defer rows.Close()

	var dates []schedule.BlockedDate
	for rows.Next() {
		var d schedule.BlockedDate
		if err := rows.Scan(&d.ID, &d.Date, &d.Reason, &d.CreatedAt); err != nil {
			return nil, infra.WrapDBErr("failed to scan blocked date", err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapDBErr("failed to read blocked date rows", err)
	}
	return dates, nil
}

func (r *ScheduleRepository) BookedTimes(ctx context.Context, date time.Time) ([]schedule.TimeOfDay, error) {
	query, args, err := psql.Select("start_time").
		From("appointments").
		Where(sq.Eq{"date": date}).
		Where(sq.NotEq{"status": string(booking.StatusCancelled)}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, infra.WrapDBErr("failed to build booked times select", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapDBErr("failed to query booked times", err)
	}
	defer rows.Close()

	var times []schedule.TimeOfDay
	for rows.Next() {
		var minutes int
		if err := rows.Scan(&minutes); err != nil {
			return nil, infra.WrapDBErr("failed to scan booked time", err)
		}
		times = append(times, schedule.TimeOfDay(minutes))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapDBErr("failed to read booked time rows", err)
	}
	return times, nil
}

func scanRule(row rowScanner) (*schedule.WorkingHourRule, error) {
	var (
		rule       schedule.WorkingHourRule
		dow        int
		start, end int
	)
	err := row.Scan(
		&rule.ID, &dow, &start, &end, &rule.SlotDuration,
		&rule.IsActive, &rule.CreatedAt, &rule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	rule.DayOfWeek = time.Weekday(dow)
	rule.StartTime = schedule.TimeOfDay(start)
	rule.EndTime = schedule.TimeOfDay(end)
	return &rule, nil
}

package commands

import (
	"context"
	"log/slog"
	"time"

	"slotgate/internal/domain/schedule"
	"slotgate/internal/infra"
	"slotgate/internal/pkg/errs"
)

var ErrInvalidRule = errs.New("invalid working hour rule")

// ScheduleCommands mutates the availability configuration. One rule per
// weekday; upserting replaces the previous window for that day.
type ScheduleCommands interface {
	UpsertWorkingHours(ctx context.Context, rule *schedule.WorkingHourRule) error
	BlockDate(ctx context.Context, date time.Time, reason string) error
	UnblockDate(ctx context.Context, date time.Time) error
}

type scheduleUseCaseImpl struct {
	repo ScheduleRepository
}

func NewScheduleCommands(repo ScheduleRepository) ScheduleCommands {
	return &scheduleUseCaseImpl{repo: repo}
}

func (u *scheduleUseCaseImpl) UpsertWorkingHours(ctx context.Context, rule *schedule.WorkingHourRule) error {
	if err := rule.Validate(); err != nil {
		return errs.Mark(err, ErrInvalidRule)
	}
	if err := u.repo.UpsertRule(ctx, rule); err != nil {
		return err
	}
	slog.Info("working hours updated",
		"day_of_week", rule.DayOfWeek.String(),
		"start", rule.StartTime.String(),
		"end", rule.EndTime.String(),
		"slot_minutes", rule.SlotDuration,
		"active", rule.IsActive)
	return nil
}

// BlockDate is idempotent: blocking an already-blocked date succeeds.
func (u *scheduleUseCaseImpl) BlockDate(ctx context.Context, date time.Time, reason string) error {
	if err := u.repo.AddBlockedDate(ctx, date, reason); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			slog.Debug("date already blocked", "date", schedule.DateKey(date))
			return nil
		}
		return err
	}
	slog.Info("date blocked", "date", schedule.DateKey(date), "reason", reason)
	return nil
}

func (u *scheduleUseCaseImpl) UnblockDate(ctx context.Context, date time.Time) error {
	if err := u.repo.RemoveBlockedDate(ctx, date); err != nil {
		return err
	}
	slog.Info("date unblocked", "date", schedule.DateKey(date))
	return nil
}

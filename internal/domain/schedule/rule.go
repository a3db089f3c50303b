package schedule

import (
	"time"

	"slotgate/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidRuleWindow  = errs.New("rule start must be before end")
	ErrInvalidSlotMinutes = errs.New("slot duration must be positive")
	ErrInvalidWeekday     = errs.New("day of week must be 0-6")
)

// WorkingHourRule describes when slots are offered on one weekday. At most
// one rule per weekday exists; a weekday without a rule is closed.
type WorkingHourRule struct {
	ID           uuid.UUID
	DayOfWeek    time.Weekday
	StartTime    TimeOfDay
	EndTime      TimeOfDay
	SlotDuration int // minutes
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (r *WorkingHourRule) Validate() error {
	if r.DayOfWeek < time.Sunday || r.DayOfWeek > time.Saturday {
		return ErrInvalidWeekday
	}
	if !r.StartTime.Before(r.EndTime) {
		return ErrInvalidRuleWindow
	}
	if r.SlotDuration <= 0 {
		return ErrInvalidSlotMinutes
	}
	return nil
}

// BlockedDate closes a calendar date entirely, whatever the weekday rule
// says. Inserts are idempotent per date.
type BlockedDate struct {
	ID        uuid.UUID
	Date      time.Time // date component only, UTC midnight
	Reason    string
	CreatedAt time.Time
}

// DateKey normalizes a timestamp to its calendar date for set membership.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

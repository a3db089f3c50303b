package queries

import (
	"context"
	"time"

	"slotgate/internal/domain/schedule"
	"slotgate/internal/pkg/clock"
	"slotgate/internal/pkg/errs"
)

var ErrBadDateRange = errs.New("invalid date range")

// maxGridDays bounds the calendar endpoint so a bad client can't ask for
// years of availability in one call.
const maxGridDays = 92

// DayAvailability is one calendar cell: either disabled outright or carrying
// the offerable slots for that date.
type DayAvailability struct {
	Date     string
	Disabled bool
	Slots    []schedule.TimeOfDay
}

// AvailabilityQueries computes offerable slots from rules, blocked dates and
// committed appointments. Pure reads; nothing here reserves anything.
type AvailabilityQueries interface {
	DaySlots(ctx context.Context, date time.Time) ([]schedule.TimeOfDay, error)
	DayGrid(ctx context.Context, from, to time.Time) ([]DayAvailability, error)
}

type availabilityQueriesImpl struct {
	store ScheduleReadStore
	clock clock.Clock
}

func NewAvailabilityQueries(store ScheduleReadStore, clk clock.Clock) AvailabilityQueries {
	return &availabilityQueriesImpl{store: store, clock: clk}
}

func (q *availabilityQueriesImpl) DaySlots(ctx context.Context, date time.Time) ([]schedule.TimeOfDay, error) {
	rule, err := q.store.RuleForWeekday(ctx, date.Weekday())
	if err != nil {
		return nil, err
	}
	blocked, err := q.blockedSet(ctx, date, date)
	if err != nil {
		return nil, err
	}
	booked, err := q.store.BookedTimes(ctx, date)
	if err != nil {
		return nil, err
	}
	return schedule.ComputeSlots(date, rule, blocked, booked), nil
}

func (q *availabilityQueriesImpl) DayGrid(ctx context.Context, from, to time.Time) ([]DayAvailability, error) {
	if to.Before(from) {
		return nil, ErrBadDateRange
	}
	if int(to.Sub(from).Hours()/24) > maxGridDays {
		return nil, errs.Mark(errs.New("date range too wide"), ErrBadDateRange)
	}

	rules, err := q.weekdayRules(ctx)
	if err != nil {
		return nil, err
	}
	blocked, err := q.blockedSet(ctx, from, to)
	if err != nil {
		return nil, err
	}

	now := q.clock.Now()
	var grid []DayAvailability
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		rule := rules[d.Weekday()]
		day := DayAvailability{Date: schedule.DateKey(d)}
		if schedule.IsDateDisabled(d, now, rule, blocked) {
			day.Disabled = true
			grid = append(grid, day)
			continue
		}
		booked, err := q.store.BookedTimes(ctx, d)
		if err != nil {
			return nil, err
		}
		day.Slots = schedule.ComputeSlots(d, rule, blocked, booked)
		day.Disabled = len(day.Slots) == 0
		grid = append(grid, day)
	}
	return grid, nil
}

func (q *availabilityQueriesImpl) weekdayRules(ctx context.Context) (map[time.Weekday]*schedule.WorkingHourRule, error) {
	rules, err := q.store.ListRules(ctx)
	if err != nil {
		return nil, err
	}
	byDay := make(map[time.Weekday]*schedule.WorkingHourRule, len(rules))
	for i := range rules {
		byDay[rules[i].DayOfWeek] = &rules[i]
	}
	return byDay, nil
}

func (q *availabilityQueriesImpl) blockedSet(ctx context.Context, from, to time.Time) (map[string]struct{}, error) {
	dates, err := q.store.BlockedDatesBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		set[schedule.DateKey(d.Date)] = struct{}{}
	}
	return set, nil
}

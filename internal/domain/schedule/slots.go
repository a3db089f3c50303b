package schedule

import (
	"log/slog"
	"time"
)

// maxSlotsPerDay bounds slot generation against a misconfigured rule
// (e.g. 1-minute slots over 24h). Not a business rule.
const maxSlotsPerDay = 500

// ComputeSlots turns the weekday rule, blocked dates and already-booked
// times for one date into the ordered list of offerable slots. Pure
// function: identical inputs yield identical, ascending output.
//
// rule may be nil (weekday closed). blocked is keyed by DateKey. booked
// holds start times of non-cancelled records on that date.
func ComputeSlots(date time.Time, rule *WorkingHourRule, blocked map[string]struct{}, booked []TimeOfDay) []TimeOfDay {
	if _, isBlocked := blocked[DateKey(date)]; isBlocked {
		return nil
	}
	if rule == nil || !rule.IsActive || rule.DayOfWeek != date.Weekday() {
		return nil
	}
	if rule.SlotDuration <= 0 {
		slog.Warn("working hour rule has non-positive slot duration, offering no slots",
			"day_of_week", int(rule.DayOfWeek), "slot_duration", rule.SlotDuration)
		return nil
	}

	taken := make(map[TimeOfDay]struct{}, len(booked))
	for _, t := range booked {
		taken[t] = struct{}{}
	}

	var slots []TimeOfDay
	for t, n := rule.StartTime, 0; t.Before(rule.EndTime) && n < maxSlotsPerDay; t, n = t.Add(rule.SlotDuration), n+1 {
		if _, ok := taken[t]; ok {
			continue
		}
		slots = append(slots, t)
	}
	return slots
}

// IsDateDisabled reports whether date is unselectable on the booking form:
// strictly before today, explicitly blocked, or without an active rule for
// its weekday.
func IsDateDisabled(date, now time.Time, rule *WorkingHourRule, blocked map[string]struct{}) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return true
	}
	if _, isBlocked := blocked[DateKey(date)]; isBlocked {
		return true
	}
	return rule == nil || !rule.IsActive || rule.DayOfWeek != date.Weekday()
}

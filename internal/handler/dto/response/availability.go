package response

import (
	"slotgate/internal/domain/schedule"
	"slotgate/internal/usecase/queries"
)

type DaySlotsResponse struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

type DayAvailabilityResponse struct {
	Date     string   `json:"date"`
	Disabled bool     `json:"disabled"`
	Slots    []string `json:"slots"`
}

type WorkingHoursResponse struct {
	DayOfWeek    int    `json:"dayOfWeek"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	SlotDuration int    `json:"slotDuration"`
	IsActive     bool   `json:"isActive"`
}

func FromSlots(date string, slots []schedule.TimeOfDay) DaySlotsResponse {
	return DaySlotsResponse{Date: date, Slots: formatSlots(slots)}
}

func FromDayGrid(grid []queries.DayAvailability) []DayAvailabilityResponse {
	out := make([]DayAvailabilityResponse, 0, len(grid))
	for _, day := range grid {
		out = append(out, DayAvailabilityResponse{
			Date:     day.Date,
			Disabled: day.Disabled,
			Slots:    formatSlots(day.Slots),
		})
	}
	return out
}

func FromRules(rules []schedule.WorkingHourRule) []WorkingHoursResponse {
	out := make([]WorkingHoursResponse, 0, len(rules))
	for _, r := range rules {
		out = append(out, WorkingHoursResponse{
			DayOfWeek:    int(r.DayOfWeek),
			StartTime:    r.StartTime.String(),
			EndTime:      r.EndTime.String(),
			SlotDuration: r.SlotDuration,
			IsActive:     r.IsActive,
		})
	}
	return out
}

// formatSlots keeps the wire shape a non-null array even with no slots.
func formatSlots(slots []schedule.TimeOfDay) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.String())
	}
	return out
}

package request

import (
	"time"

	"slotgate/internal/domain/schedule"
)

type UpsertWorkingHoursRequest struct {
	StartTime    string `json:"start_time" binding:"required"` // "09:00"
	EndTime      string `json:"end_time" binding:"required"`   // "17:00"
	SlotDuration int    `json:"slot_duration" binding:"required"`
	IsActive     *bool  `json:"is_active,omitempty"` // defaults to true
}

func (r UpsertWorkingHoursRequest) ToDomain(dow time.Weekday) (*schedule.WorkingHourRule, error) {
	start, err := schedule.ParseTimeOfDay(r.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := schedule.ParseTimeOfDay(r.EndTime)
	if err != nil {
		return nil, err
	}
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &schedule.WorkingHourRule{
		DayOfWeek:    dow,
		StartTime:    start,
		EndTime:      end,
		SlotDuration: r.SlotDuration,
		IsActive:     active,
	}, nil
}

type BlockDateRequest struct {
	Date   string `json:"date" binding:"required"` // 2006-01-02
	Reason string `json:"reason,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

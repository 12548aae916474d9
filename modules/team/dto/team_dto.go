package dto

import (
	"time"

	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/team/entity"
)

// ===================== Request DTOs =====================

type TimeRangeDTO struct {
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

type DayScheduleDTO struct {
	StartTime        string         `json:"start_time" validate:"required"`
	EndTime          string         `json:"end_time" validate:"required"`
	UnavailableSlots []TimeRangeDTO `json:"unavailable_slots"`
}

type CreateTeamMemberRequest struct {
	Name           string                    `json:"name" validate:"required"`
	Role           string                    `json:"role" validate:"required"`
	Email          string                    `json:"email" validate:"omitempty,email"`
	WeeklySchedule map[string]DayScheduleDTO `json:"weekly_schedule"`
}

type UpdateTeamMemberRequest struct {
	Name           string                    `json:"name"`
	Role           string                    `json:"role"`
	Email          string                    `json:"email" validate:"omitempty,email"`
	WeeklySchedule map[string]DayScheduleDTO `json:"weekly_schedule"`
}

// ===================== Response DTOs =====================

type TeamMemberResponse struct {
	ID             string                `json:"id"`
	Name           string                `json:"name"`
	Role           string                `json:"role"`
	Email          string                `json:"email,omitempty"`
	WeeklySchedule entity.WeeklySchedule `json:"weekly_schedule"`
	CreatedAt      time.Time             `json:"created_at"`
}

// ===================== Mapper Functions =====================

func ToWeeklySchedule(in map[string]DayScheduleDTO) entity.WeeklySchedule {
	if in == nil {
		return entity.WeeklySchedule{}
	}

	out := make(entity.WeeklySchedule, len(in))
	for day, ds := range in {
		slots := make([]entity.TimeRange, 0, len(ds.UnavailableSlots))
		for _, s := range ds.UnavailableSlots {
			slots = append(slots, entity.TimeRange{StartTime: s.StartTime, EndTime: s.EndTime})
		}
		out[day] = entity.DaySchedule{
			StartTime:        ds.StartTime,
			EndTime:          ds.EndTime,
			UnavailableSlots: slots,
		}
	}
	return out
}

func ToTeamMemberResponse(m *entity.TeamMember) *TeamMemberResponse {
	return &TeamMemberResponse{
		ID:             m.ID.String(),
		Name:           m.Name,
		Role:           m.Role,
		Email:          m.Email,
		WeeklySchedule: m.WeeklySchedule,
		CreatedAt:      m.CreatedAt,
	}
}

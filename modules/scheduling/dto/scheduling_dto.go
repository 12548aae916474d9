package dto

import (
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/scheduling/entity"
)

// ===================== Request DTOs =====================

// CalculateAvailabilityRequest asks for every window in the date range where
// all listed participants are simultaneously free for the given duration.
type CalculateAvailabilityRequest struct {
	ParticipantIDs  []string `json:"participant_ids" validate:"required,min=1,dive,uuid"`
	StartDate       string   `json:"start_date" validate:"required"` // YYYY-MM-DD
	EndDate         string   `json:"end_date" validate:"required"`   // YYYY-MM-DD
	DurationMinutes int      `json:"duration_minutes" validate:"required,min=1,max=480"`
}

// ===================== Response DTOs =====================

type AvailabilityResponse struct {
	IndividualAvailability map[string][]entity.MicroSlot `json:"individual_availability"`
	CommonSlots            []entity.MicroSlot            `json:"common_slots"`
	AllSlots               map[string]entity.MicroSlot   `json:"all_slots"`
	AvailableSlots         []entity.AvailableSlot        `json:"available_slots"`
}

package entity

// MicroSlot is the atomic unit of availability computation: one
// granularity-sized interval on one date, plus the members confirmed free
// during it. IsCommon means every requested member is free.
type MicroSlot struct {
	Date             string   `json:"date"`       // YYYY-MM-DD
	StartTime        string   `json:"start_time"` // HH:MM
	EndTime          string   `json:"end_time"`   // HH:MM
	AvailableMembers []string `json:"available_members,omitempty"`
	IsCommon         bool     `json:"is_common"`
}

// Key identifies a micro-slot across members within one calculation.
func (s MicroSlot) Key() string {
	return s.Date + "|" + s.StartTime + "-" + s.EndTime
}

// AvailableSlot is a user-facing bookable window of exactly the requested
// duration, built from a contiguous run of common micro-slots.
type AvailableSlot struct {
	Date             string   `json:"date"`
	StartTime        string   `json:"start_time"`
	EndTime          string   `json:"end_time"`
	IsCommon         bool     `json:"is_common"`
	AvailableMembers []string `json:"available_members"`
}

// AvailabilityResult is the outcome of intersecting the requested members'
// schedules over a date range. AllSlots is the unfiltered per-slot map kept
// for diagnostics.
type AvailabilityResult struct {
	IndividualAvailability map[string][]MicroSlot `json:"individual_availability"`
	CommonSlots            []MicroSlot            `json:"common_slots"`
	AllSlots               map[string]MicroSlot   `json:"all_slots"`
}

package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/entity"
)

// TimeRange is a clock interval within one day, as 24-hour HH:MM strings.
type TimeRange struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// DaySchedule is a member's working hours for one weekday, with intervals
// carved out for existing commitments. Carve-outs are expected to lie within
// working hours and to satisfy start < end; the scheduling engine treats
// that as a precondition of the data.
type DaySchedule struct {
	StartTime        string      `json:"start_time"`
	EndTime          string      `json:"end_time"`
	UnavailableSlots []TimeRange `json:"unavailable_slots,omitempty"`
}

// WeeklySchedule maps a weekday name ("Monday".."Sunday") to that day's
// schedule. A missing weekday means fully unavailable that day.
type WeeklySchedule map[string]DaySchedule

func (w WeeklySchedule) Value() (driver.Value, error) {
	return json.Marshal(w)
}

func (w *WeeklySchedule) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, w)
}

// TeamMember is an entry in the team directory.
type TeamMember struct {
	Name           string         `db:"name" json:"name"`
	Role           string         `db:"role" json:"role"`
	Email          string         `db:"email" json:"email,omitempty"`
	WeeklySchedule WeeklySchedule `db:"weekly_schedule" json:"weekly_schedule"`
	entity.BaseEntity
}

type PaginatedTeamMemberEntity = entity.Pagination[TeamMember]

package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/entity"
)

// EventType classifies a meeting. Only IEP meetings exist today; the field
// keeps the wire format open for other event kinds.
type EventType string

const (
	EventTypeIEPMeeting EventType = "iep_meeting"
)

// MeetingStatus is the meeting-level state. pending_scheduling → scheduled →
// cancelled; cancelled is terminal and there is no path back to
// pending_scheduling.
type MeetingStatus string

const (
	MeetingStatusPendingScheduling MeetingStatus = "pending_scheduling"
	MeetingStatusScheduled         MeetingStatus = "scheduled"
	MeetingStatusCancelled         MeetingStatus = "cancelled"
)

// MeetingType is the fixed set of IEP meeting purposes; Other carries a
// free-text CustomMeetingType.
type MeetingType string

const (
	MeetingTypeAnnualReview       MeetingType = "annual_review"
	MeetingTypeInitialEvaluation  MeetingType = "initial_evaluation"
	MeetingTypeReEvaluation       MeetingType = "re_evaluation"
	MeetingTypeTransitionPlanning MeetingType = "transition_planning"
	MeetingTypeAmendment          MeetingType = "amendment"
	MeetingTypeOther              MeetingType = "other"
)

// StringSlice is a JSONB-backed list of IDs.
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, s)
}

// Meeting is the scheduling aggregate: the invited team, the chosen slot
// once one exists, one RSVP record per invited member, and any alternative
// time proposals with their votes.
type Meeting struct {
	EventType         EventType   `db:"event_type" json:"event_type"`
	StudentID         string      `db:"student_id" json:"student_id"`
	StudentName       string      `db:"student_name" json:"student_name"`
	MeetingType       MeetingType `db:"meeting_type" json:"meeting_type"`
	CustomMeetingType string      `db:"custom_meeting_type" json:"custom_meeting_type,omitempty"`
	Reference         string      `db:"reference" json:"reference"`

	TeamMemberIDs StringSlice `db:"team_member_ids" json:"team_member_ids"`

	// Scheduling fields stay nil until a slot is chosen.
	Date            *string `db:"date" json:"date,omitempty"`             // YYYY-MM-DD
	Time            *string `db:"time" json:"time,omitempty"`             // HH:MM
	DurationMinutes *int    `db:"duration_minutes" json:"duration_minutes,omitempty"`

	Status          MeetingStatus `db:"status" json:"status"`
	CreatedByUserID string        `db:"created_by_user_id" json:"created_by_user_id"`

	Participants         RSVPList     `db:"participants" json:"participants"`
	AlternativeProposals ProposalList `db:"alternative_proposals" json:"alternative_proposals"`

	// Version increments on every mutation; storage drivers may use it as
	// an optimistic concurrency check.
	Version int `db:"version" json:"version"`

	entity.BaseEntity
}

// Label is the display name of the meeting type.
func (m *Meeting) Label() string {
	if m.MeetingType == MeetingTypeOther && m.CustomMeetingType != "" {
		return m.CustomMeetingType
	}
	return string(m.MeetingType)
}

func (m *Meeting) IsOrganizer(userID string) bool {
	return m.CreatedByUserID == userID
}

func (m *Meeting) IsInvited(memberID string) bool {
	for _, id := range m.TeamMemberIDs {
		if id == memberID {
			return true
		}
	}
	return false
}

// Participant returns the RSVP record for a member, or nil.
func (m *Meeting) Participant(memberID string) *RSVP {
	for i := range m.Participants {
		if m.Participants[i].TeamMemberID == memberID {
			return &m.Participants[i]
		}
	}
	return nil
}

// Proposal returns the alternative proposal with the given ID, or nil.
func (m *Meeting) Proposal(proposalID string) *AlternativeProposal {
	for i := range m.AlternativeProposals {
		if m.AlternativeProposals[i].ProposalID == proposalID {
			return &m.AlternativeProposals[i]
		}
	}
	return nil
}

// ResetParticipants regenerates the RSVP list as fresh pending records for
// the current invite list. Members no longer invited drop out without
// retained history; this is the re-confirm-everyone policy applied on every
// edit of a scheduled meeting.
func (m *Meeting) ResetParticipants() {
	participants := make(RSVPList, 0, len(m.TeamMemberIDs))
	for _, id := range m.TeamMemberIDs {
		participants = append(participants, RSVP{
			TeamMemberID: id,
			Status:       RSVPStatusPending,
		})
	}
	m.Participants = participants
}

// Clone deep-copies the aggregate so repository reads never alias stored
// state.
func (m *Meeting) Clone() *Meeting {
	c := *m
	c.TeamMemberIDs = append(StringSlice(nil), m.TeamMemberIDs...)
	if m.Date != nil {
		d := *m.Date
		c.Date = &d
	}
	if m.Time != nil {
		t := *m.Time
		c.Time = &t
	}
	if m.DurationMinutes != nil {
		d := *m.DurationMinutes
		c.DurationMinutes = &d
	}

	c.Participants = make(RSVPList, len(m.Participants))
	for i, p := range m.Participants {
		c.Participants[i] = p.clone()
	}

	c.AlternativeProposals = make(ProposalList, len(m.AlternativeProposals))
	for i, p := range m.AlternativeProposals {
		c.AlternativeProposals[i] = p.clone()
	}

	return &c
}

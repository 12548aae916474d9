package dto

import (
	"time"

	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/meeting/entity"
)

// ===================== Request DTOs =====================

// CreateMeetingRequest creates a meeting. Date/time/duration may be supplied
// up front when the organizer already picked a slot; otherwise the meeting
// starts unscheduled.
type CreateMeetingRequest struct {
	StudentID         string   `json:"student_id" validate:"required"`
	StudentName       string   `json:"student_name" validate:"required"`
	MeetingType       string   `json:"meeting_type" validate:"required,oneof=annual_review initial_evaluation re_evaluation transition_planning amendment other"`
	CustomMeetingType string   `json:"custom_meeting_type"`
	TeamMemberIDs     []string `json:"team_member_ids" validate:"required,min=1,dive,uuid"`
	Date              string   `json:"date"` // YYYY-MM-DD
	Time              string   `json:"time"` // HH:MM
	DurationMinutes   int      `json:"duration_minutes" validate:"omitempty,min=1,max=480"`
}

// UpdateMeetingRequest edits a meeting. The invite list is replaced
// wholesale when present; any change to participants, date, time, or
// duration on a scheduled meeting resets every RSVP to pending.
type UpdateMeetingRequest struct {
	MeetingType       string   `json:"meeting_type" validate:"omitempty,oneof=annual_review initial_evaluation re_evaluation transition_planning amendment other"`
	CustomMeetingType string   `json:"custom_meeting_type"`
	TeamMemberIDs     []string `json:"team_member_ids" validate:"omitempty,min=1,dive,uuid"`
	Date              string   `json:"date"`
	Time              string   `json:"time"`
	DurationMinutes   int      `json:"duration_minutes" validate:"omitempty,min=1,max=480"`
}

// ScheduleMeetingRequest confirms a slot picked from the availability
// results.
type ScheduleMeetingRequest struct {
	Date            string `json:"date" validate:"required"`
	Time            string `json:"time" validate:"required"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,min=1,max=480"`
}

type SetRSVPRequest struct {
	MemberID string `json:"member_id" validate:"required,uuid"`
	Status   string `json:"status" validate:"required,oneof=accepted declined"`
	Note     string `json:"note"`
}

type ProposeAlternativeRequest struct {
	MemberID     string `json:"member_id" validate:"required,uuid"`
	ProposedDate string `json:"proposed_date" validate:"required"`
	ProposedTime string `json:"proposed_time" validate:"required"`
}

type VoteOnAlternativeRequest struct {
	MemberID string `json:"member_id" validate:"required,uuid"`
	Vote     string `json:"vote" validate:"required,oneof=accept_alternative prefer_original"`
}

// ===================== Response DTOs =====================

type RSVPResponse struct {
	TeamMemberID string     `json:"team_member_id"`
	Status       string     `json:"status"`
	Note         string     `json:"note,omitempty"`
	RespondedAt  *time.Time `json:"responded_at,omitempty"`
}

type ProposalVoteResponse struct {
	TeamMemberID string     `json:"team_member_id"`
	Vote         string     `json:"vote"`
	VotedAt      *time.Time `json:"voted_at,omitempty"`
}

type ProposalResponse struct {
	ProposalID         string                 `json:"proposal_id"`
	ProposedDate       string                 `json:"proposed_date"`
	ProposedTime       string                 `json:"proposed_time"`
	ProposedByMemberID string                 `json:"proposed_by_member_id"`
	ProposedAt         time.Time              `json:"proposed_at"`
	Unanimous          bool                   `json:"unanimous"`
	Votes              []ProposalVoteResponse `json:"votes"`
}

type MeetingResponse struct {
	ID                   string             `json:"id"`
	EventType            string             `json:"event_type"`
	StudentID            string             `json:"student_id"`
	StudentName          string             `json:"student_name"`
	MeetingType          string             `json:"meeting_type"`
	CustomMeetingType    string             `json:"custom_meeting_type,omitempty"`
	Reference            string             `json:"reference"`
	TeamMemberIDs        []string           `json:"team_member_ids"`
	Date                 string             `json:"date,omitempty"`
	Time                 string             `json:"time,omitempty"`
	DurationMinutes      int                `json:"duration_minutes,omitempty"`
	Status               string             `json:"status"`
	CreatedByUserID      string             `json:"created_by_user_id"`
	Participants         []RSVPResponse     `json:"participants"`
	AlternativeProposals []ProposalResponse `json:"alternative_proposals"`
	Version              int                `json:"version"`
	CreatedAt            time.Time          `json:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at"`
}

// ===================== Mapper Functions =====================

func ToMeetingResponse(m *entity.Meeting) *MeetingResponse {
	resp := &MeetingResponse{
		ID:                   m.ID.String(),
		EventType:            string(m.EventType),
		StudentID:            m.StudentID,
		StudentName:          m.StudentName,
		MeetingType:          string(m.MeetingType),
		CustomMeetingType:    m.CustomMeetingType,
		Reference:            m.Reference,
		TeamMemberIDs:        m.TeamMemberIDs,
		Status:               string(m.Status),
		CreatedByUserID:      m.CreatedByUserID,
		Participants:         make([]RSVPResponse, 0, len(m.Participants)),
		AlternativeProposals: make([]ProposalResponse, 0, len(m.AlternativeProposals)),
		Version:              m.Version,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}

	if m.Date != nil {
		resp.Date = *m.Date
	}
	if m.Time != nil {
		resp.Time = *m.Time
	}
	if m.DurationMinutes != nil {
		resp.DurationMinutes = *m.DurationMinutes
	}

	for _, p := range m.Participants {
		r := RSVPResponse{
			TeamMemberID: p.TeamMemberID,
			Status:       string(p.Status),
			RespondedAt:  p.RespondedAt,
		}
		if p.Note != nil {
			r.Note = *p.Note
		}
		resp.Participants = append(resp.Participants, r)
	}

	for i := range m.AlternativeProposals {
		resp.AlternativeProposals = append(resp.AlternativeProposals, toProposalResponse(&m.AlternativeProposals[i]))
	}

	return resp
}

func toProposalResponse(p *entity.AlternativeProposal) ProposalResponse {
	resp := ProposalResponse{
		ProposalID:         p.ProposalID,
		ProposedDate:       p.ProposedDate,
		ProposedTime:       p.ProposedTime,
		ProposedByMemberID: p.ProposedByMemberID,
		ProposedAt:         p.ProposedAt,
		Unanimous:          p.Unanimous(),
		Votes:              make([]ProposalVoteResponse, 0, len(p.Votes)),
	}
	for _, v := range p.Votes {
		resp.Votes = append(resp.Votes, ProposalVoteResponse{
			TeamMemberID: v.TeamMemberID,
			Vote:         string(v.Vote),
			VotedAt:      v.VotedAt,
		})
	}
	return resp
}

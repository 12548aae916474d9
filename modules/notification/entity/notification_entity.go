package entity

import "time"

// Category classifies what happened. new_invitation and meeting_updated are
// mutually exclusive for a given meeting: an invitation becomes an update
// once anyone else has responded.
type Category string

const (
	CategoryNewInvitation       Category = "new_invitation"
	CategoryMeetingUpdated      Category = "meeting_updated"
	CategoryAlternativeProposed Category = "alternative_proposed"
	CategoryRSVPReceived        Category = "rsvp_received"
)

// Priority orders the attention a notification deserves.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Notification is one derived inbox item. Notifications are a projection
// over the user's meetings, computed on read and never stored; there is no
// read/unread state to persist.
type Notification struct {
	Category   Category  `json:"category"`
	Priority   Priority  `json:"priority"`
	MeetingID  string    `json:"meeting_id"`
	Reference  string    `json:"reference"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	ProposalID string    `json:"proposal_id,omitempty"`
	MemberID   string    `json:"member_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

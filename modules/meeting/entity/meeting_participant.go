package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// RSVPStatus is a participant's response state to a scheduled meeting.
// proposed_new_time and voted_on_alternative are summary states; the
// underlying proposal and vote records stay independent of them.
type RSVPStatus string

const (
	RSVPStatusPending            RSVPStatus = "pending"
	RSVPStatusAccepted           RSVPStatus = "accepted"
	RSVPStatusDeclined           RSVPStatus = "declined"
	RSVPStatusProposedNewTime    RSVPStatus = "proposed_new_time"
	RSVPStatusVotedOnAlternative RSVPStatus = "voted_on_alternative"
)

// RSVP is one invited member's response record. RespondedAt is stamped on
// every status change.
type RSVP struct {
	TeamMemberID string     `json:"team_member_id"`
	Status       RSVPStatus `json:"status"`
	Note         *string    `json:"note,omitempty"`
	RespondedAt  *time.Time `json:"responded_at,omitempty"`
}

func (r RSVP) clone() RSVP {
	c := r
	if r.Note != nil {
		n := *r.Note
		c.Note = &n
	}
	if r.RespondedAt != nil {
		t := *r.RespondedAt
		c.RespondedAt = &t
	}
	return c
}

// RSVPList is a JSONB-backed participant list.
type RSVPList []RSVP

func (l RSVPList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *RSVPList) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, l)
}

// VoteChoice is a member's position on one alternative proposal.
type VoteChoice string

const (
	VotePending           VoteChoice = "pending"
	VoteAcceptAlternative VoteChoice = "accept_alternative"
	VotePreferOriginal    VoteChoice = "prefer_original"
)

// ProposalVote is one member's vote on one proposal. Votes on different
// proposals are independent.
type ProposalVote struct {
	TeamMemberID string     `json:"team_member_id"`
	Vote         VoteChoice `json:"vote"`
	VotedAt      *time.Time `json:"voted_at,omitempty"`
}

// AlternativeProposal is a participant-submitted replacement date/time for
// an already-scheduled meeting. Immutable once created except for vote
// mutation.
type AlternativeProposal struct {
	ProposalID         string         `json:"proposal_id"`
	ProposedDate       string         `json:"proposed_date"` // YYYY-MM-DD
	ProposedTime       string         `json:"proposed_time"` // HH:MM
	ProposedByMemberID string         `json:"proposed_by_member_id"`
	ProposedAt         time.Time      `json:"proposed_at"`
	Votes              []ProposalVote `json:"votes"`
}

// Vote returns the vote record for a member, or nil.
func (p *AlternativeProposal) Vote(memberID string) *ProposalVote {
	for i := range p.Votes {
		if p.Votes[i].TeamMemberID == memberID {
			return &p.Votes[i]
		}
	}
	return nil
}

// Unanimous reports whether every invited member voted accept_alternative.
func (p *AlternativeProposal) Unanimous() bool {
	if len(p.Votes) == 0 {
		return false
	}
	for _, v := range p.Votes {
		if v.Vote != VoteAcceptAlternative {
			return false
		}
	}
	return true
}

func (p AlternativeProposal) clone() AlternativeProposal {
	c := p
	c.Votes = make([]ProposalVote, len(p.Votes))
	for i, v := range p.Votes {
		c.Votes[i] = v
		if v.VotedAt != nil {
			t := *v.VotedAt
			c.Votes[i].VotedAt = &t
		}
	}
	return c
}

// ProposalList is a JSONB-backed proposal list.
type ProposalList []AlternativeProposal

func (l ProposalList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *ProposalList) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, l)
}

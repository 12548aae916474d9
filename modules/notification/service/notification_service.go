package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/errors"
	meetingentity "github.com/sarahhawelu19/functionallyappropriate-sub000/modules/meeting/entity"
	meetingrepo "github.com/sarahhawelu19/functionallyappropriate-sub000/modules/meeting/repository"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/notification/entity"
)

// NotificationService derives a user's inbox from their meetings on every
// read. Nothing is stored.
type NotificationService struct {
	meetings meetingrepo.MeetingRepositoryInterface
}

type NotificationServiceInterface interface {
	GetMyNotifications(ctx context.Context, userID string) ([]entity.Notification, *errors.AppError)
}

func NewNotificationService(meetings meetingrepo.MeetingRepositoryInterface) NotificationServiceInterface {
	return &NotificationService{meetings: meetings}
}

func (s *NotificationService) GetMyNotifications(ctx context.Context, userID string) ([]entity.Notification, *errors.AppError) {
	meetings, err := s.meetings.ListForUser(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load meetings", err)
	}
	return Derive(meetings, userID), nil
}

// Derive projects the notification list for one user from their meetings.
// Cancelled meetings produce nothing. Items sort newest first; ties keep
// derivation order.
func Derive(meetings []meetingentity.Meeting, userID string) []entity.Notification {
	items := make([]entity.Notification, 0)

	for i := range meetings {
		m := &meetings[i]
		if m.Status == meetingentity.MeetingStatusCancelled {
			continue
		}

		items = append(items, deriveInvitation(m, userID)...)
		items = append(items, deriveProposals(m, userID)...)
		items = append(items, deriveRSVPs(m, userID)...)
	}

	sort.SliceStable(items, func(a, b int) bool {
		return items[a].Timestamp.After(items[b].Timestamp)
	})
	return items
}

// deriveInvitation produces the high-priority item for an invited member
// who has not responded yet. It reads as a fresh invitation until any other
// participant responds, after which it reads as an update to re-confirm.
func deriveInvitation(m *meetingentity.Meeting, userID string) []entity.Notification {
	if m.IsOrganizer(userID) {
		return nil
	}
	me := m.Participant(userID)
	if me == nil || me.Status != meetingentity.RSVPStatusPending {
		return nil
	}

	category := entity.CategoryNewInvitation
	title := "New meeting invitation"
	message := fmt.Sprintf("You are invited to an IEP meeting for %s (%s).", m.StudentName, m.Label())
	for i := range m.Participants {
		p := &m.Participants[i]
		if p.TeamMemberID != userID && p.Status != meetingentity.RSVPStatusPending {
			category = entity.CategoryMeetingUpdated
			title = "Meeting updated"
			message = fmt.Sprintf("The IEP meeting for %s (%s) changed; please confirm again.", m.StudentName, m.Label())
			break
		}
	}

	return []entity.Notification{{
		Category:  category,
		Priority:  entity.PriorityHigh,
		MeetingID: m.ID.String(),
		Reference: m.Reference,
		Title:     title,
		Message:   message,
		Timestamp: m.UpdatedAt,
	}}
}

// deriveProposals produces one medium-priority item per alternative time
// the user still has to vote on. A member's own proposals never notify
// them.
func deriveProposals(m *meetingentity.Meeting, userID string) []entity.Notification {
	if m.Participant(userID) == nil {
		return nil
	}

	items := make([]entity.Notification, 0)
	for i := range m.AlternativeProposals {
		p := &m.AlternativeProposals[i]
		if p.ProposedByMemberID == userID {
			continue
		}
		vote := p.Vote(userID)
		if vote == nil || vote.Vote != meetingentity.VotePending {
			continue
		}

		items = append(items, entity.Notification{
			Category:   entity.CategoryAlternativeProposed,
			Priority:   entity.PriorityMedium,
			MeetingID:  m.ID.String(),
			Reference:  m.Reference,
			Title:      "Alternative time proposed",
			Message:    fmt.Sprintf("A new time (%s %s) was proposed for the IEP meeting for %s.", p.ProposedDate, p.ProposedTime, m.StudentName),
			ProposalID: p.ProposalID,
			MemberID:   p.ProposedByMemberID,
			Timestamp:  p.ProposedAt,
		})
	}
	return items
}

// deriveRSVPs produces one low-priority item per participant response for
// the organizer.
func deriveRSVPs(m *meetingentity.Meeting, userID string) []entity.Notification {
	if !m.IsOrganizer(userID) {
		return nil
	}

	items := make([]entity.Notification, 0)
	for i := range m.Participants {
		p := &m.Participants[i]
		if p.Status == meetingentity.RSVPStatusPending || p.RespondedAt == nil {
			continue
		}

		items = append(items, entity.Notification{
			Category:  entity.CategoryRSVPReceived,
			Priority:  entity.PriorityLow,
			MeetingID: m.ID.String(),
			Reference: m.Reference,
			Title:     "RSVP received",
			Message:   fmt.Sprintf("A participant responded %s to the IEP meeting for %s.", p.Status, m.StudentName),
			MemberID:  p.TeamMemberID,
			Timestamp: *p.RespondedAt,
		})
	}
	return items
}

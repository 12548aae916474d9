package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreEntity "github.com/sarahhawelu19/functionallyappropriate-sub000/core/entity"
	meetingentity "github.com/sarahhawelu19/functionallyappropriate-sub000/modules/meeting/entity"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/notification/entity"
)

var baseTime = time.Date(2026, 1, 5, 12, 0, 0, 0, time.Local)

func scheduledMeeting(organizer string, memberIDs ...string) meetingentity.Meeting {
	date := "2026-01-12"
	clock := "10:00"
	duration := 60

	m := meetingentity.Meeting{
		EventType:       meetingentity.EventTypeIEPMeeting,
		StudentID:       "student-1",
		StudentName:     "Leo Rodriguez",
		MeetingType:     meetingentity.MeetingTypeAnnualReview,
		Reference:       "leo-rodriguez-annual-review-abc1234",
		TeamMemberIDs:   memberIDs,
		Date:            &date,
		Time:            &clock,
		DurationMinutes: &duration,
		Status:          meetingentity.MeetingStatusScheduled,
		CreatedByUserID: organizer,
		BaseEntity: coreEntity.BaseEntity{
			ID:        uuid.New(),
			CreatedAt: baseTime,
			UpdatedAt: baseTime,
		},
	}
	m.ResetParticipants()
	return m
}

func respond(m *meetingentity.Meeting, memberID string, status meetingentity.RSVPStatus, at time.Time) {
	p := m.Participant(memberID)
	p.Status = status
	p.RespondedAt = &at
}

func TestDerive_NewInvitationForPendingMember(t *testing.T) {
	organizer := uuid.NewString()
	member := uuid.NewString()
	m := scheduledMeeting(organizer, member)

	items := Derive([]meetingentity.Meeting{m}, member)
	require.Len(t, items, 1)
	assert.Equal(t, entity.CategoryNewInvitation, items[0].Category)
	assert.Equal(t, entity.PriorityHigh, items[0].Priority)
	assert.Equal(t, m.ID.String(), items[0].MeetingID)
	assert.Equal(t, m.UpdatedAt, items[0].Timestamp)
}

func TestDerive_BecomesUpdateOnceOthersRespond(t *testing.T) {
	organizer := uuid.NewString()
	a := uuid.NewString()
	b := uuid.NewString()
	m := scheduledMeeting(organizer, a, b)
	respond(&m, b, meetingentity.RSVPStatusAccepted, baseTime.Add(time.Hour))

	items := Derive([]meetingentity.Meeting{m}, a)
	require.Len(t, items, 1)
	assert.Equal(t, entity.CategoryMeetingUpdated, items[0].Category)
	assert.Equal(t, entity.PriorityHigh, items[0].Priority)
}

func TestDerive_NothingForRespondedMember(t *testing.T) {
	organizer := uuid.NewString()
	member := uuid.NewString()
	m := scheduledMeeting(organizer, member)
	respond(&m, member, meetingentity.RSVPStatusAccepted, baseTime.Add(time.Hour))

	assert.Empty(t, Derive([]meetingentity.Meeting{m}, member))
}

func TestDerive_AlternativeProposedExcludesOwnProposal(t *testing.T) {
	organizer := uuid.NewString()
	a := uuid.NewString()
	b := uuid.NewString()
	m := scheduledMeeting(organizer, a, b)
	respond(&m, a, meetingentity.RSVPStatusProposedNewTime, baseTime.Add(time.Hour))
	m.AlternativeProposals = meetingentity.ProposalList{{
		ProposalID:         "prop-1",
		ProposedDate:       "2026-01-14",
		ProposedTime:       "13:00",
		ProposedByMemberID: a,
		ProposedAt:         baseTime.Add(time.Hour),
		Votes: []meetingentity.ProposalVote{
			{TeamMemberID: a, Vote: meetingentity.VotePending},
			{TeamMemberID: b, Vote: meetingentity.VotePending},
		},
	}}

	// The proposer sees nothing for their own proposal.
	for _, item := range Derive([]meetingentity.Meeting{m}, a) {
		assert.NotEqual(t, entity.CategoryAlternativeProposed, item.Category)
	}

	// The other member sees it at medium priority, plus their invitation.
	items := Derive([]meetingentity.Meeting{m}, b)
	var proposed *entity.Notification
	for i := range items {
		if items[i].Category == entity.CategoryAlternativeProposed {
			proposed = &items[i]
		}
	}
	require.NotNil(t, proposed)
	assert.Equal(t, entity.PriorityMedium, proposed.Priority)
	assert.Equal(t, "prop-1", proposed.ProposalID)
}

func TestDerive_NoProposalItemAfterVoting(t *testing.T) {
	organizer := uuid.NewString()
	a := uuid.NewString()
	b := uuid.NewString()
	m := scheduledMeeting(organizer, a, b)
	votedAt := baseTime.Add(2 * time.Hour)
	m.AlternativeProposals = meetingentity.ProposalList{{
		ProposalID:         "prop-1",
		ProposedByMemberID: a,
		ProposedAt:         baseTime.Add(time.Hour),
		Votes: []meetingentity.ProposalVote{
			{TeamMemberID: a, Vote: meetingentity.VotePending},
			{TeamMemberID: b, Vote: meetingentity.VoteAcceptAlternative, VotedAt: &votedAt},
		},
	}}

	for _, item := range Derive([]meetingentity.Meeting{m}, b) {
		assert.NotEqual(t, entity.CategoryAlternativeProposed, item.Category)
	}
}

func TestDerive_OrganizerSeesRSVPs(t *testing.T) {
	organizer := uuid.NewString()
	a := uuid.NewString()
	b := uuid.NewString()
	m := scheduledMeeting(organizer, a, b)
	respond(&m, a, meetingentity.RSVPStatusAccepted, baseTime.Add(time.Hour))
	respond(&m, b, meetingentity.RSVPStatusDeclined, baseTime.Add(2*time.Hour))

	items := Derive([]meetingentity.Meeting{m}, organizer)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, entity.CategoryRSVPReceived, item.Category)
		assert.Equal(t, entity.PriorityLow, item.Priority)
	}
	// Newest first.
	assert.Equal(t, b, items[0].MemberID)
	assert.Equal(t, a, items[1].MemberID)
}

func TestDerive_CancelledMeetingProducesNothing(t *testing.T) {
	organizer := uuid.NewString()
	member := uuid.NewString()
	m := scheduledMeeting(organizer, member)
	m.Status = meetingentity.MeetingStatusCancelled

	assert.Empty(t, Derive([]meetingentity.Meeting{m}, member))
	assert.Empty(t, Derive([]meetingentity.Meeting{m}, organizer))
}

func TestDerive_SortsNewestFirstAcrossMeetings(t *testing.T) {
	organizer := uuid.NewString()
	member := uuid.NewString()

	older := scheduledMeeting(organizer, member)
	older.UpdatedAt = baseTime

	newer := scheduledMeeting(organizer, member)
	newer.UpdatedAt = baseTime.Add(3 * time.Hour)

	items := Derive([]meetingentity.Meeting{older, newer}, member)
	require.Len(t, items, 2)
	assert.Equal(t, newer.ID.String(), items[0].MeetingID)
	assert.Equal(t, older.ID.String(), items[1].MeetingID)
}

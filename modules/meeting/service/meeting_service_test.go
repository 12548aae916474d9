package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/errors"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/meeting/dto"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/meeting/entity"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/meeting/repository"
	teamEntity "github.com/sarahhawelu19/functionallyappropriate-sub000/modules/team/entity"
	teamRepo "github.com/sarahhawelu19/functionallyappropriate-sub000/modules/team/repository"
	teamService "github.com/sarahhawelu19/functionallyappropriate-sub000/modules/team/service"
)

type fixture struct {
	svc       MeetingServiceInterface
	repo      repository.MeetingRepositoryInterface
	organizer string
	members   []string
}

func newFixture(t *testing.T, memberCount int) *fixture {
	t.Helper()
	ctx := context.Background()

	tr := teamRepo.NewMemoryTeamRepository()
	memberIDs := make([]string, 0, memberCount)
	for i := 0; i < memberCount; i++ {
		member := &teamEntity.TeamMember{
			Name: "Member",
			Role: "Case Manager",
			WeeklySchedule: teamEntity.WeeklySchedule{
				"Monday": {StartTime: "09:00", EndTime: "15:00"},
			},
		}
		created, err := tr.Create(ctx, member)
		require.NoError(t, err)
		memberIDs = append(memberIDs, created.ID.String())
	}

	repo := repository.NewMemoryMeetingRepository()
	return &fixture{
		svc:       NewMeetingService(repo, teamService.NewTeamService(tr), nil, time.Hour),
		repo:      repo,
		organizer: uuid.NewString(),
		members:   memberIDs,
	}
}

func (f *fixture) createScheduled(t *testing.T) *dto.MeetingResponse {
	t.Helper()
	resp, appErr := f.svc.CreateMeeting(context.Background(), f.organizer, &dto.CreateMeetingRequest{
		StudentID:       "student-1",
		StudentName:     "Leo Rodriguez",
		MeetingType:     "annual_review",
		TeamMemberIDs:   f.members,
		Date:            "2026-01-05",
		Time:            "10:00",
		DurationMinutes: 60,
	})
	require.Nil(t, appErr)
	return resp
}

func mustID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	require.NoError(t, err)
	return id
}

func TestCreateMeeting_ScheduledStartsEveryoneAtPending(t *testing.T) {
	f := newFixture(t, 3)
	resp := f.createScheduled(t)

	assert.Equal(t, "scheduled", resp.Status)
	assert.Contains(t, resp.Reference, "leo-rodriguez-annual-review")
	require.Len(t, resp.Participants, 3)
	for _, p := range resp.Participants {
		assert.Equal(t, "pending", p.Status)
		assert.Nil(t, p.RespondedAt)
	}
}

func TestCreateMeeting_UnscheduledHasNoParticipants(t *testing.T) {
	f := newFixture(t, 2)
	resp, appErr := f.svc.CreateMeeting(context.Background(), f.organizer, &dto.CreateMeetingRequest{
		StudentID:     "student-1",
		StudentName:   "Leo Rodriguez",
		MeetingType:   "initial_evaluation",
		TeamMemberIDs: f.members,
	})
	require.Nil(t, appErr)

	assert.Equal(t, "pending_scheduling", resp.Status)
	assert.Empty(t, resp.Participants)
	assert.Empty(t, resp.Date)
}

func TestCreateMeeting_OtherRequiresCustomType(t *testing.T) {
	f := newFixture(t, 1)
	_, appErr := f.svc.CreateMeeting(context.Background(), f.organizer, &dto.CreateMeetingRequest{
		StudentID:     "student-1",
		StudentName:   "Leo Rodriguez",
		MeetingType:   "other",
		TeamMemberIDs: f.members,
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
}

func TestCreateMeeting_UnknownMemberRejected(t *testing.T) {
	f := newFixture(t, 1)
	_, appErr := f.svc.CreateMeeting(context.Background(), f.organizer, &dto.CreateMeetingRequest{
		StudentID:     "student-1",
		StudentName:   "Leo Rodriguez",
		MeetingType:   "annual_review",
		TeamMemberIDs: []string{uuid.NewString()},
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestSetRSVP_RecordsResponse(t *testing.T) {
	f := newFixture(t, 2)
	meeting := f.createScheduled(t)

	resp, appErr := f.svc.SetRSVP(context.Background(), mustID(t, meeting.ID), &dto.SetRSVPRequest{
		MemberID: f.members[0],
		Status:   "declined",
		Note:     "conflict with another IEP",
	})
	require.Nil(t, appErr)

	var declined *dto.RSVPResponse
	for i := range resp.Participants {
		if resp.Participants[i].TeamMemberID == f.members[0] {
			declined = &resp.Participants[i]
		}
	}
	require.NotNil(t, declined)
	assert.Equal(t, "declined", declined.Status)
	assert.Equal(t, "conflict with another IEP", declined.Note)
	assert.NotNil(t, declined.RespondedAt)
}

func TestSetRSVP_UninvitedMemberNotFound(t *testing.T) {
	f := newFixture(t, 1)
	meeting := f.createScheduled(t)

	_, appErr := f.svc.SetRSVP(context.Background(), mustID(t, meeting.ID), &dto.SetRSVPRequest{
		MemberID: uuid.NewString(),
		Status:   "accepted",
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestUpdateMeeting_TimeChangeResetsEveryRSVP(t *testing.T) {
	f := newFixture(t, 2)
	meeting := f.createScheduled(t)
	id := mustID(t, meeting.ID)
	ctx := context.Background()

	_, appErr := f.svc.SetRSVP(ctx, id, &dto.SetRSVPRequest{MemberID: f.members[0], Status: "accepted"})
	require.Nil(t, appErr)

	resp, appErr := f.svc.UpdateMeeting(ctx, id, f.organizer, &dto.UpdateMeetingRequest{Time: "11:00"})
	require.Nil(t, appErr)

	for _, p := range resp.Participants {
		assert.Equal(t, "pending", p.Status)
		assert.Nil(t, p.RespondedAt)
	}
}

func TestUpdateMeeting_UnchangedDetailsKeepRSVPs(t *testing.T) {
	f := newFixture(t, 2)
	meeting := f.createScheduled(t)
	id := mustID(t, meeting.ID)
	ctx := context.Background()

	_, appErr := f.svc.SetRSVP(ctx, id, &dto.SetRSVPRequest{MemberID: f.members[0], Status: "accepted"})
	require.Nil(t, appErr)

	// Re-submitting the same time is not a reschedule.
	resp, appErr := f.svc.UpdateMeeting(ctx, id, f.organizer, &dto.UpdateMeetingRequest{Time: "10:00"})
	require.Nil(t, appErr)

	statuses := map[string]string{}
	for _, p := range resp.Participants {
		statuses[p.TeamMemberID] = p.Status
	}
	assert.Equal(t, "accepted", statuses[f.members[0]])
	assert.Equal(t, "pending", statuses[f.members[1]])
}

func TestUpdateMeeting_OnlyOrganizer(t *testing.T) {
	f := newFixture(t, 1)
	meeting := f.createScheduled(t)

	_, appErr := f.svc.UpdateMeeting(context.Background(), mustID(t, meeting.ID), uuid.NewString(), &dto.UpdateMeetingRequest{Time: "11:00"})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)
}

func TestCancelMeeting_IsTerminal(t *testing.T) {
	f := newFixture(t, 2)
	meeting := f.createScheduled(t)
	id := mustID(t, meeting.ID)
	ctx := context.Background()

	resp, appErr := f.svc.CancelMeeting(ctx, id, f.organizer)
	require.Nil(t, appErr)
	assert.Equal(t, "cancelled", resp.Status)

	_, appErr = f.svc.SetRSVP(ctx, id, &dto.SetRSVPRequest{MemberID: f.members[0], Status: "accepted"})
	assert.NotNil(t, appErr)

	_, appErr = f.svc.UpdateMeeting(ctx, id, f.organizer, &dto.UpdateMeetingRequest{Time: "11:00"})
	assert.NotNil(t, appErr)

	_, appErr = f.svc.ScheduleMeeting(ctx, id, f.organizer, &dto.ScheduleMeetingRequest{Date: "2026-01-06", Time: "09:00", DurationMinutes: 30})
	assert.NotNil(t, appErr)

	_, appErr = f.svc.CancelMeeting(ctx, id, f.organizer)
	assert.NotNil(t, appErr)
}

func TestCancelMeeting_OnlyFromScheduled(t *testing.T) {
	f := newFixture(t, 1)
	resp, appErr := f.svc.CreateMeeting(context.Background(), f.organizer, &dto.CreateMeetingRequest{
		StudentID:     "student-1",
		StudentName:   "Leo Rodriguez",
		MeetingType:   "amendment",
		TeamMemberIDs: f.members,
	})
	require.Nil(t, appErr)

	_, appErr = f.svc.CancelMeeting(context.Background(), mustID(t, resp.ID), f.organizer)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
}

func TestProposeAlternative_OpensVoteAndFlipsProposer(t *testing.T) {
	f := newFixture(t, 3)
	meeting := f.createScheduled(t)

	resp, appErr := f.svc.ProposeAlternative(context.Background(), mustID(t, meeting.ID), &dto.ProposeAlternativeRequest{
		MemberID:     f.members[0],
		ProposedDate: "2026-01-07",
		ProposedTime: "13:00",
	})
	require.Nil(t, appErr)

	require.Len(t, resp.AlternativeProposals, 1)
	proposal := resp.AlternativeProposals[0]
	assert.Equal(t, f.members[0], proposal.ProposedByMemberID)
	assert.Len(t, proposal.Votes, 3)
	for _, v := range proposal.Votes {
		assert.Equal(t, "pending", v.Vote)
	}

	for _, p := range resp.Participants {
		if p.TeamMemberID == f.members[0] {
			assert.Equal(t, "proposed_new_time", p.Status)
			assert.NotNil(t, p.RespondedAt)
		} else {
			assert.Equal(t, "pending", p.Status)
		}
	}
}

func TestVoteOnAlternative_CouplesTopLevelRSVP(t *testing.T) {
	f := newFixture(t, 3)
	meeting := f.createScheduled(t)
	id := mustID(t, meeting.ID)
	ctx := context.Background()

	proposed, appErr := f.svc.ProposeAlternative(ctx, id, &dto.ProposeAlternativeRequest{
		MemberID: f.members[0], ProposedDate: "2026-01-07", ProposedTime: "13:00",
	})
	require.Nil(t, appErr)
	proposalID := proposed.AlternativeProposals[0].ProposalID

	resp, appErr := f.svc.VoteOnAlternative(ctx, id, proposalID, &dto.VoteOnAlternativeRequest{
		MemberID: f.members[1], Vote: "accept_alternative",
	})
	require.Nil(t, appErr)

	proposal := resp.AlternativeProposals[0]
	votes := map[string]string{}
	for _, v := range proposal.Votes {
		votes[v.TeamMemberID] = v.Vote
	}
	assert.Equal(t, "accept_alternative", votes[f.members[1]])
	assert.Equal(t, "pending", votes[f.members[2]])

	for _, p := range resp.Participants {
		if p.TeamMemberID == f.members[1] {
			assert.Equal(t, "voted_on_alternative", p.Status)
		}
	}
}

func TestVoteOnAlternative_ReVoteOverwrites(t *testing.T) {
	f := newFixture(t, 2)
	meeting := f.createScheduled(t)
	id := mustID(t, meeting.ID)
	ctx := context.Background()

	proposed, appErr := f.svc.ProposeAlternative(ctx, id, &dto.ProposeAlternativeRequest{
		MemberID: f.members[0], ProposedDate: "2026-01-07", ProposedTime: "13:00",
	})
	require.Nil(t, appErr)
	proposalID := proposed.AlternativeProposals[0].ProposalID

	_, appErr = f.svc.VoteOnAlternative(ctx, id, proposalID, &dto.VoteOnAlternativeRequest{
		MemberID: f.members[1], Vote: "accept_alternative",
	})
	require.Nil(t, appErr)

	resp, appErr := f.svc.VoteOnAlternative(ctx, id, proposalID, &dto.VoteOnAlternativeRequest{
		MemberID: f.members[1], Vote: "prefer_original",
	})
	require.Nil(t, appErr)

	proposal := resp.AlternativeProposals[0]
	for _, v := range proposal.Votes {
		if v.TeamMemberID == f.members[1] {
			assert.Equal(t, "prefer_original", v.Vote)
		}
	}
	assert.False(t, proposal.Unanimous)
}

func TestVoteOnAlternative_OtherProposalsUntouched(t *testing.T) {
	f := newFixture(t, 2)
	meeting := f.createScheduled(t)
	id := mustID(t, meeting.ID)
	ctx := context.Background()

	first, appErr := f.svc.ProposeAlternative(ctx, id, &dto.ProposeAlternativeRequest{
		MemberID: f.members[0], ProposedDate: "2026-01-07", ProposedTime: "13:00",
	})
	require.Nil(t, appErr)
	second, appErr := f.svc.ProposeAlternative(ctx, id, &dto.ProposeAlternativeRequest{
		MemberID: f.members[1], ProposedDate: "2026-01-08", ProposedTime: "09:00",
	})
	require.Nil(t, appErr)
	require.Len(t, second.AlternativeProposals, 2)

	resp, appErr := f.svc.VoteOnAlternative(ctx, id, first.AlternativeProposals[0].ProposalID, &dto.VoteOnAlternativeRequest{
		MemberID: f.members[1], Vote: "accept_alternative",
	})
	require.Nil(t, appErr)

	for _, proposal := range resp.AlternativeProposals {
		if proposal.ProposalID == first.AlternativeProposals[0].ProposalID {
			continue
		}
		for _, v := range proposal.Votes {
			assert.Equal(t, "pending", v.Vote)
		}
	}
}

func TestVoteOnAlternative_UnknownProposalNotFound(t *testing.T) {
	f := newFixture(t, 1)
	meeting := f.createScheduled(t)

	_, appErr := f.svc.VoteOnAlternative(context.Background(), mustID(t, meeting.ID), "missing", &dto.VoteOnAlternativeRequest{
		MemberID: f.members[0], Vote: "accept_alternative",
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestApplyAlternative_ReschedulesAndResets(t *testing.T) {
	f := newFixture(t, 2)
	meeting := f.createScheduled(t)
	id := mustID(t, meeting.ID)
	ctx := context.Background()

	proposed, appErr := f.svc.ProposeAlternative(ctx, id, &dto.ProposeAlternativeRequest{
		MemberID: f.members[0], ProposedDate: "2026-01-07", ProposedTime: "13:00",
	})
	require.Nil(t, appErr)
	proposalID := proposed.AlternativeProposals[0].ProposalID

	_, appErr = f.svc.VoteOnAlternative(ctx, id, proposalID, &dto.VoteOnAlternativeRequest{
		MemberID: f.members[1], Vote: "accept_alternative",
	})
	require.Nil(t, appErr)

	resp, appErr := f.svc.ApplyAlternative(ctx, id, proposalID, f.organizer)
	require.Nil(t, appErr)

	assert.Equal(t, "2026-01-07", resp.Date)
	assert.Equal(t, "13:00", resp.Time)
	assert.Equal(t, "scheduled", resp.Status)
	for _, p := range resp.Participants {
		assert.Equal(t, "pending", p.Status)
	}
}

func TestApplyAlternative_OnlyOrganizer(t *testing.T) {
	f := newFixture(t, 2)
	meeting := f.createScheduled(t)
	id := mustID(t, meeting.ID)
	ctx := context.Background()

	proposed, appErr := f.svc.ProposeAlternative(ctx, id, &dto.ProposeAlternativeRequest{
		MemberID: f.members[0], ProposedDate: "2026-01-07", ProposedTime: "13:00",
	})
	require.Nil(t, appErr)

	_, appErr = f.svc.ApplyAlternative(ctx, id, proposed.AlternativeProposals[0].ProposalID, f.members[0])
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)
}

func TestGetMeetingByID_Missing(t *testing.T) {
	f := newFixture(t, 1)

	_, appErr := f.svc.GetMeetingByID(context.Background(), uuid.New())
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

// brokenMeetingRepository fails every read, standing in for a storage
// outage.
type brokenMeetingRepository struct {
	repository.MeetingRepositoryInterface
	err error
}

func (r *brokenMeetingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Meeting, error) {
	return nil, r.err
}

func TestGetMeetingByID_StorageFailureIsNotNotFound(t *testing.T) {
	broken := &brokenMeetingRepository{err: fmt.Errorf("connection refused")}
	svc := NewMeetingService(broken, teamService.NewTeamService(teamRepo.NewMemoryTeamRepository()), nil, time.Hour)

	_, appErr := svc.GetMeetingByID(context.Background(), uuid.New())
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrGetFailed, appErr.Code)
}

func TestScheduleMeeting_FromPending(t *testing.T) {
	f := newFixture(t, 2)
	ctx := context.Background()
	created, appErr := f.svc.CreateMeeting(ctx, f.organizer, &dto.CreateMeetingRequest{
		StudentID:     "student-1",
		StudentName:   "Leo Rodriguez",
		MeetingType:   "re_evaluation",
		TeamMemberIDs: f.members,
	})
	require.Nil(t, appErr)

	resp, appErr := f.svc.ScheduleMeeting(ctx, mustID(t, created.ID), f.organizer, &dto.ScheduleMeetingRequest{
		Date: "2026-01-06", Time: "09:30", DurationMinutes: 45,
	})
	require.Nil(t, appErr)

	assert.Equal(t, "scheduled", resp.Status)
	assert.Equal(t, "2026-01-06", resp.Date)
	require.Len(t, resp.Participants, 2)
	for _, p := range resp.Participants {
		assert.Equal(t, string(entity.RSVPStatusPending), p.Status)
	}
}

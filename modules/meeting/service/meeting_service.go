package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/errors"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/logger"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/queue"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/utils"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/meeting/dto"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/meeting/entity"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/meeting/repository"
	teamservice "github.com/sarahhawelu19/functionallyappropriate-sub000/modules/team/service"
)

// MeetingService handles meeting business logic: creation, scheduling,
// RSVPs, alternative time proposals and their votes.
type MeetingService struct {
	repo         repository.MeetingRepositoryInterface
	team         teamservice.TeamServiceInterface
	queue        *queue.Queue
	reminderLead time.Duration
}

// MeetingServiceInterface defines the service contract
type MeetingServiceInterface interface {
	CreateMeeting(ctx context.Context, organizerID string, req *dto.CreateMeetingRequest) (*dto.MeetingResponse, *errors.AppError)
	GetMeetingByID(ctx context.Context, id uuid.UUID) (*dto.MeetingResponse, *errors.AppError)
	GetMyMeetings(ctx context.Context, userID string) ([]dto.MeetingResponse, *errors.AppError)
	UpdateMeeting(ctx context.Context, id uuid.UUID, organizerID string, req *dto.UpdateMeetingRequest) (*dto.MeetingResponse, *errors.AppError)
	ScheduleMeeting(ctx context.Context, id uuid.UUID, organizerID string, req *dto.ScheduleMeetingRequest) (*dto.MeetingResponse, *errors.AppError)
	CancelMeeting(ctx context.Context, id uuid.UUID, organizerID string) (*dto.MeetingResponse, *errors.AppError)
	SetRSVP(ctx context.Context, id uuid.UUID, req *dto.SetRSVPRequest) (*dto.MeetingResponse, *errors.AppError)
	ProposeAlternative(ctx context.Context, id uuid.UUID, req *dto.ProposeAlternativeRequest) (*dto.MeetingResponse, *errors.AppError)
	VoteOnAlternative(ctx context.Context, id uuid.UUID, proposalID string, req *dto.VoteOnAlternativeRequest) (*dto.MeetingResponse, *errors.AppError)
	ApplyAlternative(ctx context.Context, id uuid.UUID, proposalID string, organizerID string) (*dto.MeetingResponse, *errors.AppError)
	ExportICS(ctx context.Context, id uuid.UUID) (string, *errors.AppError)
}

// NewMeetingService creates a new meeting service
func NewMeetingService(repo repository.MeetingRepositoryInterface, team teamservice.TeamServiceInterface, q *queue.Queue, reminderLead time.Duration) MeetingServiceInterface {
	return &MeetingService{
		repo:         repo,
		team:         team,
		queue:        q,
		reminderLead: reminderLead,
	}
}

// CreateMeeting creates a meeting for the invited team. When a date, time
// and duration are all supplied the meeting is scheduled immediately and
// every participant starts at pending; otherwise it waits unscheduled with
// no RSVP records.
func (s *MeetingService) CreateMeeting(ctx context.Context, organizerID string, req *dto.CreateMeetingRequest) (*dto.MeetingResponse, *errors.AppError) {
	meetingType := entity.MeetingType(req.MeetingType)
	if meetingType == entity.MeetingTypeOther && req.CustomMeetingType == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "custom_meeting_type is required when meeting_type is other", nil)
	}

	memberIDs, appErr := s.resolveInvitees(ctx, req.TeamMemberIDs)
	if appErr != nil {
		return nil, appErr
	}

	meeting := &entity.Meeting{
		EventType:         entity.EventTypeIEPMeeting,
		StudentID:         req.StudentID,
		StudentName:       req.StudentName,
		MeetingType:       meetingType,
		CustomMeetingType: req.CustomMeetingType,
		TeamMemberIDs:     memberIDs,
		Status:            entity.MeetingStatusPendingScheduling,
		CreatedByUserID:   organizerID,
	}
	meeting.Reference = buildReference(meeting)

	if req.Date != "" || req.Time != "" || req.DurationMinutes != 0 {
		if appErr := validateSlot(req.Date, req.Time, req.DurationMinutes); appErr != nil {
			return nil, appErr
		}
		meeting.Date = &req.Date
		meeting.Time = &req.Time
		meeting.DurationMinutes = &req.DurationMinutes
		meeting.Status = entity.MeetingStatusScheduled
		meeting.ResetParticipants()
	}

	created, err := s.repo.Create(ctx, meeting)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to create meeting", err)
	}

	if created.Status == entity.MeetingStatusScheduled {
		s.scheduleReminder(ctx, created)
	}

	logger.Info("MeetingService:CreateMeeting:Created",
		"meeting_id", created.ID,
		"reference", created.Reference,
		"status", created.Status,
	)
	return dto.ToMeetingResponse(created), nil
}

// GetMeetingByID returns one meeting.
func (s *MeetingService) GetMeetingByID(ctx context.Context, id uuid.UUID) (*dto.MeetingResponse, *errors.AppError) {
	meeting, appErr := s.getMeeting(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	return dto.ToMeetingResponse(meeting), nil
}

// GetMyMeetings returns the meetings the user organizes or is invited to,
// most recently created first.
func (s *MeetingService) GetMyMeetings(ctx context.Context, userID string) ([]dto.MeetingResponse, *errors.AppError) {
	meetings, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to list meetings", err)
	}

	responses := make([]dto.MeetingResponse, 0, len(meetings))
	for i := range meetings {
		responses = append(responses, *dto.ToMeetingResponse(&meetings[i]))
	}
	return responses, nil
}

// UpdateMeeting edits meeting details. Only the organizer may edit, and a
// cancelled meeting rejects every edit. Changing the invite list, date,
// time or duration of a scheduled meeting resets every RSVP to pending:
// everyone re-confirms against the new facts.
func (s *MeetingService) UpdateMeeting(ctx context.Context, id uuid.UUID, organizerID string, req *dto.UpdateMeetingRequest) (*dto.MeetingResponse, *errors.AppError) {
	meeting, appErr := s.getMutableMeeting(ctx, id, organizerID)
	if appErr != nil {
		return nil, appErr
	}

	rescheduled := false

	if req.MeetingType != "" {
		meetingType := entity.MeetingType(req.MeetingType)
		if meetingType == entity.MeetingTypeOther && req.CustomMeetingType == "" && meeting.CustomMeetingType == "" {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "custom_meeting_type is required when meeting_type is other", nil)
		}
		meeting.MeetingType = meetingType
	}
	if req.CustomMeetingType != "" {
		meeting.CustomMeetingType = req.CustomMeetingType
	}

	if len(req.TeamMemberIDs) > 0 {
		memberIDs, appErr := s.resolveInvitees(ctx, req.TeamMemberIDs)
		if appErr != nil {
			return nil, appErr
		}
		if !sameMembers(meeting.TeamMemberIDs, memberIDs) {
			rescheduled = true
		}
		meeting.TeamMemberIDs = memberIDs
	}

	if req.Date != "" {
		if _, err := utils.ParseDate(req.Date); err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), nil)
		}
		if meeting.Date == nil || *meeting.Date != req.Date {
			rescheduled = true
		}
		meeting.Date = &req.Date
	}
	if req.Time != "" {
		if _, err := utils.ParseClock(req.Time); err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), nil)
		}
		if meeting.Time == nil || *meeting.Time != req.Time {
			rescheduled = true
		}
		meeting.Time = &req.Time
	}
	if req.DurationMinutes != 0 {
		if meeting.DurationMinutes == nil || *meeting.DurationMinutes != req.DurationMinutes {
			rescheduled = true
		}
		meeting.DurationMinutes = &req.DurationMinutes
	}

	if rescheduled && meeting.Status == entity.MeetingStatusScheduled {
		meeting.ResetParticipants()
		s.scheduleReminder(ctx, meeting)
	}

	if err := s.repo.Update(ctx, meeting); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to update meeting", err)
	}

	logger.Info("MeetingService:UpdateMeeting:Updated", "meeting_id", meeting.ID, "rsvps_reset", rescheduled)
	return dto.ToMeetingResponse(meeting), nil
}

// ScheduleMeeting confirms a slot for a pending or already-scheduled
// meeting and resets every RSVP to pending.
func (s *MeetingService) ScheduleMeeting(ctx context.Context, id uuid.UUID, organizerID string, req *dto.ScheduleMeetingRequest) (*dto.MeetingResponse, *errors.AppError) {
	meeting, appErr := s.getMutableMeeting(ctx, id, organizerID)
	if appErr != nil {
		return nil, appErr
	}

	if appErr := validateSlot(req.Date, req.Time, req.DurationMinutes); appErr != nil {
		return nil, appErr
	}

	meeting.Date = &req.Date
	meeting.Time = &req.Time
	meeting.DurationMinutes = &req.DurationMinutes
	meeting.Status = entity.MeetingStatusScheduled
	meeting.ResetParticipants()

	if err := s.repo.Update(ctx, meeting); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to schedule meeting", err)
	}

	s.scheduleReminder(ctx, meeting)

	logger.Info("MeetingService:ScheduleMeeting:Scheduled",
		"meeting_id", meeting.ID,
		"date", req.Date,
		"time", req.Time,
	)
	return dto.ToMeetingResponse(meeting), nil
}

// CancelMeeting cancels a scheduled meeting. Cancellation is terminal:
// every later mutation against the meeting is rejected.
func (s *MeetingService) CancelMeeting(ctx context.Context, id uuid.UUID, organizerID string) (*dto.MeetingResponse, *errors.AppError) {
	meeting, appErr := s.getMeeting(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	if !meeting.IsOrganizer(organizerID) {
		return nil, errors.NewAppError(errors.ErrForbidden, "Only the organizer can cancel this meeting", nil)
	}
	if meeting.Status != entity.MeetingStatusScheduled {
		return nil, errors.NewAppError(errors.ErrInvalidInput,
			fmt.Sprintf("Cannot cancel a meeting in status %q", meeting.Status), nil)
	}

	meeting.Status = entity.MeetingStatusCancelled

	if err := s.repo.Update(ctx, meeting); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to cancel meeting", err)
	}

	logger.Info("MeetingService:CancelMeeting:Cancelled", "meeting_id", meeting.ID)
	return dto.ToMeetingResponse(meeting), nil
}

// SetRSVP records an accept or decline for an invited member. Allowed from
// any participant state, so members can change their minds until the
// organizer edits the meeting or cancels it.
func (s *MeetingService) SetRSVP(ctx context.Context, id uuid.UUID, req *dto.SetRSVPRequest) (*dto.MeetingResponse, *errors.AppError) {
	meeting, appErr := s.getScheduledMeeting(ctx, id)
	if appErr != nil {
		return nil, appErr
	}

	participant := meeting.Participant(req.MemberID)
	if participant == nil {
		return nil, errors.NewNotFoundError("participant", req.MemberID)
	}

	now := time.Now()
	participant.Status = entity.RSVPStatus(req.Status)
	participant.RespondedAt = &now
	participant.Note = nil
	if req.Note != "" {
		note := req.Note
		participant.Note = &note
	}

	if err := s.repo.Update(ctx, meeting); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to record RSVP", err)
	}

	logger.Info("MeetingService:SetRSVP:Recorded",
		"meeting_id", meeting.ID,
		"member_id", req.MemberID,
		"status", req.Status,
	)
	return dto.ToMeetingResponse(meeting), nil
}

// ProposeAlternative records a replacement date/time suggested by an
// invited member. The proposal opens a vote across all participants and
// flips the proposer's own RSVP to proposed_new_time.
func (s *MeetingService) ProposeAlternative(ctx context.Context, id uuid.UUID, req *dto.ProposeAlternativeRequest) (*dto.MeetingResponse, *errors.AppError) {
	meeting, appErr := s.getScheduledMeeting(ctx, id)
	if appErr != nil {
		return nil, appErr
	}

	proposer := meeting.Participant(req.MemberID)
	if proposer == nil {
		return nil, errors.NewNotFoundError("participant", req.MemberID)
	}

	if _, err := utils.ParseDate(req.ProposedDate); err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), nil)
	}
	if _, err := utils.ParseClock(req.ProposedTime); err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), nil)
	}

	now := time.Now()
	proposal := entity.AlternativeProposal{
		ProposalID:         utils.GenerateID(),
		ProposedDate:       req.ProposedDate,
		ProposedTime:       req.ProposedTime,
		ProposedByMemberID: req.MemberID,
		ProposedAt:         now,
		Votes:              make([]entity.ProposalVote, 0, len(meeting.TeamMemberIDs)),
	}
	for _, memberID := range meeting.TeamMemberIDs {
		proposal.Votes = append(proposal.Votes, entity.ProposalVote{
			TeamMemberID: memberID,
			Vote:         entity.VotePending,
		})
	}
	meeting.AlternativeProposals = append(meeting.AlternativeProposals, proposal)

	proposer.Status = entity.RSVPStatusProposedNewTime
	proposer.RespondedAt = &now

	if err := s.repo.Update(ctx, meeting); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to record proposal", err)
	}

	logger.Info("MeetingService:ProposeAlternative:Proposed",
		"meeting_id", meeting.ID,
		"proposal_id", proposal.ProposalID,
		"member_id", req.MemberID,
	)
	return dto.ToMeetingResponse(meeting), nil
}

// VoteOnAlternative records one member's vote on one proposal. A member may
// re-vote; the new vote overwrites the old one. Votes on other proposals
// are untouched, while the member's top-level RSVP moves to
// voted_on_alternative.
func (s *MeetingService) VoteOnAlternative(ctx context.Context, id uuid.UUID, proposalID string, req *dto.VoteOnAlternativeRequest) (*dto.MeetingResponse, *errors.AppError) {
	meeting, appErr := s.getScheduledMeeting(ctx, id)
	if appErr != nil {
		return nil, appErr
	}

	proposal := meeting.Proposal(proposalID)
	if proposal == nil {
		return nil, errors.NewNotFoundError("proposal", proposalID)
	}

	vote := proposal.Vote(req.MemberID)
	if vote == nil {
		return nil, errors.NewNotFoundError("vote record", req.MemberID)
	}

	now := time.Now()
	vote.Vote = entity.VoteChoice(req.Vote)
	vote.VotedAt = &now

	if participant := meeting.Participant(req.MemberID); participant != nil {
		participant.Status = entity.RSVPStatusVotedOnAlternative
		participant.RespondedAt = &now
	}

	if err := s.repo.Update(ctx, meeting); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to record vote", err)
	}

	logger.Info("MeetingService:VoteOnAlternative:Voted",
		"meeting_id", meeting.ID,
		"proposal_id", proposalID,
		"member_id", req.MemberID,
		"vote", req.Vote,
	)
	return dto.ToMeetingResponse(meeting), nil
}

// ApplyAlternative reschedules the meeting to a proposal's date and time.
// Organizer-only; a proposal never auto-applies no matter how the vote
// went. Applying is an edit, so every RSVP resets to pending.
func (s *MeetingService) ApplyAlternative(ctx context.Context, id uuid.UUID, proposalID string, organizerID string) (*dto.MeetingResponse, *errors.AppError) {
	meeting, appErr := s.getMutableMeeting(ctx, id, organizerID)
	if appErr != nil {
		return nil, appErr
	}
	if meeting.Status != entity.MeetingStatusScheduled {
		return nil, errors.NewAppError(errors.ErrInvalidInput,
			fmt.Sprintf("Cannot apply a proposal to a meeting in status %q", meeting.Status), nil)
	}

	proposal := meeting.Proposal(proposalID)
	if proposal == nil {
		return nil, errors.NewNotFoundError("proposal", proposalID)
	}

	date := proposal.ProposedDate
	clock := proposal.ProposedTime
	meeting.Date = &date
	meeting.Time = &clock
	meeting.ResetParticipants()

	if err := s.repo.Update(ctx, meeting); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to apply proposal", err)
	}

	s.scheduleReminder(ctx, meeting)

	logger.Info("MeetingService:ApplyAlternative:Applied",
		"meeting_id", meeting.ID,
		"proposal_id", proposalID,
		"date", date,
		"time", clock,
	)
	return dto.ToMeetingResponse(meeting), nil
}

// ===================== helpers =====================

func (s *MeetingService) getMeeting(ctx context.Context, id uuid.UUID) (*entity.Meeting, *errors.AppError) {
	meeting, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get meeting", err)
	}
	if meeting == nil {
		return nil, errors.NewNotFoundError("meeting", id.String())
	}
	return meeting, nil
}

// getMutableMeeting loads a meeting for an organizer-only edit, rejecting
// non-organizers and cancelled meetings.
func (s *MeetingService) getMutableMeeting(ctx context.Context, id uuid.UUID, organizerID string) (*entity.Meeting, *errors.AppError) {
	meeting, appErr := s.getMeeting(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	if !meeting.IsOrganizer(organizerID) {
		return nil, errors.NewAppError(errors.ErrForbidden, "Only the organizer can modify this meeting", nil)
	}
	if meeting.Status == entity.MeetingStatusCancelled {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Meeting is cancelled", nil)
	}
	return meeting, nil
}

// getScheduledMeeting loads a meeting for a participant response; RSVPs,
// proposals and votes only make sense against a confirmed slot.
func (s *MeetingService) getScheduledMeeting(ctx context.Context, id uuid.UUID) (*entity.Meeting, *errors.AppError) {
	meeting, appErr := s.getMeeting(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	if meeting.Status != entity.MeetingStatusScheduled {
		return nil, errors.NewAppError(errors.ErrInvalidInput,
			fmt.Sprintf("Meeting is not scheduled (status %q)", meeting.Status), nil)
	}
	return meeting, nil
}

// resolveInvitees checks every invited ID against the team roster and
// rejects duplicates.
func (s *MeetingService) resolveInvitees(ctx context.Context, rawIDs []string) (entity.StringSlice, *errors.AppError) {
	seen := make(map[string]bool, len(rawIDs))
	ids := make([]uuid.UUID, 0, len(rawIDs))
	memberIDs := make(entity.StringSlice, 0, len(rawIDs))

	for _, raw := range rawIDs {
		if seen[raw] {
			return nil, errors.NewAppError(errors.ErrInvalidInput,
				fmt.Sprintf("Duplicate team member %q", raw), nil)
		}
		seen[raw] = true

		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput,
				fmt.Sprintf("Invalid team member ID %q", raw), nil)
		}
		ids = append(ids, id)
		memberIDs = append(memberIDs, raw)
	}

	if _, appErr := s.team.ResolveMembers(ctx, ids); appErr != nil {
		return nil, appErr
	}
	return memberIDs, nil
}

// scheduleReminder enqueues a reminder ahead of the meeting start. Failures
// only log; a lost reminder never fails the scheduling call.
func (s *MeetingService) scheduleReminder(ctx context.Context, meeting *entity.Meeting) {
	if s.queue == nil || meeting.Date == nil || meeting.Time == nil {
		return
	}

	startAt, err := utils.CombineDateTime(*meeting.Date, *meeting.Time)
	if err != nil {
		logger.Warn("MeetingService:ScheduleReminder:BadSlot", "meeting_id", meeting.ID, err)
		return
	}

	payload := queue.MeetingReminderPayload{
		MeetingID:   meeting.ID.String(),
		StudentName: meeting.StudentName,
		Date:        *meeting.Date,
		Time:        *meeting.Time,
	}
	if err := s.queue.EnqueueMeetingReminder(ctx, payload, startAt.Add(-s.reminderLead)); err != nil {
		logger.Warn("MeetingService:ScheduleReminder:EnqueueFailed", "meeting_id", meeting.ID, err)
	}
}

func validateSlot(date, clock string, durationMinutes int) *errors.AppError {
	if _, err := utils.ParseDate(date); err != nil {
		return errors.NewAppError(errors.ErrInvalidInput, err.Error(), nil)
	}
	if _, err := utils.ParseClock(clock); err != nil {
		return errors.NewAppError(errors.ErrInvalidInput, err.Error(), nil)
	}
	if durationMinutes <= 0 {
		return errors.NewAppError(errors.ErrInvalidInput, "duration_minutes must be positive", nil)
	}
	return nil
}

// buildReference derives a short human-readable handle, e.g.
// "leo-rodriguez-annual-review-x7k2p9q".
func buildReference(m *entity.Meeting) string {
	return slug.Make(m.StudentName+" "+m.Label()) + "-" + utils.GenerateID()
}

func sameMembers(a entity.StringSlice, b entity.StringSlice) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]bool, len(a))
	for _, id := range a {
		set[id] = true
	}
	for _, id := range b {
		if !set[id] {
			return false
		}
	}
	return true
}

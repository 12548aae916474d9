package service

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/errors"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/utils"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/meeting/entity"
)

// ExportICS renders a scheduled meeting as an iCalendar document so
// participants can import the slot into their own calendars.
func (s *MeetingService) ExportICS(ctx context.Context, id uuid.UUID) (string, *errors.AppError) {
	meeting, appErr := s.getMeeting(ctx, id)
	if appErr != nil {
		return "", appErr
	}
	if meeting.Status != entity.MeetingStatusScheduled {
		return "", errors.NewAppError(errors.ErrInvalidInput,
			fmt.Sprintf("Only scheduled meetings have a calendar entry (status %q)", meeting.Status), nil)
	}

	startAt, err := utils.CombineDateTime(*meeting.Date, *meeting.Time)
	if err != nil {
		return "", errors.NewAppError(errors.ErrInternalServer, "Stored meeting slot is malformed", err)
	}
	endAt := startAt.Add(time.Duration(*meeting.DurationMinutes) * time.Minute)

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)

	event := cal.AddEvent(meeting.ID.String())
	event.SetCreatedTime(meeting.CreatedAt)
	event.SetDtStampTime(meeting.UpdatedAt)
	event.SetStartAt(startAt)
	event.SetEndAt(endAt)
	event.SetSummary(fmt.Sprintf("IEP Meeting: %s (%s)", meeting.StudentName, meeting.Label()))
	event.SetDescription(fmt.Sprintf("Reference %s. %d invited team members.", meeting.Reference, len(meeting.TeamMemberIDs)))

	return cal.Serialize(), nil
}

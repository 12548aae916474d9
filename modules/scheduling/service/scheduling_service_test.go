package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/errors"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/scheduling/dto"
	teamEntity "github.com/sarahhawelu19/functionallyappropriate-sub000/modules/team/entity"
	teamRepo "github.com/sarahhawelu19/functionallyappropriate-sub000/modules/team/repository"
	teamService "github.com/sarahhawelu19/functionallyappropriate-sub000/modules/team/service"
)

func newServiceWithMembers(t *testing.T, schedules ...teamEntity.WeeklySchedule) (SchedulingServiceInterface, []string) {
	t.Helper()
	ctx := context.Background()

	tr := teamRepo.NewMemoryTeamRepository()
	ids := make([]string, 0, len(schedules))
	for _, schedule := range schedules {
		created, err := tr.Create(ctx, &teamEntity.TeamMember{
			Name:           "Member",
			Role:           "SLP",
			WeeklySchedule: schedule,
		})
		require.NoError(t, err)
		ids = append(ids, created.ID.String())
	}

	svc := NewSchedulingService(teamService.NewTeamService(tr), nil, time.Minute)
	return svc, ids
}

func TestCalculateAvailability_EndToEnd(t *testing.T) {
	svc, ids := newServiceWithMembers(t,
		weekdaySchedule("09:00", "12:00", "Monday"),
		weekdaySchedule("10:00", "13:00", "Monday"),
	)

	resp, appErr := svc.CalculateAvailability(context.Background(), &dto.CalculateAvailabilityRequest{
		ParticipantIDs:  ids,
		StartDate:       "2026-01-05",
		EndDate:         "2026-01-05",
		DurationMinutes: 60,
	})
	require.Nil(t, appErr)

	// The overlap is 10:00-12:00: four common micro-slots, three 60-minute
	// windows.
	assert.Len(t, resp.CommonSlots, 4)
	require.Len(t, resp.AvailableSlots, 3)
	assert.Equal(t, "10:00", resp.AvailableSlots[0].StartTime)
	assert.Equal(t, "11:00", resp.AvailableSlots[2].StartTime)
	assert.Len(t, resp.IndividualAvailability, 2)
}

func TestCalculateAvailability_UnknownParticipant(t *testing.T) {
	svc, _ := newServiceWithMembers(t, weekdaySchedule("09:00", "12:00", "Monday"))

	_, appErr := svc.CalculateAvailability(context.Background(), &dto.CalculateAvailabilityRequest{
		ParticipantIDs:  []string{uuid.NewString()},
		StartDate:       "2026-01-05",
		EndDate:         "2026-01-05",
		DurationMinutes: 30,
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestCalculateAvailability_BadDateFormat(t *testing.T) {
	svc, ids := newServiceWithMembers(t, weekdaySchedule("09:00", "12:00", "Monday"))

	_, appErr := svc.CalculateAvailability(context.Background(), &dto.CalculateAvailabilityRequest{
		ParticipantIDs:  ids,
		StartDate:       "01/05/2026",
		EndDate:         "2026-01-05",
		DurationMinutes: 30,
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
}

func TestCalculateAvailability_NoOverlap(t *testing.T) {
	svc, ids := newServiceWithMembers(t,
		weekdaySchedule("09:00", "10:00", "Monday"),
		weekdaySchedule("11:00", "12:00", "Monday"),
	)

	resp, appErr := svc.CalculateAvailability(context.Background(), &dto.CalculateAvailabilityRequest{
		ParticipantIDs:  ids,
		StartDate:       "2026-01-05",
		EndDate:         "2026-01-05",
		DurationMinutes: 30,
	})
	require.Nil(t, appErr)
	assert.Empty(t, resp.CommonSlots)
	assert.Empty(t, resp.AvailableSlots)
}

package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/errors"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/params"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/team/dto"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/team/repository"
)

func newService() TeamServiceInterface {
	return NewTeamService(repository.NewMemoryTeamRepository())
}

func createMember(t *testing.T, svc TeamServiceInterface, name string) *dto.TeamMemberResponse {
	t.Helper()
	resp, appErr := svc.CreateMember(context.Background(), &dto.CreateTeamMemberRequest{
		Name: name,
		Role: "School Psychologist",
		WeeklySchedule: map[string]dto.DayScheduleDTO{
			"Monday": {StartTime: "08:00", EndTime: "16:00"},
		},
	})
	require.Nil(t, appErr)
	return resp
}

func TestCreateAndGetMember(t *testing.T) {
	svc := newService()
	created := createMember(t, svc, "David Chen")

	got, appErr := svc.GetMemberByID(context.Background(), uuid.MustParse(created.ID))
	require.Nil(t, appErr)
	assert.Equal(t, "David Chen", got.Name)
	assert.Equal(t, "08:00", got.WeeklySchedule["Monday"].StartTime)
}

func TestGetMember_Missing(t *testing.T) {
	svc := newService()

	_, appErr := svc.GetMemberByID(context.Background(), uuid.New())
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestResolveMembers_NamesFirstMissingID(t *testing.T) {
	svc := newService()
	created := createMember(t, svc, "Maria Lopez")
	missing := uuid.New()

	_, appErr := svc.ResolveMembers(context.Background(), []uuid.UUID{uuid.MustParse(created.ID), missing})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
	assert.Contains(t, appErr.Message, missing.String())
}

func TestUpdateMember_ReplacesSchedule(t *testing.T) {
	svc := newService()
	created := createMember(t, svc, "James Okafor")

	updated, appErr := svc.UpdateMember(context.Background(), uuid.MustParse(created.ID), &dto.UpdateTeamMemberRequest{
		WeeklySchedule: map[string]dto.DayScheduleDTO{
			"Tuesday": {StartTime: "09:00", EndTime: "14:00"},
		},
	})
	require.Nil(t, appErr)

	_, hadMonday := updated.WeeklySchedule["Monday"]
	assert.False(t, hadMonday)
	assert.Equal(t, "09:00", updated.WeeklySchedule["Tuesday"].StartTime)
}

func TestDeleteMember(t *testing.T) {
	svc := newService()
	created := createMember(t, svc, "Sarah Miller")
	id := uuid.MustParse(created.ID)

	require.Nil(t, svc.DeleteMember(context.Background(), id))

	_, appErr := svc.GetMemberByID(context.Background(), id)
	assert.NotNil(t, appErr)
}

func TestListMembers_SearchByName(t *testing.T) {
	svc := newService()
	createMember(t, svc, "Sarah Miller")
	createMember(t, svc, "David Chen")

	page, appErr := svc.ListMembers(context.Background(), params.QueryParams{
		PageNumber: 1,
		PageSize:   10,
		Search:     "sarah",
	})
	require.Nil(t, appErr)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Sarah Miller", page.Items[0].Name)
}

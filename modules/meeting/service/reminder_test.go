package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/queue"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/meeting/repository"
)

func reminderTask(t *testing.T, payload queue.MeetingReminderPayload) *asynq.Task {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return asynq.NewTask(queue.TypeMeetingReminder, raw)
}

func TestReminderHandler_MeetingDeletedBeforeFiring(t *testing.T) {
	handler := NewReminderHandler(repository.NewMemoryMeetingRepository())

	// A queued reminder can outlive its meeting row; the handler must drop
	// it instead of failing.
	task := reminderTask(t, queue.MeetingReminderPayload{
		MeetingID:   uuid.NewString(),
		StudentName: "Leo Rodriguez",
		Date:        "2026-01-05",
		Time:        "10:00",
	})

	assert.NotPanics(t, func() {
		assert.NoError(t, handler(context.Background(), task))
	})
}

func TestReminderHandler_SkipsCancelledMeeting(t *testing.T) {
	f := newFixture(t, 1)
	meeting := f.createScheduled(t)
	ctx := context.Background()

	_, appErr := f.svc.CancelMeeting(ctx, mustID(t, meeting.ID), f.organizer)
	require.Nil(t, appErr)

	handler := NewReminderHandler(f.repo)
	task := reminderTask(t, queue.MeetingReminderPayload{
		MeetingID: meeting.ID,
		Date:      meeting.Date,
		Time:      meeting.Time,
	})
	assert.NoError(t, handler(ctx, task))
}

func TestReminderHandler_BadPayload(t *testing.T) {
	handler := NewReminderHandler(repository.NewMemoryMeetingRepository())

	task := asynq.NewTask(queue.TypeMeetingReminder, []byte("{not json"))
	assert.Error(t, handler(context.Background(), task))
}

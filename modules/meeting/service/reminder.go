package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/logger"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/queue"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/meeting/entity"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/meeting/repository"
)

// NewReminderHandler builds the asynq handler for meeting:reminder tasks.
// The stored payload is a snapshot; the handler re-reads the meeting and
// drops the reminder when the slot it was scheduled for no longer stands.
func NewReminderHandler(repo repository.MeetingRepositoryInterface) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var payload queue.MeetingReminderPayload
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			return err
		}

		id, err := uuid.Parse(payload.MeetingID)
		if err != nil {
			logger.Warn("ReminderHandler:BadMeetingID", "meeting_id", payload.MeetingID)
			return nil
		}

		meeting, err := repo.GetByID(ctx, id)
		if err != nil || meeting == nil {
			logger.Warn("ReminderHandler:MeetingGone", "meeting_id", payload.MeetingID)
			return nil
		}

		if meeting.Status != entity.MeetingStatusScheduled {
			logger.Info("ReminderHandler:Skipped", "meeting_id", payload.MeetingID, "status", meeting.Status)
			return nil
		}
		if meeting.Date == nil || *meeting.Date != payload.Date || meeting.Time == nil || *meeting.Time != payload.Time {
			logger.Info("ReminderHandler:Rescheduled", "meeting_id", payload.MeetingID)
			return nil
		}

		logger.Info("ReminderHandler:Reminder",
			"meeting_id", payload.MeetingID,
			"student", payload.StudentName,
			"date", payload.Date,
			"time", payload.Time,
		)
		return nil
	}
}

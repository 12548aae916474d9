package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/config"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/logger"
)

// Task types
const (
	TypeMeetingReminder = "meeting:reminder"
)

// MeetingReminderPayload is the body of a meeting:reminder task.
type MeetingReminderPayload struct {
	MeetingID   string `json:"meeting_id"`
	StudentName string `json:"student_name"`
	Date        string `json:"date"` // YYYY-MM-DD
	Time        string `json:"time"` // HH:MM
}

// Queue wraps the asynq client. A nil *Queue disables background tasks;
// every method no-ops on it.
type Queue struct {
	client *asynq.Client
}

func New(cfg config.RedisConfig) *Queue {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &Queue{client: client}
}

// EnqueueMeetingReminder schedules a reminder task for processAt. Tasks in
// the past are dropped rather than fired immediately.
func (q *Queue) EnqueueMeetingReminder(ctx context.Context, payload MeetingReminderPayload, processAt time.Time) error {
	if q == nil {
		return nil
	}
	if processAt.Before(time.Now()) {
		logger.Warn("Queue:EnqueueMeetingReminder:PastDue", "meeting_id", payload.MeetingID, "process_at", processAt)
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	task := asynq.NewTask(TypeMeetingReminder, raw)
	info, err := q.client.EnqueueContext(ctx, task, asynq.ProcessAt(processAt), asynq.MaxRetry(3))
	if err != nil {
		return err
	}

	logger.Info("Queue:EnqueueMeetingReminder:Enqueued",
		"meeting_id", payload.MeetingID,
		"task_id", info.ID,
		"process_at", processAt,
	)
	return nil
}

func (q *Queue) Close() error {
	if q == nil {
		return nil
	}
	return q.client.Close()
}

// RunWorker starts an asynq server handling the given task handlers and
// blocks until it stops.
func RunWorker(cfg config.RedisConfig, handlers map[string]asynq.HandlerFunc) error {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB},
		asynq.Config{Concurrency: 5},
	)

	mux := asynq.NewServeMux()
	for taskType, handler := range handlers {
		mux.HandleFunc(taskType, handler)
	}

	return srv.Run(mux)
}

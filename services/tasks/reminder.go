package tasks

import (
	"context"
	"encoding/json"
	"time"

	"orgflow/config"
	"orgflow/models"

	"github.com/hibiken/asynq"
)

const TypeApprovalReminder = "approval:reminder"

// ReminderScheduler enqueues a delayed nudge for a still-pending approval.
type ReminderScheduler interface {
	ScheduleApprovalReminder(ctx context.Context, payload models.ReminderPayload, fireAt time.Time) error
}

// NewReminderTask builds the asynq task for a pending-approval nudge.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeApprovalReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// AsynqReminderScheduler is the production scheduler backed by asynq.
type AsynqReminderScheduler struct {
	client *asynq.Client
}

// NewAsynqReminderScheduler creates a scheduler against the reminder queue.
func NewAsynqReminderScheduler() *AsynqReminderScheduler {
	return &AsynqReminderScheduler{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisReminderQueueDB,
		}),
	}
}

// ScheduleApprovalReminder enqueues the nudge for processing at fireAt.
func (s *AsynqReminderScheduler) ScheduleApprovalReminder(ctx context.Context, payload models.ReminderPayload, fireAt time.Time) error {
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	_, err = s.client.EnqueueContext(ctx, task, opts...)
	return err
}

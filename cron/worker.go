package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"orgflow/config"
	"orgflow/models"
	"orgflow/services/realtime"
	"orgflow/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// StatusLookup reports the current status of one record so the worker can
// drop reminders for requests that were already decided.
type StatusLookup func(ctx context.Context, recordID string) (string, error)

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(notifier realtime.Notifier, lookups map[string]StatusLookup) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeApprovalReminder, handleReminderTask(notifier, lookups))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[ReminderWorker] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] ❌ Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] ❗ Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(notifier realtime.Notifier, lookups map[string]StatusLookup) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] 🔴 Invalid payload: %v", err)
			return err
		}

		lookup, ok := lookups[p.RecordType]
		if !ok {
			log.Printf("[ReminderHandler] ⚠️ Unknown record type: %s", p.RecordType)
			return nil
		}

		status, err := lookup(ctx, p.RecordID)
		if err != nil {
			log.Printf("[ReminderHandler] ❌ Status lookup failed for %s %s: %v", p.RecordType, p.RecordID, err)
			return err
		}
		if status != models.StatusPending {
			// Already decided; nothing to nudge.
			return nil
		}

		log.Printf("[ReminderHandler] ⏰ Nudging approver %s for %s %s", p.ApproverID, p.RecordType, p.RecordID)

		data := map[string]string{
			"recordType": p.RecordType,
			"recordId":   p.RecordID,
			"kind":       "approval_reminder",
		}
		if err := notifier.Send(ctx, p.ApproverID, p.Title, p.Body, data); err != nil {
			log.Printf("[ReminderHandler] ❌ Failed to send nudge: %v", err)
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[ReminderWorker] ⚠️ Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}

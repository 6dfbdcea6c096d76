package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"hrbridge/config"
	"hrbridge/models"
	"hrbridge/services/notification"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitMailWorker runs the async meeting-email worker in background.
func InitMailWorker(mailer *notification.Mailer) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisMailQueueDB,
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
	mux.HandleFunc(notification.TaskTypeMeetingEmail, handleMeetingEmailTask(mailer))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[MailWorker] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[MailWorker] ❌ Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[MailWorker] ❗ Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleMeetingEmailTask(mailer *notification.Mailer) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.MeetingEmailPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[MailHandler] 🔴 Invalid payload: %v", err)
			return err
		}

		log.Printf("[MailHandler] ✉️ Sending %s email for slot %s to %s", p.Event, p.SlotID, p.RecipientEmail)

		if err := mailer.Send(p); err != nil {
			log.Printf("[MailHandler] ❌ Failed to send meeting email: %v", err)
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
		DB:       config.AppConfig.RedisMailQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[MailWorker] ⚠️ Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}

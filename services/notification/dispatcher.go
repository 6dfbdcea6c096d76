package notification

import (
	"context"
	"encoding/json"

	"hrbridge/config"
	userRepo "hrbridge/database/repository/user"
	"hrbridge/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// AsynqDispatcher queues meeting emails on Redis for the mail worker.
type AsynqDispatcher struct {
	Client *asynq.Client
	Users  userRepo.UserRepository
	Logger *zap.Logger
}

// NewAsynqClient constructs the asynq client on the mail queue database.
func NewAsynqClient() *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisMailQueueDB,
	})
}

// Notify enqueues a booked/unbooked email for the recipient. Recipients
// without an email address are skipped with a warning, matching the
// best-effort contract.
func (d *AsynqDispatcher) Notify(ctx context.Context, slot models.MeetingSlot, recipient models.User, event string) {
	if recipient.Email == "" {
		d.Logger.Warn("no email address on record, skipping meeting notification",
			zap.String("slotId", slot.ID),
			zap.String("recipient", recipient.Username),
			zap.String("event", event))
		return
	}

	hrUsername := "HR"
	if reviewer, err := d.Users.GetByID(ctx, slot.HRReviewerID); err == nil {
		hrUsername = reviewer.Username
	}

	payload := models.MeetingEmailPayload{
		SlotID:            slot.ID,
		Event:             event,
		Date:              slot.Date,
		StartTime:         models.FormatClock(slot.Start),
		EndTime:           models.FormatClock(slot.End),
		HRReviewer:        hrUsername,
		RecipientUsername: recipient.Username,
		RecipientEmail:    recipient.Email,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		d.Logger.Error("failed to marshal meeting email payload",
			zap.String("slotId", slot.ID), zap.Error(err))
		return
	}

	task := asynq.NewTask(TaskTypeMeetingEmail, data)
	if _, err := d.Client.Enqueue(task, asynq.MaxRetry(3)); err != nil {
		d.Logger.Error("failed to enqueue meeting email",
			zap.String("slotId", slot.ID),
			zap.String("event", event),
			zap.Error(err))
		return
	}

	d.Logger.Info("meeting email queued",
		zap.String("slotId", slot.ID),
		zap.String("event", event),
		zap.String("recipient", recipient.Email))
}

package notification

import (
	"context"

	"hrbridge/models"
)

// TaskTypeMeetingEmail is the asynq task type for meeting notification emails.
const TaskTypeMeetingEmail = "meeting:email"

// Dispatcher sends booked/unbooked notifications for a meeting slot.
// Dispatch is fire-and-forget: implementations log failures internally and
// never propagate them to the caller.
type Dispatcher interface {
	Notify(ctx context.Context, slot models.MeetingSlot, recipient models.User, event string)
}

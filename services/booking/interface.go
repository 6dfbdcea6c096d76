package booking

import (
	"context"

	assessmentRepo "hrbridge/database/repository/assessment"
	slotRepo "hrbridge/database/repository/slot"
	userRepo "hrbridge/database/repository/user"
	"hrbridge/models"
	"hrbridge/services/notification"

	"go.uber.org/zap"
)

// AvailableQuery narrows the employee-facing listing of open slots.
type AvailableQuery struct {
	HRUsername       string
	SelfAssessmentID string
}

// BookingEngine governs the claim/release state machine of a meeting slot.
// A slot is either Available (unbooked) or Booked by exactly one employee;
// transitions are applied with conditional writes so racing callers get
// exactly one winner.
type BookingEngine interface {
	// Book claims an available slot for the calling employee. Re-booking a
	// slot already held by the same employee is an idempotent success.
	Book(ctx context.Context, p models.Principal, slotID string) (*models.MeetingSlot, error)
	// Unbook releases a slot previously booked by the calling employee.
	Unbook(ctx context.Context, p models.Principal, slotID string) (*models.MeetingSlot, error)
	// AvailableSlots lists future, unbooked slots for employees to browse.
	AvailableSlots(ctx context.Context, p models.Principal, q AvailableQuery) ([]models.MeetingSlot, error)
	// MyBookedSlots lists the caller's future bookings, most recent date first.
	MyBookedSlots(ctx context.Context, p models.Principal) ([]models.MeetingSlot, error)
}

// DefaultBookingEngine is the production implementation.
type DefaultBookingEngine struct {
	Slots       slotRepo.SlotRepository
	Users       userRepo.UserRepository
	Assessments assessmentRepo.AssessmentRepository
	Notifier    notification.Dispatcher
	Logger      *zap.Logger
}

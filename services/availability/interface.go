package availability

import (
	"context"

	assessmentRepo "hrbridge/database/repository/assessment"
	slotRepo "hrbridge/database/repository/slot"
	userRepo "hrbridge/database/repository/user"
	"hrbridge/models"
	"hrbridge/services/notification"

	"go.uber.org/zap"
)

// ListQuery narrows the HR-facing slot listing.
type ListQuery struct {
	HRUsername string
	DateFrom   string
	DateTo     string
	IsBooked   *bool
}

// Service owns the HR-side lifecycle of meeting slots: publishing
// availability, administrative edits (including clearing a booking), and
// removal.
type Service interface {
	CreateSlot(ctx context.Context, p models.Principal, req models.CreateSlotRequest) (*models.MeetingSlot, error)
	GetSlot(ctx context.Context, p models.Principal, slotID string) (*models.MeetingSlot, error)
	UpdateSlot(ctx context.Context, p models.Principal, slotID string, patch models.SlotPatch) (*models.MeetingSlot, error)
	DeleteSlot(ctx context.Context, p models.Principal, slotID string) error
	ListSlots(ctx context.Context, p models.Principal, q ListQuery) ([]models.MeetingSlot, error)
}

// DefaultService is the production implementation.
type DefaultService struct {
	Slots       slotRepo.SlotRepository
	Users       userRepo.UserRepository
	Assessments assessmentRepo.AssessmentRepository
	Notifier    notification.Dispatcher
	Logger      *zap.Logger
}

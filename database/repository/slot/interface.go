package slotRepo

import (
	"context"
	"errors"
	"log"
	"time"

	"hrbridge/database"
	"hrbridge/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Sentinel errors translated from storage-level failures.
var (
	ErrNotFound         = errors.New("meeting slot not found")
	ErrDuplicateStart   = errors.New("slot with the same reviewer, date and start time already exists")
	ErrAssessmentLinked = errors.New("self-assessment is already linked to another slot")
)

// AvailableFilter narrows the employee-facing listing of open slots.
type AvailableFilter struct {
	HRReviewerID     string
	SelfAssessmentID string
	Now              time.Time
}

// AdminFilter narrows the HR-facing listing of all slots.
type AdminFilter struct {
	HRReviewerID string
	DateFrom     string
	DateTo       string
	IsBooked     *bool
}

// SlotRepository defines data access over meeting slots. Book, Unbook and
// ApplyPatch are conditional writes: they match only when the expected
// booking state still holds, and report false when the row changed underneath.
type SlotRepository interface {
	Create(ctx context.Context, slot *models.MeetingSlot) error
	GetByID(ctx context.Context, id string) (*models.MeetingSlot, error)
	FindAvailable(ctx context.Context, f AvailableFilter) ([]models.MeetingSlot, error)
	FindBookedBy(ctx context.Context, employeeID string, now time.Time) ([]models.MeetingSlot, error)
	FindForAdmin(ctx context.Context, f AdminFilter) ([]models.MeetingSlot, error)
	Book(ctx context.Context, slotID, employeeID string) (bool, error)
	Unbook(ctx context.Context, slotID, employeeID string) (bool, error)
	ApplyPatch(ctx context.Context, slotID string, expectBooked bool, set bson.M) (bool, error)
	Delete(ctx context.Context, id string) error
}

type mongoSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoSlotRepo constructs a new MongoDB SlotRepository.
func NewMongoSlotRepo() SlotRepository {
	r := &mongoSlotRepo{
		coll: database.DB().Collection("meeting_slots"),
	}
	if err := r.EnsureIndexes(); err != nil {
		log.Printf("slot repository: %v", err)
	}
	return r
}

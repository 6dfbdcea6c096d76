package assessmentRepo

import (
	"context"
	"errors"
	"log"

	"hrbridge/database"
	"hrbridge/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// Sentinel errors translated from storage-level failures.
var (
	ErrNotFound  = errors.New("self-assessment not found")
	ErrDuplicate = errors.New("self-assessment for this quarter and year already exists")
)

// AssessmentRepository defines data access over employee self-assessments.
type AssessmentRepository interface {
	Create(ctx context.Context, a *models.SelfAssessment) error
	GetByID(ctx context.Context, id string) (*models.SelfAssessment, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]models.SelfAssessment, error)
	// ExistsForEmployee reports whether the employee has at least one
	// assessment on record; a precondition for booking any slot.
	ExistsForEmployee(ctx context.Context, employeeID string) (bool, error)
}

type mongoAssessmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAssessmentRepo constructs a new MongoDB AssessmentRepository.
func NewMongoAssessmentRepo() AssessmentRepository {
	r := &mongoAssessmentRepo{
		coll: database.DB().Collection("self_assessments"),
	}
	if err := r.EnsureIndexes(); err != nil {
		log.Printf("assessment repository: %v", err)
	}
	return r
}

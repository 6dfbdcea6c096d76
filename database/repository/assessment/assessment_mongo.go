package assessmentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hrbridge/models"
)

func (r *mongoAssessmentRepo) Create(ctx context.Context, a *models.SelfAssessment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, a); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert self-assessment: %w", err)
	}
	return nil
}

func (r *mongoAssessmentRepo) GetByID(ctx context.Context, id string) (*models.SelfAssessment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var a models.SelfAssessment
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch self-assessment %s: %w", id, err)
	}
	return &a, nil
}

func (r *mongoAssessmentRepo) ListByEmployee(ctx context.Context, employeeID string) ([]models.SelfAssessment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "year", Value: -1}, {Key: "quarter_number", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"employee_id": employeeID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch self-assessments for %s: %w", employeeID, err)
	}
	defer cursor.Close(ctx)

	var out []models.SelfAssessment
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding self-assessments: %w", err)
	}
	return out, nil
}

func (r *mongoAssessmentRepo) ExistsForEmployee(ctx context.Context, employeeID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"employee_id": employeeID}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to count self-assessments for %s: %w", employeeID, err)
	}
	return n > 0, nil
}

// EnsureIndexes creates the necessary indexes on the self_assessments collection.
func (r *mongoAssessmentRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// One assessment per employee per quarter/year.
		{
			Keys: bson.D{
				{Key: "employee_id", Value: 1},
				{Key: "year", Value: 1},
				{Key: "quarter_number", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("unique_employee_quarter"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create self-assessment indexes: %w", err)
	}
	return nil
}

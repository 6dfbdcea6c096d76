package slotRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the meeting_slots collection.
func (r *mongoSlotRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// Unique slot ID.
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// An HR user cannot publish two slots starting at the same instant.
		{
			Keys: bson.D{
				{Key: "hr_reviewer_id", Value: 1},
				{Key: "date", Value: 1},
				{Key: "start", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("unique_reviewer_date_start"),
		},
		// At most one slot per self-assessment; sparse so unlinked slots don't clash.
		{
			Keys:    bson.D{{Key: "self_assessment_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true).SetName("unique_self_assessment"),
		},
		// Primary query pattern for the employee-facing listing.
		{
			Keys:    bson.D{{Key: "is_booked", Value: 1}, {Key: "date", Value: 1}, {Key: "start", Value: 1}},
			Options: options.Index().SetName("booked_date_start_idx"),
		},
		{
			Keys:    bson.D{{Key: "booked_by_employee", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index().SetName("employee_bookings_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create meeting slot indexes: %w", err)
	}
	return nil
}

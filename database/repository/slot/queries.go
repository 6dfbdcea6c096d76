package slotRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hrbridge/models"
)

// futureFilter matches slots whose date+start has not yet elapsed.
func futureFilter(now time.Time) bson.M {
	today := now.Format(models.DateLayout)
	minute := now.Hour()*60 + now.Minute()
	return bson.M{"$or": bson.A{
		bson.M{"date": bson.M{"$gt": today}},
		bson.M{"date": today, "start": bson.M{"$gte": minute}},
	}}
}

func (r *mongoSlotRepo) FindAvailable(ctx context.Context, f AvailableFilter) ([]models.MeetingSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"is_booked": false,
		"$or":       futureFilter(f.Now)["$or"],
	}
	if f.HRReviewerID != "" {
		filter["hr_reviewer_id"] = f.HRReviewerID
	}
	if f.SelfAssessmentID != "" {
		filter["self_assessment_id"] = f.SelfAssessmentID
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch available slots: %w", err)
	}
	defer cursor.Close(ctx)

	var slots []models.MeetingSlot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("error decoding available slots: %w", err)
	}
	return slots, nil
}

func (r *mongoSlotRepo) FindBookedBy(ctx context.Context, employeeID string, now time.Time) ([]models.MeetingSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"booked_by_employee": employeeID,
		"$or":                futureFilter(now)["$or"],
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "start", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booked slots for %s: %w", employeeID, err)
	}
	defer cursor.Close(ctx)

	var slots []models.MeetingSlot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("error decoding booked slots: %w", err)
	}
	return slots, nil
}

func (r *mongoSlotRepo) FindForAdmin(ctx context.Context, f AdminFilter) ([]models.MeetingSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if f.HRReviewerID != "" {
		filter["hr_reviewer_id"] = f.HRReviewerID
	}
	if f.DateFrom != "" || f.DateTo != "" {
		dateRange := bson.M{}
		if f.DateFrom != "" {
			dateRange["$gte"] = f.DateFrom
		}
		if f.DateTo != "" {
			dateRange["$lte"] = f.DateTo
		}
		filter["date"] = dateRange
	}
	if f.IsBooked != nil {
		filter["is_booked"] = *f.IsBooked
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch slots: %w", err)
	}
	defer cursor.Close(ctx)

	var slots []models.MeetingSlot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("error decoding slots: %w", err)
	}
	return slots, nil
}

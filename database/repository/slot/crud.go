package slotRepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"hrbridge/models"
)

func (r *mongoSlotRepo) Create(ctx context.Context, slot *models.MeetingSlot) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if slot.ID == "" {
		slot.ID = uuid.New().String()
	}
	now := time.Now()
	slot.CreatedAt = now
	slot.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, slot); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return translateDuplicate(err)
		}
		return fmt.Errorf("failed to insert meeting slot: %w", err)
	}
	return nil
}

func (r *mongoSlotRepo) GetByID(ctx context.Context, id string) (*models.MeetingSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var slot models.MeetingSlot
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&slot)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch meeting slot %s: %w", id, err)
	}
	return &slot, nil
}

// Book flips an unbooked slot to booked for the given employee. The booking
// state is part of the filter, so concurrent callers get exactly one winner.
func (r *mongoSlotRepo) Book(ctx context.Context, slotID, employeeID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": slotID, "is_booked": false}
	update := bson.M{"$set": bson.M{
		"is_booked":          true,
		"booked_by_employee": employeeID,
		"updated_at":         time.Now(),
	}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to book meeting slot %s: %w", slotID, err)
	}
	return res.MatchedCount > 0, nil
}

// Unbook clears the booking, but only while it is still held by employeeID.
func (r *mongoSlotRepo) Unbook(ctx context.Context, slotID, employeeID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": slotID, "is_booked": true, "booked_by_employee": employeeID}
	update := bson.M{
		"$set":   bson.M{"is_booked": false, "updated_at": time.Now()},
		"$unset": bson.M{"booked_by_employee": ""},
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to unbook meeting slot %s: %w", slotID, err)
	}
	return res.MatchedCount > 0, nil
}

// ApplyPatch performs an administrative update conditioned on the booking
// state observed by the caller. A false return means the slot changed (or
// disappeared) between read and write.
func (r *mongoSlotRepo) ApplyPatch(ctx context.Context, slotID string, expectBooked bool, set bson.M) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set["updated_at"] = time.Now()
	filter := bson.M{"id": slotID, "is_booked": expectBooked}

	unset := bson.M{}
	if booked, ok := set["is_booked"].(bool); ok && !booked {
		delete(set, "booked_by_employee")
		unset["booked_by_employee"] = ""
	}
	// An empty assessment link is stored as an absent field so the sparse
	// unique index doesn't treat two unlinked slots as duplicates.
	if sa, ok := set["self_assessment_id"].(string); ok && sa == "" {
		delete(set, "self_assessment_id")
		unset["self_assessment_id"] = ""
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, translateDuplicate(err)
		}
		return false, fmt.Errorf("failed to patch meeting slot %s: %w", slotID, err)
	}
	return res.MatchedCount > 0, nil
}

func (r *mongoSlotRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete meeting slot %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// translateDuplicate maps a duplicate-key error to the violated constraint
// by inspecting the index name in the server message.
func translateDuplicate(err error) error {
	if strings.Contains(err.Error(), "unique_self_assessment") {
		return ErrAssessmentLinked
	}
	return ErrDuplicateStart
}

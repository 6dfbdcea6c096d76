package handlers

import (
	"context"

	userRepo "hrbridge/database/repository/user"
	"hrbridge/models"
)

// toSlotResponse maps a stored slot to its API view, resolving the reviewer's
// username through the supplied cache of already-looked-up users.
func toSlotResponse(ctx context.Context, users userRepo.UserRepository, cache map[string]string, slot models.MeetingSlot) models.MeetingSlotResponse {
	username, ok := cache[slot.HRReviewerID]
	if !ok {
		username = slot.HRReviewerID
		if u, err := users.GetByID(ctx, slot.HRReviewerID); err == nil {
			username = u.Username
		}
		cache[slot.HRReviewerID] = username
	}

	return models.MeetingSlotResponse{
		ID:               slot.ID,
		HRReviewer:       username,
		Date:             slot.Date,
		StartTime:        models.FormatClock(slot.Start),
		EndTime:          models.FormatClock(slot.End),
		IsBooked:         slot.IsBooked,
		BookedByEmployee: slot.BookedByEmployee,
		SelfAssessmentID: slot.SelfAssessmentID,
	}
}

func toSlotResponses(ctx context.Context, users userRepo.UserRepository, slots []models.MeetingSlot) []models.MeetingSlotResponse {
	cache := make(map[string]string)
	out := make([]models.MeetingSlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, toSlotResponse(ctx, users, cache, s))
	}
	return out
}

package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	assessmentRepo "hrbridge/database/repository/assessment"
	slotRepo "hrbridge/database/repository/slot"
	userRepo "hrbridge/database/repository/user"
	"hrbridge/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func (s *DefaultService) CreateSlot(ctx context.Context, p models.Principal, req models.CreateSlotRequest) (*models.MeetingSlot, error) {
	if !p.IsAdmin() {
		return nil, models.AuthorizationError{Reason: "only HR staff can publish meeting slots"}
	}

	if _, err := time.ParseInLocation(models.DateLayout, req.Date, time.Local); err != nil {
		return nil, models.ValidationError{Reason: "invalid date, expected YYYY-MM-DD"}
	}
	start, err := models.ParseClock(req.StartTime)
	if err != nil {
		return nil, models.ValidationError{Reason: err.Error()}
	}
	end, err := models.ParseClock(req.EndTime)
	if err != nil {
		return nil, models.ValidationError{Reason: err.Error()}
	}
	if start >= end {
		return nil, models.ValidationError{Reason: "start_time must be before end_time"}
	}
	if err := checkNotPast(req.Date, start, time.Now()); err != nil {
		return nil, err
	}

	if req.SelfAssessmentID != "" {
		if _, err := s.Assessments.GetByID(ctx, req.SelfAssessmentID); err != nil {
			if errors.Is(err, assessmentRepo.ErrNotFound) {
				return nil, models.NotFoundError{Resource: "self-assessment", ID: req.SelfAssessmentID}
			}
			return nil, err
		}
	}

	slot := &models.MeetingSlot{
		HRReviewerID:     p.ID,
		Date:             req.Date,
		Start:            start,
		End:              end,
		SelfAssessmentID: req.SelfAssessmentID,
	}

	if err := s.Slots.Create(ctx, slot); err != nil {
		switch {
		case errors.Is(err, slotRepo.ErrDuplicateStart):
			return nil, models.ConflictError{Reason: "a slot with this date and start time already exists for you"}
		case errors.Is(err, slotRepo.ErrAssessmentLinked):
			return nil, models.ConflictError{Reason: "self-assessment is already linked to another slot"}
		}
		return nil, err
	}

	s.Logger.Info("meeting slot published",
		zap.String("slotId", slot.ID),
		zap.String("hrReviewer", p.ID),
		zap.String("date", slot.Date))
	return slot, nil
}

func (s *DefaultService) GetSlot(ctx context.Context, p models.Principal, slotID string) (*models.MeetingSlot, error) {
	if !p.IsAdmin() {
		return nil, models.AuthorizationError{Reason: "only HR staff can inspect slots directly"}
	}
	slot, err := s.Slots.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrNotFound) {
			return nil, models.NotFoundError{Resource: "meeting slot", ID: slotID}
		}
		return nil, err
	}
	return slot, nil
}

// UpdateSlot applies an administrative patch. Flipping is_booked true->false
// clears the booking unconditionally, regardless of which employee holds it,
// and notifies the displaced employee. The patch is applied as a conditional
// write against the booking state read here, so a concurrent transition
// surfaces as a conflict instead of a lost update.
func (s *DefaultService) UpdateSlot(ctx context.Context, p models.Principal, slotID string, patch models.SlotPatch) (*models.MeetingSlot, error) {
	if !p.IsAdmin() {
		return nil, models.AuthorizationError{Reason: "only HR staff can edit meeting slots"}
	}

	slot, err := s.Slots.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrNotFound) {
			return nil, models.NotFoundError{Resource: "meeting slot", ID: slotID}
		}
		return nil, err
	}

	set := bson.M{}
	newDate, newStart, newEnd := slot.Date, slot.Start, slot.End

	if patch.Date != nil {
		if _, err := time.ParseInLocation(models.DateLayout, *patch.Date, time.Local); err != nil {
			return nil, models.ValidationError{Reason: "invalid date, expected YYYY-MM-DD"}
		}
		newDate = *patch.Date
		set["date"] = newDate
	}
	if patch.StartTime != nil {
		newStart, err = models.ParseClock(*patch.StartTime)
		if err != nil {
			return nil, models.ValidationError{Reason: err.Error()}
		}
		set["start"] = newStart
	}
	if patch.EndTime != nil {
		newEnd, err = models.ParseClock(*patch.EndTime)
		if err != nil {
			return nil, models.ValidationError{Reason: err.Error()}
		}
		set["end"] = newEnd
	}
	if newStart >= newEnd {
		return nil, models.ValidationError{Reason: "start_time must be before end_time"}
	}
	if patch.Date != nil || patch.StartTime != nil {
		if err := checkNotPast(newDate, newStart, time.Now()); err != nil {
			return nil, err
		}
	}

	if patch.SelfAssessmentID != nil {
		if *patch.SelfAssessmentID != "" {
			a, err := s.Assessments.GetByID(ctx, *patch.SelfAssessmentID)
			if err != nil {
				if errors.Is(err, assessmentRepo.ErrNotFound) {
					return nil, models.NotFoundError{Resource: "self-assessment", ID: *patch.SelfAssessmentID}
				}
				return nil, err
			}
			// A booked slot linked to an assessment must be held by the
			// assessment's author. Relinking is allowed only when the booking
			// is cleared in the same patch or already belongs to the author.
			stillBooked := slot.IsBooked
			if patch.IsBooked != nil && !*patch.IsBooked {
				stillBooked = false
			}
			if stillBooked && a.EmployeeID != slot.BookedByEmployee {
				return nil, models.ConflictError{Reason: "slot is booked by a different employee than the assessment's author; unbook it first"}
			}
		}
		set["self_assessment_id"] = *patch.SelfAssessmentID
	}

	displaced := ""
	if patch.IsBooked != nil {
		if *patch.IsBooked && !slot.IsBooked {
			return nil, models.ValidationError{Reason: "booking a slot is an employee action"}
		}
		if !*patch.IsBooked && slot.IsBooked {
			// Administrative unbook.
			displaced = slot.BookedByEmployee
			set["is_booked"] = false
		}
	}

	if len(set) == 0 {
		return slot, nil
	}

	applied, err := s.Slots.ApplyPatch(ctx, slotID, slot.IsBooked, set)
	if err != nil {
		switch {
		case errors.Is(err, slotRepo.ErrDuplicateStart):
			return nil, models.ConflictError{Reason: "a slot with this date and start time already exists for this reviewer"}
		case errors.Is(err, slotRepo.ErrAssessmentLinked):
			return nil, models.ConflictError{Reason: "self-assessment is already linked to another slot"}
		}
		return nil, err
	}
	if !applied {
		return nil, models.ConflictError{Reason: "slot was modified concurrently, retry"}
	}

	updated, err := s.Slots.GetByID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload slot %s after update: %w", slotID, err)
	}

	if displaced != "" {
		s.notifyDisplaced(ctx, *updated, displaced)
	}
	return updated, nil
}

func (s *DefaultService) DeleteSlot(ctx context.Context, p models.Principal, slotID string) error {
	if !p.IsAdmin() {
		return models.AuthorizationError{Reason: "only HR staff can delete meeting slots"}
	}
	if err := s.Slots.Delete(ctx, slotID); err != nil {
		if errors.Is(err, slotRepo.ErrNotFound) {
			return models.NotFoundError{Resource: "meeting slot", ID: slotID}
		}
		return err
	}
	s.Logger.Info("meeting slot deleted", zap.String("slotId", slotID), zap.String("by", p.ID))
	return nil
}

func (s *DefaultService) ListSlots(ctx context.Context, p models.Principal, q ListQuery) ([]models.MeetingSlot, error) {
	if !p.IsAdmin() {
		return nil, models.AuthorizationError{Reason: "only HR staff can list all slots"}
	}

	for _, d := range []string{q.DateFrom, q.DateTo} {
		if d == "" {
			continue
		}
		if _, err := time.ParseInLocation(models.DateLayout, d, time.Local); err != nil {
			return nil, models.ValidationError{Reason: "invalid date filter, expected YYYY-MM-DD"}
		}
	}

	filter := slotRepo.AdminFilter{
		DateFrom: q.DateFrom,
		DateTo:   q.DateTo,
		IsBooked: q.IsBooked,
	}
	if q.HRUsername != "" {
		reviewer, err := s.Users.GetByUsername(ctx, q.HRUsername)
		if err != nil {
			if errors.Is(err, userRepo.ErrNotFound) {
				return []models.MeetingSlot{}, nil
			}
			return nil, err
		}
		filter.HRReviewerID = reviewer.ID
	}

	return s.Slots.FindForAdmin(ctx, filter)
}

// checkNotPast rejects a slot window that starts before the current moment,
// using the server's local date and clock.
func checkNotPast(date string, start int, now time.Time) error {
	today := now.Format(models.DateLayout)
	if date < today {
		return models.ValidationError{Reason: "date is in the past"}
	}
	if date == today && start < now.Hour()*60+now.Minute() {
		return models.ValidationError{Reason: "start time has already passed today"}
	}
	return nil
}

func (s *DefaultService) notifyDisplaced(ctx context.Context, slot models.MeetingSlot, employeeID string) {
	recipient, err := s.Users.GetByID(ctx, employeeID)
	if err != nil {
		s.Logger.Warn("skipping unbook notification, recipient lookup failed",
			zap.String("slotId", slot.ID),
			zap.String("employeeId", employeeID),
			zap.Error(err))
		return
	}
	s.Notifier.Notify(ctx, slot, *recipient, models.MeetingEventUnbooked)
}

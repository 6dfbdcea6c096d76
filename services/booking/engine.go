package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	slotRepo "hrbridge/database/repository/slot"
	userRepo "hrbridge/database/repository/user"
	"hrbridge/models"

	"go.uber.org/zap"
)

func (e *DefaultBookingEngine) Book(ctx context.Context, p models.Principal, slotID string) (*models.MeetingSlot, error) {
	if p.Role != models.RoleEmployee {
		return nil, models.AuthorizationError{Reason: "only employees can book meeting slots"}
	}

	slot, err := e.Slots.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrNotFound) {
			return nil, models.NotFoundError{Resource: "meeting slot", ID: slotID}
		}
		return nil, err
	}

	if slot.IsBooked {
		if slot.BookedByEmployee == p.ID {
			// Re-booking one's own slot is an idempotent success; no
			// state change and no repeat notification.
			return slot, nil
		}
		return nil, models.ConflictError{Reason: "already booked"}
	}

	if startsBeforeMinute(slot, time.Now()) {
		return nil, models.ValidationError{Reason: "past slot"}
	}

	hasAssessment, err := e.Assessments.ExistsForEmployee(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check self-assessments for %s: %w", p.ID, err)
	}
	if !hasAssessment {
		return nil, models.PreconditionError{Reason: "no self-assessment on record; submit one before booking a meeting"}
	}

	if slot.SelfAssessmentID != "" {
		a, err := e.Assessments.GetByID(ctx, slot.SelfAssessmentID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve linked self-assessment %s: %w", slot.SelfAssessmentID, err)
		}
		if a.EmployeeID != p.ID {
			return nil, models.AuthorizationError{Reason: "slot is reserved for another employee's self-assessment"}
		}
	}

	// Conditional write: applies only while the slot is still unbooked, so
	// of two racing callers exactly one wins.
	won, err := e.Slots.Book(ctx, slotID, p.ID)
	if err != nil {
		return nil, err
	}
	if !won {
		current, rerr := e.Slots.GetByID(ctx, slotID)
		if rerr == nil && current.IsBooked && current.BookedByEmployee == p.ID {
			return current, nil
		}
		return nil, models.ConflictError{Reason: "already booked"}
	}

	booked, err := e.Slots.GetByID(ctx, slotID)
	if err != nil {
		// The transition committed; fall back to the pre-write snapshot.
		booked = slot
		booked.IsBooked = true
		booked.BookedByEmployee = p.ID
	}

	e.notify(ctx, *booked, p.ID, models.MeetingEventBooked)
	return booked, nil
}

func (e *DefaultBookingEngine) Unbook(ctx context.Context, p models.Principal, slotID string) (*models.MeetingSlot, error) {
	if p.Role != models.RoleEmployee {
		return nil, models.AuthorizationError{Reason: "only employees can unbook via self-service; staff edit the slot instead"}
	}

	slot, err := e.Slots.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrNotFound) {
			return nil, models.NotFoundError{Resource: "meeting slot", ID: slotID}
		}
		return nil, err
	}

	if !slot.IsBooked {
		return nil, models.ConflictError{Reason: "not booked"}
	}
	if slot.BookedByEmployee != p.ID {
		return nil, models.AuthorizationError{Reason: "slot is booked by another employee"}
	}
	if startsBeforeMinute(slot, time.Now()) {
		return nil, models.ValidationError{Reason: "past slot"}
	}

	released, err := e.Slots.Unbook(ctx, slotID, p.ID)
	if err != nil {
		return nil, err
	}
	if !released {
		// The booking was cleared or reassigned between read and write.
		return nil, models.ConflictError{Reason: "not booked"}
	}

	unbooked, err := e.Slots.GetByID(ctx, slotID)
	if err != nil {
		unbooked = slot
		unbooked.IsBooked = false
		unbooked.BookedByEmployee = ""
	}

	e.notify(ctx, *unbooked, p.ID, models.MeetingEventUnbooked)
	return unbooked, nil
}

func (e *DefaultBookingEngine) AvailableSlots(ctx context.Context, p models.Principal, q AvailableQuery) ([]models.MeetingSlot, error) {
	if p.Role != models.RoleEmployee {
		return nil, models.AuthorizationError{Reason: "only employees can browse available slots"}
	}

	filter := slotRepo.AvailableFilter{
		SelfAssessmentID: q.SelfAssessmentID,
		Now:              time.Now(),
	}
	if q.HRUsername != "" {
		reviewer, err := e.Users.GetByUsername(ctx, q.HRUsername)
		if err != nil {
			if errors.Is(err, userRepo.ErrNotFound) {
				return []models.MeetingSlot{}, nil
			}
			return nil, err
		}
		filter.HRReviewerID = reviewer.ID
	}

	return e.Slots.FindAvailable(ctx, filter)
}

func (e *DefaultBookingEngine) MyBookedSlots(ctx context.Context, p models.Principal) ([]models.MeetingSlot, error) {
	if p.Role != models.RoleEmployee {
		return nil, models.AuthorizationError{Reason: "only employees have personal bookings"}
	}
	return e.Slots.FindBookedBy(ctx, p.ID, time.Now())
}

// startsBeforeMinute reports whether the slot starts before the current
// minute. Minute granularity keeps book and unbook consistent with the
// availability listing, which includes slots starting in the current minute.
func startsBeforeMinute(slot *models.MeetingSlot, now time.Time) bool {
	return slot.StartsAt().Before(now.Truncate(time.Minute))
}

// notify dispatches a booked/unbooked email to the employee. Best-effort:
// lookup or enqueue failures are logged, never surfaced to the caller.
func (e *DefaultBookingEngine) notify(ctx context.Context, slot models.MeetingSlot, employeeID, event string) {
	recipient, err := e.Users.GetByID(ctx, employeeID)
	if err != nil {
		e.Logger.Warn("skipping meeting notification, recipient lookup failed",
			zap.String("slotId", slot.ID),
			zap.String("employeeId", employeeID),
			zap.Error(err))
		return
	}
	e.Notifier.Notify(ctx, slot, *recipient, event)
}

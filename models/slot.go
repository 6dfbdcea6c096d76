package models

import (
	"fmt"
	"time"
)

// DateLayout is the wire and storage format for slot dates.
const DateLayout = "2006-01-02"

// MeetingSlot represents a time window offered by one HR reviewer for one
// meeting. Start and End are minutes from midnight (e.g., 540 for 9:00 AM).
type MeetingSlot struct {
	ID               string    `bson:"id" json:"id"`
	HRReviewerID     string    `bson:"hr_reviewer_id" json:"hr_reviewer_id"`
	Date             string    `bson:"date" json:"date"` // "YYYY-MM-DD"
	Start            int       `bson:"start" json:"start"`
	End              int       `bson:"end" json:"end"`
	IsBooked         bool      `bson:"is_booked" json:"is_booked"`
	BookedByEmployee string    `bson:"booked_by_employee,omitempty" json:"booked_by_employee,omitempty"`
	SelfAssessmentID string    `bson:"self_assessment_id,omitempty" json:"self_assessment_id,omitempty"`
	CreatedAt        time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time `bson:"updated_at" json:"updated_at"`
}

// StartsAt returns the absolute start time of the slot in the server's local
// time zone. A zero time is returned when the stored date is malformed.
func (s *MeetingSlot) StartsAt() time.Time {
	day, err := time.ParseInLocation(DateLayout, s.Date, time.Local)
	if err != nil {
		return time.Time{}
	}
	return day.Add(time.Duration(s.Start) * time.Minute)
}

// ParseClock converts an "HH:MM" string to minutes from midnight.
func ParseClock(v string) (int, error) {
	t, err := time.Parse("15:04", v)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", v)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock converts minutes from midnight back to "HH:MM".
func FormatClock(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// CreateSlotRequest is the admin payload for publishing a new slot.
type CreateSlotRequest struct {
	Date             string `json:"date" binding:"required"`
	StartTime        string `json:"start_time" binding:"required"`
	EndTime          string `json:"end_time" binding:"required"`
	SelfAssessmentID string `json:"self_assessment_id,omitempty"`
}

// SlotPatch is the admin payload for partially updating a slot. Nil fields
// are left untouched.
type SlotPatch struct {
	Date             *string `json:"date,omitempty"`
	StartTime        *string `json:"start_time,omitempty"`
	EndTime          *string `json:"end_time,omitempty"`
	IsBooked         *bool   `json:"is_booked,omitempty"`
	SelfAssessmentID *string `json:"self_assessment_id,omitempty"`
}

// MeetingSlotResponse is the API view of a slot, with clock-formatted times
// and the reviewer's username resolved.
type MeetingSlotResponse struct {
	ID               string `json:"id"`
	HRReviewer       string `json:"hr_reviewer"`
	Date             string `json:"date"`
	StartTime        string `json:"start_time"`
	EndTime          string `json:"end_time"`
	IsBooked         bool   `json:"is_booked"`
	BookedByEmployee string `json:"booked_by_employee,omitempty"`
	SelfAssessmentID string `json:"self_assessment_id,omitempty"`
}

package models

// Meeting notification events.
const (
	MeetingEventBooked   = "booked"
	MeetingEventUnbooked = "unbooked"
)

// MeetingEmailPayload is the task payload queued for the mail worker when a
// slot transitions between booked and unbooked.
type MeetingEmailPayload struct {
	SlotID            string `json:"slot_id"`
	Event             string `json:"event"` // "booked" or "unbooked"
	Date              string `json:"date"`
	StartTime         string `json:"start_time"`
	EndTime           string `json:"end_time"`
	HRReviewer        string `json:"hr_reviewer"`
	RecipientUsername string `json:"recipient_username"`
	RecipientEmail    string `json:"recipient_email"`
}
